package journal

import (
	"crypto/sha256"
	"encoding/hex"
)

// DomainPayload prefixes payload hashes. The version suffix leaves room for
// a future algorithm change.
const DomainPayload = "spacesync/payload/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null byte separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// PayloadID computes the content-addressed ID of an encoded payload.
func PayloadID(payload []byte) string {
	return hashWithDomain(DomainPayload, payload)
}
