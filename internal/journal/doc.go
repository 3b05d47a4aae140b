// Package journal persists received event payloads in SQLite so that decoding
// can be replayed and checked for determinism.
//
// Entries are content-addressed: the ID is a domain-separated SHA-256 over the
// CBOR payload bytes, and appending a payload that is already present is a
// no-op. Each entry also keeps the JSON record the decoder produced when the
// payload arrived, so Replay can detect decoder drift as well as
// nondeterminism.
package journal
