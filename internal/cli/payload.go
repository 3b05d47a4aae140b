package cli

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/roach88/spacesync/internal/event"
	"github.com/roach88/spacesync/internal/journal"
	"github.com/roach88/spacesync/internal/wire"
)

// Payload file encodings.
const (
	encodingJSON = "json"
	encodingCBOR = "cbor"
)

// detectEncoding picks the payload encoding from the file extension, falling
// back to sniffing: JSON payloads start with '[' or '{' once whitespace is
// skipped, which no CBOR array or map header byte can be.
func detectEncoding(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return encodingJSON
	case ".cbor":
		return encodingCBOR
	}
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && (trimmed[0] == '[' || trimmed[0] == '{') {
		return encodingJSON
	}
	return encodingCBOR
}

// readPayload reads a payload file as a wire value.
func readPayload(path string, log *slog.Logger) (wire.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read payload: %w", err)
	}
	if detectEncoding(path, data) == encodingJSON {
		return wire.ParseJSON(data, log)
	}
	return wire.Unmarshal(data)
}

// decoded is the outcome of decoding one payload.
type decoded struct {
	Event  string // record event name, or the envelope name when dropped
	Record []byte // stable JSON record; "null" when dropped
	Err    error  // decode failure, nil on success
}

// errorCode returns the DecodeError code of a failed decode.
func (d decoded) errorCode() string {
	var de *event.DecodeError
	if errors.As(d.Err, &de) {
		return string(de.Code)
	}
	return ""
}

// decodePayload runs the dispatcher over v and renders the record. A decode
// failure is reported in the result; the returned error is reserved for
// records that cannot be encoded.
func decodePayload(v wire.Value, log *slog.Logger) (decoded, error) {
	ev, err := event.NewDispatcher(log).Decode(v)
	if err != nil {
		d := decoded{Record: []byte("null"), Err: err}
		if p, perr := event.ParsePayload(v); perr == nil {
			d.Event = p.Name
		}
		return d, nil
	}
	record, err := journal.EncodeRecord(ev)
	if err != nil {
		return decoded{}, err
	}
	return decoded{Event: ev.EventName(), Record: record}, nil
}

// replayDecoder re-decodes journaled CBOR payloads for journal.Replay.
func replayDecoder(log *slog.Logger) journal.DecodeFunc {
	return func(payload []byte) ([]byte, error) {
		v, err := wire.Unmarshal(payload)
		if err != nil {
			return nil, err
		}
		d, err := decodePayload(v, log)
		if err != nil {
			return nil, err
		}
		return d.Record, nil
	}
}
