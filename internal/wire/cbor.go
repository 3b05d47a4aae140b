package wire

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// encMode uses Core Deterministic Encoding (RFC 8949 §4.2): sorted map keys,
// smallest integer encoding, no indefinite-length items. The same wire value
// always produces identical bytes, which the journal relies on for
// content-addressed IDs.
var encMode cbor.EncMode

// decMode keeps the CBOR default of map[any]any for untyped maps, since
// component maps are keyed by integers.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wire: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		MaxNestedLevels: 64,
	}.DecMode()
	if err != nil {
		panic("wire: CBOR decoder initialization failed: " + err.Error())
	}
}

// Marshal encodes v to deterministic CBOR.
func Marshal(v Value) ([]byte, error) {
	data, err := encMode.Marshal(ToNative(v))
	if err != nil {
		return nil, fmt.Errorf("wire: encode: %w", err)
	}
	return data, nil
}

// Unmarshal decodes one CBOR data item into a wire Value.
func Unmarshal(data []byte) (Value, error) {
	var raw any
	if err := decMode.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("wire: decode: %w", err)
	}
	v, err := FromNative(raw)
	if err != nil {
		return nil, fmt.Errorf("wire: decode: %w", err)
	}
	return v, nil
}

// Encoder writes a stream of wire values as a CBOR sequence.
type Encoder struct {
	enc *cbor.Encoder
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{enc: encMode.NewEncoder(w)}
}

// Encode writes one wire value.
func (e *Encoder) Encode(v Value) error {
	return e.enc.Encode(ToNative(v))
}

// Decoder reads a CBOR sequence of wire values.
type Decoder struct {
	dec *cbor.Decoder
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{dec: decMode.NewDecoder(r)}
}

// Decode reads the next wire value. It returns io.EOF at the end of the stream.
func (d *Decoder) Decode() (Value, error) {
	var raw any
	if err := d.dec.Decode(&raw); err != nil {
		return nil, err
	}
	return FromNative(raw)
}

// Diagnose returns the CBOR diagnostic notation (RFC 8949 §8) of data.
func Diagnose(data []byte) (string, error) {
	return cbor.Diagnose(data)
}
