package event

import (
	"fmt"
	"maps"
	"slices"

	"github.com/roach88/spacesync/internal/mcs"
	"github.com/roach88/spacesync/internal/wire"
)

// Payload positions on the wire.
const (
	posName = iota
	posSender
	posRecipient
	posComponents
	payloadLen
)

// Payload is the fixed-position envelope every event arrives in:
// [EventName, SenderId, RecipientId (nullable), ComponentsMap].
type Payload struct {
	Name        string
	SenderID    uint64
	RecipientID *uint64

	// Components maps small positions to undecoded Component Elements.
	Components map[uint64]wire.Value
}

// ParsePayload validates the envelope and extracts its fields. Component
// Elements are left undecoded; their meaning depends on the event kind.
func ParsePayload(v wire.Value) (Payload, error) {
	arr, ok := v.(wire.Array)
	if !ok || len(arr) != payloadLen {
		return Payload{}, &DecodeError{
			Code:     ErrCodeMalformedPayload,
			Message:  fmt.Sprintf("event payload must have exactly %d positional elements", payloadLen),
			Position: "payload",
			Excerpt:  wire.Excerpt(v),
		}
	}

	name, ok := arr[posName].(wire.String)
	if !ok {
		return Payload{}, malformedAt(payloadPos(posName), "event name is not a string", arr[posName])
	}

	sender, ok := wire.AsUint64(arr[posSender])
	if !ok {
		return Payload{}, malformedAt(payloadPos(posSender), "sender id is not a non-negative integer", arr[posSender])
	}

	var recipient *uint64
	if !wire.IsNull(arr[posRecipient]) {
		id, ok := wire.AsUint64(arr[posRecipient])
		if !ok {
			return Payload{}, malformedAt(payloadPos(posRecipient), "recipient id is neither null nor a non-negative integer", arr[posRecipient])
		}
		recipient = &id
	}

	components, err := mcs.Components(arr[posComponents])
	if err != nil {
		de := malformedAt(payloadPos(posComponents), "components are not an integer-keyed map", arr[posComponents])
		de.Err = err
		return Payload{}, de
	}
	if components == nil {
		components = map[uint64]wire.Value{}
	}

	return Payload{
		Name:        string(name),
		SenderID:    sender,
		RecipientID: recipient,
		Components:  components,
	}, nil
}

// Positions returns the component positions present, ascending.
func (p Payload) Positions() []uint64 {
	return slices.Sorted(maps.Keys(p.Components))
}

func malformedAt(position, msg string, v wire.Value) *DecodeError {
	return &DecodeError{
		Code:     ErrCodeMalformedPayload,
		Message:  msg,
		Position: position,
		Excerpt:  wire.Excerpt(v),
	}
}

func payloadPos(i int) string {
	return fmt.Sprintf("payload[%d]", i)
}

func componentPos(i uint64) string {
	return fmt.Sprintf("components[%d]", i)
}
