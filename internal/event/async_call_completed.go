package event

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"

	"github.com/roach88/spacesync/internal/mcs"
	"github.com/roach88/spacesync/internal/wire"
)

// AsyncCallCompletedName is the wire event name of AsyncCallCompleted.
const AsyncCallCompletedName = "AsyncCallCompleted"

// AsyncCallCompleted reports that a long-running service operation (space
// duplication, for instance) finished.
//
// Two wire generations exist. ReferenceID and ReferenceType are the legacy
// fields; References, Success and StatusReason were added later. After
// decoding, the legacy fields are filled from References whenever a known
// reference is present, so consumers never branch on the generation.
type AsyncCallCompleted struct {
	OperationName string            `json:"operation_name"`
	ReferenceID   string            `json:"reference_id"`
	ReferenceType string            `json:"reference_type"`
	References    map[string]string `json:"references"`
	Success       *bool             `json:"success"`
	StatusReason  string            `json:"status_reason"`
}

// EventName implements Event.
func (AsyncCallCompleted) EventName() string { return AsyncCallCompletedName }

// Component positions. Position 1 and 2 change meaning between generations.
const (
	posOperationName uint64 = 0
	posReference     uint64 = 1 // legacy ReferenceID, current References
	posReferenceKind uint64 = 2 // legacy ReferenceType, current Success
	posStatusReason  uint64 = 3
)

// spaceReference is the References key the legacy fields are derived from.
// Spaces were historically addressed as groups, hence "GroupId".
const (
	spaceReference     = "SpaceId"
	spaceReferenceType = "GroupId"
)

// DecodeAsyncCallCompleted decodes a full event payload.
//
// The operation name at position 0 and the element at position 1 are
// required; any fault there drops the event. Faults in the optional fields
// are logged and leave the field at its default. A nil log discards.
func DecodeAsyncCallCompleted(payload wire.Value, log *slog.Logger) (AsyncCallCompleted, error) {
	log = orDiscard(log)
	p, err := ParsePayload(payload)
	if err != nil {
		logDropped(log, "", err)
		return AsyncCallCompleted{}, err
	}
	ev, err := decodeAsyncCallCompleted(p, log)
	if err != nil {
		logDropped(log, p.Name, err)
		return AsyncCallCompleted{}, err
	}
	return ev, nil
}

func decodeAsyncCallCompleted(p Payload, log *slog.Logger) (AsyncCallCompleted, error) {
	ev := AsyncCallCompleted{References: map[string]string{}}
	log = log.With("event", p.Name)

	op, err := requiredString(p, posOperationName)
	if err != nil {
		return AsyncCallCompleted{}, err
	}
	ev.OperationName = op

	elem, ok := p.Components[posReference]
	if !ok {
		return AsyncCallCompleted{}, &DecodeError{
			Code:     ErrCodeMalformedPayload,
			Message:  "reference element missing",
			Position: componentPos(posReference),
		}
	}
	tag, wrapped, err := splitElement(posReference, elem)
	if err != nil {
		return AsyncCallCompleted{}, err
	}

	// The generation is detected by the type tag at position 1, not by a
	// version field. A future generation that puts yet another tag there
	// is rejected below rather than guessed at.
	switch mcs.DataType(tag) {
	case mcs.String:
		f, err := mcs.DecodeComponent(tag, wrapped)
		if err != nil {
			return AsyncCallCompleted{}, fromElementError(componentPos(posReference), err)
		}
		ev.ReferenceID, _ = f.StringValue()
		if s, ok := optionalString(p, posReferenceKind, log); ok {
			ev.ReferenceType = s
		}

	case mcs.StringDictionary:
		refs, err := decodeReferences(wrapped, log)
		if err != nil {
			return AsyncCallCompleted{}, err
		}
		ev.References = refs
		ev.Success = optionalBool(p, posReferenceKind, log)
		if s, ok := optionalString(p, posStatusReason, log); ok {
			ev.StatusReason = s
		}

	default:
		if !mcs.DataType(tag).Known() {
			return AsyncCallCompleted{}, &DecodeError{
				Code:     ErrCodeUnsupportedWireType,
				Message:  fmt.Sprintf("unsupported type tag %d", tag),
				Position: componentPos(posReference),
				Excerpt:  wire.Excerpt(elem),
				Err:      &mcs.UnsupportedTypeError{TypeID: tag},
			}
		}
		return AsyncCallCompleted{}, &DecodeError{
			Code:     ErrCodeMalformedPayload,
			Message:  fmt.Sprintf("unrecognised schema generation: %s at position 1", mcs.DataType(tag)),
			Position: componentPos(posReference),
			Excerpt:  wire.Excerpt(elem),
		}
	}

	if id, ok := ev.References[spaceReference]; ok {
		ev.ReferenceID = id
		ev.ReferenceType = spaceReferenceType
	}
	return ev, nil
}

// decodeReferences reads the References dictionary entry by entry so that a
// single unreadable or non-string entry is skipped instead of dropping the
// event.
func decodeReferences(wrapped wire.Value, log *slog.Logger) (map[string]string, error) {
	outer, ok := wrapped.(wire.Array)
	if !ok || len(outer) != 1 {
		return nil, malformedAt(componentPos(posReference), "references are not wrapped in a single-element array", wrapped)
	}
	refs := map[string]string{}
	var entries wire.StringMap
	switch m := outer[0].(type) {
	case wire.StringMap:
		entries = m
	case wire.IntMap:
		if len(m) != 0 {
			return nil, malformedAt(componentPos(posReference), "references are keyed by integers", m)
		}
	default:
		return nil, malformedAt(componentPos(posReference), "references are not a map", outer[0])
	}

	for _, key := range slices.Sorted(maps.Keys(entries)) {
		f, err := mcs.DecodeElement(entries[key])
		if err != nil {
			log.Warn("skipping reference", "reference", key, "error", err)
			continue
		}
		s, ok := f.StringValue()
		if !ok {
			log.Warn("skipping reference", "reference", key, "type", f.Type.String())
			continue
		}
		refs[key] = s
	}
	return refs, nil
}

// requiredString decodes a STRING element the event cannot do without.
func requiredString(p Payload, pos uint64) (string, error) {
	elem, ok := p.Components[pos]
	if !ok {
		return "", &DecodeError{
			Code:     ErrCodeMalformedPayload,
			Message:  "required element missing",
			Position: componentPos(pos),
		}
	}
	f, err := mcs.DecodeElement(elem)
	if err != nil {
		return "", fromElementError(componentPos(pos), err)
	}
	s, ok := f.StringValue()
	if !ok {
		return "", &DecodeError{
			Code:     ErrCodeTypeMismatch,
			Message:  fmt.Sprintf("expected %s, found %s", mcs.String, f.Type),
			Position: componentPos(pos),
			Excerpt:  wire.Excerpt(elem),
		}
	}
	return s, nil
}

// optionalString decodes a STRING element that may be absent. Faults are
// logged and reported as absent.
func optionalString(p Payload, pos uint64, log *slog.Logger) (string, bool) {
	f, ok := optionalField(p, pos, mcs.String, log)
	if !ok {
		return "", false
	}
	return f.StringValue()
}

// optionalBool decodes a NULLABLE_BOOL element; absent, null and faulty
// elements all read as nil.
func optionalBool(p Payload, pos uint64, log *slog.Logger) *bool {
	f, ok := optionalField(p, pos, mcs.NullableBool, log)
	if !ok {
		return nil
	}
	b, _ := f.Value.(*bool)
	return b
}

func optionalField(p Payload, pos uint64, want mcs.DataType, log *slog.Logger) (mcs.Field, bool) {
	elem, ok := p.Components[pos]
	if !ok {
		return mcs.Field{}, false
	}
	f, err := mcs.DecodeElement(elem)
	if err != nil {
		log.Warn("ignoring optional field", "position", pos, "error", err)
		return mcs.Field{}, false
	}
	if f.Type != want {
		log.Warn("ignoring optional field", "position", pos,
			"expected", want.String(), "actual", f.Type.String())
		return mcs.Field{}, false
	}
	return f, true
}

// splitElement reads the envelope of the element at pos without decoding
// its payload.
func splitElement(pos uint64, elem wire.Value) (uint64, wire.Value, error) {
	arr, ok := elem.(wire.Array)
	if !ok || len(arr) != 2 {
		return 0, nil, malformedAt(componentPos(pos), "element is not a [TypeId, [Value]] pair", elem)
	}
	tag, ok := wire.AsUint64(arr[0])
	if !ok {
		return 0, nil, malformedAt(componentPos(pos), "type tag is not a non-negative integer", elem)
	}
	return tag, arr[1], nil
}
