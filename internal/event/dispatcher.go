package event

import (
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/roach88/spacesync/internal/mcs"
	"github.com/roach88/spacesync/internal/wire"
)

// Event is a decoded application event record.
type Event interface {
	EventName() string
}

// DecodeFunc turns a validated payload into a typed record. It must not log
// the error it returns; the caller does.
type DecodeFunc func(p Payload, log *slog.Logger) (Event, error)

// Generic is the best-effort record for events without a registered
// decoder. Fields holds every element that decoded; the rest are skipped
// with a warning.
type Generic struct {
	Name        string               `json:"name"`
	SenderID    uint64               `json:"sender_id"`
	RecipientID *uint64              `json:"recipient_id"`
	Fields      map[uint64]mcs.Field `json:"fields"`
}

// EventName implements Event.
func (g Generic) EventName() string { return g.Name }

// Dispatcher routes payloads to decoders by event name.
//
// Thread-safety: Register must not race with Decode. Decode itself is safe
// for concurrent use.
type Dispatcher struct {
	decoders map[string]DecodeFunc
	log      *slog.Logger
}

// NewDispatcher creates a dispatcher with every built-in event registered.
// A nil log discards.
func NewDispatcher(log *slog.Logger) *Dispatcher {
	d := &Dispatcher{
		decoders: make(map[string]DecodeFunc),
		log:      orDiscard(log),
	}
	d.Register(AsyncCallCompletedName, func(p Payload, log *slog.Logger) (Event, error) {
		ev, err := decodeAsyncCallCompleted(p, log)
		if err != nil {
			return nil, err
		}
		return ev, nil
	})
	return d
}

// Register installs fn for name, replacing any previous decoder.
func (d *Dispatcher) Register(name string, fn DecodeFunc) {
	d.decoders[name] = fn
}

// Names returns the registered event names, sorted.
func (d *Dispatcher) Names() []string {
	return slices.Sorted(maps.Keys(d.decoders))
}

// Decode parses the envelope and runs the decoder registered for its name,
// falling back to Generic. A failed decode is logged once with an excerpt
// and no record is returned.
func (d *Dispatcher) Decode(payload wire.Value) (Event, error) {
	p, err := ParsePayload(payload)
	if err != nil {
		logDropped(d.log, "", err)
		return nil, err
	}
	fn, ok := d.decoders[p.Name]
	if !ok {
		return decodeGeneric(p, d.log), nil
	}
	ev, err := fn(p, d.log)
	if err != nil {
		logDropped(d.log, p.Name, err)
		return nil, err
	}
	return ev, nil
}

func decodeGeneric(p Payload, log *slog.Logger) Generic {
	g := Generic{
		Name:        p.Name,
		SenderID:    p.SenderID,
		RecipientID: p.RecipientID,
		Fields:      make(map[uint64]mcs.Field, len(p.Components)),
	}
	for _, pos := range p.Positions() {
		f, err := mcs.DecodeElement(p.Components[pos])
		if err != nil {
			log.Warn("skipping event field", "event", p.Name, "position", pos, "error", err)
			continue
		}
		g.Fields[pos] = f
	}
	return g
}

func logDropped(log *slog.Logger, name string, err error) {
	log.Error("dropping event", "event", name, "error", err)
}

func orDiscard(log *slog.Logger) *slog.Logger {
	if log == nil {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return log
}
