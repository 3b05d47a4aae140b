package event

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spacesync/internal/mcs"
	"github.com/roach88/spacesync/internal/testutil"
	"github.com/roach88/spacesync/internal/wire"
)

func TestParsePayload(t *testing.T) {
	p, err := ParsePayload(wire.Array{
		wire.String("ComponentUpdated"),
		wire.Int(7),
		wire.Uint(9),
		wire.StringMap{"4": element(mcs.String, wire.String("x"))},
	})
	require.NoError(t, err)

	assert.Equal(t, "ComponentUpdated", p.Name)
	assert.Equal(t, uint64(7), p.SenderID)
	require.NotNil(t, p.RecipientID)
	assert.Equal(t, uint64(9), *p.RecipientID)
	assert.Equal(t, []uint64{4}, p.Positions())
}

func TestParsePayloadRejectsMalformedEnvelopes(t *testing.T) {
	tests := []struct {
		name     string
		v        wire.Value
		position string
	}{
		{"not an array", wire.StringMap{}, "payload"},
		{"three elements", wire.Array{wire.String("E"), wire.Uint(1), wire.Null{}}, "payload"},
		{"five elements", wire.Array{wire.String("E"), wire.Uint(1), wire.Null{}, wire.IntMap{}, wire.Null{}}, "payload"},
		{"numeric name", wire.Array{wire.Uint(1), wire.Uint(1), wire.Null{}, wire.IntMap{}}, "payload[0]"},
		{"negative sender", wire.Array{wire.String("E"), wire.Int(-1), wire.Null{}, wire.IntMap{}}, "payload[1]"},
		{"string recipient", wire.Array{wire.String("E"), wire.Uint(1), wire.String("me"), wire.IntMap{}}, "payload[2]"},
		{"array components", wire.Array{wire.String("E"), wire.Uint(1), wire.Null{}, wire.Array{}}, "payload[3]"},
		{"non-decimal keys", wire.Array{wire.String("E"), wire.Uint(1), wire.Null{}, wire.StringMap{"a": wire.Null{}}}, "payload[3]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePayload(tt.v)
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, ErrCodeMalformedPayload, de.Code)
			assert.Equal(t, tt.position, de.Position)
		})
	}
}

func TestDispatcherRoutesByName(t *testing.T) {
	d := NewDispatcher(nil)
	assert.Equal(t, []string{AsyncCallCompletedName}, d.Names())

	ev, err := d.Decode(currentPayload())
	require.NoError(t, err)

	acc, ok := ev.(AsyncCallCompleted)
	require.True(t, ok)
	assert.Equal(t, AsyncCallCompletedName, acc.EventName())
	assert.Equal(t, "GroupId", acc.ReferenceType)
}

func TestDispatcherFallsBackToGeneric(t *testing.T) {
	rec, log := testutil.NewLogRecorder()
	d := NewDispatcher(log)

	ev, err := d.Decode(wire.Array{
		wire.String("UserPermissionsChanged"),
		wire.Uint(5),
		wire.Null{},
		wire.IntMap{
			0: element(mcs.String, wire.String("editor")),
			1: element(mcs.BoolArray, wire.Array{wire.Bool(true), wire.Bool(false)}),
			2: wire.Array{wire.Uint(99), wire.Array{wire.Null{}}},
		},
	})
	require.NoError(t, err)

	g, ok := ev.(Generic)
	require.True(t, ok)
	assert.Equal(t, "UserPermissionsChanged", g.EventName())
	assert.Equal(t, uint64(5), g.SenderID)
	assert.Nil(t, g.RecipientID)
	assert.Equal(t, map[uint64]mcs.Field{
		0: mcs.StringField("editor"),
		1: {Type: mcs.BoolArray, Value: []bool{true, false}},
	}, g.Fields)
	assert.Equal(t, 1, rec.Count(slog.LevelWarn))
}

func TestDispatcherCustomDecoder(t *testing.T) {
	type ping struct{ Generic }
	d := NewDispatcher(nil)
	d.Register("Ping", func(p Payload, _ *slog.Logger) (Event, error) {
		return ping{Generic{Name: p.Name, SenderID: p.SenderID}}, nil
	})

	ev, err := d.Decode(wire.Array{wire.String("Ping"), wire.Uint(1), wire.Null{}, wire.IntMap{}})
	require.NoError(t, err)
	assert.IsType(t, ping{}, ev)
	assert.Equal(t, "Ping", ev.EventName())
}

func TestDispatcherLogsDroppedEventOnce(t *testing.T) {
	rec, log := testutil.NewLogRecorder()
	d := NewDispatcher(log)

	payload := currentPayload()
	payload[3].(wire.IntMap)[1] = wire.Array{wire.Uint(99), wire.Array{wire.Null{}}}

	ev, err := d.Decode(payload)
	assert.Nil(t, ev)
	assert.True(t, IsUnsupportedType(err))

	records := rec.Records()
	require.Len(t, records, 1)
	assert.Equal(t, "dropping event", records[0].Message)
	assert.Equal(t, AsyncCallCompletedName, records[0].Attrs["event"])
}
