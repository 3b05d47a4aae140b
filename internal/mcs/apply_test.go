package mcs

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spacesync/internal/property"
	"github.com/roach88/spacesync/internal/replicated"
	"github.com/roach88/spacesync/internal/testutil"
	"github.com/roach88/spacesync/internal/wire"
)

const (
	keyName property.Key = iota
	keyPosition
	keyVisible
	keyReserved
)

func newStore(t *testing.T) (*property.Store, *testutil.LogRecorder) {
	t.Helper()
	schema, err := property.NewSchema([]property.Entry{
		{Key: keyName, Name: "Name", Default: replicated.NewString("")},
		{Key: keyPosition, Name: "Position", Default: replicated.NewVector3(replicated.DefaultVector3)},
		{Key: keyVisible, Name: "IsVisible", Default: replicated.NewBool(true)},
	}, keyReserved)
	require.NoError(t, err)
	rec, log := testutil.NewLogRecorder()
	return property.New(schema, property.WithLogger(log)), rec
}

func TestApplyComponentUpdate(t *testing.T) {
	store, rec := newStore(t)

	applied, err := ApplyComponentUpdate(store, wire.IntMap{
		uint64(keyName):     elem(String, wire.String("crate")),
		uint64(keyPosition): elem(FloatArray, wire.Array{wire.Float(1), wire.Float(2), wire.Float(3)}),
		uint64(keyVisible):  elem(NullableBool, wire.Bool(false)),
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []property.Key{keyName, keyPosition, keyVisible}, applied)
	assert.Equal(t, "crate", store.Str(keyName))
	assert.Equal(t, replicated.Vector3{X: 1, Y: 2, Z: 3}, store.Vector3(keyPosition))
	assert.False(t, store.Bool(keyVisible))
	assert.Equal(t, applied, store.Dirty())
	assert.Zero(t, rec.Count(slog.LevelWarn))
}

func TestApplyComponentUpdateSkipsForwardCompatibleEntries(t *testing.T) {
	store, rec := newStore(t)

	applied, err := ApplyComponentUpdate(store, wire.StringMap{
		"0":  elem(String, wire.String("crate")),
		"1":  elem(String, wire.String("wrong type")),
		"3":  elem(String, wire.String("reserved")),
		"40": elem(String, wire.String("future key")),
		"2":  wire.Array{wire.Uint(99), wire.Array{wire.Bool(true)}},
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, []property.Key{keyName}, applied)
	assert.Equal(t, replicated.DefaultVector3, store.Vector3(keyPosition))
	assert.True(t, store.Bool(keyVisible))
	assert.Equal(t, 4, rec.Count(slog.LevelWarn))
}

func TestApplyComponentUpdateAbortsOnMalformedElement(t *testing.T) {
	store, _ := newStore(t)

	_, err := ApplyComponentUpdate(store, wire.IntMap{
		0: elem(String, wire.String("crate")),
		1: wire.Array{wire.Uint(uint64(FloatArray))},
	}, nil)

	assert.True(t, IsMalformed(err))
	assert.Equal(t, "", store.Str(keyName), "nothing is written when the patch is malformed")
	assert.Empty(t, store.Dirty())
}

func TestApplyComponentUpdateRejectsNonMap(t *testing.T) {
	store, _ := newStore(t)

	_, err := ApplyComponentUpdate(store, wire.Array{}, nil)
	assert.True(t, IsMalformed(err))

	applied, err := ApplyComponentUpdate(store, wire.Null{}, nil)
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestEncodeComponentUpdateRoundTrip(t *testing.T) {
	src, _ := newStore(t)
	src.Set(keyName, replicated.NewString("lamp"))
	src.Set(keyPosition, replicated.NewVector3(replicated.Vector3{X: -1, Y: 0.5, Z: 8}))

	patch, err := EncodeComponentUpdate(src, src.Dirty())
	require.NoError(t, err)
	assert.Len(t, patch, 2)

	data, err := wire.Marshal(patch)
	require.NoError(t, err)
	received, err := wire.Unmarshal(data)
	require.NoError(t, err)

	dst, _ := newStore(t)
	applied, err := ApplyComponentUpdate(dst, received, nil)
	require.NoError(t, err)
	assert.Equal(t, []property.Key{keyName, keyPosition}, applied)
	assert.Equal(t, src.Snapshot(), dst.Snapshot())
}

func TestEncodeComponentUpdateUnknownKey(t *testing.T) {
	store, _ := newStore(t)
	_, err := EncodeComponentUpdate(store, []property.Key{keyReserved})
	assert.ErrorContains(t, err, "not populated")
}

func TestBridgeStringMap(t *testing.T) {
	v := replicated.NewStringMap(replicated.Map{
		"SpaceId": replicated.NewString("abc"),
		"Depth":   replicated.NewInt(2),
	})

	f, err := FromReplicated(v)
	require.NoError(t, err)
	assert.Equal(t, StringDictionary, f.Type)

	back, err := ToReplicated(f)
	require.NoError(t, err)
	assert.True(t, back.Equal(v))
}

func TestBridgeRejectsUnrepresentableFields(t *testing.T) {
	_, err := ToReplicated(NullBoolField())
	assert.True(t, IsMalformed(err))

	_, err = ToReplicated(FloatArrayField(1, 2, 3, 4, 5))
	assert.ErrorContains(t, err, "do not form a vector")

	_, err = ToReplicated(Field{Type: BoolArray, Value: []bool{true}})
	assert.Error(t, err)

	_, err = FromReplicated(replicated.Value{})
	assert.True(t, IsMalformed(err))
}
