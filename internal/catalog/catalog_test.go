package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spacesync/internal/property"
	"github.com/roach88/spacesync/internal/replicated"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	names := make([]string, 0)
	for _, k := range c.Kinds() {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{"AnimatedModel", "Collision"}, names)

	am, ok := c.Kind("AnimatedModel")
	require.True(t, ok)
	require.Len(t, am.Keys, 13)
	assert.Equal(t, KeyDecl{Key: 9, Name: "RESERVED", Reserved: true}, am.Keys[9])
	assert.Equal(t, KeyDecl{Key: 10, Name: "AnimationIndex", Type: replicated.IntegerType}, am.Keys[10])
}

const small = `
#ValueType: "Boolean" | "Integer" | "String"
#Key: {
	name: string & !="" & !="RESERVED"
	type: #ValueType
} | {
	name: "RESERVED"
	type: "None"
}
kinds: [string]: keys: [...#Key]
kinds: Lamp: keys: [
	{name: "On", type: "Boolean"},
	{name: "RESERVED", type: "None"},
	{name: "Label", type: "String"},
]
`

func lampSchema(t *testing.T, entries []property.Entry, reserved ...property.Key) *property.Schema {
	t.Helper()
	s, err := property.NewSchema(entries, reserved...)
	require.NoError(t, err)
	return s
}

func TestVerifyAcceptsMatchingSchema(t *testing.T) {
	c, err := Load([]byte(small))
	require.NoError(t, err)

	s := lampSchema(t, []property.Entry{
		{Key: 0, Name: "On", Default: replicated.NewBool(false)},
		{Key: 2, Name: "Label", Default: replicated.NewString("")},
	}, 1)
	assert.NoError(t, c.Verify("Lamp", s))
}

func TestVerifyReportsEveryDivergence(t *testing.T) {
	c, err := Load([]byte(small))
	require.NoError(t, err)

	s := lampSchema(t, []property.Entry{
		{Key: 0, Name: "On", Default: replicated.NewInt(0)},
		{Key: 1, Name: "Dimmer", Default: replicated.NewFloat(1)},
		{Key: 3, Name: "Colour", Default: replicated.NewString("")},
	})

	err = c.Verify("Lamp", s)
	var me *MismatchError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "Lamp", me.Kind)
	assert.Equal(t, []Problem{
		{Key: 0, Message: "On is declared Boolean but defaults to Integer"},
		{Key: 1, Message: "reserved key is populated as Dimmer"},
		{Key: 2, Message: "Label has no default"},
		{Key: 3, Message: "Colour is populated but not declared"},
	}, me.Problems)
}

func TestVerifyRequiresReservedMarker(t *testing.T) {
	c, err := Load([]byte(small))
	require.NoError(t, err)

	s := lampSchema(t, []property.Entry{
		{Key: 0, Name: "On", Default: replicated.NewBool(false)},
		{Key: 2, Name: "Label", Default: replicated.NewString("")},
	})
	assert.ErrorContains(t, c.Verify("Lamp", s), "not marked reserved")
}

func TestVerifyUnknownKind(t *testing.T) {
	c, err := Load([]byte(small))
	require.NoError(t, err)
	assert.ErrorContains(t, c.Verify("Teapot", lampSchema(t, nil)), "kind is not declared")
}

func TestLoadRejectsInvalidCatalogues(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"syntax error", `kinds: {`},
		{"reserved with a type", small + `kinds: Bad: keys: [{name: "RESERVED", type: "String"}]`},
		{"unknown type", small + `kinds: Bad: keys: [{name: "X", type: "Quaternion"}]`},
		{"missing type", small + `kinds: Bad: keys: [{name: "X"}]`},
		{"no kinds", `other: 1`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load([]byte(tt.src))
			assert.Error(t, err)
		})
	}
}
