package cli

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/spacesync/internal/component"
	"github.com/roach88/spacesync/internal/property"
	"github.com/roach88/spacesync/internal/replicated"
)

const collisionUpdate = `{"0": [17, [[1, 2, 3]]], "3": [12, [2]], "99": [20, ["ignored"]]}`

func TestApply_Text(t *testing.T) {
	path := writeFile(t, "update.json", []byte(collisionUpdate))

	stdout, stderr, err := execute(t, testConfig(t), "apply", "--kind", "Collision", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Collision: 2 properties updated\n")
	assert.Contains(t, stdout, "(1, 2, 3)")
	assert.Contains(t, stderr, "skipping component property")
}

func TestApply_JSON(t *testing.T) {
	path := writeFile(t, "update.json", []byte(collisionUpdate))

	stdout, _, err := execute(t, testConfig(t), "apply", "--kind", "Collision", path, "--format", "json")
	require.NoError(t, err)

	var resp struct {
		Status string      `json:"status"`
		Data   ApplyResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "Collision", resp.Data.Kind)
	assert.Equal(t, []property.Key{component.CollisionPosition, component.CollisionShapeKey}, resp.Data.Updated)
	require.Len(t, resp.Data.Properties, 8)

	pos := resp.Data.Properties[component.CollisionPosition]
	assert.Equal(t, "Position", pos.Name)
	assert.True(t, pos.Updated)
	assert.True(t, replicated.NewVector3(replicated.Vector3{X: 1, Y: 2, Z: 3}).Equal(pos.Value))

	shape := resp.Data.Properties[component.CollisionShapeKey]
	assert.True(t, shape.Updated)
	assert.True(t, replicated.NewInt(int64(component.ShapeSphere)).Equal(shape.Value))

	assert.False(t, resp.Data.Properties[component.CollisionModeKey].Updated)
}

func TestApply_UnsupportedTagSkipped(t *testing.T) {
	path := writeFile(t, "update.json", []byte(`{"0": [99, [1]]}`))

	stdout, stderr, err := execute(t, testConfig(t), "apply", "--kind", "Collision", path)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Collision: 0 properties updated")
	assert.Contains(t, stderr, "skipping component property")
}

func TestApply_MalformedUpdate(t *testing.T) {
	path := writeFile(t, "update.json", []byte(`{"0": [20, [1]]}`))

	_, _, err := execute(t, testConfig(t), "apply", "--kind", "Collision", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), "failed to apply update")
}

func TestApply_UnknownKind(t *testing.T) {
	path := writeFile(t, "update.json", []byte(collisionUpdate))

	_, _, err := execute(t, testConfig(t), "apply", "--kind", "Lamp", path)
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.Contains(t, err.Error(), `unknown component kind "Lamp"`)
}

func TestApply_KindRequired(t *testing.T) {
	path := writeFile(t, "update.json", []byte(collisionUpdate))

	_, _, err := execute(t, testConfig(t), "apply", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required flag")
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		value replicated.Value
		want  string
	}{
		{replicated.NewBool(true), "true"},
		{replicated.NewInt(7), "7"},
		{replicated.NewFloat(1.5), "1.5"},
		{replicated.NewString("crate"), `"crate"`},
		{replicated.NewVector2(replicated.Vector2{X: 1, Y: 2}), "(1, 2)"},
		{replicated.NewVector4(replicated.Vector4{W: 1}), "(0, 0, 0, 1)"},
		{replicated.NewStringMap(replicated.Map{"a": replicated.NewInt(1)}), "map[1]"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value))
		})
	}
}
