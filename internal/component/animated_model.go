package component

import (
	"github.com/roach88/spacesync/internal/property"
	"github.com/roach88/spacesync/internal/replicated"
)

// AnimatedModel property keys. Key 9 is a retired slot other peers may still
// send; it stays reserved.
const (
	AnimatedModelName property.Key = iota
	AnimatedModelModelAssetID
	AnimatedModelAssetCollectionID
	AnimatedModelPosition
	AnimatedModelRotation
	AnimatedModelScale
	AnimatedModelIsLoopPlayback
	AnimatedModelIsPlaying
	AnimatedModelIsVisible
	AnimatedModelReserved
	AnimatedModelAnimationIndex
	AnimatedModelIsARVisible
	AnimatedModelThirdPartyComponentRef
)

var animatedModelSchema = property.MustSchema([]property.Entry{
	{Key: AnimatedModelName, Name: "Name", Default: replicated.NewString("")},
	{Key: AnimatedModelModelAssetID, Name: "ModelAssetId", Default: replicated.NewString("")},
	{Key: AnimatedModelAssetCollectionID, Name: "AssetCollectionId", Default: replicated.NewString("")},
	{Key: AnimatedModelPosition, Name: "Position", Default: replicated.NewVector3(replicated.Vector3{})},
	{Key: AnimatedModelRotation, Name: "Rotation", Default: replicated.NewVector4(identityRotation)},
	{Key: AnimatedModelScale, Name: "Scale", Default: replicated.NewVector3(unitScale)},
	{Key: AnimatedModelIsLoopPlayback, Name: "IsLoopPlayback", Default: replicated.NewBool(true)},
	{Key: AnimatedModelIsPlaying, Name: "IsPlaying", Default: replicated.NewBool(true)},
	{Key: AnimatedModelIsVisible, Name: "IsVisible", Default: replicated.NewBool(true)},
	{Key: AnimatedModelAnimationIndex, Name: "AnimationIndex", Default: replicated.NewInt(-1)},
	{Key: AnimatedModelIsARVisible, Name: "IsARVisible", Default: replicated.NewBool(true)},
	{Key: AnimatedModelThirdPartyComponentRef, Name: "ThirdPartyComponentRef", Default: replicated.NewString("")},
}, AnimatedModelReserved)

// AnimatedModel is a skinned model with playback state.
type AnimatedModel struct {
	store *property.Store
}

// NewAnimatedModel creates an animated model component with default state.
func NewAnimatedModel(opts ...property.Option) *AnimatedModel {
	return &AnimatedModel{store: property.New(animatedModelSchema, opts...)}
}

// Store exposes the underlying property store for replication.
func (m *AnimatedModel) Store() *property.Store { return m.store }

// Name returns the display name.
func (m *AnimatedModel) Name() string { return m.store.Str(AnimatedModelName) }

// SetName sets the display name.
func (m *AnimatedModel) SetName(name string) {
	m.store.Set(AnimatedModelName, replicated.NewString(name))
}

// ModelAssetID is kept for older peers. Models now resolve through LODs in
// the asset collection.
func (m *AnimatedModel) ModelAssetID() string { return m.store.Str(AnimatedModelModelAssetID) }

// SetModelAssetID sets the legacy model asset.
func (m *AnimatedModel) SetModelAssetID(id string) {
	m.store.Set(AnimatedModelModelAssetID, replicated.NewString(id))
}

// AssetCollectionID returns the collection the model resolves from.
func (m *AnimatedModel) AssetCollectionID() string {
	return m.store.Str(AnimatedModelAssetCollectionID)
}

// SetAssetCollectionID sets the collection the model resolves from.
func (m *AnimatedModel) SetAssetCollectionID(id string) {
	m.store.Set(AnimatedModelAssetCollectionID, replicated.NewString(id))
}

// Position returns the model offset from the entity origin.
func (m *AnimatedModel) Position() replicated.Vector3 { return m.store.Vector3(AnimatedModelPosition) }

// SetPosition replaces the model offset.
func (m *AnimatedModel) SetPosition(v replicated.Vector3) {
	m.store.Set(AnimatedModelPosition, replicated.NewVector3(v))
}

// Rotation is a quaternion, XYZW.
func (m *AnimatedModel) Rotation() replicated.Vector4 { return m.store.Vector4(AnimatedModelRotation) }

// SetRotation replaces the model rotation.
func (m *AnimatedModel) SetRotation(v replicated.Vector4) {
	m.store.Set(AnimatedModelRotation, replicated.NewVector4(v))
}

// Scale returns the model scale.
func (m *AnimatedModel) Scale() replicated.Vector3 { return m.store.Vector3(AnimatedModelScale) }

// SetScale replaces the model scale.
func (m *AnimatedModel) SetScale(v replicated.Vector3) {
	m.store.Set(AnimatedModelScale, replicated.NewVector3(v))
}

// IsLoopPlayback reports whether the animation restarts when it ends.
func (m *AnimatedModel) IsLoopPlayback() bool { return m.store.Bool(AnimatedModelIsLoopPlayback) }

// SetIsLoopPlayback toggles looping.
func (m *AnimatedModel) SetIsLoopPlayback(b bool) {
	m.store.Set(AnimatedModelIsLoopPlayback, replicated.NewBool(b))
}

// IsPlaying reports whether the selected animation is running.
func (m *AnimatedModel) IsPlaying() bool { return m.store.Bool(AnimatedModelIsPlaying) }

// SetIsPlaying starts or pauses playback.
func (m *AnimatedModel) SetIsPlaying(b bool) {
	m.store.Set(AnimatedModelIsPlaying, replicated.NewBool(b))
}

// IsVisible reports whether the model renders outside AR.
func (m *AnimatedModel) IsVisible() bool { return m.store.Bool(AnimatedModelIsVisible) }

// SetIsVisible toggles visibility outside AR.
func (m *AnimatedModel) SetIsVisible(b bool) {
	m.store.Set(AnimatedModelIsVisible, replicated.NewBool(b))
}

// AnimationIndex is -1 when no animation is selected.
func (m *AnimatedModel) AnimationIndex() int64 { return m.store.Int(AnimatedModelAnimationIndex) }

// SetAnimationIndex selects an animation; -1 clears the selection.
func (m *AnimatedModel) SetAnimationIndex(i int64) {
	m.store.Set(AnimatedModelAnimationIndex, replicated.NewInt(i))
}

// IsARVisible reports whether the model renders in AR.
func (m *AnimatedModel) IsARVisible() bool { return m.store.Bool(AnimatedModelIsARVisible) }

// SetIsARVisible toggles visibility in AR.
func (m *AnimatedModel) SetIsARVisible(b bool) {
	m.store.Set(AnimatedModelIsARVisible, replicated.NewBool(b))
}

// ThirdPartyComponentRef returns the external component reference, if any.
func (m *AnimatedModel) ThirdPartyComponentRef() string {
	return m.store.Str(AnimatedModelThirdPartyComponentRef)
}

// SetThirdPartyComponentRef sets the external component reference.
func (m *AnimatedModel) SetThirdPartyComponentRef(ref string) {
	m.store.Set(AnimatedModelThirdPartyComponentRef, replicated.NewString(ref))
}
