package component

import (
	"github.com/roach88/spacesync/internal/property"
	"github.com/roach88/spacesync/internal/replicated"
)

// Collision property keys.
const (
	CollisionPosition property.Key = iota
	CollisionRotation
	CollisionScale
	CollisionShapeKey
	CollisionModeKey
	CollisionAssetID
	CollisionAssetCollectionID
	CollisionThirdPartyComponentRef
)

// CollisionShape is the collider geometry.
type CollisionShape int64

const (
	ShapeBox CollisionShape = iota
	ShapeMesh
	ShapeSphere
	ShapeCapsule
)

// CollisionMode selects between solid collision and trigger volumes.
type CollisionMode int64

const (
	ModeCollision CollisionMode = iota
	ModeTrigger
)

// Primitive collider dimensions before scaling.
const (
	DefaultSphereRadius      float32 = 0.5
	DefaultCapsuleHalfWidth  float32 = 0.5
	DefaultCapsuleHalfHeight float32 = 1
)

var collisionSchema = property.MustSchema([]property.Entry{
	{Key: CollisionPosition, Name: "Position", Default: replicated.NewVector3(replicated.Vector3{})},
	{Key: CollisionRotation, Name: "Rotation", Default: replicated.NewVector4(identityRotation)},
	{Key: CollisionScale, Name: "Scale", Default: replicated.NewVector3(unitScale)},
	{Key: CollisionShapeKey, Name: "CollisionShape", Default: replicated.NewInt(int64(ShapeBox))},
	{Key: CollisionModeKey, Name: "CollisionMode", Default: replicated.NewInt(int64(ModeCollision))},
	{Key: CollisionAssetID, Name: "CollisionAssetId", Default: replicated.NewString("")},
	{Key: CollisionAssetCollectionID, Name: "AssetCollectionId", Default: replicated.NewString("")},
	{Key: CollisionThirdPartyComponentRef, Name: "ThirdPartyComponentRef", Default: replicated.NewString("")},
})

// Collision is a collider attached to an entity.
type Collision struct {
	store *property.Store
}

// NewCollision creates a collision component with default state.
func NewCollision(opts ...property.Option) *Collision {
	return &Collision{store: property.New(collisionSchema, opts...)}
}

// Store exposes the underlying property store for replication.
func (c *Collision) Store() *property.Store { return c.store }

// Position returns the collider offset from the entity origin.
func (c *Collision) Position() replicated.Vector3 { return c.store.Vector3(CollisionPosition) }

// SetPosition replaces the collider offset.
func (c *Collision) SetPosition(v replicated.Vector3) {
	c.store.Set(CollisionPosition, replicated.NewVector3(v))
}

// Rotation is a quaternion, XYZW.
func (c *Collision) Rotation() replicated.Vector4 { return c.store.Vector4(CollisionRotation) }

// SetRotation replaces the collider rotation.
func (c *Collision) SetRotation(v replicated.Vector4) {
	c.store.Set(CollisionRotation, replicated.NewVector4(v))
}

// Scale returns the collider scale.
func (c *Collision) Scale() replicated.Vector3 { return c.store.Vector3(CollisionScale) }

// SetScale replaces the collider scale.
func (c *Collision) SetScale(v replicated.Vector3) {
	c.store.Set(CollisionScale, replicated.NewVector3(v))
}

// Shape falls back to ShapeBox when the stored value is not an integer.
func (c *Collision) Shape() CollisionShape { return CollisionShape(c.store.Int(CollisionShapeKey)) }

// SetShape sets the collider shape.
func (c *Collision) SetShape(s CollisionShape) {
	c.store.Set(CollisionShapeKey, replicated.NewInt(int64(s)))
}

// Mode falls back to ModeCollision when the stored value is not an integer.
func (c *Collision) Mode() CollisionMode { return CollisionMode(c.store.Int(CollisionModeKey)) }

// SetMode sets the collision mode.
func (c *Collision) SetMode(m CollisionMode) {
	c.store.Set(CollisionModeKey, replicated.NewInt(int64(m)))
}

// AssetID names the mesh asset used when Shape is ShapeMesh.
func (c *Collision) AssetID() string { return c.store.Str(CollisionAssetID) }

// SetAssetID sets the mesh asset.
func (c *Collision) SetAssetID(id string) {
	c.store.Set(CollisionAssetID, replicated.NewString(id))
}

// AssetCollectionID returns the collection holding the mesh asset.
func (c *Collision) AssetCollectionID() string { return c.store.Str(CollisionAssetCollectionID) }

// SetAssetCollectionID sets the collection holding the mesh asset.
func (c *Collision) SetAssetCollectionID(id string) {
	c.store.Set(CollisionAssetCollectionID, replicated.NewString(id))
}

// ThirdPartyComponentRef returns the external component reference, if any.
func (c *Collision) ThirdPartyComponentRef() string {
	return c.store.Str(CollisionThirdPartyComponentRef)
}

// SetThirdPartyComponentRef sets the external component reference.
func (c *Collision) SetThirdPartyComponentRef(ref string) {
	c.store.Set(CollisionThirdPartyComponentRef, replicated.NewString(ref))
}

// UnscaledBoundingBoxMin is the minimum corner of the unit collider.
func (c *Collision) UnscaledBoundingBoxMin() replicated.Vector3 {
	return replicated.Vector3{X: -0.5, Y: -0.5, Z: -0.5}
}

// UnscaledBoundingBoxMax is the maximum corner of the unit collider.
func (c *Collision) UnscaledBoundingBoxMax() replicated.Vector3 {
	return replicated.Vector3{X: 0.5, Y: 0.5, Z: 0.5}
}

// ScaledBoundingBoxMin applies Scale to UnscaledBoundingBoxMin.
func (c *Collision) ScaledBoundingBoxMin() replicated.Vector3 {
	return scale(c.UnscaledBoundingBoxMin(), c.Scale())
}

// ScaledBoundingBoxMax applies Scale to UnscaledBoundingBoxMax.
func (c *Collision) ScaledBoundingBoxMax() replicated.Vector3 {
	return scale(c.UnscaledBoundingBoxMax(), c.Scale())
}

func scale(v, s replicated.Vector3) replicated.Vector3 {
	return replicated.Vector3{X: v.X * s.X, Y: v.Y * s.Y, Z: v.Z * s.Z}
}
