package component

import (
	"errors"
	"fmt"

	"github.com/roach88/spacesync/internal/catalog"
	"github.com/roach88/spacesync/internal/property"
	"github.com/roach88/spacesync/internal/replicated"
)

// Kind identifies a component type.
type Kind int

const (
	KindInvalid Kind = iota
	KindAnimatedModel
	KindCollision
)

var kindNames = map[Kind]string{
	KindAnimatedModel: "AnimatedModel",
	KindCollision:     "Collision",
}

// String returns the catalogue name of k.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Invalid"
}

// ParseKind looks a kind up by catalogue name.
func ParseKind(name string) (Kind, bool) {
	for k, n := range kindNames {
		if n == name {
			return k, true
		}
	}
	return KindInvalid, false
}

// Kinds returns every valid kind in ascending order.
func Kinds() []Kind {
	return []Kind{KindAnimatedModel, KindCollision}
}

// Schema returns the property layout of k.
func Schema(k Kind) (*property.Schema, bool) {
	switch k {
	case KindAnimatedModel:
		return animatedModelSchema, true
	case KindCollision:
		return collisionSchema, true
	}
	return nil, false
}

// The schemas are checked against the embedded key catalogue when the
// package is initialized; a divergence panics like property.MustSchema.
func init() {
	cat, err := catalog.Default()
	if err != nil {
		panic(fmt.Sprintf("component: load key catalogue: %v", err))
	}
	if err := verifySchemas(cat); err != nil {
		panic(fmt.Sprintf("component: %v", err))
	}
}

// verifySchemas checks every kind's schema against cat.
func verifySchemas(cat *catalog.Catalog) error {
	var errs []error
	for _, k := range Kinds() {
		schema, _ := Schema(k)
		if err := cat.Verify(k.String(), schema); err != nil {
			errs = append(errs, fmt.Errorf("kind %s: %w", k, err))
		}
	}
	return errors.Join(errs...)
}

// NewStore creates a populated property store for k.
func NewStore(k Kind, opts ...property.Option) (*property.Store, bool) {
	schema, ok := Schema(k)
	if !ok {
		return nil, false
	}
	return property.New(schema, opts...), true
}

var (
	identityRotation = replicated.Vector4{X: 0, Y: 0, Z: 0, W: 1}
	unitScale        = replicated.Vector3{X: 1, Y: 1, Z: 1}
)
