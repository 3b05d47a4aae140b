package catalog

import (
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"

	"github.com/roach88/spacesync/internal/property"
	"github.com/roach88/spacesync/internal/replicated"
)

//go:embed catalog.cue
var source []byte

// reservedName marks a retired key in the catalogue.
const reservedName = "RESERVED"

// KeyDecl is one positional key of a component kind.
type KeyDecl struct {
	Key      property.Key
	Name     string
	Type     replicated.Type // InvalidType for reserved keys
	Reserved bool
}

// Kind is the declared key layout of one component kind.
type Kind struct {
	Name string
	Keys []KeyDecl
}

// Catalog holds every declared kind, in declaration order.
type Catalog struct {
	kinds []Kind
}

// LoadError reports a catalogue that does not compile or validate.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Source returns the embedded catalogue text.
func Source() []byte {
	return slices.Clone(source)
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(source)
})

// Default returns the embedded catalogue. It is compiled once.
func Default() (*Catalog, error) {
	return loadDefault()
}

// Load compiles CUE catalogue source. The source must declare a top-level
// kinds struct; each kind's keys are validated against the #Key definition
// and must be concrete.
func Load(src []byte) (*Catalog, error) {
	ctx := cuecontext.New()
	v := ctx.CompileBytes(src, cue.Filename("catalog.cue"))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	kindsVal := v.LookupPath(cue.ParsePath("kinds"))
	if !kindsVal.Exists() {
		return nil, &LoadError{Field: "kinds", Message: "kinds is required", Pos: v.Pos()}
	}
	iter, err := kindsVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	c := &Catalog{}
	for iter.Next() {
		kind, err := parseKind(iter.Label(), iter.Value())
		if err != nil {
			return nil, err
		}
		c.kinds = append(c.kinds, kind)
	}
	return c, nil
}

func parseKind(name string, v cue.Value) (Kind, error) {
	kind := Kind{Name: name}
	keysIter, err := v.LookupPath(cue.ParsePath("keys")).List()
	if err != nil {
		return Kind{}, formatCUEError(err)
	}

	for i := 0; keysIter.Next(); i++ {
		kv := keysIter.Value()
		keyName, err := kv.LookupPath(cue.ParsePath("name")).String()
		if err != nil {
			return Kind{}, formatCUEError(err)
		}
		typeName, err := kv.LookupPath(cue.ParsePath("type")).String()
		if err != nil {
			return Kind{}, formatCUEError(err)
		}

		decl := KeyDecl{Key: property.Key(i), Name: keyName}
		if keyName == reservedName {
			decl.Reserved = true
		} else {
			typ, ok := replicated.ParseType(typeName)
			if !ok || typ == replicated.InvalidType {
				return Kind{}, &LoadError{
					Field:   fmt.Sprintf("%s.keys[%d].type", name, i),
					Message: fmt.Sprintf("unknown value type %q", typeName),
					Pos:     kv.Pos(),
				}
			}
			decl.Type = typ
		}
		kind.Keys = append(kind.Keys, decl)
	}
	return kind, nil
}

// Kinds returns every kind in declaration order.
func (c *Catalog) Kinds() []Kind {
	return slices.Clone(c.kinds)
}

// Kind looks a kind up by name.
func (c *Catalog) Kind(name string) (Kind, bool) {
	for _, k := range c.kinds {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// Problem is one divergence between a catalogue kind and a schema.
type Problem struct {
	Key     property.Key
	Message string
}

// MismatchError reports a schema whose default population does not match
// the declared catalogue.
type MismatchError struct {
	Kind     string
	Problems []Problem
}

func (e *MismatchError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = fmt.Sprintf("key %d: %s", p.Key, p.Message)
	}
	return fmt.Sprintf("catalog: %s diverges from its schema: %s", e.Kind, strings.Join(parts, "; "))
}

// Verify checks schema against the declared layout of kind: every declared
// key populated with a default of the declared type and name, every
// reserved key left unpopulated and marked reserved, and no extra keys.
func (c *Catalog) Verify(kind string, schema *property.Schema) error {
	k, ok := c.Kind(kind)
	if !ok {
		return &MismatchError{Kind: kind, Problems: []Problem{{Message: "kind is not declared"}}}
	}

	var problems []Problem
	add := func(key property.Key, format string, args ...any) {
		problems = append(problems, Problem{Key: key, Message: fmt.Sprintf(format, args...)})
	}

	declared := make(map[property.Key]bool, len(k.Keys))
	for _, decl := range k.Keys {
		declared[decl.Key] = true
		entry, populated := schema.Entry(decl.Key)

		if decl.Reserved {
			if populated {
				add(decl.Key, "reserved key is populated as %s", entry.Name)
			} else if !schema.IsReserved(decl.Key) {
				add(decl.Key, "reserved key is not marked reserved")
			}
			continue
		}
		if !populated {
			add(decl.Key, "%s has no default", decl.Name)
			continue
		}
		if entry.Name != decl.Name {
			add(decl.Key, "declared as %s but populated as %s", decl.Name, entry.Name)
		}
		if got := entry.Default.Type(); got != decl.Type {
			add(decl.Key, "%s is declared %s but defaults to %s", decl.Name, decl.Type, got)
		}
	}

	for _, entry := range schema.Entries() {
		if !declared[entry.Key] {
			add(entry.Key, "%s is populated but not declared", entry.Name)
		}
	}
	for _, key := range schema.Reserved() {
		if !declared[key] {
			add(key, "reserved in the schema but not declared")
		}
	}

	if len(problems) > 0 {
		return &MismatchError{Kind: kind, Problems: problems}
	}
	return nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}
	first := errs[0]
	if positions := errors.Positions(first); len(positions) > 0 {
		return &LoadError{Field: "cue", Message: first.Error(), Pos: positions[0]}
	}
	return err
}
