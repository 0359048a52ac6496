package creation

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies the variant of a Creation Object.
// The set is closed: adding a kind means adding a constant here,
// an extraction rule and a classifier branch.
type Kind int

const (
	KindTable Kind = iota
	KindView
	KindFunction
	KindTrigger
	KindIndex
	KindType
	KindProcedure
	KindAggregate
	KindInsert
	KindSelect
	KindAlter
)

var kindNames = [...]string{
	KindTable:     "table",
	KindView:      "view",
	KindFunction:  "function",
	KindTrigger:   "trigger",
	KindIndex:     "index",
	KindType:      "type",
	KindProcedure: "procedure",
	KindAggregate: "aggregate",
	KindInsert:    "insert",
	KindSelect:    "select",
	KindAlter:     "alter",
}

// String returns the lower-case SQL keyword for the kind.
func (k Kind) String() string {
	if k.IsValid() {
		return kindNames[k]
	}
	return fmt.Sprintf("Unknown(%d)", int(k))
}

// IsValid returns true if the Kind is a defined value.
func (k Kind) IsValid() bool {
	return k >= KindTable && k <= KindAlter
}

// ParseKind maps a keyword such as "TABLE" or "view" to its Kind.
func ParseKind(s string) (Kind, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k, name := range kindNames {
		if name == s {
			return Kind(k), true
		}
	}
	return 0, false
}

// MarshalText renders the kind by name in JSON and YAML output.
func (k Kind) MarshalText() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("invalid kind %d", int(k))
	}
	return []byte(k.String()), nil
}

// NamespaceObjectIdentity is the UUID v5 namespace for object IDs.
var NamespaceObjectIdentity = uuid.NewSHA1(uuid.NameSpaceURL, []byte("pgcreation/object-identity/v1"))

// Object is one classified statement: a schema object or a DML statement.
//
// Name and Dependencies are derived when the object is built and are not
// changed afterwards. Filename is filled in by whoever read the statement.
type Object struct {
	// ID is a deterministic UUID v5 of Kind and Name.
	ID uuid.UUID `json:"id" yaml:"id"`

	Kind Kind `json:"kind" yaml:"kind"`

	// Name is the object's identity: the declared name, or a content
	// hash for anonymous statements such as SELECT.
	Name string `json:"name" yaml:"name"`

	// Dependencies lists bare identifiers of objects this one references,
	// in order of first appearance, without duplicates.
	Dependencies []string `json:"dependencies" yaml:"dependencies"`

	// Filename is the path of the file the statement was read from.
	Filename string `json:"filename,omitempty" yaml:"filename,omitempty"`

	// SQL is the raw statement text.
	SQL string `json:"sql" yaml:"sql"`
}

// NewObject builds an Object and assigns its ID.
// The dependency slice is copied so later changes by the caller are not observed.
func NewObject(kind Kind, sql, name string, deps []string) *Object {
	owned := make([]string, len(deps))
	copy(owned, deps)

	return &Object{
		ID:           ObjectID(kind, name),
		Kind:         kind,
		Name:         name,
		Dependencies: owned,
		SQL:          sql,
	}
}

// ObjectID returns the deterministic identifier for a kind/name pair.
func ObjectID(kind Kind, name string) uuid.UUID {
	return uuid.NewSHA1(NamespaceObjectIdentity, []byte(kind.String()+":"+name))
}

// Collection maps object names to objects.
//
// Adding an object whose name is already present replaces the earlier one
// (last write wins). The replaced entry keeps its original position in Names.
// A Collection is not safe for concurrent mutation.
type Collection struct {
	objects map[string]*Object
	order   []string
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		objects: make(map[string]*Object),
	}
}

// Add inserts obj under obj.Name. It returns the object it replaced, if any.
func (c *Collection) Add(obj *Object) (replaced *Object) {
	if prev, exists := c.objects[obj.Name]; exists {
		replaced = prev
	} else {
		c.order = append(c.order, obj.Name)
	}
	c.objects[obj.Name] = obj
	return replaced
}

// Get returns the object stored under name.
func (c *Collection) Get(name string) (*Object, bool) {
	obj, ok := c.objects[name]
	return obj, ok
}

// Len returns the number of distinct names in the collection.
func (c *Collection) Len() int {
	return len(c.objects)
}

// Names returns object names in first-insertion order.
func (c *Collection) Names() []string {
	names := make([]string, len(c.order))
	copy(names, c.order)
	return names
}

// Objects returns a copy of the name to object mapping.
func (c *Collection) Objects() map[string]*Object {
	out := make(map[string]*Object, len(c.objects))
	for name, obj := range c.objects {
		out[name] = obj
	}
	return out
}

// Ordered returns the objects in first-insertion order of their names.
func (c *Collection) Ordered() []*Object {
	out := make([]*Object, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.objects[name])
	}
	return out
}
