package resolve

import (
	"unicode"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/core"
)

// Resolver maps schema type tokens to Go types. Identifiers of declared
// types are assigned up front in declaration order so every run agrees.
type Resolver struct {
	schema *core.Schema
	types  map[string][]*core.ProtocolType
	enums  map[string]*core.Enum

	typeIdents map[*core.ProtocolType]string
	enumIdents map[*core.Enum]string
	namers     map[core.Category]*Namer

	mins   map[*core.ProtocolType]int
	sizing map[*core.ProtocolType]bool
}

func NewResolver(schema *core.Schema) *Resolver {
	r := &Resolver{
		schema:     schema,
		types:      map[string][]*core.ProtocolType{},
		enums:      map[string]*core.Enum{},
		typeIdents: map[*core.ProtocolType]string{},
		enumIdents: map[*core.Enum]string{},
		namers:     map[core.Category]*Namer{},
		mins:       map[*core.ProtocolType]int{},
		sizing:     map[*core.ProtocolType]bool{},
	}
	for _, e := range schema.Enums {
		r.enums[e.Name] = e
		r.enumIdents[e] = r.namer(core.CategoryEnums).Name(Exported(e.Name))
	}
	for _, t := range schema.Types {
		r.types[t.Name] = append(r.types[t.Name], t)
		if t.Templated != "" || isBuiltin(t.Name) {
			continue
		}
		r.typeIdents[t] = r.namer(t.Category.NonNone()).Name(Exported(t.Name))
	}
	return r
}

func (r *Resolver) namer(c core.Category) *Namer {
	n, ok := r.namers[c]
	if !ok {
		n = NewNamer("Names", "New")
		r.namers[c] = n
	}
	return n
}

// Reserve claims a generated identifier in package c.
func (r *Resolver) Reserve(c core.Category, ident string) string {
	return r.namer(c.NonNone()).Name(ident)
}

func (r *Resolver) TypeIdent(t *core.ProtocolType) string {
	return r.typeIdents[t]
}

func (r *Resolver) EnumIdent(e *core.Enum) string {
	return r.enumIdents[e]
}

func isBuiltin(name string) bool {
	if _, ok := primitives[name]; ok {
		return true
	}
	_, ok := generics[name]
	return ok
}

// IsAlias reports whether t only renames its parent.
func IsAlias(t *core.ProtocolType) bool {
	if t.Templated != "" || t.Parent == "" {
		return false
	}
	if t.Primitive {
		return true
	}
	empty := true
	core.WalkFields(t.Fields, func(*core.Field) { empty = false })
	return empty
}

// IsNewtype reports whether an alias named name of target becomes a distinct
// Go type. Names mixing upper and lower case such as ObjectId name a concept
// of their own, DWORD or uint style names stay plain aliases.
func IsNewtype(name string, target *Type) bool {
	if target.Kind != KindPrimitive && target.Kind != KindNewtype {
		return false
	}
	var upper, lower bool
	for _, r := range name {
		upper = upper || unicode.IsUpper(r)
		lower = lower || unicode.IsLower(r)
	}
	return upper && lower
}

// Resolve maps token to a Go type as referenced from package from.
func (r *Resolver) Resolve(token string, from core.Category) (*Type, error) {
	return r.resolve(token, from.NonNone(), map[string]bool{})
}

func (r *Resolver) resolve(token string, from core.Category, visiting map[string]bool) (*Type, error) {
	name, args, err := splitToken(token)
	if err != nil {
		return nil, err
	}
	if kind, ok := generics[name]; ok {
		return r.generic(token, kind, args, from, visiting)
	}
	if len(args) > 0 {
		return nil, errors.Errorf("unknown type %q: templated types are not supported", token)
	}
	if p, ok := primitives[name]; ok {
		return &Type{Kind: KindPrimitive, Token: token, Prim: p, Min: p.Size()}, nil
	}
	if visiting[name] {
		return nil, errors.Errorf("type alias cycle at %q", name)
	}

	t := r.lookupType(name, from)
	e := r.enums[name]
	if e != nil && (t == nil || t.Category.NonNone() != from) {
		return r.enumType(token, e, from)
	}
	if t == nil {
		return nil, errors.Errorf("unknown type %q", token)
	}
	if t.Templated != "" {
		return nil, errors.Errorf("unknown type %q: templated types are not supported", token)
	}
	if IsAlias(t) {
		visiting[name] = true
		defer delete(visiting, name)
		target, err := r.resolve(t.Parent, from, visiting)
		if err != nil {
			return nil, errors.Wrapf(err, "alias %s", name)
		}
		if !IsNewtype(name, target) {
			return target, nil
		}
		if err := checkLayer(from, t.Category.NonNone(), name); err != nil {
			return nil, err
		}
		return &Type{Kind: KindNewtype, Token: token, Prim: target.Prim, Ident: r.typeIdents[t], Category: t.Category.NonNone(), Min: target.Min}, nil
	}
	if t.Primitive {
		return nil, errors.Errorf("primitive type %q has no parent", name)
	}
	if err := checkLayer(from, t.Category.NonNone(), name); err != nil {
		return nil, err
	}
	return &Type{Kind: KindStruct, Token: token, Ident: r.typeIdents[t], Category: t.Category.NonNone(), Min: r.structMin(t)}, nil
}

// structMin adds up the unconditional fields of t. A structure that refers
// back to itself counts the inner reference as empty.
func (r *Resolver) structMin(t *core.ProtocolType) int {
	if n, ok := r.mins[t]; ok {
		return n
	}
	if r.sizing[t] {
		return 0
	}
	r.sizing[t] = true
	defer delete(r.sizing, t)

	var fields []*core.Field
	switch fs := t.Fields.(type) {
	case *core.SimpleFieldSet:
		fields = fs.Fields
	case *core.VariantFieldSet:
		fields = append(append(fields, fs.Common...), fs.Trailing...)
	}
	n := 0
	for _, f := range fields {
		if f.IsAlign() || !f.Condition.IsAlways() {
			continue
		}
		if typ, err := r.Resolve(f.Type, t.Category); err == nil {
			n += typ.Min
		}
	}
	r.mins[t] = n
	return n
}

func (r *Resolver) enumType(token string, e *core.Enum, from core.Category) (*Type, error) {
	if err := checkLayer(from, core.CategoryEnums, e.Name); err != nil {
		return nil, err
	}
	prim, err := r.EnumUnderlying(e)
	if err != nil {
		return nil, err
	}
	return &Type{Kind: KindEnum, Token: token, Prim: prim, Ident: r.enumIdents[e], Category: core.CategoryEnums, Min: prim.Size()}, nil
}

// EnumUnderlying resolves the parent of e to an integer primitive. Enums
// without a parent are uint32.
func (r *Resolver) EnumUnderlying(e *core.Enum) (*Primitive, error) {
	if e.Parent == "" {
		return primitives["uint"], nil
	}
	t, err := r.resolve(e.Parent, core.CategoryEnums, map[string]bool{})
	if err != nil {
		return nil, errors.Wrapf(err, "enum %s", e.Name)
	}
	if (t.Kind != KindPrimitive && t.Kind != KindNewtype) || !t.Prim.IsInteger() {
		return nil, errors.Errorf("enum %s: parent %q is not an integer primitive", e.Name, e.Parent)
	}
	return t.Prim, nil
}

func (r *Resolver) generic(token string, kind Kind, args []string, from core.Category, visiting map[string]bool) (*Type, error) {
	want := 2
	if kind == KindVec || kind == KindPackableList {
		want = 1
	}
	if len(args) != want {
		return nil, errors.Errorf("type %q: want %d type arguments, got %d", token, want, len(args))
	}
	t := &Type{Kind: kind, Token: token}
	if kind != KindVec && kind != KindTable {
		// u32 list count, u16 count plus u16 buckets, or the packed u32 header
		t.Min = 4
	}
	var err error
	if want == 1 {
		if t.Elem, err = r.resolve(args[0], from, visiting); err != nil {
			return nil, err
		}
		return t, nestedLength(t)
	}
	if t.Key, err = r.resolve(args[0], from, visiting); err != nil {
		return nil, err
	}
	if t.Key.Kind == KindEnum || ((t.Key.Kind == KindPrimitive || t.Key.Kind == KindNewtype) && t.Key.Prim.Go != "bool") {
		if t.Elem, err = r.resolve(args[1], from, visiting); err != nil {
			return nil, err
		}
		return t, nestedLength(t)
	}
	return nil, errors.Errorf("type %q: key must be an ordered primitive or enum", token)
}

// lookupType prefers a declaration in the referencing package, then the
// shared types package.
func (r *Resolver) lookupType(name string, from core.Category) *core.ProtocolType {
	candidates := r.types[name]
	if len(candidates) == 0 {
		return nil
	}
	for _, want := range []core.Category{from, core.CategoryTypes} {
		for _, t := range candidates {
			if t.Category.NonNone() == want {
				return t
			}
		}
	}
	return candidates[0]
}

// checkLayer rejects references that would make generated packages import
// each other.
func checkLayer(from core.Category, to core.Category, name string) error {
	if from == to || to.Layer() < from.Layer() {
		return nil
	}
	return errors.Errorf("%s cannot reference %s.%s: packages may only use their own category, types or enums", from, to, name)
}

// nestedLength rejects Vec and Table inside another collection, only a field
// carries a length expression.
func nestedLength(t *Type) error {
	if t.Elem.NeedsLength() {
		return errors.Errorf("type %q: %s needs a length and cannot be nested", t.Token, t.Elem.Token)
	}
	return nil
}
