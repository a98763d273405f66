package resolve

import (
	"fmt"
	"math"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/expr"
	"github.com/vuuvv/wiregen/group"
	"github.com/vuuvv/wiregen/log"
	"go.uber.org/zap"
)

// RuntimeName is the package name generated code uses for the wire runtime.
const RuntimeName = "wire"

// Model is the schema with every type, identifier and expression resolved
// to Go.
type Model struct {
	Enums   []*Enum
	Aliases []*Alias
	Structs []*Struct
}

type Enum struct {
	Schema *core.Enum
	Ident  string
	Prim   *Primitive
	Consts []*Const
}

type Const struct {
	Name  string
	Ident string
	Value int64
}

type Alias struct {
	Schema   *core.ProtocolType
	Ident    string
	Category core.Category
	Target   *Type
	// Newtype aliases are distinct Go types with their own Read and Write.
	Newtype bool
}

type Struct struct {
	Schema   *core.ProtocolType
	Ident    string
	Category core.Category
	Body     *Body
	// Uses lists the other generated packages the structure refers to.
	Uses []core.Category
}

// Body is one Go structure: a declared type or one case of a variant.
type Body struct {
	Ident    string
	Depth    int
	Groups   []*Group
	Variant  *Variant
	Trailing []*Group
}

type Variant struct {
	Field  string
	Disc   string
	Iface  string
	Member string
	Cases  []*Case
}

type Case struct {
	Values []int64
	Body   *Body
}

// Group is a run of members read under one guard. Cond is empty for
// unconditional groups.
type Group struct {
	Key     core.ConditionKey
	Cond    string
	Members []*Member
}

type Member struct {
	Field    *core.Field
	Ident    string
	Type     *Type
	// Wire is the type on the wire when an if/else pair merged into a larger
	// member type, nil otherwise.
	Wire     *Type
	Optional bool
	// Declare is false for the second field of an if/else pair that shares
	// its member with the first.
	Declare   bool
	Length    expr.Length
	Align     int
	Subfields []*SubMember
}

func (m *Member) IsAlign() bool {
	return m.Align > 0
}

type SubMember struct {
	Subfield *core.Subfield
	Ident    string
	Type     *Type
	// Value converts the expression to the member type.
	Value string
}

type modelBuilder struct {
	resolver  *Resolver
	constants map[string]map[string]string
}

// Build resolves the whole schema.
func Build(schema *core.Schema) (*Model, error) {
	b := &modelBuilder{resolver: NewResolver(schema), constants: map[string]map[string]string{}}
	model := &Model{}

	for _, e := range schema.Enums {
		en, err := b.enum(e)
		if err != nil {
			return nil, err
		}
		model.Enums = append(model.Enums, en)
	}

	for _, t := range schema.Types {
		switch {
		case t.Templated != "" || isBuiltin(t.Name):
			log.Debug("skip type", zap.String("type", t.Name), zap.String("templated", t.Templated))
		case IsAlias(t):
			cat := t.Category.NonNone()
			target, err := b.resolver.Resolve(t.Parent, cat)
			if err != nil {
				return nil, errors.Wrapf(err, "type %s", t.Name)
			}
			model.Aliases = append(model.Aliases, &Alias{
				Schema:   t,
				Ident:    b.resolver.TypeIdent(t),
				Category: cat,
				Target:   target,
				Newtype:  IsNewtype(t.Name, target),
			})
		case t.Primitive:
			log.Warn("primitive type without parent", zap.String("type", t.Name))
		default:
			s, err := b.structure(t)
			if err != nil {
				return nil, err
			}
			model.Structs = append(model.Structs, s)
		}
	}
	return model, nil
}

func (this *modelBuilder) enum(e *core.Enum) (*Enum, error) {
	prim, err := this.resolver.EnumUnderlying(e)
	if err != nil {
		return nil, err
	}
	en := &Enum{Schema: e, Ident: this.resolver.EnumIdent(e), Prim: prim}
	consts := map[string]string{}
	for _, v := range e.Values {
		if !fits(prim, v.Value) {
			log.Warn("enum value out of range", zap.String("enum", e.Name),
				zap.String("value", v.Name), zap.Int64("raw", v.Value), zap.String("type", prim.Go))
			continue
		}
		if ident, ok := consts[v.Name]; ok {
			// a name repeated for several values keeps one constant per value
			ident = this.resolver.Reserve(core.CategoryEnums, ident)
			en.Consts = append(en.Consts, &Const{Name: v.Name, Ident: ident, Value: v.Value})
			continue
		}
		ident := this.resolver.Reserve(core.CategoryEnums, en.Ident+Exported(v.Name))
		consts[v.Name] = ident
		en.Consts = append(en.Consts, &Const{Name: v.Name, Ident: ident, Value: v.Value})
	}
	this.constants[e.Name] = consts
	return en, nil
}

func (this *modelBuilder) structure(t *core.ProtocolType) (*Struct, error) {
	cat := t.Category.NonNone()
	s := &Struct{Schema: t, Ident: this.resolver.TypeIdent(t), Category: cat}
	sc := &scope{model: this, from: cat, uses: map[core.Category]bool{}}
	body, err := this.body(group.Set(t.Fields), s.Ident, 0, sc, cat)
	if err != nil {
		return nil, errors.Wrapf(err, "type %s", t.Name)
	}
	s.Body = body
	for _, c := range core.Categories {
		if sc.uses[c] {
			s.Uses = append(s.Uses, c)
		}
	}
	return s, nil
}

func (this *modelBuilder) body(g *group.Body, ident string, depth int, sc *scope, cat core.Category) (*Body, error) {
	sc.push(depth)
	out := &Body{Ident: ident, Depth: depth}
	st := &structState{namer: NewNamer("Read", "Write")}
	st.shared, st.merged = this.sharedPairs(g, cat)
	if g.IsVariant() {
		// the variant member is named first, a field called Variant becomes Variant2
		st.variant = st.namer.Name("Variant")
	}

	var err error
	if out.Groups, err = this.groups(g.Fields, st, sc, cat); err != nil {
		return nil, err
	}
	if g.IsVariant() {
		if out.Variant, err = this.variant(g, ident, depth, st, sc, cat); err != nil {
			return nil, err
		}
	}
	if out.Trailing, err = this.groups(g.Trailing, st, sc, cat); err != nil {
		return nil, err
	}
	return out, nil
}

func (this *modelBuilder) variant(g *group.Body, ident string, depth int, st *structState, sc *scope, cat core.Category) (*Variant, error) {
	disc, err := expr.Value(g.Discriminant, sc, RuntimeName)
	if err != nil {
		return nil, errors.Wrapf(err, "switch %s", g.Discriminant)
	}
	v := &Variant{
		Field:  g.Discriminant,
		Disc:   disc,
		Iface:  this.resolver.Reserve(cat, ident+"Variant"),
		Member: st.variant,
	}
	for _, c := range g.Cases {
		if len(c.Values) == 0 {
			continue
		}
		caseIdent := this.resolver.Reserve(cat, CaseIdent(ident, c.Values[0]))
		body, err := this.body(c.Body, caseIdent, depth+1, sc.child(), cat)
		if err != nil {
			return nil, errors.Wrapf(err, "case %s", caseIdent)
		}
		v.Cases = append(v.Cases, &Case{Values: c.Values, Body: body})
	}
	return v, nil
}

// CaseIdent names the structure of a variant case after the first raw value
// it handles.
func CaseIdent(parent string, value int64) string {
	if value < 0 {
		return fmt.Sprintf("%sTypeNeg%d", parent, -value)
	}
	return fmt.Sprintf("%sType%02X", parent, value)
}

type structState struct {
	namer   *Namer
	variant string
	shared  map[*core.Field]*core.Field
	merged  map[*core.Field]*Type
	idents  map[*core.Field]string
}

// sharedPairs finds false-branch fields that redeclare a true-branch field of
// the same name. The pair is stored in one plain member. Integer fields of
// different types share the larger type, the first field wins a tie.
func (this *modelBuilder) sharedPairs(g *group.Body, cat core.Category) (map[*core.Field]*core.Field, map[*core.Field]*Type) {
	var fields []*core.Field
	for _, list := range [][]core.FieldGroup{g.Fields, g.Trailing} {
		for _, grp := range list {
			fields = append(fields, grp.Fields...)
		}
	}
	pairs := map[*core.Field]*core.Field{}
	merged := map[*core.Field]*Type{}
	taken := map[*core.Field]bool{}
	for i, a := range fields {
		if a.IsAlign() || taken[a] {
			continue
		}
		for _, b := range fields[i+1:] {
			if b.IsAlign() || taken[b] || b.Name != a.Name || !complementary(a.Condition, b.Condition) {
				continue
			}
			typ, ok := this.mergeTypes(a.Type, b.Type, cat)
			if !ok {
				continue
			}
			pairs[b] = a
			pairs[a] = a
			merged[a] = typ
			taken[a], taken[b] = true, true
			break
		}
	}
	return pairs, merged
}

// mergeTypes returns the member type of two branch fields, or false when one
// member cannot hold both.
func (this *modelBuilder) mergeTypes(a string, b string, cat core.Category) (*Type, bool) {
	ta, err := this.resolver.Resolve(a, cat)
	if err != nil {
		return nil, false
	}
	tb, err := this.resolver.Resolve(b, cat)
	if err != nil {
		return nil, false
	}
	if ta.Expr(cat) == tb.Expr(cat) {
		return ta, true
	}
	if ta.Kind != KindPrimitive || tb.Kind != KindPrimitive || !ta.Prim.IsInteger() || !tb.Prim.IsInteger() {
		return nil, false
	}
	if ta.Prim.Size() >= tb.Prim.Size() {
		return ta, true
	}
	return tb, true
}

func complementary(a, b core.ConditionKey) bool {
	return a.Kind == core.ConditionIf && b.Kind == core.ConditionIf && a.Expr == b.Expr && a.Negated != b.Negated
}

func (this *modelBuilder) groups(list []core.FieldGroup, st *structState, sc *scope, cat core.Category) ([]*Group, error) {
	var out []*Group
	for _, g := range list {
		grp := &Group{Key: g.Key}
		if !g.Key.IsAlways() {
			cond, err := expr.Condition(g.Key.Source(), sc, RuntimeName)
			if err != nil {
				return nil, err
			}
			grp.Cond = cond
		}
		for _, f := range g.Fields {
			m, err := this.member(f, grp, st, sc, cat)
			if err != nil {
				return nil, errors.Wrapf(err, "field %s (line %d)", f.Name, f.Line)
			}
			grp.Members = append(grp.Members, m)
		}
		out = append(out, grp)
	}
	return out, nil
}

func (this *modelBuilder) member(f *core.Field, grp *Group, st *structState, sc *scope, cat core.Category) (*Member, error) {
	if f.IsAlign() {
		return &Member{Field: f, Align: f.Align}, nil
	}
	typ, err := this.resolver.Resolve(f.Type, cat)
	if err != nil {
		return nil, err
	}
	sc.use(typ.Categories()...)
	m := &Member{Field: f, Type: typ, Declare: true}
	if typ.NeedsLength() {
		if f.Length == "" {
			return nil, errors.Errorf("type %s needs a length", f.Type)
		}
		if m.Length, err = expr.LengthOf(f.Length, sc, RuntimeName); err != nil {
			return nil, err
		}
	}

	first, shared := st.shared[f]
	if mt := st.merged[first]; shared && mt != nil && mt.Expr(cat) != typ.Expr(cat) {
		m.Wire, m.Type = typ, mt
	}
	switch {
	case shared && first != f:
		m.Ident = st.idents[first]
		m.Declare = false
	default:
		m.Ident = st.namer.Name(Exported(f.Name))
		if st.idents == nil {
			st.idents = map[*core.Field]string{}
		}
		st.idents[f] = m.Ident
		m.Optional = !shared && !grp.Key.IsAlways() && typ.Scalar()
	}
	sc.bind(f.Name, m.Ident, m.Type.ExprKind(), m.Optional)

	for _, sub := range f.Subfields {
		sm, err := this.subfield(sub, st, sc, cat)
		if err != nil {
			return nil, errors.Wrapf(err, "subfield %s", sub.Name)
		}
		m.Subfields = append(m.Subfields, sm)
	}
	return m, nil
}

func (this *modelBuilder) subfield(sub *core.Subfield, st *structState, sc *scope, cat core.Category) (*SubMember, error) {
	typ, err := this.resolver.Resolve(sub.Type, cat)
	if err != nil {
		return nil, err
	}
	val, err := expr.Value(sub.Value, sc, RuntimeName)
	if err != nil {
		return nil, err
	}
	sc.use(typ.Categories()...)
	sm := &SubMember{Subfield: sub, Ident: st.namer.Name(Exported(sub.Name)), Type: typ}
	switch typ.ExprKind() {
	case expr.KindInt:
		sm.Value = fmt.Sprintf("%s(%s)", typ.Expr(cat), val)
	case expr.KindBool:
		sm.Value = fmt.Sprintf("(%s) != 0", val)
	default:
		return nil, errors.Errorf("subfield type %s is not an integer or bool", sub.Type)
	}
	sc.bind(sub.Name, sm.Ident, typ.ExprKind(), false)
	return sm, nil
}

// fits reports whether v is representable by the integer primitive p.
func fits(p *Primitive, v int64) bool {
	switch p.Go {
	case "uint8":
		return v >= 0 && v <= math.MaxUint8
	case "int8":
		return v >= math.MinInt8 && v <= math.MaxInt8
	case "uint16":
		return v >= 0 && v <= math.MaxUint16
	case "int16":
		return v >= math.MinInt16 && v <= math.MaxInt16
	case "uint32":
		return v >= 0 && v <= math.MaxUint32
	case "int32":
		return v >= math.MinInt32 && v <= math.MaxInt32
	case "uint64":
		return v >= 0
	}
	return true
}
