package resolve

import (
	"fmt"
	"strings"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/expr"
)

type Kind int

const (
	KindPrimitive Kind = iota
	KindEnum
	// KindNewtype is a distinct named scalar declared as an alias of a primitive.
	KindNewtype
	KindStruct
	KindVec
	KindTable
	KindPackableList
	KindPackableHashTable
	KindPHashTable
)

// Primitive is a wire scalar. Method names the Reader/Writer pair, ReadU32
// and WriteU32 for "U32".
type Primitive struct {
	Go     string
	Method string
	Kind   expr.Kind
}

var primitives = map[string]*Primitive{}

func init() {
	table := []struct {
		names []string
		prim  Primitive
	}{
		{[]string{"byte", "u8"}, Primitive{"uint8", "U8", expr.KindInt}},
		{[]string{"sbyte", "i8"}, Primitive{"int8", "I8", expr.KindInt}},
		{[]string{"short", "i16"}, Primitive{"int16", "I16", expr.KindInt}},
		{[]string{"ushort", "u16"}, Primitive{"uint16", "U16", expr.KindInt}},
		{[]string{"int", "i32"}, Primitive{"int32", "I32", expr.KindInt}},
		{[]string{"uint", "u32"}, Primitive{"uint32", "U32", expr.KindInt}},
		{[]string{"long", "i64"}, Primitive{"int64", "I64", expr.KindInt}},
		{[]string{"ulong", "u64"}, Primitive{"uint64", "U64", expr.KindInt}},
		{[]string{"float", "f32"}, Primitive{"float32", "F32", expr.KindOther}},
		{[]string{"double", "f64"}, Primitive{"float64", "F64", expr.KindOther}},
		{[]string{"bool"}, Primitive{"bool", "Bool", expr.KindBool}},
		{[]string{"string"}, Primitive{"string", "String", expr.KindOther}},
		{[]string{"WString"}, Primitive{"string", "WString", expr.KindOther}},
	}
	for _, row := range table {
		p := row.prim
		for _, name := range row.names {
			primitives[name] = &p
		}
	}
}

// LookupPrimitive returns the builtin primitive named by a schema token.
func LookupPrimitive(token string) (*Primitive, bool) {
	p, ok := primitives[token]
	return p, ok
}

func (p *Primitive) IsInteger() bool {
	return p.Kind == expr.KindInt
}

// Size is the fixed wire size, or the smallest size of a variable length
// primitive.
func (p *Primitive) Size() int {
	switch p.Method {
	case "U8", "I8", "WString":
		return 1
	case "U16", "I16":
		return 2
	case "U32", "I32", "F32", "Bool", "String":
		return 4
	}
	return 8
}

var generics = map[string]Kind{
	"Vec":               KindVec,
	"Table":             KindTable,
	"PackableList":      KindPackableList,
	"PackableHashTable": KindPackableHashTable,
	"PHashTable":        KindPHashTable,
}

// Type is a resolved schema type token.
type Type struct {
	Kind  Kind
	Token string
	// Prim is the scalar of a primitive, or the underlying scalar of an enum
	// or newtype.
	Prim     *Primitive
	Ident    string
	Category core.Category
	Elem     *Type
	Key      *Type
	// Min is the smallest number of bytes a value takes on the wire.
	Min int
}

// Expr renders the Go type as seen from package from.
func (t *Type) Expr(from core.Category) string {
	switch t.Kind {
	case KindPrimitive:
		return t.Prim.Go
	case KindEnum, KindNewtype, KindStruct:
		if t.Category == from {
			return t.Ident
		}
		return t.Category.Dir() + "." + t.Ident
	case KindVec, KindPackableList:
		return "[]" + t.Elem.Expr(from)
	default:
		return fmt.Sprintf("map[%s]%s", t.Key.Expr(from), t.Elem.Expr(from))
	}
}

// ExprKind is how an expression may use a field of this type.
func (t *Type) ExprKind() expr.Kind {
	switch t.Kind {
	case KindPrimitive, KindNewtype:
		return t.Prim.Kind
	case KindEnum:
		return expr.KindInt
	}
	return expr.KindOther
}

// Scalar types become pointers when they are conditional.
func (t *Type) Scalar() bool {
	return t.Kind == KindPrimitive || t.Kind == KindEnum || t.Kind == KindNewtype || t.Kind == KindStruct
}

// HasMethods reports whether values read and write themselves.
func (t *Type) HasMethods() bool {
	return t.Kind == KindEnum || t.Kind == KindNewtype || t.Kind == KindStruct
}

// ElemMin is the smallest wire size of one collection entry.
func (t *Type) ElemMin() int {
	if t.Key != nil {
		return t.Key.Min + t.Elem.Min
	}
	return t.Elem.Min
}

func (t *Type) IsSlice() bool {
	return t.Kind == KindVec || t.Kind == KindPackableList
}

func (t *Type) IsMap() bool {
	return t.Kind == KindTable || t.Kind == KindPackableHashTable || t.Kind == KindPHashTable
}

// NeedsLength reports whether the count comes from a length expression.
func (t *Type) NeedsLength() bool {
	return t.Kind == KindVec || t.Kind == KindTable
}

// IsBytes is a byte vector read as one block.
func (t *Type) IsBytes() bool {
	return t.IsSlice() && t.Elem.Kind == KindPrimitive && t.Elem.Prim.Go == "uint8"
}

// Categories lists the generated packages t refers to.
func (t *Type) Categories() []core.Category {
	var out []core.Category
	var walk func(t *Type)
	walk = func(t *Type) {
		if t == nil {
			return
		}
		if t.HasMethods() {
			out = append(out, t.Category)
		}
		walk(t.Key)
		walk(t.Elem)
	}
	walk(t)
	return out
}

// splitToken splits "Name<A, B<C>>" into Name and its top level arguments.
func splitToken(token string) (string, []string, error) {
	token = strings.TrimSpace(token)
	open := strings.IndexByte(token, '<')
	if open < 0 {
		if strings.ContainsAny(token, ">,") {
			return "", nil, errors.Errorf("malformed type %q", token)
		}
		return token, nil, nil
	}
	if !strings.HasSuffix(token, ">") {
		return "", nil, errors.Errorf("malformed type %q", token)
	}
	name := strings.TrimSpace(token[:open])
	inner := token[open+1 : len(token)-1]
	var args []string
	depth, start := 0, 0
	for i, c := range inner {
		switch c {
		case '<':
			depth++
		case '>':
			depth--
			if depth < 0 {
				return "", nil, errors.Errorf("malformed type %q", token)
			}
		case ',':
			if depth == 0 {
				args = append(args, strings.TrimSpace(inner[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return "", nil, errors.Errorf("malformed type %q", token)
	}
	args = append(args, strings.TrimSpace(inner[start:]))
	for _, a := range args {
		if a == "" {
			return "", nil, errors.Errorf("malformed type %q", token)
		}
	}
	return name, args, nil
}
