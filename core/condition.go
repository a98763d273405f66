package core

import "fmt"

type ConditionKind int

const (
	ConditionNone ConditionKind = iota
	ConditionIf
	ConditionMask
)

// ConditionKey is the canonical decode-time guard of a field. Keys are
// compared with ==, two keys are the same guard only if every part matches.
type ConditionKey struct {
	Kind    ConditionKind
	Expr    string
	Negated bool
	Field   string
	Mask    string
}

var Always = ConditionKey{}

func IfKey(expr string, negated bool) ConditionKey {
	return ConditionKey{Kind: ConditionIf, Expr: expr, Negated: negated}
}

func MaskKey(field string, mask string) ConditionKey {
	return ConditionKey{Kind: ConditionMask, Field: field, Mask: mask}
}

func (k ConditionKey) IsAlways() bool {
	return k.Kind == ConditionNone
}

// Source renders the key back into schema expression syntax.
func (k ConditionKey) Source() string {
	switch k.Kind {
	case ConditionIf:
		if k.Negated {
			return fmt.Sprintf("!(%s)", k.Expr)
		}
		return k.Expr
	case ConditionMask:
		return fmt.Sprintf("%s & %s", k.Field, k.Mask)
	default:
		return ""
	}
}

// And nests inner inside k. The result is a single key so a field still
// belongs to exactly one group.
func (k ConditionKey) And(inner ConditionKey) ConditionKey {
	if k.IsAlways() {
		return inner
	}
	if inner.IsAlways() {
		return k
	}
	return IfKey(fmt.Sprintf("(%s) && (%s)", k.Source(), inner.Source()), false)
}

func (k ConditionKey) String() string {
	if k.IsAlways() {
		return "always"
	}
	return k.Source()
}

// FieldGroup is a maximal run of consecutive fields sharing one key.
type FieldGroup struct {
	Key    ConditionKey
	Fields []*Field
}
