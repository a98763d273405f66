package group

import "github.com/vuuvv/wiregen/core"

// Fields partitions fields into maximal runs of consecutive fields sharing one
// ConditionKey. Keys compare with ==, so differently written but equivalent
// conditions stay in separate groups.
func Fields(fields []*core.Field) []core.FieldGroup {
	var groups []core.FieldGroup
	for _, f := range fields {
		if n := len(groups); n > 0 && groups[n-1].Key == f.Condition {
			groups[n-1].Fields = append(groups[n-1].Fields, f)
			continue
		}
		groups = append(groups, core.FieldGroup{Key: f.Condition, Fields: []*core.Field{f}})
	}
	return groups
}

// Guards is the number of guard tests the groups need.
func Guards(groups []core.FieldGroup) int {
	n := 0
	for _, g := range groups {
		if !g.Key.IsAlways() {
			n++
		}
	}
	return n
}

// Body is the grouped form of a field set.
type Body struct {
	Fields       []core.FieldGroup
	Discriminant string
	Cases        []*CaseBody
	Trailing     []core.FieldGroup
}

type CaseBody struct {
	Values []int64
	Body   *Body
}

func (b *Body) IsVariant() bool {
	return b.Discriminant != ""
}

// Set groups every field list of fs, descending into case bodies.
func Set(fs core.FieldSet) *Body {
	switch set := fs.(type) {
	case *core.SimpleFieldSet:
		return &Body{Fields: Fields(set.Fields)}
	case *core.UndecidedFieldSet:
		return &Body{Fields: Fields(set.Fields)}
	case *core.VariantFieldSet:
		b := &Body{
			Fields:       Fields(set.Common),
			Discriminant: set.Discriminant,
			Trailing:     Fields(set.Trailing),
		}
		for _, c := range set.Cases {
			b.Cases = append(b.Cases, &CaseBody{Values: c.Values, Body: Set(c.Body)})
		}
		return b
	default:
		return &Body{}
	}
}
