package core

// FieldSet is the body of a type or of a switch case. It is one of
// *UndecidedFieldSet, *SimpleFieldSet or *VariantFieldSet.
type FieldSet interface {
	isFieldSet()
}

// UndecidedFieldSet holds fields of a body that has not closed and has not met a switch yet.
type UndecidedFieldSet struct {
	Fields []*Field
}

type SimpleFieldSet struct {
	Fields []*Field
}

// VariantFieldSet is a body with a switch. Common fields are read before the
// discriminant dispatch, trailing fields after it.
type VariantFieldSet struct {
	Common       []*Field
	Discriminant string
	Cases        []*Case
	Trailing     []*Field
}

type Case struct {
	Values []int64
	Body   FieldSet
}

func (*UndecidedFieldSet) isFieldSet() {}
func (*SimpleFieldSet) isFieldSet()    {}
func (*VariantFieldSet) isFieldSet()   {}

// Promote turns an undecided body into a variant body on its first switch.
func (u *UndecidedFieldSet) Promote(discriminant string) *VariantFieldSet {
	return &VariantFieldSet{Common: u.Fields, Discriminant: discriminant}
}

// Finish closes an undecided body that never met a switch.
func (u *UndecidedFieldSet) Finish() *SimpleFieldSet {
	return &SimpleFieldSet{Fields: u.Fields}
}

// CaseFor returns the case routing the raw value v.
func (v *VariantFieldSet) CaseFor(value int64) *Case {
	for _, c := range v.Cases {
		for _, cv := range c.Values {
			if cv == value {
				return c
			}
		}
	}
	return nil
}

// WalkFields visits every field of fs in declaration order, descending into case bodies.
func WalkFields(fs FieldSet, fn func(f *Field)) {
	switch set := fs.(type) {
	case *UndecidedFieldSet:
		for _, f := range set.Fields {
			fn(f)
		}
	case *SimpleFieldSet:
		for _, f := range set.Fields {
			fn(f)
		}
	case *VariantFieldSet:
		for _, f := range set.Common {
			fn(f)
		}
		for _, c := range set.Cases {
			WalkFields(c.Body, fn)
		}
		for _, f := range set.Trailing {
			fn(f)
		}
	}
}
