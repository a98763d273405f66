package core

// Subfield is a value computed from fields that were already read, usually
// from the bits of its parent field.
type Subfield struct {
	Name  string
	Type  string
	Value string
}

type Field struct {
	Name string
	// Type is the schema type token, generics use Name<A, B>.
	Type string
	// Length is the count expression of Vec and Table types, "*" reads to the end.
	Length    string
	Condition ConditionKey
	Subfields []*Subfield
	// Align is the boundary of an alignment marker, zero for ordinary fields.
	Align int
	Param string
	Line  int
}

func (f *Field) IsAlign() bool {
	return f.Align > 0
}

type ProtocolType struct {
	Name      string
	Text      string
	Category  Category
	Primitive bool
	Parent    string
	Templated string
	// Fields is nil for primitive aliases.
	Fields FieldSet
}

type EnumValue struct {
	Name  string
	Value int64
}

type Enum struct {
	Name     string
	Text     string
	Parent   string
	Mask     bool
	Category Category
	Values   []EnumValue
}

// Schema is everything the builder collected from the merged sources.
type Schema struct {
	Types []*ProtocolType
	Enums []*Enum
}

func (s *Schema) Type(name string) *ProtocolType {
	for _, t := range s.Types {
		if t.Name == name {
			return t
		}
	}
	return nil
}

func (s *Schema) Enum(name string) *Enum {
	for _, e := range s.Enums {
		if e.Name == name {
			return e
		}
	}
	return nil
}

type GeneratedFile struct {
	Path    string
	Content []byte
}

type GeneratedCode struct {
	Files []*GeneratedFile
}

func (c *GeneratedCode) File(path string) *GeneratedFile {
	for _, f := range c.Files {
		if f.Path == path {
			return f
		}
	}
	return nil
}
