package tags

import (
	"encoding/xml"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vuuvv/wiregen/core"
)

func element(t *testing.T, src string) *core.Element {
	t.Helper()
	dec := xml.NewDecoder(strings.NewReader(src))
	for {
		tok, err := dec.Token()
		require.NoError(t, err)
		if se, ok := tok.(xml.StartElement); ok {
			line, col := dec.InputPos()
			return core.NewElement(se, line, col)
		}
	}
}

func parse(t *testing.T, src string) (core.Fact, error) {
	t.Helper()
	Register()
	fact, ok, err := core.ParseFact(element(t, src))
	require.True(t, ok, "no processor for %s", src)
	return fact, err
}

func TestCaseValues(t *testing.T) {
	fact, err := parse(t, `<case value="0x01 | 0x08 | 0x0A"/>`)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 8, 10}, fact.(*Case).Values)

	fact, err = parse(t, `<case value="0x01 | zz | 0x02"/>`)
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2}, fact.(*Case).Values)
}

func TestCaseWithoutUsableValue(t *testing.T) {
	_, err := parse(t, `<case value="zz"/>`)
	var tagErr *core.TagError
	require.ErrorAs(t, err, &tagErr)
	require.Equal(t, "case", tagErr.Tag)
	require.Equal(t, "value", tagErr.Attr)

	_, err = parse(t, `<case/>`)
	require.ErrorAs(t, err, &tagErr)
}

func TestFieldDecls(t *testing.T) {
	cases := []struct {
		src  string
		want *core.Field
	}{
		{`<field name="Count" type="uint"/>`, &core.Field{Name: "Count", Type: "uint"}},
		{`<field name="Items" type="PackableList" genericType="Item"/>`, &core.Field{Name: "Items", Type: "PackableList<Item>"}},
		{`<field name="Props" type="PHashTable" genericKey="uint" genericValue="int"/>`, &core.Field{Name: "Props", Type: "PHashTable<uint, int>"}},
		{`<vector name="Data" type="byte" length="Size - 4"/>`, &core.Field{Name: "Data", Type: "Vec<byte>", Length: "Size - 4"}},
		{`<table name="Map" key="ushort" value="Item" length="Count"/>`, &core.Field{Name: "Map", Type: "Table<ushort, Item>", Length: "Count"}},
	}
	for _, c := range cases {
		fact, err := parse(t, c.src)
		require.NoError(t, err, c.src)
		got := fact.(FieldFact).Decl()
		if diff := cmp.Diff(c.want, got, cmp.FilterPath(func(p cmp.Path) bool {
			return p.Last().String() == ".Line"
		}, cmp.Ignore())); diff != "" {
			t.Errorf("%s (-want +got):\n%s", c.src, diff)
		}
	}
}

func TestMissingRequiredAttributes(t *testing.T) {
	for _, src := range []string{
		`<field type="uint"/>`,
		`<field name="A"/>`,
		`<vector name="A" type="byte"/>`,
		`<table name="A" key="uint" length="N"/>`,
		`<type text="no name"/>`,
		`<switch/>`,
		`<subfield name="A" type="uint"/>`,
		`<if/>`,
		`<maskmap/>`,
		`<mask/>`,
		`<align/>`,
		`<enum name="E"/>`,
	} {
		_, err := parse(t, src)
		var tagErr *core.TagError
		require.ErrorAs(t, err, &tagErr, src)
	}
}

func TestAlign(t *testing.T) {
	for src, want := range map[string]int{
		`<align type="DWORD"/>`:  4,
		`<align type="qword"/>`:  8,
		`<align type="WORD"/>`:   2,
		`<align boundary="16"/>`: 16,
	} {
		fact, err := parse(t, src)
		require.NoError(t, err, src)
		require.Equal(t, want, fact.(*Align).Boundary, src)
	}
	_, err := parse(t, `<align boundary="3"/>`)
	require.Error(t, err)
}

func TestTypeAndEnum(t *testing.T) {
	fact, err := parse(t, `<type name="DWORD" primitive="true" parent="uint"/>`)
	require.NoError(t, err)
	require.Equal(t, &TypeOpen{Name: "DWORD", Primitive: true, Parent: "uint"}, fact)

	_, err = parse(t, `<type name="X" primitive="maybe"/>`)
	require.Error(t, err)

	fact, err = parse(t, `<enum name="Flags" parent="uint" mask="true" text="doc"/>`)
	require.NoError(t, err)
	require.Equal(t, &EnumOpen{Name: "Flags", Parent: "uint", Mask: true, Text: "doc"}, fact)

	fact, err = parse(t, `<value name="Both" value="0x1 | 0x2"/>`)
	require.NoError(t, err)
	require.Equal(t, &EnumValue{Name: "Both", Values: []int64{1, 2}}, fact)
}

func TestBranchesAndSections(t *testing.T) {
	fact, err := parse(t, `<false/>`)
	require.NoError(t, err)
	require.True(t, fact.(*Branch).Negated)

	fact, err = parse(t, `<true/>`)
	require.NoError(t, err)
	require.False(t, fact.(*Branch).Negated)

	fact, err = parse(t, `<s2c/>`)
	require.NoError(t, err)
	require.Equal(t, core.CategoryS2C, fact.(*Section).Category)
}

func TestUnknownTag(t *testing.T) {
	Register()
	_, ok, err := core.ParseFact(element(t, `<protocol/>`))
	require.NoError(t, err)
	require.False(t, ok)
}
