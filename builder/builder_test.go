package builder

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vuuvv/wiregen/core"
)

func build(t *testing.T, docs ...string) *core.Schema {
	t.Helper()
	var sources []Source
	for i, d := range docs {
		sources = append(sources, Source{Name: string(rune('a' + i)), Data: []byte(d)})
	}
	schema, err := Build(sources, Options{Trace: true})
	require.NoError(t, err)
	return schema
}

func TestBuildSimpleAndConditional(t *testing.T) {
	schema := build(t, `<protocol><types>
<type name="Record">
  <field name="A" type="uint"/>
  <maskmap name="Flags">
    <mask value="0x1">
      <field name="B" type="ushort"/>
      <field name="C" type="ushort"/>
    </mask>
  </maskmap>
  <field name="D" type="uint">
    <subfield name="Low" type="ushort" value="D &amp; 0xFFFF"/>
  </field>
  <align type="DWORD"/>
</type>
</types></protocol>`)

	rec := schema.Type("Record")
	require.NotNil(t, rec)
	require.Equal(t, core.CategoryTypes, rec.Category)

	want := &core.SimpleFieldSet{Fields: []*core.Field{
		{Name: "A", Type: "uint", Line: 3},
		{Name: "B", Type: "ushort", Condition: core.MaskKey("Flags", "0x1"), Line: 6},
		{Name: "C", Type: "ushort", Condition: core.MaskKey("Flags", "0x1"), Line: 7},
		{Name: "D", Type: "uint", Line: 10, Subfields: []*core.Subfield{
			{Name: "Low", Type: "ushort", Value: "D & 0xFFFF"},
		}},
		{Name: "align4", Align: 4, Line: 13},
	}}
	if diff := cmp.Diff(want, rec.Fields, cmp.FilterPath(func(p cmp.Path) bool {
		return p.Last().String() == ".Line"
	}, cmp.Ignore())); diff != "" {
		t.Fatalf("fields (-want +got):\n%s", diff)
	}
}

func TestBuildIfBranches(t *testing.T) {
	schema := build(t, `<protocol><c2s>
<type name="Msg">
  <field name="Count" type="uint"/>
  <if test="Count &gt; 0">
    <true><field name="First" type="uint"/></true>
    <false><field name="Reason" type="string"/></false>
  </if>
</type>
</c2s></protocol>`)

	msg := schema.Type("Msg")
	require.Equal(t, core.CategoryC2S, msg.Category)
	fields := msg.Fields.(*core.SimpleFieldSet).Fields
	require.Len(t, fields, 3)
	require.Equal(t, core.Always, fields[0].Condition)
	require.Equal(t, core.IfKey("Count > 0", false), fields[1].Condition)
	require.Equal(t, core.IfKey("Count > 0", true), fields[2].Condition)
}

func TestBuildFieldCondition(t *testing.T) {
	schema := build(t, `<protocol><c2s>
<type name="Msg">
  <field name="Flags" type="uint"/>
  <field name="Extra" type="ushort" condition="Flags &amp; 0x1"/>
  <vector name="Items" type="uint" length="Flags" condition="Flags &gt; 2"/>
  <if test="Flags &gt; 0">
    <true><field name="Code" type="uint" condition="Flags &amp; 0x4"/></true>
  </if>
  <maskmap name="Flags">
    <mask value="0x8"><field name="Tail" type="byte" condition="Flags &lt; 100"/></mask>
  </maskmap>
</type>
</c2s></protocol>`)

	fields := schema.Type("Msg").Fields.(*core.SimpleFieldSet).Fields
	require.Len(t, fields, 5)
	require.Equal(t, core.Always, fields[0].Condition)
	require.Equal(t, core.IfKey("Flags & 0x1", false), fields[1].Condition)
	require.Equal(t, core.IfKey("Flags > 2", false), fields[2].Condition)
	require.Equal(t, core.IfKey("(Flags > 0) && (Flags & 0x4)", false), fields[3].Condition)
	require.Equal(t, core.IfKey("(Flags & 0x8) && (Flags < 100)", false), fields[4].Condition)
}

func TestBuildVariant(t *testing.T) {
	schema := build(t, `<protocol><s2c>
<type name="Event">
  <field name="Kind" type="uint"/>
  <switch name="Kind">
    <case value="0x02 | 0x04">
      <field name="X" type="int"/>
      <field name="Sub" type="byte"/>
      <switch name="Sub">
        <case value="1"><field name="Y" type="float"/></case>
      </switch>
      <field name="After" type="byte"/>
    </case>
    <case value="0x05 | zz"/>
  </switch>
  <field name="Tail" type="uint"/>
</type>
</s2c></protocol>`)

	ev := schema.Type("Event").Fields.(*core.VariantFieldSet)
	require.Equal(t, "Kind", ev.Discriminant)
	require.Len(t, ev.Common, 1)
	require.Len(t, ev.Cases, 2)
	require.Equal(t, []int64{2, 4}, ev.Cases[0].Values)
	require.Equal(t, []int64{5}, ev.Cases[1].Values)
	require.Equal(t, "Tail", ev.Trailing[0].Name)

	nested := ev.Cases[0].Body.(*core.VariantFieldSet)
	require.Equal(t, "Sub", nested.Discriminant)
	require.Len(t, nested.Common, 2)
	require.Equal(t, "After", nested.Trailing[0].Name)
	require.IsType(t, &core.SimpleFieldSet{}, ev.Cases[1].Body)
}

func TestBuildDropsMalformedTags(t *testing.T) {
	schema := build(t, `<protocol><types>
<type name="T">
  <field type="uint"/>
  <field name="Ok" type="uint"/>
  <switch>
    <case value="1"><field name="Lost" type="uint"/></case>
  </switch>
</type>
<type text="nameless"><field name="Z" type="uint"/></type>
</types></protocol>`)

	require.Len(t, schema.Types, 1)
	fields := schema.Type("T").Fields.(*core.SimpleFieldSet).Fields
	require.Len(t, fields, 1)
	require.Equal(t, "Ok", fields[0].Name)
}

func TestBuildDuplicateCaseValue(t *testing.T) {
	_, err := Build([]Source{{Name: "p", Data: []byte(`<protocol><types><type name="T">
<field name="K" type="uint"/>
<switch name="K"><case value="1"/><case value="2 | 1"/></switch>
</type></types></protocol>`)}}, Options{})
	require.Error(t, err)
}

func TestBuildUnterminatedType(t *testing.T) {
	_, err := Build([]Source{{Name: "p", Data: []byte(`<protocol><types><type name="T"><field name="K" type="uint"/>`)}}, Options{})
	require.ErrorContains(t, err, "unterminated type T")
}

func TestBuildEnumsAndPrimitives(t *testing.T) {
	schema := build(t, `<protocol>
<enums>
  <enum name="Flags" parent="uint" mask="true">
    <value name="A" value="0x1"/>
    <value name="BC" value="0x2 | 0x4"/>
  </enum>
</enums>
<types><type name="DWORD" primitive="true" parent="uint"/></types>
</protocol>`)

	flags := schema.Enum("Flags")
	require.True(t, flags.Mask)
	require.Equal(t, []core.EnumValue{{Name: "A", Value: 1}, {Name: "BC", Value: 2}, {Name: "BC", Value: 4}}, flags.Values)

	dword := schema.Type("DWORD")
	require.True(t, dword.Primitive)
	require.Nil(t, dword.Fields)
}

func TestOverlayReplacesAndMapsPackets(t *testing.T) {
	schema := build(t,
		`<protocol><types><type name="T"><field name="A" type="uint"/></type></types></protocol>`,
		`<?xml version="1.0"?><network><types><type name="T"><field name="B" type="uint"/></type></types>
<packets><type name="Frag"><field name="Seq" type="uint"/></type></packets></network>`,
	)
	require.Len(t, schema.Types, 2)
	require.Equal(t, "B", schema.Type("T").Fields.(*core.SimpleFieldSet).Fields[0].Name)
	require.Equal(t, core.CategoryNetwork, schema.Type("Frag").Category)
}
