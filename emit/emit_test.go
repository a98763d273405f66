package emit

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vuuvv/wiregen/builder"
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/resolve"
)

const protocol = `<protocol>
<enums>
  <enum name="Channel" parent="byte">
    <value name="Local" value="0x1"/>
    <value name="Global" value="0x2"/>
    <value name="Alias" value="0x2"/>
  </enum>
</enums>
<types>
  <type name="DWORD" primitive="true" parent="uint"/>
  <type name="Position">
    <field name="X" type="float"/>
    <field name="Y" type="float"/>
  </type>
</types>
<c2s>
  <type name="Move" text="moves the player">
    <field name="Flags" type="DWORD"/>
    <maskmap name="Flags">
      <mask value="0x1">
        <field name="Speed" type="ushort"/>
        <field name="Heading" type="ushort"/>
        <field name="Target" type="Position"/>
      </mask>
    </maskmap>
    <field name="Count" type="byte"/>
    <vector name="Path" type="Position" length="Count"/>
    <align type="DWORD"/>
    <table name="Tags" key="Channel" value="string" length="*"/>
  </type>
  <type name="Action">
    <field name="Kind" type="uint"/>
    <switch name="Kind">
      <case value="0x01 | 0x08 | 0x0A">
        <field name="Target" type="uint"/>
      </case>
      <case value="0x2">
        <field name="Channel" type="Channel"/>
        <field name="Raw" type="PackableList&lt;byte&gt;"/>
      </case>
    </switch>
    <field name="Seq" type="uint"/>
  </type>
</c2s>
</protocol>`

func generate(t *testing.T) *core.GeneratedCode {
	t.Helper()
	return generateFrom(t, protocol)
}

func generateFrom(t *testing.T, doc string) *core.GeneratedCode {
	t.Helper()
	schema, err := builder.Build([]builder.Source{{Name: "p.xml", Data: []byte(doc)}}, builder.Options{})
	require.NoError(t, err)
	model, err := resolve.Build(schema)
	require.NoError(t, err)
	code, err := Generate(model, Options{Package: "example.com/proto", Runtime: core.DefaultRuntime})
	require.NoError(t, err)
	return code
}

func content(t *testing.T, code *core.GeneratedCode, path string) string {
	t.Helper()
	f := code.File(path)
	require.NotNil(t, f, path)
	return string(f.Content)
}

func TestGenerateLayout(t *testing.T) {
	code := generate(t)
	var paths []string
	for _, f := range code.Files {
		paths = append(paths, f.Path)
		require.True(t, strings.HasPrefix(string(f.Content), Header+"\n"), f.Path)
	}
	want := []string{
		"c2s/action.go",
		"c2s/move.go",
		"c2s/registry.go",
		"enums/channel.go",
		"enums/registry.go",
		"types/aliases.go",
		"types/position.go",
		"types/registry.go",
	}
	if diff := cmp.Diff(want, paths); diff != "" {
		t.Fatalf("paths (-want +got):\n%s", diff)
	}

	reg := content(t, code, "c2s/registry.go")
	require.Contains(t, reg, "var Names = []string{\n\t\"Action\",\n\t\"Move\",\n}")
	require.Contains(t, reg, "case \"Move\":\n\t\treturn &Move{}")
	require.NotContains(t, content(t, code, "enums/registry.go"), "func New")
	require.Contains(t, content(t, code, "types/aliases.go"), "type DWORD = uint32")
}

func TestGenerateGroupsShareOneGuard(t *testing.T) {
	src := content(t, generate(t), "c2s/move.go")
	guard := "if (int64(p.Flags) & 0x1) != 0 {"
	// one guard in Read and one in Write for the three masked fields
	require.Equal(t, 2, strings.Count(src, guard))
	require.Contains(t, src, "Speed   *uint16")
	require.Contains(t, src, "Target  *types.Position")
	require.Contains(t, src, "Path    []types.Position")
	require.Contains(t, src, "Tags    map[enums.Channel]string")
	require.Contains(t, src, "\"example.com/proto/enums\"")
	require.Contains(t, src, "\"example.com/proto/types\"")
	require.Contains(t, src, "err = r.Align(4)")
	require.Contains(t, src, "err = w.Align(4)")
	require.Contains(t, src, "return &wire.MissingFieldError{Type: \"Move\", Field: \"Speed\"}")
	require.Contains(t, src, "if want := int(int64(p.Count)); len(p.Path) != want {")
	require.Contains(t, src, "for _, k := range wire.SortedKeys(p.Tags) {")
	require.Contains(t, src, "n := int(int64(p.Count))\n\t\tif err = r.Count(n, 8); err != nil {")
	require.Contains(t, src, "// Move moves the player")
}

func TestGenerateVariantDispatch(t *testing.T) {
	src := content(t, generate(t), "c2s/action.go")
	require.Contains(t, src, "type ActionVariant interface {\n\tisActionVariant()\n}")
	require.Contains(t, src, "Variant ActionVariant")
	// every value of a multi-value case is a label
	require.Equal(t, 2, strings.Count(src, "case 0x1, 0x8, 0xa:"))
	require.Contains(t, src, "v := &ActionType01{}")
	require.Contains(t, src, "func (p *ActionType01) read(r *wire.Reader, s0 *Action) (err error) {")
	require.Contains(t, src, "return &wire.UnhandledVariantError{Type: \"Action\", Field: \"Kind\", Value: int64(p.Kind)}")
	require.Contains(t, src, "v, ok := p.Variant.(*ActionType02)")
	require.Contains(t, src, "if n, err = r.ReadListCount(1); err != nil {")
	require.Contains(t, src, "if err = w.WriteListCount(len(p.Raw)); err != nil {")

	// trailing fields are read after the dispatch
	require.Less(t, strings.Index(src, "switch int64(p.Kind)"), strings.Index(src, "p.Seq, err = r.ReadU32()"))
}

func TestGenerateEnum(t *testing.T) {
	src := content(t, generate(t), "enums/channel.go")
	require.Contains(t, src, "type Channel uint8")
	require.Contains(t, src, "ChannelGlobal Channel = 0x2")
	require.Contains(t, src, "ChannelAlias  Channel = 0x2")
	require.Contains(t, src, "case ChannelGlobal:\n\t\treturn \"Global\"")
	require.NotContains(t, src, "case ChannelAlias:")
	require.Contains(t, src, "v, err := r.ReadU8()")
	require.Contains(t, src, "return w.WriteU8(uint8(e))")
}

func TestGenerateIsDeterministic(t *testing.T) {
	a, b := generate(t), generate(t)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("runs differ (-first +second):\n%s", diff)
	}
}

func TestGenerateRejectsLayering(t *testing.T) {
	schema, err := builder.Build([]builder.Source{{Name: "p.xml", Data: []byte(`<protocol>
<c2s><type name="A"><field name="X" type="uint"/></type></c2s>
<s2c><type name="B"><field name="Y" type="A"/></type></s2c>
</protocol>`)}}, builder.Options{})
	require.NoError(t, err)
	_, err = resolve.Build(schema)
	require.Error(t, err)
}

const extras = `<protocol>
<enums>
  <enum name="Access" parent="uint" mask="true">
    <value name="None" value="0x0"/>
    <value name="Read" value="0x1"/>
    <value name="Write" value="0x2"/>
  </enum>
</enums>
<types>
  <type name="ObjectId" primitive="true" parent="uint"/>
  <type name="Record">
    <field name="Flags" type="uint"/>
    <field name="Owner" type="ObjectId"/>
    <field name="Bonus" type="ushort" condition="Flags &amp; 0x4"/>
    <if test="Flags &amp; 0x1">
      <true><field name="Size" type="ushort"/></true>
      <false><field name="Size" type="uint"/></false>
    </if>
  </type>
</types>
</protocol>`

func TestGenerateMaskEnum(t *testing.T) {
	src := content(t, generateFrom(t, extras), "enums/access.go")
	require.Contains(t, src, "type Access uint32")
	require.Contains(t, src, "if e == 0 {\n\t\treturn \"None\"\n\t}")
	require.Contains(t, src, "if e&AccessRead == AccessRead {\n\t\tparts = append(parts, \"Read\")")
	require.Contains(t, src, "return strings.Join(parts, \"|\")")
	require.Contains(t, src, "func (e Access) Has(flag Access) bool {\n\treturn e&flag == flag\n}")
	require.Contains(t, src, "\"strings\"")
}

func TestGenerateNewtype(t *testing.T) {
	code := generateFrom(t, extras)
	src := content(t, code, "types/aliases.go")
	require.Contains(t, src, "type ObjectId uint32")
	require.Contains(t, src, "func (e *ObjectId) Read(r *wire.Reader) error {\n\tv, err := r.ReadU32()")
	require.Contains(t, src, "return w.WriteU32(uint32(e))")

	rec := content(t, code, "types/record.go")
	require.Contains(t, rec, "Owner ObjectId")
	require.Contains(t, rec, "if err = p.Owner.Read(r); err != nil {")
	require.Contains(t, rec, "if err = p.Owner.Write(w); err != nil {")
}

func TestGenerateFieldCondition(t *testing.T) {
	src := content(t, generateFrom(t, extras), "types/record.go")
	require.Contains(t, src, "Bonus *uint16")
	require.Equal(t, 2, strings.Count(src, "if (int64(p.Flags) & 0x4) != 0 {"))
	require.Contains(t, src, "return &wire.MissingFieldError{Type: \"Record\", Field: \"Bonus\"}")
}

func TestGenerateMergedBranchMember(t *testing.T) {
	src := content(t, generateFrom(t, extras), "types/record.go")
	require.Contains(t, src, "Size  uint32")
	require.NotContains(t, src, "Size2")
	require.Contains(t, src, "var v uint16")
	require.Contains(t, src, "if v, err = r.ReadU16(); err != nil {")
	require.Contains(t, src, "p.Size = uint32(v)")
	require.Contains(t, src, "if err = w.WriteU16(uint16(p.Size)); err != nil {")
	require.Contains(t, src, "if p.Size, err = r.ReadU32(); err != nil {")
	require.Contains(t, src, "if err = w.WriteU32(p.Size); err != nil {")
}
