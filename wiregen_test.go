package wiregen

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vuuvv/wiregen/builder"
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/output"
)

const baseXML = `<protocol>
<enums><enum name="Kind" parent="uint"><value name="Ping" value="1"/></enum></enums>
<c2s>
  <type name="Hello">
    <field name="Kind" type="Kind"/>
    <field name="Name" type="string"/>
  </type>
</c2s>
<packets><type name="Header"><field name="Seq" type="uint"/></type></packets>
</protocol>`

const overlayXML = `<overlay>
<packets><type name="Fragment"><field name="Id" type="uint"/></type></packets>
</overlay>`

func writeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "protocol.xml"), []byte(baseXML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "network.xml"), []byte(overlayXML), 0o644))
	cfg := strings.Join([]string{
		"sources:",
		"  - protocol.xml",
		"  - network.xml",
		"output: gen",
		"package: example.com/app/gen",
		"log:",
		"  level: debug",
	}, "\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "wiregen.yaml"), []byte(cfg), 0o644))
	return dir
}

func TestGenerateAndCheck(t *testing.T) {
	dir := writeProject(t)
	cfg, err := LoadConfig(filepath.Join(dir, "wiregen.yaml"))
	require.NoError(t, err)
	require.NoError(t, Setup(cfg.Log))

	report, err := Check(cfg)
	require.NoError(t, err)
	require.False(t, report.Clean())
	require.NoDirExists(t, filepath.Join(dir, "gen"))

	report, err = Generate(cfg)
	require.NoError(t, err)
	require.Contains(t, report.Written, "c2s/hello.go")
	require.Contains(t, report.Written, "network/fragment.go")
	require.Contains(t, report.Written, "packets/header.go")
	require.Contains(t, report.Written, "enums/kind.go")

	src, err := os.ReadFile(filepath.Join(dir, "gen", "c2s", "hello.go"))
	require.NoError(t, err)
	require.Contains(t, string(src), `"example.com/app/gen/enums"`)
	require.Contains(t, string(src), `"github.com/vuuvv/wiregen/wire"`)

	report, err = Check(cfg)
	require.NoError(t, err)
	require.True(t, report.Clean())
}

func TestCompileFilter(t *testing.T) {
	cfg := &Config{
		Sources: []string{"protocol.xml"},
		Package: "example.com/app/gen",
		Filter:  core.FilterConfig{Expr: `category == "packets"`},
	}
	require.NoError(t, cfg.Setup())
	code, err := Compile(cfg, []Source{{Name: "protocol.xml", Data: []byte(baseXML)}})
	require.NoError(t, err)
	var paths []string
	for _, f := range code.Files {
		paths = append(paths, f.Path)
	}
	require.Equal(t, []string{"packets/header.go", "packets/registry.go"}, paths)
}

func TestCompileFailsOnUnknownType(t *testing.T) {
	cfg := &Config{Sources: []string{"x.xml"}, Package: "example.com/gen"}
	require.NoError(t, cfg.Setup())
	_, err := Compile(cfg, []Source{{Name: "x.xml", Data: []byte(`<p><types><type name="A"><field name="B" type="Nope"/></type></types></p>`)}})
	require.ErrorContains(t, err, "Nope")
}

func TestExampleLayout(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join("example", "wiregen.yaml"))
	require.NoError(t, err)
	sources, err := builder.LoadSources(cfg.Sources)
	require.NoError(t, err)
	code, err := Compile(cfg, sources)
	require.NoError(t, err)

	dir := filepath.Join("example", "proto")
	var paths []string
	for _, f := range code.Files {
		paths = append(paths, f.Path)
		committed, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Path)))
		require.NoError(t, err, f.Path)
		if diff := cmp.Diff(string(f.Content), string(committed)); diff != "" {
			t.Fatalf("%s is stale (-generated +committed):\n%s", f.Path, diff)
		}
	}
	report, err := output.Check(code, dir)
	require.NoError(t, err)
	require.True(t, report.Clean())
	require.Equal(t, []string{
		"c2s/action.go",
		"c2s/move.go",
		"c2s/registry.go",
		"enums/channel.go",
		"enums/registry.go",
		"types/aliases.go",
		"types/position.go",
		"types/registry.go",
	}, paths)
}
