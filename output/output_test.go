package output

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/emit"
)

func gen(files map[string]string) *core.GeneratedCode {
	code := &core.GeneratedCode{}
	for p, body := range files {
		code.Files = append(code.Files, &core.GeneratedFile{Path: p, Content: []byte(emit.Header + "\n\npackage x\n" + body)})
	}
	return code
}

func TestWriteIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	code := gen(map[string]string{"c2s/move.go": "// move", "c2s/registry.go": "// reg"})

	report, err := Write(code, dir)
	require.NoError(t, err)
	require.Equal(t, []string{"c2s/move.go", "c2s/registry.go"}, report.Written)

	report, err = Write(code, dir)
	require.NoError(t, err)
	require.True(t, report.Clean())
	require.Equal(t, []string{"c2s/move.go", "c2s/registry.go"}, report.Unchanged)
}

func TestWriteRemovesStaleGeneratedFiles(t *testing.T) {
	dir := t.TempDir()
	_, err := Write(gen(map[string]string{"c2s/move.go": "", "s2c/reply.go": "", "c2s/registry.go": ""}), dir)
	require.NoError(t, err)
	handWritten := filepath.Join(dir, "c2s", "helpers.go")
	require.NoError(t, os.WriteFile(handWritten, []byte("package c2s\n"), 0o644))

	next := gen(map[string]string{"c2s/move.go": "// changed", "c2s/registry.go": ""})
	report, err := Check(next, dir)
	require.NoError(t, err)
	want := &Report{
		Written:   []string{"c2s/move.go"},
		Unchanged: []string{"c2s/registry.go"},
		Removed:   []string{"s2c/reply.go"},
	}
	if diff := cmp.Diff(want, report); diff != "" {
		t.Fatalf("check report (-want +got):\n%s", diff)
	}
	// check leaves the directory alone
	require.FileExists(t, filepath.Join(dir, "s2c", "reply.go"))

	_, err = Write(next, dir)
	require.NoError(t, err)
	require.NoFileExists(t, filepath.Join(dir, "s2c", "reply.go"))
	require.FileExists(t, handWritten)

	report, err = Check(next, dir)
	require.NoError(t, err)
	require.True(t, report.Clean())
}
