package output

import (
	"bufio"
	"bytes"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/emit"
	"github.com/vuuvv/wiregen/utils"
)

// Report lists output paths relative to the output directory.
type Report struct {
	Written   []string
	Unchanged []string
	Removed   []string
}

// Clean reports whether the directory already matched the generated code.
func (r *Report) Clean() bool {
	return len(r.Written) == 0 && len(r.Removed) == 0
}

type plan struct {
	report *Report
	writes []*core.GeneratedFile
}

// Write brings dir in line with code: changed files are rewritten, generated
// files that code no longer contains are removed and the rest is untouched.
func Write(code *core.GeneratedCode, dir string) (*Report, error) {
	p, err := prepare(code, dir)
	if err != nil {
		return nil, err
	}
	for _, f := range p.writes {
		target := filepath.Join(dir, filepath.FromSlash(f.Path))
		if err = os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return nil, errors.WithStack(err)
		}
		if err = os.WriteFile(target, f.Content, 0o644); err != nil {
			return nil, errors.WithStack(err)
		}
	}
	for _, rel := range p.report.Removed {
		if err = os.Remove(filepath.Join(dir, filepath.FromSlash(rel))); err != nil && !os.IsNotExist(err) {
			return nil, errors.WithStack(err)
		}
	}
	return p.report, nil
}

// Check computes the report Write would produce without touching dir.
func Check(code *core.GeneratedCode, dir string) (*Report, error) {
	p, err := prepare(code, dir)
	if err != nil {
		return nil, err
	}
	return p.report, nil
}

func prepare(code *core.GeneratedCode, dir string) (*plan, error) {
	p := &plan{report: &Report{}}
	files := append([]*core.GeneratedFile(nil), code.Files...)
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	for _, f := range files {
		existing, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(f.Path)))
		if err != nil && !os.IsNotExist(err) {
			return nil, errors.WithStack(err)
		}
		if err == nil && bytes.Equal(existing, f.Content) {
			p.report.Unchanged = append(p.report.Unchanged, f.Path)
			continue
		}
		p.writes = append(p.writes, f)
		p.report.Written = append(p.report.Written, f.Path)
	}

	onDisk, err := generatedOnDisk(dir, managedDirs(files))
	if err != nil {
		return nil, err
	}
	for _, f := range utils.Missing(onDisk, files, func(f *core.GeneratedFile) string { return f.Path }) {
		p.report.Removed = append(p.report.Removed, f.Path)
	}
	return p, nil
}

// managedDirs are the category directories plus any directory code writes to.
func managedDirs(files []*core.GeneratedFile) []string {
	var dirs []string
	for _, c := range core.Categories {
		dirs = append(dirs, c.Dir())
	}
	for _, f := range files {
		dirs = append(dirs, path.Dir(f.Path))
	}
	dirs = utils.Uniq(dirs)
	sort.Strings(dirs)
	return dirs
}

// generatedOnDisk lists the .go files of dirs that start with the generated
// header. Hand-written files are never touched.
func generatedOnDisk(root string, dirs []string) ([]*core.GeneratedFile, error) {
	var out []*core.GeneratedFile
	for _, d := range dirs {
		entries, err := os.ReadDir(filepath.Join(root, filepath.FromSlash(d)))
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, errors.WithStack(err)
		}
		for _, e := range entries {
			if e.IsDir() || !strings.HasSuffix(e.Name(), ".go") {
				continue
			}
			rel := path.Join(d, e.Name())
			ok, err := isGenerated(filepath.Join(root, filepath.FromSlash(rel)))
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, &core.GeneratedFile{Path: rel})
			}
		}
	}
	return out, nil
}

func isGenerated(file string) (bool, error) {
	fd, err := os.Open(file)
	if err != nil {
		return false, errors.WithStack(err)
	}
	defer fd.Close()
	sc := bufio.NewScanner(fd)
	if !sc.Scan() {
		return false, errors.WithStack(sc.Err())
	}
	return strings.TrimSpace(sc.Text()) == emit.Header, nil
}
