package emit

import (
	"path"
	"sort"

	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/resolve"
)

type Options struct {
	// Package is the import path of the output directory.
	Package string
	// Runtime is the import path of the wire runtime.
	Runtime string
}

type generator struct {
	opts  Options
	files []*file
	names    map[core.Category]*resolve.Namer
	registry map[core.Category][]entry
	aliases  map[core.Category]*file
}

type entry struct {
	name  string
	ident string
}

// Generate renders the model into one Go package per category. Files are
// sorted by path.
func Generate(model *resolve.Model, opts Options) (*core.GeneratedCode, error) {
	if opts.Runtime == "" {
		opts.Runtime = core.DefaultRuntime
	}
	g := &generator{
		opts:     opts,
		names:    map[core.Category]*resolve.Namer{},
		registry: map[core.Category][]entry{},
		aliases:  map[core.Category]*file{},
	}

	for _, e := range model.Enums {
		f := g.newFile(core.CategoryEnums, e.Schema.Name)
		f.use(opts.Runtime, resolve.RuntimeName)
		f.use("strconv", "strconv")
		g.enum(f, e)
		g.registry[core.CategoryEnums] = append(g.registry[core.CategoryEnums], entry{name: e.Schema.Name, ident: e.Ident})
	}
	for _, a := range model.Aliases {
		f, ok := g.aliases[a.Category]
		if !ok {
			f = g.newFile(a.Category, "aliases")
			g.aliases[a.Category] = f
		} else {
			f.blank()
		}
		for _, c := range a.Target.Categories() {
			if c != a.Category {
				f.use(g.pkg(c), c.Dir())
			}
		}
		g.alias(f, a)
	}
	for _, s := range model.Structs {
		f := g.newFile(s.Category, s.Schema.Name)
		f.use(opts.Runtime, resolve.RuntimeName)
		for _, c := range s.Uses {
			f.use(g.pkg(c), c.Dir())
		}
		sg := &structGen{codec: codec{cat: s.Category}, s: s, f: f}
		sg.emit()
		g.registry[s.Category] = append(g.registry[s.Category], entry{name: s.Schema.Name, ident: s.Ident})
	}
	g.registries()

	out := &core.GeneratedCode{}
	for _, f := range g.files {
		gf, err := f.render()
		if err != nil {
			return nil, err
		}
		out.Files = append(out.Files, gf)
	}
	sort.Slice(out.Files, func(i, j int) bool {
		return out.Files[i].Path < out.Files[j].Path
	})
	return out, nil
}

func (this *generator) pkg(c core.Category) string {
	return path.Join(this.opts.Package, c.Dir())
}

// newFile allocates a unique file name inside the category directory.
func (this *generator) newFile(c core.Category, schemaName string) *file {
	n, ok := this.names[c]
	if !ok {
		n = resolve.NewNamer()
		n.Name("registry")
		this.names[c] = n
	}
	base := resolve.FileName(schemaName)
	base = n.Name(base[:len(base)-len(".go")]) + ".go"
	f := newFile(c.Dir(), base)
	this.files = append(this.files, f)
	return f
}

// registries writes the Names list and, outside enums, the New constructor of
// every package.
func (this *generator) registries() {
	for _, c := range core.Categories {
		entries := this.registry[c]
		if len(entries) == 0 {
			continue
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

		f := newFile(c.Dir(), "registry.go")
		this.files = append(this.files, f)
		f.line("// Names lists the schema names generated in this package.")
		f.line("var Names = []string{")
		for _, e := range entries {
			f.line("%q,", e.name)
		}
		f.line("}")
		if c == core.CategoryEnums {
			continue
		}
		f.use(this.opts.Runtime, resolve.RuntimeName)
		f.blank()
		f.line("// New returns an empty message for a schema name, or nil.")
		f.line("func New(name string) wire.Message {")
		f.line("switch name {")
		for _, e := range entries {
			f.line("case %q:", e.name)
			f.line("return &%s{}", e.ident)
		}
		f.line("}")
		f.line("return nil")
		f.line("}")
	}
}
