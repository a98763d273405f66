package filter

import (
	"slices"
	"strings"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/expr"
	"github.com/vuuvv/wiregen/log"
	"go.uber.org/zap"
)

// Select keeps the types named in cfg.Types or matched by cfg.Expr, plus
// every type and enum they depend on. An empty filter keeps everything.
func Select(schema *core.Schema, cfg core.FilterConfig) (*core.Schema, error) {
	if cfg.IsZero() {
		return schema, nil
	}

	var eval *core.CelEvaluator
	if cfg.Expr != "" {
		var err error
		if eval, err = core.CompileExpression(cfg.Expr); err != nil {
			return nil, errors.Wrapf(err, "filter expression %q", cfg.Expr)
		}
	}

	var queue []string
	for _, t := range schema.Types {
		selected := slices.Contains(cfg.Types, t.Name)
		if !selected && eval != nil {
			ok, err := eval.Match(t)
			if err != nil {
				return nil, err
			}
			selected = ok
		}
		if selected {
			queue = append(queue, t.Name)
		}
	}
	for _, name := range cfg.Types {
		if schema.Type(name) == nil && schema.Enum(name) == nil {
			log.Warn("filter names an unknown type", zap.String("type", name))
		} else if schema.Enum(name) != nil {
			queue = append(queue, name)
		}
	}

	keep := closure(schema, queue)
	out := &core.Schema{}
	for _, t := range schema.Types {
		if keep[t.Name] {
			out.Types = append(out.Types, t)
		}
	}
	for _, e := range schema.Enums {
		if keep[e.Name] {
			out.Enums = append(out.Enums, e)
		}
	}
	log.Info("filter applied",
		zap.Int("types", len(out.Types)), zap.Int("of", len(schema.Types)),
		zap.Int("enums", len(out.Enums)))
	return out, nil
}

// closure follows type tokens, aliases and enum references until nothing new
// is reached.
func closure(schema *core.Schema, queue []string) map[string]bool {
	keep := map[string]bool{}
	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		if keep[name] {
			continue
		}
		keep[name] = true
		for _, t := range schema.Types {
			if t.Name == name {
				queue = append(queue, typeDeps(t)...)
			}
		}
		if e := schema.Enum(name); e != nil && e.Parent != "" {
			queue = append(queue, e.Parent)
		}
	}
	return keep
}

func typeDeps(t *core.ProtocolType) []string {
	var deps []string
	if t.Parent != "" {
		deps = append(deps, tokenNames(t.Parent)...)
	}
	core.WalkFields(t.Fields, func(f *core.Field) {
		if f.IsAlign() {
			return
		}
		deps = append(deps, tokenNames(f.Type)...)
		deps = append(deps, enumRefs(f.Length)...)
		deps = append(deps, enumRefs(f.Condition.Source())...)
		for _, sub := range f.Subfields {
			deps = append(deps, tokenNames(sub.Type)...)
			deps = append(deps, enumRefs(sub.Value)...)
		}
	})
	return deps
}

// tokenNames lists every name in a type token, "Vec<Position>" gives Vec and Position.
func tokenNames(token string) []string {
	return strings.FieldsFunc(token, func(r rune) bool {
		return r == '<' || r == '>' || r == ',' || r == ' '
	})
}

// enumRefs lists the enums an expression mentions as Enum.Value.
func enumRefs(src string) []string {
	if strings.TrimSpace(src) == "" || strings.TrimSpace(src) == "*" {
		return nil
	}
	n, err := expr.Parse(src)
	if err != nil {
		return nil
	}
	var out []string
	var walk func(n expr.Node)
	walk = func(n expr.Node) {
		switch n := n.(type) {
		case *expr.Ident:
			if enum, _, ok := strings.Cut(n.Name, "."); ok {
				out = append(out, enum)
			}
		case *expr.Unary:
			walk(n.X)
		case *expr.Binary:
			walk(n.L)
			walk(n.R)
		}
	}
	walk(n)
	return out
}
