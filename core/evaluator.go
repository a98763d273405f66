package core

import (
	"github.com/google/cel-go/cel"
	"github.com/vuuvv/errors"
)

type CelEvaluator struct{ prg cel.Program }

// CompileExpression compiles a CEL predicate over type metadata.
func CompileExpression(expr string) (*CelEvaluator, error) {
	env, err := cel.NewEnv(
		cel.Variable("name", cel.StringType),                 // 类型名
		cel.Variable("category", cel.StringType),             // 分类目录
		cel.Variable("text", cel.StringType),                 // 文档
		cel.Variable("fields", cel.ListType(cel.StringType)), // 字段名
	)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return nil, errors.WithStack(issues.Err())
	}
	if !ast.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.Errorf("filter expression must be boolean, got %s", ast.OutputType())
	}

	prg, err := env.Program(ast)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &CelEvaluator{prg: prg}, nil
}

func (e *CelEvaluator) Execute(vars map[string]any) (any, error) {
	out, _, err := e.prg.Eval(vars)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out.Value(), nil
}

// Match evaluates the predicate for one type.
func (e *CelEvaluator) Match(t *ProtocolType) (bool, error) {
	var fields []string
	if t.Fields != nil {
		WalkFields(t.Fields, func(f *Field) {
			if !f.IsAlign() {
				fields = append(fields, f.Name)
			}
		})
	}
	if fields == nil {
		fields = []string{}
	}
	res, err := e.Execute(map[string]any{
		"name":     t.Name,
		"category": t.Category.Dir(),
		"text":     t.Text,
		"fields":   fields,
	})
	if err != nil {
		return false, errors.Wrapf(err, "evaluate filter for type %s", t.Name)
	}
	b, ok := res.(bool)
	return ok && b, nil
}
