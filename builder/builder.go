package builder

import (
	"encoding/xml"
	"fmt"
	"io"

	"github.com/vuuvv/errors"
	"github.com/vuuvv/wiregen/core"
	"github.com/vuuvv/wiregen/log"
	"github.com/vuuvv/wiregen/tags"
	"go.uber.org/zap"
)

type Options struct {
	// Trace logs every tag transition at debug level.
	Trace bool
}

// body collects the fields of a type or of a case. It starts undecided and
// becomes a variant body on its first switch.
type body struct {
	undecided *core.UndecidedFieldSet
	variant   *core.VariantFieldSet
}

func newBody() *body {
	return &body{undecided: &core.UndecidedFieldSet{}}
}

// add appends f to the common fields, or to the trailing fields once the
// body's switch has closed.
func (b *body) add(f *core.Field) {
	if b.variant == nil {
		b.undecided.Fields = append(b.undecided.Fields, f)
		return
	}
	b.variant.Trailing = append(b.variant.Trailing, f)
}

func (b *body) promote(discriminant string) (*core.VariantFieldSet, bool) {
	if b.variant != nil {
		return nil, false
	}
	b.variant = b.undecided.Promote(discriminant)
	return b.variant, true
}

func (b *body) finish() core.FieldSet {
	if b.variant == nil {
		return b.undecided.Finish()
	}
	return b.variant
}

type frame struct {
	mode Mode
	tag  string
	line int

	typ   *core.ProtocolType
	enum  *core.Enum
	body  *body
	field *core.Field

	variant *core.VariantFieldSet
	values  []int64

	test     string
	branches []*core.Field

	maskField string
	cond      core.ConditionKey
	buf       []*core.Field
}

// Builder turns the tag stream into the schema IR in a single pass.
type Builder struct {
	opts     Options
	category core.Category
	stack    []*frame
	schema   *core.Schema
	pos      func() (int, int)
}

func New(opts Options) *Builder {
	tags.Register()
	return &Builder{
		opts:   opts,
		schema: &core.Schema{},
		pos:    func() (int, int) { return 0, 0 },
	}
}

// Build merges the sources and builds the schema.
func Build(sources []Source, opts Options) (*core.Schema, error) {
	return New(opts).Read(MergeSources(sources...))
}

func (this *Builder) Read(r xml.TokenReader) (*core.Schema, error) {
	if p, ok := r.(interface{ InputPos() (int, int) }); ok {
		this.pos = p.InputPos
	}
	if this.opts.Trace {
		log.Debug("builder start", zap.Strings("tags", core.RegisteredTags()))
	}
	for {
		tok, err := r.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			if open := this.openType(); open != nil {
				return nil, errors.Wrapf(err, "unterminated type %s opened at line %d", open.typ.Name, open.line)
			}
			return nil, errors.WithStack(err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err = this.start(t); err != nil {
				return nil, err
			}
		case xml.EndElement:
			this.end()
		}
	}
	if open := this.openType(); open != nil {
		return nil, errors.Errorf("unterminated type %s opened at line %d", open.typ.Name, open.line)
	}
	return this.schema, nil
}

func (this *Builder) top() *frame {
	if len(this.stack) == 0 {
		return &frame{mode: ModeOutsideType}
	}
	return this.stack[len(this.stack)-1]
}

// effective is the innermost frame that is not an unknown, transparent tag.
func (this *Builder) effective() *frame {
	for i := len(this.stack) - 1; i >= 0; i-- {
		if this.stack[i].mode != ModePassthrough {
			return this.stack[i]
		}
	}
	return &frame{mode: ModeOutsideType}
}

func (this *Builder) push(f *frame) {
	this.stack = append(this.stack, f)
}

func (this *Builder) openType() *frame {
	for i := len(this.stack) - 1; i >= 0; i-- {
		if this.stack[i].mode == ModeType {
			return this.stack[i]
		}
	}
	return nil
}

func (this *Builder) trace(event string, f *frame) {
	if !this.opts.Trace {
		return
	}
	log.Debug(event,
		zap.String("tag", f.tag),
		zap.Stringer("mode", f.mode),
		zap.Int("line", f.line),
		zap.Int("depth", len(this.stack)),
	)
}

// drop logs a tag-local defect and ignores the element with its subtree.
func (this *Builder) drop(el *core.Element, err error) {
	fields := []zap.Field{zap.String("tag", el.Name), zap.Int("line", el.Line)}
	if tagErr, ok := err.(*core.TagError); ok && tagErr.Attr != "" {
		fields = append(fields, zap.String("attr", tagErr.Attr))
	}
	if t := this.openType(); t != nil {
		fields = append(fields, zap.String("type", t.typ.Name))
	}
	log.Warn(err.Error(), fields...)
	this.push(&frame{mode: ModeSkipped, tag: el.Name, line: el.Line})
}

func (this *Builder) start(se xml.StartElement) error {
	line, col := this.pos()
	el := core.NewElement(se, line, col)

	if this.top().mode == ModeSkipped {
		this.push(&frame{mode: ModeSkipped, tag: el.Name, line: line})
		return nil
	}

	fact, ok, err := core.ParseFact(el)
	if !ok {
		this.push(&frame{mode: ModePassthrough, tag: el.Name, line: line})
		this.trace("passthrough", this.top())
		return nil
	}
	if err != nil {
		if _, tagLocal := err.(*core.TagError); tagLocal {
			this.drop(el, err)
			return nil
		}
		return errors.WithStack(err)
	}

	top := this.effective()
	f := &frame{tag: el.Name, line: line}
	switch fact := fact.(type) {
	case *tags.Section:
		if this.openType() != nil || top.mode == ModeEnum {
			this.drop(el, el.Errorf("", "section inside a declaration"))
			return nil
		}
		this.category = fact.Category
		f.mode = ModeSection

	case *tags.TypeOpen:
		if this.openType() != nil || top.mode == ModeEnum {
			this.drop(el, el.Errorf("", "nested type %s", fact.Name))
			return nil
		}
		f.mode = ModeType
		f.typ = &core.ProtocolType{
			Name:      fact.Name,
			Text:      fact.Text,
			Category:  this.category.NonNone(),
			Primitive: fact.Primitive,
			Parent:    fact.Parent,
			Templated: fact.Templated,
		}
		f.body = newBody()

	case *tags.EnumOpen:
		if this.openType() != nil || top.mode == ModeEnum {
			this.drop(el, el.Errorf("", "nested enum %s", fact.Name))
			return nil
		}
		f.mode = ModeEnum
		f.enum = &core.Enum{
			Name:     fact.Name,
			Text:     fact.Text,
			Parent:   fact.Parent,
			Mask:     fact.Mask,
			Category: core.CategoryEnums,
		}

	case *tags.EnumValue:
		if top.mode != ModeEnum {
			this.drop(el, el.Errorf("", "value outside of enum"))
			return nil
		}
		for _, v := range fact.Values {
			top.enum.Values = append(top.enum.Values, core.EnumValue{Name: fact.Name, Value: v})
		}
		f.mode = ModeLeaf

	case tags.FieldFact:
		if !top.mode.acceptsFields() {
			this.drop(el, el.Errorf("", "field %s not allowed in %s", fact.Decl().Name, top.mode))
			return nil
		}
		f.mode = ModeField
		f.field = fact.Decl()

	case *tags.Align:
		if !top.mode.acceptsFields() {
			this.drop(el, el.Errorf("", "align not allowed in %s", top.mode))
			return nil
		}
		f.mode = ModeField
		f.field = &core.Field{
			Name:  fmt.Sprintf("align%d", fact.Boundary),
			Align: fact.Boundary,
			Line:  line,
		}

	case *tags.Subfield:
		if top.mode != ModeField || top.field.IsAlign() {
			this.drop(el, el.Errorf("", "subfield %s outside of field", fact.Subfield.Name))
			return nil
		}
		top.field.Subfields = append(top.field.Subfields, fact.Subfield)
		f.mode = ModeLeaf

	case *tags.Switch:
		if top.mode != ModeType && top.mode != ModeCase {
			this.drop(el, el.Errorf("", "switch not allowed in %s", top.mode))
			return nil
		}
		variant, promoted := top.body.promote(fact.Discriminant)
		if !promoted {
			this.drop(el, el.Errorf("name", "second switch on %s in one body", fact.Discriminant))
			return nil
		}
		f.mode = ModeSwitch
		f.variant = variant

	case *tags.Case:
		if top.mode != ModeSwitch {
			this.drop(el, el.Errorf("", "case outside of switch"))
			return nil
		}
		for _, v := range fact.Values {
			if top.variant.CaseFor(v) != nil {
				return errors.Errorf("line %d: case value %#x of switch %s already routes to another variant",
					line, v, top.variant.Discriminant)
			}
		}
		f.mode = ModeCase
		f.values = fact.Values
		f.body = newBody()

	case *tags.If:
		if !top.mode.acceptsFields() {
			this.drop(el, el.Errorf("", "if not allowed in %s", top.mode))
			return nil
		}
		f.mode = ModeIf
		f.test = fact.Test

	case *tags.Branch:
		if top.mode != ModeIf {
			this.drop(el, el.Errorf("", "%s outside of if", el.Name))
			return nil
		}
		f.mode = ModeIfTrue
		if fact.Negated {
			f.mode = ModeIfFalse
		}
		f.cond = core.IfKey(top.test, fact.Negated)

	case *tags.MaskMap:
		if !top.mode.acceptsFields() {
			this.drop(el, el.Errorf("", "maskmap not allowed in %s", top.mode))
			return nil
		}
		f.mode = ModeMaskMap
		f.maskField = fact.Field

	case *tags.Mask:
		if top.mode != ModeMaskMap {
			this.drop(el, el.Errorf("", "mask outside of maskmap"))
			return nil
		}
		f.mode = ModeMask
		f.cond = core.MaskKey(top.maskField, fact.Value)

	default:
		f.mode = ModePassthrough
	}

	this.push(f)
	this.trace("open", f)
	return nil
}

func (this *Builder) end() {
	if len(this.stack) == 0 {
		return
	}
	f := this.stack[len(this.stack)-1]
	this.stack = this.stack[:len(this.stack)-1]
	this.trace("close", f)

	switch f.mode {
	case ModeSection:
		this.category = core.CategoryNone

	case ModeType:
		if !f.typ.Primitive {
			f.typ.Fields = f.body.finish()
		}
		this.addType(f.typ)

	case ModeEnum:
		this.addEnum(f.enum)

	case ModeField:
		this.add(f.field)

	case ModeCase:
		sw := this.effective()
		sw.variant.Cases = append(sw.variant.Cases, &core.Case{Values: f.values, Body: f.body.finish()})

	case ModeIfTrue, ModeIfFalse:
		parent := this.effective()
		for _, field := range f.buf {
			field.Condition = f.cond.And(field.Condition)
			parent.branches = append(parent.branches, field)
		}

	case ModeIf:
		for _, field := range f.branches {
			this.add(field)
		}

	case ModeMask:
		for _, field := range f.buf {
			field.Condition = f.cond.And(field.Condition)
			this.add(field)
		}
	}
}

// add routes a finished field to the innermost frame that collects fields.
func (this *Builder) add(field *core.Field) {
	for i := len(this.stack) - 1; i >= 0; i-- {
		f := this.stack[i]
		switch f.mode {
		case ModeType, ModeCase:
			f.body.add(field)
			return
		case ModeIfTrue, ModeIfFalse, ModeMask:
			f.buf = append(f.buf, field)
			return
		case ModeMaskMap, ModePassthrough:
			continue
		default:
			log.Warn("dropping field outside of a type", zap.String("field", field.Name), zap.Int("line", field.Line))
			return
		}
	}
}

// addType appends t, a later definition of the same name in the same category
// replaces the earlier one.
func (this *Builder) addType(t *core.ProtocolType) {
	for i, existing := range this.schema.Types {
		if existing.Name == t.Name && existing.Category == t.Category {
			log.Debug("type redefined", zap.String("type", t.Name), zap.Stringer("category", t.Category))
			this.schema.Types[i] = t
			return
		}
	}
	this.schema.Types = append(this.schema.Types, t)
}

func (this *Builder) addEnum(e *core.Enum) {
	for i, existing := range this.schema.Enums {
		if existing.Name == e.Name {
			log.Debug("enum redefined", zap.String("enum", e.Name))
			this.schema.Enums[i] = e
			return
		}
	}
	this.schema.Enums = append(this.schema.Enums, e)
}
