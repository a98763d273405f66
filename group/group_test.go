package group

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vuuvv/wiregen/core"
)

func names(g core.FieldGroup) []string {
	var out []string
	for _, f := range g.Fields {
		out = append(out, f.Name)
	}
	return out
}

func TestSharedConditionIsOneGroup(t *testing.T) {
	flag := core.IfKey("flag & 0x1", false)
	groups := Fields([]*core.Field{
		{Name: "A"},
		{Name: "B", Condition: flag},
		{Name: "C", Condition: flag},
		{Name: "D"},
	})
	require.Len(t, groups, 3)
	require.Equal(t, []string{"A"}, names(groups[0]))
	require.Equal(t, []string{"B", "C"}, names(groups[1]))
	require.Equal(t, []string{"D"}, names(groups[2]))
	require.Equal(t, 1, Guards(groups))
}

func TestTextuallyDifferentConditionsStaySeparate(t *testing.T) {
	groups := Fields([]*core.Field{
		{Name: "A", Condition: core.IfKey("flag & 0x1", false)},
		{Name: "B", Condition: core.IfKey("flag&0x1", false)},
		{Name: "C", Condition: core.MaskKey("flag", "0x1")},
	})
	require.Len(t, groups, 3)
	require.Equal(t, 3, Guards(groups))
}

func TestBranchesSplitGroups(t *testing.T) {
	groups := Fields([]*core.Field{
		{Name: "A", Condition: core.IfKey("n > 0", false)},
		{Name: "B", Condition: core.IfKey("n > 0", false)},
		{Name: "C", Condition: core.IfKey("n > 0", true)},
	})
	require.Len(t, groups, 2)
	require.Equal(t, []string{"A", "B"}, names(groups[0]))
}

func TestGuardsIgnoreUnconditionalRuns(t *testing.T) {
	m := core.MaskKey("Flags", "0x2")
	groups := Fields([]*core.Field{{Name: "A"}, {Name: "B"}, {Name: "C", Condition: m}, {Name: "D"}, {Name: "E", Condition: m}})
	require.Len(t, groups, 4)
	require.Equal(t, 2, Guards(groups))
	require.Empty(t, Fields(nil))
}

func TestSetDescendsIntoCases(t *testing.T) {
	c := core.MaskKey("F", "0x1")
	fs := &core.VariantFieldSet{
		Common:       []*core.Field{{Name: "K"}},
		Discriminant: "K",
		Cases: []*core.Case{{
			Values: []int64{1, 2},
			Body:   &core.SimpleFieldSet{Fields: []*core.Field{{Name: "X", Condition: c}, {Name: "Y", Condition: c}}},
		}},
		Trailing: []*core.Field{{Name: "T"}},
	}
	b := Set(fs)
	require.True(t, b.IsVariant())
	require.Len(t, b.Cases, 1)
	require.Len(t, b.Cases[0].Body.Fields, 1)
	require.Equal(t, []string{"T"}, names(b.Trailing[0]))
}
