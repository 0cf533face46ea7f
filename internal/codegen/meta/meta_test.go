package meta_test

import (
	"testing"

	"github.com/Alia5/rnbowrap/internal/codegen/descriptor"
	"github.com/Alia5/rnbowrap/internal/codegen/meta"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPlan(t *testing.T) {
	exp := &descriptor.Export{
		Parameters: []descriptor.Parameter{
			{Visible: true, Type: "number", Name: "Cutoff", ParamID: "filter/cutoff", Index: 3, InitialValue: 440},
			{Visible: false, Name: "Internal", ParamID: "internal", Index: 1},
			{Visible: true, Type: "number", Name: "Gain", ParamID: "0", Index: 0, InitialValue: 0.5},
		},
		NumInputChannels:  2,
		NumOutputChannels: 1,
		Description:       "A filter",
		Category:          "Filters",
	}

	plan, err := meta.NewPlan(exp, "Foo")
	require.NoError(t, err)

	assert.Equal(t, "Foo", plan.Symbol)
	assert.Equal(t, "FooOperator", plan.Namespace)
	assert.Equal(t, "Foo", plan.DisplayName)
	assert.Equal(t, "A filter", plan.Description)
	assert.Equal(t, "Filters", plan.Category)

	require.Len(t, plan.Params, 2)
	// descriptor order, not index order
	assert.Equal(t, "InParamfilter_cutoff", plan.Params[0].DeclName())
	assert.Equal(t, "Paramfilter_cutoff", plan.Params[0].MemberName())
	assert.Equal(t, 3, plan.Params[0].Index)
	assert.Equal(t, "InParam0", plan.Params[1].DeclName())
	assert.Equal(t, "Param0", plan.Params[1].MemberName())

	require.Len(t, plan.Inputs, 2)
	require.Len(t, plan.Outputs, 1)
	assert.Equal(t, "AudioInput1", plan.Inputs[1].MemberName())
	assert.Equal(t, "InParamAudio1", plan.Inputs[1].DeclName())
	assert.Equal(t, "In 2", plan.Inputs[1].Label())
	assert.Equal(t, "AudioOutput0", plan.Outputs[0].MemberName())
	assert.Equal(t, "OutParamAudio0", plan.Outputs[0].DeclName())
	assert.Equal(t, "Out 1", plan.Outputs[0].Label())

	frames, ok := plan.FramesMember()
	assert.True(t, ok)
	assert.Equal(t, "AudioOutput0", frames)
}

func TestFramesMember(t *testing.T) {
	type testCase struct {
		name     string
		inputs   int
		outputs  int
		expected string
		ok       bool
	}
	testCases := []testCase{
		{name: "inputs only", inputs: 3, expected: "AudioInput2", ok: true},
		{name: "outputs win", inputs: 1, outputs: 2, expected: "AudioOutput1", ok: true},
		{name: "no audio", ok: false},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			plan, err := meta.NewPlan(&descriptor.Export{NumInputChannels: tc.inputs, NumOutputChannels: tc.outputs}, "X")
			require.NoError(t, err)
			name, ok := plan.FramesMember()
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.expected, name)
		})
	}
}

func TestNewPlanDuplicateParamID(t *testing.T) {
	exp := &descriptor.Export{
		Parameters: []descriptor.Parameter{
			{Visible: true, Name: "A", ParamID: "a/b"},
			{Visible: true, Name: "B", ParamID: "a.b"},
		},
	}
	_, err := meta.NewPlan(exp, "X")
	assert.ErrorIs(t, err, meta.ErrDuplicateParamID)

	// hidden duplicates are never generated, so they do not collide
	exp.Parameters[1].Visible = false
	_, err = meta.NewPlan(exp, "X")
	assert.NoError(t, err)
}

func TestNewPlanEmptyParamID(t *testing.T) {
	exp := &descriptor.Export{
		Parameters: []descriptor.Parameter{{Visible: true, Name: "A"}},
	}
	_, err := meta.NewPlan(exp, "X")
	assert.ErrorIs(t, err, meta.ErrInvalidParamID)
	assert.NotErrorIs(t, err, meta.ErrDuplicateParamID)
}
