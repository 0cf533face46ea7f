package descriptor_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/Alia5/rnbowrap/internal/codegen/descriptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDescription = `{
  "numParameters": 2,
  "parameters": [
    {"visible": true, "type": "ParameterTypeNumber", "name": "Gain", "paramId": "gain", "index": 0, "initialValue": 0.5},
    {"visible": false, "type": "ParameterTypeNumber", "name": "Hidden", "paramId": "hidden", "index": 1, "initialValue": 0}
  ],
  "numInputChannels": 2,
  "numOutputChannels": 1
}`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := descriptor.Read(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, descriptor.ErrNotFound)

	bad := writeFile(t, dir, "bad.json", `{"numParameters": `)
	_, err = descriptor.Read(bad)
	assert.ErrorIs(t, err, descriptor.ErrParseError)

	arr := writeFile(t, dir, "array.json", `[1, 2, 3]`)
	_, err = descriptor.Read(arr)
	assert.ErrorIs(t, err, descriptor.ErrParseError)
}

func TestAccessors(t *testing.T) {
	doc, err := descriptor.Parse([]byte(`{
		"b": true, "s": "text", "i": 3, "f": 1.25, "objs": [{"x": 1}, {"x": 2}],
		"mixed": [{"x": 1}, 2], "nul": null
	}`))
	require.NoError(t, err)

	b, err := doc.Bool("b")
	assert.NoError(t, err)
	assert.True(t, b)

	s, err := doc.String("s")
	assert.NoError(t, err)
	assert.Equal(t, "text", s)

	i, err := doc.Integer("i")
	assert.NoError(t, err)
	assert.Equal(t, 3, i)

	f, err := doc.Double("f")
	assert.NoError(t, err)
	assert.InDelta(t, 1.25, f, 1e-12)

	objs, err := doc.ObjectArray("objs")
	require.NoError(t, err)
	require.Len(t, objs, 2)
	x, err := objs[1].Integer("x")
	assert.NoError(t, err)
	assert.Equal(t, 2, x)

	type testCase struct {
		name     string
		call     func() error
		expected error
	}
	testCases := []testCase{
		{"missing bool", func() error { _, err := doc.Bool("nope"); return err }, descriptor.ErrMissingField},
		{"string as bool", func() error { _, err := doc.Bool("s"); return err }, descriptor.ErrTypeMismatch},
		{"number as string", func() error { _, err := doc.String("i"); return err }, descriptor.ErrTypeMismatch},
		{"fraction as integer", func() error { _, err := doc.Integer("f"); return err }, descriptor.ErrTypeMismatch},
		{"string as double", func() error { _, err := doc.Double("s"); return err }, descriptor.ErrTypeMismatch},
		{"null as double", func() error { _, err := doc.Double("nul"); return err }, descriptor.ErrTypeMismatch},
		{"object as array", func() error { _, err := doc.ObjectArray("s"); return err }, descriptor.ErrTypeMismatch},
		{"array of non-objects", func() error { _, err := doc.ObjectArray("mixed"); return err }, descriptor.ErrTypeMismatch},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, tc.call(), tc.expected)
		})
	}
}

func TestOptionalString(t *testing.T) {
	doc, err := descriptor.Parse([]byte(`{"category": "Filters", "bad": 1}`))
	require.NoError(t, err)

	v, err := doc.OptionalString("category", "Utility")
	assert.NoError(t, err)
	assert.Equal(t, "Filters", v)

	v, err = doc.OptionalString("description", "Test MetaSound")
	assert.NoError(t, err)
	assert.Equal(t, "Test MetaSound", v)

	_, err = doc.OptionalString("bad", "")
	assert.ErrorIs(t, err, descriptor.ErrTypeMismatch)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, descriptor.FileName, sampleDescription)

	exp, err := descriptor.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 2, exp.NumParameters)
	assert.Equal(t, 2, exp.NumInputChannels)
	assert.Equal(t, 1, exp.NumOutputChannels)
	assert.Equal(t, descriptor.DefaultDescription, exp.Description)
	assert.Equal(t, descriptor.DefaultCategory, exp.Category)
	require.Len(t, exp.Parameters, 2)

	visible := exp.VisibleParameters()
	require.Len(t, visible, 1)
	assert.Equal(t, descriptor.Parameter{
		Visible:      true,
		Type:         "ParameterTypeNumber",
		Name:         "Gain",
		ParamID:      "gain",
		Index:        0,
		InitialValue: 0.5,
	}, visible[0])
}

func TestLoadHiddenParameterNeedsOnlyVisibility(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, descriptor.FileName, `{
		"numParameters": 1,
		"parameters": [{"visible": false}],
		"numInputChannels": 0,
		"numOutputChannels": 1
	}`)

	exp, err := descriptor.Load(path)
	require.NoError(t, err)
	assert.Empty(t, exp.VisibleParameters())
}

func TestLoadFieldErrors(t *testing.T) {
	type testCase struct {
		name        string
		content     string
		expectedErr error
	}

	testCases := []testCase{
		{
			name:        "missing numParameters",
			content:     `{"parameters": [], "numInputChannels": 1, "numOutputChannels": 1}`,
			expectedErr: descriptor.ErrMissingField,
		},
		{
			name:        "missing output channels",
			content:     `{"numParameters": 0, "parameters": [], "numInputChannels": 1}`,
			expectedErr: descriptor.ErrMissingField,
		},
		{
			name:        "negative input channels",
			content:     `{"numParameters": 0, "parameters": [], "numInputChannels": -1, "numOutputChannels": 1}`,
			expectedErr: descriptor.ErrTypeMismatch,
		},
		{
			name:        "parameter without paramId",
			content:     `{"numParameters": 1, "parameters": [{"visible": true, "type": "t", "name": "n", "index": 0, "initialValue": 0}], "numInputChannels": 1, "numOutputChannels": 1}`,
			expectedErr: descriptor.ErrMissingField,
		},
		{
			name:        "string initial value",
			content:     `{"numParameters": 1, "parameters": [{"visible": true, "type": "t", "name": "n", "paramId": "p", "index": 0, "initialValue": "0.5"}], "numInputChannels": 1, "numOutputChannels": 1}`,
			expectedErr: descriptor.ErrTypeMismatch,
		},
		{
			name:        "hidden parameter with numeric name",
			content:     `{"numParameters": 1, "parameters": [{"visible": false, "name": 7}], "numInputChannels": 1, "numOutputChannels": 1}`,
			expectedErr: descriptor.ErrTypeMismatch,
		},
		{
			name:        "placeholder in description",
			content:     `{"numParameters": 0, "parameters": [], "numInputChannels": 1, "numOutputChannels": 1, "description": "see _OPERATOR_PARAM_DECL_"}`,
			expectedErr: descriptor.ErrInvalidText,
		},
		{
			name:        "placeholder in category",
			content:     `{"numParameters": 0, "parameters": [], "numInputChannels": 1, "numOutputChannels": 1, "category": "_OPERATOR_NAME_"}`,
			expectedErr: descriptor.ErrInvalidText,
		},
		{
			name:        "category of wrong type",
			content:     `{"numParameters": 0, "parameters": [], "numInputChannels": 1, "numOutputChannels": 1, "category": 3}`,
			expectedErr: descriptor.ErrTypeMismatch,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), descriptor.FileName, tc.content)
			_, err := descriptor.Load(path)
			assert.ErrorIs(t, err, tc.expectedErr)
		})
	}
}
