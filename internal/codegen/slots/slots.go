// Package slots implements the literal placeholder templating used to render
// operator wrappers. A template is plain text; each Slot is a fixed token that
// is replaced verbatim. There is no escaping, no conditionals and no loops:
// callers build repeated blocks themselves and hand over the joined text.
package slots

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

var ErrTemplateNotFound = errors.New("template not found")

// Slot is a placeholder token recognized in operator templates.
type Slot string

const (
	Namespace         Slot = "_OPERATOR_NAMESPACE_"
	Name              Slot = "_OPERATOR_NAME_"
	DisplayName       Slot = "_OPERATOR_DISPLAYNAME_"
	Description       Slot = "_OPERATOR_DESCRIPTION_"
	Category          Slot = "_OPERATOR_CATEGORY"
	VertexInputs      Slot = "_OPERATOR_VERTEX_INPUTS_"
	VertexOutputs     Slot = "_OPERATOR_VERTEX_OUTPUTS_"
	GetInputs         Slot = "_OPERATOR_GET_INPUTS_"
	GetOutputs        Slot = "_OPERATOR_GET_OUTPUTS_"
	AudioInputCount   Slot = "_OPERATOR_AUDIO_INPUT_COUNT_"
	AudioInputInit    Slot = "_OPERATOR_AUDIO_INPUT_INIT_"
	AudioOutputCount  Slot = "_OPERATOR_AUDIO_OUTPUT_COUNT_"
	AudioOutputInit   Slot = "_OPERATOR_AUDIO_OUTPUT_INIT_"
	MembersDecl       Slot = "_OPERATOR_MEMBERS_DECL_"
	MembersInit       Slot = "_OPERATOR_MEMBERS_INIT_"
	ParamDecl         Slot = "_OPERATOR_PARAM_DECL_"
	ParamUpdate       Slot = "_OPERATOR_PARAM_UPDATE_"
	AudioFramesMember Slot = "_OPERATOR_AUDIO_NUMFRAMES_MEMBER_"
)

// All lists every recognized slot with whether a usable wrapper template must
// contain it.
var All = []struct {
	Slot     Slot
	Required bool
}{
	{Namespace, true},
	{Name, true},
	{DisplayName, false},
	{Description, false},
	{Category, false},
	{VertexInputs, true},
	{VertexOutputs, true},
	{GetInputs, true},
	{GetOutputs, true},
	{AudioInputCount, true},
	{AudioInputInit, true},
	{AudioOutputCount, true},
	{AudioOutputInit, true},
	{MembersDecl, true},
	{MembersInit, true},
	{ParamDecl, true},
	{ParamUpdate, true},
	{AudioFramesMember, false},
}

func (s Slot) String() string { return string(s) }

// Substitution replaces every occurrence of Slot with Value.
type Substitution struct {
	Slot  Slot
	Value string
}

// Template is a loaded template text. It is read-only after Load and may be
// rendered any number of times.
type Template struct {
	text string
}

func Load(text string) *Template {
	return &Template{text: text}
}

// LoadFile reads the template at path.
func LoadFile(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, path)
		}
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}
	return Load(string(data)), nil
}

func (t *Template) Text() string { return t.text }

// Uses reports whether the template contains slot.
func (t *Template) Uses(slot Slot) bool {
	return strings.Contains(t.text, string(slot))
}

// MissingRequired returns the required slots the template does not contain.
func (t *Template) MissingRequired() []Slot {
	var missing []Slot
	for _, s := range All {
		if s.Required && !t.Uses(s.Slot) {
			missing = append(missing, s.Slot)
		}
	}
	return missing
}

// Render applies subs in order, each as a literal replace-all, and returns the
// result. The stored template is left untouched.
func (t *Template) Render(subs []Substitution) string {
	out := t.text
	for _, s := range subs {
		out = strings.ReplaceAll(out, string(s.Slot), s.Value)
	}
	return out
}

// Unresolved returns the recognized slots still present in text.
func Unresolved(text string) []Slot {
	var left []Slot
	for _, s := range All {
		if strings.Contains(text, string(s.Slot)) {
			left = append(left, s.Slot)
		}
	}
	return left
}
