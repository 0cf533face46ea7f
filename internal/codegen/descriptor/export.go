package descriptor

import (
	"errors"
	"fmt"

	"github.com/Alia5/rnbowrap/internal/codegen/slots"
)

var ErrInvalidText = errors.New("invalid text field")

// FileName is the descriptor file every export directory must contain.
const FileName = "description.json"

const (
	DefaultDescription = "Test MetaSound"
	DefaultCategory    = "Utility"
)

// Parameter is one entry of the "parameters" array.
type Parameter struct {
	Visible      bool    `json:"visible" yaml:"visible" toml:"visible"`
	Type         string  `json:"type" yaml:"type" toml:"type"`
	Name         string  `json:"name" yaml:"name" toml:"name"`
	ParamID      string  `json:"paramId" yaml:"paramId" toml:"paramId"`
	Index        int     `json:"index" yaml:"index" toml:"index"`
	InitialValue float64 `json:"initialValue" yaml:"initialValue" toml:"initialValue"`
}

// Export is the subset of description.json the generator consumes.
type Export struct {
	NumParameters     int         `json:"numParameters" yaml:"numParameters" toml:"numParameters"`
	Parameters        []Parameter `json:"parameters" yaml:"parameters" toml:"parameters"`
	NumInputChannels  int         `json:"numInputChannels" yaml:"numInputChannels" toml:"numInputChannels"`
	NumOutputChannels int         `json:"numOutputChannels" yaml:"numOutputChannels" toml:"numOutputChannels"`
	Description       string      `json:"description" yaml:"description" toml:"description"`
	Category          string      `json:"category" yaml:"category" toml:"category"`
}

// Load reads path and extracts the fields the generator needs.
func Load(path string) (*Export, error) {
	doc, err := Read(path)
	if err != nil {
		return nil, err
	}
	exp, err := FromDocument(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return exp, nil
}

// FromDocument converts a parsed descriptor into an Export.
func FromDocument(doc *Document) (*Export, error) {
	var (
		exp Export
		err error
	)
	if exp.NumParameters, err = doc.Integer("numParameters"); err != nil {
		return nil, err
	}
	params, err := doc.ObjectArray("parameters")
	if err != nil {
		return nil, err
	}
	exp.Parameters = make([]Parameter, 0, len(params))
	for i, p := range params {
		param, err := parameterFrom(p)
		if err != nil {
			return nil, fmt.Errorf("parameters[%d]: %w", i, err)
		}
		exp.Parameters = append(exp.Parameters, param)
	}
	if exp.NumInputChannels, err = channelCount(doc, "numInputChannels"); err != nil {
		return nil, err
	}
	if exp.NumOutputChannels, err = channelCount(doc, "numOutputChannels"); err != nil {
		return nil, err
	}
	if exp.Description, err = literalText(doc, "description", DefaultDescription); err != nil {
		return nil, err
	}
	if exp.Category, err = literalText(doc, "category", DefaultCategory); err != nil {
		return nil, err
	}
	return &exp, nil
}

// literalText reads a free-text field that ends up inside the rendered
// template. Slot tokens in it would be expanded by later substitutions.
func literalText(doc *Document, name, def string) (string, error) {
	v, err := doc.OptionalString(name, def)
	if err != nil {
		return "", err
	}
	if tokens := slots.Unresolved(v); len(tokens) > 0 {
		return "", fmt.Errorf("%w: %q contains placeholder %s", ErrInvalidText, name, tokens[0])
	}
	return v, nil
}

func channelCount(doc *Document, name string) (int, error) {
	n, err := doc.Integer(name)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q is negative (%d)", ErrTypeMismatch, name, n)
	}
	return n, nil
}

func parameterFrom(doc *Document) (Parameter, error) {
	var (
		p   Parameter
		err error
	)
	if p.Visible, err = doc.Bool("visible"); err != nil {
		return p, err
	}
	// hidden parameters are never generated, so their other fields are not required
	if !p.Visible {
		if p.Name, err = doc.OptionalString("name", ""); err != nil {
			return p, err
		}
		if p.ParamID, err = doc.OptionalString("paramId", ""); err != nil {
			return p, err
		}
		return p, nil
	}
	if p.Type, err = doc.String("type"); err != nil {
		return p, err
	}
	if p.Name, err = doc.String("name"); err != nil {
		return p, err
	}
	if p.ParamID, err = doc.String("paramId"); err != nil {
		return p, err
	}
	if p.Index, err = doc.Integer("index"); err != nil {
		return p, err
	}
	if p.InitialValue, err = doc.Double("initialValue"); err != nil {
		return p, err
	}
	return p, nil
}

// VisibleParameters returns the visible parameters in descriptor order.
func (e *Export) VisibleParameters() []Parameter {
	var out []Parameter
	for _, p := range e.Parameters {
		if p.Visible {
			out = append(out, p)
		}
	}
	return out
}
