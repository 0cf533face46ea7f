// Package meta holds the pure-data plan of an operator wrapper. A Plan is
// computed once from an export's descriptor and factory symbol; renderers map
// it to text without further lookups.
package meta

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/Alia5/rnbowrap/internal/codegen/common"
	"github.com/Alia5/rnbowrap/internal/codegen/descriptor"
)

var (
	ErrDuplicateParamID = errors.New("duplicate parameter id")
	ErrInvalidParamID   = errors.New("invalid parameter id")
)

// Param is a visible parameter exposed as a float input vertex.
type Param struct {
	ID      string  `json:"id" yaml:"id" toml:"id"` // identifier suffix derived from paramId
	Label   string  `json:"label" yaml:"label" toml:"label"`
	Type    string  `json:"type" yaml:"type" toml:"type"`
	Index   int     `json:"index" yaml:"index" toml:"index"`
	Default float64 `json:"default" yaml:"default" toml:"default"`
}

func (p Param) DeclName() string   { return "InParam" + p.ID }
func (p Param) MemberName() string { return "Param" + p.ID }

type Direction string

const (
	Input  Direction = "in"
	Output Direction = "out"
)

// Channel is one audio buffer vertex.
type Channel struct {
	Direction Direction `json:"direction" yaml:"direction" toml:"direction"`
	Index     int       `json:"index" yaml:"index" toml:"index"`
}

func (c Channel) DeclName() string {
	if c.Direction == Input {
		return "InParamAudio" + strconv.Itoa(c.Index)
	}
	return "OutParamAudio" + strconv.Itoa(c.Index)
}

func (c Channel) MemberName() string {
	if c.Direction == Input {
		return "AudioInput" + strconv.Itoa(c.Index)
	}
	return "AudioOutput" + strconv.Itoa(c.Index)
}

// Label is the one-based display name, e.g. "In 1".
func (c Channel) Label() string {
	if c.Direction == Input {
		return "In " + strconv.Itoa(c.Index+1)
	}
	return "Out " + strconv.Itoa(c.Index+1)
}

// Plan is everything needed to render one operator wrapper.
type Plan struct {
	Symbol      string    `json:"symbol" yaml:"symbol" toml:"symbol"`
	Namespace   string    `json:"namespace" yaml:"namespace" toml:"namespace"`
	DisplayName string    `json:"displayName" yaml:"displayName" toml:"displayName"`
	Description string    `json:"description" yaml:"description" toml:"description"`
	Category    string    `json:"category" yaml:"category" toml:"category"`
	Params      []Param   `json:"params" yaml:"params" toml:"params"`
	Inputs      []Channel `json:"inputs" yaml:"inputs" toml:"inputs"`
	Outputs     []Channel `json:"outputs" yaml:"outputs" toml:"outputs"`
}

// NewPlan derives the wrapper plan for an export whose factory symbol is
// symbol. Parameters keep descriptor order; hidden ones are dropped.
func NewPlan(exp *descriptor.Export, symbol string) (*Plan, error) {
	p := &Plan{
		Symbol:      symbol,
		Namespace:   symbol + "Operator",
		DisplayName: symbol,
		Description: exp.Description,
		Category:    exp.Category,
	}

	seen := make(map[string]string)
	for _, param := range exp.VisibleParameters() {
		id := common.SanitizeIdentifier(param.ParamID)
		if id == "" {
			return nil, fmt.Errorf("%w: parameter %q has an empty paramId", ErrInvalidParamID, param.Name)
		}
		if prev, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: %q and %q both map to %q", ErrDuplicateParamID, prev, param.ParamID, id)
		}
		seen[id] = param.ParamID

		p.Params = append(p.Params, Param{
			ID:      id,
			Label:   param.Name,
			Type:    param.Type,
			Index:   param.Index,
			Default: param.InitialValue,
		})
	}

	for i := 0; i < exp.NumInputChannels; i++ {
		p.Inputs = append(p.Inputs, Channel{Direction: Input, Index: i})
	}
	for i := 0; i < exp.NumOutputChannels; i++ {
		p.Outputs = append(p.Outputs, Channel{Direction: Output, Index: i})
	}
	return p, nil
}

// FramesMember returns the member whose buffer length is the block size: the
// last declared audio member, outputs after inputs. ok is false when the
// export has no audio channels at all.
func (p *Plan) FramesMember() (name string, ok bool) {
	if n := len(p.Outputs); n > 0 {
		return p.Outputs[n-1].MemberName(), true
	}
	if n := len(p.Inputs); n > 0 {
		return p.Inputs[n-1].MemberName(), true
	}
	return "", false
}
