package generator

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/Alia5/rnbowrap/internal/codegen/common"
	"github.com/Alia5/rnbowrap/internal/codegen/descriptor"
	"github.com/Alia5/rnbowrap/internal/codegen/meta"
	"github.com/Alia5/rnbowrap/internal/codegen/scanner"
	"github.com/Alia5/rnbowrap/internal/codegen/slots"
)

var (
	ErrDescriptorInvalid   = errors.New("invalid export descriptor")
	ErrSymbolNotFound      = errors.New("cannot find factory symbol")
	ErrNullMemberReference = errors.New("export has no audio channels to take the frame count from")
)

// Unit is the rendered wrapper for one export.
type Unit struct {
	Dir        string               `json:"dir" yaml:"dir" toml:"dir"`
	Sources    []string             `json:"sources" yaml:"sources" toml:"sources"`
	Factory    scanner.FactoryMatch `json:"factory" yaml:"factory" toml:"factory"`
	Plan       *meta.Plan           `json:"plan" yaml:"plan" toml:"plan"`
	Text       string               `json:"-" yaml:"-" toml:"-"`
	Unresolved []slots.Slot         `json:"unresolved,omitempty" yaml:"unresolved,omitempty" toml:"unresolved,omitempty"`
}

// PlanExport reads the export in dir and derives its wrapper plan without
// rendering anything.
func PlanExport(dir string, sourceExts []string) (*Unit, error) {
	exp, err := descriptor.Load(filepath.Join(dir, descriptor.FileName))
	if err != nil {
		return nil, fmt.Errorf("%w at %s: %w", ErrDescriptorInvalid, dir, err)
	}

	sources, err := scanner.SourceFiles(dir, sourceExts)
	if err != nil {
		return nil, err
	}

	factory, found, err := scanner.FindFactorySymbol(dir, sourceExts)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("%w for export at: %s", ErrSymbolNotFound, dir)
	}

	plan, err := meta.NewPlan(exp, factory.Name)
	if err != nil {
		return nil, fmt.Errorf("export at %s: %w", dir, err)
	}

	return &Unit{
		Dir:     dir,
		Sources: sources,
		Factory: factory,
		Plan:    plan,
	}, nil
}

// RenderExport plans the export in dir and renders it with tpl.
func RenderExport(dir string, tpl *slots.Template, sourceExts []string) (*Unit, error) {
	u, err := PlanExport(dir, sourceExts)
	if err != nil {
		return nil, err
	}
	text, err := RenderPlan(u.Plan, tpl)
	if err != nil {
		return nil, fmt.Errorf("export at %s: %w", dir, err)
	}
	u.Text = text
	u.Unresolved = slots.Unresolved(text)
	return u, nil
}

// RenderPlan substitutes every slot of tpl from plan. Naming slots go first,
// then the joined declaration blocks and channel counts.
func RenderPlan(plan *meta.Plan, tpl *slots.Template) (string, error) {
	subs := []slots.Substitution{
		{Slot: slots.Namespace, Value: plan.Namespace},
		{Slot: slots.Name, Value: plan.Symbol},
		{Slot: slots.DisplayName, Value: plan.DisplayName},
		{Slot: slots.Description, Value: common.CEscape(plan.Description)},
		{Slot: slots.Category, Value: common.CEscape(plan.Category)},
	}

	b := buildBlocks(plan)

	frames, ok := plan.FramesMember()
	if !ok && tpl.Uses(slots.AudioFramesMember) {
		return "", fmt.Errorf("%w (%s)", ErrNullMemberReference, slots.AudioFramesMember)
	}

	membersInit := " "
	if len(b.memberInit) > 0 {
		membersInit = ", " + strings.Join(b.memberInit, ",\n")
	}

	subs = append(subs,
		slots.Substitution{Slot: slots.VertexInputs, Value: strings.Join(b.vertexInputs, ", ")},
		slots.Substitution{Slot: slots.VertexOutputs, Value: strings.Join(b.vertexOutputs, ", ")},
		slots.Substitution{Slot: slots.GetInputs, Value: strings.Join(b.getInputs, "\n")},
		slots.Substitution{Slot: slots.GetOutputs, Value: strings.Join(b.getOutputs, "\n")},
		slots.Substitution{Slot: slots.AudioInputCount, Value: strconv.Itoa(len(b.inputAudioInit))},
		slots.Substitution{Slot: slots.AudioInputInit, Value: strings.Join(b.inputAudioInit, ", ")},
		slots.Substitution{Slot: slots.AudioOutputCount, Value: strconv.Itoa(len(b.outputAudioInit))},
		slots.Substitution{Slot: slots.AudioOutputInit, Value: strings.Join(b.outputAudioInit, ", ")},
		slots.Substitution{Slot: slots.MembersDecl, Value: strings.Join(b.memberDecl, "\n")},
		slots.Substitution{Slot: slots.MembersInit, Value: membersInit},
		slots.Substitution{Slot: slots.ParamDecl, Value: strings.Join(b.paramDecl, "\n")},
		slots.Substitution{Slot: slots.ParamUpdate, Value: strings.Join(b.paramUpdate, "\n")},
		slots.Substitution{Slot: slots.AudioFramesMember, Value: frames},
	)

	return tpl.Render(subs), nil
}

// blocks are the per-slot line lists of one plan, in declaration order.
type blocks struct {
	paramDecl       []string
	paramUpdate     []string
	memberDecl      []string
	memberInit      []string
	vertexInputs    []string
	vertexOutputs   []string
	getInputs       []string
	getOutputs      []string
	inputAudioInit  []string
	outputAudioInit []string
}

func buildBlocks(plan *meta.Plan) blocks {
	var b blocks

	for _, p := range plan.Params {
		decl, member := p.DeclName(), p.MemberName()
		label := common.CString(p.Label)

		b.paramDecl = append(b.paramDecl, fmt.Sprintf("METASOUND_PARAM(%s, %s, %s)", decl, label, label))
		b.vertexInputs = append(b.vertexInputs, fmt.Sprintf("TInputDataVertex<float>(METASOUND_GET_PARAM_NAME_AND_METADATA(%s), %s)", decl, common.FloatLiteral(p.Default)))
		b.paramUpdate = append(b.paramUpdate, fmt.Sprintf("UpdateParam(%d, *%s);", p.Index, member))
		b.memberDecl = append(b.memberDecl, fmt.Sprintf("FFloatReadRef %s;", member))
		b.memberInit = append(b.memberInit, fmt.Sprintf("%s(InputCollection.GetDataReadReferenceOrConstructWithVertexDefault<float>(InputInterface, METASOUND_GET_PARAM_NAME(%s), InSettings))", member, decl))
		b.getInputs = append(b.getInputs, fmt.Sprintf("InputDataReferences.AddDataReadReference(METASOUND_GET_PARAM_NAME(%s), %s);", decl, member))
	}

	for _, c := range plan.Inputs {
		decl, member := c.DeclName(), c.MemberName()
		label := common.CString(c.Label())

		b.memberDecl = append(b.memberDecl, fmt.Sprintf("FAudioBufferReadRef %s;", member))
		b.paramDecl = append(b.paramDecl, fmt.Sprintf("METASOUND_PARAM(%s, %s, %s)", decl, label, label))
		b.inputAudioInit = append(b.inputAudioInit, member+"->GetData()")
		b.memberInit = append(b.memberInit, fmt.Sprintf("%s(InputCollection.GetDataReadReferenceOrConstruct<FAudioBuffer>(METASOUND_GET_PARAM_NAME(%s), InSettings))", member, decl))
		b.vertexInputs = append(b.vertexInputs, fmt.Sprintf("TInputDataVertex<FAudioBuffer>(METASOUND_GET_PARAM_NAME_AND_METADATA(%s))", decl))
		b.getInputs = append(b.getInputs, fmt.Sprintf("InputDataReferences.AddDataReadReference(METASOUND_GET_PARAM_NAME(%s), %s);", decl, member))
	}

	for _, c := range plan.Outputs {
		decl, member := c.DeclName(), c.MemberName()
		label := common.CString(c.Label())

		b.memberDecl = append(b.memberDecl, fmt.Sprintf("FAudioBufferWriteRef %s;", member))
		b.paramDecl = append(b.paramDecl, fmt.Sprintf("METASOUND_PARAM(%s, %s, %s)", decl, label, label))
		b.outputAudioInit = append(b.outputAudioInit, member+"->GetData()")
		b.memberInit = append(b.memberInit, fmt.Sprintf("%s(FAudioBufferWriteRef::CreateNew(InSettings))", member))
		b.vertexOutputs = append(b.vertexOutputs, fmt.Sprintf("TOutputDataVertex<FAudioBuffer>(METASOUND_GET_PARAM_NAME_AND_METADATA(%s))", decl))
		b.getOutputs = append(b.getOutputs, fmt.Sprintf("OutputDataReferences.AddDataReadReference(METASOUND_GET_PARAM_NAME(%s), %s);", decl, member))
	}

	return b
}
