package generator

// DefaultOperatorTemplate wraps an RNBO export as a MetaSound node. It is used
// when no template file is configured.
const DefaultOperatorTemplate = `
namespace _OPERATOR_NAMESPACE_ {

using namespace Metasound;

#define LOCTEXT_NAMESPACE "RNBOWrapper__OPERATOR_NAME_"
_OPERATOR_PARAM_DECL_
#undef LOCTEXT_NAMESPACE

class FOperator : public TExecutableOperator<FOperator>
{
public:
    static const FNodeClassMetadata& GetNodeInfo()
    {
        auto InitNodeInfo = []() -> FNodeClassMetadata {
            FNodeClassMetadata Info;
            Info.ClassName = { TEXT("UE"), TEXT("_OPERATOR_NAME_"), TEXT("Audio") };
            Info.MajorVersion = 1;
            Info.MinorVersion = 0;
            Info.DisplayName = INVTEXT("_OPERATOR_DISPLAYNAME_");
            Info.Description = INVTEXT("_OPERATOR_DESCRIPTION_");
            Info.Author = PluginAuthor;
            Info.PromptIfMissing = PluginNodeMissingPrompt;
            Info.DefaultInterface = GetVertexInterface();
            Info.CategoryHierarchy = { INVTEXT("_OPERATOR_CATEGORY") };
            return Info;
        };
        static const FNodeClassMetadata Info = InitNodeInfo();
        return Info;
    }

    static const FVertexInterface& GetVertexInterface()
    {
        static const FVertexInterface Interface(
            FInputVertexInterface(_OPERATOR_VERTEX_INPUTS_),
            FOutputVertexInterface(_OPERATOR_VERTEX_OUTPUTS_));
        return Interface;
    }

    static TUniquePtr<IOperator> CreateOperator(const FCreateOperatorParams& InParams, FBuildErrorArray& OutErrors)
    {
        const FDataReferenceCollection& InputCollection = InParams.InputDataReferences;
        const FInputVertexInterface& InputInterface = GetVertexInterface().GetInputInterface();
        return MakeUnique<FOperator>(InParams.OperatorSettings, InputCollection, InputInterface);
    }

    FOperator(const FOperatorSettings& InSettings, const FDataReferenceCollection& InputCollection, const FInputVertexInterface& InputInterface)
        : CoreObject(RNBO::UniquePtr<RNBO::PatcherInterface>(_OPERATOR_NAME_FactoryFunction(RNBO::Platform::get())()))
        _OPERATOR_MEMBERS_INIT_
    {
        CoreObject.prepareToProcess(InSettings.GetSampleRate(), InSettings.GetNumFramesPerBlock());
    }

    virtual FDataReferenceCollection GetInputs() const override
    {
        FDataReferenceCollection InputDataReferences;
        _OPERATOR_GET_INPUTS_
        return InputDataReferences;
    }

    virtual FDataReferenceCollection GetOutputs() const override
    {
        FDataReferenceCollection OutputDataReferences;
        _OPERATOR_GET_OUTPUTS_
        return OutputDataReferences;
    }

    void UpdateParam(RNBO::ParameterIndex Index, float Value)
    {
        if (CoreObject.getParameterValue(Index) != Value) {
            CoreObject.setParameterValue(Index, Value, RNBO::RNBOTimeNow);
        }
    }

    void Execute()
    {
        _OPERATOR_PARAM_UPDATE_

        const int32 NumFrames = _OPERATOR_AUDIO_NUMFRAMES_MEMBER_->Num();
        std::array<const float*, _OPERATOR_AUDIO_INPUT_COUNT_> Ins = { _OPERATOR_AUDIO_INPUT_INIT_ };
        std::array<float*, _OPERATOR_AUDIO_OUTPUT_COUNT_> Outs = { _OPERATOR_AUDIO_OUTPUT_INIT_ };
        CoreObject.process(Ins.data(), Ins.size(), Outs.data(), Outs.size(), NumFrames);
    }

private:
    RNBO::CoreObject CoreObject;
    _OPERATOR_MEMBERS_DECL_
};

class FNode : public FNodeFacade
{
public:
    FNode(const FNodeInitData& InitData)
        : FNodeFacade(InitData.InstanceName, InitData.InstanceID, TFacadeOperatorClass<FOperator>())
    {
    }
};

METASOUND_REGISTER_NODE(FNode)

} // namespace _OPERATOR_NAMESPACE_
`
