package cmd

import (
	"log/slog"

	"github.com/Alia5/rnbowrap/internal/codegen/generator"
	"github.com/Alia5/rnbowrap/internal/codegen/slots"
	"github.com/Alia5/rnbowrap/internal/log"
)

// ExportTree holds the flags shared by commands that read an exports tree.
type ExportTree struct {
	Exports    string   `help:"Root directory holding one subdirectory per RNBO export" default:"./Exports" type:"path" env:"RNBOWRAP_EXPORTS"`
	SourceExts []string `help:"Source file extensions scanned and aggregated per export" default:".cpp" name:"source-ext" env:"RNBOWRAP_SOURCE_EXTS"`
}

type Generate struct {
	ExportTree `embed:""`

	Output          string `help:"Generated translation unit" default:"./Source/RNBOWrapper/Private/RNBOWrapperGenerated.cpp" type:"path" env:"RNBOWRAP_OUTPUT"`
	Template        string `help:"Operator template; the built-in MetaSound template is used when empty" type:"path" env:"RNBOWRAP_TEMPLATE"`
	IncludeManifest string `help:"Write the include paths needed by the output to this file (.json, .yaml or .toml)" type:"path" env:"RNBOWRAP_INCLUDE_MANIFEST"`
	Force           bool   `help:"Rewrite the output even when its content is unchanged"`
}

// Run is called by Kong when the generate command is executed.
func (g *Generate) Run(logger *slog.Logger, rawLogger log.RawLogger) error {
	logger.Info("Starting RNBO wrapper generation", "exports", g.Exports, "output", g.Output)

	tpl, err := g.loadTemplate(logger)
	if err != nil {
		return err
	}

	gen := generator.New(g.Exports, tpl, logger,
		generator.WithSourceExts(g.SourceExts),
		generator.WithDump(rawLogger),
	)
	res, err := gen.Run()
	if err != nil {
		return err
	}

	written, err := generator.WriteOutput(g.Output, []byte(res.Text), g.Force)
	if err != nil {
		return err
	}
	if written {
		logger.Info("Wrote generated wrapper", "output", g.Output, "exports", len(res.Units), "bytes", len(res.Text))
	} else {
		logger.Info("Generated wrapper unchanged", "output", g.Output)
	}

	if g.IncludeManifest != "" {
		if err := generator.WriteIncludeManifest(g.IncludeManifest, g.Output, res); err != nil {
			return err
		}
		logger.Debug("Wrote include manifest", "path", g.IncludeManifest, "paths", len(res.IncludePaths))
	}
	return nil
}

func (g *Generate) loadTemplate(logger *slog.Logger) (*slots.Template, error) {
	if g.Template == "" {
		logger.Debug("Using built-in operator template")
		return slots.Load(generator.DefaultOperatorTemplate), nil
	}
	tpl, err := slots.LoadFile(g.Template)
	if err != nil {
		return nil, err
	}
	if missing := tpl.MissingRequired(); len(missing) > 0 {
		logger.Warn("Operator template lacks placeholders", "template", g.Template, "missing", missing)
	}
	return tpl, nil
}
