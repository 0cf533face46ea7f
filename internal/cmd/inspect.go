package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/Alia5/rnbowrap/internal/codegen/generator"

	toml "github.com/pelletier/go-toml"
	"golang.org/x/term"
	yaml "gopkg.in/yaml.v3"
)

// Inspect prints the plan derived for every export without rendering it.
type Inspect struct {
	ExportTree `embed:""`

	Format string `help:"Output format" enum:"json,yaml,toml" default:"json"`

	out io.Writer
}

type inspectReport struct {
	Exports []*generator.Unit `json:"exports" yaml:"exports" toml:"exports"`
}

// Run is called by Kong when the inspect command is executed.
func (i *Inspect) Run(logger *slog.Logger) error {
	units, err := generator.New(i.Exports, nil, logger, generator.WithSourceExts(i.SourceExts)).Plan()
	if err != nil {
		return err
	}
	logger.Debug("Planned exports", "count", len(units))

	out := i.out
	pretty := false
	if out == nil {
		out = os.Stdout
		pretty = term.IsTerminal(int(os.Stdout.Fd()))
	}

	data, err := encodeReport(inspectReport{Exports: units}, normalizeFormat(i.Format), pretty)
	if err != nil {
		return err
	}
	_, err = out.Write(data)
	return err
}

func encodeReport(r inspectReport, format string, pretty bool) ([]byte, error) {
	switch format {
	case "json":
		var (
			data []byte
			err  error
		)
		if pretty {
			data, err = json.MarshalIndent(r, "", "  ")
		} else {
			data, err = json.Marshal(r)
		}
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case "yaml":
		return yaml.Marshal(r)
	case "toml":
		return toml.Marshal(r)
	}
	return nil, fmt.Errorf("unsupported format: %s", format)
}
