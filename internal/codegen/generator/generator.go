package generator

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Alia5/rnbowrap/internal/codegen/common"
	"github.com/Alia5/rnbowrap/internal/codegen/slots"
	"github.com/Alia5/rnbowrap/internal/log"
)

var ErrNoExports = errors.New("no exports found")

// RNBO runtime subdirectory inside an export.
const runtimeDirName = "rnbo"

type Generator struct {
	exportsDir string
	template   *slots.Template
	sourceExts []string
	logger     *slog.Logger
	dump       log.RawLogger
}

type Option func(*Generator)

// WithSourceExts sets the extensions scanned for factory symbols and
// aggregated as includes.
func WithSourceExts(exts []string) Option {
	return func(g *Generator) {
		if len(exts) > 0 {
			g.sourceExts = exts
		}
	}
}

// WithDump receives every rendered unit.
func WithDump(dump log.RawLogger) Option {
	return func(g *Generator) { g.dump = dump }
}

func New(exportsDir string, tpl *slots.Template, logger *slog.Logger, opts ...Option) *Generator {
	g := &Generator{
		exportsDir: exportsDir,
		template:   tpl,
		logger:     logger,
		dump:       log.NewRaw(nil),
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

// Result is the assembled translation unit plus what the surrounding build
// needs to compile it.
type Result struct {
	Text         string   `json:"-" yaml:"-" toml:"-"`
	Units        []*Unit  `json:"exports" yaml:"exports" toml:"exports"`
	IncludePaths []string `json:"includePaths" yaml:"includePaths" toml:"includePaths"`
}

// DiscoverExports returns the immediate subdirectories of the exports root in
// directory-listing order.
func (g *Generator) DiscoverExports() ([]string, error) {
	entries, err := os.ReadDir(g.exportsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read exports directory: %w", err)
	}
	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dirs = append(dirs, filepath.Join(g.exportsDir, entry.Name()))
	}
	if len(dirs) == 0 {
		return nil, fmt.Errorf("%w in %s", ErrNoExports, g.exportsDir)
	}
	return dirs, nil
}

// Plan derives every export's plan without rendering.
func (g *Generator) Plan() ([]*Unit, error) {
	dirs, err := g.DiscoverExports()
	if err != nil {
		return nil, err
	}
	units := make([]*Unit, 0, len(dirs))
	for _, dir := range dirs {
		u, err := PlanExport(dir, g.sourceExts)
		if err != nil {
			return nil, err
		}
		units = append(units, u)
	}
	return units, nil
}

// Run renders every export and assembles the generated translation unit.
// Any failing export aborts the whole run.
func (g *Generator) Run() (*Result, error) {
	dirs, err := g.DiscoverExports()
	if err != nil {
		return nil, err
	}
	g.logger.Info("Discovered exports", "count", len(dirs), "root", g.exportsDir)

	res := &Result{
		IncludePaths: []string{g.exportsDir},
	}

	var out strings.Builder
	out.WriteString(header())

	for _, dir := range dirs {
		name := filepath.Base(dir)
		g.logger.Debug("Rendering export", "export", name)

		u, err := RenderExport(dir, g.template, g.sourceExts)
		if err != nil {
			return nil, err
		}

		for _, src := range u.Sources {
			fmt.Fprintf(&out, "#include \"%s/%s\"\n", name, filepath.Base(src))
		}
		out.WriteString(u.Text)
		if !strings.HasSuffix(u.Text, "\n") {
			out.WriteByte('\n')
		}

		if len(u.Unresolved) > 0 {
			g.logger.Warn("Rendered export still contains placeholders", "export", name, "slots", u.Unresolved)
		}
		g.dump.Log(name, u.Text)

		res.Units = append(res.Units, u)
		res.IncludePaths = append(res.IncludePaths, dir)

		g.logger.Info("Rendered export",
			"export", name,
			"symbol", u.Plan.Symbol,
			"params", len(u.Plan.Params),
			"inputs", len(u.Plan.Inputs),
			"outputs", len(u.Plan.Outputs))
	}

	// the RNBO runtime is shared, so the first export's copy serves all of them
	runtimeDir := filepath.Join(dirs[0], runtimeDirName)
	res.IncludePaths = append(res.IncludePaths,
		runtimeDir,
		filepath.Join(runtimeDir, "common"),
		filepath.Join(runtimeDir, "src"),
		filepath.Join(runtimeDir, "src", "3rdparty"),
	)

	res.Text = out.String()
	return res, nil
}

func header() string {
	version, err := common.GetVersion()
	if err != nil {
		version = "unknown"
	}
	return "//automatically generated by rnbowrap " + version + "\n" +
		"#include \"RNBO.cpp\"\n"
}
