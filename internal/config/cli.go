// Package config declares the command line surface parsed by kong.
package config

import (
	"github.com/Alia5/rnbowrap/internal/cmd"
	"github.com/Alia5/rnbowrap/internal/log"

	"github.com/alecthomas/kong"
)

type CLI struct {
	Config  string           `help:"Configuration file (JSON, YAML or TOML)" type:"path" env:"RNBOWRAP_CONFIG"`
	Log     log.Config       `embed:"" prefix:"log."`
	Version kong.VersionFlag `help:"Print version and exit"`

	Generate cmd.Generate      `cmd:"" default:"withargs" help:"Generate the MetaSound wrapper translation unit for all exports"`
	Inspect  cmd.Inspect       `cmd:"" help:"Print what would be generated for each export"`
	Cfg      cmd.ConfigCommand `cmd:"" name:"config" help:"Configuration helpers"`
}
