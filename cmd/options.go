package cmd

import (
	"os"

	"github.com/mordilloSan/bls/config"
	"github.com/mordilloSan/bls/listing"
	"github.com/mordilloSan/bls/render"
)

// ConfigDirEnv names the environment fallback for --config-dir.
const ConfigDirEnv = "BLS_CONFIG_DIR"

// Options holds the parsed command line.
type Options struct {
	All             bool
	AlmostAll       bool
	Long            bool
	LongNoOwner     bool // -g
	LongNoGroup     bool // -o
	NoGroup         bool // -G
	DirectoriesOnly bool
	FilesOnly       bool
	HumanReadable   bool
	Dark            bool
	Color           string
	ConfigDir       string
	Watch           bool
	Verbose         bool
	Version         bool
}

// Detailed reports whether any long-listing flag was given.
func (o Options) Detailed() bool {
	return o.Long || o.LongNoOwner || o.LongNoGroup
}

func (o Options) RenderConfig() render.Config {
	if !o.Detailed() {
		return render.InlineConfig()
	}
	cols := render.AllColumns()
	cols.Owner = !o.LongNoOwner
	cols.Group = !(o.LongNoGroup || o.NoGroup)
	cols.HumanSize = o.HumanReadable
	return render.DetailedConfig(cols)
}

func (o Options) ListOptions() listing.Options {
	return listing.Options{
		All:             o.All,
		AlmostAll:       o.AlmostAll,
		DirectoriesOnly: o.DirectoriesOnly,
		FilesOnly:       o.FilesOnly,
	}
}

func (o Options) Theme() string {
	return config.ThemeName(o.Dark)
}

// ConfigDirectory returns --config-dir, falling back to $BLS_CONFIG_DIR.
func (o Options) ConfigDirectory() string {
	if o.ConfigDir != "" {
		return o.ConfigDir
	}
	return os.Getenv(ConfigDirEnv)
}
