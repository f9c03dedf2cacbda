// Package config loads the defaults of the nbt command from a TOML file.
//
//	output = "snbt"        # default output format
//	compression = "auto"   # none, gzip, zlib or auto
//	color = true           # colored SNBT; unset means "when a terminal"
//	indent = 2             # SNBT indentation, 0 for one line
//	max-depth = 512        # decoder nesting bound
//	store = "nbt.db"       # document store file
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/signadot/nbt-format/go-nbt/compression"
	"github.com/signadot/nbt-format/go-nbt/decode"
	"github.com/signadot/nbt-format/go-nbt/format"
)

// EnvVar names the environment variable overriding the config file path.
const EnvVar = "NBT_CONFIG"

type Config struct {
	Output      format.Format    `toml:"output"`
	Compression compression.Kind `toml:"compression"`
	Color       *bool            `toml:"color"`
	Indent      int              `toml:"indent"`
	MaxDepth    int              `toml:"max-depth"`
	Store       string           `toml:"store"`

	// Path is the file the config was loaded from, "" for defaults.
	Path string `toml:"-"`
}

func Default() *Config {
	return &Config{
		Output:      format.SNBTFormat,
		Compression: compression.Auto,
		Indent:      2,
		MaxDepth:    decode.DefaultMaxDepth,
		Store:       "nbt.db",
	}
}

// Path returns the config file location: $NBT_CONFIG, else nbt/config.toml
// under $XDG_CONFIG_HOME or ~/.config.
func Path() (string, error) {
	if p := os.Getenv(EnvVar); p != "" {
		return p, nil
	}
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot locate config: %w", err)
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "nbt", "config.toml"), nil
}

// Load reads the config file at Path. A missing file yields the defaults.
func Load() (*Config, error) {
	p, err := Path()
	if err != nil {
		return nil, err
	}
	return LoadFile(p)
}

// LoadFile reads the config file at path over the defaults. Unknown keys
// are errors.
func LoadFile(path string) (*Config, error) {
	c := Default()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return c, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	if un := md.Undecoded(); len(un) != 0 {
		keys := make([]string, len(un))
		for i, k := range un {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys %s", path, strings.Join(keys, ", "))
	}
	if c.Indent < 0 {
		return nil, fmt.Errorf("%s: indent must not be negative", path)
	}
	if c.MaxDepth <= 0 {
		return nil, fmt.Errorf("%s: max-depth must be positive", path)
	}
	c.Path = path
	return c, nil
}

// UseColor reports whether output should be colored, deciding by isTerm
// when the file leaves it unset.
func (c *Config) UseColor(isTerm bool) bool {
	if c.Color == nil {
		return isTerm
	}
	return *c.Color
}
