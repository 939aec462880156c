// Package config loads the settings shared by the emerge commands.
//
// A config file has three sections:
//
//	[physics]    force constants and integration mode (see physics.Config)
//	[placement]  initial position policy (see placement.Options)
//	[view]       terminal view settings
//
// Files may be TOML (.toml) or YAML (.yaml, .yml). Any value the file leaves
// out keeps its default, so an empty file is a valid config. Unknown keys are
// rejected to catch typos.
package config

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/emerge/pkg/errors"
	"github.com/matzehuels/emerge/pkg/graph"
	"github.com/matzehuels/emerge/pkg/physics"
	"github.com/matzehuels/emerge/pkg/placement"
)

// View configures the live terminal view.
type View struct {
	// FPS is the number of ticks (and redraws) per second.
	FPS int `toml:"fps" yaml:"fps"`
	// Labels draws node labels next to node glyphs.
	Labels bool `toml:"labels" yaml:"labels"`
	// Arrows draws arrow heads on directed edges.
	Arrows bool `toml:"arrows" yaml:"arrows"`
	// NodeRadius is the display radius assigned to new nodes.
	NodeRadius float64 `toml:"node_radius" yaml:"node_radius"`
}

// Config is the full set of user settings.
type Config struct {
	Physics   physics.Config    `toml:"physics" yaml:"physics"`
	Placement placement.Options `toml:"placement" yaml:"placement"`
	View      View              `toml:"view" yaml:"view"`
}

// View limits.
const (
	DefaultFPS = 30
	MaxFPS     = 240
)

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Physics:   physics.DefaultConfig(),
		Placement: placement.DefaultOptions(),
		View: View{
			FPS:        DefaultFPS,
			Labels:     true,
			Arrows:     true,
			NodeRadius: graph.DefaultRadius,
		},
	}
}

// Validate reports the first invalid value as an INVALID_CONFIG error.
func (c Config) Validate() error {
	if err := c.Physics.Validate(); err != nil {
		return err
	}
	if err := c.Placement.Validate(); err != nil {
		return err
	}
	if c.View.FPS < 1 || c.View.FPS > MaxFPS {
		return errors.New(errors.ErrCodeInvalidConfig, "fps must be within [1, %d], got %d", MaxFPS, c.View.FPS)
	}
	if !(c.View.NodeRadius > 0) {
		return errors.New(errors.ErrCodeInvalidConfig, "node_radius must be positive, got %v", c.View.NodeRadius)
	}
	return nil
}

// Load reads the config file at path over the defaults and validates the
// result. The format follows the file extension.
func Load(path string) (Config, error) {
	ext, err := errors.ValidateConfigPath(path)
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Config{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "config %s", path)
		}
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch ext {
	case ".toml":
		err = decodeTOML(data, &cfg)
	default:
		err = decodeYAML(data, &cfg)
	}
	if err != nil {
		return Config{}, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse %s", path)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

func decodeTOML(data []byte, cfg *Config) error {
	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func decodeYAML(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && err != io.EOF {
		return err
	}
	return nil
}

// WriteTOML writes c as a TOML document.
func (c Config) WriteTOML(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// WriteYAML writes c as a YAML document.
func (c Config) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return err
	}
	return enc.Close()
}
