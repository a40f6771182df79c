// Package config loads juliahl settings from defaults, an optional YAML
// file and JULIAHL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"juliahl/face"
	"juliahl/highlight"
	"juliahl/internal/render"
	"juliahl/internal/tsjulia"
	"juliahl/juliasyntax"
	"juliahl/syntax"
)

var ErrInvalid = errors.New("invalid configuration")

const (
	ParserJuliaSyntax = "juliasyntax"
	ParserTreeSitter  = "treesitter"
)

// FaceConfig overrides one face. Attribute values are on/off; empty
// leaves the attribute to inheritance.
type FaceConfig struct {
	Foreground string `mapstructure:"foreground" yaml:"foreground,omitempty"`
	Background string `mapstructure:"background" yaml:"background,omitempty"`
	Bold       string `mapstructure:"bold" yaml:"bold,omitempty"`
	Italic     string `mapstructure:"italic" yaml:"italic,omitempty"`
	Underline  string `mapstructure:"underline" yaml:"underline,omitempty"`
	Inverse    string `mapstructure:"inverse" yaml:"inverse,omitempty"`
}

// Config holds all configuration options for juliahl.
type Config struct {
	SyntaxErrors bool   `mapstructure:"syntax_errors" yaml:"syntax_errors"`
	Rainbow      bool   `mapstructure:"rainbow" yaml:"rainbow"`
	Unmatched    bool   `mapstructure:"unmatched" yaml:"unmatched"`
	MaxDepth     int    `mapstructure:"max_depth" yaml:"max_depth"`
	Theme        string `mapstructure:"theme" yaml:"theme,omitempty"`
	Parser       string `mapstructure:"parser" yaml:"parser"`
	Color        string `mapstructure:"color" yaml:"color"`
	Width        int    `mapstructure:"width" yaml:"width"`
	Workers      int    `mapstructure:"workers" yaml:"workers"`

	Faces map[string]FaceConfig `mapstructure:"faces" yaml:"faces,omitempty"`
}

func Defaults() Config {
	hl := highlight.DefaultConfig()
	return Config{
		Rainbow:   hl.Rainbow,
		Unmatched: hl.Unmatched,
		MaxDepth:  hl.MaxDepth,
		Parser:    ParserJuliaSyntax,
		Color:     string(render.ColorAuto),
		Workers:   4,
	}
}

// Load reads path, or the first of .juliahl.yaml and
// ~/.config/juliahl/config.yaml when path is empty. A missing default file
// is not an error; a missing explicit one is.
func Load(path string) (Config, error) {
	v := viper.New()
	defaults := Defaults()
	v.SetDefault("syntax_errors", defaults.SyntaxErrors)
	v.SetDefault("rainbow", defaults.Rainbow)
	v.SetDefault("unmatched", defaults.Unmatched)
	v.SetDefault("max_depth", defaults.MaxDepth)
	v.SetDefault("theme", defaults.Theme)
	v.SetDefault("parser", defaults.Parser)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("width", defaults.Width)
	v.SetDefault("workers", defaults.Workers)

	v.SetEnvPrefix("JULIAHL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else if _, err := os.Stat(".juliahl.yaml"); err == nil {
		v.SetConfigFile(".juliahl.yaml")
	} else {
		home, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(home, ".config", "juliahl"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if c.MaxDepth < 1 {
		return fmt.Errorf("%w: max_depth must be at least 1, got %d", ErrInvalid, c.MaxDepth)
	}
	if c.Width < 0 {
		return fmt.Errorf("%w: width must not be negative, got %d", ErrInvalid, c.Width)
	}
	if c.Workers < 1 {
		return fmt.Errorf("%w: workers must be at least 1, got %d", ErrInvalid, c.Workers)
	}
	switch c.Parser {
	case ParserJuliaSyntax, ParserTreeSitter:
	default:
		return fmt.Errorf("%w: parser must be %s or %s, got %q", ErrInvalid, ParserJuliaSyntax, ParserTreeSitter, c.Parser)
	}
	if _, err := render.ParseColorMode(c.Color); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if _, err := c.faceOverrides(); err != nil {
		return err
	}
	return nil
}

func (c Config) faceOverrides() (map[face.Name]face.Style, error) {
	if len(c.Faces) == 0 {
		return nil, nil
	}
	out := make(map[face.Name]face.Style, len(c.Faces))
	for name, fc := range c.Faces {
		st := face.Style{Foreground: fc.Foreground, Background: fc.Background}
		for _, attr := range []struct {
			key string
			val string
			dst *face.Attr
		}{
			{"bold", fc.Bold, &st.Bold},
			{"italic", fc.Italic, &st.Italic},
			{"underline", fc.Underline, &st.Underline},
			{"inverse", fc.Inverse, &st.Inverse},
		} {
			a, err := face.ParseAttr(attr.val)
			if err != nil {
				return nil, fmt.Errorf("%w: faces.%s.%s: %v", ErrInvalid, name, attr.key, err)
			}
			*attr.dst = a
		}
		for _, col := range []string{fc.Foreground, fc.Background} {
			if col == "" {
				continue
			}
			if _, ok := face.Color(col); !ok {
				return nil, fmt.Errorf("%w: faces.%s: unknown colour %q", ErrInvalid, name, col)
			}
		}
		out[face.Name(name)] = st
	}
	return out, nil
}

// Registry builds the face registry: defaults, then the theme, then the
// per-face overrides.
func (c Config) Registry() (*face.Registry, error) {
	reg, err := face.Themed(c.Theme)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	overrides, err := c.faceOverrides()
	if err != nil {
		return nil, err
	}
	if len(overrides) == 0 {
		return reg, nil
	}
	return reg.WithOverrides(overrides)
}

func (c Config) NewParser() syntax.Parser {
	if c.Parser == ParserTreeSitter {
		return tsjulia.New()
	}
	return juliasyntax.New()
}

// Highlighter builds a highlighter for c. Config.Faces names that the
// registry does not know are rejected.
func (c Config) Highlighter() (*highlight.Highlighter, error) {
	reg, err := c.Registry()
	if err != nil {
		return nil, err
	}
	return highlight.New(highlight.Config{
		Rainbow:   c.Rainbow,
		Unmatched: c.Unmatched,
		MaxDepth:  c.MaxDepth,
		Parser:    c.NewParser(),
		Faces:     reg,
	})
}

// YAML renders c in the config file format.
func (c Config) YAML() ([]byte, error) {
	return yaml.Marshal(c)
}
