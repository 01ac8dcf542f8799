package ledgamma

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/ledgamma/internal/curve"
)

// Config is the complete set of tuning parameters. It can be saved to and
// loaded from a TOML or YAML profile.
//
// Config is a plain value; the live, mutable copy belongs to a Tuner and is
// changed only through its setters.
type Config struct {
	GammaR     float64    `toml:"gamma_r" yaml:"gamma_r"`
	GammaG     float64    `toml:"gamma_g" yaml:"gamma_g"`
	GammaB     float64    `toml:"gamma_b" yaml:"gamma_b"`
	GammaDim   float64    `toml:"gamma_dim" yaml:"gamma_dim"`
	Correction Correction `toml:"correction" yaml:"correction"`
	Brightness uint8      `toml:"brightness" yaml:"brightness"`
	Mode       Mode       `toml:"mode" yaml:"mode"`
}

// DefaultConfig returns parameters that suit common WS2812/APA102 strips.
func DefaultConfig() Config {
	return Config{
		GammaR:     1.30,
		GammaG:     1.75,
		GammaB:     2.00,
		GammaDim:   1.50,
		Correction: UncorrectedColor,
		Brightness: 255,
		Mode:       ModeLookup,
	}
}

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("ledgamma: invalid config")

// LogValue implements slog.LogValuer, logging the parameters as a group.
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Float64("gamma_r", c.GammaR),
		slog.Float64("gamma_g", c.GammaG),
		slog.Float64("gamma_b", c.GammaB),
		slog.Float64("gamma_dim", c.GammaDim),
		slog.String("correction", c.Correction.String()),
		slog.Int("brightness", int(c.Brightness)),
		slog.String("mode", c.Mode.String()),
	)
}

// Gammas returns the per-channel gammas in table order.
func (c Config) Gammas() [NumChannels]float64 {
	return [NumChannels]float64{c.GammaR, c.GammaG, c.GammaB}
}

// Gamma returns one channel's gamma.
func (c Config) Gamma(ch Channel) float64 {
	return c.Gammas()[ch%NumChannels]
}

// setGamma sets one channel's gamma.
func (c *Config) setGamma(ch Channel, g float64) {
	switch ch {
	case ChannelG:
		c.GammaG = g
	case ChannelB:
		c.GammaB = g
	default:
		c.GammaR = g
	}
}

// Validate reports the first invalid parameter.
func (c Config) Validate() error {
	for _, ch := range Channels {
		if err := curve.ValidateGamma(c.Gamma(ch)); err != nil {
			return fmt.Errorf("%w: gamma %s: %w", ErrInvalidConfig, ch, err)
		}
	}
	if err := curve.ValidateGamma(c.GammaDim); err != nil {
		return fmt.Errorf("%w: dimming gamma: %w", ErrInvalidConfig, err)
	}
	if c.Correction > 0xFFFFFF {
		return fmt.Errorf("%w: %w: %s", ErrInvalidConfig, ErrInvalidCorrection, c.Correction)
	}
	if !c.Mode.Valid() {
		return fmt.Errorf("%w: mode %d", ErrInvalidConfig, uint8(c.Mode))
	}
	return nil
}

// Format is a profile encoding.
type Format string

// Supported profile formats.
const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks a format from a file extension. Unknown extensions
// default to TOML.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// DecodeConfig reads a profile. Keys missing from the profile keep their
// DefaultConfig values. The result is validated.
func DecodeConfig(r io.Reader, format Format) (Config, error) {
	cfg := DefaultConfig()
	var err error
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&cfg)
		if errors.Is(err, io.EOF) {
			err = nil
		}
	case FormatTOML:
		err = toml.NewDecoder(r).DisallowUnknownFields().Decode(&cfg)
	default:
		return cfg, fmt.Errorf("ledgamma: unknown profile format %q", format)
	}
	if err != nil {
		return cfg, fmt.Errorf("ledgamma: decode %s profile: %w", format, err)
	}
	return cfg, cfg.Validate()
}

// EncodeConfig writes c as a profile.
func EncodeConfig(w io.Writer, c Config, format Format) error {
	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return fmt.Errorf("ledgamma: encode yaml profile: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(c); err != nil {
			return fmt.Errorf("ledgamma: encode toml profile: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("ledgamma: unknown profile format %q", format)
	}
}

// LoadConfig reads a profile file, choosing the format by extension.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), err
	}
	cfg, err := DecodeConfig(bytes.NewReader(data), FormatFromPath(path))
	if err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Save writes c to path, choosing the format by extension.
func (c Config) Save(path string) error {
	var buf bytes.Buffer
	if err := EncodeConfig(&buf, c, FormatFromPath(path)); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0o644)
}
