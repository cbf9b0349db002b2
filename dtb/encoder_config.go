package dtb

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/fdt/format"
	"github.com/arloliu/fdt/internal/options"
	"github.com/arloliu/fdt/section"
)

// EncoderConfig holds the settings of an Encoder.
type EncoderConfig struct {
	stringMode      format.StringTableMode
	lastCompVersion uint32
	logger          *slog.Logger
}

func newEncoderConfig() *EncoderConfig {
	return &EncoderConfig{
		stringMode:      format.StringsDedup,
		lastCompVersion: section.LastCompVersion,
		logger:          discardLogger,
	}
}

// setStringTableMode sets how property names are laid out in the strings block.
func (c *EncoderConfig) setStringTableMode(mode format.StringTableMode) error {
	switch mode {
	case format.StringsDedup, format.StringsPlain:
		c.stringMode = mode
		return nil
	default:
		return fmt.Errorf("invalid string table mode: %v", mode)
	}
}

// StringTableMode returns the configured string table mode.
func (c *EncoderConfig) StringTableMode() format.StringTableMode {
	return c.stringMode
}

// EncoderOption is a functional option for configuring Encoder.
type EncoderOption = options.Option[*EncoderConfig]

// WithStringDedup selects between a deduplicated strings block (true, the
// default) and one that repeats the name for every property (false).
func WithStringDedup(enabled bool) EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		if enabled {
			cfg.stringMode = format.StringsDedup
		} else {
			cfg.stringMode = format.StringsPlain
		}
	})
}

// WithStringTableMode selects the strings block layout.
// Valid values are format.StringsDedup and format.StringsPlain.
func WithStringTableMode(mode format.StringTableMode) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		return cfg.setStringTableMode(mode)
	})
}

// WithLastCompVersion sets the last_comp_version header field. It must lie
// between 1 and 17; the default is 16.
func WithLastCompVersion(v uint32) EncoderOption {
	return options.New(func(cfg *EncoderConfig) error {
		if v < 1 || v > section.Version {
			return fmt.Errorf("invalid last compatible version: %d", v)
		}
		cfg.lastCompVersion = v

		return nil
	})
}

// WithEncoderLogger sets the logger receiving debug records. A nil logger
// restores the default, which discards everything.
func WithEncoderLogger(logger *slog.Logger) EncoderOption {
	return options.NoError(func(cfg *EncoderConfig) {
		if logger == nil {
			logger = discardLogger
		}
		cfg.logger = logger
	})
}
