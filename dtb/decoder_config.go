package dtb

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/fdt/internal/options"
)

// DefaultMaxDepth is the deepest node nesting a Decoder accepts by default.
// Real device trees rarely go past ten levels.
const DefaultMaxDepth = 1024

// DecoderConfig holds the settings of a Decoder.
type DecoderConfig struct {
	maxDepth int
	logger   *slog.Logger
}

func newDecoderConfig() *DecoderConfig {
	return &DecoderConfig{
		maxDepth: DefaultMaxDepth,
		logger:   discardLogger,
	}
}

// DecoderOption is a functional option for configuring Decoder.
type DecoderOption = options.Option[*DecoderConfig]

// WithMaxDepth limits how deeply nodes may nest. The root is depth 1.
// Decoding a deeper tree fails with errs.ErrMaxDepthExceeded.
func WithMaxDepth(depth int) DecoderOption {
	return options.New(func(cfg *DecoderConfig) error {
		if depth < 1 {
			return fmt.Errorf("invalid max depth: %d", depth)
		}
		cfg.maxDepth = depth

		return nil
	})
}

// WithDecoderLogger sets the logger receiving debug records. A nil logger
// restores the default, which discards everything.
func WithDecoderLogger(logger *slog.Logger) DecoderOption {
	return options.NoError(func(cfg *DecoderConfig) {
		if logger == nil {
			logger = discardLogger
		}
		cfg.logger = logger
	})
}
