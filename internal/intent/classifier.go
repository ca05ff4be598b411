package intent

import (
	"context"
	"log/slog"

	"github.com/optiverse/opticore/internal/telemetry"
	"github.com/optiverse/opticore/internal/types"
)

// Strategy is a single way of classifying user text.
type Strategy interface {
	Name() string
	Classify(ctx context.Context, text string) (types.IntentClassification, error)
}

// Classifier tries the remote strategy first and falls back to the
// deterministic rule table on any error. The fallback path never fails,
// so Classify always returns a usable classification.
type Classifier struct {
	primary  Strategy
	fallback Strategy
	metrics  *telemetry.Metrics
	logger   *slog.Logger
}

func NewClassifier(primary, fallback Strategy, metrics *telemetry.Metrics, logger *slog.Logger) *Classifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Classifier{primary: primary, fallback: fallback, metrics: metrics, logger: logger}
}

func (c *Classifier) Classify(ctx context.Context, text string) types.IntentClassification {
	if c.primary != nil {
		cls, err := c.primary.Classify(ctx, text)
		if err == nil {
			c.record(cls)
			return cls
		}
		c.logger.Debug("remote classification failed, using rules",
			"strategy", c.primary.Name(),
			"error", err,
		)
	}

	cls, _ := c.fallback.Classify(ctx, text)
	c.record(cls)
	return cls
}

func (c *Classifier) record(cls types.IntentClassification) {
	if c.metrics != nil {
		c.metrics.RecordClassification(string(cls.Intent), string(cls.Source))
	}
}
