package suggest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/crossmodule"
	"github.com/optiverse/opticore/internal/telemetry"
	"github.com/optiverse/opticore/internal/types"
)

// Generator fans user context out to every registered source, joins the
// candidates and ranks them. Sources are registered in tie-break priority
// order; a source that fails or panics contributes zero candidates and the
// pipeline still returns a result.
type Generator struct {
	sources []Source
	tuning  func() config.TuningConfig
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

func NewGenerator(detector *crossmodule.Detector, tuning func() config.TuningConfig, metrics *telemetry.Metrics, logger *slog.Logger) *Generator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Generator{
		// Priority order: cross-module beats intent beats emotional beats
		// contextual on equal confidence.
		sources: []Source{
			crossModuleSource{detector: detector},
			intentSource{},
			emotionSource{},
			contextSource{},
		},
		tuning:  tuning,
		metrics: metrics,
		logger:  logger,
	}
}

// Generate runs every source concurrently and joins their output. The
// result always carries a reasoning string and is never an error; total
// failure of every source just produces an empty suggestion list.
func (g *Generator) Generate(ctx context.Context, sc Context) types.SuggestionPipelineResult {
	start := time.Now()

	// Indexed slots keep join order equal to registration order regardless
	// of goroutine scheduling, which keeps ranking deterministic.
	slots := make([]Candidates, len(g.sources))

	var wg sync.WaitGroup
	for i, src := range g.sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					g.logger.Error("suggestion source panicked", "source", src.Name(), "panic", r)
				}
			}()

			out, err := src.Generate(ctx, sc)
			if err != nil {
				g.logger.Warn("suggestion source failed", "source", src.Name(), "error", err)
				return
			}
			slots[i] = out
		}(i, src)
	}
	wg.Wait()

	var candidates []types.ActionSuggestion
	var fragments []string
	perSource := make(map[string]int, len(g.sources))
	var hints []string

	for i, out := range slots {
		candidates = append(candidates, out.Suggestions...)
		perSource[g.sources[i].Name()] = len(out.Suggestions)
		if out.Reasoning != "" {
			fragments = append(fragments, out.Reasoning)
		}
		if g.sources[i].Name() == "contextual" {
			for _, s := range out.Suggestions {
				hints = append(hints, s.Label)
			}
		}
	}

	ranked, primary := rank(candidates, g.tuning().PrimaryActionThreshold)

	result := types.SuggestionPipelineResult{
		Suggestions:      ranked,
		PrimaryAction:    primary,
		ContextualHints:  hints,
		Reasoning:        strings.Join(fragments, "; "),
		ProcessingTimeMs: time.Since(start).Milliseconds(),
	}

	if g.metrics != nil {
		g.metrics.RecordPipeline(float64(time.Since(start).Milliseconds()), perSource)
	}
	return result
}
