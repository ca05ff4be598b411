package tiering

import (
	"context"
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/open-policy-agent/opa/rego"

	"github.com/optiverse/opticore/internal/config"
	"github.com/optiverse/opticore/internal/types"
)

//go:embed policy.rego
var defaultPolicy string

const tierQuery = "[data.opticore.tiers.allow, data.opticore.tiers.reason]"

// Input is the document sent to the policy engine for one gating decision.
type Input struct {
	User    InputUser    `json:"user"`
	Request InputRequest `json:"request"`
}

type InputUser struct {
	Tier string `json:"tier"`
}

type InputRequest struct {
	Action string `json:"action"`
	Module string `json:"module"`
}

// Evaluator gates actions by subscription tier through Rego policies. It
// fails closed: no loaded policy, an evaluation error or a timeout all
// deny the request.
type Evaluator struct {
	mu       sync.RWMutex
	prepared *rego.PreparedEvalQuery
	cfg      func() config.TieringConfig
}

func NewEvaluator(cfg func() config.TieringConfig) *Evaluator {
	return &Evaluator{cfg: cfg}
}

// Load compiles tier policies. With no policy directory configured, the
// embedded default capability table is used.
func (e *Evaluator) Load() error {
	cfg := e.cfg()
	if cfg.PolicyDir == "" {
		return e.LoadFromModules(map[string]string{"policy.rego": defaultPolicy})
	}

	modules, err := loadRegoFiles(cfg.PolicyDir)
	if err != nil {
		return fmt.Errorf("load rego files: %w", err)
	}
	if len(modules) == 0 {
		slog.Warn("no rego files found, using embedded tier policy", "path", cfg.PolicyDir)
		return e.LoadFromModules(map[string]string{"policy.rego": defaultPolicy})
	}
	return e.LoadFromModules(modules)
}

// LoadFromModules compiles policies from in-memory sources.
func (e *Evaluator) LoadFromModules(modules map[string]string) error {
	r := rego.New(
		rego.Query(tierQuery),
		func() func(*rego.Rego) {
			mods := make([]func(*rego.Rego), 0, len(modules))
			for name, src := range modules {
				mods = append(mods, rego.Module(name, src))
			}
			return func(r *rego.Rego) {
				for _, m := range mods {
					m(r)
				}
			}
		}(),
	)

	prepared, err := r.PrepareForEval(context.Background())
	if err != nil {
		return fmt.Errorf("prepare rego: %w", err)
	}

	e.mu.Lock()
	e.prepared = &prepared
	e.mu.Unlock()
	slog.Info("tier policies loaded", "modules", len(modules))
	return nil
}

// Allow decides whether tier may perform action on module. The returned
// reason is empty when allowed.
func (e *Evaluator) Allow(ctx context.Context, tier types.Tier, module types.Module, action string) (bool, string, error) {
	e.mu.RLock()
	prepared := e.prepared
	e.mu.RUnlock()

	if prepared == nil {
		return false, "no tier policies loaded", nil
	}

	timeout := e.cfg().EvaluationTimeout
	if timeout == 0 {
		timeout = 100 * time.Millisecond
	}
	evalCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	input := Input{
		User:    InputUser{Tier: string(tier)},
		Request: InputRequest{Action: action, Module: string(module)},
	}

	results, err := prepared.Eval(evalCtx, rego.EvalInput(input))
	if err != nil {
		return false, fmt.Sprintf("tier evaluation error: %v", err), err
	}
	if len(results) == 0 || len(results[0].Expressions) == 0 {
		return false, "no policy result", nil
	}

	arr, ok := results[0].Expressions[0].Value.([]interface{})
	if !ok || len(arr) < 2 {
		return false, "unexpected policy result format", nil
	}

	allowed, _ := arr[0].(bool)
	reason, _ := arr[1].(string)
	return allowed, reason, nil
}

func loadRegoFiles(dir string) (map[string]string, error) {
	modules := make(map[string]string)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".rego" {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, entry.Name()))
		if err != nil {
			return nil, err
		}
		modules[entry.Name()] = string(data)
	}
	return modules, nil
}
