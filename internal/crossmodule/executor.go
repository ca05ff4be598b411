package crossmodule

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/optiverse/opticore/internal/types"
)

// ErrUnknownAction marks a (targetModule, actionType) pair no handler
// recognizes.
var ErrUnknownAction = errors.New("unknown cross-module action")

// Executor dispatches detected actions to their target module handlers.
// Handlers here are thin: the heavy lifting lives in the target modules,
// reached through the same LLM adapter layer as everything else.
type Executor struct {
	registry *PendingActionRegistry
	logger   *slog.Logger
}

func NewExecutor(registry *PendingActionRegistry, logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{registry: registry, logger: logger}
}

// Execute routes by (targetModule, actionType). Unknown combinations fail
// the action rather than erroring the call.
func (e *Executor) Execute(action types.CrossModuleAction) types.CrossModuleResult {
	e.registry.SetStatus(action.ID, types.StatusProcessing)

	detail, err := e.dispatch(action)
	if err != nil {
		e.registry.SetStatus(action.ID, types.StatusFailed)
		e.logger.Warn("cross-module action failed",
			"action_id", action.ID,
			"target", action.TargetModule,
			"type", action.ActionType,
			"error", err,
		)
		return types.CrossModuleResult{
			ActionID: action.ID,
			Status:   types.StatusFailed,
			Detail:   err.Error(),
		}
	}

	e.registry.SetStatus(action.ID, types.StatusCompleted)
	return types.CrossModuleResult{
		ActionID: action.ID,
		Status:   types.StatusCompleted,
		Detail:   detail,
	}
}

func (e *Executor) dispatch(action types.CrossModuleAction) (string, error) {
	switch {
	case action.TargetModule == types.ModuleHire && action.ActionType == "review_opportunity":
		return describe("Job opportunity queued for review", action.Payload["jobTitle"]), nil
	case action.TargetModule == types.ModuleTrip && action.ActionType == "track_trip":
		return describe("Trip added to the travel tracker", action.Payload["destination"]), nil
	case action.TargetModule == types.ModuleShop && action.ActionType == "track_order":
		return describe("Order added to purchase tracking", action.Payload["orderNumber"]), nil
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrUnknownAction, action.TargetModule, action.ActionType)
	}
}

func describe(base, detail string) string {
	if detail == "" {
		return base
	}
	return base + ": " + detail
}
