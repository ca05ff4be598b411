package crossmodule

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/optiverse/opticore/internal/types"
)

// Detector performs keyword-gate detection of sibling-module intent. Each
// vocabulary flips a single boolean; one action per matched module, in a
// fixed module order so output is deterministic.
type Detector struct {
	registry *PendingActionRegistry
}

func NewDetector(registry *PendingActionRegistry) *Detector {
	return &Detector{registry: registry}
}

// Analyze scans text plus optional thread content for job, travel and
// shopping signals. Matched modules produce pending actions with whatever
// structured payload the extraction regexes found. No keywords means an
// empty slice, never nil error.
func (d *Detector) Analyze(text, threadContent string) []types.CrossModuleAction {
	combined := text
	if threadContent != "" {
		combined += "\n" + threadContent
	}
	lower := strings.ToLower(combined)
	extraction := Extract(combined)

	var actions []types.CrossModuleAction
	if containsAny(lower, jobKeywords) {
		actions = append(actions, d.newAction(types.ModuleHire, "review_opportunity", extraction))
	}
	if containsAny(lower, travelKeywords) {
		actions = append(actions, d.newAction(types.ModuleTrip, "track_trip", extraction))
	}
	if containsAny(lower, shoppingKeywords) {
		actions = append(actions, d.newAction(types.ModuleShop, "track_order", extraction))
	}

	for _, a := range actions {
		d.registry.Put(a)
	}
	return actions
}

func (d *Detector) newAction(target types.Module, actionType string, ex Extraction) types.CrossModuleAction {
	return types.CrossModuleAction{
		ID:           uuid.NewString(),
		SourceModule: types.ModuleMail,
		TargetModule: target,
		ActionType:   actionType,
		Payload:      ex.Payload(),
		Status:       types.StatusPending,
		CreatedAt:    time.Now().UTC(),
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
