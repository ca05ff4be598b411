package types

import "time"

// Module names one product surface of the suite.
type Module string

const (
	ModuleMail Module = "optimail"
	ModuleHire Module = "optihire"
	ModuleTrip Module = "optitrip"
	ModuleShop Module = "optishop"
)

func ParseModule(s string) (Module, bool) {
	switch Module(s) {
	case ModuleMail, ModuleHire, ModuleTrip, ModuleShop:
		return Module(s), true
	default:
		return "", false
	}
}

type ActionStatus string

const (
	StatusPending    ActionStatus = "pending"
	StatusProcessing ActionStatus = "processing"
	StatusCompleted  ActionStatus = "completed"
	StatusFailed     ActionStatus = "failed"
)

// CrossModuleAction records that an input was detected as belonging to a
// sibling module. Lifecycle: pending on detection, processing while the
// target module's handler runs, then completed or failed. Actions live in
// an in-memory registry only; they are scoped to one session and carry no
// durability guarantee.
type CrossModuleAction struct {
	ID           string            `json:"id"`
	SourceModule Module            `json:"sourceModule"`
	TargetModule Module            `json:"targetModule"`
	ActionType   string            `json:"actionType"`
	Payload      map[string]string `json:"payload"`
	Status       ActionStatus      `json:"status"`
	CreatedAt    time.Time         `json:"createdAt"`
}

// CrossModuleResult is the outcome of executing a cross-module action.
type CrossModuleResult struct {
	ActionID string       `json:"actionId"`
	Status   ActionStatus `json:"status"`
	Detail   string       `json:"detail,omitempty"`
}
