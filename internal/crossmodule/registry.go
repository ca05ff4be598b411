package crossmodule

import (
	"sync"

	"github.com/optiverse/opticore/internal/types"
)

// PendingActionRegistry holds detected actions for the lifetime of the
// process. It is injected into handlers rather than living as a package
// singleton so tests get isolated instances.
type PendingActionRegistry struct {
	mu      sync.RWMutex
	actions map[string]types.CrossModuleAction
}

func NewPendingActionRegistry() *PendingActionRegistry {
	return &PendingActionRegistry{actions: make(map[string]types.CrossModuleAction)}
}

func (r *PendingActionRegistry) Put(action types.CrossModuleAction) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions[action.ID] = action
}

func (r *PendingActionRegistry) Get(id string) (types.CrossModuleAction, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.actions[id]
	return a, ok
}

func (r *PendingActionRegistry) SetStatus(id string, status types.ActionStatus) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.actions[id]; ok {
		a.Status = status
		r.actions[id] = a
	}
}

func (r *PendingActionRegistry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.actions, id)
}

func (r *PendingActionRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.actions)
}
