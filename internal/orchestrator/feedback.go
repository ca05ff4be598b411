package orchestrator

import (
	"fmt"

	"github.com/optiverse/opticore/internal/emotion"
	"github.com/optiverse/opticore/internal/types"
)

// ProvideFeedback records a user rating of a generated draft. It only
// appends to the bounded log; past responses are never re-scored.
func (o *Orchestrator) ProvideFeedback(req types.DraftRequest, resp types.DraftResponse, rating int, notes string) error {
	if rating < 1 || rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrValidation)
	}
	o.feedback.Append(emotion.FeedbackEntry{
		Rating: rating,
		Notes:  notes,
		Tone:   fmt.Sprintf("%s/%s via %s", req.Module, req.Action, resp.Provider),
	})
	o.logger.Info("draft feedback recorded",
		"module", req.Module,
		"action", req.Action,
		"rating", rating,
	)
	return nil
}
