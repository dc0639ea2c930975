package services

import (
	"context"

	"github.com/vedvijaywargiya23/InvoiceVista/internal/shared/utils"
)

// ActivityRecorder receives a trail of successful mutations
type ActivityRecorder interface {
	Record(ctx context.Context, action, entity, entityID, description string, data interface{}) error
}

// recordActivity writes to rec when one is configured. Failures are logged and
// never fail the mutation that already succeeded.
func recordActivity(ctx context.Context, rec ActivityRecorder, action, entity, entityID, description string, data interface{}) {
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, action, entity, entityID, description, data); err != nil {
		utils.LogWarn("Failed to record activity", map[string]interface{}{
			"action":    action,
			"entity":    entity,
			"entity_id": entityID,
			"error":     err.Error(),
		})
	}
}
