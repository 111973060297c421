package entities

import (
	"time"

	"elkarec/pkg/constants"

	"github.com/aarondl/null/v8"
)

// EquipmentHistory - неизменяемая запись о смене статуса.
type EquipmentHistory struct {
	ID          string                      `db:"id"`
	EquipmentID string                      `db:"equipment_id"`
	UserID      string                      `db:"user_id"`
	OldStatus   constants.MaintenanceStatus `db:"old_status"`
	NewStatus   constants.MaintenanceStatus `db:"new_status"`
	Description string                      `db:"description"`
	ChangedAt   time.Time                   `db:"changed_at"`
}

// EquipmentHistoryItem - запись истории вместе с автором изменения.
type EquipmentHistoryItem struct {
	EquipmentHistory
	UserEmail     string      `db:"user_email"`
	UserFirstName null.String `db:"user_first_name"`
	UserLastName  null.String `db:"user_last_name"`
}
