package dto

import (
	"time"

	"elkarec/internal/entities"
	"elkarec/pkg/constants"

	"github.com/aarondl/null/v8"
)

type HistoryUserDTO struct {
	Email     string      `json:"email"`
	FirstName null.String `json:"firstName"`
	LastName  null.String `json:"lastName"`
}

type EquipmentHistoryDTO struct {
	ID          string                      `json:"id"`
	EquipmentID string                      `json:"equipmentId"`
	UserID      string                      `json:"userId"`
	User        HistoryUserDTO              `json:"user"`
	OldStatus   constants.MaintenanceStatus `json:"oldStatus"`
	NewStatus   constants.MaintenanceStatus `json:"newStatus"`
	Description string                      `json:"description"`
	ChangedAt   time.Time                   `json:"changedAt"`
}

func NewEquipmentHistoryListDTO(items []entities.EquipmentHistoryItem) []EquipmentHistoryDTO {
	out := make([]EquipmentHistoryDTO, 0, len(items))
	for _, h := range items {
		out = append(out, EquipmentHistoryDTO{
			ID:          h.ID,
			EquipmentID: h.EquipmentID,
			UserID:      h.UserID,
			User: HistoryUserDTO{
				Email:     h.UserEmail,
				FirstName: h.UserFirstName,
				LastName:  h.UserLastName,
			},
			OldStatus:   h.OldStatus,
			NewStatus:   h.NewStatus,
			Description: h.Description,
			ChangedAt:   h.ChangedAt,
		})
	}
	return out
}
