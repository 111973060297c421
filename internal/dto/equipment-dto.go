package dto

import (
	"time"

	"elkarec/internal/entities"
	"elkarec/pkg/constants"

	"github.com/aarondl/null/v8"
)

type CreateEquipmentDTO struct {
	Tag          string      `json:"tag"          validate:"required,notblank,max=64"`
	Location     string      `json:"location"     validate:"required,notblank,max=255"`
	Sector       string      `json:"sector"       validate:"required,sector"`
	Type         string      `json:"type"         validate:"required,notblank,max=128"`
	Manufacturer string      `json:"manufacturer" validate:"required,notblank,max=128"`
	Model        string      `json:"model"        validate:"required,notblank,max=128"`
	Status       string      `json:"status"       validate:"omitempty,maintenance_status"`
	SerialNumber null.String `json:"serialNumber" validate:"omitempty,max=128"`
	PurchaseDate null.String `json:"purchaseDate"`
	Notes        null.String `json:"notes"        validate:"omitempty,max=2000"`
}

// UpdateEquipmentDTO - частичное обновление. Пустая строка в serialNumber,
// purchaseDate или notes очищает поле.
type UpdateEquipmentDTO struct {
	Tag          *string `json:"tag,omitempty"          validate:"omitnil,notblank,max=64"`
	Location     *string `json:"location,omitempty"     validate:"omitnil,notblank,max=255"`
	Sector       *string `json:"sector,omitempty"       validate:"omitnil,sector"`
	Type         *string `json:"type,omitempty"         validate:"omitnil,notblank,max=128"`
	Manufacturer *string `json:"manufacturer,omitempty" validate:"omitnil,notblank,max=128"`
	Model        *string `json:"model,omitempty"        validate:"omitnil,notblank,max=128"`
	SerialNumber *string `json:"serialNumber,omitempty" validate:"omitnil,max=128"`
	PurchaseDate *string `json:"purchaseDate,omitempty"`
	Notes        *string `json:"notes,omitempty"        validate:"omitnil,max=2000"`

	// Status принимается только равным текущему, смена идёт через PATCH /status.
	Status *string `json:"status,omitempty" validate:"omitnil,maintenance_status"`
}

type UpdateEquipmentStatusDTO struct {
	Status      string `json:"status"`
	Description string `json:"description"`
}

// EquipmentFilterDTO - сырые параметры запроса списка.
type EquipmentFilterDTO struct {
	Sector string `query:"sector"`
	Status string `query:"status"`
	Search string `query:"search"`
}

type EquipmentDTO struct {
	ID           string                      `json:"id"`
	Tag          string                      `json:"tag"`
	Location     string                      `json:"location"`
	Sector       constants.Sector            `json:"sector"`
	Type         string                      `json:"type"`
	Manufacturer string                      `json:"manufacturer"`
	Model        string                      `json:"model"`
	Status       constants.MaintenanceStatus `json:"status"`
	SerialNumber null.String                 `json:"serialNumber"`
	PurchaseDate null.String                 `json:"purchaseDate"`
	Notes        null.String                 `json:"notes"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

type EquipmentWithHistoryDTO struct {
	EquipmentDTO
	History []EquipmentHistoryDTO `json:"history"`
}

func NewEquipmentDTO(e *entities.Equipment) *EquipmentDTO {
	if e == nil {
		return nil
	}
	out := &EquipmentDTO{
		ID:           e.ID,
		Tag:          e.Tag,
		Location:     e.Location,
		Sector:       e.Sector,
		Type:         e.Type,
		Manufacturer: e.Manufacturer,
		Model:        e.Model,
		Status:       e.Status,
		SerialNumber: e.SerialNumber,
		Notes:        e.Notes,
		CreatedAt:    e.CreatedAt,
		UpdatedAt:    e.UpdatedAt,
	}
	if e.PurchaseDate.Valid {
		out.PurchaseDate = null.StringFrom(e.PurchaseDate.Time.Format(constants.DateLayout))
	}
	return out
}

func NewEquipmentListDTO(list []entities.Equipment) []EquipmentDTO {
	out := make([]EquipmentDTO, 0, len(list))
	for i := range list {
		out = append(out, *NewEquipmentDTO(&list[i]))
	}
	return out
}
