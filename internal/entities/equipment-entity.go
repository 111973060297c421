package entities

import (
	"time"

	"elkarec/pkg/constants"

	"github.com/aarondl/null/v8"
)

type Equipment struct {
	ID           string                      `db:"id"`
	Tag          string                      `db:"tag"`
	Location     string                      `db:"location"`
	Sector       constants.Sector            `db:"sector"`
	Type         string                      `db:"type"`
	Manufacturer string                      `db:"manufacturer"`
	Model        string                      `db:"model"`
	Status       constants.MaintenanceStatus `db:"status"`
	SerialNumber null.String                 `db:"serial_number"`
	PurchaseDate null.Time                   `db:"purchase_date"`
	Notes        null.String                 `db:"notes"`
	CreatedAt    time.Time                   `db:"created_at"`
	UpdatedAt    time.Time                   `db:"updated_at"`
}

// EquipmentPatch - частичное обновление: nil означает "не менять".
type EquipmentPatch struct {
	Tag          *string
	Location     *string
	Sector       *constants.Sector
	Type         *string
	Manufacturer *string
	Model        *string
	SerialNumber *null.String
	PurchaseDate *null.Time
	Notes        *null.String
}

func (p EquipmentPatch) IsEmpty() bool {
	return p.Tag == nil && p.Location == nil && p.Sector == nil && p.Type == nil &&
		p.Manufacturer == nil && p.Model == nil && p.SerialNumber == nil &&
		p.PurchaseDate == nil && p.Notes == nil
}

// EquipmentFilter - параметры списка после нормализации.
// Пустые Sector/Status означают "без фильтра".
type EquipmentFilter struct {
	Sector constants.Sector
	Status constants.MaintenanceStatus
	Search string
}
