package constants

import (
	"encoding/json"
	"fmt"
	"strings"

	apperrors "elkarec/pkg/errors"
)

// FilterAll в query отключает фильтр по сектору или статусу.
const FilterAll = "all"

// Sector - направление, к которому относится оборудование.
type Sector string

const (
	SectorBroadcast    Sector = "BROADCAST"
	SectorEvenementiel Sector = "EVENEMENTIEL"
	SectorInformatique Sector = "INFORMATIQUE"
)

var Sectors = []Sector{SectorBroadcast, SectorEvenementiel, SectorInformatique}

func (s Sector) IsValid() bool {
	for _, v := range Sectors {
		if v == s {
			return true
		}
	}
	return false
}

func (s Sector) String() string { return string(s) }

// ParseSector принимает любой регистр ("broadcast", "Broadcast") и
// возвращает каноническое значение в верхнем регистре.
func ParseSector(raw string) (Sector, error) {
	s := Sector(strings.ToUpper(strings.TrimSpace(raw)))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: неизвестный сектор %q", apperrors.ErrValidation, raw)
	}
	return s, nil
}

// MaintenanceStatus - состояние исправности оборудования.
type MaintenanceStatus string

const (
	StatusReady         MaintenanceStatus = "READY"
	StatusAReviser      MaintenanceStatus = "A_REVISER"
	StatusEnMaintenance MaintenanceStatus = "EN_MAINTENANCE"
	StatusHS            MaintenanceStatus = "HS"
)

var MaintenanceStatuses = []MaintenanceStatus{StatusReady, StatusAReviser, StatusEnMaintenance, StatusHS}

func (s MaintenanceStatus) IsValid() bool {
	for _, v := range MaintenanceStatuses {
		if v == s {
			return true
		}
	}
	return false
}

func (s MaintenanceStatus) String() string { return string(s) }

// ParseMaintenanceStatus требует точного совпадения, регистр не приводится.
func ParseMaintenanceStatus(raw string) (MaintenanceStatus, error) {
	s := MaintenanceStatus(strings.TrimSpace(raw))
	if !s.IsValid() {
		return "", fmt.Errorf("%w: неизвестный статус %q", apperrors.ErrValidation, raw)
	}
	return s, nil
}

// UnmarshalJSON принимает сектор в любом регистре.
func (s *Sector) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	parsed, err := ParseSector(raw)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
