package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"elkarec/internal/dto"
	"elkarec/internal/entities"
	"elkarec/internal/repositories"
	"elkarec/pkg/constants"
	apperrors "elkarec/pkg/errors"
	"elkarec/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type EquipmentServiceInterface interface {
	List(ctx context.Context, filter dto.EquipmentFilterDTO) ([]dto.EquipmentDTO, error)
	Get(ctx context.Context, id string) (*dto.EquipmentWithHistoryDTO, error)
	Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error)
	Update(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error)
	Delete(ctx context.Context, id string) error
}

type EquipmentService struct {
	equipmentRepo repositories.EquipmentRepositoryInterface
	historyRepo   repositories.EquipmentHistoryRepositoryInterface
	logger        *zap.Logger
}

func NewEquipmentService(
	equipmentRepo repositories.EquipmentRepositoryInterface,
	historyRepo repositories.EquipmentHistoryRepositoryInterface,
	logger *zap.Logger,
) EquipmentServiceInterface {
	return &EquipmentService{
		equipmentRepo: equipmentRepo,
		historyRepo:   historyRepo,
		logger:        logger,
	}
}

// NormalizeEquipmentFilter приводит параметры запроса к фильтру репозитория.
// "all" и пустое значение отключают фильтр, неизвестный сектор или статус дают ошибку валидации.
func NormalizeEquipmentFilter(raw dto.EquipmentFilterDTO) (entities.EquipmentFilter, error) {
	var filter entities.EquipmentFilter

	if sector := strings.TrimSpace(raw.Sector); sector != "" && !strings.EqualFold(sector, constants.FilterAll) {
		parsed, err := constants.ParseSector(sector)
		if err != nil {
			return filter, apperrors.NewInvalidInputError("Неизвестный сектор: %s", raw.Sector)
		}
		filter.Sector = parsed
	}

	if status := strings.TrimSpace(raw.Status); status != "" && !strings.EqualFold(status, constants.FilterAll) {
		parsed, err := constants.ParseMaintenanceStatus(status)
		if err != nil {
			return filter, apperrors.NewInvalidInputError("Неизвестный статус: %s", raw.Status)
		}
		filter.Status = parsed
	}

	filter.Search = strings.TrimSpace(raw.Search)
	return filter, nil
}

// checkEquipmentID - некорректный идентификатор не может существовать, поэтому это 404.
func checkEquipmentID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperrors.ErrNotFound
	}
	return nil
}

func (s *EquipmentService) List(ctx context.Context, raw dto.EquipmentFilterDTO) ([]dto.EquipmentDTO, error) {
	filter, err := NormalizeEquipmentFilter(raw)
	if err != nil {
		return nil, err
	}

	list, err := s.equipmentRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("Ошибка получения списка оборудования", zap.Error(err))
		return nil, err
	}
	return dto.NewEquipmentListDTO(list), nil
}

func (s *EquipmentService) Get(ctx context.Context, id string) (*dto.EquipmentWithHistoryDTO, error) {
	if err := checkEquipmentID(id); err != nil {
		return nil, err
	}

	equipment, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.FindByEquipmentID(ctx, id)
	if err != nil {
		s.logger.Error("Ошибка получения истории оборудования", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	return &dto.EquipmentWithHistoryDTO{
		EquipmentDTO: *dto.NewEquipmentDTO(equipment),
		History:      dto.NewEquipmentHistoryListDTO(history),
	}, nil
}

func (s *EquipmentService) Create(ctx context.Context, payload dto.CreateEquipmentDTO) (*dto.EquipmentDTO, error) {
	entity, err := buildEquipmentEntity(payload)
	if err != nil {
		return nil, err
	}

	if err := s.ensureTagIsFree(ctx, entity.Tag, ""); err != nil {
		return nil, err
	}

	created, err := s.equipmentRepo.Create(ctx, entity)
	if err != nil {
		s.logger.Error("Ошибка при создании оборудования", zap.String("tag", entity.Tag), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Оборудование успешно создано", zap.String("id", created.ID), zap.String("tag", created.Tag))
	return dto.NewEquipmentDTO(created), nil
}

func buildEquipmentEntity(payload dto.CreateEquipmentDTO) (entities.Equipment, error) {
	e := entities.Equipment{
		Tag:          strings.TrimSpace(payload.Tag),
		Location:     strings.TrimSpace(payload.Location),
		Type:         strings.TrimSpace(payload.Type),
		Manufacturer: strings.TrimSpace(payload.Manufacturer),
		Model:        strings.TrimSpace(payload.Model),
		Status:       constants.StatusReady,
	}

	required := []struct{ name, value string }{
		{"tag", e.Tag}, {"location", e.Location}, {"type", e.Type},
		{"manufacturer", e.Manufacturer}, {"model", e.Model},
	}
	for _, f := range required {
		if f.value == "" {
			return e, apperrors.NewInvalidInputError("Поле '%s' обязательно", f.name)
		}
	}

	sector, err := constants.ParseSector(payload.Sector)
	if err != nil {
		return e, apperrors.NewInvalidInputError("Неизвестный сектор: %s", payload.Sector)
	}
	e.Sector = sector

	if strings.TrimSpace(payload.Status) != "" {
		status, err := constants.ParseMaintenanceStatus(payload.Status)
		if err != nil {
			return e, apperrors.NewInvalidInputError("Неизвестный статус: %s", payload.Status)
		}
		e.Status = status
	}

	e.SerialNumber = optionalString(payload.SerialNumber.String, payload.SerialNumber.Valid)
	e.Notes = optionalString(payload.Notes.String, payload.Notes.Valid)

	if payload.PurchaseDate.Valid && strings.TrimSpace(payload.PurchaseDate.String) != "" {
		date, err := utils.ParseDate(payload.PurchaseDate.String)
		if err != nil {
			return e, err
		}
		e.PurchaseDate = null.TimeFrom(date)
	}
	return e, nil
}

// optionalString - пустая строка хранится как NULL.
func optionalString(value string, valid bool) null.String {
	value = strings.TrimSpace(value)
	if !valid || value == "" {
		return null.String{}
	}
	return null.StringFrom(value)
}

func (s *EquipmentService) ensureTagIsFree(ctx context.Context, tag, selfID string) error {
	existing, err := s.equipmentRepo.FindByTag(ctx, tag)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil
		}
		return err
	}
	if existing.ID == selfID {
		return nil
	}
	return apperrors.NewHttpError(http.StatusConflict, fmt.Sprintf("Оборудование с тегом %s уже существует", tag), apperrors.ErrConflict, nil)
}

func (s *EquipmentService) Update(ctx context.Context, id string, payload dto.UpdateEquipmentDTO) (*dto.EquipmentDTO, error) {
	if err := checkEquipmentID(id); err != nil {
		return nil, err
	}

	patch, err := buildEquipmentPatch(payload)
	if err != nil {
		return nil, err
	}

	if payload.Status != nil {
		if err := s.ensureStatusUnchanged(ctx, id, *payload.Status); err != nil {
			return nil, err
		}
	}

	if patch.IsEmpty() {
		current, err := s.equipmentRepo.FindByID(ctx, nil, id)
		if err != nil {
			return nil, err
		}
		return dto.NewEquipmentDTO(current), nil
	}

	if patch.Tag != nil {
		if err := s.ensureTagIsFree(ctx, *patch.Tag, id); err != nil {
			return nil, err
		}
	}

	updated, err := s.equipmentRepo.Update(ctx, id, patch)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) && !errors.Is(err, apperrors.ErrConflict) {
			s.logger.Error("Ошибка при обновлении оборудования", zap.String("id", id), zap.Error(err))
		}
		return nil, err
	}

	s.logger.Info("Оборудование обновлено", zap.String("id", id))
	return dto.NewEquipmentDTO(updated), nil
}

// ensureStatusUnchanged пропускает status, совпадающий с текущим: форма
// редактирования отправляет запись целиком. Смена статуса идёт только через
// PATCH /equipments/:id/status, иначе она не попадёт в историю.
func (s *EquipmentService) ensureStatusUnchanged(ctx context.Context, id, raw string) error {
	status, err := constants.ParseMaintenanceStatus(raw)
	if err != nil {
		return apperrors.NewInvalidInputError("Неизвестный статус: %s", raw)
	}
	current, err := s.equipmentRepo.FindByID(ctx, nil, id)
	if err != nil {
		return err
	}
	if current.Status != status {
		return apperrors.NewInvalidInputError("Статус меняется только через PATCH /equipments/:id/status")
	}
	return nil
}

func buildEquipmentPatch(payload dto.UpdateEquipmentDTO) (entities.EquipmentPatch, error) {
	var patch entities.EquipmentPatch

	required := []struct {
		name string
		src  *string
		dst  **string
	}{
		{"tag", payload.Tag, &patch.Tag},
		{"location", payload.Location, &patch.Location},
		{"type", payload.Type, &patch.Type},
		{"manufacturer", payload.Manufacturer, &patch.Manufacturer},
		{"model", payload.Model, &patch.Model},
	}
	for _, f := range required {
		if f.src == nil {
			continue
		}
		value := strings.TrimSpace(*f.src)
		if value == "" {
			return patch, apperrors.NewInvalidInputError("Поле '%s' не может быть пустым", f.name)
		}
		*f.dst = &value
	}

	if payload.Sector != nil {
		sector, err := constants.ParseSector(*payload.Sector)
		if err != nil {
			return patch, apperrors.NewInvalidInputError("Неизвестный сектор: %s", *payload.Sector)
		}
		patch.Sector = &sector
	}

	if payload.SerialNumber != nil {
		patch.SerialNumber = utils.ToPtr(optionalString(*payload.SerialNumber, true))
	}
	if payload.Notes != nil {
		patch.Notes = utils.ToPtr(optionalString(*payload.Notes, true))
	}
	if payload.PurchaseDate != nil {
		if strings.TrimSpace(*payload.PurchaseDate) == "" {
			patch.PurchaseDate = &null.Time{}
		} else {
			date, err := utils.ParseDate(*payload.PurchaseDate)
			if err != nil {
				return patch, err
			}
			patch.PurchaseDate = utils.ToPtr(null.TimeFrom(date))
		}
	}

	return patch, nil
}

func (s *EquipmentService) Delete(ctx context.Context, id string) error {
	if err := checkEquipmentID(id); err != nil {
		return err
	}
	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.logger.Error("Ошибка при удалении оборудования", zap.String("id", id), zap.Error(err))
		}
		return err
	}
	s.logger.Info("Оборудование удалено", zap.String("id", id))
	return nil
}
