package services

import (
	"context"
	"testing"

	"elkarec/internal/dto"
	"elkarec/pkg/constants"
	apperrors "elkarec/pkg/errors"
	"elkarec/pkg/utils"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newEquipmentServiceForTest() (EquipmentServiceInterface, *fakeEquipmentRepo, *memStore) {
	store := newMemStore()
	repo := &fakeEquipmentRepo{store: store}
	return NewEquipmentService(repo, &fakeHistoryRepo{store: store}, zap.NewNop()), repo, store
}

func validCreateDTO(tag string) dto.CreateEquipmentDTO {
	return dto.CreateEquipmentDTO{
		Tag: tag, Location: "Studio A", Sector: "BROADCAST",
		Type: "Caméra", Manufacturer: "Sony", Model: "PXW-Z750",
	}
}

func TestNormalizeEquipmentFilter(t *testing.T) {
	f, err := NormalizeEquipmentFilter(dto.EquipmentFilterDTO{Sector: "all", Status: "ALL", Search: "  cam "})
	require.NoError(t, err)
	assert.Empty(t, f.Sector)
	assert.Empty(t, f.Status)
	assert.Equal(t, "cam", f.Search)

	f, err = NormalizeEquipmentFilter(dto.EquipmentFilterDTO{Sector: "broadcast", Status: "HS"})
	require.NoError(t, err)
	assert.Equal(t, constants.SectorBroadcast, f.Sector)
	assert.Equal(t, constants.StatusHS, f.Status)

	_, err = NormalizeEquipmentFilter(dto.EquipmentFilterDTO{Sector: "CUISINE"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = NormalizeEquipmentFilter(dto.EquipmentFilterDTO{Status: "hs"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}

func TestEquipmentService_CreateDefaultsAndNormalizes(t *testing.T) {
	svc, _, _ := newEquipmentServiceForTest()

	payload := validCreateDTO("  CAM-01 ")
	payload.Sector = "broadcast"
	payload.PurchaseDate = null.StringFrom("2022-03-14")
	payload.SerialNumber = null.StringFrom("   ")

	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "CAM-01", created.Tag)
	assert.Equal(t, constants.SectorBroadcast, created.Sector)
	assert.Equal(t, constants.StatusReady, created.Status)
	assert.Equal(t, "2022-03-14", created.PurchaseDate.String)
	assert.False(t, created.SerialNumber.Valid, "пустой серийный номер хранится как NULL")
	assert.NotEmpty(t, created.ID)
}

func TestEquipmentService_CreateValidation(t *testing.T) {
	svc, repo, _ := newEquipmentServiceForTest()

	missingModel := validCreateDTO("CAM-01")
	missingModel.Model = " "
	badSector := validCreateDTO("CAM-01")
	badSector.Sector = "CUISINE"
	badStatus := validCreateDTO("CAM-01")
	badStatus.Status = "BROKEN"
	badDate := validCreateDTO("CAM-01")
	badDate.PurchaseDate = null.StringFrom("14/03/2022")

	for name, payload := range map[string]dto.CreateEquipmentDTO{
		"model": missingModel, "sector": badSector, "status": badStatus, "date": badDate,
	} {
		_, err := svc.Create(context.Background(), payload)
		assert.ErrorIs(t, err, apperrors.ErrValidation, name)
	}
	assert.Zero(t, repo.writes)
}

func TestEquipmentService_DuplicateTagCreatesNothing(t *testing.T) {
	svc, repo, store := newEquipmentServiceForTest()
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateDTO("CAM-01"))
	require.NoError(t, err)

	_, err = svc.Create(ctx, validCreateDTO("CAM-01"))
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	code, _ := utils.ResolveError(err)
	assert.Equal(t, 409, code)
	assert.Len(t, store.equipments, 1)
	assert.Equal(t, 1, repo.writes)
}

func TestEquipmentService_ExplicitInitialStatus(t *testing.T) {
	svc, _, _ := newEquipmentServiceForTest()
	payload := validCreateDTO("SPK-01")
	payload.Status = "HS"

	created, err := svc.Create(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusHS, created.Status)
}

func TestEquipmentService_Update(t *testing.T) {
	svc, _, _ := newEquipmentServiceForTest()
	ctx := context.Background()

	payload := validCreateDTO("CAM-01")
	payload.Notes = null.StringFrom("Firmware 1.2")
	cam, err := svc.Create(ctx, payload)
	require.NoError(t, err)
	_, err = svc.Create(ctx, validCreateDTO("CAM-02"))
	require.NoError(t, err)

	updated, err := svc.Update(ctx, cam.ID, dto.UpdateEquipmentDTO{
		Location: utils.ToPtr("Régie 2"),
		Sector:   utils.ToPtr("evenementiel"),
		Notes:    utils.ToPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Régie 2", updated.Location)
	assert.Equal(t, constants.SectorEvenementiel, updated.Sector)
	assert.False(t, updated.Notes.Valid, "пустая строка очищает заметки")
	assert.Equal(t, "Sony", updated.Manufacturer, "не переданные поля не меняются")

	_, err = svc.Update(ctx, cam.ID, dto.UpdateEquipmentDTO{Tag: utils.ToPtr("CAM-02")})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	same, err := svc.Update(ctx, cam.ID, dto.UpdateEquipmentDTO{Tag: utils.ToPtr("CAM-01")})
	require.NoError(t, err, "собственный тег не конфликтует")
	assert.Equal(t, "CAM-01", same.Tag)

	_, err = svc.Update(ctx, cam.ID, dto.UpdateEquipmentDTO{Status: utils.ToPtr("HS")})
	assert.ErrorIs(t, err, apperrors.ErrValidation, "смена статуса только через переход")

	_, err = svc.Update(ctx, cam.ID, dto.UpdateEquipmentDTO{Status: utils.ToPtr("BROKEN")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Update(ctx, uuid.NewString(), dto.UpdateEquipmentDTO{Status: utils.ToPtr("READY")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.Update(ctx, cam.ID, dto.UpdateEquipmentDTO{Tag: utils.ToPtr("  ")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = svc.Update(ctx, uuid.NewString(), dto.UpdateEquipmentDTO{Location: utils.ToPtr("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	unchanged, err := svc.Update(ctx, cam.ID, dto.UpdateEquipmentDTO{})
	require.NoError(t, err)
	assert.Equal(t, "Régie 2", unchanged.Location)
}

func TestEquipmentService_UpdateFullRecordWithCurrentStatus(t *testing.T) {
	svc, _, _ := newEquipmentServiceForTest()
	ctx := context.Background()

	cam, err := svc.Create(ctx, validCreateDTO("CAM-01"))
	require.NoError(t, err)
	require.Equal(t, constants.StatusReady, cam.Status)

	updated, err := svc.Update(ctx, cam.ID, dto.UpdateEquipmentDTO{
		Tag:          utils.ToPtr(cam.Tag),
		Location:     utils.ToPtr("Studio B"),
		Sector:       utils.ToPtr(cam.Sector.String()),
		Type:         utils.ToPtr(cam.Type),
		Manufacturer: utils.ToPtr(cam.Manufacturer),
		Model:        utils.ToPtr(cam.Model),
		Status:       utils.ToPtr("READY"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Studio B", updated.Location)
	assert.Equal(t, constants.StatusReady, updated.Status)

	card, err := svc.Get(ctx, cam.ID)
	require.NoError(t, err)
	assert.Empty(t, card.History, "без смены статуса история не пишется")
}

func TestEquipmentService_GetAndDelete(t *testing.T) {
	svc, _, store := newEquipmentServiceForTest()
	ctx := context.Background()

	cam, err := svc.Create(ctx, validCreateDTO("CAM-01"))
	require.NoError(t, err)

	card, err := svc.Get(ctx, cam.ID)
	require.NoError(t, err)
	assert.Equal(t, "CAM-01", card.Tag)
	assert.NotNil(t, card.History)
	assert.Empty(t, card.History)

	_, err = svc.Get(ctx, "42")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	require.NoError(t, svc.Delete(ctx, cam.ID))
	assert.Empty(t, store.equipments)
	assert.ErrorIs(t, svc.Delete(ctx, cam.ID), apperrors.ErrNotFound)
}

func TestEquipmentService_ListFilters(t *testing.T) {
	svc, _, _ := newEquipmentServiceForTest()
	ctx := context.Background()

	for _, p := range []dto.CreateEquipmentDTO{
		validCreateDTO("CAM-01"),
		{Tag: "SRV-01", Location: "Salle serveurs", Sector: "INFORMATIQUE", Type: "Serveur", Manufacturer: "Dell", Model: "R750"},
	} {
		_, err := svc.Create(ctx, p)
		require.NoError(t, err)
	}

	all, err := svc.List(ctx, dto.EquipmentFilterDTO{})
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "SRV-01", all[0].Tag, "новые первыми")

	it, err := svc.List(ctx, dto.EquipmentFilterDTO{Sector: "informatique"})
	require.NoError(t, err)
	require.Len(t, it, 1)
	assert.Equal(t, "SRV-01", it[0].Tag)

	bySearch, err := svc.List(ctx, dto.EquipmentFilterDTO{Search: "Sony"})
	require.NoError(t, err)
	require.Len(t, bySearch, 1)
	assert.Equal(t, "CAM-01", bySearch[0].Tag)

	_, err = svc.List(ctx, dto.EquipmentFilterDTO{Status: "BROKEN"})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
