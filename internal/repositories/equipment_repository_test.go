package repositories

import (
	"context"
	"errors"
	"testing"

	"elkarec/internal/entities"
	"elkarec/pkg/constants"
	apperrors "elkarec/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedUser(t *testing.T, repo UserRepositoryInterface, email string, role constants.Role) *entities.User {
	t.Helper()
	u, err := repo.Create(context.Background(), entities.User{Email: email, Password: "hash", Role: role})
	require.NoError(t, err)
	return u
}

func newEquipment(tag string, sector constants.Sector) entities.Equipment {
	return entities.Equipment{
		Tag: tag, Location: "Studio A", Sector: sector, Type: "Caméra",
		Manufacturer: "Sony", Model: "PXW-Z750", Status: constants.StatusReady,
	}
}

func TestEquipmentRepository_CreateFindUpdateDelete(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := NewEquipmentRepository(pool, zap.NewNop(), false)

	created, err := repo.Create(ctx, newEquipment("CAM-01", constants.SectorBroadcast))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, constants.StatusReady, created.Status)
	assert.False(t, created.SerialNumber.Valid)

	_, err = repo.Create(ctx, newEquipment("CAM-01", constants.SectorBroadcast))
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	found, err := repo.FindByTag(ctx, "CAM-01")
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)

	location := "Régie 2"
	serial := null.StringFrom("SN-1")
	updated, err := repo.Update(ctx, created.ID, entities.EquipmentPatch{Location: &location, SerialNumber: &serial})
	require.NoError(t, err)
	assert.Equal(t, "Régie 2", updated.Location)
	assert.Equal(t, "SN-1", updated.SerialNumber.String)
	assert.Equal(t, "Sony", updated.Manufacturer)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, nil, created.ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, created.ID), apperrors.ErrNotFound)
}

func TestEquipmentRepository_ListFilters(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := NewEquipmentRepository(pool, zap.NewNop(), false)

	for _, e := range []entities.Equipment{
		newEquipment("CAM-01", constants.SectorBroadcast),
		newEquipment("SRV-01", constants.SectorInformatique),
		newEquipment("50%_OFF", constants.SectorEvenementiel),
	} {
		_, err := repo.Create(ctx, e)
		require.NoError(t, err)
	}

	all, err := repo.List(ctx, entities.EquipmentFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	broadcast, err := repo.List(ctx, entities.EquipmentFilter{Sector: constants.SectorBroadcast})
	require.NoError(t, err)
	require.Len(t, broadcast, 1)
	assert.Equal(t, "CAM-01", broadcast[0].Tag)

	wildcard, err := repo.List(ctx, entities.EquipmentFilter{Search: "%_"})
	require.NoError(t, err)
	require.Len(t, wildcard, 1)
	assert.Equal(t, "50%_OFF", wildcard[0].Tag)

	caseSensitive, err := repo.List(ctx, entities.EquipmentFilter{Search: "sony"})
	require.NoError(t, err)
	assert.Empty(t, caseSensitive)

	insensitive := NewEquipmentRepository(pool, zap.NewNop(), true)
	matched, err := insensitive.List(ctx, entities.EquipmentFilter{Search: "sony"})
	require.NoError(t, err)
	assert.Len(t, matched, 3)
}

func TestStatusTransitionRepository_ApplyWritesBoth(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	logger := zap.NewNop()
	equipmentRepo := NewEquipmentRepository(pool, logger, false)
	historyRepo := NewEquipmentHistoryRepository(pool, logger)
	transitions := NewStatusTransitionRepository(NewTxManager(pool), equipmentRepo, historyRepo, logger)

	user := seedUser(t, NewUserRepository(pool, logger), "tech@elkarec.local", constants.RoleUser)
	cam, err := equipmentRepo.Create(ctx, newEquipment("CAM-01", constants.SectorBroadcast))
	require.NoError(t, err)

	updated, entry, err := transitions.Apply(ctx, StatusTransition{
		EquipmentID: cam.ID, NewStatus: constants.StatusHS, Description: "Chute", ActorID: user.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.StatusHS, updated.Status)
	assert.Equal(t, constants.StatusReady, entry.OldStatus)

	history, err := historyRepo.FindByEquipmentID(ctx, cam.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "tech@elkarec.local", history[0].UserEmail)
	assert.Equal(t, "Chute", history[0].Description)

	_, _, err = transitions.Apply(ctx, StatusTransition{
		EquipmentID: uuid.NewString(), NewStatus: constants.StatusHS, Description: "x", ActorID: user.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

// Откат: если запись истории не удалась, статус оборудования не меняется.
func TestStatusTransitionRepository_RollbackOnHistoryFailure(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	logger := zap.NewNop()
	equipmentRepo := NewEquipmentRepository(pool, logger, false)
	transitions := NewStatusTransitionRepository(NewTxManager(pool), equipmentRepo, failingHistoryRepo{}, logger)

	cam, err := equipmentRepo.Create(ctx, newEquipment("CAM-01", constants.SectorBroadcast))
	require.NoError(t, err)

	_, _, err = transitions.Apply(ctx, StatusTransition{
		EquipmentID: cam.ID, NewStatus: constants.StatusHS, Description: "Chute", ActorID: uuid.NewString(),
	})
	require.Error(t, err)

	reloaded, err := equipmentRepo.FindByID(ctx, nil, cam.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.StatusReady, reloaded.Status)
}

type failingHistoryRepo struct{}

func (failingHistoryRepo) CreateInTx(context.Context, pgx.Tx, *entities.EquipmentHistory) error {
	return errors.New("диск переполнен")
}

func (failingHistoryRepo) FindByEquipmentID(context.Context, string) ([]entities.EquipmentHistoryItem, error) {
	return nil, nil
}

func TestEquipmentHistory_CascadesOnDelete(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	logger := zap.NewNop()
	equipmentRepo := NewEquipmentRepository(pool, logger, false)
	historyRepo := NewEquipmentHistoryRepository(pool, logger)
	transitions := NewStatusTransitionRepository(NewTxManager(pool), equipmentRepo, historyRepo, logger)

	user := seedUser(t, NewUserRepository(pool, logger), "admin@elkarec.local", constants.RoleAdmin)
	cam, err := equipmentRepo.Create(ctx, newEquipment("CAM-01", constants.SectorBroadcast))
	require.NoError(t, err)
	_, _, err = transitions.Apply(ctx, StatusTransition{
		EquipmentID: cam.ID, NewStatus: constants.StatusAReviser, Description: "Контроль", ActorID: user.ID,
	})
	require.NoError(t, err)

	require.NoError(t, equipmentRepo.Delete(ctx, cam.ID))

	history, err := historyRepo.FindByEquipmentID(ctx, cam.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestUserRepository_EmailIsUniqueAndCaseInsensitive(t *testing.T) {
	pool := requireDB(t)
	ctx := context.Background()
	repo := NewUserRepository(pool, zap.NewNop())

	u := seedUser(t, repo, "Tech@Elkarec.Local", constants.RoleUser)
	assert.Equal(t, "tech@elkarec.local", u.Email)

	found, err := repo.FindByEmail(ctx, "TECH@elkarec.local")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)

	_, err = repo.Create(ctx, entities.User{Email: "tech@elkarec.local", Password: "hash"})
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	require.NoError(t, repo.UpdateRole(ctx, u.ID, constants.RoleAdmin))
	found, err = repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, constants.RoleAdmin, found.Role)
}
