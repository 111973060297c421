package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"elkarec/internal/entities"
	"elkarec/internal/repositories"
	"elkarec/pkg/constants"
	apperrors "elkarec/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// memStore - общее in-memory хранилище для фейковых репозиториев.
type memStore struct {
	mu         sync.Mutex
	equipments map[string]entities.Equipment
	history    []entities.EquipmentHistory
	users      map[string]entities.User
	clock      time.Time
}

func newMemStore() *memStore {
	return &memStore{
		equipments: map[string]entities.Equipment{},
		users:      map[string]entities.User{},
		clock:      time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC),
	}
}

func (s *memStore) tick() time.Time {
	s.clock = s.clock.Add(time.Second)
	return s.clock
}

func (s *memStore) snapshot() (map[string]entities.Equipment, []entities.EquipmentHistory) {
	eq := make(map[string]entities.Equipment, len(s.equipments))
	for k, v := range s.equipments {
		eq[k] = v
	}
	return eq, append([]entities.EquipmentHistory(nil), s.history...)
}

// fakeTxManager восстанавливает хранилище, если fn вернула ошибку.
type fakeTxManager struct {
	store   *memStore
	commits int
}

func (m *fakeTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	eq, hist := m.store.snapshot()
	if err := fn(nil); err != nil {
		m.store.equipments, m.store.history = eq, hist
		return err
	}
	m.commits++
	return nil
}

type fakeEquipmentRepo struct {
	store            *memStore
	failUpdateStatus error
	writes           int
}

func (r *fakeEquipmentRepo) List(ctx context.Context, f entities.EquipmentFilter) ([]entities.Equipment, error) {
	out := make([]entities.Equipment, 0)
	for _, e := range r.store.equipments {
		if f.Sector != "" && e.Sector != f.Sector {
			continue
		}
		if f.Status != "" && e.Status != f.Status {
			continue
		}
		if f.Search != "" && !matchesSearch(e, f.Search) {
			continue
		}
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func matchesSearch(e entities.Equipment, q string) bool {
	for _, v := range []string{e.Tag, e.Location, e.Type, e.Manufacturer, e.Model} {
		if strings.Contains(v, q) {
			return true
		}
	}
	return false
}

func (r *fakeEquipmentRepo) FindByID(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	e, ok := r.store.equipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &e, nil
}

func (r *fakeEquipmentRepo) FindByIDForUpdate(ctx context.Context, tx pgx.Tx, id string) (*entities.Equipment, error) {
	return r.FindByID(ctx, tx, id)
}

func (r *fakeEquipmentRepo) FindByTag(ctx context.Context, tag string) (*entities.Equipment, error) {
	for _, e := range r.store.equipments {
		if e.Tag == tag {
			e := e
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeEquipmentRepo) Create(ctx context.Context, e entities.Equipment) (*entities.Equipment, error) {
	if _, err := r.FindByTag(ctx, e.Tag); err == nil {
		return nil, fmt.Errorf("создание оборудования: %w", apperrors.ErrConflict)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	e.CreatedAt = r.store.tick()
	e.UpdatedAt = e.CreatedAt
	r.store.equipments[e.ID] = e
	r.writes++
	return &e, nil
}

func (r *fakeEquipmentRepo) Update(ctx context.Context, id string, p entities.EquipmentPatch) (*entities.Equipment, error) {
	e, ok := r.store.equipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if p.Tag != nil {
		e.Tag = *p.Tag
	}
	if p.Location != nil {
		e.Location = *p.Location
	}
	if p.Sector != nil {
		e.Sector = *p.Sector
	}
	if p.Type != nil {
		e.Type = *p.Type
	}
	if p.Manufacturer != nil {
		e.Manufacturer = *p.Manufacturer
	}
	if p.Model != nil {
		e.Model = *p.Model
	}
	if p.SerialNumber != nil {
		e.SerialNumber = *p.SerialNumber
	}
	if p.PurchaseDate != nil {
		e.PurchaseDate = *p.PurchaseDate
	}
	if p.Notes != nil {
		e.Notes = *p.Notes
	}
	e.UpdatedAt = r.store.tick()
	r.store.equipments[id] = e
	r.writes++
	return &e, nil
}

func (r *fakeEquipmentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id string, status constants.MaintenanceStatus) (*entities.Equipment, error) {
	if r.failUpdateStatus != nil {
		return nil, r.failUpdateStatus
	}
	e, ok := r.store.equipments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	e.Status = status
	e.UpdatedAt = r.store.tick()
	r.store.equipments[id] = e
	r.writes++
	return &e, nil
}

func (r *fakeEquipmentRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.store.equipments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.store.equipments, id)
	kept := r.store.history[:0]
	for _, h := range r.store.history {
		if h.EquipmentID != id {
			kept = append(kept, h)
		}
	}
	r.store.history = kept
	r.writes++
	return nil
}

type fakeHistoryRepo struct {
	store      *memStore
	failCreate error
}

func (r *fakeHistoryRepo) CreateInTx(ctx context.Context, tx pgx.Tx, h *entities.EquipmentHistory) error {
	if r.failCreate != nil {
		return r.failCreate
	}
	h.ID = uuid.NewString()
	h.ChangedAt = r.store.tick()
	r.store.history = append(r.store.history, *h)
	return nil
}

func (r *fakeHistoryRepo) FindByEquipmentID(ctx context.Context, equipmentID string) ([]entities.EquipmentHistoryItem, error) {
	out := make([]entities.EquipmentHistoryItem, 0)
	for _, h := range r.store.history {
		if h.EquipmentID != equipmentID {
			continue
		}
		item := entities.EquipmentHistoryItem{EquipmentHistory: h}
		if u, ok := r.store.users[h.UserID]; ok {
			item.UserEmail = u.Email
			item.UserFirstName = u.FirstName
			item.UserLastName = u.LastName
		}
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChangedAt.After(out[j].ChangedAt) })
	return out, nil
}

type fakeUserRepo struct {
	store *memStore
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*entities.User, error) {
	u, ok := r.store.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.store.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) Create(ctx context.Context, u entities.User) (*entities.User, error) {
	if _, err := r.FindByEmail(ctx, u.Email); err == nil {
		return nil, apperrors.ErrConflict
	}
	u.ID = uuid.NewString()
	u.Email = strings.ToLower(u.Email)
	u.CreatedAt = r.store.tick()
	r.store.users[u.ID] = u
	return &u, nil
}

func (r *fakeUserRepo) UpdatePassword(ctx context.Context, id, hash string) error {
	u, ok := r.store.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Password = hash
	r.store.users[id] = u
	return nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, id string, role constants.Role) error {
	u, ok := r.store.users[id]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Role = role
	r.store.users[id] = u
	return nil
}

// fakeCache повторяет семантику Redis для счётчиков и TTL.
type fakeCache struct {
	values map[string]string
	ttl    map[string]time.Duration
	down   bool
}

func newFakeCache() *fakeCache {
	return &fakeCache{values: map[string]string{}, ttl: map[string]time.Duration{}}
}

var errCacheDown = errors.New("redis: connection refused")

func (c *fakeCache) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	if c.down {
		return errCacheDown
	}
	c.values[key] = fmt.Sprint(value)
	c.ttl[key] = exp
	return nil
}

func (c *fakeCache) Get(ctx context.Context, key string) (string, error) {
	if c.down {
		return "", errCacheDown
	}
	v, ok := c.values[key]
	if !ok {
		return "", repositories.ErrCacheMiss
	}
	return v, nil
}

func (c *fakeCache) Del(ctx context.Context, keys ...string) error {
	if c.down {
		return errCacheDown
	}
	for _, k := range keys {
		delete(c.values, k)
		delete(c.ttl, k)
	}
	return nil
}

func (c *fakeCache) Incr(ctx context.Context, key string) (int64, error) {
	if c.down {
		return 0, errCacheDown
	}
	var n int64
	fmt.Sscan(c.values[key], &n)
	n++
	c.values[key] = fmt.Sprint(n)
	return n, nil
}

func (c *fakeCache) Expire(ctx context.Context, key string, exp time.Duration) (bool, error) {
	if _, ok := c.values[key]; !ok {
		return false, nil
	}
	c.ttl[key] = exp
	return true, nil
}

func (c *fakeCache) TTL(ctx context.Context, key string) (time.Duration, error) {
	if _, ok := c.values[key]; !ok {
		return -2, nil
	}
	return c.ttl[key], nil
}
