package service

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/gautham-8087/Event-IQ/internal/archive"
	"github.com/gautham-8087/Event-IQ/pkg/config"
	mongotx "github.com/gautham-8087/Event-IQ/pkg/db/mongo"
	"github.com/gautham-8087/Event-IQ/pkg/logger"
	"github.com/gautham-8087/Event-IQ/pkg/model"
)

type mockEventRepository struct {
	insertFunc      func(ctx context.Context, event *model.Event) error
	findByIDFunc    func(ctx context.Context, id string) (*model.Event, error)
	findByIDsFunc   func(ctx context.Context, ids []string) ([]*model.Event, error)
	findAllFunc     func(ctx context.Context, limit int, offset int64) ([]*model.Event, error)
	countFunc       func(ctx context.Context) (int64, error)
	updateStateFunc func(ctx context.Context, id string, state model.EventState) error
	deleteFunc      func(ctx context.Context, id string) error
}

func (m *mockEventRepository) Insert(ctx context.Context, event *model.Event) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, event)
	}
	return nil
}

func (m *mockEventRepository) FindByID(ctx context.Context, id string) (*model.Event, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockEventRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Event, error) {
	if m.findByIDsFunc != nil {
		return m.findByIDsFunc(ctx, ids)
	}
	return []*model.Event{}, nil
}

func (m *mockEventRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Event, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Event{}, nil
}

func (m *mockEventRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func (m *mockEventRepository) UpdateState(ctx context.Context, id string, state model.EventState) error {
	if m.updateStateFunc != nil {
		return m.updateStateFunc(ctx, id, state)
	}
	return nil
}

func (m *mockEventRepository) Delete(ctx context.Context, id string) error {
	if m.deleteFunc != nil {
		return m.deleteFunc(ctx, id)
	}
	return nil
}

func (m *mockEventRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(mongo.NewSessionContext(ctx, nil))
}

type mockAllocationRepository struct {
	insertFunc           func(ctx context.Context, allocation *model.Allocation) error
	findByResourceIDFunc func(ctx context.Context, resourceID string) ([]*model.Allocation, error)
	findByEventIDFunc    func(ctx context.Context, eventID string) ([]*model.Allocation, error)
	deleteByEventIDFunc  func(ctx context.Context, eventID string) error
}

func (m *mockAllocationRepository) Insert(ctx context.Context, allocation *model.Allocation) error {
	if m.insertFunc != nil {
		return m.insertFunc(ctx, allocation)
	}
	return nil
}

func (m *mockAllocationRepository) FindByResourceID(ctx context.Context, resourceID string) ([]*model.Allocation, error) {
	if m.findByResourceIDFunc != nil {
		return m.findByResourceIDFunc(ctx, resourceID)
	}
	return []*model.Allocation{}, nil
}

func (m *mockAllocationRepository) FindByEventID(ctx context.Context, eventID string) ([]*model.Allocation, error) {
	if m.findByEventIDFunc != nil {
		return m.findByEventIDFunc(ctx, eventID)
	}
	return []*model.Allocation{}, nil
}

func (m *mockAllocationRepository) DeleteByEventID(ctx context.Context, eventID string) error {
	if m.deleteByEventIDFunc != nil {
		return m.deleteByEventIDFunc(ctx, eventID)
	}
	return nil
}

type mockLockRepository struct {
	mu       sync.Mutex
	created  []string
	released []string

	createFunc func(ctx context.Context, lock *model.AllocationLock) error
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.AllocationLock) error {
	if m.createFunc != nil {
		if err := m.createFunc(ctx, lock); err != nil {
			return err
		}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.created = append(m.created, lock.ID)
	return nil
}

func (m *mockLockRepository) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = append(m.released, id)
	return nil
}

type mockCatalog struct {
	listFunc     func(ctx context.Context, resourceType model.ResourceType, filter model.ResourceFilter) ([]model.Resource, error)
	getByIDsFunc func(ctx context.Context, ids []string) ([]model.Resource, error)
}

func (m *mockCatalog) List(ctx context.Context, resourceType model.ResourceType, filter model.ResourceFilter) ([]model.Resource, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, resourceType, filter)
	}
	return []model.Resource{}, nil
}

func (m *mockCatalog) ListAll(ctx context.Context) ([]model.Resource, error) {
	return []model.Resource{}, nil
}

func (m *mockCatalog) GetByIDs(ctx context.Context, ids []string) ([]model.Resource, error) {
	if m.getByIDsFunc != nil {
		return m.getByIDsFunc(ctx, ids)
	}
	resources := make([]model.Resource, 0, len(ids))
	for _, id := range ids {
		resources = append(resources, model.Resource{ID: id, Type: model.ResourceRoom})
	}
	return resources, nil
}

type captureLog struct {
	mu      sync.Mutex
	records []archive.Record
}

func (l *captureLog) Append(_ context.Context, record archive.Record) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, record)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log:               logger.New(logger.Config{Level: "error", Service: "test"}),
		AllocationLockTTL: 10 * time.Second,
		WriteTimeout:      5 * time.Second,
		AvailabilityLimit: 20,
	}
}

func at(hour, min int) time.Time {
	return time.Date(2026, time.September, 14, hour, min, 0, 0, time.UTC)
}
