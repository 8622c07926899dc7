package attendance

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/worker"
	"github.com/google/uuid"
)

// fakeClock is a settable time source shared by the service and the store.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

// fakeStore keeps records and workers in memory. It enforces the same
// constraints as the Postgres schema: one open non-manual session per
// worker and conditional updates.
type fakeStore struct {
	mu      sync.Mutex
	txMu    sync.Mutex
	clock   *fakeClock
	records map[string]attendance.Record
	workers map[string]worker.Worker
	depts   map[string]string

	// beforeUpdate runs inside Update before preconditions are checked.
	beforeUpdate func(id string)
}

func newFakeStore(clock *fakeClock) *fakeStore {
	return &fakeStore{
		clock:   clock,
		records: make(map[string]attendance.Record),
		workers: make(map[string]worker.Worker),
		depts:   make(map[string]string),
	}
}

func (f *fakeStore) addWorker(name string, manager bool, departmentID *string) worker.Worker {
	f.mu.Lock()
	defer f.mu.Unlock()
	w := worker.Worker{
		ID:           uuid.Must(uuid.NewV7()).String(),
		Name:         name,
		ExternalID:   name + "-ext",
		IsManager:    manager,
		IsActive:     true,
		DepartmentID: departmentID,
	}
	f.workers[w.ID] = w
	return w
}

func (f *fakeStore) addDepartment(name string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	id := uuid.Must(uuid.NewV7()).String()
	f.depts[id] = name
	return id
}

// WithinTransaction serializes transactions, standing in for row locks.
func (f *fakeStore) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	f.txMu.Lock()
	defer f.txMu.Unlock()
	return fn(ctx)
}

func (f *fakeStore) FindByID(ctx context.Context, id string) (*worker.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	w, ok := f.workers[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (f *fakeStore) FindByExternalID(ctx context.Context, externalID string) (*worker.Worker, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, w := range f.workers {
		if w.ExternalID == externalID {
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) FindOpenSession(ctx context.Context, workerID string) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.records {
		if r.WorkerID == workerID && r.ClockOut == nil && !r.IsManualEntry {
			return &r, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) Insert(ctx context.Context, record attendance.Record) (attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if record.ClockOut == nil && !record.IsManualEntry {
		for _, r := range f.records {
			if r.WorkerID == record.WorkerID && r.ClockOut == nil && !r.IsManualEntry {
				return attendance.Record{}, attendance.ErrAlreadyClockedIn
			}
		}
	}
	record.ID = uuid.Must(uuid.NewV7()).String()
	record.CreatedAt = f.clock.Now()
	record.UpdatedAt = record.CreatedAt
	f.records[record.ID] = record
	return record, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, patch attendance.RecordPatch) (*attendance.Record, error) {
	if f.beforeUpdate != nil {
		f.beforeUpdate(id)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	if patch.ExpectStatus != nil && r.Status != *patch.ExpectStatus {
		return nil, attendance.ErrStaleRecord
	}
	if patch.RequireOpen && r.ClockOut != nil {
		return nil, attendance.ErrStaleRecord
	}
	if patch.ClockOut != nil {
		out := *patch.ClockOut
		r.ClockOut = &out
	}
	if patch.Status != nil {
		r.Status = *patch.Status
	}
	if patch.Latitude != nil {
		r.Latitude = patch.Latitude
	}
	if patch.Longitude != nil {
		r.Longitude = patch.Longitude
	}
	if patch.UpdatedBy != nil {
		r.UpdatedBy = patch.UpdatedBy
	}
	r.UpdatedAt = f.clock.Now()
	f.records[id] = r
	return &r, nil
}

// setStatus changes a stored record directly, bypassing the service.
func (f *fakeStore) setStatus(id string, status attendance.Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := f.records[id]
	r.Status = status
	f.records[id] = r
}

func (f *fakeStore) GetByID(ctx context.Context, id string) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	return &r, nil
}

func (f *fakeStore) FindLatestForDay(ctx context.Context, workerID string, dayStart, dayEnd time.Time) (*attendance.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var latest *attendance.Record
	for _, r := range f.records {
		if r.WorkerID != workerID || r.ClockIn.Before(dayStart) || !r.ClockIn.Before(dayEnd) {
			continue
		}
		if latest == nil || r.ClockIn.After(latest.ClockIn) {
			r := r
			latest = &r
		}
	}
	return latest, nil
}

func (f *fakeStore) List(ctx context.Context, filter attendance.RecordFilter) ([]attendance.RecordView, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var views []attendance.RecordView
	for _, r := range f.records {
		w := f.workers[r.WorkerID]
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.IsManualEntry != nil && r.IsManualEntry != *filter.IsManualEntry {
			continue
		}
		if filter.WorkerID != nil && r.WorkerID != *filter.WorkerID {
			continue
		}
		if filter.DepartmentID != nil && (w.DepartmentID == nil || *w.DepartmentID != *filter.DepartmentID) {
			continue
		}

		view := attendance.RecordView{
			Record:           r,
			WorkerName:       w.Name,
			WorkerExternalID: w.ExternalID,
			DepartmentID:     w.DepartmentID,
		}
		if w.DepartmentID != nil {
			name := f.depts[*w.DepartmentID]
			view.DepartmentName = &name
		}
		if r.Status != attendance.StatusPending && r.UpdatedBy != nil {
			name := f.workers[*r.UpdatedBy].Name
			view.ApproverName = &name
		}
		views = append(views, view)
	}

	sort.Slice(views, func(i, j int) bool {
		if !views[i].CreatedAt.Equal(views[j].CreatedAt) {
			return views[i].CreatedAt.After(views[j].CreatedAt)
		}
		return views[i].ID > views[j].ID
	})
	return views, nil
}

func (f *fakeStore) ListOpenSessions(ctx context.Context, clockedInBefore time.Time) ([]attendance.RecordView, error) {
	automatic := false
	views, err := f.List(ctx, attendance.RecordFilter{IsManualEntry: &automatic})
	if err != nil {
		return nil, err
	}
	var open []attendance.RecordView
	for _, v := range views {
		if v.IsOpen() && v.ClockIn.Before(clockedInBefore) {
			open = append(open, v)
		}
	}
	return open, nil
}
