package directory

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/ameliakool/SCMS/internal/models"
	"github.com/ameliakool/SCMS/internal/store"
)

// State holds the three in-memory registries. It is only ever handed out
// under the directory's lock.
type State struct {
	Students   []*models.Student
	Classrooms []*models.Classroom
	Resources  []*models.Resource
}

// Classroom returns the classroom with the given room number, or nil.
func (s *State) Classroom(roomNumber string) *models.Classroom {
	for _, room := range s.Classrooms {
		if room.RoomNumber == roomNumber {
			return room
		}
	}
	return nil
}

// FindBooking locates a booking by id across every classroom.
func (s *State) FindBooking(id string) (*models.Classroom, *models.Booking) {
	for _, room := range s.Classrooms {
		if b := room.FindBooking(id); b != nil {
			return room, b
		}
	}
	return nil, nil
}

// Student returns the student with the given id, matched case-insensitively.
func (s *State) Student(id string) *models.Student {
	for _, st := range s.Students {
		if strings.EqualFold(st.ID, id) {
			return st
		}
	}
	return nil
}

// Resource returns the resource with the given id, matched case-insensitively.
func (s *State) Resource(id string) *models.Resource {
	for _, r := range s.Resources {
		if strings.EqualFold(r.ID, id) {
			return r
		}
	}
	return nil
}

// FlushObserver receives snapshot save outcomes, used for metrics.
type FlushObserver interface {
	ObserveSnapshotSave(name string, duration time.Duration, err error)
}

// Directory owns the process-wide registries and their persistence. All
// mutations run serialized under one write lock so a reader can never
// observe a mutation protocol mid-flight.
type Directory struct {
	mu       sync.RWMutex
	state    State
	store    store.Store
	logger   *zap.Logger
	observer FlushObserver
}

// New constructs a directory over the given snapshot store.
func New(st store.Store, logger *zap.Logger) *Directory {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Directory{store: st, logger: logger}
}

// SetObserver registers a flush observer. Must be called before serving.
func (d *Directory) SetObserver(o FlushObserver) {
	d.observer = o
}

// Load populates the registries from the snapshot store. A missing or
// unreadable collection degrades to empty; load never fails the caller.
func (d *Directory) Load(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.state.Students = loadCollection[models.Student](ctx, d, store.CollectionStudents)
	d.state.Classrooms = loadCollection[models.Classroom](ctx, d, store.CollectionClassrooms)
	d.state.Resources = loadCollection[models.Resource](ctx, d, store.CollectionResources)

	// Bookings persist nested under their classroom; restore back-references.
	for _, room := range d.state.Classrooms {
		for _, b := range room.Bookings {
			b.Room = room.RoomNumber
		}
	}

	d.logger.Info("directory loaded",
		zap.Int("students", len(d.state.Students)),
		zap.Int("classrooms", len(d.state.Classrooms)),
		zap.Int("resources", len(d.state.Resources)))
}

func loadCollection[T any](ctx context.Context, d *Directory, name string) []*T {
	var items []*T
	err := d.store.Load(ctx, name, &items)
	switch {
	case err == nil:
		return items
	case errors.Is(err, store.ErrNotFound):
		d.logger.Info("no prior snapshot, starting empty", zap.String("collection", name))
	default:
		d.logger.Warn("snapshot unreadable, starting empty", zap.String("collection", name), zap.Error(err))
	}
	return nil
}

// View runs fn with read access to the state.
func (d *Directory) View(fn func(*State)) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	fn(&d.state)
}

// Update runs fn with exclusive access to the state. When fn succeeds the
// registries are flushed to the store before the lock is released, so the
// next command observes the mutation already persisted. Flush failures
// are logged and never roll back the in-memory mutation.
func (d *Directory) Update(ctx context.Context, fn func(*State) error) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := fn(&d.state); err != nil {
		return err
	}
	d.flushLocked(ctx)
	return nil
}

// Flush persists all three registries.
func (d *Directory) Flush(ctx context.Context) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	d.flushLocked(ctx)
}

func (d *Directory) flushLocked(ctx context.Context) {
	d.saveCollection(ctx, store.CollectionStudents, d.state.Students)
	d.saveCollection(ctx, store.CollectionClassrooms, d.state.Classrooms)
	d.saveCollection(ctx, store.CollectionResources, d.state.Resources)
}

func (d *Directory) saveCollection(ctx context.Context, name string, value interface{}) {
	start := time.Now()
	err := d.store.Save(ctx, name, value)
	if d.observer != nil {
		d.observer.ObserveSnapshotSave(name, time.Since(start), err)
	}
	if err != nil {
		// In-memory state stays authoritative for the running session.
		d.logger.Error("snapshot save failed", zap.String("collection", name), zap.Error(err))
	}
}
