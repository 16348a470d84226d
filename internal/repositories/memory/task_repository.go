package memory

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/repositories"
)

// TaskRepository keeps tasks in a map guarded by a mutex. It stores
// snapshots, so tasks handed in or out never share state with the store.
type TaskRepository struct {
	logger zerolog.Logger

	mu    sync.RWMutex
	tasks map[string]models.TaskSnapshot
}

var _ repositories.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(logger zerolog.Logger) *TaskRepository {
	return &TaskRepository{
		logger: logger,
		tasks:  make(map[string]models.TaskSnapshot),
	}
}

func (r *TaskRepository) FindByID(_ context.Context, id string) (*models.Task, error) {
	id, ok := repositories.CanonicalID(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}

	r.mu.RLock()
	snapshot, ok := r.tasks[id]
	r.mu.RUnlock()

	if !ok {
		return nil, repositories.ErrNotFound
	}
	return models.RestoreTask(snapshot), nil
}

func (r *TaskRepository) FindAll(
	_ context.Context,
	filter repositories.TaskFilter,
	pagination repositories.Pagination,
) (repositories.Page[*models.Task], error) {
	search := strings.ToLower(filter.Search)

	r.mu.RLock()
	matched := make([]models.TaskSnapshot, 0, len(r.tasks))
	for _, s := range r.tasks {
		if matches(s, filter, search) {
			matched = append(matched, s)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(matched, func(a, b models.TaskSnapshot) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.ID, a.ID)
	})

	total := len(matched)
	start := min(max(pagination.Offset(), 0), total)
	end := min(start+max(pagination.Limit, 0), total)

	data := make([]*models.Task, 0, end-start)
	for _, s := range matched[start:end] {
		data = append(data, models.RestoreTask(s))
	}

	r.logger.Debug().
		Int("total", total).
		Int("count", len(data)).
		Msg("selected tasks")
	return repositories.NewPage(data, total, pagination), nil
}

func matches(s models.TaskSnapshot, filter repositories.TaskFilter, search string) bool {
	if filter.Status != "" && s.Status != filter.Status {
		return false
	}
	if filter.Priority != "" && s.Priority != filter.Priority {
		return false
	}
	if filter.AssigneeID != "" && (s.AssigneeID == nil || *s.AssigneeID != filter.AssigneeID) {
		return false
	}
	if search != "" &&
		!strings.Contains(strings.ToLower(s.Title), search) &&
		!strings.Contains(strings.ToLower(s.Description), search) {
		return false
	}
	return true
}

func (r *TaskRepository) Save(_ context.Context, task *models.Task) error {
	snapshot := task.Snapshot()
	id, ok := repositories.CanonicalID(snapshot.ID)
	if !ok {
		return repositories.ErrInvalidID
	}
	snapshot.ID = id

	r.mu.Lock()
	r.tasks[id] = snapshot
	r.mu.Unlock()

	r.logger.Debug().
		Str("task_id", id).
		Msg("inserted task")
	return nil
}

func (r *TaskRepository) Update(_ context.Context, task *models.Task) error {
	snapshot := task.Snapshot()
	id, ok := repositories.CanonicalID(snapshot.ID)
	if !ok {
		return nil
	}
	snapshot.ID = id

	r.mu.Lock()
	_, found := r.tasks[id]
	if found {
		r.tasks[id] = snapshot
	}
	r.mu.Unlock()

	r.logger.Debug().
		Str("task_id", id).
		Bool("found", found).
		Msg("updated task")
	return nil
}

func (r *TaskRepository) Delete(_ context.Context, id string) (bool, error) {
	id, ok := repositories.CanonicalID(id)
	if !ok {
		return false, nil
	}

	r.mu.Lock()
	_, ok = r.tasks[id]
	delete(r.tasks, id)
	r.mu.Unlock()

	r.logger.Debug().
		Str("task_id", id).
		Bool("deleted", ok).
		Msg("deleted task")
	return ok, nil
}

func (r *TaskRepository) ExistsByID(_ context.Context, id string) (bool, error) {
	id, ok := repositories.CanonicalID(id)
	if !ok {
		return false, nil
	}

	r.mu.RLock()
	_, ok = r.tasks[id]
	r.mu.RUnlock()
	return ok, nil
}
