package repositories

import (
	"context"
	"errors"
	"math"

	"github.com/google/uuid"

	"github.com/adanyl0v/task-manager/internal/models"
)

var (
	ErrNotFound      = errors.New("record not found")
	ErrAlreadyExists = errors.New("record already exists")
	ErrInvalidID     = errors.New("record id is not a uuid")
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// CanonicalID returns id as a lower-case hyphenated UUID, the form every
// backend stores and compares. ok is false for ids that aren't UUIDs; no
// record can have one.
func CanonicalID(id string) (canonical string, ok bool) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", false
	}
	return parsed.String(), true
}

type TaskRepository interface {
	// FindByID returns ErrNotFound if there is no task with the given id.
	FindByID(ctx context.Context, id string) (*models.Task, error)

	// FindAll returns the page of tasks matching filter, newest first.
	//
	// The pagination is expected to be clamped already. A page past the
	// last one yields empty data, not an error.
	FindAll(ctx context.Context, filter TaskFilter, pagination Pagination) (Page[*models.Task], error)

	// Save inserts a new task. Saving an id twice is a caller error. It
	// returns ErrInvalidID if the task id is not a UUID.
	Save(ctx context.Context, task *models.Task) error

	// Update overwrites the stored task with the same id. It does nothing
	// if the task doesn't exist.
	Update(ctx context.Context, task *models.Task) error

	// Delete reports whether a task existed and was removed.
	Delete(ctx context.Context, id string) (bool, error)

	ExistsByID(ctx context.Context, id string) (bool, error)
}

type UserRepository interface {
	// FindByID returns ErrNotFound if there is no user with the given id.
	FindByID(ctx context.Context, id string) (*models.User, error)

	// FindByEmail matches emails case-insensitively. It returns ErrNotFound
	// if no user has the email.
	FindByEmail(ctx context.Context, email string) (*models.User, error)

	// Save inserts a new user. Backends enforcing email uniqueness return
	// ErrAlreadyExists on a duplicate. It returns ErrInvalidID if the user id
	// is not a UUID.
	Save(ctx context.Context, user *models.User) error

	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// TaskFilter narrows FindAll. Zero-valued fields are not applied; the rest
// are AND-combined.
type TaskFilter struct {
	Status     models.TaskStatus
	Priority   models.TaskPriority
	AssigneeID string
	// Search is a case-insensitive substring of the title or the description.
	Search string
}

type Pagination struct {
	Page  int
	Limit int
}

// Clamp returns p with Page >= 1 and Limit in [1, MaxPageLimit]. A zero
// limit becomes DefaultPageLimit.
func (p Pagination) Clamp() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	switch {
	case p.Limit == 0:
		p.Limit = DefaultPageLimit
	case p.Limit < 1:
		p.Limit = 1
	case p.Limit > MaxPageLimit:
		p.Limit = MaxPageLimit
	}
	return p
}

// Offset is the number of records before the page. It saturates at
// math.MaxInt for pages too far out to address.
func (p Pagination) Offset() int {
	if p.Page <= 1 || p.Limit <= 0 {
		return 0
	}
	if p.Page-1 > math.MaxInt/p.Limit {
		return math.MaxInt
	}
	return (p.Page - 1) * p.Limit
}

type Page[T any] struct {
	Data       []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
}

// NewPage fills the page metadata for data taken out of total matching
// records.
func NewPage[T any](data []T, total int, p Pagination) Page[T] {
	if data == nil {
		data = []T{}
	}

	totalPages := 0
	if p.Limit > 0 {
		totalPages = (total + p.Limit - 1) / p.Limit
	}

	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       p.Page,
		Limit:      p.Limit,
		TotalPages: totalPages,
	}
}
