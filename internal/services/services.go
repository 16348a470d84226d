package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/repositories"
)

var (
	ErrNotFound = errors.New("entity not found")
	ErrConflict = errors.New("conflict")
)

// EntityNotFoundError reports an operation on a missing entity. It matches
// ErrNotFound with errors.Is.
type EntityNotFoundError struct {
	Entity string
	ID     string
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s with id '%s' not found", e.Entity, e.ID)
}

func (e *EntityNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports a violated uniqueness rule. It matches ErrConflict
// with errors.Is.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	return e.Message
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

type TaskService interface {
	// CreateTask validates the params and stores a new PENDING task.
	//
	// It returns *models.ValidationError if the params break a task rule.
	CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error)

	// GetTask returns *EntityNotFoundError if the task doesn't exist.
	GetTask(ctx context.Context, id string) (*models.Task, error)

	// ListTasks returns a page of tasks matching the params, newest first.
	// Page defaults to 1 and limit to 20, clamped to 100.
	ListTasks(ctx context.Context, params ListTasksParams) (repositories.Page[*models.Task], error)

	// UpdateTask applies a partial update to the task details.
	//
	// It returns *EntityNotFoundError if the task doesn't exist or
	// *models.ValidationError if the update breaks a task rule.
	UpdateTask(ctx context.Context, id string, update models.TaskDetailsUpdate) (*models.Task, error)

	// UpdateTaskStatus moves the task along the status workflow.
	//
	// It returns *EntityNotFoundError if the task doesn't exist or
	// *models.ValidationError if the transition is not allowed.
	UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error)

	// DeleteTask returns *EntityNotFoundError if the task doesn't exist.
	DeleteTask(ctx context.Context, id string) error
}

type UserService interface {
	// CreateUser registers a user.
	//
	// It returns *ConflictError if the email is taken or
	// *models.ValidationError if the params break a user rule. The email
	// check and the insert are not atomic; only backends with a unique
	// constraint close that gap.
	CreateUser(ctx context.Context, params CreateUserParams) (*models.User, error)

	// GetUser returns *EntityNotFoundError if the user doesn't exist.
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type CreateTaskParams struct {
	Title       string
	Description string
	Priority    models.TaskPriority
	AssigneeID  *string
	DueDate     *time.Time
	Tags        []string
}

type ListTasksParams struct {
	Status     models.TaskStatus
	Priority   models.TaskPriority
	AssigneeID string
	Search     string
	Page       int
	Limit      int
}

type CreateUserParams struct {
	Name  string
	Email string
	Role  models.UserRole
}

// IDFunc returns a fresh entity id.
type IDFunc func() (string, error)

// Clock returns the current time.
type Clock func() time.Time

// NewUUID generates time-ordered UUIDv7 ids.
func NewUUID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

type Option func(*options)

type options struct {
	newID IDFunc
	now   Clock
}

func WithIDFunc(f IDFunc) Option {
	return func(o *options) { o.newID = f }
}

func WithClock(c Clock) Option {
	return func(o *options) { o.now = c }
}

func newOptions(opts []Option) options {
	o := options{
		newID: NewUUID,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
