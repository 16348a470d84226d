package postgres

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/repositories"
)

const taskColumns = `id,
       title,
       description,
       status,
       priority,
       assignee_id,
       due_date,
       tags,
       created_at,
       updated_at`

type TaskRepository struct {
	logger zerolog.Logger
	db     DB
}

var _ repositories.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(logger zerolog.Logger, db DB) *TaskRepository {
	return &TaskRepository{
		logger: logger,
		db:     db,
	}
}

func (r *TaskRepository) FindByID(ctx context.Context, id string) (*models.Task, error) {
	id, ok := repositories.CanonicalID(id)
	if !ok {
		return nil, repositories.ErrNotFound
	}

	const selectTaskByIDQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE id = $1
`
	snapshot, err := scanTask(r.db.QueryRow(ctx, selectTaskByIDQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repositories.ErrNotFound
		}

		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to select task by id")
		return nil, fmt.Errorf("failed to select task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", id).
		Msg("selected task by id")

	return models.RestoreTask(snapshot), nil
}

// FindAll runs a count and a page query without a transaction between them,
// so under concurrent writes Total and Data may disagree.
func (r *TaskRepository) FindAll(
	ctx context.Context,
	filter repositories.TaskFilter,
	pagination repositories.Pagination,
) (repositories.Page[*models.Task], error) {
	where, args := taskFilterClause(filter)

	var total int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM tasks"+where, args...).Scan(&total)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to count tasks")
		return repositories.Page[*models.Task]{}, fmt.Errorf("failed to count tasks: %w", err)
	}

	offset := pagination.Offset()
	if int64(offset) >= total {
		r.logger.Debug().
			Int64("total", total).
			Int("page", pagination.Page).
			Msg("page is past the last task")
		return repositories.NewPage[*models.Task](nil, int(total), pagination), nil
	}

	n := len(args)
	selectTasksQuery := `
SELECT ` + taskColumns + `
FROM tasks` + where + `
ORDER BY created_at DESC, id DESC
LIMIT $` + strconv.Itoa(n+1) + ` OFFSET $` + strconv.Itoa(n+2)

	rows, err := r.db.Query(ctx, selectTasksQuery,
		append(args, pagination.Limit, offset)...)
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return repositories.Page[*models.Task]{}, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	tasks := make([]*models.Task, 0, pagination.Limit)
	for rows.Next() {
		snapshot, err := scanTask(rows)
		if err != nil {
			r.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return repositories.Page[*models.Task]{}, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, models.RestoreTask(snapshot))
	}

	err = rows.Err()
	if err != nil {
		r.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return repositories.Page[*models.Task]{}, fmt.Errorf("failed to iterate over tasks: %w", err)
	}
	r.logger.Debug().
		Int64("total", total).
		Int("count", len(tasks)).
		Msg("selected tasks")

	return repositories.NewPage(tasks, int(total), pagination), nil
}

// taskFilterClause translates filter into a WHERE clause (with a leading
// space, or empty) and its positional arguments.
func taskFilterClause(filter repositories.TaskFilter) (string, []any) {
	var (
		conditions []string
		args       []any
	)
	param := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if filter.Status != "" {
		conditions = append(conditions, "status = "+param(string(filter.Status)))
	}
	if filter.Priority != "" {
		conditions = append(conditions, "priority = "+param(string(filter.Priority)))
	}
	if filter.AssigneeID != "" {
		conditions = append(conditions, "assignee_id = "+param(filter.AssigneeID))
	}
	if filter.Search != "" {
		p := param(containsPattern(filter.Search))
		conditions = append(conditions, "(title ILIKE "+p+" OR description ILIKE "+p+")")
	}

	if len(conditions) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conditions, " AND "), args
}

func (r *TaskRepository) Save(ctx context.Context, task *models.Task) error {
	t := task.Snapshot()
	id, ok := repositories.CanonicalID(t.ID)
	if !ok {
		return repositories.ErrInvalidID
	}
	t.ID = id

	const insertTaskQuery = `
INSERT INTO tasks (id,
                   title,
                   description,
                   status,
                   priority,
                   assignee_id,
                   due_date,
                   tags,
                   created_at,
                   updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`
	_, err := r.db.Exec(
		ctx,
		insertTaskQuery,
		t.ID,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		t.AssigneeID,
		t.DueDate,
		nonNilTags(t.Tags),
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			r.logger.Error().
				Str("task_id", t.ID).
				Msg("task already exists")
			return repositories.ErrAlreadyExists
		}

		r.logger.Error().
			Err(err).
			Str("task_id", t.ID).
			Msg("failed to insert task")
		return fmt.Errorf("failed to insert task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", t.ID).
		Msg("inserted task")

	return nil
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	t := task.Snapshot()
	id, ok := repositories.CanonicalID(t.ID)
	if !ok {
		return nil
	}
	t.ID = id

	const updateTaskQuery = `
UPDATE tasks
SET title = $1,
    description = $2,
    status = $3,
    priority = $4,
    assignee_id = $5,
    due_date = $6,
    tags = $7,
    updated_at = $8
WHERE id = $9
`
	tag, err := r.db.Exec(
		ctx,
		updateTaskQuery,
		t.Title,
		t.Description,
		string(t.Status),
		string(t.Priority),
		t.AssigneeID,
		t.DueDate,
		nonNilTags(t.Tags),
		t.UpdatedAt,
		t.ID,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", t.ID).
			Msg("failed to update task")
		return fmt.Errorf("failed to update task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", t.ID).
		Int64("affected", tag.RowsAffected()).
		Msg("updated task")

	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id string) (bool, error) {
	id, ok := repositories.CanonicalID(id)
	if !ok {
		return false, nil
	}

	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := r.db.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	r.logger.Debug().
		Str("task_id", id).
		Int64("affected", tag.RowsAffected()).
		Msg("deleted task")

	return tag.RowsAffected() > 0, nil
}

func (r *TaskRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	id, ok := repositories.CanonicalID(id)
	if !ok {
		return false, nil
	}

	const existsTaskQuery = `
SELECT EXISTS(SELECT 1 FROM tasks WHERE id = $1)
`
	var exists bool
	err := r.db.QueryRow(ctx, existsTaskQuery, id).Scan(&exists)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to check task existence")
		return false, fmt.Errorf("failed to check task existence: %w", err)
	}
	return exists, nil
}

func scanTask(row pgx.Row) (models.TaskSnapshot, error) {
	var (
		t        models.TaskSnapshot
		status   string
		priority string
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&status,
		&priority,
		&t.AssigneeID,
		&t.DueDate,
		&t.Tags,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return models.TaskSnapshot{}, err
	}

	t.Status = models.TaskStatus(status)
	t.Priority = models.TaskPriority(priority)
	t.CreatedAt = t.CreatedAt.UTC()
	t.UpdatedAt = t.UpdatedAt.UTC()
	if t.DueDate != nil {
		d := t.DueDate.UTC()
		t.DueDate = &d
	}
	return t, nil
}

func nonNilTags(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
