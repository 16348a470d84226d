package models

import (
	"slices"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	MaxTaskTitleLength       = 255
	MaxTaskDescriptionLength = 5000
	MaxTaskTags              = 20
	MaxTaskTagLength         = 50
	MaxTaskAssigneeIDLength  = 255
)

// Task is a unit of work moving through the status workflow. Its fields are
// only reachable through accessors and the mutators below, which keep the
// entity valid.
type Task struct {
	id          string
	title       string
	description string
	status      TaskStatus
	priority    TaskPriority
	assigneeID  *string
	dueDate     *time.Time
	tags        []string
	createdAt   time.Time
	updatedAt   time.Time
}

// TaskSnapshot is the plain persisted form of a Task.
type TaskSnapshot struct {
	ID          string
	Title       string
	Description string
	Status      TaskStatus
	Priority    TaskPriority
	AssigneeID  *string
	DueDate     *time.Time
	Tags        []string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type NewTaskParams struct {
	Title       string
	Description string
	// Priority defaults to TaskPriorityMedium when empty.
	Priority   TaskPriority
	AssigneeID *string
	DueDate    *time.Time
	Tags       []string
}

// NewTask validates params and returns a PENDING task created at now.
func NewTask(id string, params NewTaskParams, now time.Time) (*Task, error) {
	createdAt := normalizeTime(now)

	title, err := normalizeTitle(params.Title)
	if err != nil {
		return nil, err
	}

	description, err := normalizeDescription(params.Description)
	if err != nil {
		return nil, err
	}

	priority := params.Priority
	if priority == "" {
		priority = TaskPriorityMedium
	}
	if !priority.Valid() {
		return nil, newFieldError("priority", "unknown priority '%s'", priority)
	}

	assigneeID, err := normalizeAssignee(params.AssigneeID)
	if err != nil {
		return nil, err
	}

	var dueDate *time.Time
	if params.DueDate != nil {
		// Compared with the exact now; createdAt is truncated for storage.
		if !params.DueDate.After(now) {
			return nil, newFieldError("dueDate", "due date must be in the future")
		}
		d := normalizeTime(*params.DueDate)
		dueDate = &d
	}

	tags, err := normalizeTags(params.Tags)
	if err != nil {
		return nil, err
	}

	return &Task{
		id:          id,
		title:       title,
		description: description,
		status:      TaskStatusPending,
		priority:    priority,
		assigneeID:  assigneeID,
		dueDate:     dueDate,
		tags:        tags,
		createdAt:   createdAt,
		updatedAt:   createdAt,
	}, nil
}

// RestoreTask rebuilds a task loaded from storage. It trusts the snapshot and
// skips validation.
func RestoreTask(s TaskSnapshot) *Task {
	tags := slices.Clone(s.Tags)
	if tags == nil {
		tags = []string{}
	}

	return &Task{
		id:          s.ID,
		title:       s.Title,
		description: s.Description,
		status:      s.Status,
		priority:    s.Priority,
		assigneeID:  clonePtr(s.AssigneeID),
		dueDate:     clonePtr(s.DueDate),
		tags:        tags,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
	}
}

func (t *Task) ID() string             { return t.id }
func (t *Task) Title() string          { return t.title }
func (t *Task) Description() string    { return t.description }
func (t *Task) Status() TaskStatus     { return t.status }
func (t *Task) Priority() TaskPriority { return t.priority }
func (t *Task) AssigneeID() *string    { return clonePtr(t.assigneeID) }
func (t *Task) DueDate() *time.Time    { return clonePtr(t.dueDate) }
func (t *Task) Tags() []string         { return slices.Clone(t.tags) }
func (t *Task) CreatedAt() time.Time   { return t.createdAt }
func (t *Task) UpdatedAt() time.Time   { return t.updatedAt }

func (t *Task) Snapshot() TaskSnapshot {
	return TaskSnapshot{
		ID:          t.id,
		Title:       t.title,
		Description: t.description,
		Status:      t.status,
		Priority:    t.priority,
		AssigneeID:  t.AssigneeID(),
		DueDate:     t.DueDate(),
		Tags:        t.Tags(),
		CreatedAt:   t.createdAt,
		UpdatedAt:   t.updatedAt,
	}
}

// TransitionTo moves the task to the given status. Pairs missing from the
// transition table, self-transitions included, leave the task unchanged and
// return a *ValidationError.
func (t *Task) TransitionTo(status TaskStatus, now time.Time) error {
	if !t.status.CanTransitionTo(status) {
		return newFieldError("status", "cannot transition from '%s' to '%s'", t.status, status)
	}

	t.status = status
	t.touch(now)
	return nil
}

// TaskDetailsUpdate carries the fields of a partial update. Unset fields are
// left alone.
type TaskDetailsUpdate struct {
	Title       Patch[string]
	Description Patch[string]
	Priority    Patch[TaskPriority]
	AssigneeID  Patch[string]
	DueDate     Patch[time.Time]
	Tags        Patch[[]string]
}

// UpdateDetails applies u after validating every field in it. On error the
// task is not modified. UpdatedAt is refreshed even if nothing changed.
func (t *Task) UpdateDetails(u TaskDetailsUpdate, now time.Time) error {
	next := *t

	if u.Title.IsClear() {
		return newFieldError("title", "title is required")
	}
	if v, ok := u.Title.Value(); ok {
		title, err := normalizeTitle(v)
		if err != nil {
			return err
		}
		next.title = title
	}

	if u.Description.IsClear() {
		next.description = ""
	}
	if v, ok := u.Description.Value(); ok {
		description, err := normalizeDescription(v)
		if err != nil {
			return err
		}
		next.description = description
	}

	if u.Priority.IsClear() {
		return newFieldError("priority", "priority cannot be cleared")
	}
	if v, ok := u.Priority.Value(); ok {
		if !v.Valid() {
			return newFieldError("priority", "unknown priority '%s'", v)
		}
		next.priority = v
	}

	if u.AssigneeID.IsClear() {
		next.assigneeID = nil
	}
	if v, ok := u.AssigneeID.Value(); ok {
		assigneeID, err := normalizeAssignee(&v)
		if err != nil {
			return err
		}
		next.assigneeID = assigneeID
	}

	if u.DueDate.IsClear() {
		next.dueDate = nil
	}
	if v, ok := u.DueDate.Value(); ok {
		d := normalizeTime(v)
		next.dueDate = &d
	}

	if u.Tags.IsClear() {
		next.tags = []string{}
	}
	if v, ok := u.Tags.Value(); ok {
		tags, err := normalizeTags(v)
		if err != nil {
			return err
		}
		next.tags = tags
	}

	*t = next
	t.touch(now)
	return nil
}

// touch refreshes updatedAt. It never moves it backwards, so a clock running
// behind the stored value keeps updatedAt >= createdAt.
func (t *Task) touch(now time.Time) {
	now = normalizeTime(now)
	if now.After(t.updatedAt) {
		t.updatedAt = now
	}
}

func normalizeTitle(raw string) (string, error) {
	title := strings.TrimSpace(raw)
	if title == "" {
		return "", newFieldError("title", "title is required")
	}
	if utf8.RuneCountInString(title) > MaxTaskTitleLength {
		return "", newFieldError("title",
			"title must be %d characters or fewer", MaxTaskTitleLength)
	}
	return title, nil
}

func normalizeDescription(raw string) (string, error) {
	description := strings.TrimSpace(raw)
	if utf8.RuneCountInString(description) > MaxTaskDescriptionLength {
		return "", newFieldError("description",
			"description must be %d characters or fewer", MaxTaskDescriptionLength)
	}
	return description, nil
}

func normalizeTags(raw []string) ([]string, error) {
	if len(raw) > MaxTaskTags {
		return nil, newFieldError("tags", "at most %d tags are allowed", MaxTaskTags)
	}

	tags := make([]string, 0, len(raw))
	for i, tag := range raw {
		tag = strings.TrimSpace(tag)
		if utf8.RuneCountInString(tag) > MaxTaskTagLength {
			return nil, newFieldError("tags",
				"tag %d must be %d characters or fewer", i, MaxTaskTagLength)
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func normalizeAssignee(raw *string) (*string, error) {
	if raw == nil {
		return nil, nil
	}
	assignee := strings.TrimSpace(*raw)
	if assignee == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(assignee) > MaxTaskAssigneeIDLength {
		return nil, newFieldError("assigneeId",
			"assignee id must be %d characters or fewer", MaxTaskAssigneeIDLength)
	}
	return &assignee, nil
}

// normalizeTime keeps timestamps in UTC at microsecond precision, which is
// what postgres timestamptz stores.
func normalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
