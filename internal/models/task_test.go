package models

import (
	"errors"
	"slices"
	"strings"
	"testing"
	"time"
)

func ptr[T any](v T) *T { return &v }

func TestNewTask_Title(t *testing.T) {
	now := time.Now()

	for _, title := range []string{"", "   ", strings.Repeat("a", 256)} {
		_, err := NewTask("id", NewTaskParams{Title: title}, now)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("title %q: expected *ValidationError, got %v", title, err)
		}
		if len(verr.Details["title"]) == 0 {
			t.Fatalf("title %q: expected title details, got %v", title, verr.Details)
		}
	}

	task, err := NewTask("id", NewTaskParams{Title: "  valid  "}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title() != "valid" {
		t.Fatalf("got %q, want %q", task.Title(), "valid")
	}

	_, err = NewTask("id", NewTaskParams{Title: strings.Repeat("é", 255)}, now)
	if err != nil {
		t.Fatalf("255 runes must be accepted: %v", err)
	}
}

func TestNewTask_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 8, 0, 0, 123456789, time.FixedZone("X", 3600))

	task, err := NewTask("id-1", NewTaskParams{Title: "Write docs"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if task.ID() != "id-1" {
		t.Errorf("id: got %q", task.ID())
	}
	if task.Description() != "" {
		t.Errorf("description: got %q", task.Description())
	}
	if task.Status() != TaskStatusPending {
		t.Errorf("status: got %s", task.Status())
	}
	if task.Priority() != TaskPriorityMedium {
		t.Errorf("priority: got %s", task.Priority())
	}
	if task.AssigneeID() != nil || task.DueDate() != nil {
		t.Errorf("expected no assignee and no due date")
	}
	if tags := task.Tags(); tags == nil || len(tags) != 0 {
		t.Errorf("tags: got %#v", tags)
	}

	want := time.Date(2026, 3, 1, 7, 0, 0, 123456000, time.UTC)
	if !task.CreatedAt().Equal(want) || task.CreatedAt().Location() != time.UTC {
		t.Errorf("createdAt: got %v, want %v", task.CreatedAt(), want)
	}
	if !task.UpdatedAt().Equal(task.CreatedAt()) {
		t.Errorf("updatedAt must equal createdAt on creation")
	}
}

func TestNewTask_TrimsAndValidatesFields(t *testing.T) {
	now := time.Now()

	task, err := NewTask("id", NewTaskParams{
		Title:       "t",
		Description: "  some text \n",
		Priority:    TaskPriorityUrgent,
		AssigneeID:  ptr("  user-1 "),
		Tags:        []string{" a ", "b"},
	}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Description() != "some text" {
		t.Errorf("description: got %q", task.Description())
	}
	if task.Priority() != TaskPriorityUrgent {
		t.Errorf("priority: got %s", task.Priority())
	}
	if a := task.AssigneeID(); a == nil || *a != "user-1" {
		t.Errorf("assignee: got %v", a)
	}
	if !slices.Equal(task.Tags(), []string{"a", "b"}) {
		t.Errorf("tags: got %v", task.Tags())
	}

	cases := map[string]NewTaskParams{
		"long description": {Title: "t", Description: strings.Repeat("d", 5001)},
		"unknown priority": {Title: "t", Priority: "CRITICAL"},
		"too many tags":    {Title: "t", Tags: make([]string, 21)},
		"long tag":         {Title: "t", Tags: []string{strings.Repeat("x", 51)}},
		"long assignee":    {Title: "t", AssigneeID: ptr(strings.Repeat("u", 256))},
	}
	for name, params := range cases {
		_, err := NewTask("id", params, now)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *ValidationError, got %v", name, err)
		}
	}
}

func TestNewTask_DueDate(t *testing.T) {
	now := time.Now()

	_, err := NewTask("id", NewTaskParams{Title: "t", DueDate: ptr(now.Add(-time.Hour))}, now)
	if err == nil {
		t.Fatalf("expected error for a past due date")
	}

	_, err = NewTask("id", NewTaskParams{Title: "t", DueDate: ptr(now.Truncate(time.Microsecond))}, now)
	if err == nil {
		t.Fatalf("expected error for a due date equal to now")
	}

	// Stored timestamps are truncated to microseconds; the check is not.
	exact := time.Date(2026, 3, 1, 10, 0, 0, 500, time.UTC)
	_, err = NewTask("id", NewTaskParams{Title: "t", DueDate: ptr(exact.Add(-100 * time.Nanosecond))}, exact)
	if err == nil {
		t.Fatalf("expected error for a due date 100ns before now")
	}

	due := now.Add(24 * time.Hour)
	task, err := NewTask("id", NewTaskParams{Title: "t", DueDate: &due}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d := task.DueDate(); d == nil || !d.Equal(due.Truncate(time.Microsecond)) {
		t.Fatalf("due date: got %v", d)
	}
}

func TestTask_UpdateDetails(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	task, err := NewTask("id", NewTaskParams{
		Title:       "original",
		Description: "desc",
		AssigneeID:  ptr("user-1"),
		Tags:        []string{"x"},
	}, created)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Omitted fields stay, null clears the assignee.
	err = task.UpdateDetails(TaskDetailsUpdate{
		Title:      Set(" renamed "),
		AssigneeID: Clear[string](),
	}, created.Add(time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.Title() != "renamed" {
		t.Errorf("title: got %q", task.Title())
	}
	if task.Description() != "desc" {
		t.Errorf("description changed: %q", task.Description())
	}
	if task.AssigneeID() != nil {
		t.Errorf("assignee not cleared: %v", *task.AssigneeID())
	}
	if !slices.Equal(task.Tags(), []string{"x"}) {
		t.Errorf("tags changed: %v", task.Tags())
	}
	if !task.UpdatedAt().Equal(created.Add(time.Second)) {
		t.Errorf("updatedAt: got %v", task.UpdatedAt())
	}

	// An empty update still touches updatedAt.
	err = task.UpdateDetails(TaskDetailsUpdate{}, created.Add(2*time.Second))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !task.UpdatedAt().Equal(created.Add(2 * time.Second)) {
		t.Errorf("updatedAt not advanced on empty update")
	}

	// A clock running behind never moves updatedAt backwards.
	err = task.UpdateDetails(TaskDetailsUpdate{Description: Set("new")}, created)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.UpdatedAt().Before(created.Add(2 * time.Second)) {
		t.Errorf("updatedAt decreased: %v", task.UpdatedAt())
	}
}

func TestTask_UpdateDetails_ValidationIsAtomic(t *testing.T) {
	now := time.Now()
	task, err := NewTask("id", NewTaskParams{Title: "keep"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	before := task.Snapshot()

	updates := map[string]TaskDetailsUpdate{
		"blank title":      {Description: Set("changed"), Title: Set("   ")},
		"cleared title":    {Title: Clear[string]()},
		"long description": {Description: Set(strings.Repeat("d", 5001))},
		"cleared priority": {Priority: Clear[TaskPriority]()},
		"bad priority":     {Priority: Set(TaskPriority("NOPE"))},
		"too many tags":    {Description: Set("changed"), Tags: Set(make([]string, 21))},
	}
	for name, u := range updates {
		err := task.UpdateDetails(u, now.Add(time.Hour))
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Errorf("%s: expected *ValidationError, got %v", name, err)
		}
		after := task.Snapshot()
		if after.Title != before.Title || after.Description != before.Description ||
			!after.UpdatedAt.Equal(before.UpdatedAt) {
			t.Errorf("%s: task modified on failed update", name)
		}
	}
}

func TestTask_UpdateDetails_ClearAndSetDueDate(t *testing.T) {
	now := time.Now()
	task, err := NewTask("id", NewTaskParams{Title: "t", DueDate: ptr(now.Add(time.Hour)), Tags: []string{"a"}}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = task.UpdateDetails(TaskDetailsUpdate{DueDate: Clear[time.Time](), Tags: Clear[[]string]()}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if task.DueDate() != nil || len(task.Tags()) != 0 {
		t.Fatalf("expected due date and tags cleared")
	}

	past := now.Add(-time.Hour)
	err = task.UpdateDetails(TaskDetailsUpdate{DueDate: Set(past)}, now)
	if err != nil {
		t.Fatalf("past due dates are accepted on update: %v", err)
	}
	if d := task.DueDate(); d == nil || !d.Equal(past.Truncate(time.Microsecond)) {
		t.Fatalf("due date: got %v", d)
	}
}

func TestTask_AccessorsReturnCopies(t *testing.T) {
	task, err := NewTask("id", NewTaskParams{Title: "t", Tags: []string{"a"}, AssigneeID: ptr("u")}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tags := task.Tags()
	tags[0] = "mutated"
	*task.AssigneeID() = "mutated"

	if task.Tags()[0] != "a" || *task.AssigneeID() != "u" {
		t.Fatalf("task state leaked through accessors")
	}
}

func TestRestoreTask_RoundTrip(t *testing.T) {
	task, err := NewTask("id", NewTaskParams{Title: "t", Tags: []string{"a"}}, time.Now())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := task.TransitionTo(TaskStatusInProgress, time.Now()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	restored := RestoreTask(task.Snapshot())
	if restored.Status() != TaskStatusInProgress || restored.Title() != "t" ||
		!restored.UpdatedAt().Equal(task.UpdatedAt()) {
		t.Fatalf("restored task differs: %+v", restored.Snapshot())
	}

	empty := RestoreTask(TaskSnapshot{ID: "x"})
	if empty.Tags() == nil {
		t.Fatalf("restored tags must never be nil")
	}
}

func TestTask_UpdateDetails_AssigneeLength(t *testing.T) {
	now := time.Now()
	task, err := NewTask("id", NewTaskParams{Title: "t"}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err = task.UpdateDetails(TaskDetailsUpdate{
		AssigneeID: Set(strings.Repeat("u", MaxTaskAssigneeIDLength+1)),
	}, now)
	var verr *ValidationError
	if !errors.As(err, &verr) || len(verr.Details["assigneeId"]) == 0 {
		t.Fatalf("expected assigneeId *ValidationError, got %v", err)
	}
	if task.AssigneeID() != nil {
		t.Fatalf("assignee changed on error: %v", *task.AssigneeID())
	}

	longest := strings.Repeat("u", MaxTaskAssigneeIDLength)
	err = task.UpdateDetails(TaskDetailsUpdate{AssigneeID: Set(longest)}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a := task.AssigneeID(); a == nil || *a != longest {
		t.Fatalf("assignee: got %v", a)
	}
}
