// Package repotest holds the black-box suite every repositories backend must
// pass. Backend packages call RunTaskRepositoryTests and
// RunUserRepositoryTests from their own tests with a factory returning an
// empty repository.
package repotest

import (
	"context"
	"errors"
	"fmt"
	"math"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/repositories"
)

var baseTime = time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)

func RunTaskRepositoryTests(t *testing.T, newRepo func(t *testing.T) repositories.TaskRepository) {
	tests := []struct {
		name string
		run  func(t *testing.T, repo repositories.TaskRepository)
	}{
		{"FindByID_Absent", testFindByIDAbsent},
		{"Save_FindByID_RoundTrip", testSaveRoundTrip},
		{"FindAll_NoFilter", testFindAllNoFilter},
		{"FindAll_StatusWithoutMatches", testFindAllNoMatches},
		{"FindAll_Filters", testFindAllFilters},
		{"FindAll_SearchIsLiteral", testFindAllSearchLiteral},
		{"FindAll_OrderNewestFirst", testFindAllOrder},
		{"FindAll_Pagination", testFindAllPagination},
		{"Update", testUpdate},
		{"Update_Missing", testUpdateMissing},
		{"Delete", testDelete},
		{"ExistsByID", testExistsByID},
		{"StoredTaskIsIsolated", testStoredTaskIsIsolated},
		{"IDForms", testTaskIDForms},
		{"Save_InvalidID", testSaveInvalidID},
		{"LongestFields", testTaskLongestFields},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t, newRepo(t))
		})
	}
}

func RunUserRepositoryTests(t *testing.T, newRepo func(t *testing.T) repositories.UserRepository) {
	tests := []struct {
		name string
		run  func(t *testing.T, repo repositories.UserRepository)
	}{
		{"FindByID", testUserFindByID},
		{"FindByEmail_CaseInsensitive", testUserFindByEmail},
		{"ExistsByEmail", testUserExistsByEmail},
		{"IDForms", testUserIDForms},
		{"LongestEmail", testUserLongestEmail},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t, newRepo(t))
		})
	}
}

// newTask builds a valid task created minutes after baseTime.
func newTask(t *testing.T, minutes int, params models.NewTaskParams) *models.Task {
	t.Helper()

	if params.Title == "" {
		params.Title = fmt.Sprintf("task %d", minutes)
	}
	task, err := models.NewTask(uuid.NewString(), params, baseTime.Add(time.Duration(minutes)*time.Minute))
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}
	return task
}

func save(t *testing.T, repo repositories.TaskRepository, tasks ...*models.Task) {
	t.Helper()

	for _, task := range tasks {
		if err := repo.Save(context.Background(), task); err != nil {
			t.Fatalf("failed to save task: %v", err)
		}
	}
}

func findAll(
	t *testing.T,
	repo repositories.TaskRepository,
	filter repositories.TaskFilter,
	page, limit int,
) repositories.Page[*models.Task] {
	t.Helper()

	result, err := repo.FindAll(context.Background(), filter, repositories.Pagination{Page: page, Limit: limit})
	if err != nil {
		t.Fatalf("FindAll: unexpected error: %v", err)
	}
	return result
}

func ids(tasks []*models.Task) []string {
	out := make([]string, len(tasks))
	for i, task := range tasks {
		out[i] = task.ID()
	}
	return out
}

func assertSameTask(t *testing.T, want, got *models.Task) {
	t.Helper()

	w, g := want.Snapshot(), got.Snapshot()
	if w.ID != g.ID || w.Title != g.Title || w.Description != g.Description ||
		w.Status != g.Status || w.Priority != g.Priority {
		t.Fatalf("task differs:\nwant %+v\n got %+v", w, g)
	}
	if !equalPtr(w.AssigneeID, g.AssigneeID, func(a, b string) bool { return a == b }) {
		t.Fatalf("assignee differs: want %v, got %v", w.AssigneeID, g.AssigneeID)
	}
	if !equalPtr(w.DueDate, g.DueDate, time.Time.Equal) {
		t.Fatalf("due date differs: want %v, got %v", w.DueDate, g.DueDate)
	}
	if !slices.Equal(w.Tags, g.Tags) {
		t.Fatalf("tags differ: want %v, got %v", w.Tags, g.Tags)
	}
	if !w.CreatedAt.Equal(g.CreatedAt) || !w.UpdatedAt.Equal(g.UpdatedAt) {
		t.Fatalf("timestamps differ: want %v/%v, got %v/%v",
			w.CreatedAt, w.UpdatedAt, g.CreatedAt, g.UpdatedAt)
	}
}

func equalPtr[T any](a, b *T, eq func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return eq(*a, *b)
}

func ptr[T any](v T) *T { return &v }

func testFindByIDAbsent(t *testing.T, repo repositories.TaskRepository) {
	ctx := context.Background()

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		task, err := repo.FindByID(ctx, id)
		if !errors.Is(err, repositories.ErrNotFound) {
			t.Fatalf("FindByID(%q): expected ErrNotFound, got %v", id, err)
		}
		if task != nil {
			t.Fatalf("FindByID(%q): expected nil task", id)
		}
	}
}

func testSaveRoundTrip(t *testing.T, repo repositories.TaskRepository) {
	task := newTask(t, 0, models.NewTaskParams{
		Title:       "Write report",
		Description: "quarterly numbers",
		Priority:    models.TaskPriorityHigh,
		AssigneeID:  ptr(uuid.NewString()),
		DueDate:     ptr(baseTime.Add(48*time.Hour + 123456789)),
		Tags:        []string{"finance", "q1"},
	})
	save(t, repo, task)

	got, err := repo.FindByID(context.Background(), task.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSameTask(t, task, got)

	bare := newTask(t, 1, models.NewTaskParams{})
	save(t, repo, bare)

	got, err = repo.FindByID(context.Background(), bare.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSameTask(t, bare, got)
	if got.Tags() == nil {
		t.Fatalf("tags must load as an empty slice")
	}
}

func testFindAllNoFilter(t *testing.T, repo repositories.TaskRepository) {
	save(t, repo, newTask(t, 0, models.NewTaskParams{}), newTask(t, 1, models.NewTaskParams{}))

	result := findAll(t, repo, repositories.TaskFilter{}, 1, repositories.DefaultPageLimit)
	if result.Total != 2 || len(result.Data) != 2 {
		t.Fatalf("got total %d and %d tasks, want 2 and 2", result.Total, len(result.Data))
	}
	if result.Page != 1 || result.Limit != repositories.DefaultPageLimit || result.TotalPages != 1 {
		t.Fatalf("unexpected page metadata: %+v", result)
	}
}

func testFindAllNoMatches(t *testing.T, repo repositories.TaskRepository) {
	save(t, repo, newTask(t, 0, models.NewTaskParams{}), newTask(t, 1, models.NewTaskParams{}))

	result := findAll(t, repo, repositories.TaskFilter{Status: models.TaskStatusCompleted}, 1, 10)
	if result.Total != 0 || len(result.Data) != 0 || result.TotalPages != 0 {
		t.Fatalf("expected no tasks, got %+v", result)
	}
	if result.Data == nil {
		t.Fatalf("data must be an empty slice, not nil")
	}
}

func testFindAllFilters(t *testing.T, repo repositories.TaskRepository) {
	alice, bob := uuid.NewString(), uuid.NewString()

	report := newTask(t, 0, models.NewTaskParams{
		Title:      "Quarterly REPORT",
		Priority:   models.TaskPriorityHigh,
		AssigneeID: &alice,
	})
	review := newTask(t, 1, models.NewTaskParams{
		Title:       "Code review",
		Description: "check the report generator",
		Priority:    models.TaskPriorityLow,
		AssigneeID:  &bob,
	})
	deploy := newTask(t, 2, models.NewTaskParams{
		Title:      "Deploy",
		Priority:   models.TaskPriorityHigh,
		AssigneeID: &alice,
	})
	if err := deploy.TransitionTo(models.TaskStatusInProgress, baseTime.Add(time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	save(t, repo, report, review, deploy)

	cases := []struct {
		name   string
		filter repositories.TaskFilter
		want   []string
	}{
		{"status", repositories.TaskFilter{Status: models.TaskStatusInProgress}, []string{deploy.ID()}},
		{"priority", repositories.TaskFilter{Priority: models.TaskPriorityHigh}, []string{deploy.ID(), report.ID()}},
		{"assignee", repositories.TaskFilter{AssigneeID: bob}, []string{review.ID()}},
		{"search title or description", repositories.TaskFilter{Search: "rEpOrT"}, []string{review.ID(), report.ID()}},
		{"search without match", repositories.TaskFilter{Search: "nothing"}, []string{}},
		{
			"combined",
			repositories.TaskFilter{Priority: models.TaskPriorityHigh, AssigneeID: alice, Status: models.TaskStatusPending},
			[]string{report.ID()},
		},
	}

	for _, c := range cases {
		result := findAll(t, repo, c.filter, 1, 10)
		if got := ids(result.Data); !slices.Equal(got, c.want) {
			t.Errorf("%s: got %v, want %v", c.name, got, c.want)
		}
		if result.Total != len(c.want) {
			t.Errorf("%s: total %d, want %d", c.name, result.Total, len(c.want))
		}
	}
}

func testFindAllSearchLiteral(t *testing.T, repo repositories.TaskRepository) {
	percent := newTask(t, 0, models.NewTaskParams{Title: "discount 50% off"})
	underscore := newTask(t, 1, models.NewTaskParams{Title: "rename snake_case field"})
	plain := newTask(t, 2, models.NewTaskParams{Title: "nothing special 50 off"})
	save(t, repo, percent, underscore, plain)

	if got := ids(findAll(t, repo, repositories.TaskFilter{Search: "50%"}, 1, 10).Data); !slices.Equal(got, []string{percent.ID()}) {
		t.Errorf("search %q: got %v", "50%", got)
	}
	if got := ids(findAll(t, repo, repositories.TaskFilter{Search: "e_c"}, 1, 10).Data); !slices.Equal(got, []string{underscore.ID()}) {
		t.Errorf("search %q: got %v", "e_c", got)
	}
}

func testFindAllOrder(t *testing.T, repo repositories.TaskRepository) {
	oldest := newTask(t, 0, models.NewTaskParams{})
	middle := newTask(t, 5, models.NewTaskParams{})
	newest := newTask(t, 10, models.NewTaskParams{})
	save(t, repo, middle, oldest, newest)

	got := ids(findAll(t, repo, repositories.TaskFilter{}, 1, 10).Data)
	want := []string{newest.ID(), middle.ID(), oldest.ID()}
	if !slices.Equal(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}

	// Ties on createdAt are broken by id, descending.
	a := newTask(t, 20, models.NewTaskParams{})
	b := newTask(t, 20, models.NewTaskParams{})
	save(t, repo, a, b)

	tied := []string{a.ID(), b.ID()}
	slices.Sort(tied)
	slices.Reverse(tied)

	first := ids(findAll(t, repo, repositories.TaskFilter{}, 1, 2).Data)
	if !slices.Equal(first, tied) {
		t.Fatalf("tie order: got %v, want %v", first, tied)
	}
}

func testFindAllPagination(t *testing.T, repo repositories.TaskRepository) {
	for i := 0; i < 25; i++ {
		save(t, repo, newTask(t, i, models.NewTaskParams{}))
	}

	third := findAll(t, repo, repositories.TaskFilter{}, 3, 10)
	if len(third.Data) != 5 || third.Total != 25 || third.TotalPages != 3 {
		t.Fatalf("page 3: got %d tasks, total %d, %d pages", len(third.Data), third.Total, third.TotalPages)
	}
	// Oldest five, newest first.
	if third.Data[0].Title() != "task 4" || third.Data[4].Title() != "task 0" {
		t.Fatalf("page 3: unexpected tasks %q..%q", third.Data[0].Title(), third.Data[4].Title())
	}

	fourth := findAll(t, repo, repositories.TaskFilter{}, 4, 10)
	if len(fourth.Data) != 0 || fourth.Total != 25 || fourth.Page != 4 {
		t.Fatalf("page 4: got %d tasks, total %d, page %d", len(fourth.Data), fourth.Total, fourth.Page)
	}

	for _, page := range []int{1 << 62, math.MaxInt} {
		far := findAll(t, repo, repositories.TaskFilter{}, page, 2)
		if len(far.Data) != 0 || far.Total != 25 || far.Page != page {
			t.Fatalf("page %d: got %d tasks, total %d, page %d", page, len(far.Data), far.Total, far.Page)
		}
	}

	seen := make(map[string]bool)
	for page := 1; page <= 3; page++ {
		for _, id := range ids(findAll(t, repo, repositories.TaskFilter{}, page, 10).Data) {
			if seen[id] {
				t.Fatalf("task %s returned on more than one page", id)
			}
			seen[id] = true
		}
	}
	if len(seen) != 25 {
		t.Fatalf("pages covered %d tasks, want 25", len(seen))
	}
}

func testUpdate(t *testing.T, repo repositories.TaskRepository) {
	ctx := context.Background()
	task := newTask(t, 0, models.NewTaskParams{AssigneeID: ptr(uuid.NewString())})
	save(t, repo, task)

	err := task.UpdateDetails(models.TaskDetailsUpdate{
		Title:      models.Set("renamed"),
		AssigneeID: models.Clear[string](),
		Tags:       models.Set([]string{"x", "y"}),
	}, baseTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := task.TransitionTo(models.TaskStatusInProgress, baseTime.Add(2*time.Hour)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.FindByID(ctx, task.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSameTask(t, task, got)
}

func testUpdateMissing(t *testing.T, repo repositories.TaskRepository) {
	ctx := context.Background()
	task := newTask(t, 0, models.NewTaskParams{})

	if err := repo.Update(ctx, task); err != nil {
		t.Fatalf("update of a missing task must not fail: %v", err)
	}

	exists, err := repo.ExistsByID(ctx, task.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if exists {
		t.Fatalf("update must not insert a missing task")
	}
}

func testDelete(t *testing.T, repo repositories.TaskRepository) {
	ctx := context.Background()
	task := newTask(t, 0, models.NewTaskParams{})
	other := newTask(t, 1, models.NewTaskParams{})
	save(t, repo, task, other)

	deleted, err := repo.Delete(ctx, task.ID())
	if err != nil || !deleted {
		t.Fatalf("first delete: got %v, %v", deleted, err)
	}

	if _, err := repo.FindByID(ctx, task.ID()); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	deleted, err = repo.Delete(ctx, task.ID())
	if err != nil || deleted {
		t.Fatalf("second delete: got %v, %v", deleted, err)
	}

	deleted, err = repo.Delete(ctx, "not-a-uuid")
	if err != nil || deleted {
		t.Fatalf("delete of an invalid id: got %v, %v", deleted, err)
	}

	if result := findAll(t, repo, repositories.TaskFilter{}, 1, 10); result.Total != 1 {
		t.Fatalf("expected the other task to remain, total %d", result.Total)
	}
}

func testExistsByID(t *testing.T, repo repositories.TaskRepository) {
	ctx := context.Background()
	task := newTask(t, 0, models.NewTaskParams{})
	save(t, repo, task)

	for id, want := range map[string]bool{
		task.ID():        true,
		uuid.NewString(): false,
		"not-a-uuid":     false,
	} {
		got, err := repo.ExistsByID(ctx, id)
		if err != nil {
			t.Fatalf("ExistsByID(%q): unexpected error: %v", id, err)
		}
		if got != want {
			t.Errorf("ExistsByID(%q) = %v, want %v", id, got, want)
		}
	}
}

func testStoredTaskIsIsolated(t *testing.T, repo repositories.TaskRepository) {
	ctx := context.Background()
	task := newTask(t, 0, models.NewTaskParams{Title: "stored"})
	save(t, repo, task)

	// Mutating the caller's copy must not reach storage until Update.
	err := task.UpdateDetails(models.TaskDetailsUpdate{Title: models.Set("local only")}, baseTime.Add(time.Hour))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.FindByID(ctx, task.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Title() != "stored" {
		t.Fatalf("stored task changed without Update: %q", got.Title())
	}
}

func newUser(t *testing.T, name, email string) *models.User {
	t.Helper()

	user, err := models.NewUser(uuid.NewString(), models.NewUserParams{Name: name, Email: email}, baseTime)
	if err != nil {
		t.Fatalf("failed to build user: %v", err)
	}
	return user
}

func testUserFindByID(t *testing.T, repo repositories.UserRepository) {
	ctx := context.Background()
	user := newUser(t, "Dave", "dave@example.com")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.FindByID(ctx, user.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Snapshot().Name != "Dave" || got.Email() != "dave@example.com" ||
		got.Role() != models.UserRoleMember || !got.CreatedAt().Equal(user.CreatedAt()) {
		t.Fatalf("unexpected user: %+v", got.Snapshot())
	}

	for _, id := range []string{uuid.NewString(), "not-a-uuid"} {
		if _, err := repo.FindByID(ctx, id); !errors.Is(err, repositories.ErrNotFound) {
			t.Fatalf("FindByID(%q): expected ErrNotFound, got %v", id, err)
		}
	}
}

func testUserFindByEmail(t *testing.T, repo repositories.UserRepository) {
	ctx := context.Background()
	user := newUser(t, "Carol", "Carol@Example.COM")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, email := range []string{"carol@example.com", "CAROL@EXAMPLE.COM", " Carol@example.com "} {
		got, err := repo.FindByEmail(ctx, email)
		if err != nil {
			t.Fatalf("FindByEmail(%q): unexpected error: %v", email, err)
		}
		if got.ID() != user.ID() || got.Email() != "carol@example.com" {
			t.Fatalf("FindByEmail(%q): got %+v", email, got.Snapshot())
		}
	}

	if _, err := repo.FindByEmail(ctx, "nobody@example.com"); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func testUserExistsByEmail(t *testing.T, repo repositories.UserRepository) {
	ctx := context.Background()
	if err := repo.Save(ctx, newUser(t, "Erin", "erin@example.com")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for email, want := range map[string]bool{
		"erin@example.com":  true,
		"ERIN@example.COM":  true,
		"erin@example.org":  false,
		"frank@example.com": false,
	} {
		got, err := repo.ExistsByEmail(ctx, email)
		if err != nil {
			t.Fatalf("ExistsByEmail(%q): unexpected error: %v", email, err)
		}
		if got != want {
			t.Errorf("ExistsByEmail(%q) = %v, want %v", email, got, want)
		}
	}
}

// idForms lists spellings of id that uuid.Parse accepts besides the
// canonical one.
func idForms(id string) []string {
	return []string{
		strings.ToUpper(id),
		"{" + id + "}",
		"urn:uuid:" + id,
	}
}

func testTaskIDForms(t *testing.T, repo repositories.TaskRepository) {
	ctx := context.Background()
	task := newTask(t, 0, models.NewTaskParams{})
	save(t, repo, task)

	for _, id := range idForms(task.ID()) {
		got, err := repo.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("FindByID(%q): unexpected error: %v", id, err)
		}
		if got.ID() != task.ID() {
			t.Fatalf("FindByID(%q): got id %q, want %q", id, got.ID(), task.ID())
		}

		exists, err := repo.ExistsByID(ctx, id)
		if err != nil || !exists {
			t.Fatalf("ExistsByID(%q) = %v, %v", id, exists, err)
		}
	}

	// Saved under an upper-case id, read back canonical.
	snapshot := newTask(t, 1, models.NewTaskParams{}).Snapshot()
	snapshot.ID = strings.ToUpper(snapshot.ID)
	upper := models.RestoreTask(snapshot)
	save(t, repo, upper)
	got, err := repo.FindByID(ctx, strings.ToLower(upper.ID()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != strings.ToLower(upper.ID()) {
		t.Fatalf("got id %q, want the canonical form", got.ID())
	}

	deleted, err := repo.Delete(ctx, strings.ToUpper(task.ID()))
	if err != nil || !deleted {
		t.Fatalf("Delete(upper) = %v, %v", deleted, err)
	}
	if _, err := repo.FindByID(ctx, task.ID()); !errors.Is(err, repositories.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func testSaveInvalidID(t *testing.T, repo repositories.TaskRepository) {
	task, err := models.NewTask("task-1", models.NewTaskParams{Title: "t"}, baseTime)
	if err != nil {
		t.Fatalf("failed to build task: %v", err)
	}

	err = repo.Save(context.Background(), task)
	if !errors.Is(err, repositories.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func testTaskLongestFields(t *testing.T, repo repositories.TaskRepository) {
	ctx := context.Background()
	task := newTask(t, 0, models.NewTaskParams{
		Title:      strings.Repeat("t", models.MaxTaskTitleLength),
		AssigneeID: ptr(strings.Repeat("a", models.MaxTaskAssigneeIDLength)),
	})
	save(t, repo, task)

	got, err := repo.FindByID(ctx, task.ID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertSameTask(t, task, got)
}

func testUserIDForms(t *testing.T, repo repositories.UserRepository) {
	ctx := context.Background()
	user := newUser(t, "Grace", "grace@example.com")
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, id := range idForms(user.ID()) {
		got, err := repo.FindByID(ctx, id)
		if err != nil {
			t.Fatalf("FindByID(%q): unexpected error: %v", id, err)
		}
		if got.ID() != user.ID() {
			t.Fatalf("FindByID(%q): got id %q, want %q", id, got.ID(), user.ID())
		}
	}

	invalid, err := models.NewUser("user-1", models.NewUserParams{Name: "n", Email: "n@example.com"}, baseTime)
	if err != nil {
		t.Fatalf("failed to build user: %v", err)
	}
	if err := repo.Save(ctx, invalid); !errors.Is(err, repositories.ErrInvalidID) {
		t.Fatalf("expected ErrInvalidID, got %v", err)
	}
}

func testUserLongestEmail(t *testing.T, repo repositories.UserRepository) {
	ctx := context.Background()
	const domain = "@example.com"
	email := strings.Repeat("h", models.MaxUserEmailLength-len(domain)) + domain
	user := newUser(t, strings.Repeat("H", models.MaxUserNameLength), email)
	if err := repo.Save(ctx, user); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.FindByEmail(ctx, email)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != user.ID() || got.Email() != email {
		t.Fatalf("unexpected user: %+v", got.Snapshot())
	}
}
