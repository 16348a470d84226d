package models

import (
	"encoding/json"
	"testing"
	"time"
)

func TestPatch_UnmarshalJSON(t *testing.T) {
	var body struct {
		Title      Patch[string]    `json:"title"`
		AssigneeID Patch[string]    `json:"assigneeId"`
		DueDate    Patch[time.Time] `json:"dueDate"`
	}

	err := json.Unmarshal([]byte(`{"assigneeId": null, "dueDate": "2030-05-01T12:00:00Z"}`), &body)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !body.Title.IsUnset() {
		t.Fatalf("expected absent title to be unset")
	}
	if !body.AssigneeID.IsClear() {
		t.Fatalf("expected null assignee to be clear")
	}
	due, ok := body.DueDate.Value()
	if !ok {
		t.Fatalf("expected due date to be set")
	}
	if !due.Equal(time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected due date: %v", due)
	}
}

func TestPatch_UnmarshalJSON_TypeMismatch(t *testing.T) {
	var p Patch[string]
	if err := json.Unmarshal([]byte(`42`), &p); err == nil {
		t.Fatalf("expected error")
	}
	if !p.IsUnset() {
		t.Fatalf("expected patch to stay unset on error")
	}
}

func TestPatch_Constructors(t *testing.T) {
	if !Unset[int]().IsUnset() || !Clear[int]().IsClear() || !Set(1).IsSet() {
		t.Fatalf("constructors produced the wrong state")
	}
	if v, ok := Set("x").Value(); !ok || v != "x" {
		t.Fatalf("got %q, %v", v, ok)
	}
	if _, ok := Clear[string]().Value(); ok {
		t.Fatalf("clear patch must not report a value")
	}
}
