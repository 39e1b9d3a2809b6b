package models

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/thenoetrevino/taskdeck/internal/types"
)

// ============================================================================
// TaskStatus Tests
// ============================================================================

func TestTaskStatus_Toggled(t *testing.T) {
	tests := []struct {
		in   TaskStatus
		want TaskStatus
	}{
		{StatusDone, StatusNotDone},
		{StatusNotDone, StatusDone},
		{StatusOverdue, StatusDone},
	}
	for _, tt := range tests {
		if got := tt.in.Toggled(); got != tt.want {
			t.Errorf("%s.Toggled() = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestParseTaskStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    TaskStatus
		wantErr bool
	}{
		{"Done", StatusDone, false},
		{"not-done", StatusNotDone, false},
		{"Not_Done", StatusNotDone, false},
		{" overdue ", StatusOverdue, false},
		{"finished", "", true},
	}
	for _, tt := range tests {
		got, err := ParseTaskStatus(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("ParseTaskStatus(%q) error = %v, want ErrInvalidStatus", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("ParseTaskStatus(%q) = %s, %v; want %s", tt.in, got, err, tt.want)
		}
	}
}

// ============================================================================
// Task ordering Tests
// ============================================================================

func TestSortTasksByID(t *testing.T) {
	tasks := []Task{{ID: 30}, {ID: 1}, {ID: 1_700_000_000_000}, {ID: 7}}
	SortTasksByID(tasks)

	if !TasksSortedByID(tasks) {
		t.Fatalf("tasks not sorted: %+v", tasks)
	}
	if tasks[len(tasks)-1].ID != 1_700_000_000_000 {
		t.Errorf("provisional id should sort last, got %d", tasks[len(tasks)-1].ID)
	}
}

func TestFindTask(t *testing.T) {
	tasks := []Task{{ID: 1}, {ID: 2}}
	if FindTask(tasks, 2) != 1 {
		t.Error("expected index 1 for id 2")
	}
	if FindTask(tasks, types.TaskID(9)) != -1 {
		t.Error("expected -1 for unknown id")
	}
}

// ============================================================================
// Date Tests
// ============================================================================

func TestDate_JSON(t *testing.T) {
	var task Task
	body := `{"taskId":1,"name":"a","description":"","status":"Done","creationDate":"2024-03-01T10:30:00","dueDate":null}`
	if err := json.Unmarshal([]byte(body), &task); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !task.CreationDate.Equal(NewDate(2024, time.March, 1)) {
		t.Errorf("creationDate = %s", task.CreationDate)
	}
	if !task.DueDate.IsZero() {
		t.Errorf("dueDate should be zero, got %s", task.DueDate)
	}

	out, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(out), `"creationDate":"2024-03-01"`) {
		t.Errorf("unexpected encoding: %s", out)
	}
	if !strings.Contains(string(out), `"dueDate":null`) {
		t.Errorf("zero date should encode as null: %s", out)
	}
}

func TestParseDate_Invalid(t *testing.T) {
	if _, err := ParseDate("01/03/2024"); err == nil {
		t.Error("expected error for non-ISO date")
	}
}

// ============================================================================
// Statistics and filter Tests
// ============================================================================

func TestComputeStatistics(t *testing.T) {
	tasks := []Task{
		{ID: 1, Status: StatusDone},
		{ID: 2, Status: StatusNotDone},
		{ID: 3, Status: StatusOverdue},
	}
	stats := ComputeStatistics(tasks)
	if stats.TotalTasks != 3 || stats.CompletedTasks != 1 || stats.CompletionPercentage != 33 {
		t.Errorf("unexpected stats: %+v", stats)
	}

	tasks = append(tasks, Task{ID: 4, Status: StatusDone})
	if got := ComputeStatistics(tasks).CompletionPercentage; got != 50 {
		t.Errorf("percentage = %d, want 50", got)
	}

	if got := ComputeStatistics(nil); got != (BoardStatistics{}) {
		t.Errorf("empty board stats = %+v", got)
	}
}

func TestComputeStatistics_RoundsHalfUp(t *testing.T) {
	tasks := []Task{{Status: StatusDone}, {Status: StatusDone}, {Status: StatusNotDone}}
	if got := ComputeStatistics(tasks).CompletionPercentage; got != 67 {
		t.Errorf("percentage = %d, want 67", got)
	}
}

func TestFilterTasks(t *testing.T) {
	tasks := []Task{
		{ID: 1, Description: "Write the Report"},
		{ID: 2, Description: "buy milk"},
	}
	got := FilterTasks(tasks, "report")
	if len(got) != 1 || got[0].ID != 1 {
		t.Errorf("filter result = %+v", got)
	}
	if len(FilterTasks(tasks, "")) != 2 {
		t.Error("empty query should keep all tasks")
	}
}

// ============================================================================
// Client and clone Tests
// ============================================================================

func TestClient_WithField(t *testing.T) {
	c := Client{ID: 1, Name: "Ann", Email: "a@x.io"}
	field, err := ParseClientField("phone")
	if err != nil {
		t.Fatal(err)
	}
	updated := c.With(field, "555")
	if updated.PhoneNumber != "555" || c.PhoneNumber != "" {
		t.Errorf("With should copy: orig=%+v updated=%+v", c, updated)
	}
	if updated.Get(FieldEmail) != "a@x.io" {
		t.Error("Get(email) mismatch")
	}
	if _, err := ParseClientField("password"); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}
}

func TestDashboard_CloneIsDeep(t *testing.T) {
	d := Dashboard{ID: 1, Boards: []Board{{ID: 2, Tasks: []Task{{ID: 3, Name: "x"}}}}}
	c := d.Clone()
	c.Boards[0].Tasks[0].Name = "changed"
	if d.Boards[0].Tasks[0].Name != "x" {
		t.Error("clone shares task storage with original")
	}
}

// ============================================================================
// Advice Tests
// ============================================================================

func TestAdvice_Validate(t *testing.T) {
	a := Advice{ConfidenceScore: 0.8, PriorityRecommendation: PriorityRecommendation{Level: PriorityHigh}}
	if err := a.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	a.ConfidenceScore = 1.2
	if err := a.Validate(); err == nil {
		t.Error("expected range error")
	}
	a.ConfidenceScore = 0.5
	a.PriorityRecommendation.Level = "Urgent"
	if err := a.Validate(); !errors.Is(err, ErrInvalidPriority) {
		t.Errorf("expected ErrInvalidPriority, got %v", err)
	}
}

func TestAdviceResponse_Markdown(t *testing.T) {
	failed := TaskAdviceResponse{Success: false, Error: "boom"}
	if !strings.Contains(failed.Markdown(), "boom") {
		t.Error("failure markdown should include the error")
	}

	ok := TaskAdviceResponse{Success: true, Advice: &Advice{
		StatusPrediction:       "On track",
		ConfidenceScore:        0.9,
		PriorityRecommendation: PriorityRecommendation{Level: PriorityLow, Message: "relax", EstimatedDays: 2},
		NextSteps:              []string{"start"},
	}}
	md := ok.Markdown()
	for _, want := range []string{"On track", "90%", "Low priority", "- start"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}
