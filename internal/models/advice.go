package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/thenoetrevino/taskdeck/internal/types"
)

// PriorityLevel is the urgency the advice service recommends
type PriorityLevel string

const (
	PriorityHigh   PriorityLevel = "High"
	PriorityMedium PriorityLevel = "Medium"
	PriorityLow    PriorityLevel = "Low"
)

// Valid reports whether p is a level the client knows how to display.
func (p PriorityLevel) Valid() bool {
	switch p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// TaskAdviceRequest describes a task to the advice service.
// Field names follow the service's snake_case contract.
type TaskAdviceRequest struct {
	TaskID       types.TaskID   `json:"task_id"`
	Name         string         `json:"name"`
	Description  string         `json:"description"`
	CreationDate string         `json:"creation_date,omitempty"`
	DueDate      string         `json:"due_date,omitempty"`
	BoardID      types.BoardID  `json:"board_id,omitempty"`
	BoardName    string         `json:"board_name,omitempty"`
	ClientID     types.ClientID `json:"client_id,omitempty"`
	Status       TaskStatus     `json:"status"`
}

// NewAdviceRequest builds the request for task as it sits on board.
func NewAdviceRequest(task Task, board Board, client types.ClientID) TaskAdviceRequest {
	return TaskAdviceRequest{
		TaskID:       task.ID,
		Name:         task.Name,
		Description:  task.Description,
		CreationDate: task.CreationDate.String(),
		DueDate:      task.DueDate.String(),
		BoardID:      board.ID,
		BoardName:    board.Name,
		ClientID:     client,
		Status:       task.Status,
	}
}

// PriorityRecommendation is the suggested urgency with an effort estimate
type PriorityRecommendation struct {
	Level         PriorityLevel `json:"level"`
	Message       string        `json:"message"`
	EstimatedDays float64       `json:"estimated_days"`
}

// Advice is the body of a successful advice response
type Advice struct {
	StatusPrediction       string                 `json:"status_prediction"`
	ConfidenceScore        float64                `json:"confidence_score"`
	PriorityRecommendation PriorityRecommendation `json:"priority_recommendation"`
	ActionableSuggestions  []string               `json:"actionable_suggestions"`
	RiskFactors            []string               `json:"risk_factors"`
	OptimizationTips       []string               `json:"optimization_tips"`
	NextSteps              []string               `json:"next_steps"`
}

// Validate checks the ranges the client relies on when rendering.
func (a Advice) Validate() error {
	if a.ConfidenceScore < 0 || a.ConfidenceScore > 1 {
		return fmt.Errorf("confidence score %v out of range", a.ConfidenceScore)
	}
	if !a.PriorityRecommendation.Level.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, a.PriorityRecommendation.Level)
	}
	return nil
}

// AdviceMetadata describes how the advice was produced
type AdviceMetadata struct {
	GeneratedAt  time.Time `json:"generated_at"`
	ModelVersion string    `json:"model_version,omitempty"`
}

// TaskAdviceResponse is what the advice client always returns; failures are
// reported through Success and Error rather than a Go error.
type TaskAdviceResponse struct {
	Success  bool            `json:"success"`
	Advice   *Advice         `json:"advice,omitempty"`
	Error    string          `json:"error,omitempty"`
	Metadata *AdviceMetadata `json:"metadata,omitempty"`
}

// Markdown renders the advice for a terminal markdown renderer.
func (r TaskAdviceResponse) Markdown() string {
	var b strings.Builder
	if !r.Success || r.Advice == nil {
		msg := r.Error
		if msg == "" {
			msg = "Failed to get AI advice"
		}
		fmt.Fprintf(&b, "# AI advice unavailable\n\n%s\n", msg)
		return b.String()
	}
	a := r.Advice
	fmt.Fprintf(&b, "# AI advice\n\n")
	fmt.Fprintf(&b, "**Predicted status:** %s (%.0f%% confidence)\n\n", a.StatusPrediction, a.ConfidenceScore*100)
	fmt.Fprintf(&b, "**%s priority** (%.1f days): %s\n\n", a.PriorityRecommendation.Level,
		a.PriorityRecommendation.EstimatedDays, a.PriorityRecommendation.Message)
	section := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "## %s\n\n", title)
		for _, it := range items {
			fmt.Fprintf(&b, "- %s\n", it)
		}
		b.WriteString("\n")
	}
	section("Suggestions", a.ActionableSuggestions)
	section("Risk factors", a.RiskFactors)
	section("Optimization tips", a.OptimizationTips)
	section("Next steps", a.NextSteps)
	if r.Metadata != nil && !r.Metadata.GeneratedAt.IsZero() {
		fmt.Fprintf(&b, "_Generated %s", r.Metadata.GeneratedAt.Format(time.RFC1123))
		if r.Metadata.ModelVersion != "" {
			fmt.Fprintf(&b, " by model v%s", r.Metadata.ModelVersion)
		}
		b.WriteString("_\n")
	}
	return b.String()
}
