package models

import (
	"math"
	"strings"
)

// BoardStatistics summarizes completion on a board
type BoardStatistics struct {
	TotalTasks           int `json:"totalTasks"`
	CompletedTasks       int `json:"completedTasks"`
	CompletionPercentage int `json:"completionPercentage"`
}

// ComputeStatistics counts Done tasks and rounds the percentage to the
// nearest integer. An empty board is 0% complete.
func ComputeStatistics(tasks []Task) BoardStatistics {
	stats := BoardStatistics{TotalTasks: len(tasks)}
	for _, t := range tasks {
		if t.Status == StatusDone {
			stats.CompletedTasks++
		}
	}
	if stats.TotalTasks > 0 {
		pct := float64(stats.CompletedTasks) / float64(stats.TotalTasks) * 100
		stats.CompletionPercentage = int(math.Round(pct))
	}
	return stats
}

// FilterTasks keeps tasks whose description contains query, ignoring case.
// An empty query keeps everything.
func FilterTasks(tasks []Task, query string) []Task {
	q := strings.ToLower(query)
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if strings.Contains(strings.ToLower(t.Description), q) {
			out = append(out, t)
		}
	}
	return out
}
