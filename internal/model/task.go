package model

import "fmt"

// Task is one checklist item. IDs are 1-based and unique within a goal.
type Task struct {
	ID    int    `json:"id"`
	Label string `json:"label"`
	Done  bool   `json:"done"`
}

func NewTask(id int) Task {
	return Task{
		ID:    id,
		Label: fmt.Sprintf("Task %d", id),
		Done:  false,
	}
}
