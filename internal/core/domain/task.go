package domain

import (
	"errors"
	"strings"
	"time"
)

// TaskStatus represents the lifecycle state of a task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "TODO"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

var ErrTaskNotFound = errors.New("task not found")
var ErrInvalidStatus = errors.New("invalid status, use TODO, IN_PROGRESS, or DONE")
var ErrNoUpdatableFields = errors.New("no updatable fields in request")

// NormalizeStatus canonicalizes a submitted status string. Input is trimmed
// and upper-cased; the common spellings of IN_PROGRESS (space, hyphen, or no
// separator) are accepted. Any other value fails with ErrInvalidStatus.
func NormalizeStatus(raw string) (TaskStatus, error) {
	s := strings.ToUpper(strings.TrimSpace(raw))
	if s == "INPROGRESS" || s == "IN-PROGRESS" || s == "IN PROGRESS" {
		s = string(StatusInProgress)
	}
	switch TaskStatus(s) {
	case StatusTodo, StatusInProgress, StatusDone:
		return TaskStatus(s), nil
	}
	return "", ErrInvalidStatus
}

// DefaultStatus normalizes raw, treating empty input as TODO. Used on create,
// where status is optional.
func DefaultStatus(raw string) (TaskStatus, error) {
	if strings.TrimSpace(raw) == "" {
		return StatusTodo, nil
	}
	return NormalizeStatus(raw)
}

// Task belongs to exactly one project. Its owner is fixed to the project's
// owner at creation time and never changes.
type Task struct {
	ID           string     `json:"id" bson:"_id"`
	ProjectID    string     `json:"project_id" bson:"project_id"`
	Title        string     `json:"title" bson:"title"`
	Status       TaskStatus `json:"status" bson:"status"`
	DueAt        *time.Time `json:"due_at,omitempty" bson:"due_at,omitempty"`
	OwnerSubject string     `json:"owner_subject" bson:"owner_subject"`
	CreatedAt    time.Time  `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at" bson:"updated_at"`
}
