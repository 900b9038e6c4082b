package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidType     = errors.New("model: invalid task type")
	ErrInvalidPriority = errors.New("model: invalid task priority")
)

// DefaultSubject is substituted when a task is created without a subject.
const DefaultSubject = "General"

type TaskType string

const (
	TypeHomework  TaskType = "Homework"
	TypeExam      TaskType = "Exam"
	TypeClassTest TaskType = "Class Test"
	TypeProject   TaskType = "Project"
	TypeOther     TaskType = "Other"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TypeHomework, TypeExam, TypeClassTest, TypeProject, TypeOther:
		return true
	default:
		return false
	}
}

// IsExamLike reports whether the type belongs in the exams view.
func (t TaskType) IsExamLike() bool {
	return t == TypeExam || t == TypeClassTest
}

func TaskTypes() []TaskType {
	return []TaskType{TypeHomework, TypeExam, TypeClassTest, TypeProject, TypeOther}
}

type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

type Task struct {
	ID        string
	Title     string
	Subject   string
	Type      TaskType
	Due       Date
	Priority  Priority
	Completed bool
	CreatedAt time.Time
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return errors.New("model: task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return errors.New("model: task title is required")
	}
	if strings.TrimSpace(t.Subject) == "" {
		return errors.New("model: task subject is required")
	}
	if !t.Type.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidType, t.Type)
	}
	if t.Due.IsZero() {
		return errors.New("model: task due date is required")
	}
	if !t.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, t.Priority)
	}
	if t.CreatedAt.IsZero() {
		return errors.New("model: task created_at is required")
	}
	return nil
}
