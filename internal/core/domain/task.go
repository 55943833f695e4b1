// Package domain contains the core domain model for mapping tasks.
package domain

import (
	"iter"

	"go.trai.ch/zerr"

	"go.trai.ch/fmap/mapper"
)

// Task pairs a task name with the mapper that generates its work.
type Task struct {
	Name   string
	Mapper mapper.Mapper
}

// TaskSet is an ordered collection of named tasks.
// Definition order is preserved so runs are deterministic.
type TaskSet struct {
	tasks []*Task
	index map[string]int
}

// NewTaskSet creates a new empty TaskSet.
func NewTaskSet() *TaskSet {
	return &TaskSet{index: make(map[string]int)}
}

// Add appends a task to the set.
// It returns an error if a task with the same name already exists.
func (s *TaskSet) Add(t *Task) error {
	if t.Name == "" {
		return ErrInvalidTaskName
	}
	if _, exists := s.index[t.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task_name", t.Name)
	}
	s.index[t.Name] = len(s.tasks)
	s.tasks = append(s.tasks, t)
	return nil
}

// Get returns the task with the given name.
func (s *TaskSet) Get(name string) (*Task, error) {
	i, ok := s.index[name]
	if !ok {
		return nil, zerr.With(ErrTaskNotFound, "task_name", name)
	}
	return s.tasks[i], nil
}

// Len returns the number of tasks in the set.
func (s *TaskSet) Len() int {
	return len(s.tasks)
}

// Names returns the task names in definition order.
func (s *TaskSet) Names() []string {
	names := make([]string, len(s.tasks))
	for i, t := range s.tasks {
		names[i] = t.Name
	}
	return names
}

// Walk returns an iterator that yields tasks in definition order.
func (s *TaskSet) Walk() iter.Seq[*Task] {
	return func(yield func(*Task) bool) {
		for _, t := range s.tasks {
			if !yield(t) {
				return
			}
		}
	}
}
