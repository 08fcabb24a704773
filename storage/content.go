package storage

import (
	"errors"
	"fmt"
	"strings"
)

const (
	checkinFile = "checkin.json"
	tasksFile   = "tasks.json"
)

// Task is one item on a user's reminder list.
type Task struct {
	Name string `json:"name"`
	Note string `json:"note,omitempty"`
	Done bool   `json:"done"`
}

func messageFile(category string) string {
	return "messages_" + category + ".json"
}

// Messages returns the pool of texts for a message category.
func (s *Store) Messages(user, category string) ([]string, error) {
	if err := checkName(category); err != nil {
		return nil, err
	}
	var msgs []string
	err := s.loadJSON(user, messageFile(category), &msgs)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return msgs, err
}

// AddMessage appends a text to a category's pool.
func (s *Store) AddMessage(user, category, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("%w: empty message", ErrValidation)
	}
	msgs, err := s.Messages(user, category)
	if err != nil {
		return err
	}
	return s.saveJSON(user, messageFile(category), append(msgs, text))
}

// DeleteMessage removes one text by position.
func (s *Store) DeleteMessage(user, category string, i int) error {
	msgs, err := s.Messages(user, category)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(msgs) {
		return fmt.Errorf("%w: message %d", ErrNotFound, i)
	}
	return s.saveJSON(user, messageFile(category), append(msgs[:i], msgs[i+1:]...))
}

// CheckinQuestions returns the user's check-in prompt pool.
func (s *Store) CheckinQuestions(user string) ([]string, error) {
	var qs []string
	err := s.loadJSON(user, checkinFile, &qs)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return qs, err
}

// AddCheckinQuestion appends a prompt to the check-in pool.
func (s *Store) AddCheckinQuestion(user, question string) error {
	question = strings.TrimSpace(question)
	if question == "" {
		return fmt.Errorf("%w: empty question", ErrValidation)
	}
	qs, err := s.CheckinQuestions(user)
	if err != nil {
		return err
	}
	return s.saveJSON(user, checkinFile, append(qs, question))
}

// Tasks returns the user's task list.
func (s *Store) Tasks(user string) ([]Task, error) {
	var tasks []Task
	err := s.loadJSON(user, tasksFile, &tasks)
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return tasks, err
}

// PendingTasks returns the tasks not yet marked done.
func (s *Store) PendingTasks(user string) ([]Task, error) {
	tasks, err := s.Tasks(user)
	if err != nil {
		return nil, err
	}
	var pending []Task
	for _, t := range tasks {
		if !t.Done {
			pending = append(pending, t)
		}
	}
	return pending, nil
}

// AddTask appends a task to the list.
func (s *Store) AddTask(user string, task Task) error {
	if strings.TrimSpace(task.Name) == "" {
		return fmt.Errorf("%w: task needs a name", ErrValidation)
	}
	tasks, err := s.Tasks(user)
	if err != nil {
		return err
	}
	return s.saveJSON(user, tasksFile, append(tasks, task))
}

// CompleteTask marks one task done by position.
func (s *Store) CompleteTask(user string, i int) error {
	tasks, err := s.Tasks(user)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(tasks) {
		return fmt.Errorf("%w: task %d", ErrNotFound, i)
	}
	tasks[i].Done = true
	return s.saveJSON(user, tasksFile, tasks)
}

// DeleteTask removes one task by position.
func (s *Store) DeleteTask(user string, i int) error {
	tasks, err := s.Tasks(user)
	if err != nil {
		return err
	}
	if i < 0 || i >= len(tasks) {
		return fmt.Errorf("%w: task %d", ErrNotFound, i)
	}
	return s.saveJSON(user, tasksFile, append(tasks[:i], tasks[i+1:]...))
}
