package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/taskflow/internal/api"
	"github.com/alexanderramin/taskflow/internal/domain"
	"github.com/alexanderramin/taskflow/internal/store"
)

type taskService struct {
	base
	backend TaskBackend
}

func NewTaskService(
	backend TaskBackend,
	invalidator Invalidator,
	notifier Notifier,
	observers ...UseCaseObserver,
) TaskService {
	return &taskService{
		base:    newBase(notifier, invalidator, observers),
		backend: backend,
	}
}

// Create submits a new task. A draft without a project is rejected before
// any request is made.
func (s *taskService) Create(ctx context.Context, draft domain.TaskDraft) (err error) {
	defer s.observe(ctx, "task-create", time.Now().UTC(), map[string]any{"project": string(draft.Project)}, &err)

	if blank(string(draft.Project)) {
		return s.reject("Please select a project first")
	}
	draft.ApplyDefaults()

	env, err := s.backend.CreateTask(ctx, draft)
	err = s.settle(env, err, messages{
		transport: "Something went wrong",
		failure:   "Unable to create task",
		success:   "Task created successfully!",
	})
	if err != nil {
		return err
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(ctx, store.TaskCreated, "")
	}
	return nil
}

// Calendar returns the tasks due in month (1-12) of year, grouped by day.
func (s *taskService) Calendar(ctx context.Context, month, year int) (cal *domain.CalendarMonth, err error) {
	defer s.observe(ctx, "task-calendar", time.Now().UTC(), map[string]any{"month": month, "year": year}, &err)

	if month < 1 || month > 12 {
		return nil, validationError(fmt.Sprintf("month %d out of range", month))
	}
	env, err := s.backend.Calendar(ctx, month, year)
	if err = s.settle(env, err, messages{
		transport:      "Error fetching calendar tasks",
		fixedTransport: true,
		failure:        "Failed to fetch tasks",
	}); err != nil {
		return nil, err
	}
	grouped, err := api.Decode[domain.CalendarMonth](env)
	if err != nil {
		s.notifier.Error("Failed to fetch tasks")
		return nil, err
	}
	if grouped.GroupedByDate == nil {
		grouped.GroupedByDate = map[string][]domain.Task{}
	}
	return &grouped, nil
}
