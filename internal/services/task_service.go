package services

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/repositories"
)

type taskServiceImpl struct {
	logger zerolog.Logger
	tasks  repositories.TaskRepository
	options
}

func NewTaskService(
	logger zerolog.Logger,
	tasks repositories.TaskRepository,
	opts ...Option,
) TaskService {
	return &taskServiceImpl{
		logger:  logger,
		tasks:   tasks,
		options: newOptions(opts),
	}
}

func (s *taskServiceImpl) CreateTask(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	taskID, err := s.newID()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to generate task id")
		return nil, err
	}

	task, err := models.NewTask(taskID, models.NewTaskParams{
		Title:       params.Title,
		Description: params.Description,
		Priority:    params.Priority,
		AssigneeID:  params.AssigneeID,
		DueDate:     params.DueDate,
		Tags:        params.Tags,
	}, s.now())
	if err != nil {
		s.logger.Warn().
			Err(err).
			Msg("invalid task")
		return nil, err
	}

	err = s.tasks.Save(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID()).
			Msg("failed to save task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", task.ID()).
		Msg("created task")
	return task, nil
}

func (s *taskServiceImpl) GetTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("task_id", id).
		Msg("task found")
	return task, nil
}

func (s *taskServiceImpl) ListTasks(ctx context.Context, params ListTasksParams) (repositories.Page[*models.Task], error) {
	pagination := repositories.Pagination{
		Page:  params.Page,
		Limit: params.Limit,
	}.Clamp()

	page, err := s.tasks.FindAll(ctx, repositories.TaskFilter{
		Status:     params.Status,
		Priority:   params.Priority,
		AssigneeID: params.AssigneeID,
		Search:     params.Search,
	}, pagination)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to list tasks")
		return repositories.Page[*models.Task]{}, err
	}

	s.logger.Debug().
		Int("count", len(page.Data)).
		Int("total", page.Total).
		Int("page", page.Page).
		Msg("listed tasks")
	return page, nil
}

func (s *taskServiceImpl) UpdateTask(ctx context.Context, id string, update models.TaskDetailsUpdate) (*models.Task, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	err = task.UpdateDetails(update, s.now())
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("task_id", id).
			Msg("invalid task update")
		return nil, err
	}

	err = s.tasks.Update(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("updated task")
	return task, nil
}

func (s *taskServiceImpl) UpdateTaskStatus(ctx context.Context, id string, status models.TaskStatus) (*models.Task, error) {
	task, err := s.findTask(ctx, id)
	if err != nil {
		return nil, err
	}

	from := task.Status()
	err = task.TransitionTo(status, s.now())
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("task_id", id).
			Msg("invalid status transition")
		return nil, err
	}

	err = s.tasks.Update(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to update task status")
		return nil, err
	}

	s.logger.Info().
		Str("task_id", id).
		Str("from", string(from)).
		Str("to", string(status)).
		Msg("updated task status")
	return task, nil
}

func (s *taskServiceImpl) DeleteTask(ctx context.Context, id string) error {
	deleted, err := s.tasks.Delete(ctx, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to delete task")
		return err
	}
	if !deleted {
		s.logger.Warn().
			Str("task_id", id).
			Msg("task not found")
		return &EntityNotFoundError{Entity: "Task", ID: id}
	}

	s.logger.Info().
		Str("task_id", id).
		Msg("deleted task")
	return nil
}

func (s *taskServiceImpl) findTask(ctx context.Context, id string) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn().
				Str("task_id", id).
				Msg("task not found")
			return nil, &EntityNotFoundError{Entity: "Task", ID: id}
		}

		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to find task")
		return nil, err
	}
	return task, nil
}
