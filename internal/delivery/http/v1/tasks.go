package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/repositories"
	"github.com/adanyl0v/task-manager/internal/services"
)

type taskResponse struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	AssigneeID  *string    `json:"assigneeId"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func newTaskResponse(task *models.Task) taskResponse {
	return taskResponse{
		ID:          task.ID(),
		Title:       task.Title(),
		Description: task.Description(),
		Status:      string(task.Status()),
		Priority:    string(task.Priority()),
		AssigneeID:  task.AssigneeID(),
		DueDate:     task.DueDate(),
		Tags:        task.Tags(),
		CreatedAt:   task.CreatedAt(),
		UpdatedAt:   task.UpdatedAt(),
	}
}

type dataResponse[T any] struct {
	Data T `json:"data"`
}

type pageResponse[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

func newTaskPageResponse(page repositories.Page[*models.Task]) pageResponse[taskResponse] {
	data := make([]taskResponse, len(page.Data))
	for i, task := range page.Data {
		data[i] = newTaskResponse(task)
	}
	return pageResponse[taskResponse]{
		Data:       data,
		Total:      page.Total,
		Page:       page.Page,
		Limit:      page.Limit,
		TotalPages: page.TotalPages,
	}
}

type idParam struct {
	ID string `uri:"id" binding:"required"`
}

// bindID reads the id path parameter in its canonical UUID form, so every
// accepted spelling reaches the services as the same id.
func (h *handlerImpl) bindID(c *gin.Context) (string, bool) {
	var param idParam
	err := c.ShouldBindUri(&param)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind uri")
		abort(c, newBindingError(err))
		return "", false
	}

	id, ok := repositories.CanonicalID(param.ID)
	if !ok {
		h.logger.Warn().
			Str("id", param.ID).
			Msg("invalid id")
		abort(c, newValidationError(msgValidationFailed, map[string][]string{
			"id": {"must be a valid UUID"},
		}))
		return "", false
	}
	return id, true
}

// createTaskRequest checks shape only. Lengths are counted after trimming,
// which the entity does.
type createTaskRequest struct {
	Title       string     `json:"title" binding:"required"`
	Description string     `json:"description"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	AssigneeID  *string    `json:"assigneeId" binding:"omitempty,uuid"`
	DueDate     *time.Time `json:"dueDate"`
	Tags        []string   `json:"tags"`
}

func (h *handlerImpl) HandleCreateTask(c *gin.Context) {
	var req createTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	task, err := h.tasks.CreateTask(c, services.CreateTaskParams{
		Title:       req.Title,
		Description: req.Description,
		Priority:    models.TaskPriority(req.Priority),
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dataResponse[taskResponse]{Data: newTaskResponse(task)})
}

type listTasksQuery struct {
	Status     string `form:"status" binding:"omitempty,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
	Priority   string `form:"priority" binding:"omitempty,oneof=LOW MEDIUM HIGH URGENT"`
	AssigneeID string `form:"assigneeId" binding:"omitempty,uuid"`
	Search     string `form:"search" binding:"max=200"`
	Page       *int   `form:"page" binding:"omitempty,min=1"`
	Limit      *int   `form:"limit" binding:"omitempty,min=1,max=100"`
}

func (h *handlerImpl) HandleListTasks(c *gin.Context) {
	var query listTasksQuery
	err := c.ShouldBindQuery(&query)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind query")
		abort(c, newBindingError(err))
		return
	}

	params := services.ListTasksParams{
		Status:     models.TaskStatus(query.Status),
		Priority:   models.TaskPriority(query.Priority),
		AssigneeID: query.AssigneeID,
		Search:     query.Search,
	}
	if query.Page != nil {
		params.Page = *query.Page
	}
	if query.Limit != nil {
		params.Limit = *query.Limit
	}

	page, err := h.tasks.ListTasks(c, params)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, newTaskPageResponse(page))
}

func (h *handlerImpl) HandleGetTask(c *gin.Context) {
	taskID, ok := h.bindID(c)
	if !ok {
		return
	}

	task, err := h.tasks.GetTask(c, taskID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse[taskResponse]{Data: newTaskResponse(task)})
}

// updateTaskRequest distinguishes omitted fields from explicit nulls, so
// {"assigneeId": null} unassigns the task while {} leaves it alone.
type updateTaskRequest struct {
	Title       models.Patch[string]              `json:"title"`
	Description models.Patch[string]              `json:"description"`
	Priority    models.Patch[models.TaskPriority] `json:"priority"`
	AssigneeID  models.Patch[string]              `json:"assigneeId"`
	DueDate     models.Patch[time.Time]           `json:"dueDate"`
	Tags        models.Patch[[]string]            `json:"tags"`
}

func (r updateTaskRequest) validate() map[string][]string {
	details := make(map[string][]string)
	if v, ok := r.AssigneeID.Value(); ok {
		if _, err := uuid.Parse(v); err != nil {
			details["assigneeId"] = append(details["assigneeId"], "must be a valid UUID")
		}
	}
	if v, ok := r.Priority.Value(); ok && !v.Valid() {
		details["priority"] = append(details["priority"], "must be one of: LOW, MEDIUM, HIGH, URGENT")
	}
	if len(details) == 0 {
		return nil
	}
	return details
}

func (h *handlerImpl) HandleUpdateTask(c *gin.Context) {
	taskID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req updateTaskRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	if details := req.validate(); details != nil {
		h.logger.Warn().
			Str("task_id", taskID).
			Msg("invalid task update")
		abort(c, newValidationError(msgValidationFailed, details))
		return
	}

	task, err := h.tasks.UpdateTask(c, taskID, models.TaskDetailsUpdate{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
		Tags:        req.Tags,
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse[taskResponse]{Data: newTaskResponse(task)})
}

type updateTaskStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=PENDING IN_PROGRESS COMPLETED CANCELLED"`
}

func (h *handlerImpl) HandleUpdateTaskStatus(c *gin.Context) {
	taskID, ok := h.bindID(c)
	if !ok {
		return
	}

	var req updateTaskStatusRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	task, err := h.tasks.UpdateTaskStatus(c, taskID, models.TaskStatus(req.Status))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse[taskResponse]{Data: newTaskResponse(task)})
}

func (h *handlerImpl) HandleDeleteTask(c *gin.Context) {
	taskID, ok := h.bindID(c)
	if !ok {
		return
	}

	err := h.tasks.DeleteTask(c, taskID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
