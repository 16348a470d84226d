package v1

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/adanyl0v/task-manager/internal/services"
)

type Handler interface {
	HandleIndex(c *gin.Context)
	HandleHealth(c *gin.Context)
	HandleReady(c *gin.Context)
	HandleNotFound(c *gin.Context)

	HandleRequestLogger(c *gin.Context)
	HandleRecovery(c *gin.Context, recovered any)

	HandleCreateTask(c *gin.Context)
	HandleListTasks(c *gin.Context)
	HandleGetTask(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleUpdateTaskStatus(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleCreateUser(c *gin.Context)
	HandleGetUser(c *gin.Context)
}

// ReadinessCheck reports whether the storage behind the services can serve
// requests.
type ReadinessCheck func(ctx context.Context) error

type handlerImpl struct {
	logger    zerolog.Logger
	tasks     services.TaskService
	users     services.UserService
	ready     ReadinessCheck
	startedAt time.Time
}

// New returns the v1 handler. A nil ready check always reports ready.
func New(
	logger zerolog.Logger,
	taskService services.TaskService,
	userService services.UserService,
	ready ReadinessCheck,
) Handler {
	return &handlerImpl{
		logger:    logger,
		tasks:     taskService,
		users:     userService,
		ready:     ready,
		startedAt: time.Now(),
	}
}
