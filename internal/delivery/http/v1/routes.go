package v1

import "github.com/gin-gonic/gin"

// NewRouter builds the gin engine serving the whole HTTP surface.
func NewRouter(h Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.CustomRecovery(h.HandleRecovery))
	router.Use(Metrics())
	router.Use(h.HandleRequestLogger)
	RegisterRoutes(router, h)
	return router
}

func RegisterRoutes(router *gin.Engine, h Handler) {
	router.NoRoute(h.HandleNotFound)

	router.GET("/", h.HandleIndex)
	router.GET("/health", h.HandleHealth)
	router.GET("/ready", h.HandleReady)
	router.GET("/metrics", gin.WrapH(MetricsHandler()))

	api := router.Group("/api/v1")

	tasks := api.Group("/tasks")
	tasks.GET("", h.HandleListTasks)
	tasks.POST("", h.HandleCreateTask)
	tasks.GET("/:id", h.HandleGetTask)
	tasks.PATCH("/:id", h.HandleUpdateTask)
	tasks.PATCH("/:id/status", h.HandleUpdateTaskStatus)
	tasks.DELETE("/:id", h.HandleDeleteTask)

	users := api.Group("/users")
	users.POST("", h.HandleCreateUser)
	users.GET("/:id", h.HandleGetUser)
}
