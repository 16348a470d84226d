package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/task-manager/internal/models"
	"github.com/adanyl0v/task-manager/internal/services"
)

type userResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func newUserResponse(user *models.User) userResponse {
	return userResponse{
		ID:        user.ID(),
		Name:      user.Name(),
		Email:     user.Email(),
		Role:      string(user.Role()),
		CreatedAt: user.CreatedAt(),
		UpdatedAt: user.UpdatedAt(),
	}
}

type createUserRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"omitempty,oneof=ADMIN MEMBER VIEWER"`
}

func (h *handlerImpl) HandleCreateUser(c *gin.Context) {
	var req createUserRequest
	err := c.ShouldBindJSON(&req)
	if err != nil {
		h.logger.Warn().
			Err(err).
			Msg("failed to bind json")
		abort(c, newBindingError(err))
		return
	}

	user, err := h.users.CreateUser(c, services.CreateUserParams{
		Name:  req.Name,
		Email: req.Email,
		Role:  models.UserRole(req.Role),
	})
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dataResponse[userResponse]{Data: newUserResponse(user)})
}

func (h *handlerImpl) HandleGetUser(c *gin.Context) {
	userID, ok := h.bindID(c)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c, userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dataResponse[userResponse]{Data: newUserResponse(user)})
}
