package users

import (
	"context"
	"errors"
	"net/http"

	"cinereserve/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) List(c *gin.Context) {
	users, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch users", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Users fetched successfully", users, nil)
}

func (ctrl *Controller) Promote(c *gin.Context) {
	ctrl.changeRole(c, ctrl.service.Promote, "User promoted successfully")
}

func (ctrl *Controller) Demote(c *gin.Context) {
	ctrl.changeRole(c, ctrl.service.Demote, "User demoted successfully")
}

func (ctrl *Controller) changeRole(c *gin.Context, change func(ctx context.Context, id uuid.UUID) (*AdminResponse, error), successMsg string) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid user id", nil, err.Error())
		return
	}

	user, err := change(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "User not found", nil, nil)
		case errors.Is(err, ErrCannotChangeSuper):
			response.RespondJSON(c, "error", http.StatusForbidden, "Super admin role cannot be changed", nil, nil)
		case errors.Is(err, ErrAlreadyInRole):
			response.RespondJSON(c, "error", http.StatusConflict, "User already has that role", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to change role", nil, err.Error())
		}
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, successMsg, user, nil)
}
