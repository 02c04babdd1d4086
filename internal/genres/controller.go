package genres

import (
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
	genres, err := ctrl.service.List(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch genres", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Genres fetched successfully", genres, nil)
}

func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	genre, err := ctrl.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create genre", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Genre created successfully", genre, nil)
}

func (ctrl *Controller) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid genre id", nil, err.Error())
		return
	}

	var req UpdateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	genre, err := ctrl.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGenreNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Genre not found", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update genre", nil, err.Error())
		}
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Genre updated successfully", genre, nil)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid genre id", nil, err.Error())
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrGenreNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Genre not found", nil, nil)
		case errors.Is(err, ErrGenreInUse):
			response.RespondJSON(c, "error", http.StatusConflict, "Genre is referenced by movies", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete genre", nil, err.Error())
		}
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Genre deleted successfully", nil, nil)
}
