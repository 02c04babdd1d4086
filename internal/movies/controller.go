package movies

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
	var genreID *uuid.UUID
	if raw := c.Query("genreId"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid genreId filter", nil, err.Error())
			return
		}
		genreID = &parsed
	}

	results, err := ctrl.service.List(c.Request.Context(), genreID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch movies", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Movies fetched successfully", results, nil)
}

func (ctrl *Controller) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie id", nil, err.Error())
		return
	}

	movie, err := ctrl.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch movie", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Movie fetched successfully", movie, nil)
}

func (ctrl *Controller) ListAdmin(c *gin.Context) {
	results, err := ctrl.service.ListAdmin(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch movies", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Movies fetched successfully", results, nil)
}

func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := ctrl.service.Create(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrUnknownGenre) {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Genre does not exist", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create movie", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Movie created successfully", movie, nil)
}

func (ctrl *Controller) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie id", nil, err.Error())
		return
	}

	var req UpdateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	movie, err := ctrl.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMovieNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
		case errors.Is(err, ErrUnknownGenre):
			response.RespondJSON(c, "error", http.StatusBadRequest, "Genre does not exist", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to update movie", nil, err.Error())
		}
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Movie updated successfully", movie, nil)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie id", nil, err.Error())
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, ErrMovieNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Movie not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete movie", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Movie deleted successfully", nil, nil)
}
