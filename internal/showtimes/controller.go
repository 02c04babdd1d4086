package showtimes

import (
	"errors"
	"net/http"
	"time"

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

func parseDateParam(c *gin.Context) (time.Time, bool) {
	raw := c.Query("date")
	if raw == "" {
		return time.Now().UTC(), true
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil, err.Error())
		return time.Time{}, false
	}
	return date, true
}

func (ctrl *Controller) ListForMovie(c *gin.Context) {
	movieID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid movie id", nil, err.Error())
		return
	}

	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	results, err := ctrl.service.ListForMovie(c.Request.Context(), movieID, date)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch showtimes", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Showtimes fetched successfully", results, nil)
}

func (ctrl *Controller) ListForDate(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}

	results, err := ctrl.service.ListForDate(c.Request.Context(), date)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch showtimes", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Showtimes fetched successfully", results, nil)
}

func (ctrl *Controller) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime id", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch showtime", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Showtime fetched successfully", showtime, nil)
}

func (ctrl *Controller) SeatLayout(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime id", nil, err.Error())
		return
	}

	seats, err := ctrl.service.SeatLayout(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch seat layout", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Seat layout fetched successfully", seats, nil)
}

func (ctrl *Controller) Create(c *gin.Context) {
	var req CreateShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.Create(c.Request.Context(), &req)
	if err != nil {
		ctrl.respondScheduleError(c, err, "Failed to create showtime")
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Showtime created successfully", showtime, nil)
}

func (ctrl *Controller) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime id", nil, err.Error())
		return
	}

	var req UpdateShowtimeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	showtime, err := ctrl.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		ctrl.respondScheduleError(c, err, "Failed to update showtime")
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Showtime updated successfully", showtime, nil)
}

func (ctrl *Controller) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime id", nil, err.Error())
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, ErrShowtimeNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		case errors.Is(err, ErrShowtimeHasBookings):
			response.RespondJSON(c, "error", http.StatusConflict, "Showtime has confirmed reservations", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to delete showtime", nil, err.Error())
		}
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Showtime deleted successfully", nil, nil)
}

func (ctrl *Controller) respondScheduleError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, ErrShowtimeNotFound):
		response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
	case errors.Is(err, ErrInvalidTimeRange):
		response.RespondJSON(c, "error", http.StatusBadRequest, "End time must be after start time", nil, nil)
	case errors.Is(err, ErrUnknownMovie):
		response.RespondJSON(c, "error", http.StatusBadRequest, "Movie does not exist", nil, nil)
	case errors.Is(err, ErrUnknownAuditorium):
		response.RespondJSON(c, "error", http.StatusBadRequest, "Auditorium does not exist", nil, nil)
	case errors.Is(err, ErrAuditoriumConflict):
		response.RespondJSON(c, "error", http.StatusConflict, "Auditorium is occupied in that window", nil, nil)
	default:
		response.RespondJSON(c, "error", http.StatusInternalServerError, fallback, nil, err.Error())
	}
}
