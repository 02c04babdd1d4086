package reservations

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

// Availability returns the seat ids already booked for a showtime. Clients
// are expected to refetch this after any seat conflict.
func (ctrl *Controller) Availability(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime id", nil, err.Error())
		return
	}

	availability, err := ctrl.service.Availability(c.Request.Context(), showtimeID)
	if err != nil {
		if errors.Is(err, ErrShowtimeNotFound) {
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
			return
		}
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch availability", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Availability fetched successfully", availability, nil)
}

func (ctrl *Controller) Create(c *gin.Context) {
	showtimeID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid showtime id", nil, err.Error())
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid request body", nil, err.Error())
		return
	}

	userID, userEmail, ok := currentUser(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	reservation, err := ctrl.service.Create(c.Request.Context(), userID, userEmail, showtimeID, req.SeatIDs)
	if err != nil {
		if conflict, ok := AsSeatConflict(err); ok {
			response.RespondJSON(c, "error", http.StatusConflict, "Some seats were just taken", nil, gin.H{
				"code":               "SEAT_CONFLICT",
				"conflictingSeatIds": conflict.SeatIDs,
			})
			return
		}
		switch {
		case errors.Is(err, ErrEmptySeatSelection):
			response.RespondJSON(c, "error", http.StatusBadRequest, "At least one seat must be selected", nil, nil)
		case errors.Is(err, ErrShowtimeNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Showtime not found", nil, nil)
		case errors.Is(err, ErrSeatsNotInAuditorium):
			response.RespondJSON(c, "error", http.StatusBadRequest, "One or more seats do not belong to this showtime", nil, nil)
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to create reservation", nil, err.Error())
		}
		return
	}
	response.RespondJSON(c, "success", http.StatusCreated, "Reservation created successfully", reservation, nil)
}

func (ctrl *Controller) ListMine(c *gin.Context) {
	userID, _, ok := currentUser(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	results, err := ctrl.service.ListMine(c.Request.Context(), userID)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to fetch reservations", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Reservations fetched successfully", results, nil)
}

func (ctrl *Controller) Cancel(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid reservation id", nil, err.Error())
		return
	}

	userID, _, ok := currentUser(c)
	if !ok {
		response.RespondJSON(c, "error", http.StatusUnauthorized, "Authentication required", nil, nil)
		return
	}

	if err := ctrl.service.Cancel(c.Request.Context(), userID, reservationID); err != nil {
		switch {
		case errors.Is(err, ErrReservationNotFound):
			response.RespondJSON(c, "error", http.StatusNotFound, "Reservation not found", nil, nil)
		case errors.Is(err, ErrAlreadyCancelled):
			response.RespondJSON(c, "error", http.StatusConflict, "Reservation is already cancelled", nil, gin.H{
				"code": "INVALID_STATE",
			})
		case errors.Is(err, ErrShowtimeStarted):
			response.RespondJSON(c, "error", http.StatusConflict, "Showtime has already started", nil, gin.H{
				"code": "INVALID_STATE",
			})
		default:
			response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to cancel reservation", nil, err.Error())
		}
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Reservation cancelled successfully", nil, nil)
}

func currentUser(c *gin.Context) (uuid.UUID, string, bool) {
	rawID, exists := c.Get("user_id")
	if !exists {
		return uuid.Nil, "", false
	}
	idStr, ok := rawID.(string)
	if !ok {
		return uuid.Nil, "", false
	}
	userID, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, "", false
	}

	email := ""
	if rawEmail, exists := c.Get("user_email"); exists {
		if emailStr, ok := rawEmail.(string); ok {
			email = emailStr
		}
	}
	return userID, email, true
}
