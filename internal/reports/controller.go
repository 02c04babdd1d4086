package reports

import (
	"net/http"
	"time"

	"cinereserve/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
)

type Controller struct {
	service Service
}

func NewController(service Service) *Controller {
	return &Controller{service: service}
}

func (ctrl *Controller) Summary(c *gin.Context) {
	summary, err := ctrl.service.Summary(c.Request.Context())
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to build summary report", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Summary report fetched successfully", summary, nil)
}

func (ctrl *Controller) Showtimes(c *gin.Context) {
	date := time.Now().UTC()
	if raw := c.Query("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.RespondJSON(c, "error", http.StatusBadRequest, "Invalid date, expected YYYY-MM-DD", nil, err.Error())
			return
		}
		date = parsed
	}

	rows, err := ctrl.service.ShowtimesForDate(c.Request.Context(), date)
	if err != nil {
		response.RespondJSON(c, "error", http.StatusInternalServerError, "Failed to build showtime report", nil, err.Error())
		return
	}
	response.RespondJSON(c, "success", http.StatusOK, "Showtime report fetched successfully", rows, nil)
}
