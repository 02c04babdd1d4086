package showtimes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bindCreateRequest(t *testing.T, body string) (*CreateShowtimeRequest, error) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var req CreateShowtimeRequest
	err := c.ShouldBindJSON(&req)
	return &req, err
}

func TestShowtimeRequestPriceBinding(t *testing.T) {
	payload := func(priceField string) string {
		return fmt.Sprintf(`{
			"movieId": %q,
			"auditoriumId": %q,
			"startTime": "2026-09-14T13:00:00Z",
			"endTime": "2026-09-14T15:00:00Z"%s
		}`, uuid.New(), uuid.New(), priceField)
	}

	t.Run("accepts an explicit zero price", func(t *testing.T) {
		req, err := bindCreateRequest(t, payload(`, "priceCents": 0`))
		require.NoError(t, err)
		require.NotNil(t, req.PriceCents)
		assert.Equal(t, int64(0), *req.PriceCents)
	})

	t.Run("rejects a negative price", func(t *testing.T) {
		_, err := bindCreateRequest(t, payload(`, "priceCents": -1`))
		assert.Error(t, err)
	})

	t.Run("rejects a missing price", func(t *testing.T) {
		_, err := bindCreateRequest(t, payload(""))
		assert.Error(t, err)
	})
}
