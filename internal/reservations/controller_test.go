package reservations

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cinereserve/internal/shared/utils/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cancelRouterFor(svc Service, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user_id", userID.String())
		c.Next()
	})
	router.DELETE("/reservations/:id", NewController(svc).Cancel)
	return router
}

func doCancel(t *testing.T, router *gin.Engine, reservationID uuid.UUID) (*httptest.ResponseRecorder, response.StandardApiResponse) {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodDelete, "/reservations/"+reservationID.String(), nil)
	router.ServeHTTP(w, req)

	var body response.StandardApiResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestCancelEndpointOwnership(t *testing.T) {
	ctx := context.Background()
	owner := uuid.New()

	showtime := testShowtime(time.Now().Add(24 * time.Hour))
	repo := newFakeRepo(showtime)
	svc := newTestService(repo, &capturingPublisher{})

	created, err := svc.Create(ctx, owner, "", showtime.ID, []uuid.UUID{uuid.New()})
	require.NoError(t, err)

	t.Run("another user cannot tell the reservation exists", func(t *testing.T) {
		router := cancelRouterFor(svc, uuid.New())

		w, body := doCancel(t, router, created.ID)
		assert.Equal(t, http.StatusNotFound, w.Code)

		// Identical to the response for an id that was never issued.
		wUnknown, bodyUnknown := doCancel(t, router, uuid.New())
		assert.Equal(t, http.StatusNotFound, wUnknown.Code)
		assert.Equal(t, bodyUnknown.Message, body.Message)
	})

	t.Run("owner cancels through the endpoint", func(t *testing.T) {
		router := cancelRouterFor(svc, owner)

		w, body := doCancel(t, router, created.ID)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "success", body.Status)
	})
}
