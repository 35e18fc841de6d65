package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type stubBookingService struct {
	sessions        []domain.Session
	queriedTrainers []primitive.ObjectID
}

func (s *stubBookingService) Book(ctx context.Context, memberID primitive.ObjectID, input service.BookingInput) (*domain.Session, error) {
	return nil, nil
}

func (s *stubBookingService) ListTrainers(ctx context.Context) ([]domain.TrainerProfile, error) {
	return nil, nil
}

func (s *stubBookingService) SessionsForMember(ctx context.Context, memberID primitive.ObjectID) ([]domain.Session, error) {
	return s.sessions, nil
}

func (s *stubBookingService) SessionsForTrainer(ctx context.Context, trainerID primitive.ObjectID) ([]domain.Session, error) {
	s.queriedTrainers = append(s.queriedTrainers, trainerID)
	return s.sessions, nil
}

var _ service.BookingService = (*stubBookingService)(nil)

func TestTrainerSessions(t *testing.T) {
	gin.SetMode(gin.TestMode)
	trainerID := primitive.NewObjectID()
	svc := &stubBookingService{sessions: []domain.Session{{
		ID:         primitive.NewObjectID(),
		Program:    "Yoga",
		Date:       "2024-05-01",
		Time:       "10:00",
		TrainerID:  trainerID,
		MemberID:   primitive.NewObjectID(),
		ClientName: "Maria Silva",
	}}}
	handler := NewBookingHandler(svc)

	router := gin.New()
	router.GET("/trainer/sessions", func(c *gin.Context) {
		c.Set(ContextUserIDKey, trainerID.Hex())
		c.Set(ContextUserRoleKey, string(domain.RoleTrainer))
	}, handler.TrainerSessions)

	t.Run("lists sessions for the trainer in the token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trainer/sessions", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var resp []SessionResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp, 1)
		assert.Equal(t, "Yoga", resp[0].Program)
		assert.Equal(t, trainerID.Hex(), resp[0].TrainerID)

		require.Len(t, svc.queriedTrainers, 1)
		assert.Equal(t, trainerID, svc.queriedTrainers[0])
	})

	t.Run("rejects a request with no principal in context", func(t *testing.T) {
		bare := gin.New()
		bare.GET("/trainer/sessions", handler.TrainerSessions)

		w := httptest.NewRecorder()
		bare.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/trainer/sessions", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}
