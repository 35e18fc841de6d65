package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// How long the booking-confirmation banner stays on screen before the form
// resets. The UI reads this off the response instead of hardcoding it.
const confirmationDisplaySeconds = 3

// BookingHandler holds the booking service dependency.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// --- DTOs ---

type BookSessionRequest struct {
	Program    string `json:"program" binding:"required"`
	Date       string `json:"date" binding:"required"`
	Time       string `json:"time" binding:"required"`
	TrainerID  string `json:"trainerId" binding:"required"`
	ClientName string `json:"clientName" binding:"required"`
}

type SessionResponse struct {
	ID         string    `json:"id"`
	Program    string    `json:"program"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	TrainerID  string    `json:"trainerId"`
	MemberID   string    `json:"memberId"`
	ClientName string    `json:"clientName"`
	CreatedAt  time.Time `json:"createdAt"`
}

type BookSessionResponse struct {
	Session SessionResponse `json:"session"`
	// Seconds the confirmation should stay visible before auto-dismissing.
	ConfirmationSeconds int `json:"confirmationSeconds"`
}

func MapSessionToResponse(s *domain.Session) SessionResponse {
	if s == nil {
		return SessionResponse{}
	}
	return SessionResponse{
		ID:         s.ID.Hex(),
		Program:    s.Program,
		Date:       s.Date,
		Time:       s.Time,
		TrainerID:  s.TrainerID.Hex(),
		MemberID:   s.MemberID.Hex(),
		ClientName: s.ClientName,
		CreatedAt:  s.CreatedAt,
	}
}

func MapSessionsToResponse(sessions []domain.Session) []SessionResponse {
	responses := make([]SessionResponse, len(sessions))
	for i, s := range sessions {
		responses[i] = MapSessionToResponse(&s)
	}
	return responses
}

// --- Handler Methods ---

// BookSession appends a session for the authenticated member.
func (h *BookingHandler) BookSession(c *gin.Context) {
	var req BookSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	memberID, ok := principalIDFromToken(c)
	if !ok {
		return
	}
	trainerID, err := primitive.ObjectIDFromHex(req.TrainerID)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid trainer ID format")
		return
	}

	session, err := h.bookingService.Book(c.Request.Context(), memberID, service.BookingInput{
		Program:    req.Program,
		Date:       req.Date,
		Time:       req.Time,
		TrainerID:  trainerID,
		ClientName: req.ClientName,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation),
			errors.Is(err, service.ErrUnknownProgram),
			errors.Is(err, service.ErrTrainerNotFound),
			errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusBadRequest, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Booking failed, please try again")
		}
		return
	}

	c.JSON(http.StatusCreated, BookSessionResponse{
		Session:             MapSessionToResponse(session),
		ConfirmationSeconds: confirmationDisplaySeconds,
	})
}

// ListTrainers returns all trainers for the booking form.
func (h *BookingHandler) ListTrainers(c *gin.Context) {
	trainers, err := h.bookingService.ListTrainers(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load trainers, please try again")
		return
	}

	resp := make([]TrainerResponse, 0, len(trainers))
	for i := range trainers {
		resp = append(resp, mapTrainerToResponse(&trainers[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// MySessions lists the authenticated member's booked sessions.
func (h *BookingHandler) MySessions(c *gin.Context) {
	memberID, ok := principalIDFromToken(c)
	if !ok {
		return
	}

	sessions, err := h.bookingService.SessionsForMember(c.Request.Context(), memberID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load sessions, please try again")
		return
	}
	c.JSON(http.StatusOK, MapSessionsToResponse(sessions))
}

// TrainerSessions lists the sessions booked with the authenticated trainer.
func (h *BookingHandler) TrainerSessions(c *gin.Context) {
	trainerID, ok := principalIDFromToken(c)
	if !ok {
		return
	}

	sessions, err := h.bookingService.SessionsForTrainer(c.Request.Context(), trainerID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load sessions, please try again")
		return
	}
	c.JSON(http.StatusOK, MapSessionsToResponse(sessions))
}

// principalIDFromToken pulls the principal ID set by AuthMiddleware and parses
// it as an ObjectID, aborting the request on failure.
func principalIDFromToken(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token")
		return primitive.NilObjectID, false
	}
	return id, true
}
