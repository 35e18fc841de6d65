package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/repository"
	"fittech/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// FeedbackHandler holds the feedback service dependency.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// --- DTOs ---

type SubmitFeedbackRequest struct {
	Feedback string `json:"feedback" binding:"required"`
}

type FeedbackResponse struct {
	FullName  string    `json:"fullName"`
	Feedback  string    `json:"feedback"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CarouselResponse is one frame of the rotating feedback view plus the
// navigation state the UI needs.
type CarouselResponse struct {
	Entry          *FeedbackResponse `json:"entry,omitempty"`
	Index          int               `json:"index"`
	Total          int               `json:"total"`
	Next           int               `json:"next"`
	Previous       int               `json:"previous"`
	ShowNavigation bool              `json:"showNavigation"`
}

func mapFeedbackToResponse(f *domain.Feedback) *FeedbackResponse {
	if f == nil {
		return nil
	}
	return &FeedbackResponse{
		FullName:  f.FullName,
		Feedback:  f.Feedback,
		UpdatedAt: f.UpdatedAt,
	}
}

// --- Handler Methods ---

// Submit upserts the authenticated member's feedback entry.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	memberID, ok := principalIDFromToken(c)
	if !ok {
		return
	}

	feedback, err := h.feedbackService.Submit(c.Request.Context(), memberID, req.Feedback)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMemberNotFound):
			abortWithError(c, http.StatusNotFound, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Could not save feedback, please try again")
		}
		return
	}

	c.JSON(http.StatusOK, mapFeedbackToResponse(feedback))
}

// Own returns the member's existing feedback entry for the edit view.
func (h *FeedbackHandler) Own(c *gin.Context) {
	memberID, ok := principalIDFromToken(c)
	if !ok {
		return
	}

	feedback, err := h.feedbackService.OwnFeedback(c.Request.Context(), memberID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusOK, gin.H{"entry": nil})
			return
		}
		abortWithError(c, http.StatusInternalServerError, "Could not load feedback, please try again")
		return
	}
	c.JSON(http.StatusOK, gin.H{"entry": mapFeedbackToResponse(feedback)})
}

// Carousel serves one frame of the rotating feedback view. The ?index=
// parameter is clamped into range; next/previous wrap around both ends.
func (h *FeedbackHandler) Carousel(c *gin.Context) {
	feedbacks, err := h.feedbackService.List(c.Request.Context())
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Could not load feedback, please try again")
		return
	}

	carousel := domain.Carousel{Total: len(feedbacks)}
	index, _ := strconv.Atoi(c.DefaultQuery("index", "0"))
	index = carousel.Clamp(index)

	resp := CarouselResponse{
		Index:          index,
		Total:          carousel.Total,
		Next:           carousel.Next(index),
		Previous:       carousel.Prev(index),
		ShowNavigation: carousel.ShowNavigation(),
	}
	if carousel.Total > 0 {
		resp.Entry = mapFeedbackToResponse(&feedbacks[index])
	}
	c.JSON(http.StatusOK, resp)
}
