package api

import (
	"errors"
	"net/http"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler serves the member profile page and the admin listings.
type ProfileHandler struct {
	memberService   service.MemberService
	bookingService  service.BookingService
	feedbackService service.FeedbackService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(
	memberService service.MemberService,
	bookingService service.BookingService,
	feedbackService service.FeedbackService,
) *ProfileHandler {
	return &ProfileHandler{
		memberService:   memberService,
		bookingService:  bookingService,
		feedbackService: feedbackService,
	}
}

// --- DTOs ---

type UpdateProfileRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	Phone     string `json:"phone"`
}

type MemberProfileResponse struct {
	ID             string  `json:"id"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	Email          string  `json:"email"`
	Phone          string  `json:"phone"`
	DateOfBirth    string  `json:"dateOfBirth"`
	MembershipTier string  `json:"membershipTier"`
	Price          float64 `json:"price"`
}

// ProfilePageResponse bundles everything the profile page renders in one
// round trip: the profile itself, booked sessions and the member's
// feedback entry if any.
type ProfilePageResponse struct {
	Profile  MemberProfileResponse `json:"profile"`
	Sessions []SessionResponse     `json:"sessions"`
	Feedback *FeedbackResponse     `json:"feedback,omitempty"`
}

type TrainerResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Specialization string `json:"specialization"`
}

func mapMemberToResponse(m *domain.MemberProfile) MemberProfileResponse {
	return MemberProfileResponse{
		ID:             m.ID.Hex(),
		FirstName:      m.FirstName,
		LastName:       m.LastName,
		Email:          m.Email,
		Phone:          m.Phone,
		DateOfBirth:    m.DateOfBirth,
		MembershipTier: string(m.MembershipTier),
		Price:          m.MembershipTier.Price(),
	}
}

func mapTrainerToResponse(t *domain.TrainerProfile) TrainerResponse {
	return TrainerResponse{
		ID:             t.ID.Hex(),
		Name:           t.Name,
		Specialization: t.Specialization,
	}
}

// --- Handlers ---

// GetProfile handles GET /profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	memberID, ok := principalIDFromToken(c)
	if !ok {
		return
	}

	profile, err := h.memberService.GetProfile(c.Request.Context(), memberID)
	if err != nil {
		writeProfileError(c, err)
		return
	}

	sessions, err := h.bookingService.SessionsForMember(c.Request.Context(), memberID)
	if err != nil {
		writeProfileError(c, err)
		return
	}

	// The feedback slot is optional; a member without an entry still gets
	// their profile page.
	var feedback *FeedbackResponse
	if own, err := h.feedbackService.OwnFeedback(c.Request.Context(), memberID); err == nil {
		feedback = mapFeedbackToResponse(own)
	}

	c.JSON(http.StatusOK, ProfilePageResponse{
		Profile:  mapMemberToResponse(profile),
		Sessions: MapSessionsToResponse(sessions),
		Feedback: feedback,
	})
}

// UpdateProfile handles PUT /profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	memberID, ok := principalIDFromToken(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}

	profile, err := h.memberService.UpdateProfile(c.Request.Context(), memberID, domain.ProfileUpdate{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
	})
	if err != nil {
		writeProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapMemberToResponse(profile))
}

// ListMembers handles GET /admin/members
func (h *ProfileHandler) ListMembers(c *gin.Context) {
	members, err := h.memberService.ListMembers(c.Request.Context())
	if err != nil {
		writeProfileError(c, err)
		return
	}

	resp := make([]MemberProfileResponse, 0, len(members))
	for i := range members {
		resp = append(resp, mapMemberToResponse(&members[i]))
	}
	c.JSON(http.StatusOK, resp)
}

func writeProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMemberNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Member profile not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load profile data"})
	}
}
