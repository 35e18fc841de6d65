package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittech/gym-app/internal/identity"
	"fittech/gym-app/internal/payment"
	"fittech/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// RegistrationHandler holds the registration workflow dependency.
type RegistrationHandler struct {
	registrationService service.RegistrationService
}

// NewRegistrationHandler creates a new RegistrationHandler.
func NewRegistrationHandler(registrationService service.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registrationService}
}

// --- Request/Response Structs ---

type CardRequest struct {
	Number          string `json:"number" binding:"required"`
	ExpirationMonth string `json:"expirationMonth" binding:"required"`
	ExpirationYear  string `json:"expirationYear" binding:"required"`
	SecurityCode    string `json:"securityCode" binding:"required"`
	HolderName      string `json:"holderName" binding:"required"`
}

type RegisterRequest struct {
	FirstName       string      `json:"firstName" binding:"required"`
	LastName        string      `json:"lastName" binding:"required"`
	Email           string      `json:"email" binding:"required,email"`
	Phone           string      `json:"phone" binding:"required"`
	DateOfBirth     string      `json:"dateOfBirth" binding:"required"`
	Password        string      `json:"password" binding:"required,min=8"`
	ConfirmPassword string      `json:"confirmPassword" binding:"required"`
	Card            CardRequest `json:"card" binding:"required"`
}

type RegisterResponse struct {
	RegistrationID string `json:"registrationId"`
	MemberID       string `json:"memberId"`
	Tier           string `json:"tier"`
	Message        string `json:"message"`
}

// --- Handler Methods ---

// Register runs the full registration workflow. The membership tier comes
// from the ?membership= query parameter the landing page links carry and
// defaults to gold.
func (h *RegistrationHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	input := service.RegistrationInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Phone:           req.Phone,
		DateOfBirth:     req.DateOfBirth,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Tier:            c.Query("membership"),
		Card: payment.CardDetails{
			Number:          req.Card.Number,
			ExpirationMonth: req.Card.ExpirationMonth,
			ExpirationYear:  req.Card.ExpirationYear,
			SecurityCode:    req.Card.SecurityCode,
			HolderName:      req.Card.HolderName,
		},
	}

	result, err := h.registrationService.Register(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrValidation):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, identity.ErrEmailTaken):
			abortWithError(c, http.StatusConflict, err.Error())
		case errors.Is(err, identity.ErrWeakSecret):
			abortWithError(c, http.StatusBadRequest, err.Error())
		case errors.Is(err, payment.ErrCard):
			abortWithError(c, http.StatusPaymentRequired, err.Error())
		default:
			abortWithError(c, http.StatusInternalServerError, "Registration could not be completed, please try again")
		}
		return
	}

	c.JSON(http.StatusCreated, RegisterResponse{
		RegistrationID: result.RegistrationID,
		MemberID:       result.MemberID.Hex(),
		Tier:           string(result.Tier),
		Message:        result.Message,
	})
}
