package api

import (
	"net/http"

	"fittech/gym-app/internal/service"

	"github.com/gin-gonic/gin"
)

// CatalogHandler holds the catalog service dependency.
type CatalogHandler struct {
	catalogService service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(catalogService service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogService: catalogService}
}

// --- DTOs ---

type ProgramResponse struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl,omitempty"`
}

type MembershipResponse struct {
	Tier     string   `json:"tier"`
	Price    float64  `json:"price"`
	Features []string `json:"features"`
}

// --- Handlers ---

// ListPrograms handles GET /programs
func (h *CatalogHandler) ListPrograms(c *gin.Context) {
	listings, err := h.catalogService.Programs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load programs"})
		return
	}

	resp := make([]ProgramResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, ProgramResponse{
			Name:        l.Program.Name,
			Description: l.Program.Description,
			ImageURL:    l.ImageURL,
		})
	}
	c.JSON(http.StatusOK, resp)
}

// ListMemberships handles GET /memberships
func (h *CatalogHandler) ListMemberships(c *gin.Context) {
	listings := h.catalogService.Memberships()

	resp := make([]MembershipResponse, 0, len(listings))
	for _, l := range listings {
		resp = append(resp, MembershipResponse{
			Tier:     string(l.Tier),
			Price:    l.Price,
			Features: l.Features,
		})
	}
	c.JSON(http.StatusOK, resp)
}
