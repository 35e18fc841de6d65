package service

import (
	"context"
	"log"

	"fittech/gym-app/internal/domain"
	"fittech/gym-app/internal/storage"
)

// ProgramListing pairs a catalog entry with a temporary artwork URL.
type ProgramListing struct {
	Program  domain.Program
	ImageURL string
}

// MembershipListing describes one purchasable tier.
type MembershipListing struct {
	Tier     domain.Tier
	Price    float64
	Features []string
}

// CatalogService serves the public landing-page data: training programs
// and the membership price table.
type CatalogService interface {
	Programs(ctx context.Context) ([]ProgramListing, error)
	Memberships() []MembershipListing
}

type catalogService struct {
	media storage.MediaStorage
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(media storage.MediaStorage) CatalogService {
	return &catalogService{media: media}
}

// Programs returns the static program catalog. Artwork links are presigned
// per request; a storage hiccup degrades to an empty URL instead of hiding
// the program.
func (s *catalogService) Programs(ctx context.Context) ([]ProgramListing, error) {
	programs := domain.Programs()
	listings := make([]ProgramListing, 0, len(programs))
	for _, p := range programs {
		url := ""
		if s.media != nil && p.ImageKey != "" {
			presigned, err := s.media.ImageURL(ctx, p.ImageKey, storage.DefaultPresignedURLExpiry)
			if err != nil {
				log.Printf("WARN: Failed to presign image for program %s: %v\n", p.Name, err)
			} else {
				url = presigned
			}
		}
		listings = append(listings, ProgramListing{Program: p, ImageURL: url})
	}
	return listings, nil
}

func (s *catalogService) Memberships() []MembershipListing {
	tiers := domain.Tiers()
	listings := make([]MembershipListing, 0, len(tiers))
	for _, t := range tiers {
		listings = append(listings, MembershipListing{
			Tier:     t,
			Price:    t.Price(),
			Features: t.Features(),
		})
	}
	return listings
}
