package ports

import (
	"context"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

// CreateOfferInput carries all data needed to publish a new offer.
type CreateOfferInput struct {
	Title       string
	Description string
	SkillID     int64
	OwnerID     int64
	// Limit is the participant capacity; zero means domain.DefaultLimit.
	Limit int
}

// UpdateOfferInput carries a partial offer edit. Nil fields are untouched.
type UpdateOfferInput struct {
	Title       *string
	Description *string
	Available   *bool
	Limit       *int
	Status      *domain.OfferStatus
}

// OfferSummary is the lightweight view used in list responses.
type OfferSummary struct {
	ID               int64
	Title            string
	Description      string
	SkillID          int64
	OwnerID          int64
	Available        bool
	Limit            int
	Status           domain.OfferStatus
	ApplicantCount   int
	ParticipantCount int
}

// ListOffersResult is returned by ListOffers.
type ListOffersResult struct {
	Items      []OfferSummary
	Total      int64
	Page       int
	Limit      int
	TotalPages int
}

// OfferService defines use-case operations for offer CRUD.
type OfferService interface {
	CreateOffer(ctx context.Context, actor domain.Actor, in CreateOfferInput) (*domain.Offer, error)
	GetOffer(ctx context.Context, id int64) (*domain.Offer, error)
	ListOffers(ctx context.Context, filter ListOffersFilter) (*ListOffersResult, error)

	// UpdateOffer applies a partial edit. Only the owner or an admin may
	// edit.
	UpdateOffer(ctx context.Context, actor domain.Actor, id int64, in UpdateOfferInput) (*domain.Offer, error)

	// DeleteOffer removes an offer. It refuses with domain.ErrOfferHasMembers
	// while either membership set is non-empty.
	DeleteOffer(ctx context.Context, actor domain.Actor, id int64) error
}
