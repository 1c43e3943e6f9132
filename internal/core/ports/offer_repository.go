package ports

import (
	"context"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

// ListOffersFilter carries all query parameters for listing offers.
type ListOffersFilter struct {
	Title   string // optional: case-insensitive substring match
	SkillID int64  // optional: filter by skill
	OwnerID int64  // optional: filter by owner
	Page    int    // 1-based
	Limit   int    // max rows per page (capped at 100 by the service)
}

// OfferRepository defines CRUD persistence for offers, alongside the
// matching-specific contract in MatchingStore. One adapter implements both.
type OfferRepository interface {
	// Create inserts a new offer and assigns its id.
	Create(ctx context.Context, offer *domain.Offer) error

	// FindByID returns the offer with both membership sets hydrated, or
	// domain.ErrOfferNotFound.
	FindByID(ctx context.Context, id int64) (*domain.Offer, error)

	// List returns a page of offers matching filter and the total count.
	// Membership sets are not hydrated; ApplicantCount/ParticipantCount
	// style summaries are derived from stored set sizes.
	List(ctx context.Context, filter ListOffersFilter) ([]*domain.Offer, int64, error)

	// Update persists the offer's scalar fields with the same version check
	// as MatchingStore.SaveOffer.
	Update(ctx context.Context, offer *domain.Offer) error

	// Delete removes the offer, or returns domain.ErrOfferNotFound.
	Delete(ctx context.Context, id int64) error
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	// Create inserts a new user, assigns its id, and returns the stored
	// record. Duplicate username or email yields domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)

	FindByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
