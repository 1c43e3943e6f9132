package ports

import (
	"context"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

// OfferRelations selects which membership sets to hydrate when loading an
// offer aggregate.
type OfferRelations struct {
	Applicants   bool
	Participants bool
}

// UserRelations selects which derived offer views to hydrate when loading a
// user.
type UserRelations struct {
	Applied      bool
	Participates bool
}

// MatchingStore is the persistence contract the matching engine needs. The
// offer document is the single source of truth for memberships: SaveOffer
// persists both relation sets in one atomic, version-checked write, and a
// user's applied/participating views are queries over offers.
type MatchingStore interface {
	// LoadOfferWithRelations returns the offer with the requested membership
	// sets hydrated, or domain.ErrOfferNotFound.
	LoadOfferWithRelations(ctx context.Context, id int64, rels OfferRelations) (*domain.Offer, error)

	// LoadUserWithRelations returns the user with the requested derived
	// views hydrated, or domain.ErrUserNotFound.
	LoadUserWithRelations(ctx context.Context, id int64, rels UserRelations) (*domain.User, error)

	// SaveOffer persists the offer's scalar fields and both membership sets.
	// Returns domain.ErrConflict when the stored version no longer matches
	// the aggregate's (concurrent writer won), and domain.ErrOfferNotFound
	// when the offer was deleted underneath the caller.
	SaveOffer(ctx context.Context, offer *domain.Offer) error

	// ListOffersByOwner returns all offers owned by ownerID with both
	// membership sets hydrated. An owner with no offers yields an empty
	// slice, not an error.
	ListOffersByOwner(ctx context.Context, ownerID int64) ([]*domain.Offer, error)
}

// OfferLocker serializes mutations per offer id. Apply and Decide hold the
// lock for their whole load-check-save span so two concurrent calls cannot
// both observe room for one more participant.
type OfferLocker interface {
	// LockOfferForUpdate acquires the lock for the offer, waiting up to a
	// bounded time. It returns a release func that must be called on every
	// exit path, or domain.ErrConflict when the lock cannot be acquired in
	// time.
	LockOfferForUpdate(ctx context.Context, offerID int64) (release func(), err error)
}
