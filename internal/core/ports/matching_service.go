package ports

import (
	"context"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

// DecisionInput carries an owner's accept/reject verdict on an applicant.
type DecisionInput struct {
	OfferID  int64
	UserID   int64
	Accepted bool
}

// RemovalInput identifies a participant to evict from an offer.
type RemovalInput struct {
	OfferID int64
	UserID  int64
}

// OwnerOfferApplicants is one owned offer with its pending applicants, used
// by the adjudication listing.
type OwnerOfferApplicants struct {
	OfferID          int64
	Title            string
	Available        bool
	Limit            int
	Applicants       []domain.Member
	ApplicantCount   int
	ParticipantCount int
}

// MatchingService orchestrates the applicant/participant state transitions
// on offers. Every mutation runs as load → policy check → mutate → single
// save, serialized per offer.
type MatchingService interface {
	// Apply adds the actor to the offer's applicant set.
	Apply(ctx context.Context, actor domain.Actor, offerID int64) (*domain.Offer, error)

	// Withdraw removes the actor's own application. Absence is a no-op
	// success.
	Withdraw(ctx context.Context, actor domain.Actor, offerID int64) (*domain.Offer, error)

	// Decide accepts or rejects a pending applicant. Acceptance moves the
	// target from applicants to participants in one save.
	Decide(ctx context.Context, actor domain.Actor, in DecisionInput) (*domain.Offer, error)

	// RemoveParticipant evicts a participant. Absence is a no-op success.
	RemoveParticipant(ctx context.Context, actor domain.Actor, in RemovalInput) (*domain.Offer, error)

	// ListApplicantsForOwner returns the applicant lists of all offers owned
	// by ownerID, for the owner themselves or an admin.
	ListApplicantsForOwner(ctx context.Context, actor domain.Actor, ownerID int64) ([]OwnerOfferApplicants, error)
}
