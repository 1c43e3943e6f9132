package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/90sidort/skillshare-api/internal/core/domain"
	"github.com/90sidort/skillshare-api/internal/core/policy"
	"github.com/90sidort/skillshare-api/internal/core/ports"
)

const (
	// conflictAttempts bounds how often a version conflict is retried before
	// it surfaces to the caller. Business-rule errors are never retried.
	conflictAttempts = 3
	conflictBackoff  = 25 * time.Millisecond
)

// MatchingService implements ports.MatchingService. Apply and Decide take
// the per-offer lock for their whole span because they grow a bounded set;
// Withdraw and RemoveParticipant only shrink sets and rely on the version
// check alone.
type MatchingService struct {
	store  ports.MatchingStore
	locker ports.OfferLocker
	logger zerolog.Logger
}

func NewMatchingService(store ports.MatchingStore, locker ports.OfferLocker, logger zerolog.Logger) *MatchingService {
	return &MatchingService{store: store, locker: locker, logger: logger}
}

// Apply adds the actor to the offer's applicant set after evaluating
// CanApply against state re-read under the offer lock.
func (s *MatchingService) Apply(ctx context.Context, actor domain.Actor, offerID int64) (*domain.Offer, error) {
	release, err := s.locker.LockOfferForUpdate(ctx, offerID)
	if err != nil {
		return nil, fmt.Errorf("apply: lock offer %d: %w", offerID, err)
	}
	defer release()

	offer, err := s.withConflictRetry(ctx, func() (*domain.Offer, error) {
		// The commitment count must come from inside the locked scope, or
		// two simultaneous applications could both pass the global cap.
		user, err := s.store.LoadUserWithRelations(ctx, actor.ID, ports.UserRelations{Applied: true, Participates: true})
		if err != nil {
			return nil, err
		}

		offer, err := s.store.LoadOfferWithRelations(ctx, offerID, ports.OfferRelations{Applicants: true, Participants: true})
		if err != nil {
			return nil, err
		}

		if err := policy.CanApply(offer, user); err != nil {
			return nil, err
		}

		offer.AddApplicant(domain.Member{ID: user.ID, Username: user.Username})
		if err := s.store.SaveOffer(ctx, offer); err != nil {
			return nil, err
		}
		return offer, nil
	})
	if err != nil {
		return nil, fmt.Errorf("apply: %w", err)
	}

	s.logger.Info().
		Int64("offer_id", offerID).
		Int64("user_id", actor.ID).
		Int("applicants", len(offer.Applicants)).
		Msg("application recorded")

	return offer, nil
}

// Withdraw removes the actor's own application. A missing application is a
// no-op success, so repeated withdrawals converge on the same state.
func (s *MatchingService) Withdraw(ctx context.Context, actor domain.Actor, offerID int64) (*domain.Offer, error) {
	if !policy.CanWithdraw(actor, actor.ID) {
		return nil, fmt.Errorf("withdraw: %w", domain.ErrForbidden)
	}

	offer, err := s.withConflictRetry(ctx, func() (*domain.Offer, error) {
		offer, err := s.store.LoadOfferWithRelations(ctx, offerID, ports.OfferRelations{Applicants: true, Participants: true})
		if err != nil {
			return nil, err
		}

		removed := offer.RemoveApplicant(actor.ID)
		if err := s.store.SaveOffer(ctx, offer); err != nil {
			return nil, err
		}
		if !removed {
			s.logger.Debug().
				Int64("offer_id", offerID).
				Int64("user_id", actor.ID).
				Msg("withdraw of absent application, no-op")
		}
		return offer, nil
	})
	if err != nil {
		return nil, fmt.Errorf("withdraw: %w", err)
	}

	s.logger.Info().
		Int64("offer_id", offerID).
		Int64("user_id", actor.ID).
		Msg("application withdrawn")

	return offer, nil
}

// Decide adjudicates a pending application. Acceptance moves the target
// from applicants to participants; rejection just drops the application.
// Both set mutations land in a single save.
func (s *MatchingService) Decide(ctx context.Context, actor domain.Actor, in ports.DecisionInput) (*domain.Offer, error) {
	release, err := s.locker.LockOfferForUpdate(ctx, in.OfferID)
	if err != nil {
		return nil, fmt.Errorf("decide: lock offer %d: %w", in.OfferID, err)
	}
	defer release()

	offer, err := s.withConflictRetry(ctx, func() (*domain.Offer, error) {
		target, err := s.store.LoadUserWithRelations(ctx, in.UserID, ports.UserRelations{})
		if err != nil {
			return nil, err
		}

		offer, err := s.store.LoadOfferWithRelations(ctx, in.OfferID, ports.OfferRelations{Applicants: true, Participants: true})
		if err != nil {
			return nil, err
		}

		if !offer.IsApplicant(target.ID) {
			return nil, domain.ErrNotApplied
		}
		if !policy.CanAdjudicate(actor, offer) {
			return nil, domain.ErrForbidden
		}
		if !offer.Available {
			return nil, domain.ErrOfferClosed
		}

		if in.Accepted {
			if err := policy.CanAccept(offer); err != nil {
				return nil, err
			}
			offer.AddParticipant(domain.Member{ID: target.ID, Username: target.Username})
		}
		offer.RemoveApplicant(target.ID)

		if err := s.store.SaveOffer(ctx, offer); err != nil {
			return nil, err
		}
		return offer, nil
	})
	if err != nil {
		return nil, fmt.Errorf("decide: %w", err)
	}

	s.logger.Info().
		Int64("offer_id", in.OfferID).
		Int64("user_id", in.UserID).
		Bool("accepted", in.Accepted).
		Int("participants", len(offer.Participants)).
		Msg("application decided")

	return offer, nil
}

// RemoveParticipant evicts a participant. Absence is a no-op success.
func (s *MatchingService) RemoveParticipant(ctx context.Context, actor domain.Actor, in ports.RemovalInput) (*domain.Offer, error) {
	offer, err := s.withConflictRetry(ctx, func() (*domain.Offer, error) {
		offer, err := s.store.LoadOfferWithRelations(ctx, in.OfferID, ports.OfferRelations{Applicants: true, Participants: true})
		if err != nil {
			return nil, err
		}

		if !policy.CanRemoveParticipant(actor, offer) {
			return nil, domain.ErrForbidden
		}

		offer.RemoveParticipant(in.UserID)
		if err := s.store.SaveOffer(ctx, offer); err != nil {
			return nil, err
		}
		return offer, nil
	})
	if err != nil {
		return nil, fmt.Errorf("remove participant: %w", err)
	}

	s.logger.Info().
		Int64("offer_id", in.OfferID).
		Int64("user_id", in.UserID).
		Int64("actor_id", actor.ID).
		Msg("participant removed")

	return offer, nil
}

// ListApplicantsForOwner returns all offers owned by ownerID with their
// pending applicants. An owner with zero offers yields ErrUserNotFound; the
// listing cannot tell a memberless owner from a nonexistent one and keeps
// the established contract.
func (s *MatchingService) ListApplicantsForOwner(ctx context.Context, actor domain.Actor, ownerID int64) ([]ports.OwnerOfferApplicants, error) {
	if !policy.CanListApplicants(actor, ownerID) {
		return nil, fmt.Errorf("list applicants: %w", domain.ErrForbidden)
	}

	offers, err := s.store.ListOffersByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list applicants: %w", err)
	}
	if len(offers) == 0 {
		return nil, fmt.Errorf("list applicants: %w", domain.ErrUserNotFound)
	}

	out := make([]ports.OwnerOfferApplicants, 0, len(offers))
	for _, o := range offers {
		out = append(out, ports.OwnerOfferApplicants{
			OfferID:          o.ID,
			Title:            o.Title,
			Available:        o.Available,
			Limit:            o.Limit,
			Applicants:       o.Applicants,
			ApplicantCount:   len(o.Applicants),
			ParticipantCount: len(o.Participants),
		})
	}
	return out, nil
}

// withConflictRetry runs op, retrying only on domain.ErrConflict with a
// short linear backoff. Each attempt re-reads all state, so a retried op
// always decides against the winner's committed version.
func (s *MatchingService) withConflictRetry(ctx context.Context, op func() (*domain.Offer, error)) (*domain.Offer, error) {
	var lastErr error
	for attempt := 1; attempt <= conflictAttempts; attempt++ {
		offer, err := op()
		if err == nil {
			return offer, nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return nil, err
		}
		lastErr = err

		s.logger.Warn().
			Int("attempt", attempt).
			Msg("save conflict, retrying")

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(time.Duration(attempt) * conflictBackoff):
		}
	}
	return nil, lastErr
}
