package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/90sidort/skillshare-api/internal/core/domain"
	"github.com/90sidort/skillshare-api/internal/core/ports"
)

const maxListLimit = 100

// OfferService implements offer CRUD on top of the offer repository. The
// matching engine owns membership mutations; this service only touches
// scalar fields and enforces the deletion guard.
type OfferService struct {
	offers ports.OfferRepository
	users  ports.UserRepository
	logger zerolog.Logger
}

func NewOfferService(offers ports.OfferRepository, users ports.UserRepository, logger zerolog.Logger) *OfferService {
	return &OfferService{offers: offers, users: users, logger: logger}
}

// CreateOffer publishes a new offer owned by the actor.
func (s *OfferService) CreateOffer(ctx context.Context, actor domain.Actor, in ports.CreateOfferInput) (*domain.Offer, error) {
	owner, err := s.users.FindByID(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("create offer: %w", err)
	}

	limit := in.Limit
	if limit <= 0 {
		limit = domain.DefaultLimit
	}
	if limit > domain.MaxLimit {
		limit = domain.MaxLimit
	}

	now := time.Now().UTC()
	offer := &domain.Offer{
		Title:       in.Title,
		Description: in.Description,
		SkillID:     in.SkillID,
		OwnerID:     owner.ID,
		Available:   true,
		Limit:       limit,
		Status:      domain.OfferPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.offers.Create(ctx, offer); err != nil {
		s.logger.Error().Err(err).Int64("owner_id", owner.ID).Msg("failed to create offer")
		return nil, fmt.Errorf("create offer: %w", err)
	}

	s.logger.Info().
		Int64("offer_id", offer.ID).
		Int64("owner_id", owner.ID).
		Int("limit", offer.Limit).
		Msg("offer created")

	return offer, nil
}

// GetOffer returns a single offer with both membership sets hydrated.
func (s *OfferService) GetOffer(ctx context.Context, id int64) (*domain.Offer, error) {
	offer, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return offer, nil
}

// ListOffers returns a page of offer summaries matching the filter.
func (s *OfferService) ListOffers(ctx context.Context, filter ports.ListOffersFilter) (*ports.ListOffersResult, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 10
	}
	if filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}

	offers, total, err := s.offers.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list offers: %w", err)
	}

	items := make([]ports.OfferSummary, 0, len(offers))
	for _, o := range offers {
		items = append(items, ports.OfferSummary{
			ID:               o.ID,
			Title:            o.Title,
			Description:      o.Description,
			SkillID:          o.SkillID,
			OwnerID:          o.OwnerID,
			Available:        o.Available,
			Limit:            o.Limit,
			Status:           o.Status,
			ApplicantCount:   len(o.Applicants),
			ParticipantCount: len(o.Participants),
		})
	}

	totalPages := int((total + int64(filter.Limit) - 1) / int64(filter.Limit))
	return &ports.ListOffersResult{
		Items:      items,
		Total:      total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: totalPages,
	}, nil
}

// UpdateOffer applies a partial edit to an owned offer. Lowering the limit
// below the current participant count is rejected, so the capacity
// invariant survives owner edits too.
func (s *OfferService) UpdateOffer(ctx context.Context, actor domain.Actor, id int64, in ports.UpdateOfferInput) (*domain.Offer, error) {
	offer, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}
	if offer.OwnerID != actor.ID && !actor.IsAdmin() {
		return nil, fmt.Errorf("update offer: %w", domain.ErrForbidden)
	}

	if in.Title != nil {
		offer.Title = *in.Title
	}
	if in.Description != nil {
		offer.Description = *in.Description
	}
	if in.Available != nil {
		offer.Available = *in.Available
	}
	if in.Status != nil {
		offer.Status = *in.Status
	}
	if in.Limit != nil {
		limit := *in.Limit
		if limit < 1 || limit > domain.MaxLimit {
			return nil, fmt.Errorf("update offer: limit out of range: %w", domain.ErrCapacityReached)
		}
		if limit < len(offer.Participants) {
			return nil, fmt.Errorf("update offer: limit below current participants: %w", domain.ErrCapacityReached)
		}
		offer.Limit = limit
	}
	offer.UpdatedAt = time.Now().UTC()

	if err := s.offers.Update(ctx, offer); err != nil {
		return nil, fmt.Errorf("update offer: %w", err)
	}

	s.logger.Info().Int64("offer_id", id).Int64("actor_id", actor.ID).Msg("offer updated")
	return offer, nil
}

// DeleteOffer removes an offer once both membership sets are empty.
func (s *OfferService) DeleteOffer(ctx context.Context, actor domain.Actor, id int64) error {
	offer, err := s.offers.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if offer.OwnerID != actor.ID && !actor.IsAdmin() {
		return fmt.Errorf("delete offer: %w", domain.ErrForbidden)
	}
	if len(offer.Applicants) > 0 || len(offer.Participants) > 0 {
		return fmt.Errorf("delete offer: %w", domain.ErrOfferHasMembers)
	}

	if err := s.offers.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}

	s.logger.Info().Int64("offer_id", id).Int64("actor_id", actor.ID).Msg("offer deleted")
	return nil
}
