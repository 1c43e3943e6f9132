package handler

import (
	"errors"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

// reasonLabel converts an engine error into a low-cardinality metric label.
func reasonLabel(err error) string {
	switch {
	case errors.Is(err, domain.ErrOfferNotFound):
		return "offer_not_found"
	case errors.Is(err, domain.ErrUserNotFound):
		return "user_not_found"
	case errors.Is(err, domain.ErrOwnOffer):
		return "own_offer"
	case errors.Is(err, domain.ErrAlreadyApplied):
		return "already_applied"
	case errors.Is(err, domain.ErrGlobalCapReached):
		return "global_cap_reached"
	case errors.Is(err, domain.ErrCapacityReached):
		return "capacity_reached"
	case errors.Is(err, domain.ErrOfferClosed):
		return "offer_closed"
	case errors.Is(err, domain.ErrNotApplied):
		return "not_applied"
	case errors.Is(err, domain.ErrForbidden):
		return "forbidden"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}
