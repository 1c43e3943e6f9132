// Package policy holds the matching rules as pure predicates over loaded
// snapshots. Nothing here touches storage; the engine evaluates these inside
// its lock/retry scope so the answer stays valid through the save.
package policy

import (
	"github.com/90sidort/skillshare-api/internal/core/domain"
)

// CanApply reports whether the applicant may join the offer's applicant set.
// Capacity is deliberately not checked here: applications queue up even on a
// full offer, and the binding capacity check happens at acceptance time in
// CanAccept.
func CanApply(offer *domain.Offer, applicant *domain.User) error {
	if applicant.ID == offer.OwnerID {
		return domain.ErrOwnOffer
	}
	if offer.IsApplicant(applicant.ID) || offer.IsParticipant(applicant.ID) {
		return domain.ErrAlreadyApplied
	}
	if applicant.CommitmentCount() >= domain.GlobalCommitmentCap {
		return domain.ErrGlobalCapReached
	}
	return nil
}

// CanAccept is the authoritative capacity check, evaluated when the owner
// accepts an applicant.
func CanAccept(offer *domain.Offer) error {
	if !offer.Available {
		return domain.ErrOfferClosed
	}
	if len(offer.Participants) >= offer.Limit {
		return domain.ErrCapacityReached
	}
	return nil
}

// CanAdjudicate reports whether the actor may accept or reject applicants.
// Only the owner adjudicates; admins do not.
func CanAdjudicate(actor domain.Actor, offer *domain.Offer) bool {
	return actor.ID == offer.OwnerID
}

// CanRemoveParticipant reports whether the actor may evict a participant.
func CanRemoveParticipant(actor domain.Actor, offer *domain.Offer) bool {
	return actor.ID == offer.OwnerID || actor.IsAdmin()
}

// CanWithdraw reports whether the actor may withdraw the given application.
// A user may only withdraw their own.
func CanWithdraw(actor domain.Actor, applicantID int64) bool {
	return actor.ID == applicantID
}

// CanListApplicants reports whether the actor may view the applicant lists
// of offers owned by ownerID.
func CanListApplicants(actor domain.Actor, ownerID int64) bool {
	return actor.ID == ownerID || actor.IsAdmin()
}
