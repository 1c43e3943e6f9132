package domain

import (
	"errors"
	"time"
)

// OfferStatus represents the offer's own published state. It is independent
// of any single applicant's outcome.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"
	OfferAccepted OfferStatus = "accepted"
)

const (
	// DefaultLimit is the participant capacity assigned to new offers.
	DefaultLimit = 3
	// MaxLimit is the largest participant capacity an owner may set.
	MaxLimit = 10
	// GlobalCommitmentCap is the maximum combined applied+participating
	// offers a single user may hold at once.
	GlobalCommitmentCap = 10
)

var ErrOfferNotFound = errors.New("offer not found")
var ErrUserNotFound = errors.New("user not found")
var ErrOwnOffer = errors.New("cannot apply to own offer")
var ErrAlreadyApplied = errors.New("already applied or participating")
var ErrGlobalCapReached = errors.New("skill share limit reached")
var ErrCapacityReached = errors.New("offer capacity reached")
var ErrOfferClosed = errors.New("offer no longer available")
var ErrNotApplied = errors.New("user did not apply for this offer")
var ErrForbidden = errors.New("access forbidden")
var ErrConflict = errors.New("concurrent modification, retry")
var ErrOfferHasMembers = errors.New("offer has active members")

// Member is a user reference hydrated into an offer's relation sets.
type Member struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// Offer is the aggregate root for matching. The applicant and participant
// sets are the source of truth for memberships; a user's applied and
// participating views are derived from them.
type Offer struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	SkillID     int64       `json:"skill_id"`
	OwnerID     int64       `json:"owner_id"`
	Available   bool        `json:"available"`
	Limit       int         `json:"limit"`
	Status      OfferStatus `json:"status"`

	Applicants   []Member `json:"applicants,omitempty"`
	Participants []Member `json:"participants,omitempty"`

	// Version guards concurrent saves: the store rejects a save whose
	// in-memory version no longer matches the stored one.
	Version   int64     `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsApplicant reports whether the user is currently in the applicant set.
func (o *Offer) IsApplicant(userID int64) bool {
	return containsMember(o.Applicants, userID)
}

// IsParticipant reports whether the user is currently in the participant set.
func (o *Offer) IsParticipant(userID int64) bool {
	return containsMember(o.Participants, userID)
}

// AddApplicant inserts the member into the applicant set. Duplicates are the
// caller's responsibility (CanApply rejects them first).
func (o *Offer) AddApplicant(m Member) {
	o.Applicants = append(o.Applicants, m)
}

// AddParticipant inserts the member into the participant set.
func (o *Offer) AddParticipant(m Member) {
	o.Participants = append(o.Participants, m)
}

// RemoveApplicant removes the user from the applicant set and reports
// whether they were present.
func (o *Offer) RemoveApplicant(userID int64) bool {
	var removed bool
	o.Applicants, removed = removeMember(o.Applicants, userID)
	return removed
}

// RemoveParticipant removes the user from the participant set and reports
// whether they were present.
func (o *Offer) RemoveParticipant(userID int64) bool {
	var removed bool
	o.Participants, removed = removeMember(o.Participants, userID)
	return removed
}

func containsMember(members []Member, userID int64) bool {
	for _, m := range members {
		if m.ID == userID {
			return true
		}
	}
	return false
}

func removeMember(members []Member, userID int64) ([]Member, bool) {
	for i, m := range members {
		if m.ID == userID {
			return append(members[:i], members[i+1:]...), true
		}
	}
	return members, false
}
