package policy

import (
	"errors"
	"testing"

	"github.com/90sidort/skillshare-api/internal/core/domain"
)

func member(id int64) domain.Member {
	return domain.Member{ID: id}
}

func TestCanApply(t *testing.T) {
	tests := []struct {
		name      string
		offer     *domain.Offer
		applicant *domain.User
		wantErr   error
	}{
		{
			name:      "fresh applicant",
			offer:     &domain.Offer{OwnerID: 1, Available: true, Limit: 3},
			applicant: &domain.User{ID: 2},
			wantErr:   nil,
		},
		{
			name:      "own offer",
			offer:     &domain.Offer{OwnerID: 1, Available: true, Limit: 3},
			applicant: &domain.User{ID: 1},
			wantErr:   domain.ErrOwnOffer,
		},
		{
			name: "already applied",
			offer: &domain.Offer{
				OwnerID:    1,
				Available:  true,
				Limit:      3,
				Applicants: []domain.Member{member(2)},
			},
			applicant: &domain.User{ID: 2},
			wantErr:   domain.ErrAlreadyApplied,
		},
		{
			name: "already participating",
			offer: &domain.Offer{
				OwnerID:      1,
				Available:    true,
				Limit:        3,
				Participants: []domain.Member{member(2)},
			},
			applicant: &domain.User{ID: 2},
			wantErr:   domain.ErrAlreadyApplied,
		},
		{
			name:  "global cap reached",
			offer: &domain.Offer{OwnerID: 1, Available: true, Limit: 3},
			applicant: &domain.User{
				ID:      2,
				Applied: make([]domain.OfferRef, domain.GlobalCommitmentCap),
			},
			wantErr: domain.ErrGlobalCapReached,
		},
		{
			name:  "cap counts applied and participating combined",
			offer: &domain.Offer{OwnerID: 1, Available: true, Limit: 3},
			applicant: &domain.User{
				ID:           2,
				Applied:      make([]domain.OfferRef, domain.GlobalCommitmentCap/2),
				Participates: make([]domain.OfferRef, domain.GlobalCommitmentCap-domain.GlobalCommitmentCap/2),
			},
			wantErr: domain.ErrGlobalCapReached,
		},
		{
			// Capacity pressure never blocks an application.
			name: "full offer still accepts applications",
			offer: &domain.Offer{
				OwnerID:      1,
				Available:    true,
				Limit:        1,
				Participants: []domain.Member{member(9)},
			},
			applicant: &domain.User{ID: 2},
			wantErr:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanApply(tt.offer, tt.applicant)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CanApply = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanAccept(t *testing.T) {
	tests := []struct {
		name    string
		offer   *domain.Offer
		wantErr error
	}{
		{
			name:    "room left",
			offer:   &domain.Offer{Available: true, Limit: 2, Participants: []domain.Member{member(3)}},
			wantErr: nil,
		},
		{
			name:    "at capacity",
			offer:   &domain.Offer{Available: true, Limit: 1, Participants: []domain.Member{member(3)}},
			wantErr: domain.ErrCapacityReached,
		},
		{
			name:    "closed offer",
			offer:   &domain.Offer{Available: false, Limit: 3},
			wantErr: domain.ErrOfferClosed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanAccept(tt.offer)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("CanAccept = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanAdjudicate(t *testing.T) {
	offer := &domain.Offer{OwnerID: 1}

	if !CanAdjudicate(domain.Actor{ID: 1}, offer) {
		t.Fatalf("owner must adjudicate")
	}
	if CanAdjudicate(domain.Actor{ID: 2}, offer) {
		t.Fatalf("stranger must not adjudicate")
	}
	if CanAdjudicate(domain.Actor{ID: 2, Roles: []domain.Role{domain.RoleAdmin}}, offer) {
		t.Fatalf("admin must not adjudicate on another owner's offer")
	}
}

func TestCanRemoveParticipant(t *testing.T) {
	offer := &domain.Offer{OwnerID: 1}

	if !CanRemoveParticipant(domain.Actor{ID: 1}, offer) {
		t.Fatalf("owner must remove")
	}
	if !CanRemoveParticipant(domain.Actor{ID: 2, Roles: []domain.Role{domain.RoleAdmin}}, offer) {
		t.Fatalf("admin must remove")
	}
	if CanRemoveParticipant(domain.Actor{ID: 2}, offer) {
		t.Fatalf("stranger must not remove")
	}
}

func TestCanWithdraw(t *testing.T) {
	if !CanWithdraw(domain.Actor{ID: 2}, 2) {
		t.Fatalf("user must withdraw own application")
	}
	if CanWithdraw(domain.Actor{ID: 2}, 3) {
		t.Fatalf("user must not withdraw another user's application")
	}
}

func TestCanListApplicants(t *testing.T) {
	if !CanListApplicants(domain.Actor{ID: 1}, 1) {
		t.Fatalf("owner must list own applicants")
	}
	if !CanListApplicants(domain.Actor{ID: 2, Roles: []domain.Role{domain.RoleAdmin}}, 1) {
		t.Fatalf("admin must list any applicants")
	}
	if CanListApplicants(domain.Actor{ID: 2}, 1) {
		t.Fatalf("stranger must not list applicants")
	}
}
