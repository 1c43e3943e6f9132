package handler

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

type applyRequest struct {
	OfferID int64 `json:"offer_id" validate:"required,gt=0"`
}

type answerRequest struct {
	OfferID int64 `json:"offer_id" validate:"required,gt=0"`
	UserID  int64 `json:"user_id"  validate:"required,gt=0"`
	// Pointer so that an explicit rejection (false) still passes validation.
	Accepted *bool `json:"accepted" validate:"required"`
}

type removeRequest struct {
	OfferID int64 `json:"offer_id" validate:"required,gt=0"`
	UserID  int64 `json:"user_id"  validate:"required,gt=0"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal service changes.

type memberResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type offerResponse struct {
	ID               int64            `json:"id"`
	Title            string           `json:"title"`
	Description      string           `json:"description"`
	SkillID          int64            `json:"skill_id"`
	OwnerID          int64            `json:"owner_id"`
	Available        bool             `json:"available"`
	Limit            int              `json:"limit"`
	Status           string           `json:"status"`
	Applicants       []memberResponse `json:"applicants"`
	Participants     []memberResponse `json:"participants"`
	ApplicantCount   int              `json:"applicant_count"`
	ParticipantCount int              `json:"participant_count"`
}

type ownerOfferApplicantsResponse struct {
	OfferID          int64            `json:"offer_id"`
	Title            string           `json:"title"`
	Available        bool             `json:"available"`
	Limit            int              `json:"limit"`
	Applicants       []memberResponse `json:"applicants"`
	ApplicantCount   int              `json:"applicant_count"`
	ParticipantCount int              `json:"participant_count"`
}
