package handler

// --- Request types ---

type createOfferRequest struct {
	Title       string `json:"title"       validate:"required,min=3,max=300"`
	Description string `json:"description" validate:"required,min=3,max=2000"`
	SkillID     int64  `json:"skill_id"    validate:"required,gt=0"`
	Limit       int    `json:"limit"       validate:"omitempty,gte=1,lte=10"`
}

type updateOfferRequest struct {
	Title       *string `json:"title"       validate:"omitempty,min=3,max=300"`
	Description *string `json:"description" validate:"omitempty,min=3,max=2000"`
	Available   *bool   `json:"available"`
	Limit       *int    `json:"limit"       validate:"omitempty,gte=1,lte=10"`
	Status      *string `json:"status"      validate:"omitempty,oneof=pending accepted"`
}

// --- Response types ---

// offerSummaryResponse is the lightweight item used in list responses. It
// intentionally omits the member lists to keep payloads small.
type offerSummaryResponse struct {
	ID               int64  `json:"id"`
	Title            string `json:"title"`
	Description      string `json:"description"`
	SkillID          int64  `json:"skill_id"`
	OwnerID          int64  `json:"owner_id"`
	Available        bool   `json:"available"`
	Limit            int    `json:"limit"`
	Status           string `json:"status"`
	ApplicantCount   int    `json:"applicant_count"`
	ParticipantCount int    `json:"participant_count"`
}

type paginationResponse struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}

type listOffersResponse struct {
	Data       []offerSummaryResponse `json:"data"`
	Pagination paginationResponse     `json:"pagination"`
}
