package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/90sidort/skillshare-api/internal/api/metrics"
	"github.com/90sidort/skillshare-api/internal/core/domain"
	"github.com/90sidort/skillshare-api/internal/core/ports"
)

// ActionHandler handles the matching operations: apply, withdraw, answer,
// remove, and the owner's applicant listing. Typed engine errors propagate
// to the central error handler for status mapping.
type ActionHandler struct {
	matching ports.MatchingService
}

func NewActionHandler(matching ports.MatchingService) *ActionHandler {
	return &ActionHandler{matching: matching}
}

// Apply handles PATCH /v1/actions/apply.
//
// @Summary      Apply to an offer
// @Tags         actions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyRequest  true  "Offer to apply to"
// @Success      200   {object}  offerResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/actions/apply [patch]
func (h *ActionHandler) Apply(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	offer, err := h.matching.Apply(c.Request().Context(), actor, req.OfferID)
	metrics.MatchingDuration.WithLabelValues("apply").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MatchingErrorsTotal.WithLabelValues("apply", reasonLabel(err)).Inc()
		return err
	}

	metrics.ApplicationsTotal.Inc()
	return c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Withdraw handles PATCH /v1/actions/withdraw.
//
// @Summary      Withdraw an application
// @Tags         actions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      applyRequest  true  "Offer to withdraw from"
// @Success      200   {object}  offerResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/actions/withdraw [patch]
func (h *ActionHandler) Withdraw(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req applyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	offer, err := h.matching.Withdraw(c.Request().Context(), actor, req.OfferID)
	metrics.MatchingDuration.WithLabelValues("withdraw").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MatchingErrorsTotal.WithLabelValues("withdraw", reasonLabel(err)).Inc()
		return err
	}

	metrics.WithdrawalsTotal.Inc()
	return c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Answer handles PATCH /v1/actions/answer — the owner's accept/reject
// decision on a pending applicant.
//
// @Summary      Accept or reject an applicant
// @Tags         actions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      answerRequest  true  "Decision"
// @Success      200   {object}  offerResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/actions/answer [patch]
func (h *ActionHandler) Answer(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req answerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	offer, err := h.matching.Decide(c.Request().Context(), actor, ports.DecisionInput{
		OfferID:  req.OfferID,
		UserID:   req.UserID,
		Accepted: *req.Accepted,
	})
	metrics.MatchingDuration.WithLabelValues("decide").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MatchingErrorsTotal.WithLabelValues("decide", reasonLabel(err)).Inc()
		return err
	}

	outcome := "rejected"
	if *req.Accepted {
		outcome = "accepted"
	}
	metrics.DecisionsTotal.WithLabelValues(outcome).Inc()

	return c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Remove handles PATCH /v1/actions/remove — evicting a participant.
//
// @Summary      Remove a participant from an offer
// @Tags         actions
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      removeRequest  true  "Participant to remove"
// @Success      200   {object}  offerResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/actions/remove [patch]
func (h *ActionHandler) Remove(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req removeRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	start := time.Now()
	offer, err := h.matching.RemoveParticipant(c.Request().Context(), actor, ports.RemovalInput{
		OfferID: req.OfferID,
		UserID:  req.UserID,
	})
	metrics.MatchingDuration.WithLabelValues("remove").Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.MatchingErrorsTotal.WithLabelValues("remove", reasonLabel(err)).Inc()
		return err
	}

	metrics.RemovalsTotal.Inc()
	return c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Applicants handles GET /v1/actions/applicants/:id — the applicant lists
// of all offers owned by the given user, for that user or an admin.
//
// @Summary      List applicants for an owner's offers
// @Tags         actions
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Owner user id"
// @Success      200  {array}   ownerOfferApplicantsResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/actions/applicants/{id} [get]
func (h *ActionHandler) Applicants(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	ownerID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || ownerID <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid owner id")
	}

	offers, err := h.matching.ListApplicantsForOwner(c.Request().Context(), actor, ownerID)
	if err != nil {
		return err
	}

	resp := make([]ownerOfferApplicantsResponse, 0, len(offers))
	for _, o := range offers {
		resp = append(resp, ownerOfferApplicantsResponse{
			OfferID:          o.OfferID,
			Title:            o.Title,
			Available:        o.Available,
			Limit:            o.Limit,
			Applicants:       toMemberResponses(o.Applicants),
			ApplicantCount:   o.ApplicantCount,
			ParticipantCount: o.ParticipantCount,
		})
	}
	return c.JSON(http.StatusOK, resp)
}

func toOfferResponse(o *domain.Offer) offerResponse {
	return offerResponse{
		ID:               o.ID,
		Title:            o.Title,
		Description:      o.Description,
		SkillID:          o.SkillID,
		OwnerID:          o.OwnerID,
		Available:        o.Available,
		Limit:            o.Limit,
		Status:           string(o.Status),
		Applicants:       toMemberResponses(o.Applicants),
		Participants:     toMemberResponses(o.Participants),
		ApplicantCount:   len(o.Applicants),
		ParticipantCount: len(o.Participants),
	}
}

func toMemberResponses(members []domain.Member) []memberResponse {
	out := make([]memberResponse, 0, len(members))
	for _, m := range members {
		out = append(out, memberResponse{ID: m.ID, Username: m.Username})
	}
	return out
}
