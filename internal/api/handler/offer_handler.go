package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/90sidort/skillshare-api/internal/core/domain"
	"github.com/90sidort/skillshare-api/internal/core/ports"
)

// OfferHandler handles HTTP requests for offer CRUD.
type OfferHandler struct {
	service ports.OfferService
}

func NewOfferHandler(service ports.OfferService) *OfferHandler {
	return &OfferHandler{service: service}
}

// Create handles POST /v1/offers.
//
// @Summary      Publish a new offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createOfferRequest  true  "Offer details"
// @Success      201   {object}  offerResponse
// @Failure      400   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/offers [post]
func (h *OfferHandler) Create(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req createOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	offer, err := h.service.CreateOffer(c.Request().Context(), actor, ports.CreateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		SkillID:     req.SkillID,
		OwnerID:     actor.ID,
		Limit:       req.Limit,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toOfferResponse(offer))
}

// Get handles GET /v1/offers/:id.
//
// @Summary      Get a single offer
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Offer id"
// @Success      200  {object}  offerResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/offers/{id} [get]
func (h *OfferHandler) Get(c echo.Context) error {
	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	offer, err := h.service.GetOffer(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOfferResponse(offer))
}

// List handles GET /v1/offers with optional title/skill_id/owner_id filters.
//
// @Summary      Search offers
// @Tags         offers
// @Produce      json
// @Security     BearerAuth
// @Param        title     query     string  false  "Title substring"
// @Param        skill_id  query     int     false  "Skill id"
// @Param        owner_id  query     int     false  "Owner id"
// @Param        page      query     int     false  "Page (1-based)"
// @Param        limit     query     int     false  "Page size"
// @Success      200       {object}  listOffersResponse
// @Router       /v1/offers [get]
func (h *OfferHandler) List(c echo.Context) error {
	filter := ports.ListOffersFilter{
		Title:   c.QueryParam("title"),
		SkillID: parseQueryInt64(c, "skill_id"),
		OwnerID: parseQueryInt64(c, "owner_id"),
		Page:    int(parseQueryInt64(c, "page")),
		Limit:   int(parseQueryInt64(c, "limit")),
	}

	result, err := h.service.ListOffers(c.Request().Context(), filter)
	if err != nil {
		return err
	}

	items := make([]offerSummaryResponse, 0, len(result.Items))
	for _, o := range result.Items {
		items = append(items, offerSummaryResponse{
			ID:               o.ID,
			Title:            o.Title,
			Description:      o.Description,
			SkillID:          o.SkillID,
			OwnerID:          o.OwnerID,
			Available:        o.Available,
			Limit:            o.Limit,
			Status:           string(o.Status),
			ApplicantCount:   o.ApplicantCount,
			ParticipantCount: o.ParticipantCount,
		})
	}

	return c.JSON(http.StatusOK, listOffersResponse{
		Data: items,
		Pagination: paginationResponse{
			Total:      result.Total,
			Page:       result.Page,
			Limit:      result.Limit,
			TotalPages: result.TotalPages,
		},
	})
}

// Update handles PATCH /v1/offers/:id.
//
// @Summary      Edit an offer
// @Tags         offers
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                 true  "Offer id"
// @Param        body  body      updateOfferRequest  true  "Fields to change"
// @Success      200   {object}  offerResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /v1/offers/{id} [patch]
func (h *OfferHandler) Update(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	var req updateOfferRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	}

	in := ports.UpdateOfferInput{
		Title:       req.Title,
		Description: req.Description,
		Available:   req.Available,
		Limit:       req.Limit,
	}
	if req.Status != nil {
		status := domain.OfferStatus(*req.Status)
		in.Status = &status
	}

	offer, err := h.service.UpdateOffer(c.Request().Context(), actor, id, in)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toOfferResponse(offer))
}

// Delete handles DELETE /v1/offers/:id.
//
// @Summary      Delete an offer without members
// @Tags         offers
// @Security     BearerAuth
// @Param        id  path  int  true  "Offer id"
// @Success      204
// @Failure      400  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /v1/offers/{id} [delete]
func (h *OfferHandler) Delete(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	id, err := parseIDParam(c)
	if err != nil {
		return err
	}

	if err := h.service.DeleteOffer(c.Request().Context(), actor, id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func parseIDParam(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func parseQueryInt64(c echo.Context, name string) int64 {
	v, err := strconv.ParseInt(c.QueryParam(name), 10, 64)
	if err != nil {
		return 0
	}
	return v
}
