package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"storerating/internal/auth"
	apperrors "storerating/internal/errors"
	"storerating/internal/model"
	"storerating/internal/service"
)

// StoreHandler serves store browsing and rating endpoints.
type StoreHandler struct {
	storeService  service.StoreService
	ratingService service.RatingService
	log           logrus.FieldLogger
}

// NewStoreHandler creates a new store handler.
func NewStoreHandler(storeService service.StoreService, ratingService service.RatingService, log logrus.FieldLogger) *StoreHandler {
	return &StoreHandler{storeService: storeService, ratingService: ratingService, log: log}
}

// RatingRequest carries a star rating. Anything other than a JSON number holding
// an integer from 1 to 5 is rejected, strings included.
type RatingRequest struct {
	Rating interface{} `json:"rating" swaggertype:"integer"`
}

// RatingBody is the stored rating echoed back after a mutation.
type RatingBody struct {
	ID      uint        `json:"id"`
	UserID  uint        `json:"user_id"`
	StoreID uint        `json:"store_id"`
	Rating  model.Score `json:"rating"`
}

// RatingResponse is returned by submit and modify.
type RatingResponse struct {
	Message       string        `json:"message"`
	Rating        RatingBody    `json:"rating"`
	OverallRating model.Average `json:"overall_rating" swaggertype:"number"`
}

// ListStores godoc
// @Summary List stores
// @Description Every store with its overall rating and the caller's own rating, if any.
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Param name query string false "Name contains (case-insensitive)"
// @Param email query string false "Email contains (case-insensitive)"
// @Param address query string false "Address contains (case-insensitive)"
// @Param sortBy query string false "name, email, address or avg_rating"
// @Param sortOrder query string false "asc or desc"
// @Param limit query int false "Page size (default 100)"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} model.StoreListing
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /stores [get]
func (h *StoreHandler) ListStores(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return fail(c, h.log, apperrors.ErrUnauthenticated)
	}

	stores, err := h.storeService.BrowseStores(c.Request().Context(), claims.UserID, model.ParseStoreQuery(c.QueryParams()))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, stores)
}

// GetStore godoc
// @Summary Get store by id
// @Tags stores
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store ID"
// @Success 200 {object} model.StoreListing
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stores/{id} [get]
func (h *StoreHandler) GetStore(c echo.Context) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return fail(c, h.log, apperrors.ErrUnauthenticated)
	}
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	store, err := h.storeService.GetStore(c.Request().Context(), claims.UserID, id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(http.StatusOK, store)
}

// SubmitRating godoc
// @Summary Submit a rating
// @Description First rating of a store by the caller. A second submit is rejected; use PUT.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store ID"
// @Param request body RatingRequest true "Rating from 1 to 5"
// @Success 201 {object} RatingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stores/{id}/rating [post]
func (h *StoreHandler) SubmitRating(c echo.Context) error {
	return h.rate(c, http.StatusCreated, "Rating submitted", h.ratingService.Submit)
}

// ModifyRating godoc
// @Summary Modify a rating
// @Description Replaces the caller's existing rating. Fails with 404 when there is none.
// @Tags ratings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Store ID"
// @Param request body RatingRequest true "Rating from 1 to 5"
// @Success 200 {object} RatingResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /stores/{id}/rating [put]
func (h *StoreHandler) ModifyRating(c echo.Context) error {
	return h.rate(c, http.StatusOK, "Rating updated", h.ratingService.Modify)
}

type rateFunc func(ctx context.Context, userID, storeID uint, score model.Score) (*model.RatingOutcome, error)

func (h *StoreHandler) rate(c echo.Context, status int, message string, apply rateFunc) error {
	claims, ok := auth.ClaimsFrom(c)
	if !ok {
		return fail(c, h.log, apperrors.ErrUnauthenticated)
	}
	storeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req RatingRequest
	if err := c.Bind(&req); err != nil {
		return invalidBody()
	}
	score, ok := parseRating(req.Rating)
	if !ok {
		return fail(c, h.log, apperrors.ErrInvalidRating)
	}

	out, err := apply(c.Request().Context(), claims.UserID, storeID, score)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(status, RatingResponse{
		Message: message,
		Rating: RatingBody{
			ID:      out.Rating.ID,
			UserID:  out.Rating.UserID,
			StoreID: out.Rating.StoreID,
			Rating:  out.Rating.Score,
		},
		OverallRating: out.OverallRating,
	})
}

// parseRating accepts only a JSON number holding an integer 1-5.
func parseRating(v interface{}) (model.Score, bool) {
	r, ok := v.(float64)
	if !ok {
		return 0, false
	}
	return model.ParseScore(r)
}
