package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomly/rental-system/internal/api/metrics"
	"github.com/roomly/rental-system/internal/core/ports"
)

// RentalHandler exposes rental queries and the finish operation.
type RentalHandler struct {
	rentals ports.RentalService
}

func NewRentalHandler(rentals ports.RentalService) *RentalHandler {
	return &RentalHandler{rentals: rentals}
}

type finishRentalRequest struct {
	End *time.Time `json:"end"`
}

// Mine returns the caller's rental history.
//
// @Summary      List my rentals
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Rental
// @Router       /v1/rentals/mine [get]
func (h *RentalHandler) Mine(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	rentals, err := h.rentals.ByTenant(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rentals)
}

// ActiveByRoom returns the active rental blocking a room, if any.
//
// @Summary      Active rental for a room
// @Tags         rentals
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Room ID"
// @Success      200  {object}  domain.Rental
// @Failure      404  {object}  map[string]string
// @Router       /v1/rooms/{id}/rental [get]
func (h *RentalHandler) ActiveByRoom(c echo.Context) error {
	rental, err := h.rentals.ActiveByRoom(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rental)
}

// Finish ends an active rental. The end date defaults to now. Only the
// tenant or the room owner may finish it.
//
// @Summary      Finish a rental
// @Tags         rentals
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string               true   "Rental ID"
// @Param        body  body      finishRentalRequest  false  "Optional end date"
// @Success      200   {object}  domain.Rental
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Router       /v1/rentals/{id}/finish [post]
func (h *RentalHandler) Finish(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req finishRentalRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	var end time.Time
	if req.End != nil {
		end = *req.End
	}

	rental, err := h.rentals.Finish(c.Request().Context(), c.Param("id"), end, email)
	if err != nil {
		return err
	}

	metrics.RentalsFinishedTotal.Inc()

	return c.JSON(http.StatusOK, rental)
}
