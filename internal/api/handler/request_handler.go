package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roomly/rental-system/internal/api/metrics"
	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

// RequestHandler drives the rental-request lifecycle over HTTP.
type RequestHandler struct {
	requests ports.RequestService
}

func NewRequestHandler(requests ports.RequestService) *RequestHandler {
	return &RequestHandler{requests: requests}
}

type createRequestRequest struct {
	RoomID string `json:"room_id" validate:"required"`
}

// Create files a pending request by the caller on a room.
//
// @Summary      Request a room
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRequestRequest  true  "Target room"
// @Success      201   {object}  domain.Request
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/requests [post]
func (h *RequestHandler) Create(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req createRequestRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	request, err := h.requests.Create(c.Request().Context(), req.RoomID, email)
	if err != nil {
		return err
	}

	metrics.RequestsCreatedTotal.Inc()

	return c.JSON(http.StatusCreated, request)
}

// Mine returns the caller's requests.
//
// @Summary      List my requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Request
// @Router       /v1/requests/mine [get]
func (h *RequestHandler) Mine(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	requests, err := h.requests.Mine(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// ByRoom returns a room's requests, optionally narrowed to one requester
// with ?requester=email.
//
// @Summary      List requests on a room
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id         path   string  true   "Room ID"
// @Param        requester  query  string  false  "Narrow to one requester email"
// @Success      200  {array}  domain.Request
// @Router       /v1/rooms/{id}/requests [get]
func (h *RequestHandler) ByRoom(c echo.Context) error {
	roomID := c.Param("id")
	ctx := c.Request().Context()

	if requester := c.QueryParam("requester"); requester != "" {
		requests, err := h.requests.ByRoomAndUser(ctx, roomID, requester)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, requests)
	}

	requests, err := h.requests.ByRoom(ctx, roomID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, requests)
}

// Accept runs the accept transaction and returns the created rental.
//
// @Summary      Accept a request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  domain.Rental
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/requests/{id}/accept [post]
func (h *RequestHandler) Accept(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	rental, err := h.requests.Accept(c.Request().Context(), c.Param("id"), email)
	if err != nil {
		return err
	}

	metrics.RequestTransitionsTotal.WithLabelValues(string(domain.RequestAccepted)).Inc()

	return c.JSON(http.StatusOK, rental)
}

// Reject rejects a pending request. Room owner only.
//
// @Summary      Reject a request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  domain.Request
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/requests/{id}/reject [post]
func (h *RequestHandler) Reject(c echo.Context) error {
	return h.transition(c, domain.RequestRejected)
}

// Cancel cancels a pending request. Requester only.
//
// @Summary      Cancel a request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  domain.Request
// @Failure      403  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Router       /v1/requests/{id}/cancel [post]
func (h *RequestHandler) Cancel(c echo.Context) error {
	return h.transition(c, domain.RequestCancelled)
}

func (h *RequestHandler) transition(c echo.Context, next domain.RequestState) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	request, err := h.requests.UpdateState(c.Request().Context(), c.Param("id"), next, email)
	if err != nil {
		return err
	}

	metrics.RequestTransitionsTotal.WithLabelValues(string(next)).Inc()

	return c.JSON(http.StatusOK, request)
}

// Delete soft-deletes a rejected or cancelled request from the caller's
// view.
//
// @Summary      Remove a settled request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Request ID"
// @Success      204  "request removed"
// @Failure      403  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /v1/requests/{id} [delete]
func (h *RequestHandler) Delete(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	if err := h.requests.SoftDelete(c.Request().Context(), c.Param("id"), email); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
