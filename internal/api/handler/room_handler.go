package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roomly/rental-system/internal/api/metrics"
	"github.com/roomly/rental-system/internal/core/domain"
	"github.com/roomly/rental-system/internal/core/ports"
)

// RoomHandler exposes room listing management.
type RoomHandler struct {
	rooms ports.RoomService
}

func NewRoomHandler(rooms ports.RoomService) *RoomHandler {
	return &RoomHandler{rooms: rooms}
}

type createRoomRequest struct {
	Address string  `json:"address" validate:"required"`
	City    string  `json:"city"    validate:"required"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Price   float64 `json:"price"   validate:"gt=0"`
	Image   string  `json:"image"`
}

type bulkImageRequest struct {
	Image string `json:"image" validate:"required"`
}

// Create lists a new room owned by the caller.
//
// @Summary      Create a room listing
// @Tags         rooms
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createRoomRequest  true  "Room details"
// @Success      201   {object}  domain.Room
// @Failure      400   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /v1/rooms [post]
func (h *RoomHandler) Create(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	var req createRoomRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	room, err := h.rooms.Create(c.Request().Context(), ports.CreateRoomInput{
		Address:    req.Address,
		City:       req.City,
		Lat:        req.Lat,
		Lon:        req.Lon,
		Price:      req.Price,
		Image:      req.Image,
		OwnerEmail: email,
	})
	if err != nil {
		return err
	}

	metrics.RoomsCreatedTotal.WithLabelValues(room.City).Inc()

	return c.JSON(http.StatusCreated, room)
}

// List returns every non-deleted room. Public.
//
// @Summary      List all rooms
// @Tags         rooms
// @Produce      json
// @Success      200  {array}  domain.Room
// @Router       /v1/rooms [get]
func (h *RoomHandler) List(c echo.Context) error {
	all, err := h.rooms.All(c.Request().Context())
	if err != nil {
		return err
	}

	visible := make([]domain.Room, 0, len(all))
	for _, room := range all {
		if !room.Deleted() {
			visible = append(visible, room)
		}
	}
	return c.JSON(http.StatusOK, visible)
}

// Mine returns the caller's non-deleted rooms.
//
// @Summary      List my rooms
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}  domain.Room
// @Router       /v1/rooms/mine [get]
func (h *RoomHandler) Mine(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	rooms, err := h.rooms.ByOwner(c.Request().Context(), email)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rooms)
}

// Get returns a single room by id. Public.
//
// @Summary      Get a room
// @Tags         rooms
// @Produce      json
// @Param        id   path      string  true  "Room ID"
// @Success      200  {object}  domain.Room
// @Failure      404  {object}  map[string]string
// @Router       /v1/rooms/{id} [get]
func (h *RoomHandler) Get(c echo.Context) error {
	room, err := h.rooms.ByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if room.Deleted() {
		return domain.ErrRoomNotFound
	}
	return c.JSON(http.StatusOK, room)
}

// Delete soft-deletes the caller's room and cascades over its requests
// and active rental.
//
// @Summary      Delete a room
// @Tags         rooms
// @Produce      json
// @Security     BearerAuth
// @Param        id   path  string  true  "Room ID"
// @Success      204  "room deleted"
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /v1/rooms/{id} [delete]
func (h *RoomHandler) Delete(c echo.Context) error {
	email, err := ctxEmail(c)
	if err != nil {
		return err
	}

	if err := h.rooms.SoftDelete(c.Request().Context(), c.Param("id"), email); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// BulkSetImage replaces the image of every room. Admin only.
//
// @Summary      Replace every room image
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      bulkImageRequest  true  "Replacement image reference"
// @Success      200   {object}  map[string]int
// @Failure      403   {object}  map[string]string
// @Router       /v1/admin/rooms/image [put]
func (h *RoomHandler) BulkSetImage(c echo.Context) error {
	var req bulkImageRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	updated, err := h.rooms.BulkSetImage(c.Request().Context(), req.Image)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"updated": updated})
}
