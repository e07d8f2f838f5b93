package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/roomly/rental-system/internal/api/metrics"
	"github.com/roomly/rental-system/internal/core/ports"
)

// SearchHandler answers the public room search.
type SearchHandler struct {
	search ports.SearchService
}

func NewSearchHandler(search ports.SearchService) *SearchHandler {
	return &SearchHandler{search: search}
}

// Search returns available rooms in a city, cheapest first. Public; a
// logged-in caller's own rooms are excluded.
//
// @Summary      Search available rooms
// @Tags         search
// @Produce      json
// @Param        city     query  string  true   "City to search in"
// @Param        move_in  query  string  false  "Desired move-in date (RFC 3339); absent lists occupied rooms too"
// @Success      200  {array}   ports.RoomAvailability
// @Failure      400  {object}  map[string]string
// @Router       /v1/search [get]
func (h *SearchHandler) Search(c echo.Context) error {
	city := c.QueryParam("city")
	if city == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "city is required")
	}

	// No move-in date means "show everything": occupied rooms are listed
	// too, flagged with their availability.
	var moveIn time.Time
	if raw := c.QueryParam("move_in"); raw != "" {
		parsed, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			// Date-only form is the common one from date pickers.
			parsed, err = time.Parse("2006-01-02", raw)
			if err != nil {
				return echo.NewHTTPError(http.StatusBadRequest, "move_in must be RFC 3339 or YYYY-MM-DD")
			}
		}
		moveIn = parsed
	}

	viewer, _ := c.Get("email").(string)

	results, err := h.search.Search(c.Request().Context(), ports.SearchInput{
		City:        city,
		MoveIn:      moveIn,
		ViewerEmail: viewer,
	})
	if err != nil {
		return err
	}

	metrics.SearchesTotal.Inc()

	return c.JSON(http.StatusOK, results)
}
