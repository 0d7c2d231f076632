package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/masud-rana44/the-wild-oasis/internal/application"
	bookingDomain "github.com/masud-rana44/the-wild-oasis/internal/domain/booking"
	"github.com/masud-rana44/the-wild-oasis/internal/response"
)

// BookingHandler handles HTTP requests for booking operations.
type BookingHandler struct {
	service *application.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(service *application.BookingService) *BookingHandler {
	return &BookingHandler{service: service}
}

// RegisterRoutes registers all booking routes on the given router group.
// Authentication and row-level permissions live in the storage service's
// access-control layer, not here.
func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/api/v1/bookings")
	{
		bookings.GET("", h.ListBookings)
		bookings.GET("/:id", h.GetBooking)
		bookings.POST("", h.CreateBooking)
		bookings.PATCH("/:id", h.UpdateBooking)
		bookings.DELETE("/:id", h.DeleteBooking)
		bookings.POST("/:id/checkin", h.CheckIn)
		bookings.POST("/:id/checkout", h.CheckOut)
		bookings.GET("/after-date", h.BookingsAfterDate)
	}

	stays := r.Group("/api/v1/stays")
	{
		stays.GET("/after-date", h.StaysAfterDate)
		stays.GET("/today-activity", h.TodayActivity)
	}
}

// ListBookings handles GET /api/v1/bookings.
func (h *BookingHandler) ListBookings(c *gin.Context) {
	query, err := parseListQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.service.ListBookings(c.Request.Context(), query)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// GetBooking handles GET /api/v1/bookings/:id.
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.GetBooking(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CreateBooking handles POST /api/v1/bookings.
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req application.CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.CreateBooking(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// UpdateBooking handles PATCH /api/v1/bookings/:id.
func (h *BookingHandler) UpdateBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var req application.UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	result, err := h.service.UpdateBooking(c.Request.Context(), id, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// DeleteBooking handles DELETE /api/v1/bookings/:id.
func (h *BookingHandler) DeleteBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	if err := h.service.DeleteBooking(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// CheckIn handles POST /api/v1/bookings/:id/checkin.
func (h *BookingHandler) CheckIn(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	var body struct {
		ExtrasPrice *float64 `json:"extras_price"`
	}
	_ = c.ShouldBindJSON(&body)

	result, err := h.service.CheckIn(c.Request.Context(), id, body.ExtrasPrice)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// CheckOut handles POST /api/v1/bookings/:id/checkout.
func (h *BookingHandler) CheckOut(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid booking ID")
		return
	}

	result, err := h.service.CheckOut(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// BookingsAfterDate handles GET /api/v1/bookings/after-date?since=...
func (h *BookingHandler) BookingsAfterDate(c *gin.Context) {
	since, err := parseSince(c)
	if err != nil {
		response.BadRequest(c, "invalid or missing since parameter")
		return
	}

	result, err := h.service.GetBookingsAfterDate(c.Request.Context(), since)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// StaysAfterDate handles GET /api/v1/stays/after-date?since=...
func (h *BookingHandler) StaysAfterDate(c *gin.Context) {
	since, err := parseSince(c)
	if err != nil {
		response.BadRequest(c, "invalid or missing since parameter")
		return
	}

	result, err := h.service.GetStaysAfterDate(c.Request.Context(), since)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// TodayActivity handles GET /api/v1/stays/today-activity.
func (h *BookingHandler) TodayActivity(c *gin.Context) {
	result, err := h.service.GetStaysTodayActivity(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, result)
}

// parseListQuery builds the list query from query parameters. Unknown
// filter or sort fields are rejected here, before any storage call.
func parseListQuery(c *gin.Context) (bookingDomain.ListQuery, error) {
	var query bookingDomain.ListQuery

	if status := c.Query("status"); status != "" && status != "all" {
		filter, err := bookingDomain.NewFilter(bookingDomain.FilterFieldStatus, status)
		if err != nil {
			return query, err
		}
		query.Filter = filter
	}

	if sortBy := c.Query("sort_by"); sortBy != "" {
		direction := bookingDomain.SortAscending
		if c.DefaultQuery("direction", "asc") == "desc" {
			direction = bookingDomain.SortDescending
		}
		sort, err := bookingDomain.NewSort(bookingDomain.SortField(sortBy), direction)
		if err != nil {
			return query, err
		}
		query.Sort = sort
	}

	if page, err := strconv.Atoi(c.DefaultQuery("page", "0")); err == nil && page > 0 {
		query.Page = page
	}

	return query, nil
}

// parseSince reads the since query parameter as RFC 3339 or a bare date.
func parseSince(c *gin.Context) (time.Time, error) {
	raw := c.Query("since")
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
