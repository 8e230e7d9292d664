package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tdea-viajes/travelbooking/internal/domain"
	"github.com/tdea-viajes/travelbooking/internal/service/bookings"
)

type BookingHandler struct {
	service bookings.BookingUseCase
}

type createBookingRequest struct {
	UserID   int64  `json:"userId" binding:"required"`
	TravelID int64  `json:"travelId" binding:"required"`
	Status   string `json:"status" binding:"required"`
}

type updateBookingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type bookingPaymentInfo struct {
	ID            int64   `json:"id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"paymentDate"`
	PaymentMethod string  `json:"paymentMethod"`
}

type bookingResponse struct {
	ID          int64                `json:"id"`
	Reference   string               `json:"reference"`
	BookingDate string               `json:"bookingDate"`
	Status      string               `json:"status"`
	User        userResponse         `json:"user"`
	Travel      travelResponse       `json:"travel"`
	Payments    []bookingPaymentInfo `json:"payments"`
}

func NewBookingHandler(service bookings.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/filter", h.filter)
	router.GET("/:id", h.getByID)
	router.GET("/user/:userId", h.listByUser)
	router.POST("/create", h.create)
	router.PATCH("/:id/status", h.updateStatus)
	router.DELETE("/delete/:id", h.delete)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	booking, err := h.service.Create(c.Request.Context(), bookings.CreateBookingInput{
		UserID:   req.UserID,
		TravelID: req.TravelID,
		Status:   domain.BookingStatus(req.Status),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) list(c *gin.Context) {
	all, err := h.service.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(all))
}

func (h *BookingHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	booking, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) listByUser(c *gin.Context) {
	userID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	userBookings, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(userBookings))
}

func (h *BookingHandler) updateStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req updateBookingStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	booking, err := h.service.UpdateStatus(c.Request.Context(), id, domain.BookingStatus(req.Status))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponse(booking))
}

func (h *BookingHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Booking deleted successfully"})
}

func (h *BookingHandler) filter(c *gin.Context) {
	dateFrom, err := queryDate(c, "dateFrom")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid dateFrom"})
		return
	}
	dateTo, err := queryDate(c, "dateTo")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid dateTo"})
		return
	}

	filtered, err := h.service.Filter(c.Request.Context(), domain.BookingFilter{
		Status:      domain.BookingStatus(c.Query("status")),
		UserEmail:   c.Query("userEmail"),
		Destination: c.Query("destination"),
		DateFrom:    dateFrom,
		DateTo:      dateTo,
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toBookingResponses(filtered))
}

func toBookingResponse(b *domain.Booking) bookingResponse {
	payments := make([]bookingPaymentInfo, 0, len(b.Payments))
	for _, p := range b.Payments {
		amount, _ := p.Amount.Float64()
		payments = append(payments, bookingPaymentInfo{
			ID:            p.ID,
			Amount:        amount,
			PaymentDate:   p.PaymentDate.Format(dateLayout),
			PaymentMethod: string(p.PaymentMethod),
		})
	}

	return bookingResponse{
		ID:          b.ID,
		Reference:   b.Reference,
		BookingDate: b.BookingDate.Format(time.RFC3339),
		Status:      string(b.Status),
		User:        toUserResponse(b.User),
		Travel:      toTravelResponse(*b.Travel),
		Payments:    payments,
	}
}

func toBookingResponses(bookings []domain.Booking) []bookingResponse {
	out := make([]bookingResponse, 0, len(bookings))
	for i := range bookings {
		out = append(out, toBookingResponse(&bookings[i]))
	}
	return out
}
