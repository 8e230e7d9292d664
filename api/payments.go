package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tdea-viajes/travelbooking/internal/domain"
	"github.com/tdea-viajes/travelbooking/internal/service/payments"
)

type PaymentHandler struct {
	service payments.PaymentUseCase
}

type paymentRequest struct {
	BookingID     int64   `json:"bookingId" binding:"required"`
	Amount        float64 `json:"amount" binding:"required"`
	PaymentMethod string  `json:"paymentMethod" binding:"required"`
}

type paymentResponse struct {
	ID            int64   `json:"id"`
	Amount        float64 `json:"amount"`
	PaymentDate   string  `json:"paymentDate"`
	PaymentMethod string  `json:"paymentMethod"`
	BookingID     int64   `json:"bookingId"`
	UserID        int64   `json:"userId,omitempty"`
	UserEmail     string  `json:"userEmail,omitempty"`
	Destination   string  `json:"destination,omitempty"`
}

type paymentSummaryResponse struct {
	BookingID       int64             `json:"bookingId"`
	TotalAmount     float64           `json:"totalAmount"`
	PaidAmount      float64           `json:"paidAmount"`
	RemainingAmount float64           `json:"remainingAmount"`
	PaymentStatus   string            `json:"paymentStatus"`
	Payments        []paymentResponse `json:"payments"`
	// Optional charges; left unset until the pricing rules define them.
	Taxes *float64 `json:"taxes,omitempty"`
	Fees  *float64 `json:"fees,omitempty"`
}

func NewPaymentHandler(service payments.PaymentUseCase) *PaymentHandler {
	return &PaymentHandler{service: service}
}

func (h *PaymentHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.process)
	router.GET("", h.list)
	router.GET("/filter", h.filter)
	router.GET("/booking/:id/summary", h.summary)
	router.GET("/booking/:id", h.listByBooking)
	router.GET("/user/:id", h.listByUser)
	router.GET("/:paymentId", h.getByID)
	router.DELETE("/:paymentId", h.cancel)
}

func (h *PaymentHandler) process(c *gin.Context) {
	var req paymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	payment, err := h.service.Process(c.Request.Context(), payments.ProcessPaymentInput{
		BookingID:     req.BookingID,
		Amount:        decimal.NewFromFloat(req.Amount),
		PaymentMethod: domain.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		fail(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPaymentResponse(*payment))
}

func (h *PaymentHandler) list(c *gin.Context) {
	all, err := h.service.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(all))
}

func (h *PaymentHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "paymentId")
	if !ok {
		return
	}

	payment, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponse(*payment))
}

func (h *PaymentHandler) summary(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.service.Summary(c.Request.Context(), bookingID)
	if err != nil {
		fail(c, err)
		return
	}

	total, _ := summary.TotalAmount.Float64()
	paid, _ := summary.PaidAmount.Float64()
	remaining, _ := summary.RemainingAmount.Float64()
	c.JSON(http.StatusOK, paymentSummaryResponse{
		BookingID:       summary.BookingID,
		TotalAmount:     total,
		PaidAmount:      paid,
		RemainingAmount: remaining,
		PaymentStatus:   string(summary.PaymentStatus),
		Payments:        toPaymentResponses(summary.Payments),
	})
}

func (h *PaymentHandler) listByBooking(c *gin.Context) {
	bookingID, ok := pathID(c, "id")
	if !ok {
		return
	}

	byBooking, err := h.service.ListByBooking(c.Request.Context(), bookingID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(byBooking))
}

func (h *PaymentHandler) listByUser(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}

	byUser, err := h.service.ListByUser(c.Request.Context(), userID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(byUser))
}

func (h *PaymentHandler) filter(c *gin.Context) {
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

	filter := domain.PaymentFilter{
		UserEmail:     c.Query("userEmail"),
		PaymentMethod: domain.PaymentMethod(c.Query("paymentMethod")),
		DateFrom:      dateFrom,
		DateTo:        dateTo,
	}
	if raw := c.Query("minAmount"); raw != "" {
		min, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid minAmount"})
			return
		}
		filter.MinAmount = &min
	}
	if raw := c.Query("maxAmount"); raw != "" {
		max, err := decimal.NewFromString(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "invalid maxAmount"})
			return
		}
		filter.MaxAmount = &max
	}

	filtered, err := h.service.Filter(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toPaymentResponses(filtered))
}

func (h *PaymentHandler) cancel(c *gin.Context) {
	id, ok := pathID(c, "paymentId")
	if !ok {
		return
	}

	if err := h.service.Cancel(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func toPaymentResponse(p domain.Payment) paymentResponse {
	amount, _ := p.Amount.Float64()
	return paymentResponse{
		ID:            p.ID,
		Amount:        amount,
		PaymentDate:   p.PaymentDate.Format(dateLayout),
		PaymentMethod: string(p.PaymentMethod),
		BookingID:     p.BookingID,
		UserID:        p.UserID,
		UserEmail:     p.UserEmail,
		Destination:   p.Destination,
	}
}

func toPaymentResponses(payments []domain.Payment) []paymentResponse {
	out := make([]paymentResponse, 0, len(payments))
	for _, p := range payments {
		out = append(out, toPaymentResponse(p))
	}
	return out
}
