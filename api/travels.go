package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/tdea-viajes/travelbooking/internal/domain"
	"github.com/tdea-viajes/travelbooking/internal/service/travels"
)

type TravelHandler struct {
	service travels.TravelUseCase
}

type travelRequest struct {
	Destination   string  `json:"destination" binding:"required"`
	DepartureDate string  `json:"departureDate" binding:"required"`
	ReturnDate    string  `json:"returnDate" binding:"required"`
	Price         float64 `json:"price" binding:"required"`
	Itinerary     string  `json:"itinerary"`
}

type travelResponse struct {
	ID            int64   `json:"id"`
	Destination   string  `json:"destination"`
	DepartureDate string  `json:"departureDate"`
	ReturnDate    string  `json:"returnDate"`
	Price         float64 `json:"price"`
	Itinerary     string  `json:"itinerary"`
	Status        string  `json:"status"`
}

func NewTravelHandler(service travels.TravelUseCase) *TravelHandler {
	return &TravelHandler{service: service}
}

func (h *TravelHandler) Register(router *gin.RouterGroup) {
	router.GET("", h.list)
	router.GET("/filter", h.filter)
	router.GET("/:id", h.getByID)
	router.POST("/create", h.create)
	router.PUT("/update/:id", h.update)
	router.DELETE("/delete/:id", h.delete)
}

func (h *TravelHandler) list(c *gin.Context) {
	travels, err := h.service.List(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelResponses(travels))
}

func (h *TravelHandler) getByID(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	travel, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelResponse(*travel))
}

func (h *TravelHandler) create(c *gin.Context) {
	travel, ok := h.bindTravel(c)
	if !ok {
		return
	}

	if err := h.service.Create(c.Request.Context(), travel); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelResponse(*travel))
}

func (h *TravelHandler) update(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	travel, ok := h.bindTravel(c)
	if !ok {
		return
	}

	updated, err := h.service.Update(c.Request.Context(), id, *travel)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelResponse(*updated))
}

func (h *TravelHandler) delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Travel deleted successfully"})
}

func (h *TravelHandler) filter(c *gin.Context) {
	departureFrom, err := queryDate(c, "departureDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid departureDate"})
		return
	}
	returnTo, err := queryDate(c, "arrivalDate")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid arrivalDate"})
		return
	}

	filtered, err := h.service.Filter(c.Request.Context(), domain.TravelFilter{
		Destination:   c.Query("destination"),
		DepartureFrom: departureFrom,
		ReturnTo:      returnTo,
		Status:        domain.TravelStatus(c.Query("status")),
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, toTravelResponses(filtered))
}

func (h *TravelHandler) bindTravel(c *gin.Context) (*domain.Travel, bool) {
	var req travelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return nil, false
	}

	departure, err := time.Parse(dateLayout, req.DepartureDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid departureDate"})
		return nil, false
	}
	ret, err := time.Parse(dateLayout, req.ReturnDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid returnDate"})
		return nil, false
	}

	return &domain.Travel{
		Destination:   req.Destination,
		DepartureDate: departure,
		ReturnDate:    ret,
		Price:         decimal.NewFromFloat(req.Price),
		Itinerary:     req.Itinerary,
	}, true
}

func toTravelResponse(t domain.Travel) travelResponse {
	price, _ := t.Price.Float64()
	return travelResponse{
		ID:            t.ID,
		Destination:   t.Destination,
		DepartureDate: t.DepartureDate.Format(dateLayout),
		ReturnDate:    t.ReturnDate.Format(dateLayout),
		Price:         price,
		Itinerary:     t.Itinerary,
		Status:        string(t.ScheduleStatus(time.Now())),
	}
}

func toTravelResponses(travels []domain.Travel) []travelResponse {
	out := make([]travelResponse, 0, len(travels))
	for _, t := range travels {
		out = append(out, toTravelResponse(t))
	}
	return out
}
