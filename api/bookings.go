package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/railbooking/internal/service/booking"
)

type BookingHandler struct {
	service booking.BookingUseCase
}

type createBookingRequest struct {
	TrainNo string `json:"train_no" binding:"required"`
}

func NewBookingHandler(service booking.BookingUseCase) *BookingHandler {
	return &BookingHandler{service: service}
}

func (h *BookingHandler) Register(router *gin.RouterGroup) {
	router.POST("", h.create)
	router.GET("/:id", h.get)
}

func (h *BookingHandler) create(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "train number is required"})
		return
	}

	details, err := h.service.Book(c.Request.Context(), CurrentUser(c), req.TrainNo)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":         "Seat booked successfully",
		"booking_details": details,
	})
}

func (h *BookingHandler) get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid booking id"})
		return
	}

	details, err := h.service.GetBooking(c.Request.Context(), id, CurrentUser(c))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, details)
}
