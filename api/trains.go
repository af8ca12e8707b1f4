package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zvrva/railbooking/internal/service/trains"
)

type TrainHandler struct {
	service trains.TrainUseCase
}

func NewTrainHandler(service trains.TrainUseCase) *TrainHandler {
	return &TrainHandler{service: service}
}

// Register wires the routes; adminGate is applied to train creation only.
func (h *TrainHandler) Register(router *gin.RouterGroup, adminGate gin.HandlerFunc) {
	router.GET("", h.search)
	router.POST("", adminGate, h.create)
}

func (h *TrainHandler) create(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil || !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "only administrators can add trains"})
		return
	}

	var input trains.CreateTrainInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	train, err := h.service.Create(c.Request.Context(), input)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Train added successfully",
		"train": gin.H{
			"train_no":    train.TrainNo,
			"source":      train.Source,
			"destination": train.Destination,
			"total_seats": train.TotalSeats,
		},
	})
}

func (h *TrainHandler) search(c *gin.Context) {
	source := c.Query("source")
	destination := c.Query("destination")
	if source == "" || destination == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "please provide both source and destination"})
		return
	}

	results, err := h.service.Search(c.Request.Context(), source, destination)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(results) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "no trains found for the given route"})
		return
	}

	c.JSON(http.StatusOK, results)
}
