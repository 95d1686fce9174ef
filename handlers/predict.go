package handlers

import (
	"net/http"
	"time"

	"battery-lab-api/services"
	"battery-lab-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PredictionHandler struct {
	store     store.Store
	predictor *services.Predictor
	events    *eventPublisher
	delay     time.Duration
	log       *zap.Logger
}

func NewPredictionHandler(s store.Store, predictor *services.Predictor, events *eventPublisher, delay time.Duration, log *zap.Logger) *PredictionHandler {
	return &PredictionHandler{store: s, predictor: predictor, events: events, delay: delay, log: log}
}

type predictRequest struct {
	MaterialID string `json:"materialId" binding:"required"`
}

// Predict runs the mock model against a stored material and records the
// result. A missing material writes nothing.
func (h *PredictionHandler) Predict(c *gin.Context) {
	var req predictRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "Invalid request", err)
		return
	}
	ctx := c.Request.Context()

	material, err := h.store.GetMaterial(ctx, req.MaterialID)
	if err != nil {
		respondInternal(c, h.log, "Prediction failed", err)
		return
	}
	if material == nil {
		respondError(c, http.StatusNotFound, "Material not found")
		return
	}

	time.Sleep(h.delay)

	result := h.predictor.Predict(material.ID, material.Name)
	if _, err := h.store.CreatePrediction(ctx, result.Record()); err != nil {
		respondInternal(c, h.log, "Prediction failed", err)
		return
	}
	h.events.publish(ctx, services.EventPredictionCompleted, result)

	c.JSON(http.StatusOK, result)
}

func (h *PredictionHandler) ListByMaterial(c *gin.Context) {
	predictions, err := h.store.ListPredictionsByMaterial(c.Request.Context(), c.Param("materialId"))
	if err != nil {
		respondInternal(c, h.log, "Failed to fetch predictions", err)
		return
	}
	c.JSON(http.StatusOK, predictions)
}
