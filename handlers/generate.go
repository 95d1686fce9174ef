package handlers

import (
	"errors"
	"net/http"
	"time"

	"battery-lab-api/services"
	"battery-lab-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type GenerationHandler struct {
	store     store.Store
	generator *services.CandidateGenerator
	events    *eventPublisher
	delay     time.Duration
	log       *zap.Logger
}

func NewGenerationHandler(s store.Store, generator *services.CandidateGenerator, events *eventPublisher, delay time.Duration, log *zap.Logger) *GenerationHandler {
	return &GenerationHandler{store: s, generator: generator, events: events, delay: delay, log: log}
}

type generateConstraints struct {
	Elements        []string `json:"elements" binding:"omitempty,dive,required"`
	ExcludeElements []string `json:"excludeElements"`
	MaxAtoms        *int     `json:"maxAtoms" binding:"omitempty,min=1"`
	SpaceGroups     []string `json:"spaceGroups"`
}

type generateRequest struct {
	BaseFormula         string               `json:"baseFormula"`
	TargetEnergyDensity *float64             `json:"targetEnergyDensity"`
	TargetVoltage       *float64             `json:"targetVoltage"`
	Count               *int                 `json:"count" binding:"omitempty,min=1,max=50"`
	Constraints         *generateConstraints `json:"constraints"`
}

func (r generateRequest) params() services.GenerationParams {
	p := services.GenerationParams{
		BaseFormula:         r.BaseFormula,
		TargetEnergyDensity: r.TargetEnergyDensity,
		TargetVoltage:       r.TargetVoltage,
		Count:               services.DefaultCandidateCount,
	}
	if r.Count != nil {
		p.Count = *r.Count
	}
	if c := r.Constraints; c != nil {
		p.Constraints = services.GenerationConstraints{
			Elements:        c.Elements,
			ExcludeElements: c.ExcludeElements,
			MaxAtoms:        c.MaxAtoms,
			SpaceGroups:     c.SpaceGroups,
		}
	}
	return p
}

func (h *GenerationHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "Invalid request", err)
		return
	}

	candidates, err := h.generator.Generate(req.params())
	var cerr *services.ConstraintError
	if errors.As(err, &cerr) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "Invalid request",
			Details: []Violation{{
				Field:   cerr.Field,
				Rule:    "satisfiable",
				Message: cerr.Reason,
			}},
		})
		return
	}
	if err != nil {
		respondInternal(c, h.log, "Generation failed", err)
		return
	}

	time.Sleep(h.delay)

	ctx := c.Request.Context()
	saved, err := h.store.CreateCandidates(ctx, candidates)
	if err != nil {
		respondInternal(c, h.log, "Generation failed", err)
		return
	}
	h.events.publish(ctx, services.EventCandidatesGenerated, gin.H{"count": len(saved)})

	c.JSON(http.StatusOK, gin.H{"candidates": saved})
}

func (h *GenerationHandler) List(c *gin.Context) {
	candidates, err := h.store.ListCandidates(c.Request.Context())
	if err != nil {
		respondInternal(c, h.log, "Failed to fetch candidates", err)
		return
	}
	c.JSON(http.StatusOK, candidates)
}
