package handlers

import (
	"net/http"

	"battery-lab-api/models"
	"battery-lab-api/services"
	"battery-lab-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MaterialsHandler struct {
	store  store.Store
	events *eventPublisher
	log    *zap.Logger
}

func NewMaterialsHandler(s store.Store, events *eventPublisher, log *zap.Logger) *MaterialsHandler {
	return &MaterialsHandler{store: s, events: events, log: log}
}

type createMaterialRequest struct {
	Name              string                 `json:"name" binding:"required"`
	Formula           *string                `json:"formula"`
	Format            models.StructureFormat `json:"format" binding:"required,oneof=CIF POSCAR SMILES JSON"`
	RawData           string                 `json:"rawData" binding:"required"`
	AtomicPositions   []models.Atom          `json:"atomicPositions" binding:"omitempty,dive"`
	LatticeParameters *models.Lattice        `json:"latticeParameters"`
	SpaceGroup        *string                `json:"spaceGroup"`
}

func (r createMaterialRequest) material() models.Material {
	return models.Material{
		Name:              r.Name,
		Formula:           r.Formula,
		Format:            r.Format,
		RawData:           r.RawData,
		AtomicPositions:   r.AtomicPositions,
		LatticeParameters: r.LatticeParameters,
		SpaceGroup:        r.SpaceGroup,
	}
}

func (h *MaterialsHandler) List(c *gin.Context) {
	materials, err := h.store.ListMaterials(c.Request.Context())
	if err != nil {
		respondInternal(c, h.log, "Failed to fetch materials", err)
		return
	}
	c.JSON(http.StatusOK, materials)
}

func (h *MaterialsHandler) Get(c *gin.Context) {
	material, err := h.store.GetMaterial(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternal(c, h.log, "Failed to fetch material", err)
		return
	}
	if material == nil {
		respondError(c, http.StatusNotFound, "Material not found")
		return
	}
	c.JSON(http.StatusOK, material)
}

func (h *MaterialsHandler) Create(c *gin.Context) {
	var req createMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondInvalid(c, "Invalid material data", err)
		return
	}

	material, err := h.store.CreateMaterial(c.Request.Context(), req.material())
	if err != nil {
		respondInternal(c, h.log, "Failed to create material", err)
		return
	}
	materialsCreated.Inc()
	h.events.publish(c.Request.Context(), services.EventMaterialCreated, gin.H{
		"id":   material.ID,
		"name": material.Name,
	})

	c.JSON(http.StatusCreated, material)
}

func (h *MaterialsHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	deleted, err := h.store.DeleteMaterial(c.Request.Context(), id)
	if err != nil {
		respondInternal(c, h.log, "Failed to delete material", err)
		return
	}
	if !deleted {
		respondError(c, http.StatusNotFound, "Material not found")
		return
	}
	h.events.publish(c.Request.Context(), services.EventMaterialDeleted, gin.H{"id": id})

	c.Status(http.StatusNoContent)
}
