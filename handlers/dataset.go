package handlers

import (
	"context"
	"net/http"
	"time"

	"battery-lab-api/models"
	"battery-lab-api/store"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type DatasetHandler struct {
	store store.Store
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

func NewDatasetHandler(s store.Store, cache Cache, ttl time.Duration, log *zap.Logger) *DatasetHandler {
	return &DatasetHandler{store: s, cache: cache, ttl: ttl, log: log}
}

type DatasetPage struct {
	Entries []models.DatasetEntry `json:"entries"`
	Total   int                   `json:"total"`
}

// List serves a filtered page of the reference dataset. The dataset is
// read-only after seeding, so cached pages never go stale.
func (h *DatasetHandler) List(c *gin.Context) {
	p, err := ParseDatasetParams(c)
	if err != nil {
		respondInvalid(c, "Invalid query parameters", err)
		return
	}
	cacheKey := p.CacheKey()

	var cached DatasetPage
	if err := h.cache.Get(c.Request.Context(), cacheKey, &cached); err == nil && cached.Entries != nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	entries, total, err := h.store.ListDatasetEntries(c.Request.Context(), p.Query())
	if err != nil {
		respondInternal(c, h.log, "Failed to fetch dataset", err)
		return
	}

	resp := DatasetPage{Entries: entries, Total: total}
	go h.cache.Set(context.Background(), cacheKey, resp, h.ttl)

	c.JSON(http.StatusOK, resp)
}

func (h *DatasetHandler) Get(c *gin.Context) {
	entry, err := h.store.GetDatasetEntry(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondInternal(c, h.log, "Failed to fetch entry", err)
		return
	}
	if entry == nil {
		respondError(c, http.StatusNotFound, "Entry not found")
		return
	}
	c.JSON(http.StatusOK, entry)
}
