package handlers

import (
	"fmt"
	"strconv"

	"battery-lab-api/store"

	"github.com/gin-gonic/gin"
)

// DatasetParams are the query parameters of GET /api/dataset.
type DatasetParams struct {
	Page             int      `form:"page" binding:"omitempty,min=1"`
	Limit            int      `form:"limit" binding:"omitempty,min=1,max=100"`
	Category         string   `form:"category"`
	Search           string   `form:"search"`
	MinEnergyDensity *float64 `form:"minEnergyDensity"`
	MaxEnergyDensity *float64 `form:"maxEnergyDensity"`
	SortBy           string   `form:"sortBy" binding:"omitempty,oneof=name formula energyDensity voltageWindow ionicConductivity"`
	SortOrder        string   `form:"sortOrder" binding:"omitempty,oneof=asc desc"`
}

func ParseDatasetParams(c *gin.Context) (DatasetParams, error) {
	var p DatasetParams
	if err := c.ShouldBindQuery(&p); err != nil {
		return p, err
	}
	if p.Page == 0 {
		p.Page = store.DefaultPage
	}
	if p.Limit == 0 {
		p.Limit = store.DefaultLimit
	}
	return p, nil
}

func (p DatasetParams) Query() store.DatasetQuery {
	return store.DatasetQuery{
		Page:             p.Page,
		Limit:            p.Limit,
		Category:         p.Category,
		Search:           p.Search,
		MinEnergyDensity: p.MinEnergyDensity,
		MaxEnergyDensity: p.MaxEnergyDensity,
		SortBy:           p.SortBy,
		SortDesc:         p.SortOrder == "desc",
	}
}

// CacheKey identifies one page of one filtered listing.
func (p DatasetParams) CacheKey() string {
	return fmt.Sprintf("dataset:%d:%d:%q:%q:%s:%s:%s:%s",
		p.Page, p.Limit, p.Category, p.Search,
		optFloat(p.MinEnergyDensity), optFloat(p.MaxEnergyDensity),
		p.SortBy, p.SortOrder)
}

func optFloat(f *float64) string {
	if f == nil {
		return ""
	}
	return strconv.FormatFloat(*f, 'g', -1, 64)
}
