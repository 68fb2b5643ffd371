package http

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"go.sunfold.io/lcoe-api/internal/domain"
	"go.sunfold.io/lcoe-api/internal/usecase"
)

// Handler handles HTTP requests for LCOE surface evaluation.
type Handler struct {
	surfaceUC *usecase.SurfaceUseCase
}

// NewHandler creates a new HTTP handler.
func NewHandler(surfaceUC *usecase.SurfaceUseCase) *Handler {
	return &Handler{
		surfaceUC: surfaceUC,
	}
}

// GetSurface handles GET /v1/lcoe/surface.
func (h *Handler) GetSurface(c *gin.Context) {
	// Parse query parameters. All are optional; an empty query renders
	// the default surface.
	req := usecase.SurfaceRequest{
		Scenario:        c.Query("scenario"),
		ProjectDuration: c.Query("duration"),
		Irradiance:      c.Query("irradiance"),
		PanelType:       c.Query("panel_type"),
	}

	parseFloat := func(name string) (*float64, bool) {
		s := c.Query(name)
		if s == "" {
			return nil, true
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s: %v", name, err)})
			return nil, false
		}
		return &v, true
	}

	var ok bool
	if req.DiscountRatePercent, ok = parseFloat("discount_rate"); !ok {
		return
	}
	if req.LaunchMassKgPerM2, ok = parseFloat("launch_mass"); !ok {
		return
	}
	if req.LaunchCostMin, ok = parseFloat("launch_cost_min"); !ok {
		return
	}
	if req.LaunchCostMax, ok = parseFloat("launch_cost_max"); !ok {
		return
	}
	if req.ArrayCostMin, ok = parseFloat("array_cost_min"); !ok {
		return
	}
	if req.ArrayCostMax, ok = parseFloat("array_cost_max"); !ok {
		return
	}

	if pointsStr := c.Query("grid_points"); pointsStr != "" {
		points, err := strconv.Atoi(pointsStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid grid_points: %v", err)})
			return
		}
		req.GridPoints = &points
	}

	// Execute use case.
	response, err := h.surfaceUC.Execute(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, response)
}

// PostSelection handles POST /v1/lcoe/selection.
func (h *Handler) PostSelection(c *gin.Context) {
	var req usecase.SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid selection: %v", err)})
		return
	}

	point, err := h.surfaceUC.Select(req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, point)
}

// GetSelection handles GET /v1/lcoe/selection.
func (h *Handler) GetSelection(c *gin.Context) {
	point, ok := h.surfaceUC.Selected()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no point selected"})
		return
	}

	c.JSON(http.StatusOK, point)
}

// GetScenarios handles GET /v1/scenarios.
func (h *Handler) GetScenarios(c *gin.Context) {
	scenarios, err := h.surfaceUC.ListScenarios()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"scenarios": scenarios,
		"count":     len(scenarios),
	})
}

// HealthCheck handles GET /health.
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status": "ok",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// PanelTypeInfo describes one panel technology option.
type PanelTypeInfo struct {
	Name        string  `json:"name"`
	Efficiency  float64 `json:"efficiency"`
	Description string  `json:"description,omitempty"`
}

// IrradianceInfo describes one irradiance regime option.
type IrradianceInfo struct {
	Name           string  `json:"name"`
	KwhPerM2PerDay float64 `json:"kwh_per_m2_per_day"`
	Description    string  `json:"description,omitempty"`
}

// InputRange describes the accepted range and default of a scalar input.
type InputRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
	Units   string  `json:"units"`
}

// GetAssumptions handles GET /v1/assumptions: the enumerated options,
// input ranges, and the notes documenting each assumption.
func (h *Handler) GetAssumptions(c *gin.Context) {
	panelDescriptions := map[domain.PanelType]string{
		domain.PanelMonocrystallineSi: "Commercial terrestrial (monocrystalline Si); efficiency reduced at elevated temperature",
		domain.PanelMultiJunctionGaAs: "Space-based (multi-junction GaAs)",
	}
	irradianceDescriptions := map[domain.IrradianceRegime]string{
		domain.IrradianceSpace:       "AM0 spectrum (1366 W/m²), assuming 24 hours of sunlight year-round",
		domain.IrradianceTerrestrial: "Annualized southwest-US average, accounting for day/night cycles, weather, and atmospheric absorption",
	}

	panels := make([]PanelTypeInfo, 0, len(domain.PanelEfficiencies))
	for _, name := range []domain.PanelType{domain.PanelMonocrystallineSi, domain.PanelMultiJunctionGaAs} {
		panels = append(panels, PanelTypeInfo{
			Name:        string(name),
			Efficiency:  domain.PanelEfficiencies[name],
			Description: panelDescriptions[name],
		})
	}

	regimes := make([]IrradianceInfo, 0, len(domain.IrradianceRates))
	for _, name := range []domain.IrradianceRegime{domain.IrradianceSpace, domain.IrradianceTerrestrial} {
		regimes = append(regimes, IrradianceInfo{
			Name:           string(name),
			KwhPerM2PerDay: domain.IrradianceRates[name],
			Description:    irradianceDescriptions[name],
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"panel_types": panels,
		"irradiance":  regimes,
		"discount_rate": InputRange{
			Min:     domain.MinDiscountRatePercent,
			Max:     domain.MaxDiscountRatePercent,
			Default: domain.DefaultDiscountRatePercent,
			Units:   "%",
		},
		"launch_mass": InputRange{
			Min:     domain.MinLaunchMassKgPerM2,
			Max:     domain.MaxLaunchMassKgPerM2,
			Default: domain.DefaultLaunchMassKgPerM2,
			Units:   "kg/m²",
		},
		"notes": map[string]string{
			"project_lifetime": "Lazard's LCOE analysis for utility-scale solar PV uses a 35 year lifetime and a 7.7% discount rate; 10 years matches typical commercial LEO satellite lifetimes",
			"launch_mass":      "At minimum the panel mass; structure, wiring, and the electricity user add to it. Current space-ready panels weigh ~2 kg/m², research targets go as low as 0.05 kg/m²",
			"array_cost":       "Space-based PV estimates range from $31/W (GaAs cell manufacturing) to $700-1000/W for a full array; terrestrial hardware is of the order $1/W",
			"launch_cost":      "Currently $1000-5000 per kg to LEO, with projections down to $100",
		},
	})
}
