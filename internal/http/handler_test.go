package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"go.sunfold.io/lcoe-api/internal/usecase"
)

func testRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return SetupRouter(usecase.NewSurfaceUseCase(nil))
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// TestGetSurface_Defaults checks that an empty query renders the
// default surface.
func TestGetSurface_Defaults(t *testing.T) {
	router := testRouter()

	w := doRequest(t, router, http.MethodGet, "/v1/lcoe/surface", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp usecase.SurfaceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.LaunchCostAxis) != 50 || len(resp.ArrayCostAxis) != 50 {
		t.Errorf("Expected 50-point axes, got %d/%d", len(resp.LaunchCostAxis), len(resp.ArrayCostAxis))
	}
	if len(resp.Points) != 2500 {
		t.Errorf("Expected 2500 flattened points, got %d", len(resp.Points))
	}
	if resp.Assumptions.DiscountRate != "7.7%" {
		t.Errorf("Discount rate display: got %q", resp.Assumptions.DiscountRate)
	}
}

// TestGetSurface_Params checks parameter parsing and the duration
// soft-fallback warning.
func TestGetSurface_Params(t *testing.T) {
	router := testRouter()

	w := doRequest(t, router, http.MethodGet,
		"/v1/lcoe/surface?discount_rate=10.5&duration=20&irradiance=terrestrial&panel_type=multijunction_gaas&launch_mass=5.0", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp usecase.SurfaceResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if resp.Assumptions.ProjectLifetime != "20 years" {
		t.Errorf("Project lifetime display: got %q", resp.Assumptions.ProjectLifetime)
	}
	if resp.Meta["irradiance"] != "terrestrial" {
		t.Errorf("Irradiance meta: got %q", resp.Meta["irradiance"])
	}

	// Invalid duration text is a warning, not a failure.
	w = doRequest(t, router, http.MethodGet, "/v1/lcoe/surface?duration=abc", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 for invalid duration text, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(resp.Warnings) != 1 {
		t.Errorf("Expected 1 warning, got %v", resp.Warnings)
	}
	if resp.Assumptions.ProjectLifetime != "10 years" {
		t.Errorf("Expected fallback lifetime, got %q", resp.Assumptions.ProjectLifetime)
	}
}

// TestGetSurface_BadRequests checks 400 responses.
func TestGetSurface_BadRequests(t *testing.T) {
	router := testRouter()

	paths := []string{
		"/v1/lcoe/surface?discount_rate=abc",
		"/v1/lcoe/surface?discount_rate=50",
		"/v1/lcoe/surface?launch_mass=99",
		"/v1/lcoe/surface?panel_type=perovskite",
		"/v1/lcoe/surface?irradiance=lunar",
		"/v1/lcoe/surface?grid_points=1",
		"/v1/lcoe/surface?launch_cost_min=-5",
	}

	for _, path := range paths {
		w := doRequest(t, router, http.MethodGet, path, "")
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, w.Code)
		}
	}
}

// TestSelectionRoundTrip checks POST then GET of the selected point.
func TestSelectionRoundTrip(t *testing.T) {
	router := testRouter()

	// No selection yet.
	w := doRequest(t, router, http.MethodGet, "/v1/lcoe/selection", "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 before selection, got %d", w.Code)
	}

	// Select with a companion value.
	w = doRequest(t, router, http.MethodPost, "/v1/lcoe/selection",
		`{"launch_cost": 1000, "array_cost": 1, "lcoe": 0.1282}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var point usecase.SelectedPoint
	if err := json.Unmarshal(w.Body.Bytes(), &point); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if point.LCOE != 0.1282 {
		t.Errorf("Companion LCOE: expected 0.1282, got %v", point.LCOE)
	}
	if point.Display.LCOE != "$0.1282/W" {
		t.Errorf("LCOE display: got %q", point.Display.LCOE)
	}

	// The selection is now readable.
	w = doRequest(t, router, http.MethodGet, "/v1/lcoe/selection", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 after selection, got %d", w.Code)
	}

	// Selection without companion value falls back to nearest cell.
	w = doRequest(t, router, http.MethodPost, "/v1/lcoe/selection",
		`{"launch_cost": 950, "array_cost": 1.1}`)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if err := json.Unmarshal(w.Body.Bytes(), &point); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if point.LCOE <= 0 {
		t.Errorf("Expected positive LCOE from lookup, got %v", point.LCOE)
	}

	// Malformed body.
	w = doRequest(t, router, http.MethodPost, "/v1/lcoe/selection", `{"launch_cost": "x"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed selection, got %d", w.Code)
	}
}

// TestGetAssumptions checks the documented options payload.
func TestGetAssumptions(t *testing.T) {
	router := testRouter()

	w := doRequest(t, router, http.MethodGet, "/v1/assumptions", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}

	var resp struct {
		PanelTypes []PanelTypeInfo   `json:"panel_types"`
		Irradiance []IrradianceInfo  `json:"irradiance"`
		Notes      map[string]string `json:"notes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}

	if len(resp.PanelTypes) != 2 {
		t.Errorf("Expected 2 panel types, got %d", len(resp.PanelTypes))
	}
	if len(resp.Irradiance) != 2 {
		t.Errorf("Expected 2 irradiance regimes, got %d", len(resp.Irradiance))
	}
	if resp.PanelTypes[0].Efficiency != 0.21 || resp.PanelTypes[1].Efficiency != 0.32 {
		t.Errorf("Unexpected efficiencies: %+v", resp.PanelTypes)
	}
	if len(resp.Notes) == 0 {
		t.Error("Expected assumption notes")
	}
}

// TestHealthCheck checks the health endpoint.
func TestHealthCheck(t *testing.T) {
	router := testRouter()

	w := doRequest(t, router, http.MethodGet, "/health", "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"ok"`) {
		t.Errorf("Unexpected health body: %s", w.Body.String())
	}
}
