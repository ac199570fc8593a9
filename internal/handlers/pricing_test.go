package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"labelworks-backend/internal/handlers"
	"labelworks-backend/internal/models"
	"labelworks-backend/internal/pricing"
)

func pricingRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := handlers.NewPricingHandler()
	router.POST("/pricing/estimate", handler.Estimate)
	return router
}

func postEstimate(t *testing.T, router *gin.Engine, body any) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	assert.NoError(t, err)

	req, _ := http.NewRequest("POST", "/pricing/estimate", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestEstimate_ImageStandard(t *testing.T) {
	router := pricingRouter()

	w := postEstimate(t, router, gin.H{
		"data_type":  "image",
		"complexity": "standard",
		"item_count": 1000,
		"turnaround": "standard",
		"qa_layers":  0,
	})

	assert.Equal(t, http.StatusOK, w.Code)

	var result pricing.Result
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.Equal(t, float64(1000), result.BillableUnits)
	assert.InDelta(t, 350.00, result.GrandTotal, 0.001)
}

func TestEstimate_InvalidEnum(t *testing.T) {
	router := pricingRouter()

	w := postEstimate(t, router, gin.H{
		"data_type":  "hologram",
		"complexity": "standard",
		"item_count": 1000,
		"turnaround": "standard",
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var response models.ErrorResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Error)
}

func TestEstimate_MalformedBody(t *testing.T) {
	router := pricingRouter()

	req, _ := http.NewRequest("POST", "/pricing/estimate", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/health", handlers.HealthHandler)

	req, _ := http.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var response models.HealthResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, "ok", response.Status)
}
