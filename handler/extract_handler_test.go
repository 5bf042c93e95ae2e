package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/anirudh7k/ocr-bill-extraction/service"
)

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()

	extractService := service.NewExtractService(nil, nil, nil)
	extractHandler := NewExtractHandler(extractService, 10*1024*1024)
	router.POST("/api/v1/extract", extractHandler.ExtractAmounts)

	return router
}

func TestExtractAmountsTextField(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader("text=Total+Rs+500"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
	assert.Contains(t, w.Body.String(), `"currency":"INR"`)
}

func TestExtractAmountsNoBody(t *testing.T) {
	router := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"no_amounts_found"`)
	assert.Contains(t, w.Body.String(), "document too noisy")
}

func TestExtractAmountsMalformedMultipartBody(t *testing.T) {
	router := newTestRouter()

	// multipart/form-data without a boundary cannot be parsed
	req := httptest.NewRequest(http.MethodPost, "/api/v1/extract", strings.NewReader("garbage"))
	req.Header.Set("Content-Type", "multipart/form-data")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"error"`)
}
