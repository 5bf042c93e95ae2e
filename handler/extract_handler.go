package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/anirudh7k/ocr-bill-extraction/dto"
	"github.com/anirudh7k/ocr-bill-extraction/service"
)

type ExtractHandler struct {
	extractService *service.ExtractService
	maxFileSize    int64
}

func NewExtractHandler(extractService *service.ExtractService, maxFileSize int64) *ExtractHandler {
	return &ExtractHandler{
		extractService: extractService,
		maxFileSize:    maxFileSize,
	}
}

// ExtractAmounts handles the POST /api/v1/extract endpoint. Requests
// carry either a "text" form field or an "image" upload (image or PDF).
func (h *ExtractHandler) ExtractAmounts(c *gin.Context) {
	log.Println("Received bill extraction request")

	text := c.PostForm("text")

	fileHeader, err := c.FormFile("image")
	if err != nil {
		// Requests without an upload (or without a multipart body at
		// all) fall through to the text field; anything else is a
		// malformed body.
		if !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart) {
			h.sendError(c, http.StatusBadRequest, "Failed to parse multipart form", err)
			return
		}
		fileHeader = nil
	}

	request := &dto.ExtractRequest{
		Text: text,
		File: fileHeader,
	}

	if err := request.Validate(h.maxFileSize); err != nil {
		h.sendError(c, http.StatusBadRequest, err.Error(), err)
		return
	}

	result, err := h.extractService.ExtractAmounts(c.Request.Context(), request)
	if err != nil {
		h.sendError(c, http.StatusInternalServerError, "Failed to extract amounts", err)
		return
	}

	log.Println("Bill extraction completed")
	c.JSON(http.StatusOK, result)
}

// sendError sends a structured error response
func (h *ExtractHandler) sendError(c *gin.Context, statusCode int, message string, err error) {
	errorMsg := message
	if err != nil {
		errorMsg = err.Error()
		log.Printf("Error: %s - %v", message, err)
	}

	c.JSON(statusCode, dto.ErrorResponse{
		Status:  dto.StatusError,
		Message: errorMsg,
	})
}
