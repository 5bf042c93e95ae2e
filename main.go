package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/anirudh7k/ocr-bill-extraction/client"
	"github.com/anirudh7k/ocr-bill-extraction/config"
	"github.com/anirudh7k/ocr-bill-extraction/handler"
	"github.com/anirudh7k/ocr-bill-extraction/service"
)

func main() {
	// Initialize configuration
	cfg := config.LoadConfig()

	// Tesseract v5 needs TESSDATA_PREFIX set before the first client
	os.Setenv("TESSDATA_PREFIX", cfg.TesseractDataPath)
	log.Println("TESSDATA_PREFIX set to:", os.Getenv("TESSDATA_PREFIX"))

	// Gemini is the primary OCR engine; without an API key the service
	// runs on Tesseract alone.
	var geminiClient *client.GeminiClient
	if cfg.GeminiAPIKey != "" {
		gc, err := client.NewGeminiClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			log.Printf("Gemini client unavailable, continuing with Tesseract only: %v", err)
		} else {
			geminiClient = gc
			defer geminiClient.Close()
		}
	} else {
		log.Println("GEMINI_API_KEY not set, using Tesseract OCR only")
	}

	// Initialize Tesseract fallback client
	tesseractClient := client.NewTesseractClient(cfg.TesseractDataPath)
	defer tesseractClient.Close()

	// Initialize PDF processor
	pdfProcessor := service.NewPDFProcessor()

	// Initialize service layer
	extractService := service.NewExtractService(geminiClient, tesseractClient, pdfProcessor)

	// Initialize handler layer
	extractHandler := handler.NewExtractHandler(extractService, cfg.MaxFileSize)

	// Setup Gin router
	router := gin.Default()

	// Configure max multipart memory (32 MB)
	router.MaxMultipartMemory = 32 << 20

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "healthy",
			"service": "OCR Bill Extraction",
		})
	})

	// API routes
	api := router.Group("/api/v1")
	{
		api.POST("/extract", extractHandler.ExtractAmounts)
	}

	// Start server
	log.Printf("Starting OCR Bill Extraction Service on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
