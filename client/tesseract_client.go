package client

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/otiai10/gosseract/v2"
)

// TesseractClient is the local fallback OCR engine, used when Gemini is
// not configured or fails for a request.
type TesseractClient struct {
	dataPath string
}

func NewTesseractClient(dataPath string) *TesseractClient {
	return &TesseractClient{
		dataPath: dataPath,
	}
}

// ExtractTextAndQualityFromUpload extracts text from an uploaded bill
// image using Tesseract OCR, along with the average word confidence the
// engine reports for it. The upload is staged to a temporary file for
// the engine.
func (tc *TesseractClient) ExtractTextAndQualityFromUpload(fileHeader *multipart.FileHeader) (string, float64, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", 0, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	tempFile, err := tc.createTempFile(file, fileHeader.Filename)
	if err != nil {
		return "", 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile)

	text, confidence, err := tc.extractTextAndQuality(tempFile)
	if err != nil {
		return "", 0, fmt.Errorf("OCR extraction failed: %w", err)
	}

	return text, confidence, nil
}

// ExtractTextFromImage runs OCR over a decoded image, e.g. a page image
// pulled out of a scanned PDF.
func (tc *TesseractClient) ExtractTextFromImage(img image.Image) (string, error) {
	tempFile, err := os.CreateTemp("", "ocr-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tempFile.Name())

	if err := png.Encode(tempFile, img); err != nil {
		tempFile.Close()
		return "", fmt.Errorf("failed to encode image: %w", err)
	}
	tempFile.Close()

	return tc.extractText(tempFile.Name())
}

// createTempFile stages uploaded content on disk, preserving the
// extension so Tesseract picks the right decoder.
func (tc *TesseractClient) createTempFile(file multipart.File, filename string) (string, error) {
	ext := filepath.Ext(filename)
	tempFile, err := os.CreateTemp("", "ocr-*"+ext)
	if err != nil {
		return "", err
	}
	defer tempFile.Close()

	if _, err := io.Copy(tempFile, file); err != nil {
		os.Remove(tempFile.Name())
		return "", err
	}

	return tempFile.Name(), nil
}

func (tc *TesseractClient) extractText(filePath string) (string, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}

	if err := client.SetLanguage("eng"); err != nil {
		return "", fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImage(filePath); err != nil {
		return "", fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", fmt.Errorf("failed to extract text: %w", err)
	}

	return text, nil
}

// extractTextAndQuality extracts text plus the average confidence of the
// word bounding boxes Tesseract recognized.
func (tc *TesseractClient) extractTextAndQuality(filePath string) (string, float64, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if tc.dataPath != "" {
		client.SetTessdataPrefix(tc.dataPath)
	}

	if err := client.SetLanguage("eng"); err != nil {
		return "", 0, fmt.Errorf("failed to set language: %w", err)
	}

	if err := client.SetImage(filePath); err != nil {
		return "", 0, fmt.Errorf("failed to set image: %w", err)
	}

	text, err := client.Text()
	if err != nil {
		return "", 0, fmt.Errorf("failed to extract text: %w", err)
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD)
	if err != nil {
		// Confidence is best-effort; the text alone is still usable.
		return text, 0, nil
	}

	return text, averageConfidence(boxes), nil
}

// averageConfidence averages Tesseract's per-word confidence scores.
func averageConfidence(boxes []gosseract.BoundingBox) float64 {
	if len(boxes) == 0 {
		return 0
	}

	var total float64
	for _, box := range boxes {
		total += box.Confidence
	}
	return total / float64(len(boxes))
}

// Close performs cleanup
func (tc *TesseractClient) Close() {
	log.Println("Tesseract client closed")
}
