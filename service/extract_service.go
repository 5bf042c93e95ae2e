package service

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log"
	"math"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/anirudh7k/ocr-bill-extraction/client"
	"github.com/anirudh7k/ocr-bill-extraction/dto"
	"github.com/anirudh7k/ocr-bill-extraction/utils"
)

// A PDF with fewer text-layer characters than this is treated as a
// scanned document and sent through image OCR instead.
const minPDFTextLength = 20

// ExtractService orchestrates the extraction pipeline: obtain text
// (directly, or via the OCR collaborators), extract raw tokens,
// normalize them, classify amounts into roles, and assemble the
// response. Each request is processed independently; no state is shared.
type ExtractService struct {
	geminiClient    *client.GeminiClient
	tesseractClient *client.TesseractClient
	pdfProcessor    PDFProcessor
}

func NewExtractService(
	geminiClient *client.GeminiClient,
	tesseractClient *client.TesseractClient,
	pdfProcessor PDFProcessor,
) *ExtractService {
	return &ExtractService{
		geminiClient:    geminiClient,
		tesseractClient: tesseractClient,
		pdfProcessor:    pdfProcessor,
	}
}

// ExtractAmounts processes one extraction request. The result is either
// a *dto.ExtractResponse or a *dto.NoAmountsResponse; a non-nil error
// means a collaborator failed and the request should surface a generic
// internal error, never a no_amounts_found outcome.
func (s *ExtractService) ExtractAmounts(ctx context.Context, req *dto.ExtractRequest) (any, error) {
	text := req.Text
	var upi *dto.UPIPayment

	if req.File != nil {
		ocrText, payment, err := s.textFromUpload(ctx, req.File)
		if err != nil {
			return nil, err
		}
		text = ocrText
		upi = payment
	}

	return s.runPipeline(text, upi), nil
}

// runPipeline sequences extractor -> normalizer -> classifier over the
// obtained text and assembles the per-stage breakdown.
func (s *ExtractService) runPipeline(text string, upi *dto.UPIPayment) any {
	if strings.TrimSpace(text) == "" {
		return &dto.NoAmountsResponse{Status: dto.StatusNoAmounts, Reason: dto.ReasonTooNoisy}
	}

	rawTokens := utils.ExtractRawTokens(text)
	currencyHint := utils.DetectCurrencyHint(text)

	if len(rawTokens) == 0 {
		return &dto.NoAmountsResponse{Status: dto.StatusNoAmounts, Reason: dto.ReasonNoTokens}
	}

	step1 := dto.StepOne{
		RawTokens:    rawTokens,
		CurrencyHint: currencyHint,
		Confidence:   math.Min(0.99, 0.5+0.06*float64(len(rawTokens))),
	}

	normalizedAmounts, normalizationConfidence, provenanceMap := utils.NormalizeAmounts(rawTokens)
	values := make([]float64, 0, len(normalizedAmounts))
	for _, amount := range normalizedAmounts {
		values = append(values, amount.Value)
	}
	step2 := dto.StepTwo{
		NormalizedAmounts:       values,
		NormalizationConfidence: normalizationConfidence,
	}

	amounts, classificationConfidence := utils.ClassifyAmounts(normalizedAmounts, text, rawTokens, provenanceMap)
	step3 := dto.StepThree{
		Amounts:    amounts,
		Confidence: classificationConfidence,
	}

	return &dto.ExtractResponse{
		Pipeline: dto.Pipeline{Step1: step1, Step2: step2, Step3: step3},
		Final: dto.FinalResult{
			Currency: finalCurrency(currencyHint, upi),
			Amounts:  amounts,
			Status:   dto.StatusOK,
			UPI:      upi,
		},
	}
}

// finalCurrency resolves the response currency: the text-derived hint
// wins, then a currency read off a UPI payment QR, then the INR default.
func finalCurrency(hint dto.CurrencyHint, upi *dto.UPIPayment) dto.CurrencyHint {
	if hint != dto.CurrencyUnknown {
		return hint
	}
	if upi != nil && upi.Currency != "" {
		return dto.CurrencyHint(upi.Currency)
	}
	return dto.CurrencyINR
}

// textFromUpload turns an uploaded bill (image or PDF) into plain text,
// also scanning images for an embedded UPI payment QR.
func (s *ExtractService) textFromUpload(ctx context.Context, fileHeader *multipart.FileHeader) (string, *dto.UPIPayment, error) {
	data, err := readUpload(fileHeader)
	if err != nil {
		return "", nil, err
	}

	if strings.EqualFold(filepath.Ext(fileHeader.Filename), ".pdf") {
		text, err := s.textFromPDF(data)
		return text, nil, err
	}

	var upi *dto.UPIPayment
	if img, _, decodeErr := image.Decode(bytes.NewReader(data)); decodeErr == nil {
		upi = DecodeUPIQR(img)
	}

	text, err := s.ocrImage(ctx, fileHeader, data)
	if err != nil {
		return "", nil, err
	}
	return text, upi, nil
}

// ocrImage runs the OCR engine chain: Gemini first when configured,
// Tesseract as fallback.
func (s *ExtractService) ocrImage(ctx context.Context, fileHeader *multipart.FileHeader, data []byte) (string, error) {
	if s.geminiClient != nil {
		text, err := s.geminiClient.ExtractTextFromImage(ctx, data, imageFormat(fileHeader.Filename))
		if err == nil && strings.TrimSpace(text) != "" {
			return text, nil
		}
		if err != nil {
			log.Printf("Gemini OCR failed, falling back to Tesseract: %v", err)
		}
	}

	text, confidence, err := s.tesseractClient.ExtractTextAndQualityFromUpload(fileHeader)
	if err != nil {
		return "", fmt.Errorf("image OCR failed: %w", err)
	}
	log.Printf("Tesseract OCR average word confidence: %.1f", confidence)
	return text, nil
}

// textFromPDF extracts the PDF's text layer, falling back to OCR over
// extracted page images for scanned bills.
func (s *ExtractService) textFromPDF(data []byte) (string, error) {
	text, textErr := s.pdfProcessor.ExtractText(data)
	if textErr != nil {
		log.Printf("PDF text extraction failed: %v", textErr)
	}
	if len(strings.TrimSpace(text)) >= minPDFTextLength {
		return text, nil
	}

	log.Println("PDF seems to be scanned or has minimal text, attempting image-based OCR")
	images, imgErr := s.pdfProcessor.ExtractImages(data)
	if imgErr != nil || len(images) == 0 {
		if textErr != nil {
			return "", fmt.Errorf("pdf extraction failed: %w", textErr)
		}
		return text, nil
	}

	var combined strings.Builder
	for _, img := range images {
		pageText, ocrErr := s.tesseractClient.ExtractTextFromImage(img)
		if ocrErr != nil {
			log.Printf("OCR failed for a PDF page image: %v", ocrErr)
			continue
		}
		combined.WriteString(pageText)
		combined.WriteString("\n")
	}

	if strings.TrimSpace(combined.String()) != "" {
		return combined.String(), nil
	}
	return text, nil
}

func readUpload(fileHeader *multipart.FileHeader) ([]byte, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", fileHeader.Filename, err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", fileHeader.Filename, err)
	}
	return data, nil
}

// imageFormat maps a filename to the format suffix Gemini expects.
func imageFormat(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".webp":
		return "webp"
	default:
		return "png"
	}
}
