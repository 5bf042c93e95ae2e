package service

import (
	"image"
	"log"
	"net/url"
	"strings"

	"github.com/makiuchi-d/gozxing"
	"github.com/makiuchi-d/gozxing/qrcode"

	"github.com/anirudh7k/ocr-bill-extraction/dto"
)

// DecodeUPIQR scans a bill image for a UPI payment QR code. Returns nil
// when no QR is present or its payload is not a upi:// deep link; QR
// decoding never fails a request.
func DecodeUPIQR(img image.Image) *dto.UPIPayment {
	bmp, err := gozxing.NewBinaryBitmapFromImage(img)
	if err != nil {
		return nil
	}

	reader := qrcode.NewQRCodeReader()
	result, err := reader.Decode(bmp, nil)
	if err != nil {
		return nil
	}

	payment := ParseUPILink(result.GetText())
	if payment != nil {
		log.Printf("UPI QR decoded: payee=%s amount=%s currency=%s", payment.PayeeAddress, payment.Amount, payment.Currency)
	}
	return payment
}

// ParseUPILink parses a upi://pay deep link into its payment fields
// (pa: payee address, pn: payee name, am: amount, cu: currency).
func ParseUPILink(link string) *dto.UPIPayment {
	if !strings.HasPrefix(strings.ToLower(link), "upi://") {
		return nil
	}

	u, err := url.Parse(link)
	if err != nil || !strings.EqualFold(u.Host, "pay") {
		return nil
	}

	query := u.Query()
	payment := &dto.UPIPayment{
		PayeeAddress: query.Get("pa"),
		PayeeName:    query.Get("pn"),
		Amount:       query.Get("am"),
		Currency:     strings.ToUpper(query.Get("cu")),
	}

	if payment.PayeeAddress == "" && payment.Amount == "" {
		return nil
	}
	return payment
}
