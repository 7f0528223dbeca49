package service

import (
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"quizfy_backend/pkg/logger"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrSize = 256

// 1x1 PNG served when encoding fails.
var placeholderPNG, _ = hex.DecodeString("89504e470d0a1a0a0000000d494844520000000100000001080202000090773db30000000c49444154785e6300010000050001000b0b80c30000000049454e44ae426082")

type QRCodeService struct {
	SiteURL string
}

func NewQRCodeService(siteURL string) *QRCodeService {
	return &QRCodeService{SiteURL: strings.TrimRight(siteURL, "/")}
}

// JoinURL is the address students land on after scanning.
func (s *QRCodeService) JoinURL(code string) string {
	return fmt.Sprintf("%s/quiz/%s/join/", s.SiteURL, code)
}

// PNG never fails; on error it returns the placeholder image.
func (s *QRCodeService) PNG(code string) []byte {
	png, err := qrcode.Encode(s.JoinURL(code), qrcode.Medium, qrSize)
	if err != nil {
		logger.Log.Error("QR code generation failed", zap.String("code", code), zap.Error(err))
		return placeholderPNG
	}
	return png
}

func (s *QRCodeService) DataURI(code string) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(s.PNG(code))
}
