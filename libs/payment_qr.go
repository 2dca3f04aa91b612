package libs

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/disintegration/imaging"
	"go.uber.org/zap"

	"storefront/models"
)

const (
	defaultQRSize    = 200
	defaultQRService = "https://api.qrserver.com/v1/create-qr-code/"
	pngDataURIPrefix = "data:image/png;base64,"
)

// QRRenderer turns a pix payment into something an <img> can show, plus the
// copy-and-paste code.
type QRRenderer struct {
	serviceURL string
	size       int
	logger     *zap.Logger
}

func NewQRRenderer(serviceURL string, size int, logger *zap.Logger) *QRRenderer {
	if serviceURL == "" {
		serviceURL = defaultQRService
	}
	if size <= 0 {
		size = defaultQRSize
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QRRenderer{serviceURL: serviceURL, size: size, logger: logger}
}

// Render prefers the image the backend sent. If there is none, or it does not
// decode, the image comes from the QR rendering service instead.
func (r *QRRenderer) Render(payment *models.Payment) *models.PaymentQR {
	if payment == nil || payment.QRCode == "" {
		return nil
	}

	qr := &models.PaymentQR{Code: payment.QRCode}
	if payment.QRCodeBase64 != "" {
		src, err := r.normalize(payment.QRCodeBase64)
		if err == nil {
			qr.ImageSrc = src
			return qr
		}
		r.logger.Warn("falling back to QR service", zap.Error(err))
	}

	qr.ImageSrc = r.ServiceURL(payment.QRCode)
	return qr
}

func (r *QRRenderer) ServiceURL(code string) string {
	sep := "?"
	if strings.Contains(r.serviceURL, "?") {
		sep = "&"
	}
	return fmt.Sprintf("%s%ssize=%dx%d&data=%s", r.serviceURL, sep, r.size, r.size, url.QueryEscape(code))
}

// normalize decodes the base64 image and scales it to the configured square.
// Nearest neighbor keeps the module edges sharp.
func (r *QRRenderer) normalize(encoded string) (string, error) {
	encoded = strings.TrimPrefix(encoded, pngDataURIPrefix)

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return "", fmt.Errorf("decode base64 QR image: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(raw))
	if err != nil {
		return "", fmt.Errorf("decode QR image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() != r.size || bounds.Dy() != r.size {
		img = imaging.Resize(img, r.size, r.size, imaging.NearestNeighbor)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return "", fmt.Errorf("encode QR image: %w", err)
	}

	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
