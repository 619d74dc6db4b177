package services

import (
	"strings"

	"github.com/skip2/go-qrcode"
)

// ShareService builds links and QR codes pointing viewers at a board
type ShareService struct {
	baseURL string
}

// NewShareService creates a new ShareService for the given public base URL
func NewShareService(baseURL string) *ShareService {
	return &ShareService{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// BaseURL returns the public base URL
func (s *ShareService) BaseURL() string {
	return s.baseURL
}

// URL returns the page address for a board
func (s *ShareService) URL(b Board) string {
	if b == BoardTeams {
		return s.baseURL + "/teams"
	}
	return s.baseURL + "/"
}

// QRCode returns a PNG QR code encoding the board's address
func (s *ShareService) QRCode(b Board, size int) ([]byte, error) {
	if size <= 0 {
		size = 256
	}
	return qrcode.Encode(s.URL(b), qrcode.Medium, size)
}
