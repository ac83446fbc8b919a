package service

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/skip2/go-qrcode"
)

// DefaultQRGenerator encodes the public tracking URL of an order.
type DefaultQRGenerator struct {
	BaseURL string
}

func (g *DefaultQRGenerator) Link(orderID string) string {
	return fmt.Sprintf("%s/api/orders/%s", strings.TrimRight(g.BaseURL, "/"), url.PathEscape(orderID))
}

func (g *DefaultQRGenerator) Generate(orderID string) ([]byte, error) {
	return qrcode.Encode(g.Link(orderID), qrcode.Medium, 256)
}
