package handler

import (
	"fmt"
	"net/http"

	"renoquote_backend/internal/quotes/service"
	"renoquote_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
)

// PublicHandler serves the unauthenticated share-link views of a quote.
type PublicHandler struct {
	svc        *service.Service
	appBaseURL string
}

// NewPublic creates the public quote handler. appBaseURL is the frontend
// origin the QR code points at.
func NewPublic(svc *service.Service, appBaseURL string) *PublicHandler {
	return &PublicHandler{svc: svc, appBaseURL: appBaseURL}
}

// RegisterRoutes registers the public routes.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/quotes/:token", h.Get)
	rg.GET("/quotes/:token/qr", h.QRCode)
}

// Get returns the read-only view behind a share token.
func (h *PublicHandler) Get(c *gin.Context) {
	quote, err := h.svc.GetPublicQuote(c.Request.Context(), c.Param("token"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, quote)
}

// QRCode renders the share link as a PNG QR code. The token is resolved
// first so unknown tokens get a 404 instead of a valid QR to nowhere.
func (h *PublicHandler) QRCode(c *gin.Context) {
	token := c.Param("token")
	if _, err := h.svc.GetPublicQuote(c.Request.Context(), token); httpkit.HandleError(c, err) {
		return
	}

	shareURL := fmt.Sprintf("%s/quotes/shared/%s", h.appBaseURL, token)
	png, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if httpkit.HandleError(c, err) {
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}
