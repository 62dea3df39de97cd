package api

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/gin-gonic/gin"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/youruser/deckcode/internal/codec"
	"github.com/youruser/deckcode/internal/config"
	"github.com/youruser/deckcode/internal/deck"
	"github.com/youruser/deckcode/internal/deckcode"
	imagepkg "github.com/youruser/deckcode/internal/image"
)

// Handler serves the deck code API.
type Handler struct {
	cfg     *config.Config
	logger  *slog.Logger
	qrLevel qrcode.RecoveryLevel
}

func NewHandler(cfg *config.Config, logger *slog.Logger) (*Handler, error) {
	level, err := imagepkg.ParseRecoveryLevel(cfg.QR.Level)
	if err != nil {
		return nil, err
	}
	return &Handler{cfg: cfg, logger: logger, qrLevel: level}, nil
}

// codecErrors are failures caused by the request rather than the server.
var codecErrors = []error{
	deckcode.ErrInvalidPrefix,
	deckcode.ErrTruncatedInput,
	deckcode.ErrUnsupportedVersion,
	deckcode.ErrChecksumMismatch,
	deckcode.ErrMalformedInput,
	deckcode.ErrInvalidEntry,
	deckcode.ErrEmptyDeck,
}

func errorStatus(err error) int {
	for _, target := range codecErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func (h *Handler) fail(c *gin.Context, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		h.logger.Error("request failed", "path", c.FullPath(), "error", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// decodeDeck returns the deck behind a code as JSON, text or CBOR.
func (h *Handler) decodeDeck(c *gin.Context) {
	d, err := deckcode.Decode(c.Param("code"))
	if err != nil {
		h.fail(c, err)
		return
	}
	switch format := c.DefaultQuery("format", "json"); format {
	case "json":
		c.JSON(http.StatusOK, d)
	case "text":
		c.String(http.StatusOK, deck.ExportDeckText(d))
	case "cbor":
		b, err := codec.Marshal(d)
		if err != nil {
			h.fail(c, err)
			return
		}
		c.Data(http.StatusOK, codec.ContentType, b)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("unknown format %q", format)})
	}
}

func (h *Handler) encodeDeck(c *gin.Context) {
	var d deck.Deck
	if err := c.ShouldBindJSON(&d); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	code, err := deckcode.Encode(d)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"code": code, "name": deckcode.TruncateName(d.Name)})
}

// qrSize reads the size query parameter, clamped to the configured maximum.
func (h *Handler) qrSize(c *gin.Context) (int, error) {
	s := c.Query("size")
	if s == "" {
		return h.cfg.QR.DefaultSize, nil
	}
	size, err := strconv.Atoi(s)
	if err != nil || size <= 0 {
		return 0, fmt.Errorf("invalid size %q", s)
	}
	if size > h.cfg.QR.MaxSize {
		size = h.cfg.QR.MaxSize
	}
	return size, nil
}

func etag(text string, size int) string {
	return fmt.Sprintf(`"%016x"`, xxhash.Sum64String(strconv.Itoa(size)+":"+text))
}

func (h *Handler) servePNG(c *gin.Context, text string, size int) {
	tag := etag(text, size)
	if c.GetHeader("If-None-Match") == tag {
		c.Status(http.StatusNotModified)
		return
	}
	b, err := imagepkg.GenerateQRPNG(text, size, h.qrLevel)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.Header("ETag", tag)
	c.Data(http.StatusOK, "image/png", b)
}

// qr returns a PNG QR code of arbitrary text.
func (h *Handler) qr(c *gin.Context) {
	text := c.Query("text")
	if text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	size, err := h.qrSize(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.servePNG(c, text, size)
}

// deckQR returns a PNG QR code linking to a valid deck code.
func (h *Handler) deckQR(c *gin.Context) {
	code := c.Param("code")
	if _, err := deckcode.Decode(code); err != nil {
		h.fail(c, err)
		return
	}
	size, err := h.qrSize(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	h.servePNG(c, h.cfg.ShareText(code), size)
}

// deckImage composes a share image from caller supplied art and the deck QR.
// Art downloads are best-effort.
func (h *Handler) deckImage(c *gin.Context) {
	var req struct {
		Code          string   `json:"code" binding:"required"`
		HeroImageURLs []string `json:"hero_image_urls"`
		CardImageURLs []string `json:"card_image_urls"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	d, err := deckcode.Decode(req.Code)
	if err != nil {
		h.fail(c, err)
		return
	}

	heroImgs := h.download(req.HeroImageURLs, len(d.Heroes))
	cardImgs := h.download(req.CardImageURLs, h.cfg.Image.MaxCardImages)

	qrImg, err := imagepkg.GenerateQRImage(h.cfg.ShareText(req.Code), h.cfg.QR.DefaultSize, h.qrLevel)
	if err != nil {
		h.fail(c, err)
		return
	}
	out := imagepkg.ComposeDeckImage(heroImgs, cardImgs, qrImg)
	buf := new(bytes.Buffer)
	if err := png.Encode(buf, out); err != nil {
		h.fail(c, err)
		return
	}
	h.logger.Info("composed deck image", "name", d.Name, "heroes", len(heroImgs), "cards", len(cardImgs))
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

// download fetches at most limit images, skipping any that fail.
func (h *Handler) download(urls []string, limit int) []image.Image {
	var out []image.Image
	for _, u := range urls {
		if len(out) >= limit {
			break
		}
		img, err := imagepkg.DownloadImage(u, h.cfg.Image.FetchTimeout)
		if err != nil {
			h.logger.Warn("image download failed", "url", u, "error", err)
			continue
		}
		out = append(out, img)
	}
	return out
}
