package api

import (
	"bytes"
	"encoding/json"
	"image/color"
	"image/png"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/gin-gonic/gin"
	"github.com/youruser/deckcode/internal/codec"
	"github.com/youruser/deckcode/internal/config"
	"github.com/youruser/deckcode/internal/deck"
	"github.com/youruser/deckcode/internal/deckcode"
)

const exampleCode = "ADCJWkTZX05uwGDCRV4XQGy3QGLmqUBg4GQJgGLGgO7AaABR3JlZW4vQmxhY2sgRXhhbXBsZQ__"

func newTestRouter(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if cfg == nil {
		cfg = config.Default()
	}
	h, err := NewHandler(cfg, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("NewHandler: %v", err)
	}
	r := gin.New()
	RegisterRoutes(r, h)
	return r
}

func do(r http.Handler, method, path string, body []byte, header map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	w := do(newTestRouter(t, nil), http.MethodGet, "/api/health", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"ok"`) {
		t.Errorf("body = %s", w.Body)
	}
}

func TestDecodeDeckJSON(t *testing.T) {
	w := do(newTestRouter(t, nil), http.MethodGet, "/api/deck/"+exampleCode, nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var got deck.Deck
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if got.Name != "Green/Black Example" || len(got.Heroes) != 5 || len(got.Cards) != 15 {
		t.Errorf("deck = %+v", got)
	}
}

func TestDecodeDeckFormats(t *testing.T) {
	r := newTestRouter(t, nil)

	w := do(r, http.MethodGet, "/api/deck/"+exampleCode+"?format=text", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("text status = %d", w.Code)
	}
	if !strings.HasPrefix(w.Body.String(), "# Green/Black Example\nhero 4005 turn 2\n") {
		t.Errorf("text body = %q", w.Body)
	}

	w = do(r, http.MethodGet, "/api/deck/"+exampleCode+"?format=cbor", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("cbor status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != codec.ContentType {
		t.Errorf("Content-Type = %q", ct)
	}
	var got deck.Deck
	if err := codec.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("codec.Unmarshal: %v", err)
	}
	want, _ := deckcode.Decode(exampleCode)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cbor deck = %+v, want %+v", got, want)
	}

	w = do(r, http.MethodGet, "/api/deck/"+exampleCode+"?format=xml", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("unknown format status = %d", w.Code)
	}
}

func TestDecodeDeckInvalid(t *testing.T) {
	r := newTestRouter(t, nil)
	for _, code := range []string{"XYZ123", "ADC!!", "ADCJWkT"} {
		w := do(r, http.MethodGet, "/api/deck/"+code, nil, nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", code, w.Code)
		}
		if !strings.Contains(w.Body.String(), "error") {
			t.Errorf("%s: body = %s", code, w.Body)
		}
	}
}

func TestEncodeDeck(t *testing.T) {
	d, err := deckcode.Decode(exampleCode)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	body, _ := json.Marshal(d)
	w := do(newTestRouter(t, nil), http.MethodPost, "/api/deck/encode", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	var resp struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if resp.Code != exampleCode || resp.Name != "Green/Black Example" {
		t.Errorf("response = %+v", resp)
	}
}

func TestEncodeDeckInvalid(t *testing.T) {
	r := newTestRouter(t, nil)
	tests := map[string]string{
		"malformed json": `{"heroes": [`,
		"empty deck":     `{"heroes": [], "cards": [], "name": "x"}`,
		"zero count":     `{"heroes": [{"id": 1, "turn": 1}], "cards": [{"id": 2, "count": 0}]}`,
	}
	for name, body := range tests {
		w := do(r, http.MethodPost, "/api/deck/encode", []byte(body), nil)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", name, w.Code)
		}
	}
}

func TestDeckQR(t *testing.T) {
	cfg := config.Default()
	cfg.QR.MaxSize = 500
	r := newTestRouter(t, cfg)

	w := do(r, http.MethodGet, "/api/deck/"+exampleCode+"/qr?size=9000", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	img, err := png.Decode(bytes.NewReader(w.Body.Bytes()))
	if err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
	if img.Bounds().Dx() != 500 {
		t.Errorf("width = %d, want clamped 500", img.Bounds().Dx())
	}
	tag := w.Header().Get("ETag")
	if tag == "" {
		t.Fatal("missing ETag")
	}

	w = do(r, http.MethodGet, "/api/deck/"+exampleCode+"/qr?size=9000", nil, map[string]string{"If-None-Match": tag})
	if w.Code != http.StatusNotModified {
		t.Errorf("conditional status = %d, want 304", w.Code)
	}

	w = do(r, http.MethodGet, "/api/deck/ADCbad/qr", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("invalid code status = %d, want 400", w.Code)
	}

	w = do(r, http.MethodGet, "/api/deck/"+exampleCode+"/qr?size=abc", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad size status = %d, want 400", w.Code)
	}
}

func TestDeckQRShareURLChangesETag(t *testing.T) {
	plain := do(newTestRouter(t, nil), http.MethodGet, "/api/deck/"+exampleCode+"/qr", nil, nil)
	cfg := config.Default()
	cfg.Share.BaseURL = "https://decks.example.com/d/"
	linked := do(newTestRouter(t, cfg), http.MethodGet, "/api/deck/"+exampleCode+"/qr", nil, nil)
	if plain.Code != http.StatusOK || linked.Code != http.StatusOK {
		t.Fatalf("status = %d / %d", plain.Code, linked.Code)
	}
	if plain.Header().Get("ETag") == linked.Header().Get("ETag") {
		t.Error("ETag ignores the share URL")
	}
}

func TestQR(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(r, http.MethodGet, "/api/qr?text=hello&size=128", nil, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "image/png" {
		t.Errorf("Content-Type = %q", ct)
	}
	w = do(r, http.MethodGet, "/api/qr", nil, nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing text status = %d, want 400", w.Code)
	}
}

func TestDeckImage(t *testing.T) {
	var art bytes.Buffer
	if err := png.Encode(&art, imaging.New(20, 30, color.NRGBA{B: 0xff, A: 0xff})); err != nil {
		t.Fatalf("png.Encode: %v", err)
	}
	artServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(art.Bytes())
	}))
	defer artServer.Close()

	body, _ := json.Marshal(map[string]any{
		"code":            exampleCode,
		"hero_image_urls": []string{artServer.URL + "/h1.png", artServer.URL + "/missing.png"},
		"card_image_urls": []string{artServer.URL + "/c1.png", artServer.URL + "/c2.png"},
	})
	w := do(newTestRouter(t, nil), http.MethodPost, "/api/deck/image", body, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", w.Code, w.Body)
	}
	if _, err := png.Decode(bytes.NewReader(w.Body.Bytes())); err != nil {
		t.Fatalf("png.Decode: %v", err)
	}
}

func TestDeckImageRejectsInvalidCode(t *testing.T) {
	r := newTestRouter(t, nil)
	w := do(r, http.MethodPost, "/api/deck/image", []byte(`{"code": "ADCnope"}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
	w = do(r, http.MethodPost, "/api/deck/image", []byte(`{}`), nil)
	if w.Code != http.StatusBadRequest {
		t.Errorf("missing code status = %d, want 400", w.Code)
	}
}

func TestErrorStatus(t *testing.T) {
	if got := errorStatus(deckcode.ErrChecksumMismatch); got != http.StatusBadRequest {
		t.Errorf("checksum status = %d", got)
	}
	if got := errorStatus(io.ErrUnexpectedEOF); got != http.StatusInternalServerError {
		t.Errorf("other status = %d", got)
	}
}
