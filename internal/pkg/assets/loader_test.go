package assets

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"report-service-go/internal/pkg/cache"
	"report-service-go/internal/pkg/circuitbreaker"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.NRGBA{R: uint8(x), G: 120, B: 200, A: 255})
		}
	}
	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))
	return buf.Bytes()
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	buf := new(bytes.Buffer)
	require.NoError(t, jpeg.Encode(buf, img, nil))
	return buf.Bytes()
}

// withEXIFOrientation вставляет после SOI сегмент APP1 с тегом Orientation
func withEXIFOrientation(data []byte, orientation uint16) []byte {
	// TIFF big-endian, IFD0 по смещению 8 с одной записью Orientation (SHORT)
	tiff := []byte{
		'M', 'M', 0x00, 0x2A,
		0x00, 0x00, 0x00, 0x08,
		0x00, 0x01,
		0x01, 0x12, 0x00, 0x03, 0x00, 0x00, 0x00, 0x01,
		byte(orientation >> 8), byte(orientation), 0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	payload := append([]byte("Exif\x00\x00"), tiff...)
	size := len(payload) + 2

	out := make([]byte, 0, len(data)+size+2)
	out = append(out, data[:2]...)
	out = append(out, 0xFF, 0xE1, byte(size>>8), byte(size))
	out = append(out, payload...)
	return append(out, data[2:]...)
}

// newLogoServer отдает логотипы разного размера, /missing отвечает 404
func newLogoServer(t *testing.T) *httptest.Server {
	t.Helper()
	wide := pngBytes(t, 40, 20)
	square := pngBytes(t, 16, 16)
	photo := jpegBytes(t, 30, 10)

	mux := http.NewServeMux()
	mux.HandleFunc("/wide.png", func(w http.ResponseWriter, r *http.Request) { w.Write(wide) })
	mux.HandleFunc("/square.png", func(w http.ResponseWriter, r *http.Request) { w.Write(square) })
	mux.HandleFunc("/photo.jpg", func(w http.ResponseWriter, r *http.Request) { w.Write(photo) })
	mux.HandleFunc("/slow.png", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(500 * time.Millisecond)
		w.Write(square)
	})
	mux.HandleFunc("/text", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte("not an image")) })
	mux.HandleFunc("/missing", http.NotFound)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newTestLoader(cfg Config) *Loader {
	return NewLoader(cfg, nil, nil, nil)
}

func TestLoader_LoadLogo(t *testing.T) {
	srv := newLogoServer(t)
	l := newTestLoader(DefaultConfig())

	t.Run("first url wins", func(t *testing.T) {
		img, ok := l.LoadLogo(context.Background(), []string{srv.URL + "/wide.png", srv.URL + "/square.png"})
		require.True(t, ok)
		assert.Equal(t, 40, img.Width)
		assert.Equal(t, 20, img.Height)
		assert.InDelta(t, 2.0, img.AspectRatio(), 1e-9)
		assert.Equal(t, "PNG", img.Type)
	})

	t.Run("no urls", func(t *testing.T) {
		_, ok := l.LoadLogo(context.Background(), nil)
		assert.False(t, ok)
	})

	t.Run("unreachable url degrades to no logo", func(t *testing.T) {
		_, ok := l.LoadLogo(context.Background(), []string{"http://127.0.0.1:1/logo.png"})
		assert.False(t, ok)
	})

	t.Run("not an image", func(t *testing.T) {
		_, ok := l.LoadLogo(context.Background(), []string{srv.URL + "/text"})
		assert.False(t, ok)
	})

	t.Run("first url broken does not fall back to second", func(t *testing.T) {
		_, ok := l.LoadLogo(context.Background(), []string{srv.URL + "/missing", srv.URL + "/square.png"})
		assert.False(t, ok)
	})
}

func TestLoader_LoadFooterLogosPartialFailure(t *testing.T) {
	srv := newLogoServer(t)
	l := newTestLoader(DefaultConfig())

	images := l.LoadFooterLogos(context.Background(), []string{
		srv.URL + "/wide.png",
		srv.URL + "/missing",
		srv.URL + "/square.png",
	})

	require.Len(t, images, 2)
	assert.Equal(t, 40, images[0].Width)
	assert.Equal(t, 16, images[1].Width)
	assert.NotEqual(t, images[0].Name, images[1].Name)
}

func TestLoader_FooterOrderIndependentOfCompletion(t *testing.T) {
	srv := newLogoServer(t)
	l := newTestLoader(DefaultConfig())

	images := l.LoadFooterLogos(context.Background(), []string{
		srv.URL + "/slow.png",
		srv.URL + "/wide.png",
	})

	require.Len(t, images, 2)
	assert.Equal(t, 16, images[0].Width, "slow logo keeps its position")
	assert.Equal(t, 40, images[1].Width)
}

func TestLoader_FetchTimeout(t *testing.T) {
	srv := newLogoServer(t)
	cfg := DefaultConfig()
	cfg.FetchTimeout = 50 * time.Millisecond
	l := newTestLoader(cfg)

	start := time.Now()
	_, err := l.Load(context.Background(), kindCover, srv.URL+"/slow.png")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFetch)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
}

func TestLoader_JPEGKeepsOriginalBytes(t *testing.T) {
	srv := newLogoServer(t)
	l := newTestLoader(DefaultConfig())

	img, err := l.Load(context.Background(), kindCover, srv.URL+"/photo.jpg")
	require.NoError(t, err)
	assert.Equal(t, "JPG", img.Type)
	assert.Equal(t, jpegBytes(t, 30, 10), img.Data)
}

func TestPrepare_RotatedJPEGIsReencoded(t *testing.T) {
	data := withEXIFOrientation(jpegBytes(t, 100, 50), 6)

	img, err := prepare("rotated.jpg", data, 1024)
	require.NoError(t, err)
	assert.Equal(t, "JPG", img.Type)
	assert.Equal(t, 50, img.Width)
	assert.Equal(t, 100, img.Height)
	assert.NotEqual(t, data, img.Data)

	embedded, format, err := image.DecodeConfig(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, img.Width, embedded.Width)
	assert.Equal(t, img.Height, embedded.Height)
	assert.InDelta(t, img.AspectRatio(), float64(embedded.Width)/float64(embedded.Height), 1e-9)
}

func TestPrepare_UprightEXIFKeepsOriginalBytes(t *testing.T) {
	data := withEXIFOrientation(jpegBytes(t, 100, 50), 1)

	img, err := prepare("upright.jpg", data, 1024)
	require.NoError(t, err)
	assert.Equal(t, data, img.Data)
	assert.Equal(t, 100, img.Width)
	assert.Equal(t, 50, img.Height)
}

func TestLoader_Downscale(t *testing.T) {
	srv := newLogoServer(t)
	cfg := DefaultConfig()
	cfg.MaxDimension = 10
	l := newTestLoader(cfg)

	img, err := l.Load(context.Background(), kindCover, srv.URL+"/wide.png")
	require.NoError(t, err)
	assert.Equal(t, 10, img.Width)
	assert.Equal(t, 5, img.Height)
	assert.InDelta(t, 2.0, img.AspectRatio(), 1e-9)
}

func TestLoader_EmptyURL(t *testing.T) {
	l := newTestLoader(DefaultConfig())
	_, err := l.Load(context.Background(), kindFooter, "")
	assert.ErrorIs(t, err, ErrEmptyURL)
}

func TestLoader_UsesCache(t *testing.T) {
	var hits atomic.Int32
	body := pngBytes(t, 8, 4)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(body)
	}))
	defer srv.Close()

	c := cache.NewCacheWithMetrics(time.Minute, cache.NewMetrics(prometheus.NewRegistry()))
	defer c.Stop()
	l := NewLoader(DefaultConfig(), nil, c, nil)

	for i := 0; i < 3; i++ {
		img, ok := l.LoadLogo(context.Background(), []string{srv.URL + "/logo.png"})
		require.True(t, ok)
		assert.Equal(t, 8, img.Width)
	}
	assert.Equal(t, int32(1), hits.Load())
}

func TestLoader_CircuitOpensPerHost(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := DefaultConfig()
	cfg.Breaker.FailureThreshold = 2
	cfg.Breaker.ResetTimeout = time.Hour
	l := newTestLoader(cfg)

	for i := 0; i < 5; i++ {
		_, ok := l.LoadLogo(context.Background(), []string{srv.URL + "/logo.png"})
		assert.False(t, ok)
	}
	assert.Equal(t, int32(2), hits.Load(), "open circuit stops calling the failing host")

	host := strings.TrimPrefix(srv.URL, "http://")
	assert.Equal(t, map[string]circuitbreaker.State{host: circuitbreaker.StateOpen}, l.BreakerStates())
}
