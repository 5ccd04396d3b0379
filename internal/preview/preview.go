// Package preview turns a comic image into terminal half-block art.
//
// Each terminal cell shows two vertical pixels: the upper one as the
// foreground of a "▀" glyph and the lower one as its background.
package preview

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"
)

const (
	maxImageBytes = 10 << 20
	// Decoded size is four bytes per pixel, so this bounds the image at 100MB.
	maxImagePixels = 25_000_000
	maxCached     = 32
	halfBlock     = "▀"
)

var (
	// ErrEmptyURL is returned when a comic has no image to preview.
	ErrEmptyURL = errors.New("no image url")
	// ErrTooLarge is returned for images whose header declares more than
	// maxImagePixels pixels.
	ErrTooLarge = errors.New("image too large")
)

// Loader downloads and renders images. The zero value is not usable; use NewLoader.
type Loader struct {
	http      *http.Client
	userAgent string

	mu    sync.Mutex
	cache map[string]string
}

// NewLoader returns a Loader using client, or a client with a 15 second
// timeout when nil.
func NewLoader(client *http.Client, userAgent string) *Loader {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Loader{http: client, userAgent: userAgent, cache: make(map[string]string)}
}

// Load fetches url and renders it at most width cells wide and maxRows rows
// tall. Results are cached by url and size.
func (l *Loader) Load(ctx context.Context, url string, width, maxRows int) (string, error) {
	if strings.TrimSpace(url) == "" {
		return "", ErrEmptyURL
	}
	key := fmt.Sprintf("%s@%dx%d", url, width, maxRows)
	l.mu.Lock()
	if art, ok := l.cache[key]; ok {
		l.mu.Unlock()
		return art, nil
	}
	l.mu.Unlock()

	img, err := l.fetch(ctx, url)
	if err != nil {
		return "", err
	}
	art := Render(img, width, maxRows)

	l.mu.Lock()
	if len(l.cache) >= maxCached {
		clear(l.cache)
	}
	l.cache[key] = art
	l.mu.Unlock()
	return art, nil
}

func (l *Loader) fetch(ctx context.Context, url string) (image.Image, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}
	if l.userAgent != "" {
		req.Header.Set("User-Agent", l.userAgent)
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("get image: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("get image: status %d", resp.StatusCode)
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxImageBytes))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	return decode(data)
}

// decode checks the declared dimensions before decoding, since a small
// compressed file can describe a huge canvas.
func decode(data []byte) (image.Image, error) {
	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > maxImagePixels/cfg.Height {
		return nil, fmt.Errorf("decode image: %dx%d: %w", cfg.Width, cfg.Height, ErrTooLarge)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Render scales img to fit width cells and maxRows rows, keeping its aspect
// ratio, and returns newline separated rows of half blocks. Transparent
// pixels are composited onto white.
func Render(img image.Image, width, maxRows int) string {
	w, h := fit(img.Bounds().Dx(), img.Bounds().Dy(), width, maxRows*2)
	if w == 0 || h == 0 {
		return ""
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), draw.Over, nil)

	var b strings.Builder
	for y := 0; y < h; y += 2 {
		if y > 0 {
			b.WriteByte('\n')
		}
		for x := 0; x < w; x++ {
			top := dst.RGBAAt(x, y)
			bottom := color.RGBA{R: 255, G: 255, B: 255, A: 255}
			if y+1 < h {
				bottom = dst.RGBAAt(x, y+1)
			}
			b.WriteString(lipgloss.NewStyle().
				Foreground(hex(top)).
				Background(hex(bottom)).
				Render(halfBlock))
		}
	}
	return b.String()
}

// fit returns the largest size with the aspect ratio of srcW x srcH that
// fits maxW x maxH pixels. A non-positive bound is ignored.
func fit(srcW, srcH, maxW, maxH int) (int, int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	w, h := srcW, srcH
	if maxW > 0 && w > maxW {
		h = h * maxW / w
		w = maxW
	}
	if maxH > 0 && h > maxH {
		w = w * maxH / h
		h = maxH
	}
	return max(w, 1), max(h, 1)
}

func hex(c color.RGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B))
}
