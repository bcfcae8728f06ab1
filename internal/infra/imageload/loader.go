// Package imageload resolves background image references into decoded images.
package imageload

import (
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
	_ "golang.org/x/image/webp"

	"github.com/aliskhannn/ayah-card-bot/internal/domain/entities"
)

const (
	DefaultMaxBytes  = 10 << 20
	DefaultCacheSize = 32
	DefaultTimeout   = 15 * time.Second
)

var (
	ErrEmptyReference    = errors.New("empty image reference")
	ErrUnsupportedScheme = errors.New("unsupported image scheme")
	ErrTooLarge          = errors.New("image too large")
)

type Options struct {
	HTTPClient *http.Client
	MaxBytes   int64
	CacheSize  int
	Logger     *zap.Logger
}

// Loader fetches and decodes images from http(s) URLs, data URLs and local
// files. Decoded images are kept in a small cache keyed by the reference.
type Loader struct {
	client    *http.Client
	maxBytes  int64
	cacheSize int
	logger    *zap.Logger

	mu    sync.Mutex
	cache map[string]image.Image
	order []string
}

type resolver func(ctx context.Context, ref string) (io.ReadCloser, error)

func New(opts Options) *Loader {
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{Timeout: DefaultTimeout}
	}
	if opts.MaxBytes <= 0 {
		opts.MaxBytes = DefaultMaxBytes
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = DefaultCacheSize
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Loader{
		client:    opts.HTTPClient,
		maxBytes:  opts.MaxBytes,
		cacheSize: opts.CacheSize,
		logger:    opts.Logger,
		cache:     make(map[string]image.Image),
	}
}

// Load returns the decoded image behind ref.
func (l *Loader) Load(ctx context.Context, ref entities.ImageReference) (image.Image, error) {
	key := strings.TrimSpace(ref.URL)
	if key == "" {
		return nil, ErrEmptyReference
	}

	if img, ok := l.cached(key); ok {
		return img, nil
	}

	open, err := l.resolverFor(key)
	if err != nil {
		return nil, err
	}

	rc, err := open(ctx, key)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := l.readLimited(rc)
	if err != nil {
		return nil, err
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}

	l.logger.Debug("background image loaded",
		zap.String("format", format),
		zap.String("size", humanize.Bytes(uint64(len(data)))),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)

	l.store(key, img)
	return img, nil
}

// Download returns the raw bytes behind an http(s) URL, bounded by the
// loader's size limit. Nothing is cached.
func (l *Loader) Download(ctx context.Context, rawURL string) ([]byte, error) {
	rc, err := l.openRemote(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	return l.readLimited(rc)
}

func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("%w: over %s", ErrTooLarge, humanize.Bytes(uint64(l.maxBytes)))
	}
	return data, nil
}

func (l *Loader) resolverFor(ref string) (resolver, error) {
	if strings.HasPrefix(ref, "data:") {
		return l.openData, nil
	}

	scheme := ""
	if idx := strings.Index(ref, "://"); idx != -1 {
		scheme = strings.ToLower(ref[:idx])
	}

	switch scheme {
	case "http", "https":
		return l.openRemote, nil
	case "", "file":
		return l.openLocal, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedScheme, scheme)
	}
}

func (l *Loader) openRemote(ctx context.Context, ref string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, fmt.Errorf("build image request: %w", err)
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch image %s: %s", redact(ref), resp.Status)
	}
	if resp.ContentLength > l.maxBytes {
		resp.Body.Close()
		return nil, fmt.Errorf("%w: %s over %s", ErrTooLarge,
			humanize.Bytes(uint64(resp.ContentLength)), humanize.Bytes(uint64(l.maxBytes)))
	}

	return resp.Body, nil
}

func (l *Loader) openLocal(_ context.Context, ref string) (io.ReadCloser, error) {
	path := filepath.Clean(strings.TrimPrefix(ref, "file://"))

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open image: %w", err)
	}
	return f, nil
}

// openData decodes "data:[<mediatype>][;base64],<data>". Only base64 payloads
// are accepted since images are binary.
func (l *Loader) openData(_ context.Context, ref string) (io.ReadCloser, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
	if !ok || !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("%w: data URL without base64 payload", ErrUnsupportedScheme)
	}

	dec := base64.NewDecoder(base64.StdEncoding, strings.NewReader(payload))
	return io.NopCloser(dec), nil
}

func (l *Loader) cached(key string) (image.Image, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	img, ok := l.cache[key]
	return img, ok
}

func (l *Loader) store(key string, img image.Image) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.cache[key]; ok {
		return
	}
	for len(l.order) >= l.cacheSize {
		delete(l.cache, l.order[0])
		l.order = l.order[1:]
	}
	l.cache[key] = img
	l.order = append(l.order, key)
}

func redact(ref string) string {
	u, err := url.Parse(ref)
	if err != nil {
		return "image"
	}
	u.RawQuery = ""
	return u.String()
}
