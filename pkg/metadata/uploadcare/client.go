// Package uploadcare implements metadata.Uploader on top of the Uploadcare
// upload API, using the official uploadcare-go client.
package uploadcare

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/uploadcare/uploadcare-go/ucare"
	"github.com/uploadcare/uploadcare-go/upload"
	"go.uber.org/zap"
)

const (
	backendName = "uploadcare"

	defaultUploadURL = "https://upload.uploadcare.com"
	defaultCDNURL    = "https://ucarecdn.com"
	defaultTimeout   = 30 * time.Second

	storeAuto = "auto"
)

// Config contains Uploadcare project settings.
type Config struct {
	PublicKey string
	SecretKey string
	// UploadURL overrides the upload API host, e.g. for a proxy.
	UploadURL string
	CDNURL    string
	// Store is sent as the store flag: "auto", "1" or "0".
	Store   string
	Timeout time.Duration
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if strings.TrimSpace(c.PublicKey) == "" {
		return errors.New("public_key is required")
	}
	if strings.TrimSpace(c.SecretKey) == "" {
		return errors.New("secret_key is required")
	}
	switch c.Store {
	case "", storeAuto, "1", "0":
	default:
		return fmt.Errorf("invalid store value %q", c.Store)
	}
	return nil
}

// Client uploads files to Uploadcare.
type Client struct {
	cfg    Config
	http   *http.Client
	files  upload.Service
	logger *zap.Logger
}

// Option configures the client.
type Option func(*Client)

// WithHTTPClient overrides the HTTP client handed to the SDK.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger sets a custom logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates an Uploadcare client.
func New(cfg *Config, opts ...Option) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid uploadcare config: %w", err)
	}
	c := &Client{cfg: *cfg, logger: zap.NewNop()}
	if c.cfg.UploadURL == "" {
		c.cfg.UploadURL = defaultUploadURL
	}
	if c.cfg.CDNURL == "" {
		c.cfg.CDNURL = defaultCDNURL
	}
	if c.cfg.Store == "" {
		c.cfg.Store = storeAuto
	}
	if c.cfg.Timeout <= 0 {
		c.cfg.Timeout = defaultTimeout
	}
	c.cfg.UploadURL = strings.TrimRight(c.cfg.UploadURL, "/")
	c.cfg.CDNURL = strings.TrimRight(c.cfg.CDNURL, "/")

	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: c.cfg.Timeout}
	}

	httpClient, err := c.routedClient()
	if err != nil {
		return nil, err
	}
	sdk, err := ucare.NewClient(
		ucare.APICreds{PublicKey: c.cfg.PublicKey, SecretKey: c.cfg.SecretKey},
		&ucare.Config{HTTPClient: httpClient},
	)
	if err != nil {
		return nil, fmt.Errorf("create uploadcare client: %w", err)
	}
	c.files = upload.NewService(sdk)
	return c, nil
}

// routedClient returns c.http, redirected to UploadURL when it is not the
// public upload host.
func (c *Client) routedClient() (*http.Client, error) {
	if c.cfg.UploadURL == defaultUploadURL {
		return c.http, nil
	}
	base, err := url.Parse(c.cfg.UploadURL)
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("invalid upload_url %q", c.cfg.UploadURL)
	}
	next := c.http.Transport
	if next == nil {
		next = http.DefaultTransport
	}
	routed := *c.http
	routed.Transport = &uploadEndpoint{base: base, next: next}
	return &routed, nil
}

// uploadEndpoint sends every request to base, keeping its path and query.
type uploadEndpoint struct {
	base *url.URL
	next http.RoundTripper
}

func (e *uploadEndpoint) RoundTrip(r *http.Request) (*http.Response, error) {
	r = r.Clone(r.Context())
	r.URL.Scheme = e.base.Scheme
	r.URL.Host = e.base.Host
	r.Host = e.base.Host
	return e.next.RoundTrip(r)
}

// Backend implements metadata.Uploader.
func (c *Client) Backend() string { return backendName }

// Upload sends payload as a direct upload and returns its CDN URL.
func (c *Client) Upload(ctx context.Context, payload []byte, filename, contentType string) (string, error) {
	if len(payload) == 0 {
		return "", errors.New("payload is empty")
	}

	store := c.cfg.Store
	id, err := c.files.UploadFile(ctx, upload.FileParams{
		Data:        bytes.NewReader(payload),
		Name:        filename,
		ContentType: contentType,
		ToStore:     &store,
	})
	if err != nil {
		return "", fmt.Errorf("upload to uploadcare: %w", err)
	}
	if id == "" {
		return "", errors.New("upload response has empty file id")
	}

	uri := fmt.Sprintf("%s/%s/", c.cfg.CDNURL, id)
	c.logger.Debug("uploadcare upload complete", zap.String("file", id), zap.String("uri", uri))
	return uri, nil
}
