// Package gcs implements metadata.Uploader on Google Cloud Storage. Objects
// are expected to be publicly readable through bucket-level IAM.
package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"google.golang.org/api/option"
)

const (
	backendName       = "gcs"
	defaultPublicBase = "https://storage.googleapis.com"
	cacheControl      = "public, max-age=31536000, immutable"
)

// Config contains the bucket settings.
type Config struct {
	Bucket          string
	Prefix          string
	PublicBaseURL   string
	CredentialsFile string
}

func (c *Config) validate() error {
	if c == nil {
		return errors.New("nil config")
	}
	if strings.TrimSpace(c.Bucket) == "" {
		return errors.New("bucket is required")
	}
	return nil
}

type openFunc func(ctx context.Context, object, contentType string) io.WriteCloser

// Uploader writes each descriptor under a fresh object prefix so URIs are
// never reused across issuances.
type Uploader struct {
	cfg    Config
	client *storage.Client
	open   openFunc
	newID  func() string
}

// NewClient creates a storage client, using the credentials file when set
// and application default credentials otherwise.
func NewClient(ctx context.Context, cfg *Config) (*storage.Client, error) {
	var opts []option.ClientOption
	if cfg != nil && cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return client, nil
}

// New creates an uploader writing into cfg.Bucket.
func New(client *storage.Client, cfg *Config) (*Uploader, error) {
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid gcs config: %w", err)
	}
	if client == nil {
		return nil, errors.New("nil storage client")
	}
	u := &Uploader{cfg: *cfg, client: client, newID: uuid.NewString}
	if u.cfg.PublicBaseURL == "" {
		u.cfg.PublicBaseURL = defaultPublicBase
	}
	u.cfg.PublicBaseURL = strings.TrimRight(u.cfg.PublicBaseURL, "/")
	u.open = u.openObject
	return u, nil
}

// Backend implements metadata.Uploader.
func (u *Uploader) Backend() string { return backendName }

// Upload writes payload to <prefix>/<uuid>/<filename> and returns its public URL.
func (u *Uploader) Upload(ctx context.Context, payload []byte, filename, contentType string) (string, error) {
	if len(payload) == 0 {
		return "", errors.New("payload is empty")
	}
	object := path.Join(strings.Trim(u.cfg.Prefix, "/"), u.newID(), filename)

	w := u.open(ctx, object, contentType)
	if _, err := w.Write(payload); err != nil {
		_ = w.Close()
		return "", fmt.Errorf("write gs://%s/%s: %w", u.cfg.Bucket, object, err)
	}
	if err := w.Close(); err != nil {
		return "", fmt.Errorf("finalize gs://%s/%s: %w", u.cfg.Bucket, object, err)
	}

	return u.publicURL(object), nil
}

func (u *Uploader) openObject(ctx context.Context, object, contentType string) io.WriteCloser {
	w := u.client.Bucket(u.cfg.Bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = cacheControl
	return w
}

func (u *Uploader) publicURL(object string) string {
	segments := strings.Split(object, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return fmt.Sprintf("%s/%s/%s", u.cfg.PublicBaseURL, u.cfg.Bucket, strings.Join(segments, "/"))
}
