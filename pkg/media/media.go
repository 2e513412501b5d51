// Package media turns user-selected files into self-contained MediaItems with
// inline data URLs.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tootbdigital/Li-es-Aprendidas-e-Inova-es-BDG/pkg/core"
)

// DefaultContentType is used for sources that report no content type.
const DefaultContentType = "application/octet-stream"

// Source is one selected file: a blob tagged with a content type.
type Source interface {
	Name() string
	ContentType() string
	Open() (io.ReadCloser, error)
}

// KindFor infers the media kind from a content type. Anything not video is
// treated as an image.
func KindFor(contentType string) core.MediaKind {
	if strings.HasPrefix(strings.ToLower(contentType), "video/") {
		return core.MediaVideo
	}
	return core.MediaImage
}

// DataURL inlines data as a base64 data URL.
func DataURL(contentType string, data []byte) string {
	if contentType == "" {
		contentType = DefaultContentType
	}
	return "data:" + contentType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// Option configures a Capturer.
type Option func(*Capturer)

// WithLogger sets the logger used to report dropped files.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Capturer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithConcurrency bounds the number of files read at once. Zero or less
// means unbounded.
func WithConcurrency(n int) Option {
	return func(c *Capturer) {
		c.concurrency = n
	}
}

// WithMaxBytes rejects files larger than n bytes. Zero means no limit.
func WithMaxBytes(n int64) Option {
	return func(c *Capturer) {
		c.maxBytes = n
	}
}

// WithIDGenerator replaces the UUID generator for media ids.
func WithIDGenerator(gen func() string) Option {
	return func(c *Capturer) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// Capturer reads batches of sources concurrently.
type Capturer struct {
	logger      *slog.Logger
	concurrency int
	maxBytes    int64
	newID       func() string
}

// NewCapturer creates a Capturer.
func NewCapturer(opts ...Option) *Capturer {
	c := &Capturer{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: 4,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Capture reads every source and returns one MediaItem per readable source,
// in input order. It returns only after all reads have finished. A source
// that fails to read is dropped and logged. Reads already started are not
// interrupted; sources not yet started when ctx is done are dropped.
func (c *Capturer) Capture(ctx context.Context, sources []Source) []core.MediaItem {
	results := make([]*core.MediaItem, len(sources))

	var g errgroup.Group
	if c.concurrency > 0 {
		g.SetLimit(c.concurrency)
	}
	for i, src := range sources {
		g.Go(func() error {
			if ctx.Err() != nil {
				c.logger.Warn("media capture skipped", "name", src.Name(), "error", ctx.Err())
				return nil
			}
			item, err := c.read(src)
			if err != nil {
				c.logger.Warn("media capture failed", "name", src.Name(), "error", err)
				return nil
			}
			results[i] = &item
			return nil
		})
	}
	_ = g.Wait()

	items := make([]core.MediaItem, 0, len(sources))
	for _, item := range results {
		if item != nil {
			items = append(items, *item)
		}
	}
	c.logger.Debug("media batch captured", "requested", len(sources), "captured", len(items))
	return items
}

func (c *Capturer) read(src Source) (core.MediaItem, error) {
	rc, err := src.Open()
	if err != nil {
		return core.MediaItem{}, err
	}
	defer rc.Close()

	var r io.Reader = rc
	if c.maxBytes > 0 {
		r = io.LimitReader(rc, c.maxBytes+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return core.MediaItem{}, err
	}
	if c.maxBytes > 0 && int64(len(data)) > c.maxBytes {
		return core.MediaItem{}, fmt.Errorf("file exceeds %d bytes", c.maxBytes)
	}

	contentType := src.ContentType()
	return core.MediaItem{
		ID:   c.newID(),
		Kind: KindFor(contentType),
		Data: DataURL(contentType, data),
	}, nil
}
