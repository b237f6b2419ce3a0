// Package ui holds the terminal helpers used by the commands.
package ui

import (
	"context"
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"

	"github.com/Shopify/js-uploader/internal/uploader"
)

// NewUploadBar creates a progress bar counting total uploads on w.
func NewUploadBar(total int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Uploading"),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*1000000), // 65ms
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprint(w, "\n")
		}),
	)
}

// ProgressStore advances a progress bar after every write, failed or not.
type ProgressStore struct {
	uploader.ObjectStore
	bar *progressbar.ProgressBar
}

// WithProgress wraps store so that each PutObject moves bar forward.
func WithProgress(store uploader.ObjectStore, bar *progressbar.ProgressBar) *ProgressStore {
	return &ProgressStore{ObjectStore: store, bar: bar}
}

// PutObject forwards to the wrapped store.
func (s *ProgressStore) PutObject(ctx context.Context, in uploader.PutObjectInput) error {
	err := s.ObjectStore.PutObject(ctx, in)
	_ = s.bar.Add(1)
	return err
}
