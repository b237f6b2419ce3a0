// Package uploader deploys static build artifacts to an object store under
// versioned and "latest" keys, purges CDN caches and publishes packages.
package uploader

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"

	"github.com/Shopify/js-uploader/internal/executor"
	"github.com/Shopify/js-uploader/internal/purge"
)

const latestSegment = "latest"

// Publish commands run by PublishNPM and PublishYarn.
const (
	NPMPublishCommand  = "npm publish"
	YarnPublishCommand = "yarn publish"
)

// Deployer uploads a fixed set of files
type Deployer struct {
	cfg       Config
	filePaths []string
	log       logr.Logger
}

// New validates cfg and resolves the file set once. A nil Store is only
// rejected by DeployAll and DeployOne.
func New(cfg Config) (*Deployer, error) {
	if cfg.Source == nil {
		return nil, ErrNoSource
	}

	filePaths, err := cfg.Source.resolve()
	if err != nil {
		return nil, err
	}

	if cfg.Logger.GetSink() == nil {
		cfg.Logger = logr.Discard()
	}
	if cfg.Purger == nil {
		cfg.Purger = purge.NewClient(purge.WithLogger(cfg.Logger))
	}
	if cfg.Runner == nil {
		cfg.Runner = executor.NewShell("")
	}

	return &Deployer{
		cfg:       cfg,
		filePaths: filePaths,
		log:       cfg.Logger,
	}, nil
}

func (f ExplicitFiles) resolve() ([]string, error) {
	return append([]string(nil), f...), nil
}

func (d FromDirectory) resolve() ([]string, error) {
	dir := string(d)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, &EnumerationError{Dir: dir, Err: err}
	}

	filePaths := make([]string, 0, len(entries))
	for _, entry := range entries {
		filePaths = append(filePaths, filepath.Join(dir, entry.Name()))
	}
	return filePaths, nil
}

// FilePaths returns the resolved file list in order.
func (d *Deployer) FilePaths() []string {
	return append([]string(nil), d.filePaths...)
}

// Keys returns the destination keys for filePath.
func (d *Deployer) Keys(filePath string) []string {
	basename := filepath.Base(filePath)

	if d.cfg.Version == "" {
		return []string{path.Join(d.cfg.Destination, basename)}
	}

	keys := []string{path.Join(d.cfg.Destination, d.cfg.Version, basename)}
	if !d.cfg.NoLatest {
		keys = append(keys, path.Join(d.cfg.Destination, latestSegment, basename))
	}
	return keys
}

// DeployAll uploads every file under every one of its keys concurrently.
// All uploads run to completion; the first failure is returned.
func (d *Deployer) DeployAll(ctx context.Context) error {
	if d.cfg.Store == nil {
		return ErrNoStore
	}
	if d.cfg.Destination == "" {
		return ErrNoDestination
	}

	var g errgroup.Group
	for _, filePath := range d.filePaths {
		for _, key := range d.Keys(filePath) {
			g.Go(func() error {
				return d.DeployOne(ctx, filePath, key)
			})
		}
	}
	return g.Wait()
}

// DeployOne writes a single file to the store under key.
func (d *Deployer) DeployOne(ctx context.Context, filePath, key string) error {
	if d.cfg.Store == nil {
		return ErrNoStore
	}

	body, err := os.ReadFile(filePath)
	if err != nil {
		d.log.Error(err, "failed to read artifact", "file", filePath)
		return &UploadError{File: filePath, Key: key, Err: err}
	}

	in := PutObjectInput{
		Body:        body,
		Key:         key,
		ContentType: ContentType(filePath),
	}
	if err := d.cfg.Store.PutObject(ctx, in); err != nil {
		d.log.Error(err, "upload failed", "file", filePath, "key", key)
		return &UploadError{File: filePath, Key: key, Err: err}
	}

	d.log.Info(fmt.Sprintf("Uploaded %s as %s", filePath, key), "file", filePath, "key", key, "contentType", in.ContentType)
	return nil
}

// PurgeAll purges every resolved file path, treating each one as a URL.
func (d *Deployer) PurgeAll(ctx context.Context) error {
	var g errgroup.Group
	for _, url := range d.filePaths {
		g.Go(func() error {
			return d.PurgeOne(ctx, url, d.cfg.PurgeHeaders)
		})
	}
	return g.Wait()
}

// PurgeOne sends a PURGE request for url.
func (d *Deployer) PurgeOne(ctx context.Context, url string, headers map[string]string) error {
	if headers == nil {
		headers = map[string]string{}
	}

	if err := d.cfg.Purger.Purge(ctx, url, headers); err != nil {
		return &PurgeError{URL: url, Err: err}
	}

	d.log.Info("Purged "+url, "url", url)
	return nil
}

// PublishNPM runs "npm publish" and returns its stdout.
func (d *Deployer) PublishNPM(ctx context.Context) (string, error) {
	return d.run(ctx, NPMPublishCommand)
}

// PublishYarn runs "yarn publish" and returns its stdout.
func (d *Deployer) PublishYarn(ctx context.Context) (string, error) {
	return d.run(ctx, YarnPublishCommand)
}

// run logs captured output before reporting the command's error.
func (d *Deployer) run(ctx context.Context, command string) (string, error) {
	stdout, stderr, err := d.cfg.Runner.Run(ctx, command)

	if stdout != "" {
		d.log.Info(stdout, "command", command, "stream", "stdout")
	}
	if stderr != "" {
		d.log.Error(nil, stderr, "command", command, "stream", "stderr")
	}

	if err != nil {
		return stdout, &PublishError{Command: command, Err: err}
	}
	return stdout, nil
}
