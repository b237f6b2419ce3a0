package uploader

import (
	"context"

	"github.com/go-logr/logr"
)

// PutObjectInput is a single write request against the object store
type PutObjectInput struct {
	Body        []byte
	Key         string
	ContentType string
}

// ObjectStore is the write side of a remote object store
type ObjectStore interface {
	PutObject(ctx context.Context, in PutObjectInput) error
}

// Purger asks a caching layer to evict a URL
type Purger interface {
	Purge(ctx context.Context, url string, headers map[string]string) error
}

// Runner executes a shell command and reports its captured output
type Runner interface {
	Run(ctx context.Context, command string) (stdout, stderr string, err error)
}

// FileSource determines the set of files a Deployer works on.
// It is either ExplicitFiles or FromDirectory.
type FileSource interface {
	resolve() ([]string, error)
}

// ExplicitFiles is an ordered list of file paths used as given
type ExplicitFiles []string

// FromDirectory lists the immediate entries of a directory
type FromDirectory string

// Config contains everything a Deployer needs. It is copied by New and
// never modified afterwards.
type Config struct {
	// Store receives the uploaded artifacts, required for deploys
	Store ObjectStore
	// Source selects the files to work on (required)
	Source FileSource
	// Destination is the key prefix, required by DeployAll
	Destination string
	// Version, when set, adds a version segment to every key
	Version string
	// NoLatest disables the extra "latest" copy of versioned uploads
	NoLatest bool
	// PurgeHeaders are sent with every request issued by PurgeAll
	PurgeHeaders map[string]string

	// Purger defaults to an HTTP PURGE client
	Purger Purger
	// Runner defaults to a shell runner in the current directory
	Runner Runner
	// Logger defaults to a discarding logger
	Logger logr.Logger
}
