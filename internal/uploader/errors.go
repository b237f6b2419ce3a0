package uploader

import (
	"errors"
	"fmt"
)

// ErrorKind classifies the failures a Deployer can report
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindEnumeration
	KindUpload
	KindPurge
	KindPublish
)

func (k ErrorKind) String() string {
	switch k {
	case KindEnumeration:
		return "enumeration"
	case KindUpload:
		return "upload"
	case KindPurge:
		return "purge"
	case KindPublish:
		return "publish"
	default:
		return "unknown"
	}
}

var (
	// ErrNoStore is returned by DeployAll and DeployOne when Config.Store is nil.
	ErrNoStore = errors.New("object store is required")
	// ErrNoSource is returned by New when Config.Source is nil.
	ErrNoSource = errors.New("one of files or dir is required")
	// ErrNoDestination is returned by DeployAll when Config.Destination is empty.
	ErrNoDestination = errors.New("destination is required for deploy")
)

// EnumerationError reports a directory that could not be listed.
type EnumerationError struct {
	Dir string
	Err error
}

func (e *EnumerationError) Error() string {
	return fmt.Sprintf("failed to list directory %s: %v", e.Dir, e.Err)
}

func (e *EnumerationError) Unwrap() error   { return e.Err }
func (e *EnumerationError) Kind() ErrorKind { return KindEnumeration }

// UploadError reports a file that could not be written under Key.
type UploadError struct {
	File string
	Key  string
	Err  error
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("error uploading %s", e.File)
}

func (e *UploadError) Unwrap() error   { return e.Err }
func (e *UploadError) Kind() ErrorKind { return KindUpload }

// PurgeError reports a URL whose purge request failed.
type PurgeError struct {
	URL string
	Err error
}

func (e *PurgeError) Error() string {
	return fmt.Sprintf("error purging %s: %v", e.URL, e.Err)
}

func (e *PurgeError) Unwrap() error   { return e.Err }
func (e *PurgeError) Kind() ErrorKind { return KindPurge }

// PublishError reports a failed publish command. Err is the runner's error
// unchanged, so exit codes stay reachable through errors.As.
type PublishError struct {
	Command string
	Err     error
}

func (e *PublishError) Error() string {
	return fmt.Sprintf("%s: %v", e.Command, e.Err)
}

func (e *PublishError) Unwrap() error   { return e.Err }
func (e *PublishError) Kind() ErrorKind { return KindPublish }

// KindOf returns the kind of the first classified error in err's chain.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}
