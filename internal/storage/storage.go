package storage

import "context"

// ResourceType is the remote host's coarse classification of stored
// binaries. It routes API calls; it is broader than the asset type the
// admin console shows.
type ResourceType string

const (
	ResourceImage ResourceType = "image"
	ResourceVideo ResourceType = "video"
	ResourceRaw   ResourceType = "raw"
)

// UploadInput describes one buffer to push to the remote host.
type UploadInput struct {
	Folder      string
	Filename    string
	ContentType string
	Data        []byte
}

// Descriptor is what the remote host returns for a stored binary.
type Descriptor struct {
	SecureURL string
	PublicID  string
	Bytes     int64
	Width     int
	Height    int
}

// RemoteHost stores uploaded binaries and serves them by URL. Metadata
// stays local; the host is only authoritative for the bytes.
type RemoteHost interface {
	Upload(ctx context.Context, in UploadInput) (*Descriptor, error)
	Delete(ctx context.Context, publicID string, resourceType ResourceType) error
	// Owns reports whether the URL points at this host, i.e. whether a
	// delete should attempt remote cleanup.
	Owns(rawURL string) bool
}
