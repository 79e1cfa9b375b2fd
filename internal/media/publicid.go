package media

import (
	"strings"

	"github.com/sunvoyage/admin-backend/internal/models"
	"github.com/sunvoyage/admin-backend/internal/storage"
)

// ParsePublicID recovers the remote host's asset identifier from a stored
// URL so deletion can be requested without keeping the id separately.
//
// The grammar it accepts:
//
//	.../upload/[v<digits>/]<folder>/<name>[.<ext>][?<query>]
//
// The identifier is <folder>/<name>. A URL without the "/upload/" marker
// falls back to its last path component; an identifier without a folder
// gets defaultFolder prepended.
func ParsePublicID(rawURL, defaultFolder string) string {
	id := rawURL
	if _, after, ok := strings.Cut(rawURL, "/upload/"); ok {
		id = after
		// version segment, e.g. v1700000000/
		if strings.HasPrefix(id, "v") {
			if head, tail, ok := strings.Cut(id[1:], "/"); ok && isDigits(head) {
				id = tail
			}
		}
	} else {
		if i := strings.LastIndex(id, "/"); i >= 0 {
			id = id[i+1:]
		}
	}
	if i := strings.Index(id, "?"); i >= 0 {
		id = id[:i]
	}
	if i := strings.LastIndex(id, "."); i > strings.LastIndex(id, "/") {
		id = id[:i]
	}
	if !strings.Contains(id, "/") {
		id = defaultFolder + "/" + id
	}
	return id
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResourceTypeFor maps the asset type onto the host's storage taxonomy.
// The host has no first-class audio type; audio lives under video.
func ResourceTypeFor(t models.MediaType) storage.ResourceType {
	switch t {
	case models.TypeImage:
		return storage.ResourceImage
	case models.TypeVideo, models.TypeAudio:
		return storage.ResourceVideo
	default:
		return storage.ResourceRaw
	}
}
