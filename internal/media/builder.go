package media

import (
	"fmt"
	"strings"
	"time"

	"github.com/sunvoyage/admin-backend/internal/models"
	"github.com/sunvoyage/admin-backend/internal/storage"
)

// Overrides are the caller-supplied fields that take precedence over
// values derived from the upload descriptor.
type Overrides struct {
	Title       string
	Category    string
	Alt         string
	Description string
	Thumbnail   string
	Dimensions  string
	UploadedBy  string
	Tags        []string
}

// BuildAsset derives a MediaAsset from an upload descriptor and the
// original file's name and MIME type. Pure; persistence fills the id.
func BuildAsset(desc *storage.Descriptor, filename, contentType string, ov Overrides, now time.Time) models.MediaAsset {
	t := models.MediaTypeFromMIME(contentType)

	title := ov.Title
	if title == "" {
		title = TitleFromFilename(filename)
	}

	thumbnail := ov.Thumbnail
	if t == models.TypeImage {
		thumbnail = desc.SecureURL
	}

	dimensions := ov.Dimensions
	if desc.Width > 0 && desc.Height > 0 {
		dimensions = fmt.Sprintf("%dx%d", desc.Width, desc.Height)
	}

	m := models.MediaAsset{
		Name:        strings.TrimSpace(filename),
		Title:       title,
		Type:        t,
		Category:    models.NormalizeCategory(ov.Category),
		Size:        desc.Bytes,
		Dimensions:  dimensions,
		Format:      FormatFromFilename(filename),
		URL:         desc.SecureURL,
		Thumbnail:   thumbnail,
		Alt:         ov.Alt,
		Description: ov.Description,
		Tags:        ov.Tags,
		UploadedBy:  ov.UploadedBy,
	}
	m.ApplyDefaults(now)
	return m
}

// TitleFromFilename turns "sunset-beach_01.png" into "sunset beach 01".
func TitleFromFilename(filename string) string {
	name := filename
	if i := strings.LastIndex(name, "."); i > 0 {
		name = name[:i]
	}
	name = strings.ReplaceAll(name, "-", " ")
	name = strings.ReplaceAll(name, "_", " ")
	return strings.TrimSpace(name)
}

// FormatFromFilename returns the uppercased extension tag, or "" when the
// filename has none.
func FormatFromFilename(filename string) string {
	i := strings.LastIndex(filename, ".")
	if i < 0 || i == len(filename)-1 {
		return ""
	}
	return strings.ToUpper(filename[i+1:])
}

// ParseTags normalizes a comma-separated tag string into trimmed,
// non-empty entries.
func ParseTags(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// NormalizeTags accepts either a comma-separated string or an
// already-structured list (as decoded from JSON) and returns a clean
// tag slice.
func NormalizeTags(v any) []string {
	switch tv := v.(type) {
	case nil:
		return nil
	case string:
		return ParseTags(tv)
	case []string:
		out := make([]string, 0, len(tv))
		for _, t := range tv {
			if t = strings.TrimSpace(t); t != "" {
				out = append(out, t)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(tv))
		for _, e := range tv {
			if s, ok := e.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					out = append(out, s)
				}
			}
		}
		return out
	default:
		return nil
	}
}
