package models

import (
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Category is the closed set of media library categories shown in the
// admin console.
type Category string

const (
	CategoryDestinations Category = "Destinations"
	CategoryTours        Category = "Tours"
	CategoryEvents       Category = "Events"
	CategoryTestimonials Category = "Testimonials"
	CategoryMarketing    Category = "Marketing"
	CategoryOther        Category = "Other"
)

// categoryRoots maps a lowercase prefix to its canonical category. Order
// matters: the first matching root wins.
var categoryRoots = []struct {
	root string
	cat  Category
}{
	{"destination", CategoryDestinations},
	{"tour", CategoryTours},
	{"event", CategoryEvents},
	{"testimonial", CategoryTestimonials},
	{"market", CategoryMarketing},
}

// NormalizeCategory maps free-text category input onto the canonical set.
// Exact matches pass through, otherwise a case-insensitive prefix match
// against the root words decides; anything else becomes Other.
func NormalizeCategory(s string) Category {
	switch Category(s) {
	case CategoryDestinations, CategoryTours, CategoryEvents,
		CategoryTestimonials, CategoryMarketing, CategoryOther:
		return Category(s)
	}
	lower := strings.ToLower(strings.TrimSpace(s))
	for _, r := range categoryRoots {
		if strings.HasPrefix(lower, r.root) {
			return r.cat
		}
	}
	return CategoryOther
}

// MediaType classifies an asset by its payload kind.
type MediaType string

const (
	TypeImage    MediaType = "image"
	TypeVideo    MediaType = "video"
	TypeAudio    MediaType = "audio"
	TypeDocument MediaType = "document"
)

// MediaTypeFromMIME derives the asset type from the primary component of a
// declared MIME type. Unknown or missing input falls back to document.
func MediaTypeFromMIME(contentType string) MediaType {
	primary, _, _ := strings.Cut(contentType, "/")
	switch strings.ToLower(strings.TrimSpace(primary)) {
	case "image":
		return TypeImage
	case "video":
		return TypeVideo
	case "audio":
		return TypeAudio
	default:
		return TypeDocument
	}
}

// MediaAsset is the persisted media library entity.
type MediaAsset struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Title        string             `bson:"title" json:"title"`
	Type         MediaType          `bson:"type" json:"type"`
	Category     Category           `bson:"category" json:"category"`
	Size         int64              `bson:"size" json:"size"`
	Dimensions   string             `bson:"dimensions" json:"dimensions"`
	Format       string             `bson:"format" json:"format"`
	URL          string             `bson:"url" json:"url"`
	Thumbnail    string             `bson:"thumbnail" json:"thumbnail"`
	Alt          string             `bson:"alt" json:"alt"`
	Description  string             `bson:"description" json:"description"`
	Tags         []string           `bson:"tags" json:"tags"`
	UploadedBy   string             `bson:"uploadedBy" json:"uploadedBy"`
	UploadDate   time.Time          `bson:"uploadDate" json:"uploadDate"`
	LastModified time.Time          `bson:"lastModified" json:"lastModified"`
	Views        int64              `bson:"views" json:"views"`
	Downloads    int64              `bson:"downloads" json:"downloads"`
	Likes        int64              `bson:"likes" json:"likes"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
}

// ApplyDefaults fills schema defaults for a freshly built asset.
func (m *MediaAsset) ApplyDefaults(now time.Time) {
	if m.Category == "" {
		m.Category = CategoryOther
	}
	if m.UploadedBy == "" {
		m.UploadedBy = "Admin"
	}
	if m.Tags == nil {
		m.Tags = []string{}
	}
	if m.UploadDate.IsZero() {
		m.UploadDate = now
	}
	if m.LastModified.IsZero() {
		m.LastModified = now
	}
	m.IsActive = true
}
