package media

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/sunvoyage/admin-backend/internal/models"
	"github.com/sunvoyage/admin-backend/internal/storage"
)

func TestBuildAssetImageDefaults(t *testing.T) {
	desc := &storage.Descriptor{
		SecureURL: "https://bucket.s3.us-east-1.amazonaws.com/image/upload/tourism-media/sunset-beach-1a2b3c4d.png",
		PublicID:  "tourism-media/sunset-beach-1a2b3c4d",
		Bytes:     204800,
		Width:     1920,
		Height:    1080,
	}
	now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
	m := BuildAsset(desc, "sunset-beach.PNG", "image/png", Overrides{}, now)

	assert.Equal(t, models.TypeImage, m.Type)
	assert.Equal(t, "PNG", m.Format)
	assert.Equal(t, "sunset beach", m.Title)
	assert.Equal(t, desc.SecureURL, m.URL)
	assert.Equal(t, desc.SecureURL, m.Thumbnail)
	assert.Equal(t, models.CategoryOther, m.Category)
	assert.Equal(t, "1920x1080", m.Dimensions)
	assert.Equal(t, int64(204800), m.Size)
	assert.Equal(t, "Admin", m.UploadedBy)
	assert.True(t, m.IsActive)
}

func TestBuildAssetDocumentUsesCallerThumbnail(t *testing.T) {
	desc := &storage.Descriptor{
		SecureURL: "https://bucket.s3.us-east-1.amazonaws.com/raw/upload/tourism-media/brochure-9f8e7d6c.pdf",
		Bytes:     1024,
	}
	ov := Overrides{
		Title:     "Summer Brochure",
		Category:  "marketing2026",
		Thumbnail: "https://cdn.example.com/thumbs/brochure.png",
		Tags:      []string{"brochure", "summer"},
	}
	m := BuildAsset(desc, "brochure_v2.pdf", "application/pdf", ov, time.Now().UTC())

	assert.Equal(t, models.TypeDocument, m.Type)
	assert.Equal(t, "Summer Brochure", m.Title)
	assert.Equal(t, ov.Thumbnail, m.Thumbnail)
	assert.Equal(t, models.CategoryMarketing, m.Category)
	assert.Equal(t, "", m.Dimensions)
	assert.Equal(t, []string{"brochure", "summer"}, m.Tags)
}

func TestTitleFromFilename(t *testing.T) {
	assert.Equal(t, "sunset beach", TitleFromFilename("sunset-beach.PNG"))
	assert.Equal(t, "fjord tour day 3", TitleFromFilename("fjord_tour-day_3.jpg"))
	assert.Equal(t, "noext", TitleFromFilename("noext"))
}

func TestFormatFromFilename(t *testing.T) {
	assert.Equal(t, "PNG", FormatFromFilename("a.PNG"))
	assert.Equal(t, "JPG", FormatFromFilename("photo.final.jpg"))
	assert.Equal(t, "", FormatFromFilename("noext"))
	assert.Equal(t, "", FormatFromFilename("trailingdot."))
}

func TestParseTags(t *testing.T) {
	assert.Equal(t, []string{"beach", "sunset"}, ParseTags(" beach , sunset ,"))
	assert.Nil(t, ParseTags("   "))
}

func TestNormalizeTags(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, NormalizeTags("a, b"))
	assert.Equal(t, []string{"a", "b"}, NormalizeTags([]string{" a", "b "}))
	assert.Equal(t, []string{"a", "b"}, NormalizeTags([]any{"a", " b", 7}))
	assert.Nil(t, NormalizeTags(nil))
	assert.Nil(t, NormalizeTags(42))
}
