package media

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sunvoyage/admin-backend/internal/models"
	"github.com/sunvoyage/admin-backend/internal/storage"
)

func TestParsePublicID(t *testing.T) {
	cases := []struct {
		name string
		url  string
		want string
	}{
		{
			"versioned with folder",
			"https://bucket.s3.us-east-1.amazonaws.com/image/upload/v1700000000/tourism-media/abc123.jpg",
			"tourism-media/abc123",
		},
		{
			"no version segment",
			"https://bucket.s3.us-east-1.amazonaws.com/image/upload/tourism-media/abc123.jpg",
			"tourism-media/abc123",
		},
		{
			"no folder gets default prepended",
			"https://bucket.s3.us-east-1.amazonaws.com/image/upload/abc123.jpg",
			"tourism-media/abc123",
		},
		{
			"query string stripped",
			"https://bucket.s3.us-east-1.amazonaws.com/raw/upload/tourism-media/report.pdf?X-Amz-Expires=600",
			"tourism-media/report",
		},
		{
			"no extension",
			"https://bucket.s3.us-east-1.amazonaws.com/raw/upload/tourism-media/blob",
			"tourism-media/blob",
		},
		{
			"folder with dot survives extension strip",
			"https://bucket.s3.us-east-1.amazonaws.com/raw/upload/v2.assets/blob",
			"v2.assets/blob",
		},
		{
			"fallback without upload marker",
			"https://cdn.example.com/files/legacy-photo.png",
			"tourism-media/legacy-photo",
		},
		{
			"version-looking folder is kept",
			"https://bucket.s3.us-east-1.amazonaws.com/image/upload/v2assets/pic.jpg",
			"v2assets/pic",
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, ParsePublicID(c.url, "tourism-media"))
		})
	}
}

func TestResourceTypeFor(t *testing.T) {
	assert.Equal(t, storage.ResourceImage, ResourceTypeFor(models.TypeImage))
	assert.Equal(t, storage.ResourceVideo, ResourceTypeFor(models.TypeVideo))
	assert.Equal(t, storage.ResourceVideo, ResourceTypeFor(models.TypeAudio))
	assert.Equal(t, storage.ResourceRaw, ResourceTypeFor(models.TypeDocument))
	assert.Equal(t, storage.ResourceRaw, ResourceTypeFor(models.MediaType("weird")))
}
