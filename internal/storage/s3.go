package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// Transform bounds uploaded images; anything larger is scaled down to fit
// while keeping aspect ratio.
type Transform struct {
	MaxWidth  int
	MaxHeight int
}

// S3Host implements RemoteHost over an S3 bucket. Object keys follow
//
//	<resource-type>/upload/<folder>/<slug>[.<ext>]
//
// so stored URLs carry the "/upload/" marker the deletion path parses.
type S3Host struct {
	client    *s3.Client
	uploader  *manager.Uploader
	bucket    string
	region    string
	endpoint  string
	transform Transform
}

func NewS3Host(ctx context.Context, region, bucket, endpoint string, t Transform) (*S3Host, error) {
	cfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(region))
	if err != nil {
		return nil, err
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if endpoint != "" {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true
		}
	})
	return &S3Host{
		client:    client,
		uploader:  manager.NewUploader(client),
		bucket:    bucket,
		region:    region,
		endpoint:  endpoint,
		transform: t,
	}, nil
}

func (h *S3Host) Upload(ctx context.Context, in UploadInput) (*Descriptor, error) {
	data := in.Data
	width, height := 0, 0

	// probe and bound image dimensions before pushing
	if strings.HasPrefix(in.ContentType, "image/") {
		if img, err := imaging.Decode(bytes.NewReader(data)); err == nil {
			b := img.Bounds()
			width, height = b.Dx(), b.Dy()
			if h.transform.MaxWidth > 0 && h.transform.MaxHeight > 0 &&
				(width > h.transform.MaxWidth || height > h.transform.MaxHeight) {
				fitted := imaging.Fit(img, h.transform.MaxWidth, h.transform.MaxHeight, imaging.Lanczos)
				if format, ferr := imaging.FormatFromFilename(in.Filename); ferr == nil {
					var buf bytes.Buffer
					if eerr := imaging.Encode(&buf, fitted, format); eerr == nil {
						data = buf.Bytes()
						fb := fitted.Bounds()
						width, height = fb.Dx(), fb.Dy()
					}
				}
			}
		}
	}

	rt := resourceTypeForMIME(in.ContentType)
	slug := slugify(in.Filename)
	ext := strings.ToLower(path.Ext(in.Filename))
	key := fmt.Sprintf("%s/upload/%s/%s%s", rt, in.Folder, slug, ext)

	_, err := h.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(h.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(in.ContentType),
	})
	if err != nil {
		return nil, err
	}

	return &Descriptor{
		SecureURL: fmt.Sprintf("https://%s/%s", h.host(), key),
		PublicID:  in.Folder + "/" + slug,
		Bytes:     int64(len(data)),
		Width:     width,
		Height:    height,
	}, nil
}

// Delete removes every object stored for the public id. The extension is
// not part of the id, so matching keys are listed first.
func (h *S3Host) Delete(ctx context.Context, publicID string, resourceType ResourceType) error {
	prefix := fmt.Sprintf("%s/upload/%s", resourceType, publicID)
	out, err := h.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket: aws.String(h.bucket),
		Prefix: aws.String(prefix),
	})
	if err != nil {
		return err
	}
	for _, obj := range out.Contents {
		key := aws.ToString(obj.Key)
		if key != prefix && !strings.HasPrefix(key, prefix+".") {
			continue
		}
		if _, err := h.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(h.bucket),
			Key:    aws.String(key),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (h *S3Host) Owns(rawURL string) bool {
	return strings.Contains(rawURL, h.host())
}

func (h *S3Host) host() string {
	if h.endpoint != "" {
		return strings.TrimPrefix(strings.TrimPrefix(h.endpoint, "https://"), "http://") + "/" + h.bucket
	}
	return fmt.Sprintf("%s.s3.%s.amazonaws.com", h.bucket, h.region)
}

func resourceTypeForMIME(contentType string) ResourceType {
	primary, _, _ := strings.Cut(contentType, "/")
	switch primary {
	case "image":
		return ResourceImage
	case "video", "audio":
		return ResourceVideo
	default:
		return ResourceRaw
	}
}

// slugify keeps object keys URL-safe: lowercase basename, separators and
// unsafe runes collapsed to dashes, plus a short random suffix to dodge
// collisions between same-named uploads.
func slugify(filename string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = strings.ToLower(base)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		slug = "file"
	}
	return slug + "-" + uuid.NewString()[:8]
}
