package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/sunvoyage/admin-backend/internal/apperr"
	"github.com/sunvoyage/admin-backend/internal/media"
	"github.com/sunvoyage/admin-backend/internal/models"
	"github.com/sunvoyage/admin-backend/internal/repository"
	"github.com/sunvoyage/admin-backend/internal/storage"
)

// Repository is the persistence boundary for media assets.
type Repository interface {
	List(ctx context.Context, f repository.ListFilter) ([]models.MediaAsset, error)
	GetByID(ctx context.Context, id string) (*models.MediaAsset, error)
	Insert(ctx context.Context, m *models.MediaAsset) error
	Update(ctx context.Context, id string, upd repository.UpdateInput) (*models.MediaAsset, error)
	IncrementCounter(ctx context.Context, id, field string) (int64, error)
	Delete(ctx context.Context, id string) (*models.MediaAsset, error)
}

// TaskRunner schedules best-effort background work.
type TaskRunner interface {
	Go(name string, fn func(ctx context.Context) error)
}

// UploadFile is one in-memory buffer from a multipart request.
type UploadFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// UploadResult reports one file's outcome in a batch upload. A failure of
// one file never cancels its siblings.
type UploadResult struct {
	Index int
	Name  string
	Media *models.MediaAsset
	Err   error
}

// CreateInput creates an asset from a direct URL or an inline base64
// payload instead of a multipart upload.
type CreateInput struct {
	Name        string
	URL         string
	Data        string
	ContentType string
	Type        string
	Overrides   media.Overrides
}

type MediaService struct {
	repo   Repository
	host   storage.RemoteHost
	runner TaskRunner
	folder string
	log    *zap.SugaredLogger
}

func NewMediaService(repo Repository, host storage.RemoteHost, runner TaskRunner, folder string, log *zap.SugaredLogger) *MediaService {
	return &MediaService{repo: repo, host: host, runner: runner, folder: folder, log: log}
}

func (s *MediaService) List(ctx context.Context, f repository.ListFilter) ([]models.MediaAsset, error) {
	return s.repo.List(ctx, f)
}

// Get is a pure fetch; view tracking is a separate command.
func (s *MediaService) Get(ctx context.Context, id string) (*models.MediaAsset, error) {
	return s.repo.GetByID(ctx, id)
}

// RecordView bumps the views counter and returns the new value.
func (s *MediaService) RecordView(ctx context.Context, id string) (int64, error) {
	return s.repo.IncrementCounter(ctx, id, "views")
}

// UploadOne pushes a single buffer to the remote host and persists the
// derived asset. The host's public id is returned alongside for the
// response body; it is not stored on the record.
func (s *MediaService) UploadOne(ctx context.Context, f UploadFile, ov media.Overrides) (*models.MediaAsset, string, error) {
	if len(f.Data) == 0 {
		return nil, "", apperr.ErrInvalidFile
	}
	ct := f.ContentType
	if ct == "" {
		ct = http.DetectContentType(f.Data)
	}
	desc, err := s.host.Upload(ctx, storage.UploadInput{
		Folder:      s.folder,
		Filename:    f.Name,
		ContentType: ct,
		Data:        f.Data,
	})
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", apperr.ErrUploadFailed, err)
	}
	m := media.BuildAsset(desc, f.Name, ct, ov, time.Now().UTC())
	if err := s.repo.Insert(ctx, &m); err != nil {
		return nil, "", err
	}
	return &m, desc.PublicID, nil
}

// UploadMany uploads every file concurrently and persists the survivors.
// Each element of the result slice carries either a created asset or that
// file's error.
func (s *MediaService) UploadMany(ctx context.Context, files []UploadFile, ov media.Overrides) []UploadResult {
	results := make([]UploadResult, len(files))
	descs := make([]*storage.Descriptor, len(files))
	cts := make([]string, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		results[i] = UploadResult{Index: i, Name: f.Name}
		if len(f.Data) == 0 {
			results[i].Err = apperr.ErrInvalidFile
			continue
		}
		wg.Add(1)
		go func(i int, f UploadFile) {
			defer wg.Done()
			ct := f.ContentType
			if ct == "" {
				ct = http.DetectContentType(f.Data)
			}
			cts[i] = ct
			desc, err := s.host.Upload(ctx, storage.UploadInput{
				Folder:      s.folder,
				Filename:    f.Name,
				ContentType: ct,
				Data:        f.Data,
			})
			if err != nil {
				results[i].Err = fmt.Errorf("%w: %v", apperr.ErrUploadFailed, err)
				return
			}
			descs[i] = desc
		}(i, f)
	}
	wg.Wait()

	for i, f := range files {
		if results[i].Err != nil || descs[i] == nil {
			continue
		}
		m := media.BuildAsset(descs[i], f.Name, cts[i], ov, time.Now().UTC())
		if err := s.repo.Insert(ctx, &m); err != nil {
			s.log.Warnf("persist failed for %s: %v", f.Name, err)
			results[i].Err = err
			continue
		}
		results[i].Media = &m
	}
	return results
}

// CreateDirect persists an asset from a caller-supplied URL or inline
// base64 data. Inline data is pushed to the remote host first; if the
// push fails the raw payload is stored as the URL so the record is never
// lost.
func (s *MediaService) CreateDirect(ctx context.Context, in CreateInput) (*models.MediaAsset, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", apperr.ErrValidation)
	}

	ct := in.ContentType
	desc := &storage.Descriptor{SecureURL: in.URL}

	if in.Data != "" {
		raw, dataCT := decodeInlineData(in.Data)
		if ct == "" {
			ct = dataCT
		}
		if raw != nil {
			if ct == "" {
				ct = http.DetectContentType(raw)
			}
			d, err := s.host.Upload(ctx, storage.UploadInput{
				Folder:      s.folder,
				Filename:    in.Name,
				ContentType: ct,
				Data:        raw,
			})
			if err != nil {
				s.log.Warnf("remote push failed for %s, storing inline payload: %v", in.Name, err)
				desc = &storage.Descriptor{SecureURL: in.Data, Bytes: int64(len(raw))}
			} else {
				desc = d
			}
		} else {
			desc = &storage.Descriptor{SecureURL: in.Data}
		}
	}

	if desc.SecureURL == "" {
		return nil, fmt.Errorf("%w: url or data is required", apperr.ErrValidation)
	}

	m := media.BuildAsset(desc, in.Name, ct, in.Overrides, time.Now().UTC())
	if t := models.MediaType(in.Type); t == models.TypeImage || t == models.TypeVideo ||
		t == models.TypeAudio || t == models.TypeDocument {
		m.Type = t
	}
	if err := s.repo.Insert(ctx, &m); err != nil {
		return nil, err
	}
	return &m, nil
}

func (s *MediaService) Update(ctx context.Context, id string, upd repository.UpdateInput) (*models.MediaAsset, error) {
	if upd.Category != nil {
		norm := models.NormalizeCategory(string(*upd.Category))
		upd.Category = &norm
	}
	return s.repo.Update(ctx, id, upd)
}

// Increment bumps downloads or likes; views go through RecordView.
func (s *MediaService) Increment(ctx context.Context, id, field string) (int64, error) {
	if field != "downloads" && field != "likes" {
		return 0, fmt.Errorf("%w: unknown counter %q", apperr.ErrValidation, field)
	}
	return s.repo.IncrementCounter(ctx, id, field)
}

// Delete removes the local record, then schedules best-effort remote
// cleanup when the stored URL belongs to the host. Cleanup failures are
// logged by the runner and never surface to the caller.
func (s *MediaService) Delete(ctx context.Context, id string) error {
	m, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !s.host.Owns(m.URL) {
		return nil
	}
	publicID := media.ParsePublicID(m.URL, s.folder)
	resourceType := media.ResourceTypeFor(m.Type)
	s.runner.Go("remote-media-delete", func(ctx context.Context) error {
		return s.host.Delete(ctx, publicID, resourceType)
	})
	return nil
}

// decodeInlineData handles both bare base64 and data URLs. A payload that
// does not decode is returned as nil so the caller can store it verbatim.
func decodeInlineData(s string) ([]byte, string) {
	ct := ""
	payload := s
	if strings.HasPrefix(s, "data:") {
		head, rest, ok := strings.Cut(s[len("data:"):], ",")
		if !ok {
			return nil, ""
		}
		payload = rest
		ct = strings.TrimSuffix(head, ";base64")
	}
	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, ct
	}
	return raw, ct
}
