package services

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/sunvoyage/admin-backend/internal/apperr"
	"github.com/sunvoyage/admin-backend/internal/media"
	"github.com/sunvoyage/admin-backend/internal/models"
	"github.com/sunvoyage/admin-backend/internal/repository"
	"github.com/sunvoyage/admin-backend/internal/storage"
)

// fakeRepo is an in-memory Repository.
type fakeRepo struct {
	mu   sync.Mutex
	docs map[string]*models.MediaAsset
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{docs: map[string]*models.MediaAsset{}}
}

func (r *fakeRepo) List(_ context.Context, _ repository.ListFilter) ([]models.MediaAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.MediaAsset{}
	for _, m := range r.docs {
		out = append(out, *m)
	}
	return out, nil
}

func (r *fakeRepo) GetByID(_ context.Context, id string) (*models.MediaAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.docs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRepo) Insert(_ context.Context, m *models.MediaAsset) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = primitive.NewObjectID()
	cp := *m
	r.docs[m.ID.Hex()] = &cp
	return nil
}

func (r *fakeRepo) Update(_ context.Context, id string, upd repository.UpdateInput) (*models.MediaAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.docs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	if upd.Title != nil {
		m.Title = *upd.Title
	}
	if upd.Category != nil {
		m.Category = *upd.Category
	}
	cp := *m
	return &cp, nil
}

func (r *fakeRepo) IncrementCounter(_ context.Context, id, field string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.docs[id]
	if !ok {
		return 0, apperr.ErrNotFound
	}
	switch field {
	case "views":
		m.Views++
		return m.Views, nil
	case "downloads":
		m.Downloads++
		return m.Downloads, nil
	case "likes":
		m.Likes++
		return m.Likes, nil
	}
	return 0, fmt.Errorf("unknown field %q", field)
}

func (r *fakeRepo) Delete(_ context.Context, id string) (*models.MediaAsset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.docs[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	delete(r.docs, id)
	return m, nil
}

// fakeHost records uploads and deletes; failures are injected per file.
type fakeHost struct {
	mu        sync.Mutex
	hostName  string
	failFor   map[string]error
	deleteErr error
	uploads   []storage.UploadInput
	deletes   []string
}

func newFakeHost() *fakeHost {
	return &fakeHost{hostName: "bucket.s3.us-east-1.amazonaws.com", failFor: map[string]error{}}
}

func (h *fakeHost) Upload(_ context.Context, in storage.UploadInput) (*storage.Descriptor, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.failFor[in.Filename]; err != nil {
		return nil, err
	}
	h.uploads = append(h.uploads, in)
	base := strings.TrimSuffix(in.Filename, path.Ext(in.Filename))
	d := &storage.Descriptor{
		SecureURL: fmt.Sprintf("https://%s/image/upload/%s/%s%s", h.hostName, in.Folder, base, strings.ToLower(path.Ext(in.Filename))),
		PublicID:  in.Folder + "/" + base,
		Bytes:     int64(len(in.Data)),
	}
	if strings.HasPrefix(in.ContentType, "image/") {
		d.Width, d.Height = 1200, 800
	}
	return d, nil
}

func (h *fakeHost) Delete(_ context.Context, publicID string, _ storage.ResourceType) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.deletes = append(h.deletes, publicID)
	return h.deleteErr
}

func (h *fakeHost) Owns(rawURL string) bool {
	return strings.Contains(rawURL, h.hostName)
}

// syncRunner runs tasks inline so tests can assert on their effects.
type syncRunner struct{ errs []error }

func (r *syncRunner) Go(_ string, fn func(ctx context.Context) error) {
	r.errs = append(r.errs, fn(context.Background()))
}

func newService(repo *fakeRepo, host *fakeHost) (*MediaService, *syncRunner) {
	runner := &syncRunner{}
	return NewMediaService(repo, host, runner, "tourism-media", zap.NewNop().Sugar()), runner
}

func TestUploadOneDerivesAsset(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	svc, _ := newService(repo, host)

	m, publicID, err := svc.UploadOne(context.Background(), UploadFile{
		Name:        "sunset-beach.PNG",
		ContentType: "image/png",
		Data:        []byte("fake-png-bytes"),
	}, media.Overrides{})
	require.NoError(t, err)

	assert.Equal(t, models.TypeImage, m.Type)
	assert.Equal(t, "PNG", m.Format)
	assert.Equal(t, "sunset beach", m.Title)
	assert.Equal(t, m.URL, m.Thumbnail)
	assert.Equal(t, models.CategoryOther, m.Category)
	assert.Equal(t, "tourism-media/sunset-beach", publicID)
	assert.False(t, m.ID.IsZero())

	stored, err := repo.GetByID(context.Background(), m.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, m.URL, stored.URL)
}

func TestUploadOneEmptyFile(t *testing.T) {
	svc, _ := newService(newFakeRepo(), newFakeHost())
	_, _, err := svc.UploadOne(context.Background(), UploadFile{Name: "a.png"}, media.Overrides{})
	assert.ErrorIs(t, err, apperr.ErrInvalidFile)
}

func TestUploadOneHostFailure(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	host.failFor["a.png"] = fmt.Errorf("remote down")
	svc, _ := newService(repo, host)

	_, _, err := svc.UploadOne(context.Background(), UploadFile{Name: "a.png", ContentType: "image/png", Data: []byte("x")}, media.Overrides{})
	assert.ErrorIs(t, err, apperr.ErrUploadFailed)
	assert.Empty(t, repo.docs)
}

func TestUploadManyPartialFailure(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	host.failFor["b.jpg"] = fmt.Errorf("remote down")
	svc, _ := newService(repo, host)

	results := svc.UploadMany(context.Background(), []UploadFile{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
		{Name: "c.jpg", ContentType: "image/jpeg", Data: []byte("c")},
	}, media.Overrides{})

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.ErrorIs(t, results[1].Err, apperr.ErrUploadFailed)
	assert.NoError(t, results[2].Err)
	assert.NotNil(t, results[0].Media)
	assert.Nil(t, results[1].Media)
	assert.NotNil(t, results[2].Media)

	// siblings of the failed file are persisted
	assert.Len(t, repo.docs, 2)
}

func TestUploadManyAllFail(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	host.failFor["a.jpg"] = fmt.Errorf("down")
	host.failFor["b.jpg"] = fmt.Errorf("down")
	svc, _ := newService(repo, host)

	results := svc.UploadMany(context.Background(), []UploadFile{
		{Name: "a.jpg", ContentType: "image/jpeg", Data: []byte("a")},
		{Name: "b.jpg", ContentType: "image/jpeg", Data: []byte("b")},
	}, media.Overrides{})

	for _, r := range results {
		assert.Error(t, r.Err)
	}
	assert.Empty(t, repo.docs)
}

func TestIncrementMonotonic(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	svc, _ := newService(repo, host)

	m, _, err := svc.UploadOne(context.Background(), UploadFile{Name: "a.png", ContentType: "image/png", Data: []byte("x")}, media.Overrides{})
	require.NoError(t, err)
	id := m.ID.Hex()

	for i := int64(1); i <= 3; i++ {
		n, err := svc.Increment(context.Background(), id, "downloads")
		require.NoError(t, err)
		assert.Equal(t, i, n)
	}
	n, err := svc.Increment(context.Background(), id, "likes")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	for i := 0; i < 2; i++ {
		_, err := svc.Increment(context.Background(), primitive.NewObjectID().Hex(), "likes")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	}

	_, err = svc.Increment(context.Background(), id, "views")
	assert.ErrorIs(t, err, apperr.ErrValidation)
}

func TestGetIsPureAndRecordViewIsNot(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	svc, _ := newService(repo, host)

	m, _, err := svc.UploadOne(context.Background(), UploadFile{Name: "a.png", ContentType: "image/png", Data: []byte("x")}, media.Overrides{})
	require.NoError(t, err)
	id := m.ID.Hex()

	got, err := svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Views)

	n, err := svc.RecordView(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	got, err = svc.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Views)
}

func TestUpdateNormalizesCategory(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	svc, _ := newService(repo, host)

	m, _, err := svc.UploadOne(context.Background(), UploadFile{Name: "a.png", ContentType: "image/png", Data: []byte("x")}, media.Overrides{})
	require.NoError(t, err)

	cat := models.Category("tour_asia")
	updated, err := svc.Update(context.Background(), m.ID.Hex(), repository.UpdateInput{Category: &cat})
	require.NoError(t, err)
	assert.Equal(t, models.CategoryTours, updated.Category)
}

func TestDeleteSchedulesRemoteCleanup(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	svc, _ := newService(repo, host)

	m, _, err := svc.UploadOne(context.Background(), UploadFile{Name: "a.png", ContentType: "image/png", Data: []byte("x")}, media.Overrides{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), m.ID.Hex()))
	assert.Empty(t, repo.docs)
	require.Len(t, host.deletes, 1)
	assert.Equal(t, "tourism-media/a", host.deletes[0])
}

func TestDeleteSkipsForeignURL(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	svc, _ := newService(repo, host)

	m := &models.MediaAsset{Name: "ext.jpg", Type: models.TypeImage, URL: "https://cdn.elsewhere.net/ext.jpg"}
	require.NoError(t, repo.Insert(context.Background(), m))

	require.NoError(t, svc.Delete(context.Background(), m.ID.Hex()))
	assert.Empty(t, repo.docs)
	assert.Empty(t, host.deletes)
}

func TestDeleteSurvivesRemoteFailure(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	host.deleteErr = fmt.Errorf("remote boom")
	svc, runner := newService(repo, host)

	m, _, err := svc.UploadOne(context.Background(), UploadFile{Name: "a.png", ContentType: "image/png", Data: []byte("x")}, media.Overrides{})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), m.ID.Hex()))
	assert.Empty(t, repo.docs)
	require.Len(t, runner.errs, 1)
	assert.Error(t, runner.errs[0])
}

func TestDeleteNotFound(t *testing.T) {
	svc, _ := newService(newFakeRepo(), newFakeHost())
	err := svc.Delete(context.Background(), primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestCreateDirectFromURL(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	svc, _ := newService(repo, host)

	m, err := svc.CreateDirect(context.Background(), CreateInput{
		Name:        "hero.jpg",
		URL:         "https://cdn.example.com/hero.jpg",
		ContentType: "image/jpeg",
		Overrides:   media.Overrides{Category: "destinations-2026"},
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/hero.jpg", m.URL)
	assert.Equal(t, models.TypeImage, m.Type)
	assert.Equal(t, models.CategoryDestinations, m.Category)
	assert.Empty(t, host.uploads)
}

func TestCreateDirectPushesInlineData(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	svc, _ := newService(repo, host)

	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	m, err := svc.CreateDirect(context.Background(), CreateInput{Name: "logo.png", Data: data})
	require.NoError(t, err)

	require.Len(t, host.uploads, 1)
	assert.Equal(t, "image/png", host.uploads[0].ContentType)
	assert.Contains(t, m.URL, host.hostName)
}

func TestCreateDirectFallsBackToInlinePayload(t *testing.T) {
	repo, host := newFakeRepo(), newFakeHost()
	host.failFor["logo.png"] = fmt.Errorf("remote down")
	svc, _ := newService(repo, host)

	data := "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("png-bytes"))
	m, err := svc.CreateDirect(context.Background(), CreateInput{Name: "logo.png", Data: data})
	require.NoError(t, err)
	assert.Equal(t, data, m.URL)
	assert.Len(t, repo.docs, 1)
}

func TestCreateDirectValidation(t *testing.T) {
	svc, _ := newService(newFakeRepo(), newFakeHost())

	_, err := svc.CreateDirect(context.Background(), CreateInput{URL: "https://x/y.jpg"})
	assert.ErrorIs(t, err, apperr.ErrValidation)

	_, err = svc.CreateDirect(context.Background(), CreateInput{Name: "y.jpg"})
	assert.ErrorIs(t, err, apperr.ErrValidation)
}
