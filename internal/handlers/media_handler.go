package handlers

import (
	"errors"
	"io"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/sunvoyage/admin-backend/internal/apperr"
	"github.com/sunvoyage/admin-backend/internal/media"
	"github.com/sunvoyage/admin-backend/internal/models"
	"github.com/sunvoyage/admin-backend/internal/repository"
	"github.com/sunvoyage/admin-backend/internal/respond"
	"github.com/sunvoyage/admin-backend/internal/services"
)

type MediaHandler struct {
	svc      *services.MediaService
	maxFiles int
	log      *zap.SugaredLogger
}

func NewMediaHandler(svc *services.MediaService, maxFiles int, log *zap.SugaredLogger) *MediaHandler {
	return &MediaHandler{svc: svc, maxFiles: maxFiles, log: log}
}

func (h *MediaHandler) Register(app *fiber.App) {
	app.Get("/media", h.List)
	app.Post("/media/upload", h.Upload)
	app.Post("/media/upload-multiple", h.UploadMultiple)
	app.Post("/media", h.Create)
	app.Get("/media/:id", h.Get)
	app.Put("/media/:id", h.Update)
	app.Delete("/media/:id", h.Delete)
	app.Post("/media/:id/download", h.RecordDownload)
	app.Post("/media/:id/like", h.RecordLike)
}

// GET /media
func (h *MediaHandler) List(c *fiber.Ctx) error {
	f := repository.ListFilter{
		Type:     c.Query("type"),
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	switch c.Query("isActive") {
	case "true":
		active := true
		f.IsActive = &active
	case "false":
		active := false
		f.IsActive = &active
	}
	items, err := h.svc.List(c.Context(), f)
	if err != nil {
		h.log.Errorf("media list: %v", err)
		return respond.Error(c, fiber.StatusInternalServerError, "Failed to fetch media")
	}
	return respond.JSON(c, fiber.StatusOK, items)
}

// GET /media/:id — fetching for viewing also records a view.
func (h *MediaHandler) Get(c *fiber.Ctx) error {
	id := c.Params("id")
	m, err := h.svc.Get(c.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		return respond.Error(c, fiber.StatusNotFound, "Media not found")
	}
	if err != nil {
		h.log.Errorf("media get %s: %v", id, err)
		return respond.Error(c, fiber.StatusInternalServerError, "Failed to fetch media")
	}
	if views, verr := h.svc.RecordView(c.Context(), id); verr == nil {
		m.Views = views
	}
	return respond.JSON(c, fiber.StatusOK, m)
}

// POST /media/upload
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "No file uploaded")
	}
	f, err := readUpload(fileHeader)
	if err != nil {
		h.log.Errorf("read upload: %v", err)
		return respond.Error(c, fiber.StatusInternalServerError, "Failed to read file")
	}

	m, publicID, err := h.svc.UploadOne(c.Context(), f, h.overridesFromForm(c))
	if errors.Is(err, apperr.ErrUploadFailed) || errors.Is(err, apperr.ErrInvalidFile) {
		h.log.Warnf("upload rejected for %s: %v", fileHeader.Filename, err)
		return respond.Error(c, fiber.StatusBadRequest, "File upload failed")
	}
	if err != nil {
		h.log.Errorf("upload %s: %v", fileHeader.Filename, err)
		return respond.Error(c, fiber.StatusInternalServerError, "Failed to upload media")
	}
	return respond.JSON(c, fiber.StatusCreated, fiber.Map{
		"message":  "Media uploaded successfully",
		"media":    m,
		"publicId": publicID,
	})
}

// POST /media/upload-multiple
func (h *MediaHandler) UploadMultiple(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File["files"]) == 0 {
		return respond.Error(c, fiber.StatusBadRequest, "No files uploaded")
	}
	headers := form.File["files"]
	if len(headers) > h.maxFiles {
		return respond.Error(c, fiber.StatusBadRequest, "Too many files")
	}

	files := make([]services.UploadFile, 0, len(headers))
	for _, fh := range headers {
		f, rerr := readUpload(fh)
		if rerr != nil {
			f = services.UploadFile{Name: fh.Filename}
		}
		files = append(files, f)
	}

	results := h.svc.UploadMany(c.Context(), files, h.overridesFromForm(c))
	uploaded := []*models.MediaAsset{}
	failures := []fiber.Map{}
	for _, r := range results {
		if r.Err != nil {
			failures = append(failures, fiber.Map{"name": r.Name, "error": "upload failed"})
			continue
		}
		uploaded = append(uploaded, r.Media)
	}
	if len(uploaded) == 0 {
		return respond.Error(c, fiber.StatusInternalServerError, "All uploads failed")
	}
	return respond.JSON(c, fiber.StatusCreated, fiber.Map{
		"message": "Files uploaded",
		"media":   uploaded,
		"failed":  failures,
	})
}

// POST /media
func (h *MediaHandler) Create(c *fiber.Ctx) error {
	var body struct {
		Name        string `json:"name"`
		URL         string `json:"url"`
		Data        string `json:"data"`
		ContentType string `json:"contentType"`
		Type        string `json:"type"`
		Title       string `json:"title"`
		Category    string `json:"category"`
		Alt         string `json:"alt"`
		Description string `json:"description"`
		Thumbnail   string `json:"thumbnail"`
		Dimensions  string `json:"dimensions"`
		UploadedBy  string `json:"uploadedBy"`
		Tags        any    `json:"tags"`
	}
	if err := c.BodyParser(&body); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}

	m, err := h.svc.CreateDirect(c.Context(), services.CreateInput{
		Name:        body.Name,
		URL:         body.URL,
		Data:        body.Data,
		ContentType: body.ContentType,
		Type:        body.Type,
		Overrides: media.Overrides{
			Title:       body.Title,
			Category:    body.Category,
			Alt:         body.Alt,
			Description: body.Description,
			Thumbnail:   body.Thumbnail,
			Dimensions:  body.Dimensions,
			UploadedBy:  body.UploadedBy,
			Tags:        media.NormalizeTags(body.Tags),
		},
	})
	if errors.Is(err, apperr.ErrValidation) {
		return respond.Error(c, fiber.StatusBadRequest, err.Error())
	}
	if err != nil {
		h.log.Errorf("media create: %v", err)
		return respond.Error(c, fiber.StatusInternalServerError, "Failed to create media")
	}
	return respond.JSON(c, fiber.StatusCreated, fiber.Map{
		"message": "Media created successfully",
		"media":   m,
	})
}

// PUT /media/:id
func (h *MediaHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	var upd repository.UpdateInput
	if err := c.BodyParser(&upd); err != nil {
		return respond.Error(c, fiber.StatusBadRequest, "Invalid request body")
	}
	m, err := h.svc.Update(c.Context(), id, upd)
	if errors.Is(err, apperr.ErrNotFound) {
		return respond.Error(c, fiber.StatusNotFound, "Media not found")
	}
	if err != nil {
		h.log.Errorf("media update %s: %v", id, err)
		return respond.Error(c, fiber.StatusInternalServerError, "Failed to update media")
	}
	return respond.JSON(c, fiber.StatusOK, fiber.Map{
		"message": "Media updated successfully",
		"media":   m,
	})
}

// DELETE /media/:id
func (h *MediaHandler) Delete(c *fiber.Ctx) error {
	id := c.Params("id")
	err := h.svc.Delete(c.Context(), id)
	if errors.Is(err, apperr.ErrNotFound) {
		return respond.Error(c, fiber.StatusNotFound, "Media not found")
	}
	if err != nil {
		h.log.Errorf("media delete %s: %v", id, err)
		return respond.Error(c, fiber.StatusInternalServerError, "Failed to delete media")
	}
	return respond.JSON(c, fiber.StatusOK, fiber.Map{"message": "Media deleted successfully"})
}

// POST /media/:id/download
func (h *MediaHandler) RecordDownload(c *fiber.Ctx) error {
	return h.increment(c, "downloads")
}

// POST /media/:id/like
func (h *MediaHandler) RecordLike(c *fiber.Ctx) error {
	return h.increment(c, "likes")
}

func (h *MediaHandler) increment(c *fiber.Ctx, field string) error {
	id := c.Params("id")
	n, err := h.svc.Increment(c.Context(), id, field)
	if errors.Is(err, apperr.ErrNotFound) {
		return respond.Error(c, fiber.StatusNotFound, "Media not found")
	}
	if err != nil {
		h.log.Errorf("media %s %s: %v", field, id, err)
		return respond.Error(c, fiber.StatusInternalServerError, "Failed to update counter")
	}
	return respond.JSON(c, fiber.StatusOK, fiber.Map{
		"message": "Counter updated",
		field:     n,
	})
}

func (h *MediaHandler) overridesFromForm(c *fiber.Ctx) media.Overrides {
	return media.Overrides{
		Title:       c.FormValue("title"),
		Category:    c.FormValue("category"),
		Alt:         c.FormValue("alt"),
		Description: c.FormValue("description"),
		Thumbnail:   c.FormValue("thumbnail"),
		Dimensions:  c.FormValue("dimensions"),
		UploadedBy:  c.FormValue("uploadedBy"),
		Tags:        media.ParseTags(c.FormValue("tags")),
	}
}

func readUpload(fh *multipart.FileHeader) (services.UploadFile, error) {
	f, err := fh.Open()
	if err != nil {
		return services.UploadFile{}, err
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return services.UploadFile{}, err
	}
	return services.UploadFile{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}
