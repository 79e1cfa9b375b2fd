package repository

import (
	"context"
	"errors"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sunvoyage/admin-backend/internal/apperr"
	"github.com/sunvoyage/admin-backend/internal/models"
)

// ListFilter narrows a media listing. Empty or "all" means unfiltered.
type ListFilter struct {
	Type     string
	Category string
	Search   string
	IsActive *bool
}

// UpdateInput is a partial media patch; nil fields are left untouched.
type UpdateInput struct {
	Name        *string          `json:"name"`
	Title       *string          `json:"title"`
	Category    *models.Category `json:"category"`
	Alt         *string          `json:"alt"`
	Description *string          `json:"description"`
	Thumbnail   *string          `json:"thumbnail"`
	Tags        []string         `json:"tags"`
	UploadedBy  *string          `json:"uploadedBy"`
	IsActive    *bool            `json:"isActive"`
}

type MediaRepo struct {
	col *mongo.Collection
}

func NewMediaRepo(col *mongo.Collection) *MediaRepo {
	return &MediaRepo{col: col}
}

func (r *MediaRepo) List(ctx context.Context, f ListFilter) ([]models.MediaAsset, error) {
	query := bson.M{}
	if f.Type != "" && f.Type != "all" {
		query["type"] = f.Type
	}
	if f.Category != "" && f.Category != "all" {
		query["category"] = f.Category
	}
	if f.IsActive != nil {
		query["isActive"] = *f.IsActive
	}
	if f.Search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(f.Search), Options: "i"}
		query["$or"] = bson.A{
			bson.M{"name": pattern},
			bson.M{"title": pattern},
			bson.M{"description": pattern},
			bson.M{"tags": pattern},
		}
	}

	opts := options.Find().SetSort(bson.D{{Key: "uploadDate", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	out := []models.MediaAsset{}
	if err := cur.All(ctx, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *MediaRepo) GetByID(ctx context.Context, id string) (*models.MediaAsset, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	var m models.MediaAsset
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MediaRepo) Insert(ctx context.Context, m *models.MediaAsset) error {
	if m.UploadDate.IsZero() {
		m.UploadDate = time.Now().UTC()
	}
	res, err := r.col.InsertOne(ctx, m)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid
	}
	return nil
}

func (r *MediaRepo) Update(ctx context.Context, id string, upd UpdateInput) (*models.MediaAsset, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}

	set := bson.M{"lastModified": time.Now().UTC()}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Title != nil {
		set["title"] = *upd.Title
	}
	if upd.Category != nil {
		set["category"] = *upd.Category
	}
	if upd.Alt != nil {
		set["alt"] = *upd.Alt
	}
	if upd.Description != nil {
		set["description"] = *upd.Description
	}
	if upd.Thumbnail != nil {
		set["thumbnail"] = *upd.Thumbnail
	}
	if upd.Tags != nil {
		set["tags"] = upd.Tags
	}
	if upd.UploadedBy != nil {
		set["uploadedBy"] = *upd.UploadedBy
	}
	if upd.IsActive != nil {
		set["isActive"] = *upd.IsActive
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.MediaAsset
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$set": set}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// IncrementCounter bumps one engagement counter atomically and returns
// the new value.
func (r *MediaRepo) IncrementCounter(ctx context.Context, id, field string) (int64, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return 0, apperr.ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var m models.MediaAsset
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid}, bson.M{"$inc": bson.M{field: 1}}, opts).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return 0, apperr.ErrNotFound
	}
	if err != nil {
		return 0, err
	}
	switch field {
	case "views":
		return m.Views, nil
	case "downloads":
		return m.Downloads, nil
	case "likes":
		return m.Likes, nil
	}
	return 0, nil
}

// Delete removes the record and returns it, so the caller can schedule
// remote cleanup from the stored URL.
func (r *MediaRepo) Delete(ctx context.Context, id string) (*models.MediaAsset, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperr.ErrNotFound
	}
	var m models.MediaAsset
	err = r.col.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, apperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}
