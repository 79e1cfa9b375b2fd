package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TourPackage is a bookable tour product.
type TourPackage struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title        string             `bson:"title" json:"title"`
	Destination  string             `bson:"destination" json:"destination"`
	Category     Category           `bson:"category" json:"category"`
	Description  string             `bson:"description" json:"description"`
	DurationDays int                `bson:"durationDays" json:"durationDays"`
	Price        float64            `bson:"price" json:"price"`
	ImageURLs    []string           `bson:"imageUrls" json:"imageUrls"`
	IsFeatured   bool               `bson:"isFeatured" json:"isFeatured"`
	IsActive     bool               `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}
