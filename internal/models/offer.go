package models

import (
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

var (
	ErrBadDiscountType  = errors.New("unknown discount type")
	ErrBadDiscountValue = errors.New("discount value out of range")
	ErrBadOfferWindow   = errors.New("offer window ends before it starts")
)

// Offer is a promotional discount applied to package bookings.
type Offer struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title         string             `bson:"title" json:"title"`
	Description   string             `bson:"description" json:"description"`
	DiscountType  DiscountType       `bson:"discountType" json:"discountType"`
	DiscountValue float64            `bson:"discountValue" json:"discountValue"`
	ValidFrom     time.Time          `bson:"validFrom" json:"validFrom"`
	ValidUntil    time.Time          `bson:"validUntil" json:"validUntil"`
	IsActive      bool               `bson:"isActive" json:"isActive"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}

// ValidateDiscount checks the discount shape: percentages must sit in
// (0, 100], fixed amounts must be positive, and the validity window must
// be ordered.
func (o *Offer) ValidateDiscount() error {
	switch o.DiscountType {
	case DiscountPercentage:
		if o.DiscountValue <= 0 || o.DiscountValue > 100 {
			return ErrBadDiscountValue
		}
	case DiscountFixed:
		if o.DiscountValue <= 0 {
			return ErrBadDiscountValue
		}
	default:
		return ErrBadDiscountType
	}
	if !o.ValidUntil.IsZero() && o.ValidUntil.Before(o.ValidFrom) {
		return ErrBadOfferWindow
	}
	return nil
}

// CurrentAt reports whether the offer is live at the given instant.
func (o *Offer) CurrentAt(now time.Time) bool {
	if !o.IsActive {
		return false
	}
	if now.Before(o.ValidFrom) {
		return false
	}
	if !o.ValidUntil.IsZero() && now.After(o.ValidUntil) {
		return false
	}
	return true
}
