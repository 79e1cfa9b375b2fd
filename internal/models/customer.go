package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Tier is a customer loyalty band derived from lifetime spend.
type Tier string

const (
	TierBronze   Tier = "Bronze"
	TierSilver   Tier = "Silver"
	TierGold     Tier = "Gold"
	TierPlatinum Tier = "Platinum"
)

// TierForSpend buckets lifetime spend into a loyalty tier.
func TierForSpend(spend float64) Tier {
	switch {
	case spend >= 10000:
		return TierPlatinum
	case spend >= 5000:
		return TierGold
	case spend >= 1000:
		return TierSilver
	default:
		return TierBronze
	}
}

// Customer is a booking-platform customer profile.
type Customer struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Phone      string             `bson:"phone" json:"phone"`
	Country    string             `bson:"country" json:"country"`
	TotalSpend float64            `bson:"totalSpend" json:"totalSpend"`
	Tier       Tier               `bson:"tier" json:"tier"`
	Bookings   int                `bson:"bookings" json:"bookings"`
	IsActive   bool               `bson:"isActive" json:"isActive"`
	CreatedAt  time.Time          `bson:"createdAt" json:"createdAt"`
}

// RefreshTier recomputes the tier from the current total spend.
func (c *Customer) RefreshTier() {
	c.Tier = TierForSpend(c.TotalSpend)
}
