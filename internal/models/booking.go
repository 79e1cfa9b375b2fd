package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
	BookingCompleted BookingStatus = "completed"
)

type PaymentStatus string

const (
	PaymentUnpaid   PaymentStatus = "unpaid"
	PaymentPartial  PaymentStatus = "partial"
	PaymentPaid     PaymentStatus = "paid"
	PaymentRefunded PaymentStatus = "refunded"
)

// Booking is a customer's reservation of a tour package.
type Booking struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference     string             `bson:"reference" json:"reference"`
	PackageID     primitive.ObjectID `bson:"packageId" json:"packageId"`
	CustomerID    primitive.ObjectID `bson:"customerId" json:"customerId"`
	CustomerName  string             `bson:"customerName" json:"customerName"`
	CustomerEmail string             `bson:"customerEmail" json:"customerEmail"`
	Travelers     int                `bson:"travelers" json:"travelers"`
	TravelDate    time.Time          `bson:"travelDate" json:"travelDate"`
	TotalAmount   float64            `bson:"totalAmount" json:"totalAmount"`
	Status        BookingStatus      `bson:"status" json:"status"`
	Payment       PaymentStatus      `bson:"payment" json:"payment"`
	Notes         string             `bson:"notes" json:"notes"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time          `bson:"updatedAt" json:"updatedAt"`
}
