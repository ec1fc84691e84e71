package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a shop customer. Total spent is never stored.
type Client struct {
	ID    string    `bson:"_id" json:"id"`
	Name  string    `bson:"name" json:"name"`
	Email string    `bson:"email" json:"email"`
	Phone string    `bson:"phone" json:"phone"`
	Since time.Time `bson:"since" json:"since"`
}

// ClientSummary is a client with its lifetime spend derived from sales.
type ClientSummary struct {
	Client
	TotalSpent decimal.Decimal `json:"total_spent"`
}
