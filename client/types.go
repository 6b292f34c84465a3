package client

// Wire types for the storefront API. Prices travel in integer minor
// currency units and are normalized to decimal at the catalog boundary.

type wireProduct struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Description  string        `json:"description"`
	Variants     []wireVariant `json:"variants"`
	Subscription string        `json:"subscription,omitempty"`
}

type wireVariant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// Profile is the authenticated user.
type Profile struct {
	User struct {
		ID    string `json:"id"`
		Name  string `json:"name"`
		Email string `json:"email"`
	} `json:"user"`
}

// Address is a saved shipping address.
type Address struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Street1  string `json:"street1"`
	Street2  string `json:"street2,omitempty"`
	City     string `json:"city"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country"`
	Zip      string `json:"zip"`
	Phone    string `json:"phone,omitempty"`
}

// AddressInput is the creation payload for POST /address.
type AddressInput struct {
	Name     string `json:"name" validate:"required"`
	Street1  string `json:"street1" validate:"required"`
	Street2  string `json:"street2,omitempty"`
	City     string `json:"city" validate:"required"`
	Province string `json:"province,omitempty"`
	Country  string `json:"country" validate:"required,len=2"`
	Zip      string `json:"zip" validate:"required"`
	Phone    string `json:"phone,omitempty"`
}

// Card is a saved payment method.
type Card struct {
	ID         string `json:"id"`
	Brand      string `json:"brand"`
	Last4      string `json:"last4"`
	Expiration struct {
		Year  int `json:"year"`
		Month int `json:"month"`
	} `json:"expiration"`
}

// OrderRequest creates one order covering every one-time line.
type OrderRequest struct {
	// Variants maps variant id to quantity.
	Variants  map[string]int `json:"variants"`
	CardID    string         `json:"cardID"`
	AddressID string         `json:"addressID"`
}

// Schedule is the recurring cadence of a subscription.
type Schedule struct {
	Type     string `json:"type"`
	Interval int    `json:"interval"`
}

// DefaultSchedule ships every two weeks.
func DefaultSchedule() Schedule {
	return Schedule{Type: "weekly", Interval: 2}
}

// SubscriptionRequest creates one subscription for one variant.
// Quantity is fixed at 1.
type SubscriptionRequest struct {
	ProductVariantID string   `json:"productVariantID"`
	Quantity         int      `json:"quantity"`
	CardID           string   `json:"cardID"`
	AddressID        string   `json:"addressID"`
	Schedule         Schedule `json:"schedule"`
}
