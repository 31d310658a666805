package api

import "time"

// Pass-through DTOs from the Voisa backend. The client stores no
// authoritative state; these mirror the latest fetched snapshot.

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type PhoneNumber struct {
	ID        string    `json:"id"`
	Number    string    `json:"number"`
	Country   string    `json:"country"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expiresAt"`
	Features  []string  `json:"features"`
	CreatedAt time.Time `json:"createdAt"`
}

type AvailableNumber struct {
	ID       string   `json:"id"`
	Number   string   `json:"number"`
	Country  string   `json:"country"`
	Type     string   `json:"type"`
	Price    float64  `json:"price"`
	Features []string `json:"features"`
}

// Credit transaction types as reported by the backend ledger.
const (
	TransactionPurchase = "PURCHASE"
	TransactionUsage    = "USAGE"
)

type CreditTransaction struct {
	ID              string    `json:"id"`
	Amount          float64   `json:"amount"`
	TransactionType string    `json:"transactionType"`
	Description     string    `json:"description"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Message and call directions.
const (
	DirectionOutbound = "OUTBOUND"
	DirectionInbound  = "INBOUND"
)

type SMSRecord struct {
	ID         string    `json:"id"`
	FromNumber string    `json:"fromNumber"`
	ToNumber   string    `json:"toNumber"`
	Message    string    `json:"message"`
	Status     string    `json:"status"`
	Direction  string    `json:"direction"`
	Cost       float64   `json:"cost"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type CallRecord struct {
	ID         string    `json:"id"`
	FromNumber string    `json:"fromNumber"`
	ToNumber   string    `json:"toNumber"`
	Status     string    `json:"status"`
	Direction  string    `json:"direction"`
	Duration   int       `json:"duration"`
	Cost       float64   `json:"cost"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

type Contact struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Number    string    `json:"number"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// AuthPayload is the login/register response body.
type AuthPayload struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
