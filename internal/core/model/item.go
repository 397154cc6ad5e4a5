package model

import "time"

// Item is one inventory item owned by a single user. WodisNumber is the
// external inventory code; it is optional, as are the description and the
// purchase date.
type Item struct {
	UUID         string    `json:"uuid"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Description  string    `json:"description,omitempty"`
	WodisNumber  string    `json:"wodis_number,omitempty"`
	PurchaseDate *Date     `json:"purchase_date,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
