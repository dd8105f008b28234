package model

import "time"

// Equipment is a stock item tracked by quantity. Image is a reference
// (filename or URL), not the image data itself.
type Equipment struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
