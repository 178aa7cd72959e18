package store

import "time"

// Model is the rental tier. It decides both the billing unit length and
// the unit price.
type Model string

const (
	Hourly Model = "hourly"
	Daily  Model = "daily"
	Weekly Model = "weekly"
)

type Bike struct {
	ID        int    `json:"id"`
	Color     string `json:"color"`
	Available bool   `json:"available"`
}

type Client struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	CPF   string `json:"cpf"`
}

// Rental is one bike leg of a rental request. A request for N bikes
// produces N records sharing model, family flag, start and client.
// End is nil while the rental is open.
type Rental struct {
	Model    Model      `json:"model"`
	Family   bool       `json:"family"`
	Start    time.Time  `json:"start"`
	End      *time.Time `json:"end,omitempty"`
	BikeID   int        `json:"bike_id"`
	ClientID int        `json:"client_id"`
}
