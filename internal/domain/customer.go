package domain

import "time"

type Customer struct {
	ID            string    `json:"customerId"`
	Name          string    `json:"customerName"`
	ContactPerson string    `json:"contactPerson"`
	ContactEmail  string    `json:"contactEmail"`
	ContactPhone  string    `json:"contactPhone"`
	Address       string    `json:"address"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func (c *Customer) Validate() error {
	if c.Name == "" {
		return Invalid("customerName is required")
	}
	return nil
}

// CustomerPatch carries a partial update; nil fields keep their stored value.
type CustomerPatch struct {
	Name          *string `json:"customerName"`
	ContactPerson *string `json:"contactPerson"`
	ContactEmail  *string `json:"contactEmail"`
	ContactPhone  *string `json:"contactPhone"`
	Address       *string `json:"address"`
	Active        *bool   `json:"active"`
}
