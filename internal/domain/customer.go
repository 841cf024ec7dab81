package domain

import "strings"

// Customer is the member of the public a ticket was raised for.
type Customer struct {
	ID           string `json:"_id,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
	Address      string `json:"address"`
	DateOfBirth  string `json:"dateOfBirth"`
	NIC          string `json:"nic,omitempty"`
}

func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
