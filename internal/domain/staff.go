package domain

import (
	"encoding/json"
	"strings"
)

// Staff is a portal operator as returned by the backend.
type Staff struct {
	ID           string `json:"_id,omitempty"`
	FirstName    string `json:"firstName"`
	LastName     string `json:"lastName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
	Role         Role   `json:"role,omitempty"`
	DepartmentID string `json:"departmentID"`
	DateOfBirth  string `json:"dateOfBirth"`
	Gender       string `json:"gender"`
	Address      string `json:"address"`
	HireDate     string `json:"hireDate"`
	// Password is write-only; the backend never returns it.
	Password string `json:"password,omitempty"`
}

// FullName joins first and last name.
func (s Staff) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// UnmarshalJSON accepts both "_id" (records) and "id" (login response).
func (s *Staff) UnmarshalJSON(data []byte) error {
	type plain Staff
	var aux struct {
		plain
		AltID string `json:"id"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*s = Staff(aux.plain)
	if s.ID == "" {
		s.ID = aux.AltID
	}
	s.Password = ""
	return nil
}
