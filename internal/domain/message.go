package domain

import (
	"bytes"
	"encoding/json"
)

// Message is an inter-department note shown in the message center.
type Message struct {
	ID                  string `json:"_id,omitempty"`
	SenderID            string `json:"senderId"`
	SenderName          string `json:"senderName"`
	SenderDepartment    string `json:"senderDepartment"`
	RecipientDepartment string `json:"recipientDepartment"`
	Content             string `json:"content"`
	Timestamp           string `json:"timestamp,omitempty"`
}

// Announcement is a department-wide notice posted by its head.
type Announcement struct {
	ID           string `json:"_id,omitempty"`
	DepartmentID string `json:"departmentID"`
	Content      string `json:"content"`
	PostedBy     Poster `json:"postedBy"`
	CreatedAt    string `json:"createdAt,omitempty"`
}

// Poster is the author of an announcement. The backend returns either the
// bare staff id or a populated {_id, name} object.
type Poster struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (p *Poster) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*p = Poster{}
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &p.ID)
	}
	type plain Poster
	return json.Unmarshal(data, (*plain)(p))
}

// Display returns the best available author label.
func (p Poster) Display() string {
	if p.Name != "" {
		return p.Name
	}
	return p.ID
}
