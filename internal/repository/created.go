package repository

import "encoding/json"

type recordID struct {
	ID    string `json:"_id"`
	AltID string `json:"id"`
}

func (r recordID) value() string {
	if r.ID != "" {
		return r.ID
	}
	return r.AltID
}

// createdID finds the id of a newly created record in a create response.
// The backend answers with the record itself or with it wrapped one level
// deep ({"ticket": {...}}); anything else yields "".
func createdID(raw json.RawMessage) string {
	var top recordID
	if err := json.Unmarshal(raw, &top); err == nil && top.value() != "" {
		return top.value()
	}
	var wrapped map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapped); err != nil {
		return ""
	}
	for _, inner := range wrapped {
		var rec recordID
		if err := json.Unmarshal(inner, &rec); err == nil && rec.value() != "" {
			return rec.value()
		}
	}
	return ""
}
