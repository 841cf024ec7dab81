package dto

import "github.com/govhub/helpdesk-portal/internal/domain"

// MessageSummary is one entry of the recent-messages poll.
type MessageSummary struct {
	ID                  string `json:"id"`
	SenderName          string `json:"sender_name"`
	SenderDepartment    string `json:"sender_department"`
	RecipientDepartment string `json:"recipient_department"`
	Content             string `json:"content"`
	Timestamp           string `json:"timestamp,omitempty"`
}

// MessageSummaries converts messages, resolving department ids to names
// where known.
func MessageSummaries(msgs []domain.Message, names map[string]string) []MessageSummary {
	out := make([]MessageSummary, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, MessageSummary{
			ID:                  m.ID,
			SenderName:          m.SenderName,
			SenderDepartment:    nameOr(names, m.SenderDepartment),
			RecipientDepartment: nameOr(names, m.RecipientDepartment),
			Content:             m.Content,
			Timestamp:           m.Timestamp,
		})
	}
	return out
}

func nameOr(names map[string]string, id string) string {
	if n, ok := names[id]; ok {
		return n
	}
	return id
}
