package handlers

import (
	"time"

	"github.com/21R01A7263/docGPT/models"
	"github.com/21R01A7263/docGPT/pkg/markdown"
)

// MessageView is a transcript entry with its rendered blocks. User messages are
// shown verbatim and carry no blocks.
type MessageView struct {
	Role    models.Role      `json:"role"`
	Content string           `json:"content"`
	Blocks  []markdown.Block `json:"blocks,omitempty"`
}

type SessionView struct {
	State         string        `json:"state"`
	DocumentName  string        `json:"document_name,omitempty"`
	DocumentChars int           `json:"document_chars"`
	Error         string        `json:"error,omitempty"`
	IsAnswering   bool          `json:"is_answering"`
	Messages      []MessageView `json:"messages"`
}

type EventView struct {
	ID        string                  `json:"id"`
	Type      models.SessionEventType `json:"type"`
	Session   SessionView             `json:"session"`
	Timestamp time.Time               `json:"timestamp"`
}

// NewSessionView renders every model message of snap.
func NewSessionView(snap models.Snapshot) SessionView {
	messages := make([]MessageView, len(snap.Messages))
	for i, m := range snap.Messages {
		messages[i] = MessageView{Role: m.Role, Content: m.Content}
		if m.Role == models.RoleModel {
			messages[i].Blocks = markdown.Render(m.Content)
		}
	}
	return SessionView{
		State:         snap.State.String(),
		DocumentName:  snap.DocumentName,
		DocumentChars: snap.DocumentChars,
		Error:         snap.ErrorMessage,
		IsAnswering:   snap.IsAnswering,
		Messages:      messages,
	}
}

func NewEventView(event models.SessionEvent) EventView {
	return EventView{
		ID:        event.ID,
		Type:      event.Type,
		Session:   NewSessionView(event.Snapshot),
		Timestamp: event.Timestamp,
	}
}
