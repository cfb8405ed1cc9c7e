package models

import "fmt"

// Phase is the screen-level state of the application.
type Phase int

const (
	PhaseUpload Phase = iota
	PhaseParsing
	PhaseChatting
	PhaseError
)

func (p Phase) String() string {
	switch p {
	case PhaseUpload:
		return "upload"
	case PhaseParsing:
		return "parsing"
	case PhaseChatting:
		return "chatting"
	case PhaseError:
		return "error"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "upload":
		*p = PhaseUpload
	case "parsing":
		*p = PhaseParsing
	case "chatting":
		*p = PhaseChatting
	case "error":
		*p = PhaseError
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}

// Snapshot is a read-only copy of the application state used by every display surface.
type Snapshot struct {
	State         Phase         `json:"state"`
	DocumentName  string        `json:"document_name,omitempty"`
	DocumentChars int           `json:"document_chars"`
	ErrorMessage  string        `json:"error,omitempty"`
	IsAnswering   bool          `json:"is_answering"`
	Messages      []ChatMessage `json:"messages"`
}

// LastModelMessage returns the most recent model message, if any.
func (s Snapshot) LastModelMessage() (ChatMessage, bool) {
	for i := len(s.Messages) - 1; i >= 0; i-- {
		if s.Messages[i].Role == RoleModel {
			return s.Messages[i], true
		}
	}
	return ChatMessage{}, false
}
