package session

import "github.com/21R01A7263/docGPT/models"

const unknownParseError = "An unknown error occurred during parsing."

// Transcript is the append-only chat history. The zero value is empty and ready to use.
type Transcript struct {
	messages []models.ChatMessage
}

func (t *Transcript) Append(msg models.ChatMessage) {
	t.messages = append(t.messages, msg)
}

func (t *Transcript) Len() int {
	return len(t.messages)
}

// Messages returns a copy so callers cannot edit history.
func (t *Transcript) Messages() []models.ChatMessage {
	out := make([]models.ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

func UserMessage(question string) models.ChatMessage {
	return models.ChatMessage{Role: models.RoleUser, Content: question}
}

func ModelMessage(content string) models.ChatMessage {
	return models.ChatMessage{Role: models.RoleModel, Content: content}
}

func LoadedMessage(documentName string) models.ChatMessage {
	return ModelMessage(`Document "` + documentName + `" loaded successfully.`)
}

func AnswerErrorMessage(reason string) models.ChatMessage {
	return ModelMessage("Sorry, I encountered an error: " + reason)
}

// ParseErrorMessage returns the user-facing text for an extraction failure.
func ParseErrorMessage(err error) string {
	if err == nil || err.Error() == "" {
		return unknownParseError
	}
	return err.Error()
}
