package models

type Role string

const (
	RoleUser  Role = "user"
	RoleModel Role = "model"
)

// ChatMessage is one transcript entry. Messages are never edited after creation.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type AskQuestionRequest struct {
	Question string `json:"question" form:"question"`
}
