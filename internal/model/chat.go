package model

// ChatRole identifies who wrote a chat message.
type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleChef ChatRole = "chef"
)

// ChatMessage is a single entry of the in-memory chat transcript.
type ChatMessage struct {
	Role    ChatRole `json:"role"`
	Content string   `json:"content"`
}
