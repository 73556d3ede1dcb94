package models

// Conversation roles as understood by the model providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one role-tagged message in a conversation. Turns are never
// mutated after creation; sessions only append them in order.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ModelRequest is the per-call payload handed to a model provider.
// It is constructed fresh for every turn and discarded afterwards.
type ModelRequest struct {
	SystemPrompt string
	Messages     []Turn
	RequestID    string
}

// ModelReply is the raw reply returned by a model provider.
type ModelReply struct {
	Content string
	Model   string
}
