package domain

// Role identifies the author of a chat message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// ChatMessage is the provider-agnostic chat message shape used by the
// handlers, the session store and the LLM integrations. Order within a
// slice is conversation order.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Turn is one user/assistant exchange as resent by persona clients.
// Either side may be empty.
type Turn struct {
	User      string `json:"user,omitempty"`
	Assistant string `json:"assistant,omitempty"`
}

// ProviderConfig is the per-call view of one LLM provider's settings.
// It is resolved on every request and never persisted.
type ProviderConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}
