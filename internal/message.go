package internal

import "time"

// Message roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Message represents one chat message in a session
type Message struct {
	ID        string           `json:"id"`
	Type      string           `json:"type,omitempty"`
	Role      string           `json:"role"`
	Content   string           `json:"content"`
	Timestamp time.Time        `json:"timestamp"`
	Metadata  *MessageMetadata `json:"metadata,omitempty"`
}

// MessageMetadata is the closed set of metadata fields that survive
// persistence. Anything else on an incoming message is dropped by the
// codec before the message is measured or stored.
type MessageMetadata struct {
	DeviceID   string    `json:"deviceId,omitempty"`
	AgentID    string    `json:"agentId,omitempty"`
	Offline    bool      `json:"offline,omitempty"`
	Files      []FileRef `json:"files,omitempty"`
	ResponseID string    `json:"responseId,omitempty"`
	AppID      string    `json:"appId,omitempty"`
}

// FileRef references a file attached to a message
type FileRef struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
	Size int64  `json:"size,omitempty"`
	Type string `json:"type,omitempty"`
}

// IsZero reports whether the metadata carries no essential fields
func (m *MessageMetadata) IsZero() bool {
	if m == nil {
		return true
	}
	return m.DeviceID == "" && m.AgentID == "" && !m.Offline &&
		len(m.Files) == 0 && m.ResponseID == "" && m.AppID == ""
}

// SessionDump is a full session as handed to the per-session exporters
type SessionDump struct {
	ID       string    `json:"id" yaml:"id"`
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	AgentID  string    `json:"agentId,omitempty" yaml:"agent_id,omitempty"`
	Messages []Message `json:"messages" yaml:"messages"`
}
