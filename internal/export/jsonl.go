package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/iksnae/chatvault/internal"
)

// JSONLExporter exports sessions in JSONL format (one message per line)
type JSONLExporter struct{}

// Export exports a session to JSONL format
func (e *JSONLExporter) Export(session *internal.SessionDump, w io.Writer) error {
	enc := json.NewEncoder(w)

	for _, msg := range session.Messages {
		obj := map[string]interface{}{
			"role":    msg.Role,
			"content": msg.Content,
		}

		if !msg.Timestamp.IsZero() {
			obj["timestamp"] = msg.Timestamp
		}
		if !msg.Metadata.IsZero() && msg.Metadata.AgentID != "" {
			obj["agentId"] = msg.Metadata.AgentID
		}

		// Encode to single line
		if err := enc.Encode(obj); err != nil {
			return fmt.Errorf("failed to encode message: %w", err)
		}
	}

	return nil
}

// Extension returns the file extension for this format
func (e *JSONLExporter) Extension() string {
	return "jsonl"
}
