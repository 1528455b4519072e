package internal

import "unicode/utf8"

// Placeholders used when a session has no usable title or preview source
const (
	TitlePlaceholder   = "Untitled"
	PreviewPlaceholder = "(no content)"
)

// Display truncation lengths for index entries
const (
	maxTitleLength   = 30
	maxPreviewLength = 50
)

// CompressMessages bounds a message list before persistence: the list is
// capped at maxCount entries keeping the most recent ones, and each message
// is reduced to its persisted shape with only the essential metadata subset.
// It never fails; it only removes data.
func CompressMessages(messages []Message, maxCount int) []Message {
	if maxCount > 0 && len(messages) > maxCount {
		messages = messages[len(messages)-maxCount:]
	}

	compressed := make([]Message, 0, len(messages))
	for _, msg := range messages {
		minimal := Message{
			ID:        msg.ID,
			Type:      msg.Type,
			Role:      msg.Role,
			Content:   msg.Content,
			Timestamp: msg.Timestamp,
		}

		if !msg.Metadata.IsZero() {
			minimal.Metadata = &MessageMetadata{
				DeviceID:   msg.Metadata.DeviceID,
				AgentID:    msg.Metadata.AgentID,
				Offline:    msg.Metadata.Offline,
				Files:      msg.Metadata.Files,
				ResponseID: msg.Metadata.ResponseID,
				AppID:      msg.Metadata.AppID,
			}
		}

		compressed = append(compressed, minimal)
	}

	return compressed
}

// EstimateSize estimates the stored size of a serialized value in bytes.
// It uses a fixed two bytes per character, which matches how browser
// localStorage accounts UTF-16 strings. An approximation, not a
// protocol-accurate measure.
func EstimateSize(s string) int64 {
	return int64(len(s)) * 2
}

// FormatTitleText normalizes message content into an index title
func FormatTitleText(text string) string {
	if text == "" {
		return TitlePlaceholder
	}
	return truncateText(text, maxTitleLength)
}

// FormatPreviewText normalizes message content into an index preview
func FormatPreviewText(text string) string {
	if text == "" {
		return PreviewPlaceholder
	}
	return truncateText(text, maxPreviewLength)
}

func truncateText(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}
	runes := []rune(text)
	return string(runes[:max]) + "..."
}
