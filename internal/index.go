package internal

import (
	"encoding/json"
	"sort"
	"strings"
	"time"
)

// ChatIndexItem is the per-session summary used for listing and search
// without loading full message bodies. It is derived entirely from the raw
// session entry and can always be recomputed from it.
type ChatIndexItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Preview      string `json:"preview"`
	Timestamp    int64  `json:"timestamp"` // unix millis of the last message
	AgentID      string `json:"agentId,omitempty"`
	MessageCount int    `json:"messageCount"`
}

// indexEntry derives a session's index entry from its message list: title
// from the first user message, preview from the last message, timestamp from
// the last message's time.
func indexEntry(chatID string, messages []Message) ChatIndexItem {
	entry := ChatIndexItem{
		ID:           chatID,
		Title:        TitlePlaceholder,
		Preview:      PreviewPlaceholder,
		MessageCount: len(messages),
	}

	for _, msg := range messages {
		if msg.Role == RoleUser {
			entry.Title = FormatTitleText(msg.Content)
			break
		}
	}

	if len(messages) > 0 {
		last := messages[len(messages)-1]
		entry.Preview = FormatPreviewText(last.Content)
		if last.Timestamp.IsZero() {
			entry.Timestamp = time.Now().UnixMilli()
		} else {
			entry.Timestamp = last.Timestamp.UnixMilli()
		}

		if first := messages[0]; !first.Metadata.IsZero() {
			entry.AgentID = first.Metadata.AgentID
		}
	}

	return entry
}

// loadIndex reads the index map; the second return reports whether an index
// exists at all. A corrupt index counts as absent.
func (s *Store) loadIndex() (map[string]ChatIndexItem, bool) {
	raw, ok := s.provider.Get(s.cfg.indexKey())
	if !ok {
		return nil, false
	}

	var index map[string]ChatIndexItem
	if err := json.Unmarshal([]byte(raw), &index); err != nil {
		LogError("Failed to parse chat index: %v", err)
		return nil, false
	}
	if index == nil {
		index = make(map[string]ChatIndexItem)
	}
	return index, true
}

func (s *Store) saveIndex(index map[string]ChatIndexItem) error {
	data, err := json.Marshal(index)
	if err != nil {
		return &ParseError{Key: s.cfg.indexKey(), Err: err}
	}
	if err := s.provider.Set(s.cfg.indexKey(), string(data)); err != nil {
		return &StorageError{Key: s.cfg.indexKey(), Op: "set", Err: err}
	}
	return nil
}

// updateIndex recomputes one session's index entry after a save. Failures
// are logged, never fatal: the raw entry already landed and a rebuild can
// recover the index.
func (s *Store) updateIndex(chatID string, messages []Message) {
	index, ok := s.loadIndex()
	if !ok {
		index = make(map[string]ChatIndexItem)
	}

	index[chatID] = indexEntry(chatID, messages)
	if err := s.saveIndex(index); err != nil {
		LogWarn("Failed to update chat index for %s: %v", chatID, err)
	}
}

// ListSessions returns every index entry ordered by descending timestamp.
// A missing index triggers one rebuild from the raw entries; if the rebuild
// produces nothing, no sessions exist.
func (s *Store) ListSessions() []ChatIndexItem {
	index, ok := s.loadIndex()
	if !ok {
		LogInfo("No chat index found, rebuilding...")
		s.RebuildIndex()
		index, ok = s.loadIndex()
		if !ok {
			return nil
		}
	}

	sessions := make([]ChatIndexItem, 0, len(index))
	for _, entry := range index {
		sessions = append(sessions, entry)
	}
	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].Timestamp != sessions[j].Timestamp {
			return sessions[i].Timestamp > sessions[j].Timestamp
		}
		return sessions[i].ID < sessions[j].ID
	})
	return sessions
}

// SearchSessions filters ListSessions by a case-insensitive substring match
// against title and preview. An empty query returns the unfiltered list.
func (s *Store) SearchSessions(query string) []ChatIndexItem {
	sessions := s.ListSessions()
	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return sessions
	}

	matched := make([]ChatIndexItem, 0, len(sessions))
	for _, session := range sessions {
		if strings.Contains(strings.ToLower(session.Title), query) ||
			strings.Contains(strings.ToLower(session.Preview), query) {
			matched = append(matched, session)
		}
	}
	return matched
}

// RebuildIndex reconstructs the index wholesale by scanning every raw
// session entry in the substrate. Entries that fail to deserialize are
// skipped and logged. The previous index, if any, is replaced, not merged.
func (s *Store) RebuildIndex() {
	LogInfo("Rebuilding chat index...")
	newIndex := make(map[string]ChatIndexItem)
	prefix := s.cfg.messagesKeyPrefix()

	for _, key := range Keys(s.provider) {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		chatID := strings.TrimPrefix(key, prefix)

		raw, ok := s.provider.Get(key)
		if !ok {
			continue
		}

		var messages []Message
		if err := json.Unmarshal([]byte(raw), &messages); err != nil {
			LogError("Failed to parse messages for chat ID %s during rebuild: %v", chatID, err)
			continue
		}
		if len(messages) == 0 {
			continue
		}

		newIndex[chatID] = indexEntry(chatID, messages)
	}

	if err := s.saveIndex(newIndex); err != nil {
		LogError("Failed to write rebuilt index: %v", err)
		return
	}
	LogInfo("Chat index rebuilt with %d session(s)", len(newIndex))
}
