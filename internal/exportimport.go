package internal

import (
	"encoding/json"
	"strings"
)

// ExportAll serializes every session known to the ledger into one JSON
// payload mapping session id to its message list. Sessions whose raw entry
// has gone missing are skipped silently; export reflects what is actually
// stored. The payload round-trips through Import.
func (s *Store) ExportAll() (string, error) {
	meta := s.loadMeta()
	exportData := make(map[string][]Message)

	for _, chatID := range meta.ChatIDs {
		messages := s.LoadMessages(chatID)
		if messages != nil {
			exportData[chatID] = messages
		}
	}

	data, err := json.Marshal(exportData)
	if err != nil {
		return "", &ExportError{Format: "json", Err: err}
	}
	return string(data), nil
}

// Import replays an ExportAll payload through the normal save path, so
// index and ledger are rebuilt incrementally with all of SaveMessages'
// invariants. Individual session failures are logged and skipped; the
// returned count is the number of sessions actually imported.
func (s *Store) Import(payload string) (int, error) {
	var importData map[string][]Message
	if err := json.Unmarshal([]byte(payload), &importData); err != nil {
		return 0, &ExportError{Format: "json", Err: err}
	}

	imported := 0
	for chatID, messages := range importData {
		if err := s.SaveMessages(chatID, messages); err != nil {
			LogWarn("Failed to import chat %s: %v", chatID, err)
			continue
		}
		imported++
	}

	LogInfo("Imported %d chat session(s)", imported)
	return imported, nil
}

// DebugState is a raw snapshot of the substrate for troubleshooting
type DebugState struct {
	Keys         []string     `json:"keys"`
	ChatKeyCount int          `json:"chatKeyCount"`
	HasIndex     bool         `json:"hasIndex"`
	Meta         *StorageMeta `json:"meta"`
}

// Debug reports the substrate's key census, index presence, and the current
// ledger without modifying anything
func (s *Store) Debug() DebugState {
	keys := Keys(s.provider)

	chatKeys := 0
	for _, key := range keys {
		if strings.HasPrefix(key, s.cfg.messagesKeyPrefix()) {
			chatKeys++
		}
	}

	_, hasIndex := s.provider.Get(s.cfg.indexKey())

	return DebugState{
		Keys:         keys,
		ChatKeyCount: chatKeys,
		HasIndex:     hasIndex,
		Meta:         s.loadMeta(),
	}
}
