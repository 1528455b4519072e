package internal

import (
	"encoding/json"
	"time"
)

// Store is the chat-history storage engine over an injected substrate.
// The raw session entries it writes are the source of truth; the index and
// the metadata ledger are rebuildable caches kept in sync by the Store and
// repaired by RebuildIndex/Init when they drift.
//
// A Store assumes a single logical writer. Concurrent writers (multiple
// processes on the same substrate) can lose ledger updates; the engine does
// not defend against that.
type Store struct {
	provider Provider
	cfg      Config
	now      func() time.Time
}

// NewStore creates a storage engine over the given substrate
func NewStore(provider Provider, cfg Config) *Store {
	return &Store{
		provider: provider,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Config returns the engine configuration
func (s *Store) Config() Config {
	return s.cfg
}

// SaveMessages persists the full message list for a session, replacing any
// previous entry. The list is compressed first, then the raw entry is
// written before index and ledger so that a crash mid-save leaves the raw
// entry authoritative.
//
// An empty list is a no-op returning ErrEmptySession. A substrate rejection
// (ErrQuotaExceeded) fails the save without retrying; running
// EmergencyCleanup afterwards is the caller's explicit decision.
func (s *Store) SaveMessages(chatID string, messages []Message) error {
	if len(messages) == 0 {
		LogWarn("No messages to save for chat ID: %s", chatID)
		return ErrEmptySession
	}

	meta := s.loadMeta()
	compressed := CompressMessages(messages, s.cfg.MaxMessagesPerChat)

	data, err := json.Marshal(compressed)
	if err != nil {
		LogError("Failed to serialize messages for chat ID %s: %v", chatID, err)
		return &ParseError{Key: s.cfg.messagesKey(chatID), Err: err}
	}

	size := EstimateSize(string(data))
	oldSize := meta.ChatSizes[chatID]

	// Raw entry first. If this write fails nothing else has moved, and if a
	// later write fails the raw entry still wins over stale index/ledger.
	if err := s.provider.Set(s.cfg.messagesKey(chatID), string(data)); err != nil {
		LogError("Failed to save messages for chat ID %s: %v", chatID, err)
		return err
	}

	meta.TotalSize += size - oldSize
	meta.ChatSizes[chatID] = size
	meta.ChatLastAccessed[chatID] = s.now().UnixMilli()
	if !meta.hasChat(chatID) {
		meta.ChatIDs = append(meta.ChatIDs, chatID)
	}

	s.updateIndex(chatID, compressed)
	if err := s.saveMeta(meta); err != nil {
		LogWarn("Failed to persist ledger after save of %s: %v", chatID, err)
	}

	LogDebug("Saved %d messages for chat ID: %s", len(compressed), chatID)
	return nil
}

// LoadMessages returns the full message list for a session, or nil when the
// session is absent. Absence is a normal outcome, not an error; so is a
// corrupt entry, which is logged and reported as absent. A successful load
// counts as access for age-based eviction.
func (s *Store) LoadMessages(chatID string) []Message {
	raw, ok := s.provider.Get(s.cfg.messagesKey(chatID))
	if !ok {
		LogDebug("No messages found for chat ID: %s", chatID)
		return nil
	}

	var messages []Message
	if err := json.Unmarshal([]byte(raw), &messages); err != nil {
		LogError("Failed to parse messages for chat ID %s: %v", chatID, err)
		return nil
	}

	meta := s.loadMeta()
	meta.ChatLastAccessed[chatID] = s.now().UnixMilli()
	if err := s.saveMeta(meta); err != nil {
		LogWarn("Failed to record access time for %s: %v", chatID, err)
	}

	return messages
}

// DeleteSession removes a session's raw entry, its ledger accounting, and
// its index entry. Deleting an absent session succeeds silently.
func (s *Store) DeleteSession(chatID string) {
	s.provider.Remove(s.cfg.messagesKey(chatID))

	meta := s.loadMeta()
	meta.removeChat(chatID)
	if err := s.saveMeta(meta); err != nil {
		LogWarn("Failed to persist ledger after delete of %s: %v", chatID, err)
	}

	if index, ok := s.loadIndex(); ok {
		delete(index, chatID)
		if err := s.saveIndex(index); err != nil {
			LogWarn("Failed to update index after delete of %s: %v", chatID, err)
		}
	}

	LogDebug("Deleted chat session: %s", chatID)
}

// DumpSession assembles a full session for the per-session exporters.
// Returns nil when the session is absent.
func (s *Store) DumpSession(chatID string) *SessionDump {
	messages := s.LoadMessages(chatID)
	if messages == nil {
		return nil
	}

	entry := indexEntry(chatID, messages)
	return &SessionDump{
		ID:       chatID,
		Title:    entry.Title,
		AgentID:  entry.AgentID,
		Messages: messages,
	}
}
