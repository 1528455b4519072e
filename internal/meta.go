package internal

import "encoding/json"

// metaVersion is bumped when the persisted ledger layout changes
const metaVersion = 1

// StorageMeta is the engine's bookkeeping ledger: aggregate size, per-session
// sizes and access times, the known session ids, and the last cleanup time.
// It is a cache over the raw session entries, which stay authoritative; any
// drift is repaired by RebuildIndex/Init rather than treated as an error.
type StorageMeta struct {
	TotalSize        int64            `json:"totalSize"`
	ChatSizes        map[string]int64 `json:"chatSizes"`
	ChatIDs          []string         `json:"chatIds"`
	ChatLastAccessed map[string]int64 `json:"chatLastAccessed"` // unix millis
	Version          int              `json:"version"`
	LastCleanup      int64            `json:"lastCleanup"` // unix millis
}

func (s *Store) newStorageMeta() *StorageMeta {
	return &StorageMeta{
		ChatSizes:        make(map[string]int64),
		ChatLastAccessed: make(map[string]int64),
		Version:          metaVersion,
		LastCleanup:      s.now().UnixMilli(),
	}
}

// loadMeta reads the ledger from the substrate. A missing or corrupt ledger
// yields a fresh one; corruption is logged, never propagated.
func (s *Store) loadMeta() *StorageMeta {
	raw, ok := s.provider.Get(s.cfg.metaKey())
	if ok {
		var meta StorageMeta
		if err := json.Unmarshal([]byte(raw), &meta); err != nil {
			LogError("Failed to parse storage metadata: %v", err)
		} else {
			if meta.ChatSizes == nil {
				meta.ChatSizes = make(map[string]int64)
			}
			if meta.ChatLastAccessed == nil {
				meta.ChatLastAccessed = make(map[string]int64)
			}
			return &meta
		}
	}
	return s.newStorageMeta()
}

// saveMeta persists the ledger. Failures are logged and reported but never
// abort the operation that triggered them.
func (s *Store) saveMeta(meta *StorageMeta) error {
	data, err := json.Marshal(meta)
	if err != nil {
		return &ParseError{Key: s.cfg.metaKey(), Err: err}
	}
	if err := s.provider.Set(s.cfg.metaKey(), string(data)); err != nil {
		return &StorageError{Key: s.cfg.metaKey(), Op: "set", Err: err}
	}
	return nil
}

func (m *StorageMeta) hasChat(chatID string) bool {
	for _, id := range m.ChatIDs {
		if id == chatID {
			return true
		}
	}
	return false
}

func (m *StorageMeta) removeChat(chatID string) {
	m.TotalSize -= m.ChatSizes[chatID]
	if m.TotalSize < 0 {
		m.TotalSize = 0
	}
	delete(m.ChatSizes, chatID)
	delete(m.ChatLastAccessed, chatID)
	ids := m.ChatIDs[:0]
	for _, id := range m.ChatIDs {
		if id != chatID {
			ids = append(ids, id)
		}
	}
	m.ChatIDs = ids
}
