package internal

import (
	"sort"
	"strings"
	"time"
)

// cleanupInterval gates how often Cleanup does real work
const cleanupInterval = 24 * time.Hour

// Size pass thresholds: eviction starts above the high-water fraction of
// MaxStorageSizeMB and stops at the low-water fraction.
const (
	sizeHighWater = 0.9
	sizeLowWater  = 0.8
)

// StorageStats summarizes substrate usage for callers and the CLI
type StorageStats struct {
	TotalSizeMB  float64 `json:"totalSizeMB"`
	MaxSizeMB    float64 `json:"maxSizeMB"`
	UsagePercent float64 `json:"usagePercent"`
	ChatCount    int     `json:"chatCount"`
}

// Init prepares the engine at startup: it runs the time-gated cleanup and
// recomputes ledger sizes from the raw entries when the ledger shows no
// total despite known sessions (post-reset self-heal).
func (s *Store) Init() {
	s.Cleanup()

	meta := s.loadMeta()
	if meta.TotalSize == 0 && len(meta.ChatIDs) > 0 {
		var total int64
		for _, chatID := range meta.ChatIDs {
			raw, ok := s.provider.Get(s.cfg.messagesKey(chatID))
			if !ok {
				continue
			}
			size := EstimateSize(raw)
			meta.ChatSizes[chatID] = size
			total += size
		}
		meta.TotalSize = total
		if err := s.saveMeta(meta); err != nil {
			LogWarn("Failed to persist recomputed ledger: %v", err)
		}
	}

	LogDebug("Storage engine initialized")
}

// NearLimit reports whether accounted usage has crossed the size pass
// high-water mark.
func (s *Store) NearLimit() bool {
	meta := s.loadMeta()
	return float64(meta.TotalSize) > float64(s.cfg.maxBytes())*sizeHighWater
}

// Cleanup reclaims space in two passes: sessions not accessed within
// MaxChatAgeDays are deleted, then, if usage still exceeds the high-water
// mark, the least-recently-accessed sessions go until usage is at or below
// the low-water mark. It is a no-op within cleanupInterval of the previous
// run, so hosts can call it on every startup and before writes.
func (s *Store) Cleanup() {
	meta := s.loadMeta()
	if s.now().UnixMilli()-meta.LastCleanup < cleanupInterval.Milliseconds() {
		return
	}
	s.ForceCleanup()
}

// ForceCleanup runs both eviction passes immediately, ignoring the
// once-per-day gate. Exposed as an operator action.
func (s *Store) ForceCleanup() {
	meta := s.loadMeta()
	now := s.now()

	// Stamp the gate before deleting: DeleteSession rewrites the ledger on
	// every eviction and must not resurrect a stale timestamp.
	meta.LastCleanup = now.UnixMilli()
	if err := s.saveMeta(meta); err != nil {
		LogWarn("Failed to persist cleanup timestamp: %v", err)
	}

	maxAgeMs := int64(s.cfg.MaxChatAgeDays) * 24 * time.Hour.Milliseconds()

	for _, chatID := range chatsByAge(meta) {
		if now.UnixMilli()-meta.ChatLastAccessed[chatID] > maxAgeMs {
			s.DeleteSession(chatID)
		}
	}

	if s.NearLimit() {
		target := int64(float64(s.cfg.maxBytes()) * sizeLowWater)
		current := s.loadMeta()
		remaining := chatsByAge(current)

		for current.TotalSize > target && len(remaining) > 0 {
			oldest := remaining[0]
			remaining = remaining[1:]
			s.DeleteSession(oldest)
			current = s.loadMeta()
		}
	}

	LogInfo("Storage cleanup completed")
}

// EmergencyCleanup is the crisis path for a substrate that rejected a write.
// It works from the raw keys alone, since the ledger may be part of the
// problem: the oldest half of the session entries (by sorted key) is removed
// and the ledger is reset to empty, to be rebuilt lazily. If even that
// fails, every session entry and the ledger are wiped.
func (s *Store) EmergencyCleanup() {
	LogWarn("Running emergency cleanup due to storage error")

	if err := s.emergencyEvict(); err != nil {
		LogError("Emergency cleanup failed: %v", err)

		// Last resort: drop everything under the session prefix plus the
		// ledger. Losing history is acceptable; losing writability is not.
		for _, key := range Keys(s.provider) {
			if strings.HasPrefix(key, s.cfg.messagesKeyPrefix()) {
				s.provider.Remove(key)
			}
		}
		s.provider.Remove(s.cfg.metaKey())
		LogWarn("Last resort cleanup: deleted all chat data")
	}
}

func (s *Store) emergencyEvict() error {
	var chatKeys []string
	for _, key := range Keys(s.provider) {
		if strings.HasPrefix(key, s.cfg.messagesKeyPrefix()) {
			chatKeys = append(chatKeys, key)
		}
	}
	sort.Strings(chatKeys)

	deleteCount := (len(chatKeys) + 1) / 2
	for _, key := range chatKeys[:deleteCount] {
		s.provider.Remove(key)
	}

	if err := s.saveMeta(s.newStorageMeta()); err != nil {
		return err
	}

	LogWarn("Emergency cleanup: deleted %d chat(s)", deleteCount)
	return nil
}

// ClearAll removes every session entry, the index, and resets the ledger
func (s *Store) ClearAll() {
	for _, key := range Keys(s.provider) {
		if strings.HasPrefix(key, s.cfg.messagesKeyPrefix()) {
			s.provider.Remove(key)
		}
	}
	s.provider.Remove(s.cfg.indexKey())

	if err := s.saveMeta(s.newStorageMeta()); err != nil {
		LogWarn("Failed to reset ledger after clear: %v", err)
	}
	LogInfo("All chat sessions cleared")
}

// Stats reports substrate usage. Total size is measured by scanning every
// stored value rather than trusting the ledger, so it reflects reality even
// when the ledger has drifted.
func (s *Store) Stats() StorageStats {
	var total int64
	for _, key := range Keys(s.provider) {
		if value, ok := s.provider.Get(key); ok {
			total += EstimateSize(value)
		}
	}

	totalMB := float64(total) / (1024 * 1024)
	maxMB := float64(s.cfg.MaxStorageSizeMB)
	meta := s.loadMeta()

	return StorageStats{
		TotalSizeMB:  totalMB,
		MaxSizeMB:    maxMB,
		UsagePercent: totalMB / maxMB * 100,
		ChatCount:    len(meta.ChatIDs),
	}
}

// chatsByAge orders the ledger's sessions by ascending last access time
func chatsByAge(meta *StorageMeta) []string {
	ids := make([]string, len(meta.ChatIDs))
	copy(ids, meta.ChatIDs)
	sort.Slice(ids, func(i, j int) bool {
		ai, aj := meta.ChatLastAccessed[ids[i]], meta.ChatLastAccessed[ids[j]]
		if ai != aj {
			return ai < aj
		}
		return ids[i] < ids[j]
	})
	return ids
}
