package internal

import (
	"testing"
)

func TestStore_LoadMetaFreshWhenAbsent(t *testing.T) {
	store, _ := newTestStore(testTime)

	meta := store.loadMeta()
	if meta.TotalSize != 0 {
		t.Errorf("fresh ledger totalSize = %d, want 0", meta.TotalSize)
	}
	if meta.Version != metaVersion {
		t.Errorf("fresh ledger version = %d, want %d", meta.Version, metaVersion)
	}
	if meta.ChatSizes == nil || meta.ChatLastAccessed == nil {
		t.Error("fresh ledger has nil maps")
	}
	if meta.LastCleanup != testTime.UnixMilli() {
		t.Errorf("fresh ledger lastCleanup = %d, want %d", meta.LastCleanup, testTime.UnixMilli())
	}
}

func TestStore_LoadMetaCorruptFallsBackToFresh(t *testing.T) {
	store, provider := newTestStore(testTime)
	provider.Set(store.cfg.metaKey(), "][")

	meta := store.loadMeta()
	if meta.TotalSize != 0 || len(meta.ChatIDs) != 0 {
		t.Errorf("corrupt ledger not replaced by fresh one: %+v", meta)
	}
}

func TestStore_LoadMetaRepairsNilMaps(t *testing.T) {
	store, provider := newTestStore(testTime)
	// A hand-written ledger missing the map fields must still be usable
	provider.Set(store.cfg.metaKey(), `{"totalSize":0,"chatIds":[],"version":1,"lastCleanup":0}`)

	meta := store.loadMeta()
	if meta.ChatSizes == nil || meta.ChatLastAccessed == nil {
		t.Error("loadMeta() left nil maps in a parsed ledger")
	}
	meta.ChatSizes["x"] = 1
	meta.ChatLastAccessed["x"] = 1
}

func TestStore_SaveMetaRoundTrip(t *testing.T) {
	store, _ := newTestStore(testTime)

	meta := store.newStorageMeta()
	meta.TotalSize = 42
	meta.ChatIDs = []string{"a"}
	meta.ChatSizes["a"] = 42
	meta.ChatLastAccessed["a"] = testTime.UnixMilli()

	if err := store.saveMeta(meta); err != nil {
		t.Fatalf("saveMeta() error = %v", err)
	}

	loaded := store.loadMeta()
	if loaded.TotalSize != 42 {
		t.Errorf("loaded totalSize = %d, want 42", loaded.TotalSize)
	}
	if len(loaded.ChatIDs) != 1 || loaded.ChatIDs[0] != "a" {
		t.Errorf("loaded chatIds = %v, want [a]", loaded.ChatIDs)
	}
	if loaded.ChatSizes["a"] != 42 {
		t.Errorf("loaded chatSizes[a] = %d, want 42", loaded.ChatSizes["a"])
	}
}

func TestStorageMeta_RemoveChat(t *testing.T) {
	store, _ := newTestStore(testTime)
	meta := store.newStorageMeta()
	meta.ChatIDs = []string{"a", "b"}
	meta.ChatSizes = map[string]int64{"a": 10, "b": 20}
	meta.ChatLastAccessed = map[string]int64{"a": 1, "b": 2}
	meta.TotalSize = 30

	meta.removeChat("a")
	if meta.TotalSize != 20 {
		t.Errorf("totalSize after remove = %d, want 20", meta.TotalSize)
	}
	if meta.hasChat("a") {
		t.Error("hasChat() still reports a removed session")
	}
	if !meta.hasChat("b") {
		t.Error("hasChat() lost an unrelated session")
	}
	if _, ok := meta.ChatLastAccessed["a"]; ok {
		t.Error("removeChat() kept the access time")
	}
}

func TestStorageMeta_RemoveChatClampsTotal(t *testing.T) {
	store, _ := newTestStore(testTime)
	meta := store.newStorageMeta()
	meta.ChatIDs = []string{"a"}
	meta.ChatSizes = map[string]int64{"a": 50}
	meta.TotalSize = 10 // drifted ledger

	meta.removeChat("a")
	if meta.TotalSize != 0 {
		t.Errorf("totalSize after clamped remove = %d, want 0", meta.TotalSize)
	}
}
