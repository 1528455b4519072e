package internal

import (
	"fmt"
	"time"
)

// CreateTestMessages builds an alternating user/assistant conversation with
// count messages, timestamped one second apart ending at the given time
func CreateTestMessages(count int, end time.Time) []Message {
	messages := make([]Message, 0, count)
	for i := 0; i < count; i++ {
		role := RoleUser
		if i%2 == 1 {
			role = RoleAssistant
		}
		messages = append(messages, Message{
			ID:        fmt.Sprintf("msg-%d", i+1),
			Role:      role,
			Content:   fmt.Sprintf("message %d", i+1),
			Timestamp: end.Add(-time.Duration(count-1-i) * time.Second),
		})
	}
	return messages
}

// quotaProvider wraps a MemoryProvider and rejects Set calls, simulating a
// substrate that has hit its quota. failures limits how many Set calls are
// rejected; alwaysFail rejects every one.
type quotaProvider struct {
	*MemoryProvider
	failures   int
	alwaysFail bool
}

func newQuotaProvider() *quotaProvider {
	return &quotaProvider{MemoryProvider: NewMemoryProvider()}
}

func (p *quotaProvider) Set(key, value string) error {
	if p.alwaysFail {
		return ErrQuotaExceeded
	}
	if p.failures > 0 {
		p.failures--
		return ErrQuotaExceeded
	}
	return p.MemoryProvider.Set(key, value)
}

// newTestStore creates a store over a fresh in-memory provider with a fixed
// clock so age-based behavior is deterministic
func newTestStore(at time.Time) (*Store, *MemoryProvider) {
	provider := NewMemoryProvider()
	store := NewStore(provider, DefaultConfig())
	store.now = func() time.Time { return at }
	return store, provider
}
