package internal

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Substrate key layout, relative to Config.Prefix
const (
	messagesPrefix           = "messages_"
	chatIndexKey             = "chat_index"
	storageMetaKey           = "storage_meta"
	agentsKey                = "agents"
	selectedAgentIDKey       = "selected_agent_id"
	locallyModifiedAgentsKey = "locally_modified_agents"
)

// Config carries the engine's limits and key prefix. The zero value is not
// usable; start from DefaultConfig or LoadConfig.
type Config struct {
	// MaxStorageSizeMB bounds the engine's own accounting; the size pass of
	// Cleanup evicts down to 80% of it once 90% is crossed.
	MaxStorageSizeMB int `yaml:"max_storage_size_mb"`

	// MaxMessagesPerChat caps the message count kept per session.
	MaxMessagesPerChat int `yaml:"max_messages_per_chat"`

	// MaxChatAgeDays is the age pass threshold on last access time.
	MaxChatAgeDays int `yaml:"max_chat_age_days"`

	// SubstrateQuotaMB limits the SQLite substrate itself; 0 disables the
	// quota. Writes over the quota fail with ErrQuotaExceeded.
	SubstrateQuotaMB int `yaml:"substrate_quota_mb"`

	// Prefix namespaces every key this engine writes into the substrate.
	Prefix string `yaml:"prefix"`
}

// DefaultConfig returns the engine defaults
func DefaultConfig() Config {
	return Config{
		MaxStorageSizeMB:   10,
		MaxMessagesPerChat: 200,
		MaxChatAgeDays:     60,
		SubstrateQuotaMB:   0,
		Prefix:             "chatvault_",
	}
}

// LoadConfig reads a YAML config file over the defaults. An empty path
// returns the defaults unchanged.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config: %w", err)
	}
	return cfg, nil
}

func (c Config) maxBytes() int64 {
	return int64(c.MaxStorageSizeMB) * 1024 * 1024
}

// SubstrateQuotaBytes returns the configured substrate quota in bytes,
// 0 meaning unlimited
func (c Config) SubstrateQuotaBytes() int64 {
	return int64(c.SubstrateQuotaMB) * 1024 * 1024
}

func (c Config) messagesKeyPrefix() string {
	return c.Prefix + messagesPrefix
}

func (c Config) messagesKey(chatID string) string {
	return c.messagesKeyPrefix() + chatID
}

func (c Config) indexKey() string {
	return c.Prefix + chatIndexKey
}

func (c Config) metaKey() string {
	return c.Prefix + storageMetaKey
}

func (c Config) agentsStorageKey() string {
	return c.Prefix + agentsKey
}

func (c Config) selectedAgentKey() string {
	return c.Prefix + selectedAgentIDKey
}

func (c Config) modifiedAgentsKey() string {
	return c.Prefix + locallyModifiedAgentsKey
}
