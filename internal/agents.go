package internal

import "encoding/json"

// Agent is the persisted shape of a configured chat agent. Agent persistence
// shares the substrate and prefix with the session engine but sits outside
// its ledger and index: agent keys are never evicted or counted.
type Agent struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Model       string `json:"model,omitempty"`
	SystemMsg   string `json:"systemMsg,omitempty"`
	UpdatedAt   int64  `json:"updatedAt,omitempty"` // unix millis
}

// SaveAgents persists the full agent list, replacing any previous one
func (s *Store) SaveAgents(agents []Agent) error {
	data, err := json.Marshal(agents)
	if err != nil {
		return &ParseError{Key: s.cfg.agentsStorageKey(), Err: err}
	}
	if err := s.provider.Set(s.cfg.agentsStorageKey(), string(data)); err != nil {
		LogError("Failed to save agents: %v", err)
		return err
	}
	return nil
}

// LoadAgents returns the persisted agent list, or nil when none exists.
// A corrupt list is logged and treated as absent.
func (s *Store) LoadAgents() []Agent {
	raw, ok := s.provider.Get(s.cfg.agentsStorageKey())
	if !ok {
		return nil
	}

	var agents []Agent
	if err := json.Unmarshal([]byte(raw), &agents); err != nil {
		LogError("Failed to parse agents: %v", err)
		return nil
	}
	return agents
}

// SaveSelectedAgent records which agent is currently selected
func (s *Store) SaveSelectedAgent(agentID string) error {
	if err := s.provider.Set(s.cfg.selectedAgentKey(), agentID); err != nil {
		LogError("Failed to save selected agent: %v", err)
		return err
	}
	return nil
}

// SelectedAgentID returns the currently selected agent id, or "" if none
func (s *Store) SelectedAgentID() string {
	id, _ := s.provider.Get(s.cfg.selectedAgentKey())
	return id
}

// LocallyModifiedAgents returns the ids of agents changed locally since the
// last sync with the server-side configuration
func (s *Store) LocallyModifiedAgents() []string {
	raw, ok := s.provider.Get(s.cfg.modifiedAgentsKey())
	if !ok {
		return nil
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		LogError("Failed to parse locally modified agents: %v", err)
		return nil
	}
	return ids
}

// MarkAgentLocallyModified adds an agent id to the locally-modified set
func (s *Store) MarkAgentLocallyModified(agentID string) error {
	ids := s.LocallyModifiedAgents()
	for _, id := range ids {
		if id == agentID {
			return nil
		}
	}
	ids = append(ids, agentID)

	data, err := json.Marshal(ids)
	if err != nil {
		return &ParseError{Key: s.cfg.modifiedAgentsKey(), Err: err}
	}
	if err := s.provider.Set(s.cfg.modifiedAgentsKey(), string(data)); err != nil {
		LogError("Failed to save locally modified agents: %v", err)
		return err
	}
	return nil
}
