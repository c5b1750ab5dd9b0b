package store

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Memory keeps records in a map with the same JSON round-trip semantics as
// the durable store. It backs tests and the degraded mode entered when the
// data file cannot be opened.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string][]byte{}}
}

func (s *Memory) Get(key string, dest any) bool {
	s.mu.RLock()
	raw, ok := s.data[key]
	s.mu.RUnlock()
	if !ok {
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		slog.Warn("store record corrupt", "key", key, "err", err)
		return false
	}
	return true
}

func (s *Memory) Set(key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		slog.Warn("store marshal failed", "key", key, "err", err)
		return
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
}

func (s *Memory) Remove(key string) {
	s.mu.Lock()
	delete(s.data, key)
	s.mu.Unlock()
}

// SetRaw stores bytes verbatim, bypassing marshaling. Tests use it to plant
// unparsable records.
func (s *Memory) SetRaw(key string, raw []byte) {
	s.mu.Lock()
	s.data[key] = append([]byte(nil), raw...)
	s.mu.Unlock()
}
