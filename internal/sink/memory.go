package sink

import (
	"sort"
	"sync"

	"turmites/internal/core"
)

func init() {
	core.RegisterSink("memory", func(map[string]string) (core.Sink, error) {
		return NewMemory(), nil
	})
}

// Memory keeps written patterns in memory. It is meant for tests and dry
// runs; the lock is only taken once per pattern.
type Memory struct {
	mu    sync.Mutex
	files map[string][]byte
	bytes int64
}

// NewMemory returns an empty memory sink.
func NewMemory() *Memory {
	return &Memory{files: make(map[string][]byte)}
}

// Write stores a copy of data under name, replacing any earlier value.
func (m *Memory) Write(name string, data []byte) error {
	cp := append([]byte(nil), data...)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bytes += int64(len(cp)) - int64(len(m.files[name]))
	m.files[name] = cp
	return nil
}

// Get returns the data stored under name.
func (m *Memory) Get(name string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	return data, ok
}

// Names returns the stored names in sorted order.
func (m *Memory) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Size returns the total number of bytes held.
func (m *Memory) Size() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bytes
}
