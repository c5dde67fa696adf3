package session

// MemoryStorage is a map-backed Storage. Saved values survive into a new
// Session built on the same MemoryStorage, which is how tests model a reload.
type MemoryStorage struct {
	pending map[interface{}]interface{}
	saved   map[interface{}]interface{}
	SaveErr error
	Saves   int
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		pending: map[interface{}]interface{}{},
		saved:   map[interface{}]interface{}{},
	}
}

func (m *MemoryStorage) Get(key interface{}) interface{} { return m.pending[key] }

func (m *MemoryStorage) Set(key interface{}, val interface{}) { m.pending[key] = val }

func (m *MemoryStorage) Delete(key interface{}) { delete(m.pending, key) }

func (m *MemoryStorage) Save() error {
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.saved = make(map[interface{}]interface{}, len(m.pending))
	for k, v := range m.pending {
		m.saved[k] = v
	}
	m.Saves++
	return nil
}

// Reload drops unsaved changes, as a browser reload would.
func (m *MemoryStorage) Reload() *MemoryStorage {
	m.pending = make(map[interface{}]interface{}, len(m.saved))
	for k, v := range m.saved {
		m.pending[k] = v
	}
	return m
}
