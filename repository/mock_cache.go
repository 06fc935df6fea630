package repository

// MockCache is a map-backed CacheRepository for local runs and tests.
// Hits counts successful Gets so tests can assert cache behavior.
type MockCache struct {
	Data map[string]string
	Hits int
}

func NewMockCache() *MockCache {
	return &MockCache{
		Data: make(map[string]string),
	}
}

func (m *MockCache) Get(key string) (string, bool) {
	val, ok := m.Data[key]
	if ok {
		m.Hits++
	}
	return val, ok
}

func (m *MockCache) Set(key string, value string) error {
	m.Data[key] = value
	return nil
}
