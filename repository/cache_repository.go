package repository

// CacheRepository caches serialized analysis results keyed by scenario.
type CacheRepository interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}
