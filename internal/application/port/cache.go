package port

// Cache is a bounded in-memory key-value cache.
type Cache[K comparable, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V)
	Clear()
}
