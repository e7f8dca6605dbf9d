package xsd

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
)

// SchemaCache keeps one combined schema per schema folder, loading each
// folder at most once per process
type SchemaCache struct {
	mu      sync.RWMutex
	schemas map[string]*schemaEntry
	// Logger is handed to the loaders created by the cache
	Logger *slog.Logger
}

// schemaEntry holds a schema and its loader
type schemaEntry struct {
	once   sync.Once
	schema *Schema
	err    error
}

// NewSchemaCache creates a new schema cache
func NewSchemaCache() *SchemaCache {
	return &SchemaCache{
		schemas: make(map[string]*schemaEntry),
	}
}

// Get returns the combined schema of every *.xsd file in dir, loading it on
// first use. Concurrent callers for the same folder share one load.
func (sc *SchemaCache) Get(dir string) (*Schema, error) {
	key, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema folder %s: %w", dir, err)
	}

	sc.mu.RLock()
	entry, exists := sc.schemas[key]
	sc.mu.RUnlock()

	if !exists {
		sc.mu.Lock()
		if entry, exists = sc.schemas[key]; !exists {
			entry = &schemaEntry{}
			sc.schemas[key] = entry
		}
		sc.mu.Unlock()
	}

	entry.once.Do(func() {
		loader := NewSchemaLoader(key)
		if sc.Logger != nil {
			loader.Logger = sc.Logger
		}
		entry.schema, entry.err = loader.LoadDir(key)
		if entry.err == nil {
			sc.logger().Debug("schema folder loaded",
				"folder", key,
				"elements", len(entry.schema.elementOrder),
				"types", len(entry.schema.TypeDefs))
		}
	})
	return entry.schema, entry.err
}

// Clear removes all cached schemas
func (sc *SchemaCache) Clear() {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.schemas = make(map[string]*schemaEntry)
}

// Remove removes a specific folder from cache
func (sc *SchemaCache) Remove(dir string) {
	key, err := filepath.Abs(dir)
	if err != nil {
		key = dir
	}
	sc.mu.Lock()
	defer sc.mu.Unlock()
	delete(sc.schemas, key)
}

func (sc *SchemaCache) logger() *slog.Logger {
	if sc.Logger != nil {
		return sc.Logger
	}
	return slog.Default()
}
