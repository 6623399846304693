package data

import (
	"path/filepath"
	"sync"

	"solar-thermal-sizing/internal/logger"
	"solar-thermal-sizing/internal/model"
)

// TableCache keeps climate tables loaded once per file. Tables are immutable
// inputs, so entries never expire; Clear drops everything (e.g. after the
// dataset directory changed).
type TableCache struct {
	mu    sync.RWMutex
	store map[string]model.ClimateTable
	load  func(string) (model.ClimateTable, error)
}

func NewTableCache() *TableCache {
	return &TableCache{
		store: make(map[string]model.ClimateTable),
		load:  LoadClimate,
	}
}

// Get returns a copy of the table stored for path, loading it on first use.
func (c *TableCache) Get(path string) (model.ClimateTable, error) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = path
	}

	c.mu.RLock()
	t, ok := c.store[key]
	c.mu.RUnlock()
	if ok {
		return clone(t), nil
	}

	t, err = c.load(path)
	if err != nil {
		return nil, err
	}
	logger.L().Debugf("climate table loaded: %s", key)

	c.mu.Lock()
	c.store[key] = t
	c.mu.Unlock()
	return clone(t), nil
}

func (c *TableCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

func (c *TableCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store = make(map[string]model.ClimateTable)
}

func clone(t model.ClimateTable) model.ClimateTable {
	return append(model.ClimateTable(nil), t...)
}
