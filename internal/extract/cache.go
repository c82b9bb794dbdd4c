package extract

import "github.com/unspool/unspool/internal/types"

// Cache memoizes normalized records by post ID for the lifetime of one
// page view. It is a plain map: there is exactly one logical extraction
// worker, so no lock guards it. Entries never expire; the live page is the
// source of truth and re-extraction simply overwrites.
type Cache struct {
	records map[string]*types.Record
}

// NewCache creates an empty record cache.
func NewCache() *Cache {
	return &Cache{records: make(map[string]*types.Record)}
}

// Get returns the cached record for id, or nil.
func (c *Cache) Get(id string) *types.Record {
	return c.records[id]
}

// Set stores a record under its ID.
func (c *Cache) Set(id string, rec *types.Record) {
	c.records[id] = rec
}

// Clear drops every entry. Called on navigation or manual reset.
func (c *Cache) Clear() {
	c.records = make(map[string]*types.Record)
}

// Len reports the number of cached records.
func (c *Cache) Len() int {
	return len(c.records)
}
