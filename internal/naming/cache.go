package naming

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"sort"

	"github.com/yacobolo/cssmod/internal/domain"
	"github.com/yacobolo/cssmod/internal/fsutil"
	"go.trai.ch/zerr"
)

// maxIDKey is the reserved JSON key holding the next ID to assign.
const maxIDKey = "maxID"

// Cache maps compressed-mode keys to integer IDs.
// IDs are assigned sequentially from maxID and never reassigned.
type Cache struct {
	maxID int
	ids   map[string]int
}

// NewCache returns an empty cache whose first assigned ID is 0.
func NewCache() *Cache {
	return &Cache{ids: make(map[string]int)}
}

// LoadCache reads a cache file. A missing file yields an empty cache;
// any other failure is reported as domain.ErrCacheReadFailed.
func LoadCache(path string) (*Cache, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return NewCache(), nil
	}
	if err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, "read cache"), "path", path), "cause", err.Error())
	}

	c := NewCache()
	if err := json.Unmarshal(data, c); err != nil {
		return nil, zerr.With(zerr.With(zerr.Wrap(domain.ErrCacheReadFailed, "decode cache"), "path", path), "cause", err.Error())
	}
	return c, nil
}

// Lookup returns the ID assigned to key, if any.
func (c *Cache) Lookup(key string) (int, bool) {
	id, ok := c.ids[key]
	return id, ok
}

// Assign returns the ID for key, assigning the next free ID when key is new.
func (c *Cache) Assign(key string) (id int, created bool) {
	if id, ok := c.ids[key]; ok {
		return id, false
	}
	id = c.maxID
	c.ids[key] = id
	c.maxID++
	return id, true
}

// MaxID returns the next ID that will be assigned.
func (c *Cache) MaxID() int {
	return c.maxID
}

// Len returns the number of assigned keys.
func (c *Cache) Len() int {
	return len(c.ids)
}

// Keys returns the assigned keys in sorted order.
func (c *Cache) Keys() []string {
	keys := make([]string, 0, len(c.ids))
	for key := range c.ids {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Save writes the cache to path atomically.
func (c *Cache) Save(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, "encode cache"), "cause", err.Error())
	}
	if err := fsutil.WriteFileAtomic(path, data); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(domain.ErrCacheWriteFailed, "write cache"), "path", path), "cause", err.Error())
	}
	return nil
}

// MarshalJSON encodes the cache as one flat object with the reserved maxID key.
func (c *Cache) MarshalJSON() ([]byte, error) {
	flat := make(map[string]int, len(c.ids)+1)
	for key, id := range c.ids {
		flat[key] = id
	}
	flat[maxIDKey] = c.maxID
	return json.Marshal(flat)
}

// UnmarshalJSON decodes the flat cache object. maxID is raised above every stored ID
// so hand-edited files cannot cause an ID to be handed out twice.
func (c *Cache) UnmarshalJSON(data []byte) error {
	var flat map[string]int
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	c.ids = make(map[string]int, len(flat))
	c.maxID = 0
	for key, id := range flat {
		if key == maxIDKey {
			continue
		}
		c.ids[key] = id
		if id >= c.maxID {
			c.maxID = id + 1
		}
	}
	if stored, ok := flat[maxIDKey]; ok && stored > c.maxID {
		c.maxID = stored
	}
	return nil
}
