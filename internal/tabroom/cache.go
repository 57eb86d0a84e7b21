package tabroom

import (
	"sync"

	"tabroomapi/lib/htmlutil"
)

// documentCache keeps every fetched document until cleared. Two concurrent
// misses on one key both fetch and the last store wins.
type documentCache struct {
	mutex sync.RWMutex
	docs  map[string]htmlutil.Document
}

func newDocumentCache() *documentCache {
	return &documentCache{docs: map[string]htmlutil.Document{}}
}

func (c *documentCache) get(key string) (htmlutil.Document, bool) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	doc, ok := c.docs[key]
	return doc, ok
}

func (c *documentCache) put(key string, doc htmlutil.Document) {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.docs[key] = doc
}

func (c *documentCache) clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.docs = map[string]htmlutil.Document{}
}

func (c *documentCache) len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.docs)
}

// searchCacheKey is the key of a search POST, which has no url of its own.
func searchCacheKey(endpoint, query string) string {
	return endpoint + "+" + query
}
