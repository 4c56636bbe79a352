package storage

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dochub-io/dochub/pkg/apidocs"
)

// CollectionCache is an in-process LRU of parsed endpoint collections,
// keyed by project and page slug. Parsing page content on every public
// view is cheap but not free; the LRU keeps hot documentation pages
// parsed.
type CollectionCache struct {
	lru *lru.Cache[string, apidocs.Collection]
}

// NewCollectionCache creates a cache bounded to size entries.
func NewCollectionCache(size int) (*CollectionCache, error) {
	c, err := lru.New[string, apidocs.Collection](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection cache: %w", err)
	}
	return &CollectionCache{lru: c}, nil
}

func collectionKey(projectID, slug string) string {
	return projectID + "/" + slug
}

// Get returns the cached parsed collection for a page.
func (c *CollectionCache) Get(projectID, slug string) (apidocs.Collection, bool) {
	return c.lru.Get(collectionKey(projectID, slug))
}

// Set stores the parsed collection for a page.
func (c *CollectionCache) Set(projectID, slug string, collection apidocs.Collection) {
	c.lru.Add(collectionKey(projectID, slug), collection)
}

// Invalidate drops the cached collection for a page.
func (c *CollectionCache) Invalidate(projectID, slug string) {
	c.lru.Remove(collectionKey(projectID, slug))
}

// Len returns the number of cached collections.
func (c *CollectionCache) Len() int {
	return c.lru.Len()
}
