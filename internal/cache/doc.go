// Package cache provides a generic LRU cache.
//
//	c := cache.New[string, *imgedit.Pixmap](32)
//	c.Set(ref.ID, decoded)
//	pm, ok := c.Get(ref.ID)
//
// The render loader keeps decoded rasters here keyed by content ID, and the
// blur kernels are memoized per radius.
//
// Cache is safe for concurrent use and must not be copied after creation.
package cache
