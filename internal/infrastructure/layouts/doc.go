// Package layouts implements domain.LayoutChecker against the places layout
// definitions live: a directory tree, a SQL table or a MongoDB collection.
// CachedChecker wraps any of them with a read-through cache.
package layouts
