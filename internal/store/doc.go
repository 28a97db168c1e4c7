// Package store defines interfaces for course plan persistence.
// These interfaces abstract the underlying storage mechanism from the
// application's core logic, so services depend on the behavior of a plan
// cache rather than on a particular map, LRU or external store.
package store
