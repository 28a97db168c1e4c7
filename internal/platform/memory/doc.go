// Package memory provides in-process implementations of the store interfaces.
//
// PlanStore keeps course plans in an expirable LRU cache from
// hashicorp/golang-lru. Contents are lost when the process exits.
package memory
