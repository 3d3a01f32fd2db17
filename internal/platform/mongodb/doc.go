// Package mongodb implements the store interfaces on top of a MongoDB
// database. The connection is an explicit handle with a
// connect/disconnect lifecycle: operations on a closed handle fail with
// store.ErrNotConnected and are never retried or reconnected.
package mongodb
