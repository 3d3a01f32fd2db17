// Package store defines the persistence interfaces consumed by the
// service layer, together with the sentinel errors all implementations
// return. The MongoDB implementations live in
// internal/platform/mongodb; services depend only on these interfaces.
//
// Queries carry the already-resolved scope: a non-empty owner ID field
// (ManagerID, AssigneeID) restricts results to that owner. Deciding who
// may ask for which scope is the service layer's job, not the store's.
package store
