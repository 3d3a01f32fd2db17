// Package service implements the authorization-scoped operations over
// the store interfaces: who can see and mutate which clients and tasks,
// pagination and filtering, dashboard stats caching, and the cache
// invalidation every write triggers.
//
// The scope rules are uniform: an admin principal operates on every
// record; a manager principal operates only on records they own
// (managerId for clients, assigneeId for tasks). Services resolve the
// scope and hand the stores an already-scoped query.
package service
