// Package api implements the HTTP surface: request decoding and
// validation, the handlers for auth, clients, tasks and the dashboard,
// and the mapping from service errors to status codes.
package api
