// Package domain defines the core business entities of the CRM:
// users (principals), clients, tasks, and the derived dashboard stats.
// Entities carry plain hex-string IDs; storage-specific ID types stay
// inside the platform packages.
package domain
