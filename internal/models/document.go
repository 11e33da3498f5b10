// Package models defines the domain types for Ansuz.
package models

import "time"

// DocumentMeta is a lightweight representation returned by workspace
// list operations.
type DocumentMeta struct {
	Path      string    `json:"path"`
	Checksum  string    `json:"checksum"`
	UpdatedAt time.Time `json:"updated_at"`
}
