package models

import "time"

// RecentTemplate is one entry of the most-recently-used template list.
// AccessedAt is persisted as Unix milliseconds.
type RecentTemplate struct {
	Filename   string `json:"filename"`
	Name       string `json:"name"`
	Provider   string `json:"provider,omitempty"`
	AccessedAt int64  `json:"accessedAt"`
}

// AccessedTime returns AccessedAt as a [time.Time].
func (r RecentTemplate) AccessedTime() time.Time {
	return time.UnixMilli(r.AccessedAt)
}
