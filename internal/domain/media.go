package domain

import "time"

// MediaKind distinguishes uploaded asset types.
type MediaKind string

const (
	MediaKindImage MediaKind = "IMAGEN"
	MediaKindVideo MediaKind = "VIDEO"
)

// Media is an asset attached to a publication.
type Media struct {
	ID            string    `json:"id"`
	PublicationID string    `json:"publicationId"`
	Kind          MediaKind `json:"kind"`
	FileName      string    `json:"fileName"`
	URL           string    `json:"url"`
	SizeBytes     int64     `json:"sizeBytes"`
	CreatedAt     time.Time `json:"createdAt"`
}
