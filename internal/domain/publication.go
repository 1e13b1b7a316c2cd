package domain

import "time"

// PublicationStatus enumerates the review lifecycle of a publication.
type PublicationStatus string

const (
	PublicationStatusPending   PublicationStatus = "PENDIENTE"
	PublicationStatusApproved  PublicationStatus = "APROBADO"
	PublicationStatusPublished PublicationStatus = "PUBLICADO"
	PublicationStatusRejected  PublicationStatus = "RECHAZADO"
)

// PublicationType distinguishes feed posts from reels.
type PublicationType string

const (
	PublicationTypePost PublicationType = "POST"
	PublicationTypeReel PublicationType = "REEL"
)

// Publication is a scheduled piece of content belonging to a client.
type Publication struct {
	ID          string            `json:"id"`
	ClientID    string            `json:"clientId"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Type        PublicationType   `json:"type"`
	Status      PublicationStatus `json:"status"`
	ScheduledAt *time.Time        `json:"scheduledAt,omitempty"`
	PublishedAt *time.Time        `json:"publishedAt,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// PublicationInput carries the writable fields for create and update calls.
type PublicationInput struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Type        PublicationType `json:"type"`
	ScheduledAt *time.Time      `json:"scheduledAt,omitempty"`
}
