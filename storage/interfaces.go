package storage

import "hotel-scout/models"

// ListingWriter is the interface any storage backend must satisfy.
type ListingWriter interface {
	Write(listings []models.Listing) error
	Close() error
}
