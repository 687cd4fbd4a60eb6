package domain

import "github.com/pkg/errors"

var (
	ErrInvalidURL      = errors.New("invalid url")
	ErrExpiredURL      = errors.New("url has expired")
	ErrLinkNotFound    = errors.New("link not found")
	ErrLinkDeactivated = errors.New("link has been deactivated")
	ErrLinkExpired     = errors.New("link has expired")
	ErrInvalidLimit    = errors.New("invalid limit")
	ErrSlugExhausted   = errors.New("slug allocation exhausted")

	// ErrDuplicateSlug is recovered inside the use case by retrying with a
	// fresh slug. It never reaches the delivery layer.
	ErrDuplicateSlug = errors.New("duplicate slug")
)
