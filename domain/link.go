package domain

import (
	"context"
	"time"
)

type Link struct {
	ID        int64      `json:"id"`
	Slug      string     `json:"slug"`
	URL       string     `json:"url"`
	Clicks    int64      `json:"clicks"`
	IsActive  bool       `json:"is_active"`
	OwnerID   *string    `json:"owner_id"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

type SortOrderByEnum int

const (
	UnknownSortOrderByEnum SortOrderByEnum = iota
	ASCSortOrderByEnum
	DESCSortOrderByEnum
)

type LinkSortByEnum int

const (
	UnknownLinkSortByEnum LinkSortByEnum = iota
	ClicksLinkSortByEnum
	CreatedAtLinkSortByEnum
	ExpiresAtLinkSortByEnum
)

type ClickEvent struct {
	Slug      string    `json:"slug"`
	ClickedAt time.Time `json:"clicked_at"`
}

// ResolveResult carries the redirect target. ShouldCountClick is true only on
// the cache-miss path, where the caller must increment the click counter
// before responding. On a cache hit the counter is incremented asynchronously
// through the click-event topic.
type ResolveResult struct {
	URL              string
	ShouldCountClick bool
}

type LinkRepo interface {
	InsertLink(ctx context.Context, link *Link) error
	GetLinkBySlug(ctx context.Context, slug string) (*Link, error)
	IncrementClicks(ctx context.Context, slug string) error
	SetInactive(ctx context.Context, slug string) error
	GetLinks(ctx context.Context, limit int, sortBy LinkSortByEnum, order SortOrderByEnum) ([]*Link, error)
	CountLinks(ctx context.Context) (int64, error)
}

type LinkCacheRepo interface {
	GetURL(ctx context.Context, slug string) (url string, exists bool, err error)
	SetURL(ctx context.Context, slug, url string, ttl time.Duration) error
	DeleteURL(ctx context.Context, slug string) error
}

type ClickEventRepo interface {
	ProduceClickEvent(ctx context.Context, slug string, clickedAt time.Time) error
	ConsumeClickEvents(ctx context.Context, key string, notify func(clickEvent *ClickEvent) error)
	StopConsume(ctx context.Context, key string)
}

type LinkUseCase interface {
	CreateLink(ctx context.Context, originalURL string, expiresAt *time.Time) (*Link, error)
	Resolve(ctx context.Context, slug string) (*ResolveResult, error)
	IncrementClicks(ctx context.Context, slug string) error
	GetStats(ctx context.Context, slug string) (*Link, error)
	Deactivate(ctx context.Context, slug string) error
	ListLinks(ctx context.Context, limit int, sortBy LinkSortByEnum, order SortOrderByEnum) (links []*Link, total int64, err error)
}

type ClickAccountantUseCase interface {
	Process(ctx context.Context)
	Stop(ctx context.Context)
}
