package usecase

import (
	"context"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
	loggerKit "github.com/superj80820/shortlink/kit/logger"
	utilKit "github.com/superj80820/shortlink/kit/util"
)

const (
	cacheTTL        = 600 * time.Second
	maxSlugAttempts = 3

	minListLimit = 1
	maxListLimit = 1000
)

type linkUseCase struct {
	linkRepo       domain.LinkRepo
	linkCacheRepo  domain.LinkCacheRepo
	clickEventRepo domain.ClickEventRepo
	logger         *loggerKit.Logger
}

func CreateLinkUseCase(
	linkRepo domain.LinkRepo,
	linkCacheRepo domain.LinkCacheRepo,
	clickEventRepo domain.ClickEventRepo,
	logger *loggerKit.Logger,
) (domain.LinkUseCase, error) {
	if linkRepo == nil || linkCacheRepo == nil || clickEventRepo == nil || logger == nil {
		return nil, errors.New("create link use case failed")
	}
	return &linkUseCase{
		linkRepo:       linkRepo,
		linkCacheRepo:  linkCacheRepo,
		clickEventRepo: clickEventRepo,
		logger:         logger,
	}, nil
}

func (l *linkUseCase) CreateLink(ctx context.Context, originalURL string, expiresAt *time.Time) (*domain.Link, error) {
	parsedURL, err := url.Parse(originalURL)
	if err != nil || !parsedURL.IsAbs() || parsedURL.Host == "" {
		return nil, errors.Wrap(domain.ErrInvalidURL, "parse url failed, url: "+originalURL)
	}
	if expiresAt != nil && expiresAt.Before(time.Now()) {
		return nil, errors.Wrap(domain.ErrExpiredURL, "expires at is already in the past")
	}

	for attempt := 0; attempt < maxSlugAttempts; attempt++ {
		slug, err := generateSlug()
		if err != nil {
			return nil, errors.Wrap(err, "generate slug failed")
		}

		link := &domain.Link{
			ID:        utilKit.GetSnowflakeIDInt64(),
			Slug:      slug,
			URL:       originalURL,
			Clicks:    0,
			IsActive:  true,
			ExpiresAt: expiresAt,
			CreatedAt: time.Now(),
		}
		err = l.linkRepo.InsertLink(ctx, link)
		if errors.Is(err, domain.ErrDuplicateSlug) {
			continue // only retryable store failure. try again with a fresh slug
		} else if err != nil {
			return nil, errors.Wrap(err, "insert link failed")
		}

		// the cache is a hint, not a dependency. a write failure must not
		// fail the create
		if err := l.linkCacheRepo.SetURL(ctx, slug, originalURL, cacheTTL); err != nil {
			l.logger.With(loggerKit.String("slug", slug)).Error("set link cache failed: " + err.Error())
		}

		return link, nil
	}

	l.logger.With(loggerKit.Int("attempts", maxSlugAttempts)).Error("slug allocation exhausted. slug space saturated or store degraded")
	return nil, errors.Wrap(domain.ErrSlugExhausted, "allocate unique slug failed after "+strconv.Itoa(maxSlugAttempts)+" attempts")
}

func (l *linkUseCase) Resolve(ctx context.Context, slug string) (*domain.ResolveResult, error) {
	cachedURL, exists, err := l.linkCacheRepo.GetURL(ctx, slug)
	if err != nil {
		// a cache failure is a miss, never a not found. fall through to the store
		l.logger.With(loggerKit.String("slug", slug)).Error("get link cache failed: " + err.Error())
	} else if exists {
		// the hit path skips the deactivation and expiration checks. a
		// just-deactivated or just-expired link may still redirect until its
		// cache entry's TTL elapses
		if err := l.clickEventRepo.ProduceClickEvent(ctx, slug, time.Now()); err != nil {
			l.logger.With(loggerKit.String("slug", slug)).Error("produce click event failed: " + err.Error())
		}
		return &domain.ResolveResult{URL: cachedURL, ShouldCountClick: false}, nil
	}

	link, err := l.linkRepo.GetLinkBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "get link failed")
	}
	if !link.IsActive {
		return nil, errors.Wrap(domain.ErrLinkDeactivated, "slug: "+slug)
	}
	if link.ExpiresAt != nil && link.ExpiresAt.Before(time.Now()) {
		return nil, errors.Wrap(domain.ErrLinkExpired, "slug: "+slug)
	}

	if err := l.linkCacheRepo.SetURL(ctx, slug, link.URL, cacheTTL); err != nil {
		l.logger.With(loggerKit.String("slug", slug)).Error("set link cache failed: " + err.Error())
	}

	return &domain.ResolveResult{URL: link.URL, ShouldCountClick: true}, nil
}

func (l *linkUseCase) IncrementClicks(ctx context.Context, slug string) error {
	if err := l.linkRepo.IncrementClicks(ctx, slug); err != nil {
		return errors.Wrap(err, "increment clicks failed")
	}
	return nil
}

func (l *linkUseCase) GetStats(ctx context.Context, slug string) (*domain.Link, error) {
	link, err := l.linkRepo.GetLinkBySlug(ctx, slug)
	if err != nil {
		return nil, errors.Wrap(err, "get link failed")
	}
	return link, nil
}

func (l *linkUseCase) Deactivate(ctx context.Context, slug string) error {
	if _, err := l.linkRepo.GetLinkBySlug(ctx, slug); err != nil {
		return errors.Wrap(err, "get link failed")
	}
	// the store mutation must commit before the cache eviction. a crash in
	// between leaves a stale entry that dies with its TTL
	if err := l.linkRepo.SetInactive(ctx, slug); err != nil {
		return errors.Wrap(err, "set inactive failed")
	}
	if err := l.linkCacheRepo.DeleteURL(ctx, slug); err != nil {
		l.logger.With(loggerKit.String("slug", slug)).Error("evict link cache failed: " + err.Error())
	}
	return nil
}

func (l *linkUseCase) ListLinks(ctx context.Context, limit int, sortBy domain.LinkSortByEnum, order domain.SortOrderByEnum) ([]*domain.Link, int64, error) {
	if limit < minListLimit || limit > maxListLimit {
		return nil, 0, errors.Wrap(domain.ErrInvalidLimit, "limit out of range, limit: "+strconv.Itoa(limit))
	}

	total, err := l.linkRepo.CountLinks(ctx)
	if err != nil {
		return nil, 0, errors.Wrap(err, "count links failed")
	}
	links, err := l.linkRepo.GetLinks(ctx, limit, sortBy, order)
	if err != nil {
		return nil, 0, errors.Wrap(err, "get links failed")
	}
	return links, total, nil
}
