package redis

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
	redisCacheKit "github.com/superj80820/shortlink/kit/cache/redis"
)

const linkCacheKeyPrefix = "s:"

type linkCacheRepository struct {
	cache *redisCacheKit.Cache
}

func CreateLinkCacheRepo(cache *redisCacheKit.Cache) domain.LinkCacheRepo {
	return &linkCacheRepository{
		cache: cache,
	}
}

func (l *linkCacheRepository) GetURL(ctx context.Context, slug string) (string, bool, error) {
	url, exists, err := l.cache.Get(ctx, linkCacheKeyPrefix+slug)
	if err != nil {
		return "", false, errors.Wrap(err, "get cache failed")
	}
	return url, exists, nil
}

func (l *linkCacheRepository) SetURL(ctx context.Context, slug, url string, ttl time.Duration) error {
	if err := l.cache.Set(ctx, linkCacheKeyPrefix+slug, url, ttl); err != nil {
		return errors.Wrap(err, "set cache failed")
	}
	return nil
}

func (l *linkCacheRepository) DeleteURL(ctx context.Context, slug string) error {
	if err := l.cache.Del(ctx, linkCacheKeyPrefix+slug); err != nil {
		return errors.Wrap(err, "del cache failed")
	}
	return nil
}
