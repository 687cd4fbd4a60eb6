package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	redisCacheKit "github.com/superj80820/shortlink/kit/cache/redis"
	redisContainer "github.com/superj80820/shortlink/kit/testing/redis/container"
)

func TestLinkCacheRepo(t *testing.T) {
	ctx := context.Background()

	redisInstance, err := redisContainer.CreateRedis(ctx)
	assert.Nil(t, err)
	defer redisInstance.Terminate(ctx)

	cache, err := redisCacheKit.CreateCache(redisInstance.GetURI(), "", 0)
	assert.Nil(t, err)

	linkCacheRepo := CreateLinkCacheRepo(cache)

	_, exists, err := linkCacheRepo.GetURL(ctx, "abc12345")
	assert.Nil(t, err)
	assert.False(t, exists)

	assert.Nil(t, linkCacheRepo.SetURL(ctx, "abc12345", "https://example.com/docs", 10*time.Second))
	url, exists, err := linkCacheRepo.GetURL(ctx, "abc12345")
	assert.Nil(t, err)
	assert.True(t, exists)
	assert.Equal(t, "https://example.com/docs", url)

	assert.Nil(t, linkCacheRepo.DeleteURL(ctx, "abc12345"))
	_, exists, err = linkCacheRepo.GetURL(ctx, "abc12345")
	assert.Nil(t, err)
	assert.False(t, exists)

	assert.Nil(t, linkCacheRepo.SetURL(ctx, "ttl00001", "https://example.com", time.Second))
	assert.Eventually(t, func() bool {
		_, exists, err := linkCacheRepo.GetURL(ctx, "ttl00001")
		return err == nil && !exists
	}, 5*time.Second, 100*time.Millisecond)
}
