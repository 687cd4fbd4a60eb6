package usecase

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/superj80820/shortlink/domain"
	redisCacheKit "github.com/superj80820/shortlink/kit/cache/redis"
	loggerKit "github.com/superj80820/shortlink/kit/logger"
	memoryMQKit "github.com/superj80820/shortlink/kit/mq/memory"
	ormKit "github.com/superj80820/shortlink/kit/orm"
	mysqlContainer "github.com/superj80820/shortlink/kit/testing/mysql/container"
	redisContainer "github.com/superj80820/shortlink/kit/testing/redis/container"
	utilKit "github.com/superj80820/shortlink/kit/util"
	"github.com/superj80820/shortlink/shortlink/repository/clickmq"
	mysqlRepo "github.com/superj80820/shortlink/shortlink/repository/mysql"
	redisRepo "github.com/superj80820/shortlink/shortlink/repository/redis"
)

type testSetup struct {
	linkRepo      domain.LinkRepo
	linkCacheRepo domain.LinkCacheRepo
	linkUseCase   domain.LinkUseCase
	teardown      func()
}

func createTestSetup(t *testing.T, ctx context.Context) *testSetup {
	mysqlDB, err := mysqlContainer.CreateMySQL(ctx, mysqlContainer.UseSQLSchema(filepath.Join("..", "repository", "mysql", "schema.sql")))
	assert.Nil(t, err)
	redisInstance, err := redisContainer.CreateRedis(ctx)
	assert.Nil(t, err)

	orm, err := ormKit.CreateDB(ormKit.UseMySQL(mysqlDB.GetURI()))
	assert.Nil(t, err)
	cache, err := redisCacheKit.CreateCache(redisInstance.GetURI(), "", 0)
	assert.Nil(t, err)
	logger, err := loggerKit.NewLogger("./go.log", loggerKit.InfoLevel, loggerKit.NoStdout)
	assert.Nil(t, err)

	linkRepo := mysqlRepo.CreateLinkRepo(orm)
	linkCacheRepo := redisRepo.CreateLinkCacheRepo(cache)
	clickEventRepo := clickmq.CreateClickEventRepo(memoryMQKit.CreateMemoryMQ(ctx, 100), logger)

	linkUseCase, err := CreateLinkUseCase(linkRepo, linkCacheRepo, clickEventRepo, logger)
	assert.Nil(t, err)
	clickAccountantUseCase, err := CreateClickAccountantUseCase(clickEventRepo, linkRepo, logger)
	assert.Nil(t, err)
	clickAccountantUseCase.Process(ctx)

	return &testSetup{
		linkRepo:      linkRepo,
		linkCacheRepo: linkCacheRepo,
		linkUseCase:   linkUseCase,
		teardown: func() {
			assert.Nil(t, redisInstance.Terminate(ctx))
			assert.Nil(t, mysqlDB.Terminate(ctx))
		},
	}
}

func TestCreateLink(t *testing.T) {
	ctx := context.Background()
	setup := createTestSetup(t, ctx)
	defer setup.teardown()

	link, err := setup.linkUseCase.CreateLink(ctx, "https://example.com/docs", nil)
	assert.Nil(t, err)
	assert.Len(t, link.Slug, 8)
	assert.Equal(t, int64(0), link.Clicks)
	assert.True(t, link.IsActive)
	assert.Nil(t, link.ExpiresAt)

	// a create warms the cache
	cachedURL, exists, err := setup.linkCacheRepo.GetURL(ctx, link.Slug)
	assert.Nil(t, err)
	assert.True(t, exists)
	assert.Equal(t, "https://example.com/docs", cachedURL)

	_, err = setup.linkUseCase.CreateLink(ctx, "not-a-url", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidURL)
	_, err = setup.linkUseCase.CreateLink(ctx, "/relative/path", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidURL)
	_, err = setup.linkUseCase.CreateLink(ctx, "", nil)
	assert.ErrorIs(t, err, domain.ErrInvalidURL)

	pastExpiresAt := time.Now().Add(-time.Hour)
	_, err = setup.linkUseCase.CreateLink(ctx, "https://example.com", &pastExpiresAt)
	assert.ErrorIs(t, err, domain.ErrExpiredURL)
}

func TestResolve(t *testing.T) {
	ctx := context.Background()
	setup := createTestSetup(t, ctx)
	defer setup.teardown()

	_, err := setup.linkUseCase.Resolve(ctx, "missing1")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)

	link, err := setup.linkUseCase.CreateLink(ctx, "https://example.com/docs", nil)
	assert.Nil(t, err)

	// evict so the first resolve goes to the store
	assert.Nil(t, setup.linkCacheRepo.DeleteURL(ctx, link.Slug))

	resolveResult, err := setup.linkUseCase.Resolve(ctx, link.Slug)
	assert.Nil(t, err)
	assert.Equal(t, "https://example.com/docs", resolveResult.URL)
	assert.True(t, resolveResult.ShouldCountClick)
	assert.Nil(t, setup.linkUseCase.IncrementClicks(ctx, link.Slug))

	// the miss populated the cache, so the second resolve hits and counts
	// through the click-event topic
	resolveResult, err = setup.linkUseCase.Resolve(ctx, link.Slug)
	assert.Nil(t, err)
	assert.Equal(t, "https://example.com/docs", resolveResult.URL)
	assert.False(t, resolveResult.ShouldCountClick)

	assert.Eventually(t, func() bool {
		stats, err := setup.linkUseCase.GetStats(ctx, link.Slug)
		return err == nil && stats.Clicks == 2
	}, 10*time.Second, 100*time.Millisecond)
}

func TestResolveDeactivatedAndExpired(t *testing.T) {
	ctx := context.Background()
	setup := createTestSetup(t, ctx)
	defer setup.teardown()

	link, err := setup.linkUseCase.CreateLink(ctx, "https://example.com/docs", nil)
	assert.Nil(t, err)

	assert.Nil(t, setup.linkUseCase.Deactivate(ctx, link.Slug))

	// deactivation evicted the cache entry, so the resolve reaches the store
	_, err = setup.linkUseCase.Resolve(ctx, link.Slug)
	assert.ErrorIs(t, err, domain.ErrLinkDeactivated)

	assert.ErrorIs(t, setup.linkUseCase.Deactivate(ctx, "missing1"), domain.ErrLinkNotFound)

	// an expired row surfaces as expired, not found
	pastExpiresAt := time.Now().Add(-time.Hour)
	assert.Nil(t, setup.linkRepo.InsertLink(ctx, &domain.Link{
		ID:        utilKit.GetSnowflakeIDInt64(),
		Slug:      "expired1",
		URL:       "https://example.com/old",
		IsActive:  true,
		ExpiresAt: &pastExpiresAt,
		CreatedAt: time.Now(),
	}))
	_, err = setup.linkUseCase.Resolve(ctx, "expired1")
	assert.ErrorIs(t, err, domain.ErrLinkExpired)

	// stats stay readable for deactivated and expired links
	stats, err := setup.linkUseCase.GetStats(ctx, link.Slug)
	assert.Nil(t, err)
	assert.False(t, stats.IsActive)
	_, err = setup.linkUseCase.GetStats(ctx, "missing1")
	assert.ErrorIs(t, err, domain.ErrLinkNotFound)
}

func TestResolveStaleCacheHit(t *testing.T) {
	ctx := context.Background()
	setup := createTestSetup(t, ctx)
	defer setup.teardown()

	link, err := setup.linkUseCase.CreateLink(ctx, "https://example.com/docs", nil)
	assert.Nil(t, err)
	assert.Nil(t, setup.linkUseCase.Deactivate(ctx, link.Slug))

	// a cache entry surviving deactivation keeps redirecting until its ttl
	// elapses, without the active check
	assert.Nil(t, setup.linkCacheRepo.SetURL(ctx, link.Slug, "https://example.com/docs", 10*time.Second))
	resolveResult, err := setup.linkUseCase.Resolve(ctx, link.Slug)
	assert.Nil(t, err)
	assert.Equal(t, "https://example.com/docs", resolveResult.URL)
	assert.False(t, resolveResult.ShouldCountClick)

	// once the entry is gone the store is authoritative again
	assert.Nil(t, setup.linkCacheRepo.DeleteURL(ctx, link.Slug))
	_, err = setup.linkUseCase.Resolve(ctx, link.Slug)
	assert.ErrorIs(t, err, domain.ErrLinkDeactivated)
}

func TestListLinks(t *testing.T) {
	ctx := context.Background()
	setup := createTestSetup(t, ctx)
	defer setup.teardown()

	for i := 0; i < 3; i++ {
		_, err := setup.linkUseCase.CreateLink(ctx, "https://example.com/docs", nil)
		assert.Nil(t, err)
	}

	links, total, err := setup.linkUseCase.ListLinks(ctx, 2, domain.CreatedAtLinkSortByEnum, domain.DESCSortOrderByEnum)
	assert.Nil(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, links, 2)

	_, _, err = setup.linkUseCase.ListLinks(ctx, 0, domain.CreatedAtLinkSortByEnum, domain.DESCSortOrderByEnum)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
	_, _, err = setup.linkUseCase.ListLinks(ctx, 1001, domain.CreatedAtLinkSortByEnum, domain.DESCSortOrderByEnum)
	assert.ErrorIs(t, err, domain.ErrInvalidLimit)
}
