package usecase

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
	loggerKit "github.com/superj80820/shortlink/kit/logger"
)

const (
	clickConsumeKey      = "click-accountant"
	maxIncrementAttempts = 3
	incrementRetryDelay  = 100 * time.Millisecond
)

type clickAccountantUseCase struct {
	clickEventRepo domain.ClickEventRepo
	linkRepo       domain.LinkRepo
	logger         *loggerKit.Logger
}

func CreateClickAccountantUseCase(
	clickEventRepo domain.ClickEventRepo,
	linkRepo domain.LinkRepo,
	logger *loggerKit.Logger,
) (domain.ClickAccountantUseCase, error) {
	if clickEventRepo == nil || linkRepo == nil || logger == nil {
		return nil, errors.New("create click accountant use case failed")
	}
	return &clickAccountantUseCase{
		clickEventRepo: clickEventRepo,
		linkRepo:       linkRepo,
		logger:         logger,
	}, nil
}

func (c *clickAccountantUseCase) Process(ctx context.Context) {
	c.clickEventRepo.ConsumeClickEvents(ctx, clickConsumeKey, func(clickEvent *domain.ClickEvent) error {
		var err error
		for attempt := 1; attempt <= maxIncrementAttempts; attempt++ {
			err = c.linkRepo.IncrementClicks(ctx, clickEvent.Slug)
			if err == nil {
				return nil
			}
			if errors.Is(err, domain.ErrLinkNotFound) {
				break
			}
			time.Sleep(incrementRetryDelay)
		}
		// a lost click is an acceptable degradation. never poison the consumer
		c.logger.With(
			loggerKit.String("slug", clickEvent.Slug),
			loggerKit.Time("clicked-at", clickEvent.ClickedAt),
		).Error("increment clicks failed, click lost: " + err.Error())
		return nil
	})
}

func (c *clickAccountantUseCase) Stop(ctx context.Context) {
	c.clickEventRepo.StopConsume(ctx, clickConsumeKey)
}
