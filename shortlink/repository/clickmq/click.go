package clickmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/domain"
	loggerKit "github.com/superj80820/shortlink/kit/logger"
	"github.com/superj80820/shortlink/kit/mq"
	utilKit "github.com/superj80820/shortlink/kit/util"
)

type mqMessage struct {
	Slug      string    `json:"slug"`
	ClickedAt time.Time `json:"clicked_at"`
}

var _ mq.Message = (*mqMessage)(nil)

func (m *mqMessage) GetKey() string {
	return m.Slug
}

func (m *mqMessage) Marshal() ([]byte, error) {
	marshalData, err := json.Marshal(m)
	if err != nil {
		return nil, errors.Wrap(err, "marshal failed")
	}
	return marshalData, nil
}

type clickEventRepo struct {
	clickMQTopic mq.MQTopic
	logger       *loggerKit.Logger
	observers    utilKit.GenericSyncMap[string, mq.Observer]
}

func CreateClickEventRepo(clickMQTopic mq.MQTopic, logger *loggerKit.Logger) domain.ClickEventRepo {
	return &clickEventRepo{
		clickMQTopic: clickMQTopic,
		logger:       logger,
	}
}

func (c *clickEventRepo) ProduceClickEvent(ctx context.Context, slug string, clickedAt time.Time) error {
	if err := c.clickMQTopic.Produce(ctx, &mqMessage{
		Slug:      slug,
		ClickedAt: clickedAt,
	}); err != nil {
		return errors.Wrap(err, "produce click event failed")
	}
	return nil
}

func (c *clickEventRepo) ConsumeClickEvents(ctx context.Context, key string, notify func(clickEvent *domain.ClickEvent) error) {
	observer := c.clickMQTopic.Subscribe(key, func(message []byte) error {
		var mqMessage mqMessage
		if err := json.Unmarshal(message, &mqMessage); err != nil {
			return errors.Wrap(err, "unmarshal failed")
		}

		if err := notify(&domain.ClickEvent{
			Slug:      mqMessage.Slug,
			ClickedAt: mqMessage.ClickedAt,
		}); err != nil {
			return errors.Wrap(err, "notify failed")
		}
		return nil
	},
		mq.AddErrorHandler(func(err error) {
			c.logger.With(loggerKit.String("key", key)).Error("consume click event failed: " + err.Error())
		}),
		mq.AddUnSubscribeHook(func() error {
			c.logger.With(loggerKit.String("key", key)).Info("click event consumer stopped")
			return nil
		}),
	)
	c.observers.Store(key, observer)
}

func (c *clickEventRepo) StopConsume(ctx context.Context, key string) {
	observer, ok := c.observers.Load(key)
	if !ok {
		return
	}
	c.clickMQTopic.UnSubscribe(observer)
	c.observers.Delete(key)
}
