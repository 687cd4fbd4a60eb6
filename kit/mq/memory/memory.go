package memory

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"github.com/superj80820/shortlink/kit/mq"
	utilKit "github.com/superj80820/shortlink/kit/util"
)

type memoryMQ struct {
	observers utilKit.GenericSyncMap[mq.Observer, mq.Observer]
	messageCh chan []byte
	doneCh    chan struct{}
	cancel    context.CancelFunc
	err       error
}

var _ mq.MQTopic = (*memoryMQ)(nil)

func CreateMemoryMQ(ctx context.Context, messageChannelBuffer int) mq.MQTopic {
	ctx, cancel := context.WithCancel(ctx)

	m := &memoryMQ{
		messageCh: make(chan []byte, messageChannelBuffer),
		doneCh:    make(chan struct{}),
		cancel:    cancel,
	}

	go func() {
		defer close(m.doneCh)
		for {
			select {
			case message := <-m.messageCh:
				m.observers.Range(func(key, value mq.Observer) bool {
					if err := value.Notify(message); err != nil {
						value.ErrorHandler(err) // handle error then continue
					}
					return true
				})
			case <-ctx.Done():
				return
			}
		}
	}()

	return m
}

func (m *memoryMQ) Subscribe(key string, notify mq.Notify, options ...mq.ObserverOption) mq.Observer {
	observer := mq.CreateObserver(key, notify, options...)
	m.observers.Store(observer, observer)
	return observer
}

func (m *memoryMQ) UnSubscribe(observer mq.Observer) {
	m.observers.Delete(observer)
	observer.UnSubscribeHook()
}

func (m *memoryMQ) Produce(ctx context.Context, message mq.Message) error {
	marshalData, err := message.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal failed")
	}

	select {
	case m.messageCh <- marshalData:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "produce canceled")
	}
}

func (m *memoryMQ) Done() <-chan struct{} {
	return m.doneCh
}

func (m *memoryMQ) Err() error {
	return m.err
}

func (m *memoryMQ) Shutdown() bool {
	m.cancel()

	select {
	case <-m.doneCh:
		return true
	case <-time.After(10 * time.Second):
		return false
	}
}
