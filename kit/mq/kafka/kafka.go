package kafka

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/segmentio/kafka-go"
	"github.com/superj80820/shortlink/kit/mq"
	utilKit "github.com/superj80820/shortlink/kit/util"
)

type mqTopic struct {
	brokers []string
	topic   string
	groupID string

	writer    *kafka.Writer
	observers utilKit.GenericSyncMap[mq.Observer, context.CancelFunc]

	lock   sync.Mutex
	wg     sync.WaitGroup
	cancel context.CancelFunc
	doneCh chan struct{}
	errCh  chan error
	err    error
}

var _ mq.MQTopic = (*mqTopic)(nil)

func CreateMQTopic(ctx context.Context, url, topic, groupID string) (mq.MQTopic, error) {
	if url == "" || topic == "" {
		return nil, errors.New("kafka url or topic is empty")
	}

	brokers := strings.Split(url, ",")

	writer := &kafka.Writer{
		Addr:     kafka.TCP(brokers...),
		Topic:    topic,
		Balancer: &kafka.Hash{},
	}

	ctx, cancel := context.WithCancel(ctx)
	m := &mqTopic{
		brokers: brokers,
		topic:   topic,
		groupID: groupID,
		writer:  writer,
		cancel:  cancel,
		doneCh:  make(chan struct{}),
		errCh:   make(chan error),
	}

	go func() {
		select {
		case err := <-m.errCh:
			m.err = err
		case <-ctx.Done():
		}
		cancel()
		close(m.doneCh)
	}()

	return m, nil
}

func (m *mqTopic) Subscribe(key string, notify mq.Notify, options ...mq.ObserverOption) mq.Observer {
	observer := mq.CreateObserver(key, notify, options...)

	readerCtx, readerCancel := context.WithCancel(context.Background())
	m.observers.Store(observer, readerCancel)

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers: m.brokers,
		Topic:   m.topic,
		GroupID: m.groupID + ":" + key,
	})

	m.wg.Add(1)
	go func() {
		defer m.wg.Done()
		defer reader.Close()

		for {
			message, err := reader.ReadMessage(readerCtx)
			if readerCtx.Err() != nil { // expected. context done
				return
			} else if err != nil {
				observer.ErrorHandler(errors.Wrap(err, "read message failed"))
				select {
				case m.errCh <- err:
				default:
				}
				return
			}
			if err := observer.Notify(message.Value); err != nil {
				observer.ErrorHandler(err) // handle error then continue
			}
		}
	}()

	return observer
}

func (m *mqTopic) UnSubscribe(observer mq.Observer) {
	if readerCancel, ok := m.observers.Load(observer); ok {
		readerCancel()
		m.observers.Delete(observer)
	}
	observer.UnSubscribeHook()
}

func (m *mqTopic) Produce(ctx context.Context, message mq.Message) error {
	marshalData, err := message.Marshal()
	if err != nil {
		return errors.Wrap(err, "marshal failed")
	}

	if err := m.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(message.GetKey()),
		Value: marshalData,
	}); err != nil {
		if ctx.Err() != nil { // expected. context done
			return nil
		}
		return errors.Wrap(err, "write messages to kafka failed")
	}

	return nil
}

func (m *mqTopic) Done() <-chan struct{} {
	return m.doneCh
}

func (m *mqTopic) Err() error {
	return m.err
}

func (m *mqTopic) Shutdown() bool {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.cancel()
	m.observers.Range(func(key mq.Observer, readerCancel context.CancelFunc) bool {
		readerCancel()
		return true
	})
	m.writer.Close() //nolint:errcheck

	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return true
	case <-time.After(10 * time.Second):
		return false
	}
}
