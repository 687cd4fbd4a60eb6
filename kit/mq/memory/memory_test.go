package memory

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type testMessage struct {
	payload string
}

func (t *testMessage) GetKey() string {
	return t.payload
}

func (t *testMessage) Marshal() ([]byte, error) {
	return []byte(t.payload), nil
}

func TestMemoryMQ(t *testing.T) {
	ctx := context.Background()

	mqTopic := CreateMemoryMQ(ctx, 100)

	var received int32
	observer := mqTopic.Subscribe("test", func(message []byte) error {
		assert.Equal(t, "message", string(message))
		atomic.AddInt32(&received, 1)
		return nil
	})

	for i := 0; i < 10; i++ {
		assert.Nil(t, mqTopic.Produce(ctx, &testMessage{payload: "message"}))
	}

	assert.Eventually(t, func() bool {
		return atomic.LoadInt32(&received) == 10
	}, time.Second, 10*time.Millisecond)

	mqTopic.UnSubscribe(observer)
	assert.Nil(t, mqTopic.Produce(ctx, &testMessage{payload: "message"}))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(10), atomic.LoadInt32(&received))

	assert.True(t, mqTopic.Shutdown())
}
