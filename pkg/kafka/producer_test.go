package kafka

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProducer(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092", "localhost:9093"}})

	require.NotNil(t, p)
	assert.Equal(t, []string{"localhost:9092", "localhost:9093"}, p.brokers)
	assert.Empty(t, p.writers)
}

func TestWriterFor(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})

	w1 := p.writerFor("accrual-events")
	require.NotNil(t, w1)

	// Same topic reuses the writer; a different topic gets its own.
	assert.Same(t, w1, p.writerFor("accrual-events"))
	assert.NotSame(t, w1, p.writerFor("accrual-dlq"))
	assert.Len(t, p.writers, 2)
}

func TestToKafkaMessage(t *testing.T) {
	km := toKafkaMessage(Message{
		Key:   []byte("loan-123"),
		Value: []byte(`{"interest_amount":"11095.89"}`),
		Headers: map[string]string{
			"event_type": "accrual.interest_accrued",
		},
	})

	assert.Equal(t, "loan-123", string(km.Key))
	assert.Equal(t, `{"interest_amount":"11095.89"}`, string(km.Value))
	require.Len(t, km.Headers, 1)
	assert.Equal(t, "event_type", km.Headers[0].Key)
	assert.Equal(t, "accrual.interest_accrued", string(km.Headers[0].Value))
}

func TestProducerClose(t *testing.T) {
	p := NewProducer(Config{Brokers: []string{"localhost:9092"}})
	_ = p.writerFor("accrual-events")
	_ = p.writerFor("accrual-dlq")

	require.NoError(t, p.Close())
	assert.Empty(t, p.writers)
}
