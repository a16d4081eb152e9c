package kafka

import (
	"testing"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/GateFlow/config"
)

func TestProducerConfig(t *testing.T) {
	cfg := ProducerConfig()

	assert.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	assert.True(t, cfg.Producer.Return.Successes)
	assert.Equal(t, sarama.CompressionSnappy, cfg.Producer.Compression)
	require.NoError(t, cfg.Validate())
}

func TestNewSyncProducer_RequiresBrokers(t *testing.T) {
	_, err := NewSyncProducer(&config.KafkaConfig{})
	assert.EqualError(t, err, "kafka brokers are not configured")
}

func TestNewGroupReader(t *testing.T) {
	reader := NewGroupReader(&config.KafkaConfig{Brokers: []string{"localhost:9093"}, GroupID: "gate"}, "a", "b")
	defer reader.Close()

	rc := reader.Config()
	assert.Equal(t, "gate", rc.GroupID)
	assert.Equal(t, []string{"a", "b"}, rc.GroupTopics)
}
