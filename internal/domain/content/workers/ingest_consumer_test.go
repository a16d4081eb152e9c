package workers

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/GateFlow/config"
)

func TestIngestConsumer_StopTwice(t *testing.T) {
	c := NewIngestConsumer(&config.KafkaConfig{Brokers: []string{"127.0.0.1:1"}, GroupID: "gate-test"}, nil, zerolog.Nop())

	require.NoError(t, c.Stop())
	assert.NotPanics(t, func() { _ = c.Stop() })
}
