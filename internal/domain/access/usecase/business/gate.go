// Package business contains the access gate logic
package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/Conte777/GateFlow/config"
	"github.com/Conte777/GateFlow/internal/domain/access/deps"
	"github.com/Conte777/GateFlow/internal/domain/access/entities"
	accesserrors "github.com/Conte777/GateFlow/internal/domain/access/errors"
	"github.com/Conte777/GateFlow/internal/domain/transport"
	"github.com/Conte777/GateFlow/internal/infrastructure/metrics"
	"github.com/Conte777/GateFlow/pkg/clock"
	pkgerrors "github.com/Conte777/GateFlow/pkg/errors"
)

// Gate decides whether a user may receive content based on channel membership
type Gate struct {
	channels  deps.ChannelLister
	transport deps.MembershipTransport
	clock     clock.Clock
	failOpen  bool
	metrics   *metrics.Metrics
	logger    zerolog.Logger
}

// NewGate creates a new Gate instance
func NewGate(
	channels deps.ChannelLister,
	transport deps.MembershipTransport,
	cfg *config.GateConfig,
	clk clock.Clock,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *Gate {
	return &Gate{
		channels:  channels,
		transport: transport,
		clock:     clk,
		failOpen:  cfg.FailOpen,
		metrics:   m,
		logger:    logger.With().Str("component", "access-gate").Logger(),
	}
}

// Check inspects every required channel in registry order. Channels the bot
// cannot inspect are excused when the gate fails open and count as unjoined
// otherwise.
func (g *Gate) Check(ctx context.Context, userID int64) (*entities.Decision, error) {
	decision := &entities.Decision{}

	for _, channelID := range g.channels.ListRequired(ctx) {
		membership, err := g.lookup(ctx, channelID, userID)
		switch {
		case err == nil:
			if !membership.Joined() {
				decision.Unjoined = append(decision.Unjoined, channelID)
			}
		case errors.Is(err, transport.ErrNotParticipant):
			decision.Unjoined = append(decision.Unjoined, channelID)
		case errors.Is(err, accesserrors.ErrRateLimitExhausted),
			errors.Is(err, context.Canceled),
			errors.Is(err, context.DeadlineExceeded):
			return nil, err
		default:
			g.metrics.RecordGateConfigFault(g.failOpen)
			g.logger.Warn().
				Err(err).
				Int64("channel_id", channelID).
				Int64("user_id", userID).
				Bool("fail_open", g.failOpen).
				Msg("Cannot verify channel membership, check bot admin rights")

			if g.failOpen {
				decision.Excused = append(decision.Excused, channelID)
			} else {
				decision.Unjoined = append(decision.Unjoined, channelID)
			}
		}
	}

	decision.Allowed = len(decision.Unjoined) == 0
	g.metrics.RecordGateDecision(decision.Allowed)

	g.logger.Debug().
		Int64("user_id", userID).
		Bool("allowed", decision.Allowed).
		Ints64("unjoined", decision.Unjoined).
		Ints64("excused", decision.Excused).
		Msg("Gate decision")

	return decision, nil
}

// lookup queries a membership, honouring one platform requested wait
func (g *Gate) lookup(ctx context.Context, channelID, userID int64) (*entities.Membership, error) {
	for attempt := 0; ; attempt++ {
		membership, err := g.transport.GetMembership(ctx, channelID, userID)
		rl, limited := pkgerrors.AsRateLimitError(err)
		if !limited {
			return membership, err
		}
		if attempt > 0 {
			return nil, fmt.Errorf("channel %d: %w", channelID, accesserrors.ErrRateLimitExhausted)
		}

		g.metrics.RecordRateLimitWait("gate")
		g.logger.Warn().
			Int64("channel_id", channelID).
			Dur("retry_after", rl.RetryAfter).
			Msg("Membership lookup rate limited, waiting")

		if err := g.clock.Sleep(ctx, rl.RetryAfter); err != nil {
			return nil, err
		}
	}
}

// BuildPrompt resolves join links for the unjoined channels. Channels without
// a usable link are left out of the prompt.
func (g *Gate) BuildPrompt(ctx context.Context, unjoined []int64, contentID string) *entities.Prompt {
	prompt := &entities.Prompt{ContentID: contentID}

	for _, channelID := range unjoined {
		target, err := g.transport.ResolveJoinTarget(ctx, channelID)
		if err != nil || target == nil || target.URL == "" {
			g.logger.Warn().
				Err(err).
				Int64("channel_id", channelID).
				Msg("No join link for channel, omitting from prompt")
			prompt.Omitted = append(prompt.Omitted, channelID)
			continue
		}
		prompt.Targets = append(prompt.Targets, *target)
	}

	return prompt
}
