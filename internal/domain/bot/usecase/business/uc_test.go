package business

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Conte777/GateFlow/config"
	accessEntities "github.com/Conte777/GateFlow/internal/domain/access/entities"
	"github.com/Conte777/GateFlow/internal/domain/bot/entities"
	boterrors "github.com/Conte777/GateFlow/internal/domain/bot/errors"
	channelEntities "github.com/Conte777/GateFlow/internal/domain/channel/entities"
	contentEntities "github.com/Conte777/GateFlow/internal/domain/content/entities"
	deliveryEntities "github.com/Conte777/GateFlow/internal/domain/delivery/entities"
)

const (
	adminID          = int64(1001)
	userID           = int64(42)
	mandatoryChannel = int64(-100)
	contentChannel   = int64(-300)
)

type fakeGate struct {
	decision *accessEntities.Decision
	err      error
	prompted []int64
}

func (f *fakeGate) Check(context.Context, int64) (*accessEntities.Decision, error) {
	return f.decision, f.err
}

func (f *fakeGate) BuildPrompt(_ context.Context, unjoined []int64, contentID string) *accessEntities.Prompt {
	f.prompted = unjoined
	return &accessEntities.Prompt{ContentID: contentID}
}

type fakeDeliverer struct {
	calls []string
}

func (f *fakeDeliverer) Deliver(_ context.Context, _ int64, contentID string) *deliveryEntities.Result {
	f.calls = append(f.calls, contentID)
	return &deliveryEntities.Result{Outcome: deliveryEntities.OutcomeDelivered, ContentID: contentID}
}

type fakeRegistry struct {
	channels []channelEntities.RequiredChannel
	added    map[int64]string
}

func (f *fakeRegistry) Mandatory() int64 { return mandatoryChannel }

func (f *fakeRegistry) Add(_ context.Context, channelID int64, name string) error {
	if f.added == nil {
		f.added = map[int64]string{}
	}
	f.added[channelID] = name
	return nil
}

func (f *fakeRegistry) Remove(_ context.Context, channelID int64) (bool, error) {
	return channelID == -200, nil
}

func (f *fakeRegistry) SetActive(_ context.Context, channelID int64, _ bool) (bool, error) {
	return channelID == -200, nil
}

func (f *fakeRegistry) List(context.Context) ([]channelEntities.RequiredChannel, error) {
	return f.channels, nil
}

type fakeCatalog struct {
	ingested []*contentEntities.ContentDescriptor
	removed  []string
}

func (f *fakeCatalog) Ingest(_ context.Context, c *contentEntities.ContentDescriptor) (*contentEntities.ContentDescriptor, error) {
	if c.ID == "" {
		c.ID = "gen00001"
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	f.ingested = append(f.ingested, c)
	return c, nil
}

func (f *fakeCatalog) Remove(_ context.Context, contentID string) (bool, error) {
	f.removed = append(f.removed, contentID)
	return true, nil
}

func (f *fakeCatalog) Counts(context.Context) (*contentEntities.Counts, error) {
	return &contentEntities.Counts{Videos: 3, Links: 2, Total: 5}, nil
}

type fakeLedger struct{}

func (fakeLedger) Stats(context.Context) (*deliveryEntities.Stats, error) {
	return &deliveryEntities.Stats{Deliveries: 10, UniqueUsers: 4, UniqueContents: 5, AvgPerUser: 2.5}, nil
}

type fakeChats struct {
	chats map[int64]*entities.ChatInfo
}

func (f *fakeChats) DescribeChat(_ context.Context, chatID int64) (*entities.ChatInfo, error) {
	if info, ok := f.chats[chatID]; ok {
		return info, nil
	}
	return nil, errors.New("chat not found")
}

type fakeNotifier struct {
	sent []*deliveryEntities.OutgoingMessage
}

func (f *fakeNotifier) SendMessage(_ context.Context, msg *deliveryEntities.OutgoingMessage) (int, error) {
	f.sent = append(f.sent, msg)
	return len(f.sent), nil
}

type fixture struct {
	uc        *UseCase
	gate      *fakeGate
	deliverer *fakeDeliverer
	registry  *fakeRegistry
	catalog   *fakeCatalog
	chats     *fakeChats
	notifier  *fakeNotifier
	cfg       *config.TelegramConfig
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	f := &fixture{
		gate:      &fakeGate{decision: &accessEntities.Decision{Allowed: true}},
		deliverer: &fakeDeliverer{},
		registry:  &fakeRegistry{},
		catalog:   &fakeCatalog{},
		chats: &fakeChats{chats: map[int64]*entities.ChatInfo{
			mandatoryChannel: {ID: mandatoryChannel, Title: "Official", Username: "official"},
			-200:             {ID: -200, Title: "Extra", Username: "extra"},
		}},
		notifier: &fakeNotifier{},
		cfg: &config.TelegramConfig{
			AdminID:             adminID,
			ContentChannelID:    contentChannel,
			ForceJoinChannelID:  mandatoryChannel,
			ChannelUsername:     "@official",
			EnableNotifications: true,
		},
	}
	f.uc = NewUseCase(f.gate, f.deliverer, f.registry, f.catalog, fakeLedger{}, f.chats, f.notifier, f.cfg, zerolog.Nop())
	return f
}

func TestRequestContent_DeliversWhenAllowed(t *testing.T) {
	f := newFixture(t)

	reply, err := f.uc.RequestContent(context.Background(), userID, "abc123")
	require.NoError(t, err)

	assert.True(t, reply.Granted())
	require.NotNil(t, reply.Result)
	assert.Equal(t, deliveryEntities.OutcomeDelivered, reply.Result.Outcome)
	assert.Equal(t, []string{"abc123"}, f.deliverer.calls)
}

func TestRequestContent_PromptsWhenUnjoined(t *testing.T) {
	f := newFixture(t)
	f.gate.decision = &accessEntities.Decision{Unjoined: []int64{mandatoryChannel}}

	reply, err := f.uc.RequestContent(context.Background(), userID, "abc123")
	require.NoError(t, err)

	assert.False(t, reply.Granted())
	require.NotNil(t, reply.Prompt)
	assert.Equal(t, "abc123", reply.Prompt.ContentID)
	assert.Equal(t, []int64{mandatoryChannel}, f.gate.prompted)
	assert.Empty(t, f.deliverer.calls)
}

func TestRequestContent_GateErrorIsReturned(t *testing.T) {
	f := newFixture(t)
	f.gate.err = context.DeadlineExceeded

	_, err := f.uc.RequestContent(context.Background(), userID, "abc123")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Empty(t, f.deliverer.calls)
}

func TestRecheck_WithoutContentOnlyChecks(t *testing.T) {
	f := newFixture(t)

	reply, err := f.uc.Recheck(context.Background(), userID, "")
	require.NoError(t, err)

	assert.True(t, reply.Granted())
	assert.Nil(t, reply.Result)
	assert.Empty(t, f.deliverer.calls)
}

func TestAdminOperations_RequireAdmin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.AddChannel(ctx, userID, -200)
	assert.ErrorIs(t, err, boterrors.ErrUnauthorized)

	_, err = f.uc.RemoveChannel(ctx, userID, -200)
	assert.ErrorIs(t, err, boterrors.ErrUnauthorized)

	_, err = f.uc.Statistics(ctx, userID)
	assert.ErrorIs(t, err, boterrors.ErrUnauthorized)

	_, err = f.uc.DeleteContent(ctx, userID, "abc123")
	assert.ErrorIs(t, err, boterrors.ErrUnauthorized)

	assert.Empty(t, f.registry.added)
	assert.Empty(t, f.catalog.removed)
}

func TestAddChannel_UsesChatTitle(t *testing.T) {
	f := newFixture(t)

	info, err := f.uc.AddChannel(context.Background(), adminID, -200)
	require.NoError(t, err)

	assert.Equal(t, "Extra", info.Title)
	assert.Equal(t, map[int64]string{-200: "Extra"}, f.registry.added)
}

func TestAddChannel_InaccessibleChannel(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.AddChannel(context.Background(), adminID, -999)
	assert.ErrorIs(t, err, boterrors.ErrChannelInaccessible)
	assert.Empty(t, f.registry.added)
}

func TestListChannels(t *testing.T) {
	f := newFixture(t)
	f.registry.channels = []channelEntities.RequiredChannel{
		{ChannelID: -200, DisplayName: "old name", Active: true},
		{ChannelID: -999, DisplayName: "gone", Active: false},
	}

	listing, err := f.uc.ListChannels(context.Background(), adminID)
	require.NoError(t, err)

	assert.Equal(t, "Official", listing.Mandatory.Title)
	require.Len(t, listing.Extra, 2)
	assert.True(t, listing.Extra[0].Reachable)
	assert.Equal(t, "Extra", listing.Extra[0].DisplayName)
	assert.False(t, listing.Extra[1].Reachable)
	assert.Equal(t, "gone", listing.Extra[1].DisplayName)
}

func TestStatistics(t *testing.T) {
	f := newFixture(t)
	f.registry.channels = []channelEntities.RequiredChannel{
		{ChannelID: -200, Active: true},
		{ChannelID: -201, Active: false},
	}

	stats, err := f.uc.Statistics(context.Background(), adminID)
	require.NoError(t, err)

	assert.Equal(t, int64(3), stats.Videos)
	assert.Equal(t, int64(5), stats.Contents)
	assert.Equal(t, int64(10), stats.Deliveries)
	assert.Equal(t, 2.5, stats.AvgPerUser)
	assert.Equal(t, 2, stats.ExtraChannels)
	assert.Equal(t, 1, stats.ActiveChannels)
	assert.Equal(t, mandatoryChannel, stats.MandatoryChannel)
}

func TestDeleteContent_RejectsEmptyID(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.DeleteContent(context.Background(), adminID, "  ")
	assert.ErrorIs(t, err, boterrors.ErrInvalidArgument)
}

func TestRegisterTestContent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	video, err := f.uc.RegisterTestContent(ctx, adminID, "video", "123")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(video.ID, "test_"))
	assert.Equal(t, &contentEntities.MediaRef{ChannelID: contentChannel, MessageID: 123}, video.Media)

	link, err := f.uc.RegisterTestContent(ctx, adminID, "LINK", "https://youtube.com/watch?v=x")
	require.NoError(t, err)
	assert.Equal(t, contentEntities.ContentTypeLink, link.Type)

	_, err = f.uc.RegisterTestContent(ctx, adminID, "video", "abc")
	assert.ErrorIs(t, err, boterrors.ErrInvalidArgument)

	_, err = f.uc.RegisterTestContent(ctx, adminID, "audio", "x")
	assert.ErrorIs(t, err, boterrors.ErrInvalidArgument)
}

func TestIngestChannelPost(t *testing.T) {
	tests := []struct {
		name     string
		post     *entities.ChannelPost
		wantType contentEntities.ContentType
		ignored  bool
	}{
		{
			name:     "video",
			post:     &entities.ChannelPost{ChannelID: contentChannel, MessageID: 7, HasMedia: true, Caption: "Episode 1\nmore"},
			wantType: contentEntities.ContentTypeVideo,
		},
		{
			name:     "link",
			post:     &entities.ChannelPost{ChannelID: contentChannel, MessageID: 8, URLs: []string{"https://a.example", "https://b.example"}},
			wantType: contentEntities.ContentTypeLink,
		},
		{
			name:    "plain text",
			post:    &entities.ChannelPost{ChannelID: contentChannel, MessageID: 9, Caption: "hello"},
			ignored: true,
		},
		{
			name:    "other channel",
			post:    &entities.ChannelPost{ChannelID: -555, MessageID: 10, HasMedia: true},
			ignored: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)

			got, err := f.uc.IngestChannelPost(context.Background(), tt.post)
			require.NoError(t, err)

			if tt.ignored {
				assert.Nil(t, got)
				assert.Empty(t, f.catalog.ingested)
				assert.Empty(t, f.notifier.sent)
				return
			}

			require.NotNil(t, got)
			assert.Equal(t, tt.wantType, got.Type)
			require.Len(t, f.notifier.sent, 1)
			assert.Equal(t, adminID, f.notifier.sent[0].ChatID)
			assert.Contains(t, f.notifier.sent[0].Text, got.ID)
		})
	}
}

func TestIngestChannelPost_FirstLinkAndCaptionTitle(t *testing.T) {
	f := newFixture(t)

	got, err := f.uc.IngestChannelPost(context.Background(), &entities.ChannelPost{
		ChannelID: contentChannel,
		MessageID: 8,
		Caption:   "  Trailer  \nwatch now",
		URLs:      []string{"https://a.example", "https://b.example"},
	})
	require.NoError(t, err)

	assert.Equal(t, "https://a.example", got.URL)
	assert.Equal(t, "Trailer", got.Title)
}

func TestIngestChannelPost_NotificationsDisabled(t *testing.T) {
	f := newFixture(t)
	f.cfg.EnableNotifications = false

	_, err := f.uc.IngestChannelPost(context.Background(), &entities.ChannelPost{ChannelID: contentChannel, MessageID: 7, HasMedia: true})
	require.NoError(t, err)

	assert.Len(t, f.catalog.ingested, 1)
	assert.Empty(t, f.notifier.sent)
}
