package notify

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/encounters/internal/config"
)

type captureSink struct {
	mu  sync.Mutex
	got []Notice
}

func (s *captureSink) Send(n Notice) {
	s.mu.Lock()
	s.got = append(s.got, n)
	s.mu.Unlock()
}

func registeredCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := LoadEmbedded()
	require.NoError(t, err)
	require.NoError(t, c.Register())
	return c
}

func TestBroadcaster_RendersAndFansOut(t *testing.T) {
	c := registeredCatalog(t)

	b := NewBroadcaster(config.MessageConfig{
		EnableChat:         true,
		ChatPrefix:         "[GC]",
		ChatIcon:           76561198000000000,
		EnableToast:        true,
		EnableAnnouncement: false,
	}, c, "en-US")
	at := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	b.clock = func() time.Time { return at }

	sink := &captureSink{}
	b.AddSink(sink)

	b.Broadcast("EventCompleted", "Hard", "[ACE]raider")

	require.Len(t, sink.got, 2)
	assert.Equal(t, ChannelChat, sink.got[0].Channel)
	assert.Equal(t, "[GC] <color=#e7cf85>[ACE]raider</color> has cleared the Hard event.", sink.got[0].Text)
	assert.Equal(t, uint64(76561198000000000), sink.got[0].Icon)
	assert.Equal(t, at, sink.got[0].At)

	assert.Equal(t, ChannelToast, sink.got[1].Channel)
	assert.Equal(t, "<color=#e7cf85>[ACE]raider</color> has cleared the Hard event.", sink.got[1].Text)
	assert.Equal(t, "EventCompleted", sink.got[1].Key)
}

func TestBroadcaster_LocaleAndDefaultPrefix(t *testing.T) {
	c := registeredCatalog(t)

	b := NewBroadcaster(config.MessageConfig{EnableChat: true}, c, "ru-RU")
	sink := &captureSink{}
	b.AddSink(sink)

	b.Broadcast("EventEnded", "Easy")
	require.Len(t, sink.got, 1)
	assert.Equal(t, "<color=#8a916f>Охраняемый груз</color>: Событие Easy завершилось, никто не успел.", sink.got[0].Text)
}

func TestBroadcaster_AllChannelsDisabled(t *testing.T) {
	c := registeredCatalog(t)

	b := NewBroadcaster(config.MessageConfig{}, c, "en-US")
	sink := &captureSink{}
	b.AddSink(sink)

	b.Broadcast("EventEnded", "Easy")
	assert.Empty(t, sink.got)
	assert.Equal(t, "Easy event ended; you were not fast enough, better luck next time!", b.Render("EventEnded", "Easy"))
}

func TestBroadcaster_UnknownLocaleFallsBack(t *testing.T) {
	c := registeredCatalog(t)

	b := NewBroadcaster(config.MessageConfig{}, c, "xx-YY")
	assert.Equal(t, "Easy event ended; you were not fast enough, better luck next time!", b.Render("EventEnded", "Easy"))
}
