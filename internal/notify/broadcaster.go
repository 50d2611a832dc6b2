// Package notify formats encounter announcements and fans them out to
// connected observers.
package notify

import (
	"log/slog"
	"sync"
	"time"

	"golang.org/x/text/message"

	"github.com/udisondev/encounters/internal/config"
)

// Channel is where a notice is shown to players.
type Channel string

const (
	ChannelChat         Channel = "chat"
	ChannelToast        Channel = "toast"
	ChannelAnnouncement Channel = "announcement"
)

// Notice is one rendered message.
type Notice struct {
	Channel Channel   `json:"channel"`
	Key     string    `json:"key"`
	Text    string    `json:"text"`
	Icon    uint64    `json:"icon,omitempty"`
	At      time.Time `json:"at"`
}

// Sink receives rendered notices. Send must not block.
type Sink interface {
	Send(n Notice)
}

// Broadcaster implements the engine notifier on top of the message catalog.
type Broadcaster struct {
	cfg     config.MessageConfig
	printer *message.Printer
	prefix  string
	clock   func() time.Time

	mu    sync.RWMutex
	sinks []Sink
}

// NewBroadcaster creates a broadcaster for one locale. The catalog must be registered.
func NewBroadcaster(cfg config.MessageConfig, catalog *Catalog, locale string) *Broadcaster {
	b := &Broadcaster{
		cfg:     cfg,
		printer: catalog.Printer(locale),
		clock:   time.Now,
	}
	if cfg.ChatPrefix != "" {
		b.prefix = cfg.ChatPrefix + " "
	} else if p, ok := catalog.Message(locale, "Prefix"); ok {
		b.prefix = p
	}
	return b
}

// AddSink attaches a notice consumer.
func (b *Broadcaster) AddSink(s Sink) {
	b.mu.Lock()
	b.sinks = append(b.sinks, s)
	b.mu.Unlock()
}

// Render formats a message key in the broadcaster locale.
func (b *Broadcaster) Render(key string, args ...any) string {
	return b.printer.Sprintf(key, args...)
}

// Broadcast renders key and delivers it on every enabled channel.
func (b *Broadcaster) Broadcast(key string, args ...any) {
	text := b.Render(key, args...)
	now := b.clock()

	var out []Notice
	if b.cfg.EnableChat {
		out = append(out, Notice{Channel: ChannelChat, Key: key, Text: b.prefix + text, Icon: b.cfg.ChatIcon, At: now})
	}
	if b.cfg.EnableToast {
		out = append(out, Notice{Channel: ChannelToast, Key: key, Text: text, At: now})
	}
	if b.cfg.EnableAnnouncement {
		out = append(out, Notice{Channel: ChannelAnnouncement, Key: key, Text: text, At: now})
	}

	slog.Info("broadcast", "key", key, "text", text, "channels", len(out))

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, n := range out {
		for _, s := range b.sinks {
			s.Send(n)
		}
	}
}
