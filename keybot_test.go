package keybot

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"keybot/core"
	"keybot/delivery"
	"keybot/transport"
)

// captureClient records every body sent through the ChannelSender surface.
type captureClient struct {
	mu     sync.Mutex
	bodies []delivery.Body
}

func (c *captureClient) SendToChannel(_ context.Context, _ string, body delivery.Body) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.bodies = append(c.bodies, body)
	return nil
}

func (c *captureClient) texts() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	var out []string
	for _, b := range c.bodies {
		if t, ok := b["t"].(string); ok {
			out = append(out, t)
		}
	}
	return out
}

type stubSuggester struct{ candidates []string }

func (s stubSuggester) Suggest(context.Context, string, string, int) ([]string, error) {
	return s.candidates, nil
}

func (s stubSuggester) Autocorrect(_ context.Context, token string) (string, error) {
	return token, nil
}

func TestBot_KeyboardComposeAndSubmit(t *testing.T) {
	client := &captureClient{}
	bot, err := New(client)
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, bot.HandleMessage(ctx, core.NewMessageEvent("u1", "ch1", "Keyboard")))

	texts := client.texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "Nhập: ", texts[0], "fresh keyboard must echo an empty buffer")

	require.NoError(t, bot.HandleAction(ctx, core.NewActionEvent("u1", "ch1", "A")))
	require.NoError(t, bot.HandleAction(ctx, core.NewActionEvent("u1", "ch1", core.ActionEnter)))

	texts = client.texts()
	require.Len(t, texts, 3)
	assert.Equal(t, "Nhập: A", texts[1])
	assert.Equal(t, "Bạn đã nhập: A", texts[2])
}

func TestBot_SuggestionsFlow(t *testing.T) {
	client := &captureClient{}
	bot, err := New(client, func(o *Options) {
		o.Suggester = stubSuggester{candidates: []string{"nhà", "nhanh"}}
	})
	require.NoError(t, err)

	require.NoError(t, bot.HandleMessage(context.Background(), core.NewMessageEvent("u1", "ch1", "Món ăn này được làm nh")))
	texts := client.texts()
	require.Len(t, texts, 1)
	assert.Equal(t, "Suggestions: nhà, nhanh", texts[0])
}

func TestBot_NewRejectsUnknownTransport(t *testing.T) {
	_, err := New(struct{}{})
	assert.ErrorIs(t, err, delivery.ErrNoSendSurface)
}

// chanSource adapts a plain channel to the transport.Source interface.
type chanSource struct{ ch chan transport.Event }

func (s chanSource) Events() <-chan transport.Event { return s.ch }

func TestBot_ServeDrainsSourceAndPreservesPerUserOrder(t *testing.T) {
	client := &captureClient{}
	bot, err := New(client)
	require.NoError(t, err)

	src := chanSource{ch: make(chan transport.Event, 16)}
	msg := core.NewMessageEvent("u1", "ch1", "keyboard")
	src.ch <- transport.Event{Message: &msg}
	for _, v := range []string{"H", "I", core.ActionEnter} {
		act := core.NewActionEvent("u1", "ch1", v)
		src.ch <- transport.Event{Action: &act}
	}
	close(src.ch)

	require.NoError(t, bot.Serve(context.Background(), src))

	// The per-user queue may still be draining after Serve returns.
	require.Eventually(t, func() bool { return len(client.texts()) == 4 }, time.Second, 5*time.Millisecond)
	texts := client.texts()
	assert.Equal(t, "Nhập: HI", texts[2])
	assert.Equal(t, "Bạn đã nhập: HI", texts[3])
}

func TestBot_ServeStopsOnContextCancel(t *testing.T) {
	client := &captureClient{}
	bot, err := New(client)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	src := chanSource{ch: make(chan transport.Event)}
	assert.ErrorIs(t, bot.Serve(ctx, src), context.Canceled)
}
