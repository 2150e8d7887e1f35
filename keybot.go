// Package keybot provides a high-level façade over the event router and its
// collaborators (buffer store, keyboard state machine, suggestion client,
// delivery adapter) enabling rapid construction of the composition bot. Most
// applications interact with this package by:
//  1. Creating a Bot via New() against a transport client (optionally
//     overriding the default in-memory store, logger or strategies)
//  2. Feeding it inbound events directly (HandleMessage / HandleAction) or
//     draining a transport source with Serve
//
// All defaults are safe for local development and testing; production
// deployments typically supply a real suggestion client, a structured logger
// and a metrics set.
package keybot

import (
	"context"
	"sync"
	"time"

	"keybot/core"
	"keybot/delivery"
	"keybot/keyboard"
	"keybot/logging"
	"keybot/metrics"
	"keybot/router"
	"keybot/session"
	"keybot/transport"
)

// Options configure the Bot instance.
type Options struct {
	// Store holds per-user composition buffers (defaults to in-memory).
	Store core.BufferStore
	// Suggester backs the suggestion/autocorrect flows; nil disables them.
	Suggester router.Suggester
	// BotID suppresses the bot's own inbound events.
	BotID string
	// Trigger is the case-insensitive keyword that opens the keyboard.
	Trigger string
	// SuggestK is the number of candidates requested per lookup.
	SuggestK int
	// MaxBufferLen caps composition buffers in runes, 0 disables the cap.
	MaxBufferLen int
	// DeliveryTimeout bounds one whole delivery across all strategies.
	DeliveryTimeout time.Duration
	// Strategies overrides the adapter's default ordered call-shape list.
	Strategies []delivery.Strategy
	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
	// Metrics records measurements (defaults to an unscraped set).
	Metrics *metrics.Set
}

// Bot is the high-level façade aggregating the router and services.
type Bot struct {
	router *router.Router
	logger logging.Logger

	mu     sync.Mutex
	queues map[string]chan transport.Event
}

// New negotiates a send surface on the transport client and wires up the bot.
// Any unset service is initialized with an in-memory or no-op implementation.
func New(transportClient any, optFns ...func(o *Options)) (*Bot, error) {
	opts := Options{
		Store:           session.NewInMemoryStore(),
		Trigger:         "keyboard",
		SuggestK:        5,
		MaxBufferLen:    keyboard.DefaultMaxBufferLen,
		DeliveryTimeout: 10 * time.Second,
		Logger:          logging.NoOpLogger{},
		Metrics:         metrics.NewNop(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	machine := keyboard.New(opts.Store, func(o *keyboard.Options) {
		o.MaxBufferLen = opts.MaxBufferLen
		o.Logger = opts.Logger
	})

	adapter, err := delivery.New(transportClient, func(o *delivery.Options) {
		if opts.Strategies != nil {
			o.Strategies = opts.Strategies
		}
		o.Timeout = opts.DeliveryTimeout
		o.Logger = opts.Logger
		o.Recorder = opts.Metrics
	})
	if err != nil {
		return nil, err
	}

	r := router.New(machine, opts.Suggester, adapter, func(o *router.Options) {
		o.BotID = opts.BotID
		o.Trigger = opts.Trigger
		o.SuggestK = opts.SuggestK
		o.Logger = opts.Logger
		o.Observer = opts.Metrics
	})

	return &Bot{router: r, logger: opts.Logger, queues: make(map[string]chan transport.Event)}, nil
}

// HandleMessage routes one inbound free-text message.
func (b *Bot) HandleMessage(ctx context.Context, ev core.MessageEvent) error {
	return b.router.HandleMessage(ctx, ev)
}

// HandleAction routes one inbound button press.
func (b *Bot) HandleAction(ctx context.Context, ev core.ActionEvent) error {
	return b.router.HandleAction(ctx, ev)
}

// Serve drains the transport source until it closes or the context is
// cancelled. Events are fanned out to per-user serial queues: a suggestion
// lookup awaiting network I/O for one user never blocks another user's button
// presses, while two rapid presses from the same user apply in arrival order.
// Event failures are contained per event and never stop the loop.
func (b *Bot) Serve(ctx context.Context, src transport.Source) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev, ok := <-src.Events():
			if !ok {
				return nil
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			case b.queueFor(ctx, userOf(ev)) <- ev:
			}
		}
	}
}

// userOf extracts the per-user serialization key of an event.
func userOf(ev transport.Event) string {
	switch {
	case ev.Message != nil:
		return ev.Message.SenderID
	case ev.Action != nil:
		return ev.Action.From
	default:
		return ""
	}
}

// queueFor returns the user's dispatch queue, lazily starting its worker.
// Workers live for the process lifetime, mirroring session lifetime.
func (b *Bot) queueFor(ctx context.Context, userID string) chan transport.Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	q, ok := b.queues[userID]
	if !ok {
		q = make(chan transport.Event, 32)
		b.queues[userID] = q
		go func() {
			for ev := range q {
				b.dispatch(ctx, ev)
			}
		}()
	}
	return q
}

// dispatch routes one event, containing panics and routing errors.
func (b *Bot) dispatch(ctx context.Context, ev transport.Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("panic while handling event, dropped", "panic", r)
		}
	}()

	switch {
	case ev.Message != nil:
		_ = b.router.HandleMessage(ctx, *ev.Message)
	case ev.Action != nil:
		_ = b.router.HandleAction(ctx, *ev.Action)
	}
}
