// Package router dispatches inbound chat events to the keyboard state machine
// or the suggestion flow and hands the resulting payloads to the delivery
// adapter. All downstream failures are contained here: they are logged and the
// event is dropped, so one bad event never stops processing of the next.
package router

import (
	"context"
	"strings"
	"time"

	"keybot/core"
	"keybot/keyboard"
	"keybot/logging"
	"keybot/suggest"
)

// Composer is the keyboard state machine surface the router drives.
type Composer interface {
	Open(userID string) core.Payload
	Apply(userID, value string) (core.Payload, *keyboard.Submission)
}

// Suggester issues single queries against the ranking service.
type Suggester interface {
	Suggest(ctx context.Context, contextText, prefix string, k int) ([]string, error)
	Autocorrect(ctx context.Context, token string) (string, error)
}

// Deliverer pushes an outbound payload into a channel.
type Deliverer interface {
	Deliver(ctx context.Context, channelID string, payload core.Payload) error
}

// Observer records router-level measurements, typically a metrics set.
type Observer interface {
	RecordEvent(kind string)
	RecordSuggest(dur time.Duration, candidates int, err error)
}

type nopObserver struct{}

func (nopObserver) RecordEvent(string)                      {}
func (nopObserver) RecordSuggest(time.Duration, int, error) {}

// Options configure a Router.
type Options struct {
	// BotID, when set, suppresses events authored by the bot itself.
	BotID string
	// Trigger is the case-insensitive keyword that opens the keyboard.
	Trigger string
	// AutocorrectTrigger prefixes a one-token correction request.
	AutocorrectTrigger string
	// SuggestionPrefix labels outbound suggestion replies and guards against
	// the bot consuming its own output.
	SuggestionPrefix string
	// ConfirmPrefix labels the submission confirmation reply.
	ConfirmPrefix string
	// SuggestK is the number of candidates requested per lookup.
	SuggestK int
	// Logger receives drop/failure diagnostics.
	Logger logging.Logger
	// Observer records measurements.
	Observer Observer
}

// Router routes inbound events. Safe for concurrent use; per-user ordering is
// the composer's concern.
type Router struct {
	composer  Composer
	suggester Suggester
	deliverer Deliverer

	botID              string
	trigger            string
	autocorrectTrigger string
	suggestionPrefix   string
	confirmPrefix      string
	suggestK           int
	logger             logging.Logger
	observer           Observer
}

// New constructs a Router with optional overrides. The suggester may be nil,
// which disables the suggestion and autocorrect flows.
func New(composer Composer, suggester Suggester, deliverer Deliverer, optFns ...func(o *Options)) *Router {
	opts := Options{
		Trigger:            "keyboard",
		AutocorrectTrigger: "autocorrect",
		SuggestionPrefix:   "Suggestions: ",
		ConfirmPrefix:      "Bạn đã nhập: ",
		SuggestK:           5,
		Logger:             logging.NoOpLogger{},
		Observer:           nopObserver{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	return &Router{
		composer:           composer,
		suggester:          suggester,
		deliverer:          deliverer,
		botID:              opts.BotID,
		trigger:            opts.Trigger,
		autocorrectTrigger: opts.AutocorrectTrigger,
		suggestionPrefix:   opts.SuggestionPrefix,
		confirmPrefix:      opts.ConfirmPrefix,
		suggestK:           opts.SuggestK,
		logger:             opts.Logger,
		observer:           opts.Observer,
	}
}

// HandleMessage processes one inbound free-text message. Malformed or
// self-authored events are silent no-ops; suggestion service failures are
// logged and dropped. The returned error reflects a delivery failure only and
// has already been logged — callers may ignore it.
func (r *Router) HandleMessage(ctx context.Context, ev core.MessageEvent) error {
	r.observer.RecordEvent("message")

	if r.botID != "" && ev.SenderID == r.botID {
		return nil
	}
	text := strings.TrimSpace(ev.Text)
	if text == "" {
		return nil
	}
	if strings.HasPrefix(text, r.suggestionPrefix) {
		return nil
	}

	if strings.EqualFold(text, r.trigger) {
		prompt := r.composer.Open(ev.SenderID)
		return r.deliver(ctx, ev.ChannelID, prompt)
	}

	if token, ok := r.autocorrectRequest(text); ok {
		return r.handleAutocorrect(ctx, ev.ChannelID, token)
	}

	return r.handleSuggest(ctx, ev.ChannelID, text)
}

// HandleAction processes one keyboard button press. On a submission the
// confirmation is delivered, otherwise the re-rendered keyboard prompt.
func (r *Router) HandleAction(ctx context.Context, ev core.ActionEvent) error {
	r.observer.RecordEvent("action")

	if r.botID != "" && ev.From == r.botID {
		return nil
	}
	if ev.From == "" || ev.Value == "" {
		return nil
	}

	prompt, sub := r.composer.Apply(ev.From, ev.Value)
	if sub != nil {
		return r.deliver(ctx, ev.Destination(), core.NewTextPayload(r.confirmPrefix+sub.Text))
	}
	return r.deliver(ctx, ev.Destination(), prompt)
}

// autocorrectRequest recognizes "<trigger> <token>" messages.
func (r *Router) autocorrectRequest(text string) (string, bool) {
	fields := strings.Fields(text)
	if len(fields) != 2 || !strings.EqualFold(fields[0], r.autocorrectTrigger) {
		return "", false
	}
	return fields[1], true
}

func (r *Router) handleAutocorrect(ctx context.Context, channelID, token string) error {
	if r.suggester == nil {
		return nil
	}
	corrected, err := r.suggester.Autocorrect(ctx, token)
	if err != nil {
		r.logger.Error("autocorrect lookup failed, dropping", "token", token, "error", err)
		return nil
	}
	if corrected == "" || corrected == token {
		return nil
	}
	return r.deliver(ctx, channelID, core.NewTextPayload(token+" → "+corrected))
}

func (r *Router) handleSuggest(ctx context.Context, channelID, text string) error {
	if r.suggester == nil {
		return nil
	}
	contextText, prefix := suggest.SplitContextPrefix(text)
	if prefix == "" {
		return nil
	}

	start := time.Now()
	candidates, err := r.suggester.Suggest(ctx, contextText, prefix, r.suggestK)
	r.observer.RecordSuggest(time.Since(start), len(candidates), err)
	if err != nil {
		r.logger.Error("suggestion lookup failed, dropping", "prefix", prefix, "error", err)
		return nil
	}
	if len(candidates) == 0 {
		return nil
	}
	return r.deliver(ctx, channelID, core.NewTextPayload(r.suggestionPrefix+strings.Join(candidates, ", ")))
}

func (r *Router) deliver(ctx context.Context, channelID string, payload core.Payload) error {
	if err := r.deliverer.Deliver(ctx, channelID, payload); err != nil {
		r.logger.Error("delivery failed, dropping event", "channel_id", channelID, "error", err)
		return err
	}
	return nil
}
