package delivery

import (
	"context"
	"errors"
	"fmt"
	"time"

	"keybot/core"
	"keybot/logging"
)

// ErrDeliveryFailed is wrapped into the error returned when every strategy,
// including the plain-text fallback, has failed.
var ErrDeliveryFailed = errors.New("delivery failed")

// Recorder observes delivery attempts, typically backed by metrics counters.
// Implementations must be safe for concurrent use.
type Recorder interface {
	RecordDeliveryAttempt(strategy string, err error)
}

// nopRecorder discards all observations.
type nopRecorder struct{}

func (nopRecorder) RecordDeliveryAttempt(string, error) {}

// Options configure an Adapter.
type Options struct {
	// Strategies overrides the default ordered call-shape list.
	Strategies []Strategy
	// Fallback overrides the terminal plain-text strategy.
	Fallback *Strategy
	// DegradationNotice is appended to the text body when falling back.
	DegradationNotice string
	// Timeout bounds one whole Deliver call, 0 disables the bound.
	Timeout time.Duration
	// Logger receives per-attempt diagnostics.
	Logger logging.Logger
	// Recorder observes attempts for metrics.
	Recorder Recorder
}

// Adapter delivers payloads through an unstable transport surface by trying a
// fixed ordered list of call-shape strategies until one succeeds. Exactly one
// network call happens per attempted strategy, so at most one delivery
// succeeds per call in addition to the exhausted failed attempts.
type Adapter struct {
	strategies        []Strategy
	fallback          Strategy
	degradationNotice string
	timeout           time.Duration
	logger            logging.Logger
	recorder          Recorder
}

// New negotiates a send surface on the client and constructs an Adapter with
// optional overrides. It fails only when the client exposes no known surface.
func New(client any, optFns ...func(o *Options)) (*Adapter, error) {
	send, err := Negotiate(client)
	if err != nil {
		return nil, err
	}

	opts := Options{
		Strategies:        DefaultStrategies(send),
		DegradationNotice: "(đã rút gọn định dạng)",
		Timeout:           10 * time.Second,
		Logger:            logging.NoOpLogger{},
		Recorder:          nopRecorder{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	fallback := PlainStrategy(send)
	if opts.Fallback != nil {
		fallback = *opts.Fallback
	}

	return &Adapter{
		strategies:        opts.Strategies,
		fallback:          fallback,
		degradationNotice: opts.DegradationNotice,
		timeout:           opts.Timeout,
		logger:            opts.Logger,
		recorder:          opts.Recorder,
	}, nil
}

// Deliver pushes the payload into the channel. Strategies are tried in order;
// each failure is logged and the next shape is attempted without retrying the
// same one. The first success stops the chain. When every structured shape
// fails, a plain-text body with the degradation notice is sent last, and only
// that attempt's failure is propagated, wrapped as ErrDeliveryFailed.
func (a *Adapter) Deliver(ctx context.Context, channelID string, payload core.Payload) error {
	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	for _, st := range a.strategies {
		err := st.Send(ctx, channelID, payload)
		a.recorder.RecordDeliveryAttempt(st.Name, err)
		if err == nil {
			a.logger.Debug("delivered", "strategy", st.Name, "channel_id", channelID)
			return nil
		}
		a.logger.Warn("delivery strategy failed, advancing", "strategy", st.Name, "channel_id", channelID, "error", err)
	}

	plain := payload.Plain()
	if a.degradationNotice != "" {
		plain.Text = plain.Text + " " + a.degradationNotice
	}
	err := a.fallback.Send(ctx, channelID, plain)
	a.recorder.RecordDeliveryAttempt(a.fallback.Name, err)
	if err != nil {
		a.logger.Error("all delivery strategies exhausted", "channel_id", channelID, "error", err)
		return fmt.Errorf("%w: %w", ErrDeliveryFailed, err)
	}
	a.logger.Info("delivered via plain-text fallback", "channel_id", channelID)
	return nil
}
