package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"keybot"
	"keybot/config"
	"keybot/logging"
	"keybot/metrics"
	"keybot/suggest"
	"keybot/transport/console"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the bot on the console transport",
	Long: `Run starts the bot against the local console transport: stdin lines become
channel messages, "/press <value>" lines become keyboard button actions, and
outbound deliveries are printed to stdout. A metrics/health listener is
served alongside.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		logger := logging.NewSlogLogger(logging.ParseLevel(cfg.Log.Level), cfg.Log.Format, false)

		reg := prometheus.NewRegistry()
		set := metrics.New(reg)

		suggester := suggest.New(cfg.Suggest.BaseURL, func(o *suggest.Options) {
			o.APIKey = cfg.Suggest.APIKey
			o.Timeout = cfg.Suggest.Timeout
		})

		client := console.New()
		bot, err := keybot.New(client, func(o *keybot.Options) {
			o.Suggester = suggester
			o.BotID = cfg.Bot.ID
			o.Trigger = cfg.Bot.Trigger
			o.SuggestK = cfg.Suggest.K
			o.DeliveryTimeout = cfg.Delivery.Timeout
			o.Logger = logger
			o.Metrics = set
		})
		if err != nil {
			return err
		}

		r := chi.NewRouter()
		r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
		})
		r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		srv := &http.Server{Addr: cfg.Metrics.Addr, Handler: r}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics listener failed", "addr", cfg.Metrics.Addr, "error", err)
			}
		}()

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			if err := client.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("console transport stopped", "error", err)
			}
		}()

		fmt.Println("keybot ready: type a message, or \"keyboard\" to open the composer")
		err = bot.Serve(ctx, client)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)

		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
