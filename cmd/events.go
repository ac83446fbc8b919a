package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"restaurant-storefront/config"
	"restaurant-storefront/internal/analytics"
	"restaurant-storefront/internal/logging"

	"github.com/spf13/cobra"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Tally order events from Kafka into daily Redis counters",
	Long: `events consumes the order event topic and keeps per-day order, revenue,
type and status counters in Redis. With --report it prints one day's tally
and exits.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logger := logging.New(cfg.LogLevel)
		slog.SetDefault(logger)

		rdb := config.MustInitRedis(cfg.Redis)
		defer rdb.Close()
		tally := analytics.NewRedisTally(rdb, cfg.Redis.KeyPrefix)

		if report, _ := cmd.Flags().GetString("report"); report != "" {
			return printReport(cmd, tally, report)
		}

		if !cfg.Kafka.Enabled {
			return errors.New("kafka is disabled, set kafka.enabled to consume order events")
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reader := config.NewKafkaReader(cfg.Kafka)
		defer reader.Close()

		logger.Info("consuming order events", "topic", cfg.Kafka.Topic, "group_id", cfg.Kafka.GroupID)
		return analytics.NewConsumer(reader, tally).Start(logging.IntoContext(ctx, logger))
	},
}

func printReport(cmd *cobra.Command, tally *analytics.RedisTally, report string) error {
	day := time.Now()
	if report != "today" {
		parsed, err := time.ParseInLocation("2006-01-02", report, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --report date %q: want YYYY-MM-DD or today", report)
		}
		day = parsed
	}

	stats, err := tally.Daily(cmd.Context(), day)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(stats)
}

func init() {
	eventsCmd.Flags().String("report", "", "print the tally for a day (YYYY-MM-DD or today) and exit")
}
