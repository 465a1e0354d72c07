package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/evisarw/visa-management/internal/notification"
	"github.com/evisarw/visa-management/pkg/logger"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "Start worker pools",
	Long:  `Start and manage worker pools, currently the email notification dispatcher.`,
}

var notificationWorkerCmd = &cobra.Command{
	Use:   "notifications",
	Short: "Start notification worker pool",
	Long:  `Start the email notification worker pool standalone, mainly for verifying SMTP configuration.`,
	Run: func(cmd *cobra.Command, args []string) {
		startNotificationWorker()
	},
}

var (
	maxWorkers int
	queueSize  int
)

func startNotificationWorker() {
	config, err := loadConfig(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.L()

	dispatcherConfig := notification.DispatcherConfig{
		MaxWorkers:   getIntFlag(maxWorkers, config.Notifications.MaxWorkers),
		QueueSize:    getIntFlag(queueSize, config.Notifications.QueueSize),
		MaxAttempts:  config.Notifications.MaxAttempts,
		RetryBackoff: config.Notifications.RetryBackoff,
	}

	lg.Info("starting notification worker",
		"max_workers", dispatcherConfig.MaxWorkers,
		"queue_size", dispatcherConfig.QueueSize,
		"smtp_host", config.SMTP.Host)

	sender := notification.NewSMTPSender(
		config.SMTP.Host, config.SMTP.Port,
		config.SMTP.Username, config.SMTP.Password, config.SMTP.From,
	)
	dispatcher := notification.NewDispatcher(dispatcherConfig, sender, lg)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	lg.Info("notification worker is running. Press Ctrl+C to stop.")

	sig := <-sigChan
	lg.Info("received signal, shutting down notification worker", "signal", sig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	shutdownDone := make(chan struct{})
	go func() {
		dispatcher.Shutdown()
		close(shutdownDone)
	}()

	select {
	case <-shutdownDone:
		lg.Info("notification worker shutdown complete")
	case <-ctx.Done():
		lg.Warn("shutdown timeout reached, forcing exit")
	}
}

func getIntFlag(flagValue, configValue int) int {
	if flagValue > 0 {
		return flagValue
	}
	return configValue
}

func init() {
	notificationWorkerCmd.Flags().IntVar(&maxWorkers, "max-workers", 0, "Number of delivery workers")
	notificationWorkerCmd.Flags().IntVar(&queueSize, "queue-size", 0, "Pending email queue size")

	workerCmd.AddCommand(notificationWorkerCmd)
}
