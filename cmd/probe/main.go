// Probe connects a single realtime channel to an endpoint and prints every
// event and status transition it sees. Useful for checking a backend by hand.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-gateway/src/logger"
	"storefront-gateway/src/models"
	"storefront-gateway/src/realtime"
)

func main() {
	endpoint := flag.String("endpoint", "ws://localhost:8080/ws", "websocket endpoint to probe")
	token := flag.String("token", "", "auth token")
	userID := flag.String("user", "", "user id")
	duration := flag.Duration("duration", 30*time.Second, "how long to listen before disconnecting")
	flag.Parse()

	appLogger := logger.NewLogger("debug", "Probe")
	defer appLogger.Sync()

	channel := realtime.NewChannel("probe", appLogger)

	channel.OnStatusChange(func(status models.MChannelStatus) {
		fmt.Printf("[status] %s\n", status)
	})
	channel.On("message", func(event *models.MEvent) {
		fmt.Printf("[event] type=%s fields=%v\n", event.Type, event.Fields)
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := channel.Connect(ctx, *endpoint, *token, *userID); err != nil {
		appLogger.Critical("connect failed: %v", err)
		os.Exit(1)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-time.After(*duration):
		appLogger.Info("probe duration elapsed")
	case <-sigChan:
		appLogger.Info("interrupted")
	}

	if err := channel.Disconnect(); err != nil {
		appLogger.Error("disconnect failed: %v", err)
	}
}
