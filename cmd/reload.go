package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/m04kA/SMC-ClassReservation/internal/infra/schedule"
	"github.com/m04kA/SMC-ClassReservation/pkg/logger"
)

func reloadOnHangup(ctx context.Context, feed *schedule.FileFeed, log *logger.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := feed.Reload(); err != nil {
				log.Error("ScheduleFeed: reload failed, keeping previous schedule: %v", err)
			}
		}
	}
}
