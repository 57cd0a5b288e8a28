//go:build !windows

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/gounknown/dailyrotate"
)

// handleRotateSignal rotates l on every SIGHUP until ctx is done.
func handleRotateSignal(ctx context.Context, l *dailyrotate.Logger, logger *zap.Logger) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	go func() {
		defer signal.Stop(hup)
		for {
			select {
			case <-ctx.Done():
				return
			case <-hup:
				if err := l.Rotate(); err != nil {
					logger.Error("forced rotation failed", zap.Error(err))
					continue
				}
				logger.Info("rotated on SIGHUP")
			}
		}
	}()
}
