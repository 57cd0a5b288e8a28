package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/gounknown/dailyrotate"
)

func handleRotateSignal(context.Context, *dailyrotate.Logger, *zap.Logger) {}
