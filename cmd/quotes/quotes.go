package quotes

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"brokerapi/src/connectors"
	"brokerapi/src/executors"
)

// Sync refreshes the daily close series. One-shot by default; with Loop
// set it keeps refreshing on the configured period until interrupted.
type Sync struct {
	Log  *logrus.Entry
	DB   *gorm.DB
	Loop bool
}

func (s *Sync) Start() error {
	refresher := &executors.Refresher{
		Log:    s.Log,
		DB:     s.DB,
		Client: connectors.NewQuotesClientFromEnv(),
	}

	if !s.Loop {
		return refresher.RunOnce(context.Background())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return refresher.StartLoop(ctx)
}
