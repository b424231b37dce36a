package setup

import (
	"log/slog"
	"time"

	"github.com/nanashi-dev/nanashi/internal/config"
	"github.com/nanashi-dev/nanashi/internal/handler"
	"github.com/nanashi-dev/nanashi/internal/ratelimit"
	"github.com/nanashi-dev/nanashi/internal/service"
	"github.com/nanashi-dev/nanashi/internal/storage/pg"
	"github.com/nanashi-dev/nanashi/internal/utils"
)

// Dependencies struct to hold all initialized dependencies.
type Dependencies struct {
	Storage *pg.Storage
	Limiter *ratelimit.Limiter
	Handler *handler.Handler
	Config  *config.Config
}

// SetupDependencies initializes all dependencies required for the application.
func SetupDependencies(cfg *config.Config) (*Dependencies, error) {
	storage, err := pg.New(cfg)
	if err != nil {
		return nil, err
	}

	limiter := ratelimit.New(cfg.Public.LimiterIdleTTL * time.Second)

	post := service.NewPost(storage, limiter, cfg)
	thread := service.NewThread(storage, post, limiter, cfg)
	board := service.NewBoard(storage, &utils.BoardFieldValidator{})

	h := handler.New(board, thread, post, storage)

	return &Dependencies{
		Storage: storage,
		Limiter: limiter,
		Handler: h,
		Config:  cfg,
	}, nil
}

// Cleanup releases everything SetupDependencies acquired.
func (d *Dependencies) Cleanup() {
	d.Limiter.Stop()
	if err := d.Storage.Cleanup(); err != nil {
		slog.Error("failed to close storage", "err", err)
	}
}
