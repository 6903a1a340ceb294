package application

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/rocketscienceinc/playground-backend/internal/config"
	"github.com/rocketscienceinc/playground-backend/internal/entity"
	"github.com/rocketscienceinc/playground-backend/internal/markdown"
	"github.com/rocketscienceinc/playground-backend/internal/repository"
	"github.com/rocketscienceinc/playground-backend/internal/repository/storage"
	"github.com/rocketscienceinc/playground-backend/internal/service"
	"github.com/rocketscienceinc/playground-backend/internal/tictactoe"
	"github.com/rocketscienceinc/playground-backend/transport/rest"
	"github.com/rocketscienceinc/playground-backend/transport/websocket"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - runs the REST and WebSocket servers until ctx is canceled, SIGINT
// or SIGTERM arrives, or one of the servers fails.
func RunApp(ctx context.Context, logger *slog.Logger, conf *config.Config) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	redisAddrString := conf.Redis.GetRedisAddr()
	if conf.Redis.Host == "" {
		return ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedis(ctx, redisAddrString, conf.Redis.Password, conf.Redis.DB)
	if err != nil {
		return fmt.Errorf("could not connect to redis storage: %w", err)
	}

	defer func() {
		if err = redisStorage.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}()

	sqliteStorage, err := OpenScoreStorage(ctx, conf.SQLiteStoragePath)
	if err != nil {
		return err
	}

	defer func() {
		if err = sqliteStorage.Close(); err != nil {
			log.Error("could not close sqlite storage", "error", err)
		}
	}()

	defaultDifficulty, err := entity.ParseDifficulty(conf.Game.DefaultDifficulty)
	if err != nil {
		return fmt.Errorf("invalid game config: %w", err)
	}

	gameRepo := repository.NewGameRepository(redisStorage, conf.Game.TTL)
	scoreRepo := repository.NewScoreRepository(sqliteStorage.Connection)
	botService := service.NewBotService(logger, tictactoe.Strategies(nil))
	gameService := service.NewGameService(logger, gameRepo, scoreRepo, botService, defaultDifficulty)

	markdownService, err := NewMarkdownService(logger, conf.Markdown)
	if err != nil {
		return err
	}

	group, groupCtx := errgroup.WithContext(ctx)

	// run HTTP server
	group.Go(func() error {
		log.Info("Starting HTTP server", "port", conf.HTTPPort)
		if httpErr := rest.New(logger, gameService, markdownService).Start(groupCtx, conf.HTTPPort); httpErr != nil {
			return fmt.Errorf("HTTP server error: %w", httpErr)
		}
		return nil
	})

	// run Websocket server
	group.Go(func() error {
		log.Info("Starting WebSocket server", "port", conf.SocketPort)
		if wsErr := websocket.New(logger, gameService, markdownService).Start(groupCtx, conf.SocketPort); wsErr != nil {
			return fmt.Errorf("WebSocket server error: %w", wsErr)
		}
		return nil
	})

	if err = group.Wait(); err != nil {
		return err
	}

	log.Info("Application context canceled, servers stopped")

	return nil
}

// OpenScoreStorage opens the sqlite database at path and creates its schema.
func OpenScoreStorage(ctx context.Context, path string) (*storage.SQLiteStorage, error) {
	sqliteStorage, err := storage.NewSQLite(path)
	if err != nil {
		return nil, fmt.Errorf("could not open sqlite storage: %w", err)
	}

	if err = sqliteStorage.Init(ctx); err != nil {
		_ = sqliteStorage.Close()
		return nil, fmt.Errorf("could not init sqlite storage: %w", err)
	}

	return sqliteStorage, nil
}

// NewMarkdownService builds the html and terminal renderers from config.
func NewMarkdownService(logger *slog.Logger, conf config.Markdown) (service.MarkdownService, error) {
	terminal, err := markdown.NewTerminalRenderer(conf.TerminalStyle, conf.TerminalWidth)
	if err != nil {
		return nil, fmt.Errorf("invalid markdown config: %w", err)
	}

	html := markdown.New(
		markdown.WithUnsafeHTML(conf.UnsafeHTML),
		markdown.WithSanitize(conf.Sanitize),
		markdown.WithExternalLinks(conf.ExternalLinks),
		markdown.WithHardWraps(conf.HardWraps),
	)

	return service.NewMarkdownService(logger, html, terminal), nil
}
