package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ziadkadry99/nexus-docs/internal/assistant"
	"github.com/ziadkadry99/nexus-docs/internal/chat"
	"github.com/ziadkadry99/nexus-docs/internal/config"
	"github.com/ziadkadry99/nexus-docs/internal/db"
	"github.com/ziadkadry99/nexus-docs/internal/feedback"
	"github.com/ziadkadry99/nexus-docs/internal/llm"
	"github.com/ziadkadry99/nexus-docs/internal/metrics"
	"github.com/ziadkadry99/nexus-docs/internal/portal"
	"github.com/ziadkadry99/nexus-docs/internal/server"
	"github.com/ziadkadry99/nexus-docs/internal/session"
	"github.com/ziadkadry99/nexus-docs/internal/storage"
	"github.com/ziadkadry99/nexus-docs/internal/workspace"
)

var serverPort int

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the documentation portal",
	Long:  `Starts the nexusdocs HTTP server: documentation pages, the JSON API, the chat websocket and /metrics.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = serverPort
		}

		logger, err := newLogger(cfg)
		if err != nil {
			return err
		}
		defer logger.Sync()

		// Graceful shutdown.
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reg, idx, cat, err := loadContent(cfg)
		if err != nil {
			return err
		}

		// Open database. Chat transcripts and feedback always live here;
		// the memory driver keeps it in memory too.
		database, dbPath, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer database.Close()

		kv, err := storage.New(ctx, storage.Options{
			Driver:    string(cfg.Storage.Driver),
			DB:        database,
			RedisAddr: cfg.Storage.RedisAddr,
			RedisDB:   cfg.Storage.RedisDB,
		})
		if err != nil {
			return fmt.Errorf("opening storage: %w", err)
		}
		if c, ok := kv.(io.Closer); ok {
			defer c.Close()
		}

		signer, err := newSigner(cfg, logger)
		if err != nil {
			return err
		}

		sessions := workspace.StubSessions(session.StubOptions{
			Latency:       millis(cfg.Auth.LatencyMS),
			UpdateLatency: millis(cfg.Auth.UpdateLatencyMS),
		})
		if cfg.Auth.Backend == config.AuthSupabase {
			sessions = workspace.SupabaseSessions(cfg.Auth.SupabaseURL, cfg.Auth.SupabaseKey, logger)
		}
		// Chat transcripts live as long as the client's workspace.
		chatStore := chat.NewStore(database)
		spaces := workspace.NewManager(workspace.Options{
			Registry:       reg,
			KV:             kv,
			Signer:         signer,
			Sessions:       sessions,
			DefaultTopic:   cfg.Content.DefaultTopic,
			DefaultVersion: cfg.Content.DefaultVersion,
			SecureCookie:   cfg.Environment == "production",
			IdleTimeout:    time.Duration(cfg.Server.IdleMinutes) * time.Minute,
			MaxWorkspaces:  cfg.Server.MaxWorkspaces,
			OnEvict:        dropTranscripts(chatStore, logger),
		})
		go spaces.Run(ctx, time.Minute)

		collector := metrics.New()
		asst := newAssistant(cfg, collector, logger)

		srv := server.New(server.Config{
			Port:     cfg.Server.Port,
			AllowAll: cfg.Server.AllowAllOrigins,
		}, database, collector, logger)

		handler, err := portal.New(portal.Options{
			Registry:   reg,
			Index:      idx,
			Catalog:    cat,
			Assistant:  asst,
			Workspaces: spaces,
			Feedback:   feedback.NewStore(database),
			Signer:     signer,
			Metrics:    collector,
			Logger:     logger,
		})
		if err != nil {
			return fmt.Errorf("creating portal: %w", err)
		}
		handler.RegisterRoutes(srv.Router())

		chatHandler := chat.NewHandler(chatStore, asst, logger)
		chatHandler.ClientID = workspace.PeekClientID
		chatHandler.Touch = spaces.Touch
		chatHandler.RegisterRoutes(srv.Router())

		go func() {
			<-ctx.Done()
			logger.Info("shutting down server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logger.Error("shutdown", zap.Error(err))
			}
		}()

		logger.Info("nexusdocs server starting",
			zap.String("version", Version),
			zap.Int("port", cfg.Server.Port),
			zap.String("storage", string(cfg.Storage.Driver)),
			zap.String("database", dbPath),
			zap.String("auth", string(cfg.Auth.Backend)),
			zap.Bool("assistant", asst.Available()),
			zap.Int("topics", idx.Len()),
		)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

// dropTranscripts deletes an evicted client's chat transcripts.
func dropTranscripts(store *chat.Store, logger *zap.Logger) func(context.Context, string) {
	return func(ctx context.Context, clientID string) {
		if err := store.DeleteClient(ctx, clientID); err != nil {
			logger.Warn("dropping chat transcripts failed", zap.String("client_id", clientID), zap.Error(err))
		}
	}
}

func openDatabase(cfg *config.Config) (*db.DB, string, error) {
	if cfg.Storage.Driver == config.StorageMemory {
		database, err := db.OpenMemory()
		return database, ":memory:", err
	}
	path := filepath.Join(cfg.Server.DataDir, "nexusdocs.db")
	database, err := db.Open(path)
	return database, path, err
}

// newAssistant builds the assistant. A provider that cannot be created
// leaves the portal running with the assistant's unavailable messages.
func newAssistant(cfg *config.Config, collector *metrics.Collector, logger *zap.Logger) *assistant.Assistant {
	opts := assistant.DefaultOptions()
	opts.ChatModel = cfg.Assistant.ChatModel
	opts.SummaryModel = cfg.Assistant.SummaryModel
	opts.OnResult = collector.ObserveAssistant

	provider, err := llm.FromConfig(cfg.Assistant, logger)
	if err != nil {
		logger.Warn("assistant disabled", zap.Error(err))
		return assistant.New(nil, opts, logger)
	}
	return assistant.New(provider, opts, logger)
}

func init() {
	serverCmd.Flags().IntVar(&serverPort, "port", 8080, "Port to listen on (overrides server.port)")
	rootCmd.AddCommand(serverCmd)
}
