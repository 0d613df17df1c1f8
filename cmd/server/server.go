package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/steveyiyo/tts-clone-backend/internal/config"
	h "github.com/steveyiyo/tts-clone-backend/internal/http"
	"github.com/steveyiyo/tts-clone-backend/internal/logging"
	"github.com/steveyiyo/tts-clone-backend/internal/repo"
	"github.com/steveyiyo/tts-clone-backend/internal/repo/memory"
	"github.com/steveyiyo/tts-clone-backend/internal/store"
)

var (
	envFile string
	port    string
)

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "Text-to-speech audio record API",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          run,
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file to load before reading the environment")
	rootCmd.Flags().StringVarP(&port, "port", "p", "", "listen port (overrides PORT)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run(cmd *cobra.Command, _ []string) error {
	_ = godotenv.Load(envFile)
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if port != "" {
		cfg.Port = port
	}

	logger := logging.New(cfg)
	durable, err := repo.OpenDurable(cfg, logger)
	if err != nil {
		return err
	}
	st := store.New(durable, memory.NewRecordRepo(), logger)
	logger.Info().Str("storage", st.Mode()).Msg("storage configured")

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: h.NewRouter(cfg, logger, st),
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("shutdown")
		}
		if err := st.Close(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("close storage")
		}
	}()

	logger.Info().Str("addr", srv.Addr).Msg("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
