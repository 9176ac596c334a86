package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/spigell/ai-tool-advisor/internal/server"
	"github.com/spigell/ai-tool-advisor/internal/survey"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the questionnaire and recommendations over HTTP",
	Run: func(_ *cobra.Command, _ []string) {
		serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringP("addr", "a", "", "listen address (default is server.addr from the config)")
	viper.BindPFlag("server.addr", serveCmd.Flags().Lookup("addr"))
}

func serve() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := setup(ctx)
	defer s.Close()

	if err := s.openFeedback(); err != nil {
		s.logger.Warn("feedback is disabled", zap.Error(err))
	}

	router := server.NewRouter(server.Deps{
		Engine:    s.engine,
		Sessions:  survey.NewMemoryStore(),
		Explainer: s.explainer,
		Feedback:  s.feedback,
		Logger:    s.logger,
		Debug:     viper.GetBool("debug"),
	})

	if err := server.Serve(ctx, s.config.Server.Addr, router, s.logger); err != nil {
		s.logger.Fatal("http server failed", zap.Error(err))
	}
}
