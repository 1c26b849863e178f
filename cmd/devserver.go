package cmd

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/abhisek/vectortutor/internal/devserver"
	"github.com/abhisek/vectortutor/internal/logger"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a canned in-memory study backend for local development",
	Long: `Serve the backend HTTP contract from memory. Summaries, flashcards, quizzes
and answers are derived from the uploaded text with simple rules; nothing is
generated by a model. Point the client at it with --backend.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		mode, _ := cmd.Flags().GetString("log-mode")

		log, err := logger.New(mode, "")
		if err != nil {
			return err
		}
		defer log.Sync()

		if mode == "prod" {
			gin.SetMode(gin.ReleaseMode)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return devserver.New(log).ListenAndServe(ctx, addr)
	},
}

func init() {
	devserverCmd.Flags().String("addr", ":8000", "Listen address")
	devserverCmd.Flags().String("log-mode", "dev", "Log format: dev or prod")
}
