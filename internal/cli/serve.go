package cli

import (
	"net/http"

	"github.com/spf13/cobra"

	"github.com/hireflow/interview-agent/internal/adapters/chat"
	httpadapter "github.com/hireflow/interview-agent/internal/adapters/http"
	"github.com/hireflow/interview-agent/internal/config"
	"github.com/hireflow/interview-agent/internal/observability"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the voice and chat webhook server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg := config.Load()
		log := observability.Logger()

		svc, err := buildService(ctx, cfg)
		if err != nil {
			return err
		}

		var sender httpadapter.ChatSender
		if cfg.GreenAPIInstanceID != "" {
			client, err := chat.NewGreenAPIClient(cfg.GreenAPIBaseURL, cfg.GreenAPIInstanceID, cfg.GreenAPIToken, cfg.GenerateTimeout)
			if err != nil {
				return err
			}
			sender = client
		} else {
			log.Warn("greenapi not configured; chat replies returned in webhook response only")
		}

		handler := httpadapter.NewServer(svc, sender)

		addr := ":" + cfg.Port
		log.Info("interview agent listening", "addr", addr)
		return http.ListenAndServe(addr, handler)
	},
}
