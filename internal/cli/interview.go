package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/hireflow/interview-agent/internal/adapters/console"
	"github.com/hireflow/interview-agent/internal/app/dialogue"
	"github.com/hireflow/interview-agent/internal/config"
)

var interviewFlow string

var interviewCmd = &cobra.Command{
	Use:   "interview",
	Short: "Run an interactive interview in the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		svc, err := buildService(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		runner := console.New(svc, interviewFlow, os.Stdin, os.Stdout)
		return runner.Run(cmd.Context())
	},
}

func init() {
	interviewCmd.Flags().StringVar(&interviewFlow, "flow", dialogue.FlowOpen, "interview flow to run")
}
