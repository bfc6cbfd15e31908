// Package cli defines the Cobra commands for the interview agent.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev" // set via ldflags at build time

var rootCmd = &cobra.Command{
	Use:   "interview-agent",
	Short: "LLM-driven technical interview agent",
	Long: `interview-agent conducts automated multi-turn technical interviews
over three channels: an interactive console session, a telephone-call
webhook flow, and a chat-messaging webhook flow. Questions come from an
LLM (or a fixed script), transcripts are persisted at the end of every
conversation.`,
	Version:       version,
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(interviewCmd)
}
