package cmd

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"promptforge/internal/node"
	"promptforge/internal/node/deepseekprompt"
	"promptforge/internal/server"
)

var overridePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP node host",
	Long:  `Start the HTTP host exposing node discovery and execution endpoints.`,
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().IntVarP(&overridePort, "port", "p", 0, "override server port from configuration")
}

func runServe(cmd *cobra.Command, args []string) error {
	if overridePort != 0 {
		if overridePort <= 0 || overridePort > 65535 {
			return fmt.Errorf("port override %d must be a valid TCP port", overridePort)
		}
		cfg.Server.Port = overridePort
	}

	registry := node.NewRegistry()

	promptNode, err := deepseekprompt.New(cfg.DeepSeek, cfg.Defaults)
	if err != nil {
		return fmt.Errorf("initialise prompt connector node: %w", err)
	}
	if err := registry.Register(promptNode); err != nil {
		return fmt.Errorf("register prompt connector node: %w", err)
	}

	srv, err := server.New(cfg, registry)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	return srv.Run(ctx)
}
