package main

import (
	"fmt"
	"net"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/de-tools/condition-atlas/pkg/bootstrap"
	"github.com/de-tools/condition-atlas/pkg/server"
	"github.com/de-tools/condition-atlas/pkg/services/config"
)

var cfgPath string

func main() {
	var rootCmd = &cobra.Command{
		Use:   "web",
		Short: "Start the report service for Condition Atlas",
		RunE:  runServer,
	}

	rootCmd.Flags().StringVarP(&cfgPath, "config", "c", "", "Path to a YAML config file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func runServer(cmd *cobra.Command, _ []string) error {
	if err := godotenv.Load(); err != nil {
		fmt.Printf("No .env file loaded: %v\n", err)
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}

	logger, err := bootstrap.NewLogger(cfg, os.Stdout)
	if err != nil {
		return err
	}
	ctx := logger.WithContext(cmd.Context())

	generator, err := bootstrap.NewGenerator(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to create report generator: %w", err)
	}

	host := cfg.Server.Host
	if v := os.Getenv("SERVER_HOST"); v != "" {
		host = v
	}
	port := cfg.Server.Port
	if v := os.Getenv("SERVER_PORT"); v != "" {
		port = v
	}

	api := server.NewWebAPI(logger, server.Config{
		Addr: net.JoinHostPort(host, port),
		Dependencies: server.Dependencies{
			Generator: generator,
		},
	})

	return api.Start()
}
