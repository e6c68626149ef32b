package main

import (
	"context"
	"ctchen222/Tic-Tac-Toe-Online/internal/client"
	"ctchen222/Tic-Tac-Toe-Online/internal/config"
	"ctchen222/Tic-Tac-Toe-Online/internal/logger"
	"ctchen222/Tic-Tac-Toe-Online/internal/telemetry"
	"ctchen222/Tic-Tac-Toe-Online/internal/tui"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"
)

func main() {
	// .env is optional
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: error loading .env file: %v", err)
	}

	cmd := &cli.Command{
		Name:  "tictactoe",
		Usage: "play online tic-tac-toe in the terminal",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "path to a yaml config file",
				Sources: cli.EnvVars("CONFIG_PATH"),
			},
			&cli.StringFlag{
				Name:  "server",
				Usage: "base URL of the match service",
			},
			&cli.StringFlag{
				Name:  "name",
				Usage: "player name sent when creating or joining",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "file receiving the client log",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "debug, info, warn or error",
			},
		},
		Action: run,
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return err
	}
	if cmd.IsSet("server") {
		cfg.Client.ServerURL = cmd.String("server")
	}
	if cmd.IsSet("log-file") {
		cfg.LogFile = cmd.String("log-file")
	}
	if cmd.IsSet("log-level") {
		cfg.LogLevel = cmd.String("log-level")
	}

	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer logFile.Close()
	slogger := logger.Init(cfg.LogLevel, logFile)

	shutdown, err := telemetry.InitOtel(ctx, cfg.Telemetry.OTLPEndpoint, cfg.Telemetry.ServiceName+"-client")
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := shutdown(context.Background()); err != nil {
			slogger.Error("error shutting down telemetry", "error", err)
		}
	}()

	dialer, err := client.NewWebSocketDialer(cfg.Client.ServerURL)
	if err != nil {
		return err
	}
	session := client.NewSession(client.NewHTTPCoordinator(cfg.Client.ServerURL, nil), dialer, slogger)
	defer session.Close()

	slogger.Info("client starting", "server.url", cfg.Client.ServerURL)
	program := tea.NewProgram(
		tui.New(ctx, session, cmd.String("name"), slogger),
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("terminal UI failed: %w", err)
	}
	return nil
}
