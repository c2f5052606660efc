package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/loop"
)

const (
	defaultAddr = ":7777"
	defaultPeer = "127.0.0.1:7777"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}

	tuning, err := config.LoadTuning(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		return err
	}

	scorePath := config.GetEnv("INVADERS_HISCORE", "")
	best, err := highscore.Load(scorePath)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(config.GetEnv("INVADERS_LOG", ""), config.GetEnv("INVADERS_LOG_LEVEL", "info"))
	if err != nil {
		return err
	}
	defer closeLog()

	// The screen is owned by the game, so nothing may print to stdout while
	// raw mode is on.
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return loop.Run(ctx, os.Stdin, os.Stdout, loop.Options{
		Tuning:    tuning,
		HighScore: best,
		SaveScore: func(score int) error {
			return highscore.Save(scorePath, score)
		},
		Networked: true,
		HostAddr:  config.GetEnv("INVADERS_ADDR", defaultAddr),
		PeerAddr:  config.GetEnv("INVADERS_PEER", defaultPeer),
		Logger:    logger,
	})
}

// newLogger logs to path, or nowhere when path is empty.
func newLogger(path, level string) (*log.Logger, func(), error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}
	if path == "" {
		return log.New(io.Discard), func() {}, nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("open log: %w", err)
	}
	logger := log.NewWithOptions(f, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          "invaders",
	})
	return logger, func() { f.Close() }, nil
}
