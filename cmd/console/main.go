package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/jhoicas/polimarket-client/internal/app"
	"github.com/jhoicas/polimarket-client/internal/interfaces/console"
	"github.com/jhoicas/polimarket-client/pkg/config"
	"github.com/jhoicas/polimarket-client/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "cargar configuración:", err)
		os.Exit(1)
	}

	// En consola los logs van a stderr y solo a partir de warn, salvo LOG_LEVEL explícito.
	level := cfg.App.LogLevel
	if _, set := os.LookupEnv("LOG_LEVEL"); !set {
		level = "warn"
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: level, Output: os.Stderr})

	build := func(ctx context.Context, attachToken bool) (*app.Services, error) {
		return app.Build(ctx, cfg, log, app.Options{AttachToken: attachToken})
	}

	cliApp := console.NewApp(build, os.Stdin, os.Stdout)
	if err := cliApp.Run(os.Args); err != nil {
		if !errors.Is(err, console.ErrCommandFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
