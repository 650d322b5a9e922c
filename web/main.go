package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/df07/go-plane-raytracer/web/server"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	app := &cli.App{
		Name:  "planetrace-web",
		Usage: "serve plane scene renders over HTTP",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Value: 8080, Usage: "port to serve on"},
			&cli.StringFlag{Name: "scenes-dir", Value: "scenes", Usage: "directory of JSON scenes"},
		},
		Action: func(c *cli.Context) error {
			logger, err := zap.NewProduction()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			webServer := server.NewServer(c.Int("port"), c.String("scenes-dir"), logger)
			logger.Info("visit the server to start rendering", zap.String("url", fmt.Sprintf("http://localhost:%d/api/scenes", c.Int("port"))))
			return webServer.Start(c.Context)
		},
	}

	if err := app.RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "planetrace-web:", err)
		os.Exit(1)
	}
}
