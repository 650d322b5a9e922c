package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/df07/go-plane-raytracer/pkg/output"
	"github.com/df07/go-plane-raytracer/pkg/renderer"
	"github.com/df07/go-plane-raytracer/pkg/scene"
)

const (
	flagScene      = "scene"
	flagScenesDir  = "scenes-dir"
	flagWidth      = "width"
	flagHeight     = "height"
	flagWorkers    = "workers"
	flagTileSize   = "tile-size"
	flagOut        = "out"
	flagList       = "list"
	flagDebug      = "debug"
	flagS3Bucket   = "s3-bucket"
	flagS3Region   = "s3-region"
	flagS3Endpoint = "s3-endpoint"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "planetrace:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "planetrace",
		Usage: "render scenes built from clipped, transformed planes",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagScene,
				Aliases: []string{"s"},
				Value:   "default",
				Usage:   "built-in scene name or path to a JSON scene `FILE`",
			},
			&cli.StringFlag{
				Name:  flagScenesDir,
				Value: "scenes",
				Usage: "directory searched by --list",
			},
			&cli.IntFlag{Name: flagWidth, Usage: "image width (defaults to the scene's)"},
			&cli.IntFlag{Name: flagHeight, Usage: "image height (defaults to the scene's)"},
			&cli.IntFlag{Name: flagWorkers, Usage: "parallel workers (0 = CPU count)"},
			&cli.IntFlag{Name: flagTileSize, Value: renderer.DefaultConfig().TileSize, Usage: "tile size in pixels"},
			&cli.StringFlag{
				Name:    flagOut,
				Aliases: []string{"o"},
				Usage:   "output PNG `FILE` (defaults to output/<scene>/render_<timestamp>.png)",
			},
			&cli.BoolFlag{Name: flagList, Usage: "list available scenes and exit"},
			&cli.BoolFlag{Name: flagDebug, Usage: "enable debug logging"},
			&cli.StringFlag{Name: flagS3Bucket, EnvVars: []string{"PLANETRACE_S3_BUCKET"}, Usage: "also upload the render to this S3 bucket"},
			&cli.StringFlag{Name: flagS3Region, EnvVars: []string{"AWS_REGION"}, Value: "us-east-1", Usage: "S3 region"},
			&cli.StringFlag{Name: flagS3Endpoint, EnvVars: []string{"PLANETRACE_S3_ENDPOINT"}, Usage: "custom S3 endpoint"},
		},
		Action: renderAction,
	}
}

func renderAction(c *cli.Context) error {
	logger, err := newLogger(c.Bool(flagDebug))
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	if c.Bool(flagList) {
		return listScenes(c.App.Writer, c.String(flagScenesDir))
	}

	sceneName := c.String(flagScene)
	s, err := createScene(sceneName)
	if err != nil {
		return err
	}
	logger.Debug("loaded scene", zap.String("name", s.Name), zap.Int("primitives", len(s.Primitives)))

	rt := renderer.NewRaytracer(s, renderer.Config{
		Width:    c.Int(flagWidth),
		Height:   c.Int(flagHeight),
		Workers:  c.Int(flagWorkers),
		TileSize: c.Int(flagTileSize),
	}, renderer.NewZapLogger(logger.Sugar()))

	img, stats, err := rt.Render(c.Context)
	if err != nil {
		return err
	}
	logger.Debug("render counters", zap.Any("counters", stats.Counters.Snapshot()))

	path := c.String(flagOut)
	if path == "" {
		path = defaultOutputPath(sceneName, time.Now())
	}
	if err := output.SavePNG(img, path); err != nil {
		return err
	}
	logger.Info("render saved", zap.String("path", path))

	bucket := c.String(flagS3Bucket)
	if bucket == "" {
		return nil
	}
	uploader, err := output.NewS3Uploader(output.S3Config{
		Bucket:    bucket,
		Region:    c.String(flagS3Region),
		Endpoint:  c.String(flagS3Endpoint),
		AccessKey: os.Getenv("AWS_ACCESS_KEY_ID"),
		SecretKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
	})
	if err != nil {
		return err
	}
	uri, err := uploader.UploadPNG(c.Context, img, filepath.ToSlash(path))
	if err != nil {
		return err
	}
	logger.Info("render uploaded", zap.String("uri", uri))
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, errors.Wrap(err, "creating logger")
	}
	return logger, nil
}

// createScene resolves a built-in scene name or a JSON scene path
func createScene(name string) (*scene.Scene, error) {
	if name == "" {
		return nil, errors.New("scene name is required")
	}
	return scene.Lookup(name)
}

// defaultOutputPath places renders under output/<scene>/ with a timestamped name
func defaultOutputPath(sceneName string, now time.Time) string {
	dir := strings.TrimSuffix(filepath.Base(sceneName), filepath.Ext(sceneName))
	return filepath.Join("output", dir, fmt.Sprintf("render_%s.png", now.Format("20060102_150405")))
}

func listScenes(w io.Writer, dir string) error {
	scenes, err := scene.ListScenes(dir)
	for _, info := range scenes {
		line := fmt.Sprintf("  %-40s %s", info.ID, info.Name)
		if info.Description != "" {
			line += " - " + info.Description
		}
		fmt.Fprintln(w, line)
	}
	return err
}
