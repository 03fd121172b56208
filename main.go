package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/df07/go-whitted-raytracer/internal/config"
	"github.com/df07/go-whitted-raytracer/internal/logger"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("raytracer", flag.ContinueOnError)
	flags := config.CLIFlags(fs)
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Whitted Raytracer")
		fmt.Fprintln(fs.Output(), "Usage: raytracer [options] <scene_file | -scene name> [output_image]")
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Options:")
		fs.PrintDefaults()
		fmt.Fprintln(fs.Output())
		fmt.Fprintln(fs.Output(), "Output defaults to output/<scene>/render_<timestamp>.<format>")
	}
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	cfg, err := config.Load(flags)
	if err != nil {
		return err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return fmt.Errorf("failed to init logging: %w", err)
	}
	defer logger.Sync()
	log := logger.Named("cli")

	if flags.List {
		return listScenes(stdout)
	}

	sceneRef, output, err := resolveArgs(flags.Scene, fs.Args())
	if err != nil {
		fs.Usage()
		return err
	}

	s, name, err := createScene(sceneRef)
	if err != nil {
		return err
	}
	if output == "" {
		output = defaultOutputPath(cfg.Output, name, time.Now())
	}

	log.Infof("Rendering scene %q at %dx%d", name, cfg.Render.Width, cfg.Render.Height)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	opts := renderOptions(cfg.Render)
	opts.OnTile = func(tile renderer.TileCompletionResult) {
		log.Debugf("Tile %d/%d at (%d, %d)", tile.TileNumber, tile.TotalTiles, tile.TileX, tile.TileY)
	}

	rt := renderer.NewRaytracer(s, logger.Named("render"))
	buffer, stats, err := rt.Render(ctx, opts)
	if err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}

	log.Infof("Render completed in %v using %d workers (%.1f%% of pixels hit geometry)",
		stats.Elapsed, stats.Workers, 100*stats.HitRatio())

	if err := loaders.SaveImage(output, buffer.RGBA()); err != nil {
		return err
	}
	log.Infof("Render saved as %s", output)
	return nil
}

// resolveArgs picks the scene reference and optional output path from the
// -scene flag and the positional arguments
func resolveArgs(sceneFlag string, positional []string) (sceneRef, output string, err error) {
	if sceneFlag != "" {
		switch len(positional) {
		case 0:
			return sceneFlag, "", nil
		case 1:
			return sceneFlag, positional[0], nil
		}
		return "", "", fmt.Errorf("too many arguments with -scene: %v", positional)
	}

	switch len(positional) {
	case 0:
		return "", "", errors.New("no scene given: pass a scene file or -scene")
	case 1:
		return positional[0], "", nil
	case 2:
		return positional[0], positional[1], nil
	}
	return "", "", fmt.Errorf("too many arguments: %v", positional)
}

// createScene builds a built-in scene, a discovered "file:" scene or a scene file
func createScene(ref string) (*scene.Scene, string, error) {
	return loaders.ResolveScene(ref, scene.FindScenesDir())
}

// renderOptions maps the render config section onto renderer options
func renderOptions(rc config.RenderConfig) renderer.Options {
	return renderer.Options{
		Width:    rc.Width,
		Height:   rc.Height,
		TileSize: rc.TileSize,
		Workers:  rc.Workers,
		Seed:     rc.Seed,
		Shadow:   renderer.ShadowPolicyFor(rc.TransparentShadows),
	}
}

// defaultOutputPath returns output/<scene>/render_<timestamp>.<format>
func defaultOutputPath(oc config.OutputConfig, sceneName string, now time.Time) string {
	timestamp := now.Format("20060102_150405")
	return filepath.Join(oc.Dir, sceneName, fmt.Sprintf("render_%s.%s", timestamp, oc.Format))
}

func listScenes(w io.Writer) error {
	response, err := scene.ListAllScenes()
	if err != nil {
		return err
	}
	for _, group := range response.Groups {
		fmt.Fprintf(w, "%s:\n", group.Name)
		for _, info := range group.Scenes {
			if info.Description != "" {
				fmt.Fprintf(w, "  %-20s %s\n", info.ID, info.Description)
			} else {
				fmt.Fprintf(w, "  %s\n", info.ID)
			}
		}
	}
	return nil
}
