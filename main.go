/*
patchview shows a Wavefront mesh or a file of Bezier patches in a window, or
renders one to a PNG with -snapshot.

	patchview [-config viewer.toml] [-coarseness N] [-watch=false] model.bez
	patchview -snapshot out.png model.obj
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/patchview/engine"
	"github.com/spaghettifunk/patchview/engine/assets"
	"github.com/spaghettifunk/patchview/engine/config"
	"github.com/spaghettifunk/patchview/engine/core"
	"github.com/spaghettifunk/patchview/viewer"
)

func main() {
	var (
		configPath = flag.String("config", "", "TOML settings file layered over the defaults")
		snapshot   = flag.String("snapshot", "", "render to this PNG without a window and exit")
		coarseness = flag.Int("coarseness", 0, "initial detail level for bezier models (0 keeps the configured one)")
		watch      = flag.Bool("watch", true, "reload the model when the file changes")
		dumpConfig = flag.Bool("dump-config", false, "print the effective settings as TOML and exit")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] model.(bez|obj)\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		core.LogFatal("loading config: %s", err)
	}
	core.SetLogLevel(cfg.Log.Level)

	if *dumpConfig {
		out, err := cfg.Encode()
		if err != nil {
			core.LogFatal("encoding config: %s", err)
		}
		os.Stdout.Write(out)
		return
	}

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	modelPath := flag.Arg(0)

	if *snapshot != "" {
		if err := writeSnapshot(cfg, modelPath, *coarseness, *snapshot); err != nil {
			core.LogFatal("snapshot: %s", err)
		}
		return
	}

	v := viewer.New(cfg, viewer.Options{
		ModelPath:  modelPath,
		Coarseness: *coarseness,
		Watch:      *watch,
	})

	e, err := engine.New(v.Game)
	if err != nil {
		core.LogFatal("creating engine: %s", err)
	}

	if err := e.Initialize(); err != nil {
		core.LogFatal("initializing engine: %s", err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	// The loop picks the quit up on the main thread.
	go func() {
		<-sigCh
		core.EventPost(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError("shutdown: %s", err)
	}
	if runErr != nil {
		core.LogFatal("%s", runErr)
	}
}

func writeSnapshot(cfg *config.Config, modelPath string, coarseness int, out string) error {
	am, err := assets.NewAssetManager()
	if err != nil {
		return err
	}
	defer am.Shutdown()

	model, err := am.Load(modelPath)
	if err != nil {
		return err
	}

	f, err := os.Create(out)
	if err != nil {
		return err
	}
	if err := viewer.Snapshot(cfg, model, coarseness, f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	core.LogInfo("wrote %s (%dx%d)", out, cfg.Snapshot.Width, cfg.Snapshot.Height)
	return nil
}
