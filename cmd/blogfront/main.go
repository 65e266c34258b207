package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/blogfront/internal/app"
)

var version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional, defaults to ~/.config/blogfront/config.toml)")
	prefsPath := flag.String("prefs", "", "override preferences path (optional)")
	mode := flag.String("mode", string(app.ModeServe), "front end to run: serve or tui")
	listen := flag.String("listen", "", "listen address in serve mode (optional, overrides config)")
	flag.Parse()

	parsed, err := app.ParseMode(*mode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "blogfront: %v\n", err)
		return 2
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		Mode:       parsed,
		Listen:     *listen,
		Version:    version,
	}
	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "blogfront: %v\n", err)
		return 1
	}
	return 0
}
