package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"quotebot/internal/app"
)

func main() {
	var (
		cfgPath string
		daemon  bool
	)
	flag.StringVar(&cfgPath, "config", "", "path to config file (json or yaml); optional when env vars are set")
	flag.BoolVar(&daemon, "daemon", false, "stay resident and run on the configured cron schedule")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	a, err := app.New(cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
	if daemon {
		err = a.RunDaemon(ctx)
	} else {
		err = a.RunOnce(ctx)
	}
	_ = a.Close()
	if err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}
