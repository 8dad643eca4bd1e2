// Package main implements a machine level debugger for the Commodore 64
package main

import (
	"errors"
	"os"

	"github.com/retroenv/c64monitor/internal/app"
	"github.com/retroenv/c64monitor/internal/cli"
	"github.com/retroenv/c64monitor/internal/config"
	retroapp "github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := retroapp.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			app.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	app.PrintBanner(logger, opts, version, commit, date)

	machine, err := app.Load(logger, opts)
	if err != nil {
		logger.Fatal("Loading ROM failed", log.Err(err))
	}

	if opts.Export != "" {
		if err := app.Export(logger, machine, opts.Export); err != nil {
			logger.Fatal("Exporting listing failed", log.Err(err))
		}
		return
	}

	if err := app.Run(ctx, logger, opts, machine); err != nil {
		logger.Fatal("Monitor failed", log.Err(err))
	}
}
