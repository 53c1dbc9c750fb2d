/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/flamego/csrf"
	"github.com/flamego/flamego"
	"github.com/flamego/session"
	"github.com/flamego/template"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/hemascope/analysis"
	"github.com/humaidq/hemascope/logging"
	"github.com/humaidq/hemascope/routes"
	"github.com/humaidq/hemascope/static"
	"github.com/humaidq/hemascope/templates"
)

var CmdStart = &cli.Command{
	Name:    "start",
	Aliases: []string{"run"},
	Usage:   "Start the web server",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "port",
			Value: "8080",
			Usage: "the web server port",
		},
		&cli.StringFlag{
			Name:    "analysis-url",
			Sources: cli.EnvVars("ANALYSIS_URL"),
			Usage:   "base URL of the blood report analysis service (e.g., http://localhost:5000)",
		},
		&cli.BoolFlag{
			Name:    "show-abnormalities",
			Sources: cli.EnvVars("SHOW_ABNORMALITIES"),
			Value:   false,
			Usage:   "show the abnormalities summary section on the results page",
		},
		&cli.BoolFlag{
			Name:  "dev",
			Value: false,
			Usage: "enables development mode (for templates)",
		},
	},
	Action: start,
}

func start(ctx context.Context, cmd *cli.Command) error {
	logging.Init()

	client, err := analysis.NewClient(cmd.String("analysis-url"))
	if err != nil {
		return err
	}

	f := flamego.Classic()

	// Setup flamego
	fs, err := template.EmbedFS(templates.Templates, ".", []string{".html"})
	if err != nil {
		return fmt.Errorf("failed to load templates: %w", err)
	}
	f.Use(session.Sessioner())
	f.Use(csrf.Csrfer())
	f.Use(template.Templater(template.Options{
		FileSystem: fs,
	}))
	f.Use(flamego.Static(flamego.StaticOptions{
		FileSystem: http.FS(static.Static),
	}))
	f.Use(routes.RequestLogger)
	f.Use(routes.NoCacheHeaders())
	f.Use(routes.CSRFInjector())
	f.Use(routes.FlashInjector())

	f.MapTo(client, (*routes.Analyzer)(nil))
	f.Map(routes.Options{
		ShowAbnormalities: cmd.Bool("show-abnormalities"),
	})

	f.Get("/", routes.Home)
	f.Get("/enter-report", routes.EnterReportForm)
	f.Post("/enter-report", csrf.Validate, routes.SubmitReport)
	f.Get("/results", routes.Results)
	f.Get("/results/export", routes.ExportReport)

	port := cmd.String("port")

	appLogger.Info("Starting web server", "port", port)
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%s", port),
		Handler:      f,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 60 * time.Second,
		ErrorLog:     requestStdLogger,
	}

	return srv.ListenAndServe()
}
