/*
 * Copyright 2025 Humaid Alqasimi
 * SPDX-License-Identifier: Apache-2.0
 */
package main

import (
	"context"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/humaidq/hemascope/cmd"
)

func main() {
	// A .env file is optional; real environment variables win either way.
	_ = godotenv.Load()

	app := &cli.Command{
		Name:  "hemascope",
		Usage: "Hemascope - Blood Report Analysis Viewer",
		Commands: []*cli.Command{
			cmd.CmdStart,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
