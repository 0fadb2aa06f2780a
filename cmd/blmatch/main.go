// Copyright 2025 greeklink. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "blmatch",
		Usage: "Solve big-little matching problems",
		Commands: []*cli.Command{
			solveCmd,
			exampleCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Println("Error: ", err)
		os.Exit(1)
	}
}

var solveCmd = &cli.Command{
	Name:    "solve",
	Usage:   "Solve a matching request",
	Aliases: []string{"s"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "input",
			Required: true,
			Usage:    "specify the input request file (.json, .yaml)",
		},
		&cli.StringFlag{
			Name:     "output",
			Required: false,
			Usage:    "specify the output result.json",
		},
		&cli.StringFlag{
			Name:     "variant",
			Required: false,
			Usage:    "override the request variant (smp|smt|smti|optimized)",
		},
		&cli.Float64Flag{
			Name:     "weight",
			Required: false,
			Value:    0.5,
			Usage:    "specify the preference weight (0.0-1.0, optimized only)",
		},
		&cli.BoolFlag{
			Name:     "exactly-one",
			Required: false,
			Usage:    "force exactly one partner per agent (optimized only)",
		},
		&cli.DurationFlag{
			Name:     "budget",
			Required: false,
			Value:    30 * time.Second,
			Usage:    "specify the solver time budget",
		},
		&cli.BoolFlag{
			Name:     "quiet",
			Required: false,
			Usage:    "suppress the rendered tables",
		},
	},
	Action: func(ctx *cli.Context) error {
		var (
			inFile  = ctx.String("input")
			outFile = ctx.String("output")
			variant = ctx.String("variant")
			weight  = ctx.Float64("weight")
			exact   = ctx.Bool("exactly-one")
			budget  = ctx.Duration("budget")
			quiet   = ctx.Bool("quiet")
		)
		if !(weight >= 0.0 && weight <= 1.0) {
			return errors.New("invalid weight")
		}
		if budget <= 0 {
			return errors.New("invalid budget")
		}
		return doSolve(ctx.Context, inFile, outFile, variant,
			weight, ctx.IsSet("weight"), exact, budget, quiet)
	},
}

var exampleCmd = &cli.Command{
	Name:    "example",
	Usage:   "Write an example request for a variant",
	Aliases: []string{"e"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "variant",
			Required: false,
			Value:    "smp",
			Usage:    "specify the variant (smp|smt|smti|optimized)",
		},
		&cli.StringFlag{
			Name:     "out",
			Required: false,
			Usage:    "specify the output file (default stdout)",
		},
	},
	Action: func(ctx *cli.Context) error {
		return doExample(ctx.String("variant"), ctx.String("out"))
	},
}
