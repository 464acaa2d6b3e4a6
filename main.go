// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/cachefsgo/internal/command"
	"github.com/staranto/cachefsgo/internal/config"
	mylog "github.com/staranto/cachefsgo/internal/log"
	"github.com/staranto/cachefsgo/internal/version"
)

var ctx = context.Background()

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = injectDefaults(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// injectDefaults splices the '<cmd>.defaults' arg set from cachefs.yaml in
// right after the subcommand, so explicit flags later on the line still win.
func injectDefaults(args []string) []string {
	// We know the first two args are going to be the executable and command.
	if strings.HasPrefix(args[1], "-") {
		return args
	}

	// Short-circuit for --help/-h; defaults would only muddy the help text.
	for _, a := range args {
		if a == "--help" || a == "-h" {
			return args
		}
	}

	setArgs, _ := config.GetStringSlice(args[1] + ".defaults")
	if len(setArgs) == 0 {
		return args
	}

	workingArgs := make([]string, 0, len(args)+len(setArgs))
	workingArgs = append(workingArgs, args[:2]...)
	for _, arg := range setArgs {
		workingArgs = append(workingArgs, strings.Fields(arg)...)
	}
	workingArgs = append(workingArgs, args[2:]...)

	log.Debugf("args=%v", workingArgs)
	return workingArgs
}
