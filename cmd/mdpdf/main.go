// Command mdpdf converts Markdown documents to PDF through Pandoc and
// LaTeX, keeping a version ledger per output directory.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// A local .env may carry tool paths (PANDOC, MMDC, ...); absence is fine.
	_ = godotenv.Load()

	// Error ignored: maxprocs.Set only fails on an invalid GOMAXPROCS env
	// value, in which case runtime defaults apply and we continue.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	env := DefaultEnv()
	os.Exit(run(os.Args[1:], env))
}

// run dispatches subcommands and maps errors to exit codes.
func run(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	var err error
	switch args[0] {
	case "convert":
		err = runConvert(args[1:], env)
	case "history":
		err = runHistory(args[1:], env)
	case "init-metadata":
		err = runInitMetadata(args[1:], env)
	case "version", "--version":
		fmt.Fprintln(env.Stdout, Version)
		return ExitSuccess
	case "help", "-h", "--help":
		printUsage(env.Stdout)
		return ExitSuccess
	default:
		// Bare sources are a convert invocation.
		err = runConvert(args, env)
	}

	if err != nil {
		fmt.Fprintln(env.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
