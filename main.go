package main

import (
	"fmt"
	"os"

	"github.com/naatacademy/naat-api/internal/cli"
	"github.com/naatacademy/naat-api/internal/config"
	"github.com/naatacademy/naat-api/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

type command interface {
	ParseFlags(args []string) error
	Run() error
}

func main() {
	config.LoadDotEnv()

	// If no arguments or "serve" command, run the HTTP server
	if len(os.Args) < 2 || os.Args[1] == "serve" {
		cfg := config.NewConfig()
		entrypoint.Run(cfg, Version)
		return
	}

	name := os.Args[1]
	args := os.Args[2:]

	var cmd command
	switch name {
	case "migrate":
		cmd = cli.NewMigrateCommand()
	case "reindex":
		cmd = cli.NewReindexCommand()
	case "admin-token":
		cmd = cli.NewAdminTokenCommand()
	case "version":
		fmt.Printf("naat-api %s (%s)\n", Version, Commit)
		return
	case "-h", "--help", "help":
		printUsage()
		return
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", name)
		printUsage()
		os.Exit(1)
	}

	if err := cmd.ParseFlags(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "Commands:\n")
	fmt.Fprintf(os.Stderr, "  serve         Start the HTTP server (default if no command given)\n")
	fmt.Fprintf(os.Stderr, "  migrate       Create or update the database schema\n")
	fmt.Fprintf(os.Stderr, "  reindex       Rebuild the search keys of articles and kalaam\n")
	fmt.Fprintf(os.Stderr, "  admin-token   Generate an admin token and its bcrypt hash\n")
	fmt.Fprintf(os.Stderr, "  version       Print the build version\n")
	fmt.Fprintf(os.Stderr, "\nUse '%s <command> -h' for help on a specific command.\n", os.Args[0])
}
