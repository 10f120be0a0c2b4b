// If you are AI: This is the main entrypoint for the flvedit tool.
// It handles configuration loading and dispatches to the subcommands.

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"flvedit/internal/config"
)

// usage prints the command summary to stderr.
func usage() {
	fmt.Fprintf(os.Stderr, `usage: flvedit [-config file] <command> [args]

commands:
  info   <file>                      header, tag list and decode issues
  tree   <file> <index|header>       field tree of one tag or the header
  hex    <file> <index|header>       hex dump of one tag or the header
  locate <file> <offset>             field that owns one byte offset
  delete <file> <index>              remove one tag from the file
  poke   <file> <offset> <hex byte>  overwrite one byte
  serve  [file...]                   HTTP API and change events
`)
	flag.PrintDefaults()
}

// main is the entrypoint for flvedit.
// It loads configuration and runs the requested command.
func main() {
	// Parse command-line flags
	configPath := flag.String("config", "", "Path to configuration file (defaults when empty)")
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	// Load configuration
	cfg, err := loadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}

	if err := run(cfg, flag.Args(), os.Stdout); err != nil {
		log.Fatalf("%s: %v", flag.Arg(0), err)
	}
}

// loadConfig reads path, or returns defaults when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}
