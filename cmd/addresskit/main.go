package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/mitchellh/cli"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/addresskit/internal/commands"
)

const version = "1.0.0"

// main runs the addresskit lookup CLI.
func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()

	ui := &cli.BasicUi{
		Reader:      bufio.NewReader(os.Stdin),
		Writer:      os.Stdout,
		ErrorWriter: os.Stderr,
	}

	c := &cli.CLI{
		Name:     "addresskit",
		Args:     os.Args[1:],
		Version:  version,
		Commands: commands.Commands(ui),
	}

	exitCode, err := c.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	os.Exit(exitCode)
}
