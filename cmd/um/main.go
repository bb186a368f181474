// Command um runs a UM-32 program image to completion against the
// console, reading from stdin and writing to stdout.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/umvm/um32/internal/config"
	"github.com/umvm/um32/pkg/um"
)

const version = "1.0.0"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var cfg config.Config
	ran := false

	rootCmd := &cobra.Command{
		Use:          "um <image>",
		Short:        "Run a UM-32 program image",
		Version:      version,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, positional []string) error {
			cfg.ImagePath = positional[0]
			if err := cfg.Validate(); err != nil {
				return err
			}
			ran = true
			return nil
		},
	}
	rootCmd.SetArgs(args)
	rootCmd.Flags().StringVarP(&cfg.MirrorPath, "output", "o", "", "additionally mirror stdout bytes to this file")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "log a diagnostic line to stderr on fault")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}
	if !ran {
		// --version or --help short-circuited RunE; nothing left to do.
		return 0
	}

	return execute(cfg)
}

func execute(cfg config.Config) int {
	imageFH, err := os.Open(cfg.ImagePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening image file: %s\n", err)
		return 3
	}
	defer imageFH.Close()

	var mirror io.Writer
	if cfg.MirrorPath != "" {
		mirrorFH, err := os.Create(cfg.MirrorPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error opening output file: %s\n", err)
			return 3
		}
		defer mirrorFH.Close()
		mirror = mirrorFH
	}

	var logger *log.Logger
	if cfg.Verbose {
		logger = log.New(os.Stderr, "um: ", log.LstdFlags)
	}

	engine, loadErr := um.Load(imageFH, os.Stdin, os.Stdout, mirror, logger)
	if loadErr != nil {
		fmt.Fprintf(os.Stderr, "error loading program: %s\n", loadErr)
		return 3
	}

	if err := engine.Run(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 4
	}
	return 0
}
