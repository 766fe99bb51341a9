package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/spf13/cobra"

	"goasterix/internal/app"
)

var errRoundTripFailed = errors.New("round trip validation failed")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd(os.Stdin, os.Stdout).ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	var config app.Config

	rootCmd := &cobra.Command{
		Use:   "goasterix",
		Short: "ASTERIX surveillance data codec",
		Long: `ASTERIX encoder and decoder for EUROCONTROL surveillance data.

Decodes data blocks of categories 001, 019, 020, 021, 034, 048 and 062 to
JSON lines, and runs simulated encode/decode round trips with validation.

Example usage:
  goasterix decode capture.ast
  goasterix decode --hex --category 48 < dump.hex
  goasterix roundtrip --category 62 --targets 20`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if config.ShowVersion {
				app.ShowVersion(out)
				return nil
			}
			return cmd.Help()
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)
	rootCmd.PersistentFlags().BoolVarP(&config.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&config.ShowVersion, "version", false, "Show version information")

	var category uint

	decodeCmd := &cobra.Command{
		Use:   "decode [file]",
		Short: "Decode data blocks to JSON lines",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Category = uint8(category)

			r := cmd.InOrStdin()
			if len(args) == 1 {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}

			application := app.NewApplication(config)
			if config.OutputDir != "" {
				_, err := application.Archive(cmd.Context(), r)
				return err
			}
			_, err := application.Decode(cmd.Context(), r, cmd.OutOrStdout())
			return err
		},
	}
	decodeCmd.Flags().BoolVar(&config.HexInput, "hex", false, "Input is hex text")
	decodeCmd.Flags().UintVarP(&category, "category", "c", 0, "Decode only this category")
	decodeCmd.Flags().StringVarP(&config.OutputDir, "output-dir", "o", "", "Archive records in daily files in this directory")
	decodeCmd.Flags().BoolVarP(&config.UseUTC, "utc", "u", true, "Use UTC for file rotation")
	decodeCmd.Flags().IntVar(&config.KeepDays, "keep-days", 0, "Remove archived files older than this many days (0 keeps all)")

	roundTripCmd := &cobra.Command{
		Use:   "roundtrip",
		Short: "Encode a simulated scenario, decode it and validate the result",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			config.Category = uint8(category)

			stats, err := app.NewApplication(config).RoundTrip(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if !stats.Success() {
				return errRoundTripFailed
			}
			return nil
		},
	}
	roundTripCmd.Flags().StringVar(&config.ConfigFile, "config", "", "YAML configuration file")
	roundTripCmd.Flags().UintVarP(&category, "category", "c", 0, "Category to generate (21, 48 or 62)")
	roundTripCmd.Flags().IntVarP(&config.Targets, "targets", "n", 0, "Number of targets")
	roundTripCmd.Flags().Int64Var(&config.Seed, "seed", 0, "Random seed")

	describeCmd := &cobra.Command{
		Use:   "describe [category]",
		Short: "List the data items of a category, or the supported categories",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return app.Categories(cmd.OutOrStdout())
			}
			cat, err := strconv.ParseUint(args[0], 10, 8)
			if err != nil {
				return fmt.Errorf("invalid category %q", args[0])
			}
			return app.Describe(cmd.OutOrStdout(), uint8(cat))
		},
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.ShowVersion(cmd.OutOrStdout())
		},
	}

	rootCmd.AddCommand(decodeCmd, roundTripCmd, describeCmd, versionCmd)
	return rootCmd
}
