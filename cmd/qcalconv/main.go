// Package main provides the CLI entry point for qcalconv.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ukaji3/qcalconv-go/internal/config"
	"github.com/ukaji3/qcalconv-go/internal/logging"
	"github.com/ukaji3/qcalconv-go/pkg/qcal"
	"github.com/ukaji3/qcalconv-go/pkg/qcal/output"
)

type cliOptions struct {
	configPath string
	logLevel   string
	summary    bool
	jsonPath   string
	pretty     bool
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	rootCmd := &cobra.Command{
		Use:   "qcalconv <input_report> <output.xlsx> <protocol_number>",
		Short: "Convert a qCal calibration report to an Excel workbook",
		Long: `qcalconv parses a qCal phantom calibration report and writes its study
parameters, ADC and T2 contrast VOI statistics and temperature readings to the
info, ADC, T2w and temperature sheets of one workbook, each tagged with the
protocol number.`,
		Args:         cobra.ExactArgs(3),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, opts)
		},
	}

	rootCmd.Flags().StringVar(&opts.configPath, "config", "", "YAML config file")
	rootCmd.Flags().StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.Flags().BoolVar(&opts.summary, "summary", false, "Add a summary sheet with VOI column statistics")
	rootCmd.Flags().StringVar(&opts.jsonPath, "json", "", "Also write the tables as JSON to this path (- for stdout)")
	rootCmd.Flags().BoolVar(&opts.pretty, "pretty", false, "Pretty-print JSON output")

	return rootCmd
}

func run(cmd *cobra.Command, args []string, opts *cliOptions) error {
	inputPath, outputPath := args[0], args[1]

	protocol, err := qcal.ParseProtocolNumber(args[2])
	if err != nil {
		return err
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("summary") {
		cfg.Output.Summary = opts.summary
	}
	if flags.Changed("pretty") {
		cfg.Output.Pretty = opts.pretty
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, _ := logging.WithRunID(logging.New(cfg.Logging, cmd.ErrOrStderr()))
	logger.Info("Converting report",
		slog.String("input", inputPath),
		slog.String("output", outputPath),
		slog.Int("protocol_number", protocol))

	wb, err := qcal.ConvertFile(inputPath, qcal.Options{
		ProtocolNumber: protocol,
		Summary:        cfg.Output.Summary,
		Logger:         logger,
	})
	if err != nil {
		logger.Error("Conversion failed", slog.String("error", err.Error()))
		return fmt.Errorf("conversion failed: %w", err)
	}

	// Serialize and write the JSON file before the workbook so a failure in
	// either step leaves no output behind.
	var jsonData []byte
	if opts.jsonPath != "" {
		jsonData, err = output.ToJSON(wb, cfg.Output.Pretty)
		if err != nil {
			return fmt.Errorf("serialization failed: %w", err)
		}
	}
	writeJSONFile := opts.jsonPath != "" && opts.jsonPath != "-"
	if writeJSONFile {
		if err := os.WriteFile(opts.jsonPath, jsonData, 0644); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}

	if err := output.WriteXLSX(wb, outputPath, output.XLSXOptions{AutoFilter: cfg.Output.AutoFilter}); err != nil {
		if writeJSONFile {
			os.Remove(opts.jsonPath)
		}
		return fmt.Errorf("failed to write workbook: %w", err)
	}

	if opts.jsonPath == "-" {
		fmt.Fprintln(cmd.OutOrStdout(), string(jsonData))
	}

	logger.Info("Workbook written",
		slog.String("output", outputPath),
		slog.Int("sheets", len(wb.Tables())))
	return nil
}
