package main

import (
	"errors"
	"fmt"
	"os"

	fontextractor "github.com/kataras/font-extractor"
	"github.com/kataras/font-extractor/pkg/classifier"
	"github.com/kataras/font-extractor/pkg/report"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

const version = fontextractor.Version

var (
	outputDir  string
	preferTTF  bool
	noWeb      bool
	overwrite  bool
	reportFile string
	debug      bool
	quiet      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "font-extractor <input-folder>",
		Short: "Extract fonts from ZIP archives into structured folders",
		Long:  "A tool to unpack a folder of font family ZIP archives and collect their font, web font and license files into one folder per family",
		Args:  cobra.ExactArgs(1),
		Run:   run,
	}

	rootCmd.Flags().StringVarP(&outputDir, "output", "o", fontextractor.DefaultOutputDir, "Output folder")
	rootCmd.Flags().BoolVar(&preferTTF, "prefer-ttf", false, "Prefer TTF files over OTF (default: prefer OTF)")
	rootCmd.Flags().BoolVar(&noWeb, "no-web", false, "Do not extract web fonts (.woff, .woff2, .eot, .svg)")
	rootCmd.Flags().BoolVar(&overwrite, "overwrite", false, "Overwrite existing font files")
	rootCmd.Flags().StringVar(&reportFile, "report", "", "Write a run report to this file (.yaml, .yml, .toml, .json or .md)")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print the final summary")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("font-extractor version %s\n", version)
		},
	}

	rootCmd.AddCommand(versionCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	inputDir := args[0]

	if reportFile != "" {
		if _, err := report.FormatFromPath(reportFile); err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	}

	if !quiet {
		cyan.Println("\n🔤 Font Extractor")
		cyan.Println("=================")
		cyan.Println()
	}

	opts := fontextractor.Options{
		InputDir:     inputDir,
		OutputDir:    outputDir,
		Prefer:       classifier.OTF,
		SkipWebFonts: noWeb,
		Overwrite:    overwrite,
	}
	if preferTTF {
		opts.Prefer = classifier.TTF
	}
	if !quiet {
		opts.Logger = newLogger(debug)
	}

	result, err := fontextractor.Run(opts)
	if err != nil {
		if errors.Is(err, fontextractor.ErrInputNotFound) {
			red.Printf("Error: Input folder '%s' does not exist.\n", inputDir)
		} else {
			red.Printf("Error: %v\n", err)
		}
		os.Exit(1)
	}

	rep := result.Report()

	fmt.Println()
	for i, line := range rep.SummaryLines() {
		if i == 0 {
			green.Println(line)
			continue
		}
		fmt.Println(line)
	}

	if reportFile != "" {
		if err := report.WriteFile(reportFile, rep); err != nil {
			red.Printf("Error: %v\n", err)
			os.Exit(1)
		}
		green.Printf("\n💾 Report written to %s\n", reportFile)
	}
}

// newLogger returns a leveled stderr logger; *log.Logger satisfies
// fontextractor.Logger.
func newLogger(debug bool) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level: log.InfoLevel,
	})
	if debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}
