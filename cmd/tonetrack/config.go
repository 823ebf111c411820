package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
)

// config holds the command line options. Defaults come from the environment,
// flags override them.
type config struct {
	SampleRate  int
	OutputDir   string
	MetricsFile string
	Stdout      bool
	Play        bool
	Wav         bool
	Raw         bool
	Blocks      bool
	Debug       bool
	Demo        bool
	Help        bool
	Version     bool
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// parseConfig parses args (without the program name) and returns the config
// and the remaining positional arguments. Errors are also reported to usage,
// the way the flag package reports its own.
func parseConfig(args []string, usage io.Writer) (config, []string, error) {
	var cfg config
	fs := flag.NewFlagSet("tonetrack", flag.ContinueOnError)
	fs.SetOutput(usage)
	fs.IntVar(&cfg.SampleRate, "r", envInt("TONETRACK_SAMPLE_RATE", 0), "Sample rate in Hz, overriding the one in the score files. 0 keeps the rate of each score.")
	fs.StringVar(&cfg.OutputDir, "o", envStr("TONETRACK_OUTPUT_DIR", ""), "Directory where to output all files. The directory and its parents are created if needed. By default, files are placed in the working directory.")
	fs.StringVar(&cfg.MetricsFile, "m", envStr("TONETRACK_METRICS_FILE", ""), "Write render metrics to this file in the Prometheus text format.")
	fs.BoolVar(&cfg.Stdout, "s", false, "Do not write files; write the .wav to standard output instead.")
	fs.BoolVar(&cfg.Play, "p", false, "Play the rendered tracks.")
	fs.BoolVar(&cfg.Wav, "w", false, "Output the rendered track as .wav file (default behaviour when no other output is defined).")
	fs.BoolVar(&cfg.Raw, "raw", false, "Output the rendered track as headerless 16-bit .raw file.")
	fs.BoolVar(&cfg.Blocks, "b", false, "Dump every block of the track as a separate .raw file into the output directory.")
	fs.BoolVar(&cfg.Debug, "d", false, "Log debug information in a human readable format.")
	fs.BoolVar(&cfg.Demo, "demo", false, "Render the built in demo score. Input files are not needed.")
	fs.BoolVar(&cfg.Help, "h", false, "Show help.")
	fs.BoolVar(&cfg.Version, "v", false, "Print version.")
	fs.Usage = func() {
		fmt.Fprintf(usage, "Tonetrack command line utility for rendering .yml/.json score files to .wav.\nUsage: tonetrack [flags] [path ...]\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return cfg, nil, err
	}
	if cfg.SampleRate < 0 {
		err := fmt.Errorf("sample rate should be >= 0, got %d", cfg.SampleRate)
		fmt.Fprintln(usage, err)
		return cfg, nil, err
	}
	if !cfg.Wav && !cfg.Raw && !cfg.Blocks && !cfg.Play {
		cfg.Wav = true // if the user gives nothing to output, then the default behaviour is to write the .wav
	}
	if fs.NArg() == 0 && !cfg.Demo && !cfg.Version {
		cfg.Help = true
	}
	if cfg.Help {
		fs.Usage()
	}
	return cfg, fs.Args(), nil
}
