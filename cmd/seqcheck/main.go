package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/caiyueliang/client/internal/checker"
)

func main() {
	var (
		verbose       bool
		url           string
		streamTimeout float64
		dyna          bool
		offset        int
		modelName     string
	)

	flag.BoolVar(&verbose, "v", false, "Enable verbose output")
	flag.BoolVar(&verbose, "verbose", false, "Enable verbose output")
	flag.StringVar(&url, "u", "localhost:8001", "Inference server URL and its gRPC port")
	flag.StringVar(&url, "url", "localhost:8001", "Inference server URL and its gRPC port")
	flag.Float64Var(&streamTimeout, "t", 0, "Stream timeout in seconds. Zero means no timeout")
	flag.Float64Var(&streamTimeout, "stream-timeout", 0, "Stream timeout in seconds. Zero means no timeout")
	flag.BoolVar(&dyna, "d", false, "Assume dynamic sequence model")
	flag.BoolVar(&dyna, "dyna", false, "Assume dynamic sequence model")
	flag.IntVar(&offset, "o", 0, "Add offset to sequence ID used")
	flag.IntVar(&offset, "offset", 0, "Add offset to sequence ID used")
	flag.StringVar(&modelName, "m", "", "Model name overriding the defaults")
	flag.StringVar(&modelName, "model_name", "", "Model name overriding the defaults")
	flag.Parse()

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runner := checker.NewRunner(logger, os.Stdout)

	opts := checker.Options{
		URL:           url,
		StreamTimeout: time.Duration(streamTimeout * float64(time.Second)),
		Dyna:          dyna,
		Offset:        offset,
		ModelName:     modelName,
	}

	if err := runner.Run(context.Background(), opts); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("PASS: Sequence")
}
