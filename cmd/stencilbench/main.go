// stencilbench measures the effective bandwidth of a 7-point Laplacian
// sweep over a cubic grid, on an OCCA device or on the sequential host
// reference path, and reports the results as a summary or as CSV.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/notargets/stencilbench/backend"
	"github.com/notargets/stencilbench/bench"
	"github.com/notargets/stencilbench/launch"
	"github.com/notargets/stencilbench/report"
	"github.com/notargets/stencilbench/stencil"
)

func main() {
	os.Exit(run())
}

// run exists so deferred device teardown still happens before the process
// exit code is set.
func run() int {
	var (
		sizesFlag     = flag.String("n", "512", "cubic grid edge length L, or a comma-separated sweep (e.g. 128,256,512)")
		iterations    = flag.Int("iters", bench.DefaultIterations, "timed iterations per configuration (one extra warmup sweep is discarded)")
		precisionFlag = flag.String("precision", "float32", "element precision: float32 or float64")
		blockFlag     = flag.String("block", "512,1,1", "launch block shape as x,y,z")
		formatFlag    = flag.String("format", "summary", "output mode: summary or csv (one row per iteration)")
		backendFlag   = flag.String("backend", "gpu", "execution backend: gpu or cpu")
		fallback      = flag.Bool("fallback", false, "fall back to the cpu backend when no device is available")
		deviceFlag    = flag.String("device", "", "explicit OCCA device properties JSON, overriding the probe order")
	)
	flag.Parse()

	precision, err := stencil.ParsePrecision(*precisionFlag)
	if err != nil {
		log.Fatal(err)
	}
	cfg, err := launch.ParseConfig(*blockFlag)
	if err != nil {
		log.Fatal(err)
	}
	sizes, err := parseSizes(*sizesFlag)
	if err != nil {
		log.Fatal(err)
	}
	if *formatFlag != "summary" && *formatFlag != "csv" {
		log.Fatalf("unknown format %q (want summary or csv)", *formatFlag)
	}

	be, cleanup, err := selectBackend(*backendFlag, *deviceFlag, *fallback)
	if err != nil {
		log.Fatal(err)
	}
	defer cleanup()

	// The reference backend has no thread decomposition; its rows report
	// block 1,1,1.
	if be.Name() == "cpu" {
		cfg = launch.Config{BlockX: 1, BlockY: 1, BlockZ: 1}
	}

	var csvOut *report.CSVWriter
	var summary *report.Summary
	if *formatFlag == "csv" {
		csvOut = report.NewCSVWriter(os.Stdout)
	} else {
		summary = report.NewSummary(os.Stdout)
		summary.PrintHost()
	}

	// A failed configuration is reported and the sweep moves on; it never
	// poisons the other sizes.
	exitCode := 0
	for _, L := range sizes {
		rec := report.Record{
			Backend:   be.Name(),
			Device:    be.DeviceName(),
			Precision: precision,
			L:         L,
			Config:    cfg,
		}

		res, err := runOne(be, L, precision, cfg, *iterations)
		if err != nil {
			exitCode = 1
			if summary != nil {
				summary.PrintError(rec, err)
			} else {
				log.Printf("%s (%s) %s L=%d block=%s: %v",
					rec.Backend, rec.Device, rec.Precision, rec.L, rec.Config, err)
			}
			continue
		}

		if csvOut != nil {
			if err := csvOut.WriteIterations(rec, res); err != nil {
				log.Fatalf("write csv: %v", err)
			}
		} else {
			summary.Print(rec, res)
		}
	}
	return exitCode
}

func runOne(be backend.Backend, L int, p stencil.Precision, cfg launch.Config, iterations int) (bench.Result, error) {
	grid, err := stencil.NewGrid(L, L, L)
	if err != nil {
		return bench.Result{}, err
	}
	session, err := be.Prepare(grid, p)
	if err != nil {
		return bench.Result{}, err
	}
	defer session.Teardown()

	return bench.Run(session, cfg, launch.DataSize(grid, p), bench.Options{Iterations: iterations})
}

func selectBackend(name, deviceProps string, fallback bool) (backend.Backend, func(), error) {
	switch name {
	case "cpu":
		return backend.NewReference(), func() {}, nil
	case "gpu":
		var modes []string
		if deviceProps != "" {
			modes = []string{deviceProps}
		}
		dev, err := backend.NewDevice(modes...)
		if err != nil {
			var unavailable *backend.BackendUnavailableError
			if fallback && errors.As(err, &unavailable) {
				fmt.Fprintln(os.Stderr, "no device available, falling back to cpu backend")
				return backend.NewReference(), func() {}, nil
			}
			return nil, nil, err
		}
		return dev, dev.Free, nil
	default:
		return nil, nil, fmt.Errorf("unknown backend %q (want gpu or cpu)", name)
	}
}

func parseSizes(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	sizes := make([]int, 0, len(parts))
	for _, part := range parts {
		L, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return nil, fmt.Errorf("grid size %q invalid: %v", part, err)
		}
		sizes = append(sizes, L)
	}
	return sizes, nil
}
