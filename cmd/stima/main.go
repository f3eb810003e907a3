// Command stima generates an estimates summary from a markdown quote
// file and writes it back into the document.
//
// Usage: stima [flags] <quote.md>
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/apalumbo/stima/internal/clipboard"
	"github.com/apalumbo/stima/internal/config"
	"github.com/apalumbo/stima/internal/document"
	"github.com/apalumbo/stima/internal/estimate"
	"github.com/apalumbo/stima/internal/phase"
	"github.com/apalumbo/stima/internal/render"
	"github.com/apalumbo/stima/internal/rewrite"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	defaults := config.Load()

	fs := flag.NewFlagSet("stima", flag.ContinueOnError)
	var (
		minRate   = fs.Float64("m", defaults.MinHourlyRate, "minimum hourly rate in euro")
		maxRate   = fs.Float64("M", defaults.MaxHourlyRate, "maximum hourly rate in euro")
		rate      = fs.Float64("r", 0, "single hourly rate in euro (overrides -m/-M)")
		minWeekly = fs.Float64("w", defaults.MinWeeklyHours, "minimum weekly hours")
		maxWeekly = fs.Float64("W", defaults.MaxWeeklyHours, "maximum weekly hours")
		weekly    = fs.Float64("H", 0, "single weekly hours (overrides -w/-W)")

		finalQuote  = fs.Bool("f", false, "render the final quote instead of the range summary")
		downPayment = fs.Int("p", defaults.DownPaymentPct, "down payment percentage")
		milestones  = fs.Int("k", defaults.Milestones, "number of payment milestones (0 uses the down payment)")
		feedback    = fs.Int("F", defaults.FeedbackWeeks, "feedback window in weeks")

		output = fs.String("o", "", "output file for the summary (\"-\" for stdout; .html writes the whole document as HTML)")
		noClip = fs.Bool("c", false, "do not copy the summary to the clipboard")
		noEdit = fs.Bool("n", false, "do not rewrite the quote file in place")
	)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: stima [flags] <quote file>\n\nFlags:\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}
	path := fs.Arg(0)

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg := estimate.Config{
		Rate:           estimate.Ranged(*minRate, *maxRate),
		WeeklyHours:    estimate.Ranged(*minWeekly, *maxWeekly),
		DownPaymentPct: *downPayment,
		Milestones:     *milestones,
		FeedbackWeeks:  *feedback,
		FinalQuote:     *finalQuote,
	}
	if *rate > 0 {
		cfg.Rate = estimate.Single(*rate)
	}
	if *weekly > 0 {
		cfg.WeeklyHours = estimate.Single(*weekly)
	}
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		return 1
	}

	text, err := readQuote(path)
	if err != nil {
		log.Error("cannot read quote file", "file", path, "error", err)
		return 1
	}

	extractor := phase.NewExtractor(log)
	phases := extractor.Extract(text)
	if len(phases) == 0 {
		log.Error("no phases found in the file, check the document format", "file", path)
		return 1
	}

	log.Info("phases extracted", "file", path, "count", len(phases))
	for _, p := range phases {
		log.Info("phase", "name", p.Name, "min_hours", p.MinHours, "max_hours", p.MaxHours)
	}

	agg, err := estimate.Compute(phases, cfg)
	if err != nil {
		log.Error("compute estimate", "error", err)
		return 1
	}

	summary := render.Summary(phases, agg, cfg)
	updated := rewrite.ApplyOrAppend(text, summary)

	// From here on every failure is a warning: the run already has its
	// result and still exits zero.
	if !*noEdit {
		if !document.Rewritable(path) {
			log.Warn("input format does not support in-place rewrite", "file", path)
		} else if err := os.WriteFile(path, []byte(updated), 0644); err != nil {
			log.Warn("cannot rewrite quote file", "file", path, "error", err)
		} else {
			log.Info("summary written into quote file", "file", path)
		}
	}

	writeOutput(log, *output, summary, updated)

	if !*noClip {
		if err := clipboard.Copy(summary); err != nil {
			log.Warn("cannot copy summary to clipboard", "error", err)
		} else {
			log.Info("summary copied to clipboard")
		}
	}

	return 0
}

func readQuote(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	reader, err := document.ForFile(path)
	if err != nil {
		return "", err
	}
	return reader.Read(f, filepath.Base(path))
}

// writeOutput emits the summary to stdout or to the requested file. An
// .html target gets the whole updated document rendered as HTML.
func writeOutput(log *slog.Logger, output, summary, updated string) {
	switch {
	case output == "" || output == "-":
		fmt.Println(summary)
	case strings.HasSuffix(strings.ToLower(output), ".html"):
		page, err := render.DocumentHTML([]byte(updated))
		if err != nil {
			log.Warn("cannot render html output", "file", output, "error", err)
			return
		}
		if err := os.WriteFile(output, page, 0644); err != nil {
			log.Warn("cannot write output file", "file", output, "error", err)
			return
		}
		log.Info("document written", "file", output)
	default:
		if err := os.WriteFile(output, []byte(summary), 0644); err != nil {
			log.Warn("cannot write output file", "file", output, "error", err)
			return
		}
		log.Info("summary written", "file", output)
	}
}
