package phase

import (
	"bufio"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Phase is one billable unit of project work with its hour estimate.
// MinHours and MaxHours are equal when the document gave a single value.
type Phase struct {
	Name     string `json:"name"`
	MinHours int    `json:"min_hours"`
	MaxHours int    `json:"max_hours"`
}

// reservedLabels are the headings the summary renderer itself emits.
// A level-3 heading whose label starts with one of these never opens a
// phase, so re-running the tool on its own output stays stable.
var reservedLabels = []string{
	"Riepilogo stime",
	"Stima economica",
	"Timeline stimata",
	"Preventivo finale",
	"Costo del progetto",
	"Timeline",
}

const estimatePrefix = "**Stima ore**:"

var (
	rangeHours  = regexp.MustCompile(`(\d+)[-–](\d+)\s+ore`)
	singleHours = regexp.MustCompile(`(\d+)\s+ore`)
)

// Extractor scans quote documents for phase headings and their estimate
// lines. Parse anomalies are reported on the logger and never abort the
// scan.
type Extractor struct {
	log *slog.Logger
}

func NewExtractor(log *slog.Logger) *Extractor {
	if log == nil {
		log = slog.Default()
	}
	return &Extractor{log: log}
}

// Extract walks the document line by line and returns the phases in
// document order. A `### ` heading opens a candidate phase; the next
// `**Stima ore**:` line closes it. A heading still open when another
// heading arrives (or the input ends) contributes no phase.
func (e *Extractor) Extract(text string) []Phase {
	var phases []Phase
	var open string
	var hasOpen bool

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if label, ok := headingLabel(line); ok {
			if hasOpen {
				e.log.Debug("phase heading had no estimate line, discarded", "phase", open)
			}
			open, hasOpen = label, true
			continue
		}

		if hasOpen && strings.HasPrefix(line, estimatePrefix) {
			lo, hi, ok := parseHours(line)
			if !ok {
				e.log.Warn("estimate line matched no hour pattern", "phase", open, "line", line)
				continue
			}
			phases = append(phases, Phase{Name: open, MinHours: lo, MaxHours: hi})
			open, hasOpen = "", false
			continue
		}

		if strings.Contains(line, "Stima") && strings.Contains(line, "ore") {
			e.log.Warn("line mentions an hour estimate but was not parsed", "line", line)
		}
	}
	if err := scanner.Err(); err != nil {
		e.log.Warn("document scan stopped early", "error", err)
	}

	return phases
}

// headingLabel returns the label of a candidate phase heading, or false
// for anything else (non-headings, empty labels, reserved labels).
func headingLabel(trimmed string) (string, bool) {
	if !strings.HasPrefix(trimmed, "### ") {
		return "", false
	}
	label := trimmed[4:]
	if label == "" {
		return "", false
	}
	for _, reserved := range reservedLabels {
		if strings.HasPrefix(label, reserved) {
			return "", false
		}
	}
	return label, true
}

// parseHours extracts the hour bounds from an estimate line. The range
// pattern is tried first so "10-15 ore" is never read as a single "15
// ore". Inverted ranges count as no match.
func parseHours(line string) (lo, hi int, ok bool) {
	if m := rangeHours.FindStringSubmatch(line); m != nil {
		lo, errLo := strconv.Atoi(m[1])
		hi, errHi := strconv.Atoi(m[2])
		if errLo != nil || errHi != nil || lo > hi {
			return 0, 0, false
		}
		return lo, hi, true
	}
	if m := singleHours.FindStringSubmatch(line); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return 0, 0, false
		}
		return n, n, true
	}
	return 0, 0, false
}
