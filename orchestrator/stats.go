// Package orchestrator drives one archive through the pipeline: open,
// filter, group, parse, and fan the resulting records out to a Sink
// through two bounded, backpressured channels.
package orchestrator

import (
	"fmt"
	"io"

	"github.com/codahale/hdrhistogram"
	"github.com/dustin/go-humanize"
)

// RunStats accumulates per-group credential and cookie-bundle counts over
// the course of a run and renders their distribution at the end, the way
// depotstats renders a ROM size distribution.
type RunStats struct {
	credentialHist *hdrhistogram.Histogram
	cookieHist     *hdrhistogram.Histogram

	groups           int
	credentialsTotal int64
	cookiesTotal     int64
}

// NewRunStats returns a zeroed RunStats.
func NewRunStats() *RunStats {
	return &RunStats{
		credentialHist: hdrhistogram.New(0, 1000000, 3),
		cookieHist:     hdrhistogram.New(0, 1000000, 3),
	}
}

// RecordGroup records how many credentials and cookie bundles one log
// group produced.
func (rs *RunStats) RecordGroup(numCredentials, numCookieBundles int) {
	rs.groups++
	rs.credentialsTotal += int64(numCredentials)
	rs.cookiesTotal += int64(numCookieBundles)
	rs.credentialHist.RecordValue(int64(numCredentials))
	rs.cookieHist.RecordValue(int64(numCookieBundles))
}

// WriteSummary renders the end-of-run summary to w: totals, elapsed-time
// style byte counts where relevant, and a cumulative distribution of
// per-group credential and cookie-bundle counts.
func (rs *RunStats) WriteSummary(w io.Writer) {
	fmt.Fprintf(w, "groups processed=%d\n", rs.groups)
	fmt.Fprintf(w, "credentials emitted=%d\n", rs.credentialsTotal)
	fmt.Fprintf(w, "cookie bundles emitted=%d\n", rs.cookiesTotal)

	writeDistribution(w, "credentials per group", rs.credentialHist)
	writeDistribution(w, "cookie bundles per group", rs.cookieHist)
}

func writeDistribution(w io.Writer, label string, h *hdrhistogram.Histogram) {
	fmt.Fprintf(w, "%s cumulative distribution =\n", label)
	fmt.Fprintf(w, "count, percentile, value\n")

	bs := h.CumulativeDistribution()
	for i := 0; i < len(bs); i++ {
		b := bs[i]
		if (i < len(bs)-1 && b.ValueAt != bs[i+1].ValueAt) || i == len(bs)-1 {
			fmt.Fprintf(w, "%d, %.8f, %s\n", b.Count, b.Quantile, humanize.Comma(b.ValueAt))
		}
	}
}
