// Package cli implements the interactive console protocol: one line per
// spin or command, dispatched to a single predictor session.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/MJE43/roulette-edge-go/internal/predict"
	"github.com/MJE43/roulette-edge-go/internal/wheel"
)

// Loop is the interactive read-parse-dispatch loop over one predictor.
type Loop struct {
	predictor *predict.Predictor
	in        io.Reader
	out       io.Writer
}

// New creates a loop reading commands from in and printing to out.
func New(p *predict.Predictor, in io.Reader, out io.Writer) *Loop {
	return &Loop{predictor: p, in: in, out: out}
}

// Run processes lines until "quit" or EOF. Malformed input is reported and
// the loop continues; the predictor never sees an invalid position.
func (l *Loop) Run() error {
	fmt.Fprintln(l.out, "Roulette spin tracker")
	fmt.Fprintln(l.out, "Enter spins as: <number 0-36> [dealer]")
	fmt.Fprintln(l.out, "Commands:")
	fmt.Fprintln(l.out, "  predict               : prediction for the next spin")
	fmt.Fprintln(l.out, "  predict dealer <name> : prediction including dealer zones")
	fmt.Fprintln(l.out, "  quit                  : exit")

	scanner := bufio.NewScanner(l.in)
	for {
		fmt.Fprint(l.out, "> ")
		if !scanner.Scan() {
			break
		}
		if !l.dispatch(strings.TrimSpace(scanner.Text())) {
			break
		}
	}
	return scanner.Err()
}

// dispatch handles one input line; returns false when the loop should end.
func (l *Loop) dispatch(line string) bool {
	if line == "" {
		return true
	}
	parts := strings.Fields(line)

	switch strings.ToLower(parts[0]) {
	case "quit":
		fmt.Fprintln(l.out, "Goodbye.")
		return false

	case "predict":
		dealer := ""
		if len(parts) == 3 && strings.ToLower(parts[1]) == "dealer" {
			dealer = parts[2]
		} else if len(parts) != 1 {
			fmt.Fprintln(l.out, "Usage: predict [dealer <name>]")
			return true
		}
		report, err := l.predictor.TopN(0, dealer)
		if err != nil {
			fmt.Fprintf(l.out, "Cannot predict: %v\n", err)
			return true
		}
		RenderReport(l.out, report)
		return true

	default:
		l.recordLine(parts)
		return true
	}
}

// recordLine parses "<number> [dealer]" and records the spin.
func (l *Loop) recordLine(parts []string) {
	number, err := strconv.Atoi(parts[0])
	if err != nil {
		fmt.Fprintln(l.out, "Invalid input. Enter a number (0-36), 'predict', or 'quit'.")
		return
	}
	if !wheel.Valid(number) {
		fmt.Fprintln(l.out, "Invalid number. Must be 0-36.")
		return
	}

	dealer := ""
	if len(parts) > 1 {
		dealer = parts[1]
	}

	if err := l.predictor.AddSpin(number, dealer); err != nil {
		fmt.Fprintf(l.out, "Failed to record spin: %v\n", err)
		return
	}

	if dealer != "" {
		fmt.Fprintf(l.out, "Recorded spin #%d: number %d, dealer %s\n", l.predictor.SpinCount(), number, dealer)
	} else {
		fmt.Fprintf(l.out, "Recorded spin #%d: number %d\n", l.predictor.SpinCount(), number)
	}
}

// RenderReport prints a prediction report as text.
func RenderReport(w io.Writer, r *predict.Report) {
	fmt.Fprintf(w, "Spin #%d prediction (direction: %s)\n", r.SpinIndex, r.Direction)

	fmt.Fprintln(w, "\nTop distance-based candidates:")
	for _, c := range r.Candidates {
		fmt.Fprintf(w, "  Number %d (distance %d steps) - probability %.2f%%\n", c.Position, c.Distance, c.Probability*100)
	}

	fmt.Fprintln(w, "\nTop hot numbers (weighted):")
	for _, n := range r.HotNumbers {
		fmt.Fprintf(w, "  Number %d - weighted freq %.2f (%.2f%%)\n", n.Position, n.Weight, n.Probability*100)
	}

	fmt.Fprintln(w, "\nColor distribution (weighted):")
	for _, c := range r.Colors {
		fmt.Fprintf(w, "  %s - %.2f%%\n", capitalize(string(c.Color)), c.Probability*100)
	}

	fmt.Fprintln(w, "\nTop hot zones overall:")
	for _, z := range r.HotZones {
		fmt.Fprintf(w, "  Zone %d - weighted freq %.2f (%.2f%%)\n", z.Zone, z.Weight, z.Probability*100)
	}

	if r.ByDealer != nil {
		fmt.Fprintf(w, "\nTop hot zones for dealer '%s':\n", r.ByDealer.Dealer)
		if !r.ByDealer.HasData {
			fmt.Fprintln(w, "  No data for this dealer yet.")
		}
		for _, z := range r.ByDealer.Zones {
			fmt.Fprintf(w, "  Zone %d - weighted freq %.2f (%.2f%%)\n", z.Zone, z.Weight, z.Probability*100)
		}
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
