// roulettectl is the interactive console tracker: it reads spins and
// prediction commands from stdin and keeps one in-memory session.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/MJE43/roulette-edge-go/internal/cli"
	"github.com/MJE43/roulette-edge-go/internal/freq"
	"github.com/MJE43/roulette-edge-go/internal/predict"
)

func main() {
	decay := flag.Float64("decay", freq.DefaultDecayFactor, "per-spin decay factor in (0, 1]")
	epsilon := flag.Float64("epsilon", freq.DefaultPruneEpsilon, "prune weights below this value")
	maxHistory := flag.Int("max-history", predict.DefaultMaxHistory, "spin records to retain")
	flag.Parse()

	predictor := predict.New(predict.Options{
		DecayFactor:  *decay,
		PruneEpsilon: *epsilon,
		MaxHistory:   *maxHistory,
	})

	loop := cli.New(predictor, os.Stdin, os.Stdout)
	if err := loop.Run(); err != nil {
		log.Fatalf("console loop failed: %v", err)
	}
}
