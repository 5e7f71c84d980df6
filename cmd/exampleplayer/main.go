// Command exampleplayer is a reference bot built on package client.
//
// It supports two subcommands:
//
//	run    connect and play a scripted random strategy, analogous to the
//	       original source's testplayer.py
//	bench  play a fixed number of rounds without speculation and report
//	       total and per-round wall-clock time, analogous to the original
//	       source's benchplayer.py
package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/battlecode-hq/botclient/botenv"
	"github.com/battlecode-hq/botclient/client"
	"github.com/battlecode-hq/botclient/geometry"
	"github.com/battlecode-hq/botclient/world"
)

func main() {
	cmd := &cli.Command{
		Name:  "exampleplayer",
		Usage: "a reference battlecode bot",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Value: "exampleplayer", Usage: "bot name sent in the login command"},
		},
		Commands: []*cli.Command{
			{
				Name:  "run",
				Usage: "connect and play a scripted random strategy until the game ends",
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return runPlayer(cmd.String("name"))
				},
			},
			{
				Name:  "bench",
				Usage: "play a fixed number of rounds and report wall-clock time per round",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "rounds", Value: 1000, Usage: "number of rounds to play"},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return benchPlayer(cmd.String("name"), cmd.Int("rounds"))
				},
			},
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func connect(name string) (*client.Game, error) {
	cfg := botenv.Load()
	return client.NewGame(name, cfg.PlayerKey)
}

// randomDirection picks uniformly among the 8 canonical directions,
// mirroring testplayer.py's `random.choice(list(battlecode.Direction.all()))`.
func randomDirection() geometry.Direction {
	dirs := geometry.Directions()
	return dirs[rand.Intn(len(dirs))]
}

func runPlayer(name string) error {
	game, err := connect(name)
	if err != nil {
		return fmt.Errorf("exampleplayer: connect: %w", err)
	}
	defer game.Close()

	for st := range game.Turns(false, true) {
		for _, h := range st.Entities(world.EntityFilter{}) {
			if h.Entity().Team != st.MyTeam().ID || !h.CanAct() {
				continue
			}
			d := randomDirection()
			switch {
			case rand.Float64() < 0.2 && h.CanBuild(d):
				h.QueueBuild(d)
			case h.CanMove(d):
				h.QueueMove(d)
			}
		}
	}
	if winner, ok := game.Winner(); ok {
		log.Printf("exampleplayer: game over, winner=%d", winner)
	}
	return nil
}

func benchPlayer(name string, rounds int64) error {
	game, err := connect(name)
	if err != nil {
		return fmt.Errorf("exampleplayer: connect: %w", err)
	}
	defer game.Close()

	start := time.Now()
	var played int64
	for st := range game.Turns(false, false) {
		if err := st.Validate(); err != nil {
			return fmt.Errorf("exampleplayer: invariant violation at turn %d: %w", st.Turn(), err)
		}
		for _, h := range st.Entities(world.EntityFilter{}) {
			if h.Entity().Team != st.MyTeam().ID || !h.CanAct() {
				continue
			}
			d := randomDirection()
			if h.CanMove(d) {
				h.QueueMove(d)
			}
		}
		played++
		if played >= rounds {
			break
		}
	}
	elapsed := time.Since(start)

	fmt.Printf("rounds: %d\n", played)
	fmt.Printf("clock time: %s\n", elapsed)
	if played > 0 {
		fmt.Printf("per round: %s\n", elapsed/time.Duration(played))
	}
	return nil
}
