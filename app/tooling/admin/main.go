// This program performs administrative tasks against a running BabyBTC node.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/babybtc/quantlab/app/tooling/admin/commands"
	"github.com/babybtc/quantlab/business/web/client"
	"github.com/babybtc/quantlab/foundation/logger"
	"github.com/ardanlabs/conf/v3"
	"go.uber.org/zap"
)

// build is the git version of this program. It is set using build flags in the makefile.
var build = "develop"

func main() {

	// Construct the application logger.
	log, err := logger.New("ADMIN")
	if err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	defer log.Sync()

	// Perform the startup and shutdown sequence.
	if err := run(log); err != nil {
		if !errors.Is(err, commands.ErrHelp) {
			log.Errorw("admin", "ERROR", err)
		}
		log.Sync()
		os.Exit(1)
	}
}

func run(log *zap.SugaredLogger) error {
	cfg := struct {
		conf.Version
		Args conf.Args
		Node struct {
			URL     string        `conf:"default:http://localhost:8000"`
			Timeout time.Duration `conf:"default:10s"`
		}
	}{
		Version: conf.Version{
			Build: build,
			Desc:  "BabyBTC node administration",
		},
	}

	const prefix = "ADMIN"
	help, err := conf.Parse(prefix, &cfg)
	if err != nil {
		if errors.Is(err, conf.ErrHelpWanted) {
			fmt.Println(help)
			return nil
		}
		return fmt.Errorf("parsing config: %w", err)
	}

	log.Infow("admin", "node", cfg.Node.URL, "command", cfg.Args.Num(0))

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Node.Timeout)
	defer cancel()

	return processCommands(ctx, cfg.Args, client.New(cfg.Node.URL, cfg.Node.Timeout))
}

// processCommands handles the execution of the commands specified on
// the command line.
func processCommands(ctx context.Context, args conf.Args, c *client.Client) error {
	switch args.Num(0) {
	case "snapshot":
		if err := commands.Snapshot(ctx, c); err != nil {
			return fmt.Errorf("printing snapshot: %w", err)
		}

	case "summary":
		if err := commands.Summary(ctx, c); err != nil {
			return fmt.Errorf("printing summary: %w", err)
		}

	case "events":
		if err := commands.Events(ctx, c, args.Num(1)); err != nil {
			return fmt.Errorf("printing events: %w", err)
		}

	case "stats":
		if err := commands.Stats(ctx, c, args.Num(1)); err != nil {
			return fmt.Errorf("printing player stats: %w", err)
		}

	case "mutate":
		if err := commands.Mutate(ctx, c, args.Num(1), args.Num(2)); err != nil {
			return fmt.Errorf("mutating player: %w", err)
		}

	case "rollback":
		if err := commands.Rollback(ctx, c, args.Num(1)); err != nil {
			return fmt.Errorf("rolling back: %w", err)
		}

	case "scenarios":
		if err := commands.Scenarios(); err != nil {
			return fmt.Errorf("listing scenarios: %w", err)
		}

	case "analyze":
		if err := commands.Analyze(ctx, c, args.Num(1)); err != nil {
			return fmt.Errorf("analyzing scenario: %w", err)
		}

	default:
		fmt.Println("snapshot:  print the full chain dump")
		fmt.Println("summary:   print the chain summary")
		fmt.Println("events:    print the recent events, optional limit")
		fmt.Println("stats:     print the stats for a player id")
		fmt.Println("mutate:    overwrite a balance: mutate <player_id> <new_balance>")
		fmt.Println("rollback:  remove blocks from the chain, optional count")
		fmt.Println("scenarios: list the documented scenarios")
		fmt.Println("analyze:   print the analysis for a scenario")
		fmt.Println("provide a command to get more help.")
		return commands.ErrHelp
	}

	return nil
}
