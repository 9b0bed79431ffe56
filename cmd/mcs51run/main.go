// mcs51run loads an Intel HEX program into an MCS-51 core and runs it,
// following the same shape as the teacher's vcs/vcs_main.go: parse flags,
// build the core, drive it in a loop, log fatal errors with stdlib log.
package main

import (
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/jmchacon/mcs51/config"
	"github.com/jmchacon/mcs51/cpu"
)

// paceObserver sleeps until the next wall-clock second boundary each time
// it is invoked, giving Run a cadence instead of burning the host CPU at
// full speed. This is the pacing strategy spec.md §5 asks an implementation
// to choose and document; see DESIGN.md's Open Question ledger.
//
// chip is set after cpu.Init returns (the chip doesn't exist yet when the
// observer is constructed), so the verbose path can dump the instruction
// log Init was given a depth for.
type paceObserver struct {
	verbose bool
	started time.Time
	seconds int
	chip    *cpu.Chip
}

func (p *paceObserver) OnCycleBoundary() {
	p.seconds++
	target := p.started.Add(time.Duration(p.seconds) * time.Second)
	if d := time.Until(target); d > 0 {
		time.Sleep(d)
	}
	if p.verbose {
		log.Printf("completed %d cycle boundaries, recent PCs: %04X", p.seconds, p.chip.InstructionLog())
	}
}

func main() {
	app := &cli.App{
		Name:  "mcs51run",
		Usage: "run an Intel HEX MCS-51 program",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "hex",
				Aliases:  []string{"f"},
				Usage:    "path to the Intel HEX program to load",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "optional TOML config file overriding defaults",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log a line at every cycle boundary",
			},
		},
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("config"))
			if err != nil {
				return err
			}
			if c.String("hex") != "" {
				cfg.HexFile = c.String("hex")
			}

			obs := &paceObserver{verbose: c.Bool("verbose"), started: timeNow()}
			chip, err := cpu.Init(cpu.Config{
				HexPath:             cfg.HexFile,
				CyclesPerSecond:     cfg.CyclesPerSecond,
				InstructionLogDepth: cfg.InstructionLog,
				Observer:            obs,
			})
			if err != nil {
				return err
			}
			obs.chip = chip

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt)
			go func() {
				<-sigCh
				chip.Stop()
			}()

			chip.Run()
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("mcs51run: %v", err)
	}
}

// timeNow supplies paceObserver's starting instant, from which every
// one-second sleep target is measured; kept as its own function in case a
// future test wants to stub it.
func timeNow() time.Time {
	return time.Now()
}
