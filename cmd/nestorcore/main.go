// Command nestorcore is a headless entry point for the NES emulation core:
// it runs a ROM, prints frame-throughput diagnostics, and otherwise owns no
// rendering surface -- an external graphical host is expected to link
// against the nes/eventbus packages directly rather than this binary.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/pprof"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"nestorcore/eventbus"
	"nestorcore/hwlog"
	"nestorcore/ines"
	"nestorcore/nes"
)

func main() {
	cli, ctx := parseArgs(os.Args[1:])

	cmd := ctx.Command()
	var err error
	switch {
	case strings.HasPrefix(cmd, "run"):
		err = runCmd(cli.Run)
	case strings.HasPrefix(cmd, "rom-info"):
		err = romInfoCmd(cli.RomInfo)
	case strings.HasPrefix(cmd, "version"):
		fmt.Println(version)
	default:
		err = fmt.Errorf("unknown command %q", cmd)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "nestorcore:", err)
		os.Exit(1)
	}
}

func romInfoCmd(cmd RomInfoCmd) error {
	cart, err := ines.Open(cmd.RomPath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}
	cart.PrintInfo(os.Stdout)
	return nil
}

func runCmd(cmd RunCmd) error {
	cart, err := ines.Open(cmd.RomPath)
	if err != nil {
		return fmt.Errorf("reading rom: %w", err)
	}

	console, err := nes.Load(cart)
	if err != nil {
		return fmt.Errorf("loading rom: %w", err)
	}
	console.CPU.Permissive = cmd.Permissive

	if cmd.Trace != nil {
		sink := newTraceSink(cmd.Trace, console.CPU)
		console.CPU.SetTracer(sink)
		defer sink.Flush()
		defer cmd.Trace.Close()
	}

	if cmd.CPUProfile != "" {
		f, err := os.Create(cmd.CPUProfile)
		if err != nil {
			return fmt.Errorf("creating cpu profile: %w", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			return fmt.Errorf("starting cpu profile: %w", err)
		}
		defer pprof.StopCPUProfile()
	}

	sigctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	bus := eventbus.New(8)

	g, gctx := errgroup.WithContext(sigctx)
	g.Go(func() error {
		console.Run(bus)
		if console.CPU.Halted() {
			// Returning an error cancels gctx, which stops drainFrames.
			return fmt.Errorf("cpu halted: %w", console.CPU.HaltErr())
		}
		return nil
	})
	g.Go(func() error {
		return drainFrames(gctx, bus, cmd.Frames, func() {
			bus.PushShutdown()
		})
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if console.CPU.Halted() {
		return fmt.Errorf("cpu halted: %w", console.CPU.HaltErr())
	}
	return nil
}

// drainFrames pumps frames off bus.Frames and discards them -- there is no
// display surface in this binary -- while printing periodic FPS
// diagnostics, until maxFrames is reached (0 means unbounded) or ctx is
// cancelled. requestStop is called exactly once, whenever draining stops,
// so the emulation goroutine is told to wind down too.
func drainFrames(ctx context.Context, bus *eventbus.Bus, maxFrames int, requestStop func()) error {
	defer requestStop()

	count := 0
	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	last := 0

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-bus.Frames:
			count++
			if maxFrames > 0 && count >= maxFrames {
				hwlog.ModEmu.InfoZ("frame budget reached").Int("frames", count).End()
				return nil
			}
		case <-tick.C:
			hwlog.ModEmu.InfoZ("frame throughput").
				Int("fps", count-last).
				Uint64("dropped_total", bus.DroppedFrames()).
				End()
			last = count
		}
	}
}
