package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"nestorcore/hwlog"
)

// CLI is the top-level command tree, parsed by kong.
type CLI struct {
	Run     RunCmd     `cmd:"" help:"Run a ROM headlessly and report frame throughput."`
	RomInfo RomInfoCmd `cmd:"" name:"rom-info" help:"Print a ROM's iNES header fields and exit."`
	Version VersionCmd `cmd:"" help:"Print the version and exit."`

	Log logModMask `help:"${log_help}" placeholder:"mod0,mod1,..."`
}

// RunCmd runs a ROM to completion (or until --frames is reached) with no
// display attached; it exists to exercise and benchmark the core, and as
// the wiring point for an external graphical host.
type RunCmd struct {
	RomPath string `arg:"" name:"rom" help:"Path to an iNES ROM image." required:"true" type:"existingfile"`

	Frames     int      `name:"frames" help:"Stop after this many frames (0 = run until CPU halts)." default:"0"`
	Permissive bool     `name:"permissive" help:"Execute the documented subset of undocumented 6502 opcodes."`
	Trace      *outfile `name:"trace" help:"Write a nestest-style execution trace." placeholder:"FILE|stdout|stderr"`
	CPUProfile string   `name:"cpuprofile" help:"Write a pprof CPU profile to this file." type:"path"`
}

// RomInfoCmd prints the parsed iNES header of a ROM.
type RomInfoCmd struct {
	RomPath string `arg:"" name:"rom" help:"Path to an iNES ROM image." required:"true" type:"existingfile"`
}

// VersionCmd prints the build version.
type VersionCmd struct{}

var version = "dev"

var cliVars = kong.Vars{
	"log_help": "Enable debug logging for the given modules (comma-separated), or \"all\".",
}

func parseArgs(args []string) (CLI, *kong.Context) {
	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("nestorcore"),
		kong.Description("Headless NES emulation core."),
		kong.UsageOnError(),
		cliVars)
	if err != nil {
		panic(err)
	}

	ctx, err := parser.Parse(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, "nestorcore:", err)
		os.Exit(1)
	}
	return cli, ctx
}

// logModMask decodes the --log flag into hwlog.EnableDebugModules calls.
type logModMask hwlog.ModuleMask

// Decode implements kong.MapperValue.
func (lm *logModMask) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	_, err := lm.decodeString(tok.Value.(string))
	return err
}

// decodeString does the actual parsing, factored out of Decode so it can be
// exercised without constructing a kong.DecodeContext.
func (lm *logModMask) decodeString(s string) (hwlog.ModuleMask, error) {
	var mask hwlog.ModuleMask
	for _, name := range strings.Split(s, ",") {
		switch name {
		case "all":
			mask |= hwlog.ModuleMaskAll
		case "no":
			hwlog.Disable()
			return 0, nil
		default:
			mod, ok := hwlog.ModuleByName(name)
			if !ok {
				return 0, fmt.Errorf("unknown log module %q (known: %s)", name, strings.Join(hwlog.ModuleNames(), ", "))
			}
			mask |= mod.Mask()
		}
	}
	hwlog.EnableDebugModules(mask)
	*lm = logModMask(mask)
	return mask, nil
}

// outfile decodes FILE|stdout|stderr into an io.WriteCloser, grounded on
// the same trace-sink flag pattern used for --trace across the corpus.
type outfile struct {
	w    io.Writer
	name string
	c    io.Closer
}

// Decode implements kong.MapperValue.
func (f *outfile) Decode(ctx *kong.DecodeContext) error {
	tok := ctx.Scan.Pop()
	_, err := f.decodeString(tok.Value.(string))
	return err
}

// decodeString does the actual work, factored out of Decode so it can be
// exercised without constructing a kong.DecodeContext.
func (f *outfile) decodeString(name string) (io.Writer, error) {
	f.name = name
	switch f.name {
	case "stdout":
		f.w = os.Stdout
	case "stderr":
		f.w = os.Stderr
	default:
		fd, err := os.Create(f.name)
		if err != nil {
			return nil, err
		}
		f.w, f.c = fd, fd
	}
	return f.w, nil
}

func (f *outfile) String() string              { return f.name }
func (f *outfile) Write(p []byte) (int, error) { return f.w.Write(p) }
func (f *outfile) Close() error {
	if f.c == nil {
		return nil
	}
	return f.c.Close()
}
