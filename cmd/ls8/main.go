// Package main implements the LS-8 simulator command line.
package main

import (
	"flag"
	"os"

	"github.com/ezrec/ls8/emulator"
	"github.com/retroenv/retrogolib/log"
)

// createLogger creates a logger with appropriate settings.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

func main() {
	var compile bool
	var verbose bool
	var quiet bool

	flag.BoolVar(&compile, "c", false, "treat the program as assembly source")
	flag.BoolVar(&verbose, "v", false, "verbose mode, trace every instruction")
	flag.BoolVar(&quiet, "q", false, "quiet mode")

	flag.Parse()

	logger := createLogger(verbose, quiet)

	if flag.NArg() != 1 {
		logger.Fatal("usage: ls8 [-c] [-v] [-q] program.ls8")
	}

	path := flag.Arg(0)
	inf, err := os.Open(path)
	if err != nil {
		logger.Fatal("opening program failed", log.Err(err))
	}
	defer inf.Close()

	emu := emulator.NewEmulator()
	emu.Verbose = verbose

	if compile {
		err = emu.Assemble(inf)
	} else {
		err = emu.Load(inf)
	}
	if err != nil {
		logger.Fatal("loading program failed", log.Err(err))
	}

	if err = emu.Reset(); err != nil {
		logger.Fatal("resetting machine failed", log.Err(err))
	}

	if err = emu.Run(); err != nil {
		logger.Fatal("execution failed", log.Err(err))
	}
}
