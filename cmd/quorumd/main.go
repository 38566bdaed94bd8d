package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/iov-one/quorum"
	quorumapp "github.com/iov-one/quorum/app"
	"github.com/iov-one/quorum/cmd/quorumd/app"
	"github.com/iov-one/quorum/errors"
	"github.com/tendermint/tendermint/libs/log"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(out io.Writer, args []string) error {
	fl := flag.NewFlagSet("quorumd", flag.ContinueOnError)
	dbFl := fl.String("db", "", "Path of the state database. Empty keeps the state in memory.")
	genesisFl := fl.String("genesis", "", "Genesis file used when the state is not initialized yet.")
	debugFl := fl.Bool("debug", false, "Log at debug level.")
	fl.Usage = func() {
		fmt.Fprintf(fl.Output(), `Usage:
	quorumd [options]

Open the multisig engine state, initializing it from a genesis file when
it is empty, and print the chain id and the latest committed version.

`)
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		return err
	}

	logger := log.NewTMLogger(log.NewSyncWriter(os.Stderr))
	if !*debugFl {
		logger = log.NewFilter(logger, log.AllowInfo())
	}

	sa, err := app.Application("quorum", app.Stack(), *dbFl, logger)
	if err != nil {
		return errors.Wrap(err, "open application")
	}
	if sa.ChainID() == "" {
		if *genesisFl == "" {
			return errors.Wrap(errors.ErrState, "state is not initialized and no genesis file was given")
		}
		gen, err := quorumapp.LoadGenesis(*genesisFl)
		if err != nil {
			return err
		}
		if err := sa.InitChain(gen); err != nil {
			return errors.Wrap(err, "init chain")
		}
		if _, err := sa.Commit(); err != nil {
			return errors.Wrap(err, "commit genesis")
		}
	}

	v := sa.LatestVersion()
	fmt.Fprintf(out, "quorum %s\nchain\t%s\nversion\t%d\nhash\t%X\n", quorum.Version(), sa.ChainID(), v.Version, v.Hash)
	return nil
}
