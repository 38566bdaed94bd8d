package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/iov-one/quorum/errors"
	"github.com/iov-one/quorum/orm"
	"github.com/iov-one/quorum/x/multisig"
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
}

func run(out io.Writer, args []string) error {
	fl := flag.NewFlagSet("msigaddr", flag.ContinueOnError)
	offsetFl := fl.Int64("offset", 1, "Ignore first N registry IDs.")
	limitFl := fl.Int("limit", 20, "Print N authority addresses.")
	nonceFl := fl.Uint("nonce", 0, "Derivation nonce of the registries, 0 to 255.")
	hrpFl := fl.String("hrp", "iov", "Human readable part of the bech32 address.")
	headerFl := fl.Bool("header", true, "Display header")
	fl.Usage = func() {
		fmt.Fprintf(fl.Output(), `Usage:
	msigaddr [options]

Print the Execution Authority addresses of multisig registries.

Registry IDs are allocated by a sequence counter, so the authority of a
registry that does not exist yet can be precomputed. This is helpful when
creating a genesis file or funding an account before the registry is
created.

`)
		fl.PrintDefaults()
	}
	if err := fl.Parse(args); err != nil {
		return err
	}

	if *offsetFl < 1 {
		return errors.Wrap(errors.ErrInput, "offset must be greater than zero")
	}
	if *limitFl < 1 {
		return errors.Wrap(errors.ErrInput, "limit must be greater than zero")
	}
	if *nonceFl > 255 {
		return errors.Wrap(errors.ErrInput, "nonce must not be greater than 255")
	}
	return printAddresses(out, *hrpFl, uint32(*nonceFl), *headerFl, *limitFl, *offsetFl)
}

func printAddresses(out io.Writer, hrp string, nonce uint32, header bool, limit int, offset int64) error {
	w := tabwriter.NewWriter(out, 2, 0, 2, ' ', 0)

	if header {
		fmt.Fprintln(w, "id\taddress\tbech32")
	}
	for i := offset; i < offset+int64(limit); i++ {
		addr := multisig.AuthorityAddress(orm.EncodeSequence(i), nonce)
		b32, err := addr.Bech32(hrp)
		if err != nil {
			return errors.Wrapf(err, "bech32 of %d", i)
		}
		fmt.Fprintf(w, "%d\t%s\t%s\n", i, addr, b32)
	}
	return w.Flush()
}
