// solpay is a command-line tool for parsing and building Solana Pay
// payment-request URLs, with a local mint-decimals cache.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/solpaykit/solpay/config"
	"github.com/solpaykit/solpay/internal/log"
	"github.com/solpaykit/solpay/internal/mintinfo"
	"github.com/solpaykit/solpay/internal/storage"
	"github.com/solpaykit/solpay/pkg/crypto"
	"github.com/solpaykit/solpay/pkg/payurl"
	"github.com/solpaykit/solpay/pkg/types"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	cfg := config.Default()
	cliVals := make(map[string]string)

	// Scan for global flags that appear before the subcommand.
	args := os.Args[1:]
	for len(args) > 0 {
		switch {
		case args[0] == "--datadir" && len(args) > 1:
			cliVals["datadir"] = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--datadir="):
			cliVals["datadir"] = args[0][len("--datadir="):]
			args = args[1:]
		case args[0] == "--mints" && len(args) > 1:
			cliVals["mints"] = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--mints="):
			cliVals["mints"] = args[0][len("--mints="):]
			args = args[1:]
		case args[0] == "--log-level" && len(args) > 1:
			cliVals["log.level"] = args[1]
			args = args[2:]
		case strings.HasPrefix(args[0], "--log-level="):
			cliVals["log.level"] = args[0][len("--log-level="):]
			args = args[1:]
		case args[0] == "--log-json":
			cliVals["log.json"] = "true"
			args = args[1:]
		default:
			goto dispatch
		}
	}

dispatch:
	if len(args) == 0 {
		usage()
		os.Exit(1)
	}

	// The config file location follows --datadir when given.
	dataDir := cfg.DataDir
	if v, ok := cliVals["datadir"]; ok {
		dataDir = v
	}

	// Overlay file values, then command-line flags on top.
	values, err := config.LoadFile(filepath.Join(dataDir, "solpay.conf"))
	if err != nil {
		fatal("load config: %v", err)
	}
	if err := config.Apply(cfg, values); err != nil {
		fatal("apply config: %v", err)
	}
	if err := config.Apply(cfg, cliVals); err != nil {
		fatal("apply flags: %v", err)
	}
	if err := log.Init(cfg.Log.Level, cfg.Log.JSON, cfg.Log.File); err != nil {
		fatal("init logging: %v", err)
	}

	cmd := args[0]
	cmdArgs := args[1:]

	switch cmd {
	case "parse":
		cmdParse(cfg, cmdArgs)
	case "build":
		cmdBuild(cmdArgs)
	case "reference":
		cmdReference(cmdArgs)
	case "mint":
		cmdMint(cfg, cmdArgs)
	case "help", "-h", "--help":
		usage()
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", cmd)
		usage()
		os.Exit(1)
	}
}

// openRegistry builds the decimals registry: well-known mints, the Badger
// cache under the data dir, and any extra mints from the mints file.
func openRegistry(cfg *config.Config) (*mintinfo.Registry, func()) {
	var db storage.DB
	dbPath := filepath.Join(cfg.DataDir, "mints")
	badgerDB, err := storage.NewBadger(dbPath)
	if err != nil {
		log.Store.Warn().Err(err).Msg("mint cache unavailable, using memory")
		db = storage.NewMemory()
	} else {
		db = badgerDB
	}

	store := mintinfo.NewStore(db)
	if cfg.MintsFile != "" {
		if err := preloadMints(store, cfg.MintsFile); err != nil {
			fatal("load mints file: %v", err)
		}
	}

	registry := mintinfo.NewRegistry(store, nil)
	return registry, func() { _ = db.Close() }
}

// preloadMints loads "mint = decimals" or "mint = SYMBOL,decimals" entries
// into the store.
func preloadMints(store *mintinfo.Store, path string) error {
	values, err := config.LoadFile(path)
	if err != nil {
		return err
	}
	for addr, value := range values {
		mint, err := types.PublicKeyFromBase58(addr)
		if err != nil {
			return fmt.Errorf("mint %q: %w", addr, err)
		}
		meta := mintinfo.Metadata{}
		decimalsText := value
		if symbol, rest, ok := strings.Cut(value, ","); ok {
			meta.Symbol = strings.TrimSpace(symbol)
			decimalsText = rest
		}
		decimals, err := strconv.ParseUint(strings.TrimSpace(decimalsText), 10, 8)
		if err != nil {
			return fmt.Errorf("mint %q: invalid decimals %q", addr, decimalsText)
		}
		meta.Decimals = uint8(decimals)
		if err := store.Put(mint, &meta); err != nil {
			return err
		}
	}
	return nil
}

func cmdParse(cfg *config.Config, args []string) {
	fs := flag.NewFlagSet("parse", flag.ExitOnError)
	jsonOut := fs.Bool("json", false, "print the parsed request as JSON")
	_ = fs.Parse(args)

	if fs.NArg() != 1 {
		fatal("usage: solpay parse [--json] <url>")
	}

	registry, closeDB := openRegistry(cfg)
	defer closeDB()

	req, err := payurl.Parse(context.Background(), fs.Arg(0), registry.DecimalsFunc())
	if err != nil {
		fatal("parse: %v", err)
	}

	if *jsonOut {
		printJSON(req)
		return
	}
	printRequest(req)
}

func cmdBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	recipient := fs.String("recipient", "", "base58 recipient address (required)")
	anyRecipient := fs.Bool("any-recipient", false, "allow an off-curve (program-derived) recipient")
	amount := fs.String("amount", "", "transfer amount in user units")
	splToken := fs.String("spl-token", "", "base58 token mint address")
	tokenDecimals := fs.Uint("token-decimals", 0, "mint decimals for validating --amount (required with --spl-token and --amount)")
	label := fs.String("label", "", "request label")
	message := fs.String("message", "", "request message")
	memo := fs.String("memo", "", "on-chain memo")
	var references stringList
	fs.Var(&references, "reference", "base58 reference (repeatable)")
	_ = fs.Parse(args)

	if *recipient == "" {
		fatal("build: --recipient is required")
	}
	pk, err := types.PublicKeyFromBase58(*recipient)
	if err != nil {
		fatal("build: recipient: %v", err)
	}

	var req *payurl.PaymentRequest
	if *anyRecipient {
		req = payurl.NewRequest(pk)
	} else {
		req, err = payurl.NewRequestOnCurve(pk)
		if err != nil {
			fatal("build: %v (use --any-recipient to allow it)", err)
		}
	}

	switch {
	case *splToken != "":
		mint, err := types.PublicKeyFromBase58(*splToken)
		if err != nil {
			fatal("build: spl-token: %v", err)
		}
		if *amount != "" {
			if err := req.SetTokenAmount(*amount, mint, uint8(*tokenDecimals)); err != nil {
				fatal("build: %v", err)
			}
		} else if err := req.SetSplToken(mint); err != nil {
			fatal("build: %v", err)
		}
	case *amount != "":
		if err := req.SetAmount(*amount); err != nil {
			fatal("build: %v", err)
		}
	}

	for _, r := range references {
		ref, err := types.ReferenceFromBase58(r)
		if err != nil {
			fatal("build: reference: %v", err)
		}
		if err := req.AddReference(ref); err != nil {
			fatal("build: %v", err)
		}
	}

	for _, f := range []struct {
		value string
		set   func(string) error
	}{
		{*label, req.SetLabel},
		{*message, req.SetMessage},
		{*memo, req.SetMemo},
	} {
		if f.value != "" {
			if err := f.set(f.value); err != nil {
				fatal("build: %v", err)
			}
		}
	}

	fmt.Println(req.URL())
}

func cmdReference(args []string) {
	fs := flag.NewFlagSet("reference", flag.ExitOnError)
	count := fs.Int("n", 1, "number of references to generate")
	_ = fs.Parse(args)

	for i := 0; i < *count; i++ {
		ref, err := crypto.NewReference()
		if err != nil {
			fatal("reference: %v", err)
		}
		fmt.Println(ref.Base58())
	}
}

func cmdMint(cfg *config.Config, args []string) {
	if len(args) == 0 {
		fatal("usage: solpay mint <list|get|add> ...")
	}

	db, err := storage.NewBadger(filepath.Join(cfg.DataDir, "mints"))
	if err != nil {
		fatal("mint cache: %v", err)
	}
	defer db.Close()
	store := mintinfo.NewStore(db)

	switch args[0] {
	case "list":
		entries, err := store.List()
		if err != nil {
			fatal("mint list: %v", err)
		}
		for _, e := range entries {
			fmt.Printf("%s\t%s\t%d\n", e.Mint.Base58(), e.Symbol, e.Decimals)
		}
	case "get":
		if len(args) != 2 {
			fatal("usage: solpay mint get <mint>")
		}
		mint, err := types.PublicKeyFromBase58(args[1])
		if err != nil {
			fatal("mint get: %v", err)
		}
		reg := mintinfo.NewRegistry(store, nil)
		meta, err := reg.Metadata(context.Background(), mint)
		if err != nil {
			fatal("mint get: %v", err)
		}
		printJSON(meta)
	case "add":
		if len(args) != 3 {
			fatal("usage: solpay mint add <mint> <decimals>")
		}
		mint, err := types.PublicKeyFromBase58(args[1])
		if err != nil {
			fatal("mint add: %v", err)
		}
		decimals, err := strconv.ParseUint(args[2], 10, 8)
		if err != nil {
			fatal("mint add: invalid decimals %q", args[2])
		}
		if err := store.Put(mint, &mintinfo.Metadata{Decimals: uint8(decimals)}); err != nil {
			fatal("mint add: %v", err)
		}
		log.Mint.Info().Stringer("mint", mint).Uint64("decimals", decimals).Msg("mint stored")
	default:
		fatal("unknown mint subcommand: %s", args[0])
	}
}

// printRequest renders a parsed request field by field.
func printRequest(req *payurl.PaymentRequest) {
	fmt.Printf("recipient: %s\n", req.Recipient())
	if amount, ok := req.Amount(); ok {
		fmt.Printf("amount:    %s\n", amount)
	}
	if mint, ok := req.SplToken(); ok {
		fmt.Printf("spl-token: %s\n", mint)
	}
	for i, ref := range req.References() {
		fmt.Printf("reference[%d]: %s\n", i, ref.Base58())
	}
	if label, ok := req.Label(); ok {
		fmt.Printf("label:     %s\n", label)
	}
	if message, ok := req.Message(); ok {
		fmt.Printf("message:   %s\n", message)
	}
	if memo, ok := req.Memo(); ok {
		fmt.Printf("memo:      %s\n", memo)
	}
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fatal("encode json: %v", err)
	}
	fmt.Println(string(out))
}

// stringList collects repeatable flag values.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func fatal(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func usage() {
	fmt.Fprintf(os.Stderr, `solpay - Solana Pay URL toolkit

Usage:
  solpay [global flags] <command> [args]

Commands:
  parse [--json] <url>          Parse and validate a payment-request URL
  build [flags]                 Build a payment-request URL
  reference [-n count]          Generate fresh random reference values
  mint list                     List cached mint metadata
  mint get <mint>               Resolve decimals for a mint
  mint add <mint> <decimals>    Cache decimals for a mint

Global flags:
  --datadir <dir>     Data directory (mint cache, solpay.conf)
  --mints <file>      Extra mints file ("<mint> = [SYMBOL,]<decimals>")
  --log-level <lvl>   debug, info, warn, error
  --log-json          JSON log output
`)
}
