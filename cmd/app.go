// Package cmd implements the CLI application to manage an assets ledger.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/sirupsen/logrus"

	"github.com/etnz/assets"
	"github.com/etnz/assets/journal"
	"github.com/etnz/assets/kv"
	"github.com/etnz/assets/kv/bolt"
	"github.com/etnz/assets/kv/leveldb"
	"github.com/etnz/assets/native"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&createCmd{}, "assets")
	c.Register(&forceCreateCmd{}, "assets")
	c.Register(&destroyCmd{}, "assets")
	c.Register(&transferOwnershipCmd{}, "assets")
	c.Register(&setTeamCmd{}, "assets")
	c.Register(&forceAssetStatusCmd{}, "assets")
	c.Register(&freezeAssetCmd{}, "assets")
	c.Register(&thawAssetCmd{}, "assets")

	c.Register(&mintCmd{}, "balances")
	c.Register(&burnCmd{}, "balances")
	c.Register(&transferCmd{}, "balances")
	c.Register(&transferCmd{keepAlive: true}, "balances")
	c.Register(&forceTransferCmd{}, "balances")
	c.Register(&freezeCmd{}, "balances")
	c.Register(&thawCmd{}, "balances")

	c.Register(&setMetadataCmd{}, "metadata")
	c.Register(&clearMetadataCmd{}, "metadata")
	c.Register(&setMetadataCmd{force: true}, "metadata")
	c.Register(&clearMetadataCmd{force: true}, "metadata")

	c.Register(&approveCmd{}, "approvals")
	c.Register(&cancelApprovalCmd{}, "approvals")
	c.Register(&cancelApprovalCmd{force: true}, "approvals")
	c.Register(&transferApprovedCmd{}, "approvals")

	c.Register(&endowCmd{}, "accounts")
	c.Register(&accountsCmd{}, "accounts")

	c.Register(&applyCmd{}, "scripts")

	c.Register(&assetCmd{}, "reports")
	c.Register(&listCmd{}, "reports")
	c.Register(&balanceCmd{}, "reports")
	c.Register(&eventsCmd{}, "reports")
	c.Register(&snapshotCmd{}, "reports")
	c.Register(&queryCmd{}, "reports")
	c.Register(&auditCmd{}, "reports")

	c.Register(&topicCmd{}, "")
}

// appEnv is the environment of the application. Flags default to it.
type appEnv struct {
	Store    string `env:"ASSETS_STORE" envDefault:".assets"`
	Backend  string `env:"ASSETS_BACKEND" envDefault:"leveldb"`
	Journal  string `env:"ASSETS_JOURNAL" envDefault:".assets.journal"`
	Signer   string `env:"ASSETS_SIGNER"`
	Root     bool   `env:"ASSETS_ROOT"`
	LogLevel string `env:"ASSETS_LOG_LEVEL" envDefault:"warn"`
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.
var (
	storePath   *string
	backend     *string
	journalPath *string
	signer      *string
	asRoot      *bool
	logLevel    *string
	rawMarkdown *bool
)

// RegisterFlags reads the environment and declares the global flags in fs.
func RegisterFlags(fs *flag.FlagSet) error {
	var e appEnv
	if err := env.Parse(&e); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	storePath = fs.String("store", e.Store, "Path to the ledger store")
	backend = fs.String("backend", e.Backend, "Store backend: leveldb or bolt")
	journalPath = fs.String("journal", e.Journal, "Path to the event journal database, empty to disable it")
	signer = fs.String("as", e.Signer, "Account signing the calls")
	asRoot = fs.Bool("root", e.Root, "Make the calls with the privileged origin")
	logLevel = fs.String("log", e.LogLevel, "Log level: debug, info, warn or error")
	rawMarkdown = fs.Bool("md", false, "Print reports as raw markdown")
	return nil
}

// Init applies the global flags once they are parsed.
func Init() error {
	level, err := logrus.ParseLevel(*logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	logrus.SetLevel(level)
	return nil
}

// app is everything a command needs to talk to the ledger.
type app struct {
	store   kv.Store
	bank    *native.Bank
	journal *journal.Journal
	ledger  *assets.Ledger
}

func openStore() (kv.Store, error) {
	switch *backend {
	case "leveldb":
		s, err := leveldb.Open(*storePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "bolt":
		s, err := bolt.Open(*storePath)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", *backend)
	}
}

// openApp opens the store and the journal, and builds the ledger over them.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := assets.ParseConfig()
	if err != nil {
		return nil, err
	}
	store, err := openStore()
	if err != nil {
		return nil, fmt.Errorf("could not open store %q: %w", *storePath, err)
	}
	a := &app{store: store, bank: native.New(store)}
	opts := []assets.Option{assets.WithConfig(cfg)}
	if *journalPath != "" {
		a.journal, err = journal.Open(*journalPath)
		if err != nil {
			store.Close()
			return nil, fmt.Errorf("could not open journal %q: %w", *journalPath, err)
		}
		opts = append(opts, assets.WithEventSink(a.journal.Sink(ctx)))
	}
	a.ledger = assets.NewLedger(store, a.bank, a.bank, opts...)
	return a, nil
}

func (a *app) Close() error {
	return errors.Join(a.journal.Close(), a.store.Close())
}

// withApp runs fn with an open app and reports fn's error.
func withApp(ctx context.Context, what string, fn func(a *app) error) subcommands.ExitStatus {
	a, err := openApp(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	defer func() {
		if err := a.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing ledger: %v\n", err)
		}
	}()
	if err := fn(a); err != nil {
		fmt.Fprintf(os.Stderr, "Error %s: %v\n", what, err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// origin fills the origin of call from the global flags.
func origin(call *assets.Call) {
	call.As = assets.AccountID(*signer)
	call.Root = *asRoot
}

// callOrigin is the origin selected by the global flags.
func callOrigin() assets.Origin {
	if *asRoot {
		return assets.Root()
	}
	return assets.Signed(assets.AccountID(*signer))
}

// printMarkdown renders md for the terminal, or prints it as is with -md.
func printMarkdown(md string) {
	if *rawMarkdown {
		fmt.Print(md)
		return
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(120))
	if err != nil {
		fmt.Print(md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Print(md)
		return
	}
	fmt.Print(out)
}

// assetFlag is a flag.Value holding an asset id.
type assetFlag struct {
	id  assets.AssetID
	set bool
}

func (f *assetFlag) String() string {
	if f == nil || !f.set {
		return ""
	}
	return f.id.String()
}

func (f *assetFlag) Set(s string) error {
	id, err := assets.ParseAssetID(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("invalid asset id %q: %w", s, err)
	}
	f.id, f.set = id, true
	return nil
}

// require returns an error when the asset flag is missing.
func (f *assetFlag) require() error {
	if !f.set {
		return errors.New("missing -asset")
	}
	return nil
}

// amount parses s in whole units of the asset, using its metadata decimals.
// A "u" suffix takes s as raw units.
func (a *app) amount(id assets.AssetID, s string) (assets.Balance, error) {
	if raw, ok := strings.CutSuffix(s, "u"); ok {
		return assets.ParseAmount(raw, 0)
	}
	md, err := a.ledger.Metadata(id)
	if err != nil {
		return 0, err
	}
	return assets.ParseAmount(s, md.Decimals)
}
