// issue-token runs a single issuance from the command line and prints the
// explorer link of the final transaction. It does not touch the database.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/chainsafe/token-launchpad/pkg/app/api"
	"github.com/chainsafe/token-launchpad/pkg/config"
	"github.com/chainsafe/token-launchpad/pkg/issuance"
	"github.com/chainsafe/token-launchpad/pkg/issuance/orchestrator"
)

const (
	defaultDecimals = 6
	defaultSupply   = 1
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "issue-token: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("issue-token", flag.ContinueOnError)
	configPath := fs.String("config", "config.yaml", "Path to configuration file")
	requestPath := fs.String("request", "", "Path to a YAML issuance request")
	overrides := bindRequestFlags(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}

	req, err := loadRequest(*requestPath, fs, overrides)
	if err != nil {
		return err
	}
	if err := req.Validate(); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	gateway, err := api.OpenGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer gateway.Close()

	publisher, closePublisher, err := api.OpenPublisher(ctx, &cfg.Metadata, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	o := orchestrator.New(publisher, gateway,
		orchestrator.WithLogger(logger),
		orchestrator.WithPublishTimeout(cfg.Issuance.PublishTimeout),
		orchestrator.WithSubmitTimeout(cfg.Issuance.SubmitTimeout),
		orchestrator.WithObserver(func(_ context.Context, p orchestrator.Progress) {
			logger.Info("Issuance progress", zap.Stringer("state", p.State))
		}),
	)

	res, err := o.Execute(ctx, req)
	if err != nil {
		var groupErr *issuance.GroupSubmissionError
		if errors.As(err, &groupErr) && len(groupErr.Completed) > 0 {
			fmt.Fprintln(out, "Completed transactions before the failure:")
			printHandles(out, groupErr.Completed)
		}
		return err
	}

	fmt.Fprintf(out, "Asset:    %s\n", res.Asset.ToBase58())
	fmt.Fprintf(out, "Holder:   %s\n", res.Holder.ToBase58())
	fmt.Fprintf(out, "Metadata: %s\n", res.MetadataURI)
	printHandles(out, res.Submissions)
	fmt.Fprintf(out, "Explorer: %s\n", res.Handle.ExplorerURL)
	return nil
}

func printHandles(out io.Writer, handles []issuance.SubmissionHandle) {
	for i, h := range handles {
		fmt.Fprintf(out, "  [%d] %s\n", i, h.Signature)
	}
}

type requestFlags struct {
	name, symbol, image, description string
	decimals                         uint
	supply                           uint64
	revokeFreeze, revokeMint         bool
	revokeUpdate                     bool
}

func bindRequestFlags(fs *flag.FlagSet) *requestFlags {
	f := &requestFlags{}
	fs.StringVar(&f.name, "name", "", "Token name")
	fs.StringVar(&f.symbol, "symbol", "", "Token symbol")
	fs.StringVar(&f.image, "image", "", "Image URL")
	fs.StringVar(&f.description, "description", "", "Token description")
	fs.UintVar(&f.decimals, "decimals", defaultDecimals, "Decimal places (1-9)")
	fs.Uint64Var(&f.supply, "supply", defaultSupply, "Initial supply in base units")
	fs.BoolVar(&f.revokeFreeze, "revoke-freeze", false, "Create the asset without a freeze authority")
	fs.BoolVar(&f.revokeMint, "revoke-mint", false, "Revoke the mint authority after minting")
	fs.BoolVar(&f.revokeUpdate, "revoke-update", false, "Revoke the metadata update authority after minting")
	return f
}

// loadRequest reads the optional YAML request at path, then applies every
// flag that was set explicitly on fs. Text fields come back trimmed.
func loadRequest(path string, fs *flag.FlagSet, f *requestFlags) (issuance.Request, error) {
	req := issuance.Request{Decimals: defaultDecimals, InitialSupply: defaultSupply}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return req, fmt.Errorf("read request: %w", err)
		}
		if err := yaml.Unmarshal(raw, &req); err != nil {
			return req, fmt.Errorf("decode request: %w", err)
		}
	}

	var err error
	fs.Visit(func(fl *flag.Flag) {
		switch fl.Name {
		case "name":
			req.Name = f.name
		case "symbol":
			req.Symbol = f.symbol
		case "image":
			req.ImageURI = f.image
		case "description":
			req.Description = f.description
		case "decimals":
			if f.decimals > issuance.MaxDecimals {
				err = fmt.Errorf("decimals must be at most %d", issuance.MaxDecimals)
				return
			}
			req.Decimals = uint8(f.decimals)
		case "supply":
			req.InitialSupply = f.supply
		case "revoke-freeze":
			req.RevokeFreezeAuthority = f.revokeFreeze
		case "revoke-mint":
			req.RevokeMintAuthority = f.revokeMint
		case "revoke-update":
			req.RevokeUpdateAuthority = f.revokeUpdate
		}
	})
	return req.Normalized(), err
}
