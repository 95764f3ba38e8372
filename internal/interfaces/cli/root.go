// Package cli implements bcctl, a command line client that runs the entity
// services directly against Business Central.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	apperp "github.com/erp/bcadapter/internal/application/erp"
	"github.com/erp/bcadapter/internal/domain/erp"
	bc "github.com/erp/bcadapter/internal/infrastructure/businesscentral"
	"github.com/erp/bcadapter/internal/infrastructure/config"
	"github.com/erp/bcadapter/internal/infrastructure/logger"
	"github.com/spf13/cobra"
)

// ItemQuerier reads items
type ItemQuerier interface {
	Query(ctx context.Context, q erp.Query) ([]erp.Item, error)
}

// BomHeaderQuerier reads production BOMs
type BomHeaderQuerier interface {
	Query(ctx context.Context, q erp.Query) ([]erp.BomHeader, error)
}

// DocumentReader lists and downloads item attachments
type DocumentReader interface {
	Query(ctx context.Context, q erp.Query) ([]erp.Document, error)
	Download(ctx context.Context, doc erp.Document) ([]byte, error)
}

// DirectoryChecker loads the company's code tables
type DirectoryChecker interface {
	Check(ctx context.Context) (*apperp.DirectoryReport, error)
}

// Backend is what the commands run against
type Backend struct {
	Tokens     bc.TokenProvider
	Items      ItemQuerier
	BomHeaders BomHeaderQuerier
	Documents  DocumentReader
	Directory  DirectoryChecker
}

// BackendFactory builds the backend once flags are parsed. The returned
// func releases it.
type BackendFactory func(configPath string, verbose bool) (*Backend, func(), error)

type rootOptions struct {
	configPath string
	verbose    bool
}

// Execute runs bcctl with os.Args against Business Central
func Execute() error {
	return NewRootCommand(DefaultBackend).Execute()
}

// NewRootCommand assembles the command tree
func NewRootCommand(factory BackendFactory) *cobra.Command {
	opts := &rootOptions{}
	var (
		backend *Backend
		release func()
	)

	cmd := &cobra.Command{
		Use:   "bcctl",
		Short: "Query Business Central entities from the command line",
		Long: `bcctl composes items, production BOMs and attachments the same way the
adapter's HTTP API does and prints them as JSON.

Connection settings come from config.toml and ERP_ environment variables.`,
		Example: `  # Show one item with its attributes, links and supplier
  bcctl items get 1000

  # Print a production BOM with its rows in line order
  bcctl boms get A100

  # Check the configured codes against the company
  bcctl directory --config ./bc.toml`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Path to a TOML configuration file")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Log remote calls to stderr")

	cmd.PersistentPostRun = func(*cobra.Command, []string) {
		if release != nil {
			release()
		}
	}

	get := func() (*Backend, error) {
		if backend != nil {
			return backend, nil
		}
		b, r, err := factory(opts.configPath, opts.verbose)
		if err != nil {
			return nil, err
		}
		backend, release = b, r
		return backend, nil
	}
	cmd.AddCommand(newTokenCommand(get))
	cmd.AddCommand(newItemsCommand(get))
	cmd.AddCommand(newBomsCommand(get))
	cmd.AddCommand(newDocumentsCommand(get))
	cmd.AddCommand(newDirectoryCommand(get))
	return cmd
}

// DefaultBackend wires the entity services to a Business Central client
func DefaultBackend(configPath string, verbose bool) (*Backend, func(), error) {
	var (
		cfg *config.Config
		err error
	)
	if configPath != "" {
		cfg, err = config.LoadFile(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, nil, err
	}

	log, err := logger.New(logger.CLIConfig(verbose))
	if err != nil {
		return nil, nil, fmt.Errorf("initialize logger: %w", err)
	}

	bcCfg := cfg.BusinessCentralClient()
	bcCfg.Verbose = verbose
	httpClient := bc.NewHTTPClient(bcCfg.Timeout)
	tokens, err := bc.NewTokenProvider(&bcCfg, httpClient, log)
	if err != nil {
		return nil, nil, err
	}
	client, err := bc.NewClient(bcCfg, cfg.CreationDefaults(), log,
		bc.WithHTTPClient(httpClient),
		bc.WithTokenProvider(tokens),
	)
	if err != nil {
		return nil, nil, err
	}

	services := apperp.NewServices(client, cfg.Composition(), log, nil)
	return &Backend{
		Tokens:     tokens,
		Items:      services.Items,
		BomHeaders: services.BomHeaders,
		Documents:  services.Documents,
		Directory:  apperp.NewDirectory(client, cfg.CreationDefaults(), cfg.Composition(), log),
	}, func() { _ = log.Sync() }, nil
}

var errNotFound = errors.New("not found")

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
