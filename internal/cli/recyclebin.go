package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/babarot/xcom/internal/recyclebin"
	"github.com/babarot/xcom/internal/recyclebin/binfs"
	"github.com/babarot/xcom/internal/session"
	"github.com/babarot/xcom/internal/ui"
	"github.com/jessevdk/go-flags"
)

type RecycleBinOption struct {
	List        bool     `short:"l" long:"list" description:"List the contents of the recycle bin"`
	Clean       bool     `short:"c" long:"clean" description:"Empty the recycle bin"`
	Interactive bool     `short:"i" long:"interactive" description:"Restore or delete items interactively"`
	Roots       []string `long:"root" value-name:"DIR" description:"Use this $Recycle.Bin directory instead of the system bin (repeatable)"`

	Meta MetaOption `group:"Meta Options"`
}

// RecycleBin runs the recyclebin command with the process arguments
func RecycleBin(v Version) error {
	return newCLI(v).recycleBin(os.Args[1:])
}

func (c *CLI) recycleBin(args []string) error {
	var opt RecycleBinOption
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = c.version.AppName
	parser.Usage = "[-l | -c | -i] [--root DIR]..."
	if _, err := parser.ParseArgs(args); err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if opt.Meta.Version {
		fmt.Fprint(c.stdout, c.version.Print())
		return nil
	}

	if err := c.setup(opt.Meta); err != nil {
		return err
	}
	defer c.close()

	if ok, err := c.debugLogs(opt.Meta); ok {
		return err
	}

	store, err := c.openStore(opt.Roots)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx, stop := c.signalContext()
	defer stop()

	catalog := recyclebin.NewCatalog(store, recyclebin.WithRecorder(c.audit))
	printer := ui.NewPrinter(c.stdout, c.config)

	switch {
	case opt.Interactive:
		slog.Debug("interactive session started")
		return session.New(catalog, printer, c.stdin).Run(ctx)

	case opt.Clean:
		if err := catalog.Clear(ctx); err != nil {
			return err
		}
		printer.Cleared()
		return nil

	case opt.List:
		return list(ctx, catalog, printer)

	default:
		if err := catalog.Clear(ctx); err != nil {
			slog.Error("failed to clear recycle bin", "error", err)
			printer.ClearFailed(err)
		} else {
			printer.Cleared()
		}
		return list(ctx, catalog, printer)
	}
}

func list(ctx context.Context, catalog *recyclebin.Catalog, printer *ui.Printer) error {
	items, err := catalog.List(ctx)
	if err != nil {
		return err
	}
	printer.Items(items)
	return nil
}

// openStore prefers --root, then core.recyclebin.roots, then the system bin
func (c *CLI) openStore(roots []string) (*binfs.Store, error) {
	if len(roots) == 0 {
		roots = c.config.Core.RecycleBin.Roots
	}
	if len(roots) > 0 {
		slog.Debug("using explicit recycle bin roots", "roots", roots)
		return binfs.New(roots...), nil
	}
	store, err := binfs.NewSystem()
	if err != nil {
		return nil, fmt.Errorf("failed to open the system recycle bin (use --root): %w", err)
	}
	slog.Debug("using system recycle bin", "roots", store.Roots())
	return store, nil
}
