package cli

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/babarot/xcom/internal/expand"
	"github.com/babarot/xcom/internal/transfer"
	"github.com/babarot/xcom/internal/ui"
	"github.com/babarot/xcom/internal/ui/confirm"
	"github.com/jessevdk/go-flags"
	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type TransferOption struct {
	Recursive bool `short:"r" long:"recursive" description:"Transfer the regular files under each source directory"`

	Meta MetaOption `group:"Meta Options"`
}

// Copy runs the xcopy command with the process arguments
func Copy(v Version) error {
	return newCLI(v).transfer(transfer.Copy, os.Args[1:])
}

// Move runs the xmove command with the process arguments
func Move(v Version) error {
	return newCLI(v).transfer(transfer.Move, os.Args[1:])
}

func (c *CLI) transfer(op transfer.Operation, args []string) error {
	var opt TransferOption
	parser := flags.NewParser(&opt, flags.Default)
	parser.Name = c.version.AppName
	parser.Usage = "[OPTIONS] SOURCE... DESTINATION"
	args, err := parser.ParseArgs(args)
	if err != nil {
		if flags.WroteHelp(err) {
			return nil
		}
		return err
	}

	if opt.Meta.Version {
		fmt.Fprint(c.stdout, c.version.Print())
		return nil
	}

	if opt.Meta.Debug == "" && len(args) < 2 {
		fmt.Fprintf(c.stderr, "USAGE: %s SOURCE1 [SOURCE2 ...] DESTINATION\n", c.version.AppName)
		return ErrUsage
	}

	if err := c.setup(opt.Meta); err != nil {
		return err
	}
	defer c.close()

	if ok, err := c.debugLogs(opt.Meta); ok {
		return err
	}

	sources, dest := args[:len(args)-1], args[len(args)-1]
	paths, err := c.collect(op, sources, dest, opt.Recursive)
	if err != nil {
		return err
	}

	ctx, stop := c.signalContext()
	defer stop()

	engine := transfer.NewEngine(
		transfer.NewTransferer(c.prompter()),
		transfer.WithRecorder(c.audit),
	)
	outcome, err := engine.Execute(ctx, transfer.Request{
		Sources:     paths,
		Destination: dest,
		Operation:   op,
	})
	if err != nil {
		return err
	}

	switch outcome.Status {
	case transfer.Failed:
		c.audit.Record("ERROR: " + outcome.Message)
		return outcome.Err()
	case transfer.AbortedByUser:
		ui.NewPrinter(c.stdout, c.config).Aborted(operationTitle(op))
	}
	slog.Info("transfer finished", "op", op, "status", outcome.Status, "sources", len(paths))
	return nil
}

// collect expands wildcards and, with recursive, replaces every source by
// the regular files beneath it
func (c *CLI) collect(op transfer.Operation, sources []string, dest string, recursive bool) ([]string, error) {
	paths, err := expand.Expand(sources)
	if err != nil {
		return nil, err
	}
	if !recursive {
		return paths, nil
	}

	excludes, err := expand.CompileExcludes(c.config.Core.Transfer.Exclude)
	if err != nil {
		return nil, err
	}
	c.audit.Record(fmt.Sprintf("%s: Path: %q, Dest: %q, Recursive: true", op, strings.Join(paths, "; "), dest))
	files := expand.WalkAll(paths, expand.Exclude(excludes...))
	slog.Debug("walked sources", "roots", len(paths), "files", len(files))
	return files, nil
}

// prompter asks before overwriting only when someone can answer
func (c *CLI) prompter() transfer.Prompter {
	if !c.config.Core.Transfer.ConfirmOverwrite {
		return nil
	}
	f, ok := c.stdin.(*os.File)
	if !ok || !isatty.IsTerminal(f.Fd()) {
		return nil
	}
	return confirm.Overwrite{In: c.stdin, Out: c.stdout}
}

func operationTitle(op transfer.Operation) string {
	return cases.Title(language.English).String(strings.ToLower(op.String()))
}
