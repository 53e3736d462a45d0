package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/babarot/xcom/internal/cli"
	"github.com/fatih/color"
)

const appName = "xmove"

// These variables are set in build step
var (
	version   = "unset"
	revision  = "unset"
	buildDate = "unset"
)

func main() {
	err := cli.Move(cli.Version{
		AppName:   appName,
		Version:   version,
		Revision:  revision,
		BuildDate: buildDate,
	})
	if err != nil {
		if !errors.Is(err, cli.ErrUsage) {
			fmt.Fprintf(os.Stderr, "%s: %s\n", appName, color.RedString("Error: %v", err))
		}
		os.Exit(1)
	}
}
