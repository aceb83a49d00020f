// Package cmd implements the CLI application to aggregate look-through
// holdings.
package cmd

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/ledgerline/baskets"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&collectCmd{}, "holdings")
	c.Register(&issuersCmd{}, "holdings")
	c.Register(&latestCmd{}, "store")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var dbDir = flag.String("dbdir", defaultDBDir(), "Directory holding the downloaded issuer files")

// defaultDBDir resolves the store directory: BASKETS_DIR (a .env file is
// honored), falling back to ~/.baskets.
func defaultDBDir() string {
	godotenv.Load()
	if dir := os.Getenv("BASKETS_DIR"); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".baskets"
	}
	return filepath.Join(home, ".baskets")
}

// printMarkdown renders md for the terminal, falling back to the raw text
// when the renderer is unavailable.
func printMarkdown(md string) {
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(0))
	if err == nil {
		if out, err := r.Render(md); err == nil {
			fmt.Print(out)
			return
		}
	}
	fmt.Println(md)
}

// logDiagnostics renders the pipeline's structured diagnostics. The core
// never logs; this is the single place findings become output.
func logDiagnostics(diags []baskets.Diagnostic) {
	for _, d := range diags {
		fields := logrus.Fields{}
		if d.Ticker != "" {
			fields["ticker"] = d.Ticker
		}
		if d.Issuer != "" {
			fields["issuer"] = d.Issuer
		}
		entry := logrus.WithFields(fields)
		switch d.Kind {
		case baskets.IdentityMissing:
			entry.Errorf("%s: %s", d.Kind, d.Detail)
		default:
			entry.Warnf("%s: %s", d.Kind, d.Detail)
		}
	}
}
