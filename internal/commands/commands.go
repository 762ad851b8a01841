package commands

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/cli"

	"github.com/GTDGit/addresskit/pkg/addresskit"
)

// lookupFunc performs one lookup with positional args already validated.
type lookupFunc func(ctx context.Context, c *addresskit.Client, args []string, query string) (any, error)

// LookupCommand runs a single AddressKit lookup and prints the result as JSON.
type LookupCommand struct {
	UI cli.Ui

	name       string
	synopsis   string
	usage      string
	argNames   []string
	searchable bool
	run        lookupFunc

	flagBaseURL   string
	flagTimeout   time.Duration
	flagUserAgent string
	flagQuery     string
}

func (c *LookupCommand) Synopsis() string { return c.synopsis }

func (c *LookupCommand) Help() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Usage: addresskit %s [options] %s\n\n  %s\n\nOptions:\n", c.name, c.usage, c.synopsis)
	c.flags().VisitAll(func(f *flag.Flag) {
		fmt.Fprintf(&b, "  -%s\n      %s (default %q)\n", f.Name, f.Usage, f.DefValue)
	})
	return b.String()
}

func (c *LookupCommand) flags() *flag.FlagSet {
	f := flag.NewFlagSet(c.name, flag.ContinueOnError)
	f.StringVar(&c.flagBaseURL, "base-url", addresskit.DefaultBaseURL, "AddressKit API base URL.")
	f.DurationVar(&c.flagTimeout, "timeout", addresskit.DefaultTimeout, "Per-request timeout.")
	f.StringVar(&c.flagUserAgent, "user-agent", "", "Optional User-Agent header.")
	if c.searchable {
		f.StringVar(&c.flagQuery, "q", "", "Case-insensitive name filter.")
	}
	return f
}

func (c *LookupCommand) Run(args []string) int {
	f := c.flags()
	f.SetOutput(&uiWriter{ui: c.UI})
	if err := f.Parse(args); err != nil {
		return 1
	}
	rest := f.Args()
	if len(rest) != len(c.argNames) {
		c.UI.Error(fmt.Sprintf("expected %d argument(s): %s", len(c.argNames), strings.Join(c.argNames, " ")))
		return 1
	}

	client := newClient(c.flagBaseURL, c.flagTimeout, c.flagUserAgent)
	result, err := c.run(context.Background(), client, rest, c.flagQuery)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error: %v", err))
		return 1
	}
	if isNilRecord(result) {
		c.UI.Error(fmt.Sprintf("%s not found", c.name))
		return 2
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		c.UI.Error(fmt.Sprintf("error encoding result: %v", err))
		return 1
	}
	c.UI.Output(string(out))
	return 0
}

// Commands returns the CLI command table.
func Commands(ui cli.Ui) map[string]cli.CommandFactory {
	lookups := []*LookupCommand{
		{
			name: "provinces", synopsis: "List provinces", searchable: true,
			run: func(ctx context.Context, c *addresskit.Client, _ []string, q string) (any, error) {
				if q != "" {
					return c.SearchProvinces(ctx, q)
				}
				return c.GetProvinces(ctx)
			},
		},
		{
			name: "province", synopsis: "Show one province", usage: "<province-code>",
			argNames: []string{"province-code"},
			run: func(ctx context.Context, c *addresskit.Client, a []string, _ string) (any, error) {
				return c.GetProvince(ctx, a[0]), nil
			},
		},
		{
			name: "districts", synopsis: "List districts of a province", usage: "<province-code>",
			argNames: []string{"province-code"}, searchable: true,
			run: func(ctx context.Context, c *addresskit.Client, a []string, q string) (any, error) {
				if q != "" {
					return c.SearchDistricts(ctx, a[0], q)
				}
				return c.GetDistricts(ctx, a[0])
			},
		},
		{
			name: "district", synopsis: "Show one district", usage: "<province-code> <district-code>",
			argNames: []string{"province-code", "district-code"},
			run: func(ctx context.Context, c *addresskit.Client, a []string, _ string) (any, error) {
				return c.GetDistrict(ctx, a[0], a[1]), nil
			},
		},
		{
			name: "wards", synopsis: "List wards of a district", usage: "<province-code> <district-code>",
			argNames: []string{"province-code", "district-code"}, searchable: true,
			run: func(ctx context.Context, c *addresskit.Client, a []string, q string) (any, error) {
				if q != "" {
					return c.SearchWards(ctx, a[0], a[1], q)
				}
				return c.GetWards(ctx, a[0], a[1])
			},
		},
		{
			name: "ward", synopsis: "Show one ward", usage: "<province-code> <district-code> <ward-code>",
			argNames: []string{"province-code", "district-code", "ward-code"},
			run: func(ctx context.Context, c *addresskit.Client, a []string, _ string) (any, error) {
				return c.GetWard(ctx, a[0], a[1], a[2]), nil
			},
		},
	}

	commands := map[string]cli.CommandFactory{
		"examples": func() (cli.Command, error) {
			return &ExamplesCommand{UI: ui}, nil
		},
	}
	for _, lc := range lookups {
		lc.UI = ui
		cmd := lc
		commands[cmd.name] = func() (cli.Command, error) { return cmd, nil }
	}
	return commands
}

func newClient(baseURL string, timeout time.Duration, userAgent string) *addresskit.Client {
	var headers map[string]string
	if userAgent != "" {
		headers = map[string]string{"User-Agent": userAgent}
	}
	return addresskit.NewClient(addresskit.Config{BaseURL: baseURL, Timeout: timeout, Headers: headers})
}

// isNilRecord reports a nil result from a singular lookup.
func isNilRecord(v any) bool {
	switch r := v.(type) {
	case *addresskit.Province:
		return r == nil
	case *addresskit.District:
		return r == nil
	case *addresskit.Ward:
		return r == nil
	}
	return v == nil
}

// uiWriter sends flag parse errors to the UI error stream.
type uiWriter struct {
	ui cli.Ui
}

func (w *uiWriter) Write(p []byte) (int, error) {
	w.ui.Error(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}
