package commands

import (
	"context"
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/cli"
	"github.com/rs/zerolog/log"

	"github.com/GTDGit/addresskit/pkg/addresskit"
)

// ExamplesCommand walks through the typical client calls against a live API.
// A failing example is reported and the walk continues.
type ExamplesCommand struct {
	UI cli.Ui

	flagBaseURL string
	flagTimeout time.Duration
}

func (c *ExamplesCommand) Synopsis() string {
	return "Run the usage examples against the AddressKit API"
}

func (c *ExamplesCommand) Help() string {
	return `Usage: addresskit examples [-base-url URL] [-timeout 10s]

  Lists provinces, fetches province 01, its districts, the wards of 01/001,
  searches provinces for "Hà" and repeats the listing with a custom
  User-Agent and a 15s timeout.`
}

func (c *ExamplesCommand) Run(args []string) int {
	f := flag.NewFlagSet("examples", flag.ContinueOnError)
	f.SetOutput(&uiWriter{ui: c.UI})
	f.StringVar(&c.flagBaseURL, "base-url", addresskit.DefaultBaseURL, "AddressKit API base URL.")
	f.DurationVar(&c.flagTimeout, "timeout", addresskit.DefaultTimeout, "Per-request timeout.")
	if err := f.Parse(args); err != nil {
		return 1
	}

	ctx := context.Background()
	client := addresskit.NewClient(addresskit.Config{BaseURL: c.flagBaseURL, Timeout: c.flagTimeout})

	c.UI.Output("=== VN-AddressKit Examples ===")
	failed := 0
	for _, ex := range []struct {
		title string
		run   func() error
	}{
		{"Getting all provinces", func() error {
			provinces, err := client.GetProvinces(ctx)
			if err != nil {
				return err
			}
			c.UI.Output(fmt.Sprintf("Found %d provinces; first: %s", len(provinces), names(provinces, 3)))
			return nil
		}},
		{"Getting Hanoi province (code: 01)", func() error {
			p := client.GetProvince(ctx, "01")
			if p == nil {
				c.UI.Output("Province: not found")
				return nil
			}
			c.UI.Output(fmt.Sprintf("Province: %s (%s)", p.Name, p.Code))
			return nil
		}},
		{"Getting districts in Hanoi (code: 01)", func() error {
			districts, err := client.GetDistricts(ctx, "01")
			if err != nil {
				return err
			}
			c.UI.Output(fmt.Sprintf("Found %d districts; first: %s", len(districts), names(districts, 3)))
			return nil
		}},
		{"Getting wards in district 01/001", func() error {
			wards, err := client.GetWards(ctx, "01", "001")
			if err != nil {
				return err
			}
			c.UI.Output(fmt.Sprintf("Found %d wards; first: %s", len(wards), names(wards, 3)))
			return nil
		}},
		{`Searching for provinces with "Hà"`, func() error {
			results, err := client.SearchProvinces(ctx, "Hà")
			if err != nil {
				return err
			}
			c.UI.Output(fmt.Sprintf("Found %d matching provinces: %s", len(results), names(results, len(results))))
			return nil
		}},
		{"Using custom configuration", func() error {
			custom := addresskit.NewClient(addresskit.Config{
				BaseURL: c.flagBaseURL,
				Timeout: 15 * time.Second,
				Headers: map[string]string{"User-Agent": "vn-addresskit-example"},
			})
			provinces, err := custom.GetProvinces(ctx)
			if err != nil {
				return err
			}
			c.UI.Output(fmt.Sprintf("Successfully fetched %d provinces with custom config", len(provinces)))
			return nil
		}},
	} {
		c.UI.Output("")
		c.UI.Output(ex.title)
		if err := ex.run(); err != nil {
			failed++
			log.Error().Err(err).Str("example", ex.title).Msg("example failed")
			c.UI.Error(fmt.Sprintf("Error: %v", err))
		}
	}

	c.UI.Output("")
	c.UI.Output("=== All examples completed ===")
	if failed > 0 {
		return 1
	}
	return 0
}

type named interface {
	addresskit.Province | addresskit.District | addresskit.Ward
}

func names[T named](items []T, n int) string {
	if n > len(items) {
		n = len(items)
	}
	out := make([]string, 0, n)
	for _, it := range items[:n] {
		switch v := any(it).(type) {
		case addresskit.Province:
			out = append(out, v.Name)
		case addresskit.District:
			out = append(out, v.Name)
		case addresskit.Ward:
			out = append(out, v.Name)
		}
	}
	return strings.Join(out, ", ")
}
