package commands

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mitchellh/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GTDGit/addresskit/pkg/addresskit"
)

func newUpstream(t *testing.T) *httptest.Server {
	t.Helper()
	routes := map[string]string{
		"/api/provinces":                        `[{"code":"01","name":"Hà Nội"},{"code":"79","name":"Hồ Chí Minh"}]`,
		"/api/provinces/01":                     `{"data":{"code":"01","name":"Hà Nội"}}`,
		"/api/provinces/01/districts":           `{"data":[{"code":"001","name":"Ba Đình","provinceCode":"01"}]}`,
		"/api/provinces/01/districts/001/wards": `[{"code":"00001","name":"Phúc Xá","districtCode":"001"}]`,
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func runCommand(t *testing.T, name string, args ...string) (int, *cli.MockUi) {
	t.Helper()
	ui := cli.NewMockUi()
	factory, ok := Commands(ui)[name]
	require.True(t, ok, "command %q registered", name)
	cmd, err := factory()
	require.NoError(t, err)
	return cmd.Run(args), ui
}

func TestCommands_Registered(t *testing.T) {
	cmds := Commands(cli.NewMockUi())
	for _, name := range []string{"examples", "provinces", "province", "districts", "district", "wards", "ward"} {
		assert.Contains(t, cmds, name)
	}
}

func TestProvincesCommand_Search(t *testing.T) {
	srv := newUpstream(t)

	code, ui := runCommand(t, "provinces", "-base-url", srv.URL, "-q", "hà")
	require.Equal(t, 0, code, ui.ErrorWriter.String())

	var got []addresskit.Province
	require.NoError(t, json.Unmarshal([]byte(ui.OutputWriter.String()), &got))
	assert.Equal(t, []addresskit.Province{{Code: "01", Name: "Hà Nội"}}, got)
}

func TestProvinceCommand(t *testing.T) {
	srv := newUpstream(t)

	code, ui := runCommand(t, "province", "-base-url", srv.URL, "01")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), `"name": "Hà Nội"`)

	code, ui = runCommand(t, "province", "-base-url", srv.URL, "99")
	assert.Equal(t, 2, code)
	assert.Contains(t, ui.ErrorWriter.String(), "province not found")
}

func TestWardsCommand(t *testing.T) {
	srv := newUpstream(t)

	code, ui := runCommand(t, "wards", "-base-url", srv.URL, "01", "001")
	require.Equal(t, 0, code, ui.ErrorWriter.String())
	assert.Contains(t, ui.OutputWriter.String(), "Phúc Xá")
}

func TestLookupCommand_Errors(t *testing.T) {
	srv := newUpstream(t)

	code, ui := runCommand(t, "districts", "-base-url", srv.URL)
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "expected 1 argument(s)")

	code, ui = runCommand(t, "districts", "-base-url", srv.URL, "02")
	assert.Equal(t, 1, code)
	assert.Contains(t, ui.ErrorWriter.String(), "HTTP error! status: 404")
}

func TestExamplesCommand(t *testing.T) {
	srv := newUpstream(t)

	code, ui := runCommand(t, "examples", "-base-url", srv.URL)
	assert.Equal(t, 0, code, ui.ErrorWriter.String())
	out := ui.OutputWriter.String()
	assert.Contains(t, out, "Found 2 provinces; first: Hà Nội, Hồ Chí Minh")
	assert.Contains(t, out, "Province: Hà Nội (01)")
	assert.Contains(t, out, "Found 1 matching provinces: Hà Nội")
	assert.Contains(t, out, "Successfully fetched 2 provinces with custom config")
	assert.Contains(t, out, "=== All examples completed ===")
}
