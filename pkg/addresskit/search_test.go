package addresskit

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchProvinces(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api/provinces": `[{"code":"01","name":"Hà Nội"},{"code":"79","name":"Hồ Chí Minh"}]`,
	})
	c := NewClient(Config{BaseURL: srv.URL})

	got, err := c.SearchProvinces(context.Background(), "hà")
	require.NoError(t, err)
	assert.Equal(t, []Province{{Code: "01", Name: "Hà Nội"}}, got)

	got, err = c.SearchProvinces(context.Background(), "HÀ")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestSearchProvinces_PropagatesErrors(t *testing.T) {
	srv := newTestServer(t, nil)
	_, err := NewClient(Config{BaseURL: srv.URL}).SearchProvinces(context.Background(), "hà")
	assert.ErrorIs(t, err, ErrHTTPStatus)
}

func TestSearchDistricts(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api/provinces/01/districts": `{"data":[
			{"code":"003","name":"Tây Hồ","provinceCode":"01","codeName":"tay_ho"},
			{"code":"001","name":"Ba Đình","provinceCode":"01","nameEn":"Ba Dinh"},
			{"code":"005","name":"Cầu Giấy","provinceCode":"01"},
			{"code":"002","name":"Hoàn Kiếm","provinceCode":"01","codeName":"hoan_kiem"}
		]}`,
	})
	c := NewClient(Config{BaseURL: srv.URL})
	ctx := context.Background()

	t.Run("preserves fetch order", func(t *testing.T) {
		got, err := c.SearchDistricts(ctx, "01", "h")
		require.NoError(t, err)
		codes := make([]string, 0, len(got))
		for _, d := range got {
			codes = append(codes, d.Code)
		}
		assert.Equal(t, []string{"003", "001", "002"}, codes)
	})

	t.Run("matches english name", func(t *testing.T) {
		got, err := c.SearchDistricts(ctx, "01", "DINH")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "001", got[0].Code)
	})

	t.Run("matches code name", func(t *testing.T) {
		got, err := c.SearchDistricts(ctx, "01", "_kiem")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "002", got[0].Code)
	})

	t.Run("no match is empty not nil", func(t *testing.T) {
		got, err := c.SearchDistricts(ctx, "01", "sài gòn")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})
}

func TestSearchWards(t *testing.T) {
	srv := newTestServer(t, map[string]string{
		"/api/provinces/01/districts/001/wards": `[
			{"code":"00001","name":"Phúc Xá","districtCode":"001"},
			{"code":"00004","name":"Trúc Bạch","districtCode":"001"},
			{"code":"00006","name":"Vĩnh Phúc","districtCode":"001"}
		]`,
	})
	c := NewClient(Config{BaseURL: srv.URL})

	got, err := c.SearchWards(context.Background(), "01", "001", "phúc")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "00001", got[0].Code)
	assert.Equal(t, "00006", got[1].Code)
}

func TestMatches(t *testing.T) {
	tests := []struct {
		name  string
		p     Province
		query string
		want  bool
	}{
		{name: "name", p: Province{Name: "Hà Nội"}, query: "nội", want: true},
		{name: "case folded", p: Province{Name: "Hà Nội"}, query: "HÀ NỘI", want: true},
		{name: "english name", p: Province{Name: "Hà Nội", NameEn: "Hanoi"}, query: "hanoi", want: true},
		{name: "code name", p: Province{Name: "Hà Nội", CodeName: "ha_noi"}, query: "ha_", want: true},
		{name: "absent optionals skipped", p: Province{Name: "Huế"}, query: "da nang", want: false},
		{name: "diacritics are significant", p: Province{Name: "Hà Nội"}, query: "ha noi", want: false},
		{name: "empty query matches", p: Province{Name: "Huế"}, query: "", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.p.Matches(tt.query))
		})
	}
}

func TestFilter_NilInput(t *testing.T) {
	got := Filter[Ward](nil, "x")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}
