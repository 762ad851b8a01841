package addresskit

import (
	"context"
	"strings"
)

// Matcher is implemented by records that can be searched by name.
type Matcher interface {
	Matches(query string) bool
}

// Filter returns the items matching query, in their original order.
// The result is never nil.
func Filter[T Matcher](items []T, query string) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if it.Matches(query) {
			out = append(out, it)
		}
	}
	return out
}

// matchNames expects lowerQuery already lower-cased. Optional names that are
// empty are skipped.
func matchNames(lowerQuery, name string, optional ...string) bool {
	if strings.Contains(strings.ToLower(name), lowerQuery) {
		return true
	}
	for _, n := range optional {
		if n == "" {
			continue
		}
		if strings.Contains(strings.ToLower(n), lowerQuery) {
			return true
		}
	}
	return false
}

// SearchProvinces fetches all provinces and keeps those matching query.
func (c *Client) SearchProvinces(ctx context.Context, query string) ([]Province, error) {
	provinces, err := c.GetProvinces(ctx)
	if err != nil {
		return nil, err
	}
	return Filter(provinces, query), nil
}

// SearchDistricts fetches the districts of a province and keeps those matching query.
func (c *Client) SearchDistricts(ctx context.Context, provinceCode, query string) ([]District, error) {
	districts, err := c.GetDistricts(ctx, provinceCode)
	if err != nil {
		return nil, err
	}
	return Filter(districts, query), nil
}

// SearchWards fetches the wards of a district and keeps those matching query.
func (c *Client) SearchWards(ctx context.Context, provinceCode, districtCode, query string) ([]Ward, error) {
	wards, err := c.GetWards(ctx, provinceCode, districtCode)
	if err != nil {
		return nil, err
	}
	return Filter(wards, query), nil
}
