package rest

import (
	"context"
	"net/http"
	"net/url"

	"jobmatch-client/internal/domain/company"
)

// ListCompanies fetches the public directory, optionally narrowed by
// category and search term.
func (c *Client) ListCompanies(ctx context.Context, filter company.Filter) ([]company.Company, error) {
	query := url.Values{}
	if filter.Category != "" {
		query.Set("category", filter.Category)
	}
	if filter.Search != "" {
		query.Set("search", filter.Search)
	}

	var wires []companyWire
	if err := c.do(ctx, http.MethodGet, "/companies", nil, &wires, requestOpts{query: query}); err != nil {
		return nil, err
	}
	out := make([]company.Company, 0, len(wires))
	for _, w := range wires {
		out = append(out, normalizeCompany(w))
	}
	return out, nil
}
