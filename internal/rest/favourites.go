package rest

import (
	"context"
	"fmt"
	"net/http"

	"jobmatch-client/internal/domain/favourite"
)

// ListFavourites fetches the current user's favourites.
func (c *Client) ListFavourites(ctx context.Context) ([]favourite.Favourite, error) {
	var wires []favouriteWire
	if err := c.do(ctx, http.MethodGet, "/favourites", nil, &wires, requestOpts{auth: true}); err != nil {
		return nil, err
	}
	out := make([]favourite.Favourite, 0, len(wires))
	for _, w := range wires {
		out = append(out, normalizeFavourite(w))
	}
	return out, nil
}

// AddFavourite marks a company as favourited.
func (c *Client) AddFavourite(ctx context.Context, companyID int64) error {
	body := map[string]int64{"company_id": companyID}
	return c.do(ctx, http.MethodPost, "/favourites", body, nil, requestOpts{auth: true})
}

// RemoveFavourite unmarks a company.
func (c *Client) RemoveFavourite(ctx context.Context, companyID int64) error {
	path := fmt.Sprintf("/favourites/%d", companyID)
	return c.do(ctx, http.MethodDelete, path, nil, nil, requestOpts{auth: true})
}
