package rest

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"jobmatch-client/internal/domain/poll"
)

func (c *Client) normalizePolls(wires []pollWire) []poll.Poll {
	now := time.Now()
	out := make([]poll.Poll, 0, len(wires))
	for _, w := range wires {
		out = append(out, normalizePoll(w, now))
	}
	return out
}

// ActivePolls fetches the public list of open polls.
func (c *Client) ActivePolls(ctx context.Context) ([]poll.Poll, error) {
	var wires []pollWire
	if err := c.do(ctx, http.MethodGet, "/polls/active", nil, &wires, requestOpts{}); err != nil {
		return nil, err
	}
	return c.normalizePolls(wires), nil
}

// MyPolls fetches polls created by the current user.
func (c *Client) MyPolls(ctx context.Context) ([]poll.Poll, error) {
	var wires []pollWire
	if err := c.do(ctx, http.MethodGet, "/polls/mine", nil, &wires, requestOpts{auth: true}); err != nil {
		return nil, err
	}
	return c.normalizePolls(wires), nil
}

// CompanyPolls fetches the polls scoped to one company.
func (c *Client) CompanyPolls(ctx context.Context, companyID int64) ([]poll.Poll, error) {
	path := fmt.Sprintf("/companies/%d/polls", companyID)
	var wires []pollWire
	if err := c.do(ctx, http.MethodGet, path, nil, &wires, requestOpts{auth: true}); err != nil {
		return nil, err
	}
	return c.normalizePolls(wires), nil
}

// PollDetail fetches one poll.
func (c *Client) PollDetail(ctx context.Context, pollID int64) (poll.Poll, error) {
	path := fmt.Sprintf("/polls/%d", pollID)
	var wire pollWire
	if err := c.do(ctx, http.MethodGet, path, nil, &wire, requestOpts{}); err != nil {
		return poll.Poll{}, err
	}
	return normalizePoll(wire, time.Now()), nil
}

// PublicPollDetail fetches the unauthenticated detail view used on share
// links.
func (c *Client) PublicPollDetail(ctx context.Context, pollID int64) (poll.Poll, error) {
	path := fmt.Sprintf("/public/polls/%d", pollID)
	var wire pollWire
	if err := c.do(ctx, http.MethodGet, path, nil, &wire, requestOpts{}); err != nil {
		return poll.Poll{}, err
	}
	return normalizePoll(wire, time.Now()), nil
}

// CreatePoll creates a poll on the global endpoint.
func (c *Client) CreatePoll(ctx context.Context, in poll.CreateInput) (poll.Poll, error) {
	var wire pollWire
	if err := c.do(ctx, http.MethodPost, "/polls", in, &wire, requestOpts{auth: true}); err != nil {
		return poll.Poll{}, err
	}
	return normalizePoll(wire, time.Now()), nil
}

// CreateCompanyPoll creates a poll scoped to a company.
func (c *Client) CreateCompanyPoll(ctx context.Context, companyID int64, in poll.CreateInput) (poll.Poll, error) {
	path := fmt.Sprintf("/companies/%d/polls", companyID)
	var wire pollWire
	if err := c.do(ctx, http.MethodPost, path, in, &wire, requestOpts{auth: true}); err != nil {
		return poll.Poll{}, err
	}
	return normalizePoll(wire, time.Now()), nil
}

// SubmitPollResponse posts a response and returns the server's refreshed
// poll representation.
func (c *Client) SubmitPollResponse(ctx context.Context, pollID int64, in poll.ResponseInput) (poll.Poll, error) {
	path := fmt.Sprintf("/polls/%d/responses", pollID)
	var wire pollWire
	if err := c.do(ctx, http.MethodPost, path, in, &wire, requestOpts{auth: true}); err != nil {
		return poll.Poll{}, err
	}
	return normalizePoll(wire, time.Now()), nil
}

// ClosePoll closes a poll the current user owns.
func (c *Client) ClosePoll(ctx context.Context, pollID int64) (poll.Poll, error) {
	path := fmt.Sprintf("/polls/%d/close", pollID)
	var wire pollWire
	if err := c.do(ctx, http.MethodPost, path, nil, &wire, requestOpts{auth: true}); err != nil {
		return poll.Poll{}, err
	}
	return normalizePoll(wire, time.Now()), nil
}
