package services

import (
	"context"

	"jobmatch-client/internal/domain/company"
	"jobmatch-client/internal/domain/favourite"
	"jobmatch-client/internal/domain/poll"
)

// AuthSource is the slice of the token accessor the services need.
type AuthSource interface {
	Valid() bool
	IsAdmin() bool
}

// FavouriteAPI is the favourites slice of the REST client.
type FavouriteAPI interface {
	ListFavourites(ctx context.Context) ([]favourite.Favourite, error)
	AddFavourite(ctx context.Context, companyID int64) error
	RemoveFavourite(ctx context.Context, companyID int64) error
}

// PollAPI is the polls slice of the REST client.
type PollAPI interface {
	ActivePolls(ctx context.Context) ([]poll.Poll, error)
	MyPolls(ctx context.Context) ([]poll.Poll, error)
	CompanyPolls(ctx context.Context, companyID int64) ([]poll.Poll, error)
	PollDetail(ctx context.Context, pollID int64) (poll.Poll, error)
	PublicPollDetail(ctx context.Context, pollID int64) (poll.Poll, error)
	CreatePoll(ctx context.Context, in poll.CreateInput) (poll.Poll, error)
	CreateCompanyPoll(ctx context.Context, companyID int64, in poll.CreateInput) (poll.Poll, error)
	SubmitPollResponse(ctx context.Context, pollID int64, in poll.ResponseInput) (poll.Poll, error)
	ClosePoll(ctx context.Context, pollID int64) (poll.Poll, error)
}

// CompanyAPI is the directory slice of the REST client.
type CompanyAPI interface {
	ListCompanies(ctx context.Context, filter company.Filter) ([]company.Company, error)
}
