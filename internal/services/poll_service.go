package services

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"jobmatch-client/internal/cache"
	"jobmatch-client/internal/domain/poll"
	jobmatch_errors "jobmatch-client/pkg/errors"
	"jobmatch-client/pkg/logger"
)

// PollService owns the poll cache and the id lists backing the active,
// my-polls, and per-company listings.
type PollService struct {
	api    PollAPI
	store  *cache.Store[poll.Poll]
	active *cache.IDList
	mine   *cache.IDList
	auth   AuthSource
	log    *logger.Logger

	mu        sync.Mutex
	byCompany map[int64]*cache.IDList
}

func NewPollService(api PollAPI, store *cache.Store[poll.Poll], auth AuthSource, log *logger.Logger) *PollService {
	return &PollService{
		api:       api,
		store:     store,
		active:    cache.NewIDList(),
		mine:      cache.NewIDList(),
		auth:      auth,
		log:       log,
		byCompany: make(map[int64]*cache.IDList),
	}
}

func (s *PollService) companyList(companyID int64) *cache.IDList {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.byCompany[companyID]
	if !ok {
		l = cache.NewIDList()
		s.byCompany[companyID] = l
	}
	return l
}

// Get returns the cached poll, never fetching.
func (s *PollService) Get(pollID int64) (poll.Poll, bool) {
	return s.store.Get(pollID)
}

func (s *PollService) resolve(ids []int64) []poll.Poll {
	out := make([]poll.Poll, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.store.Get(id); ok {
			out = append(out, p)
		}
	}
	return out
}

// Active returns the cached active listing in order.
func (s *PollService) Active() []poll.Poll {
	return s.resolve(s.active.IDs())
}

// Mine returns the cached my-polls listing in order.
func (s *PollService) Mine() []poll.Poll {
	return s.resolve(s.mine.IDs())
}

// ForCompany returns the cached company-scoped listing in order.
func (s *PollService) ForCompany(companyID int64) []poll.Poll {
	return s.resolve(s.companyList(companyID).IDs())
}

func ids(polls []poll.Poll) []int64 {
	out := make([]int64, 0, len(polls))
	for _, p := range polls {
		out = append(out, p.ID)
	}
	return out
}

// LoadActive fetches the open polls and replaces the active listing.
func (s *PollService) LoadActive(ctx context.Context) ([]poll.Poll, error) {
	polls, err := s.api.ActivePolls(ctx)
	if err != nil {
		return nil, err
	}
	s.store.UpsertMany(polls)
	s.active.Replace(ids(polls))
	return s.Active(), nil
}

// LoadMine fetches the current user's polls and replaces that listing.
func (s *PollService) LoadMine(ctx context.Context) ([]poll.Poll, error) {
	if !s.auth.Valid() {
		return nil, jobmatch_errors.ErrAuthRequired
	}
	polls, err := s.api.MyPolls(ctx)
	if err != nil {
		return nil, err
	}
	s.store.UpsertMany(polls)
	s.mine.Replace(ids(polls))
	return s.Mine(), nil
}

// LoadCompany fetches one company's polls and replaces that listing.
func (s *PollService) LoadCompany(ctx context.Context, companyID int64) ([]poll.Poll, error) {
	if !s.auth.Valid() {
		return nil, jobmatch_errors.ErrAuthRequired
	}
	polls, err := s.api.CompanyPolls(ctx, companyID)
	if err != nil {
		return nil, err
	}
	s.store.UpsertMany(polls)
	s.companyList(companyID).Replace(ids(polls))
	return s.ForCompany(companyID), nil
}

// Detail fetches one poll and caches it. Public, no auth needed.
func (s *PollService) Detail(ctx context.Context, pollID int64) (poll.Poll, error) {
	p, err := s.api.PollDetail(ctx, pollID)
	if err != nil {
		return poll.Poll{}, err
	}
	s.store.Upsert(p)
	merged, _ := s.store.Get(p.ID)
	return merged, nil
}

// PublicDetail fetches the share-link view of a poll and caches it.
func (s *PollService) PublicDetail(ctx context.Context, pollID int64) (poll.Poll, error) {
	p, err := s.api.PublicPollDetail(ctx, pollID)
	if err != nil {
		return poll.Poll{}, err
	}
	s.store.Upsert(p)
	merged, _ := s.store.Get(p.ID)
	return merged, nil
}

// classifyRejection maps the backend's rejection messages onto sentinel
// errors so the UI can distinguish "you already voted" from "too late"
// from everything else. Substring match is case-insensitive; the backend
// wording varies.
func classifyRejection(err error) error {
	apiErr, ok := jobmatch_errors.AsAPIError(err)
	if !ok {
		return err
	}
	message := strings.ToLower(apiErr.Message)
	if strings.Contains(message, "already responded") {
		return fmt.Errorf("%w: %s", jobmatch_errors.ErrAlreadyResponded, apiErr.Message)
	}
	if strings.Contains(message, "poll is closed") {
		return fmt.Errorf("%w: %s", jobmatch_errors.ErrPollClosed, apiErr.Message)
	}
	return err
}

// SubmitResponse posts a response and caches the server's refreshed poll
// with HasResponded forced true. On rejection the cache is left untouched.
func (s *PollService) SubmitResponse(ctx context.Context, pollID int64, in poll.ResponseInput) (poll.Poll, error) {
	if !s.auth.Valid() {
		return poll.Poll{}, jobmatch_errors.ErrAuthRequired
	}
	p, err := s.api.SubmitPollResponse(ctx, pollID, in)
	if err != nil {
		return poll.Poll{}, classifyRejection(err)
	}
	p.HasResponded = true
	s.store.Upsert(p)
	merged, _ := s.store.Get(p.ID)
	return merged, nil
}

// Create makes a poll, global or company-scoped depending on whether
// companyID is given. An open poll is prepended to the active listing and
// the new poll always lands at the front of my-polls and, when scoped, the
// company's listing. The id lists dedupe, so re-creating an id the backend
// already handed out cannot produce doubles.
func (s *PollService) Create(ctx context.Context, in poll.CreateInput, companyID *int64) (poll.Poll, error) {
	if !s.auth.Valid() {
		return poll.Poll{}, jobmatch_errors.ErrAuthRequired
	}

	var (
		created poll.Poll
		err     error
	)
	if companyID != nil {
		created, err = s.api.CreateCompanyPoll(ctx, *companyID, in)
	} else {
		created, err = s.api.CreatePoll(ctx, in)
	}
	if err != nil {
		return poll.Poll{}, err
	}

	if companyID != nil && created.CompanyID == 0 {
		created.CompanyID = *companyID
	}
	s.store.Upsert(created)
	if created.IsOpen() {
		s.active.Prepend(created.ID)
	}
	s.mine.Prepend(created.ID)
	if companyID != nil {
		s.companyList(*companyID).Prepend(created.ID)
	}

	s.log.Infof("poll created: id=%d company=%d status=%s", created.ID, created.CompanyID, created.Status)
	merged, _ := s.store.Get(created.ID)
	return merged, nil
}

// Close closes a poll the user owns and drops it from the active listing.
func (s *PollService) Close(ctx context.Context, pollID int64) (poll.Poll, error) {
	if !s.auth.Valid() {
		return poll.Poll{}, jobmatch_errors.ErrAuthRequired
	}
	closed, err := s.api.ClosePoll(ctx, pollID)
	if err != nil {
		return poll.Poll{}, err
	}
	if closed.ClosedAt == nil {
		now := time.Now()
		closed.ClosedAt = &now
	}
	closed.Status = poll.StatusClosed
	s.store.Upsert(closed)
	s.active.Remove(pollID)
	merged, _ := s.store.Get(pollID)
	return merged, nil
}
