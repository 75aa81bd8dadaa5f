package services

import (
	"context"
	"errors"
	"testing"

	"jobmatch-client/internal/cache"
	"jobmatch-client/internal/domain/poll"
	jobmatch_errors "jobmatch-client/pkg/errors"
	"jobmatch-client/pkg/logger"
)

type stubPollAPI struct {
	active    []poll.Poll
	mine      []poll.Poll
	company   map[int64][]poll.Poll
	created   poll.Poll
	createErr error
	submitted poll.Poll
	submitErr error
	closed    poll.Poll
	closeErr  error

	createCalls        int
	createCompanyCalls []int64
	submitCalls        []int64
}

func (s *stubPollAPI) ActivePolls(ctx context.Context) ([]poll.Poll, error) { return s.active, nil }
func (s *stubPollAPI) MyPolls(ctx context.Context) ([]poll.Poll, error)     { return s.mine, nil }

func (s *stubPollAPI) CompanyPolls(ctx context.Context, companyID int64) ([]poll.Poll, error) {
	return s.company[companyID], nil
}

func (s *stubPollAPI) PollDetail(ctx context.Context, pollID int64) (poll.Poll, error) {
	for _, p := range s.active {
		if p.ID == pollID {
			return p, nil
		}
	}
	return poll.Poll{}, jobmatch_errors.ErrNotFound
}

func (s *stubPollAPI) PublicPollDetail(ctx context.Context, pollID int64) (poll.Poll, error) {
	return s.PollDetail(ctx, pollID)
}

func (s *stubPollAPI) CreatePoll(ctx context.Context, in poll.CreateInput) (poll.Poll, error) {
	s.createCalls++
	return s.created, s.createErr
}

func (s *stubPollAPI) CreateCompanyPoll(ctx context.Context, companyID int64, in poll.CreateInput) (poll.Poll, error) {
	s.createCompanyCalls = append(s.createCompanyCalls, companyID)
	return s.created, s.createErr
}

func (s *stubPollAPI) SubmitPollResponse(ctx context.Context, pollID int64, in poll.ResponseInput) (poll.Poll, error) {
	s.submitCalls = append(s.submitCalls, pollID)
	return s.submitted, s.submitErr
}

func (s *stubPollAPI) ClosePoll(ctx context.Context, pollID int64) (poll.Poll, error) {
	return s.closed, s.closeErr
}

func newPollFixture(api *stubPollAPI, auth stubAuth) (*PollService, *cache.Store[poll.Poll]) {
	store := cache.NewStore(poll.Merge)
	svc := NewPollService(api, store, auth, logger.NewNop())
	return svc, store
}

func TestSubmitResponseSuccess(t *testing.T) {
	api := &stubPollAPI{
		submitted: poll.Poll{
			ID:      5,
			Title:   "Remote work",
			Status:  poll.StatusOpen,
			Options: []poll.Option{{ID: 1, Text: "Yes", ResponseCount: 4}},
		},
	}
	svc, store := newPollFixture(api, stubAuth{valid: true})

	got, err := svc.SubmitResponse(context.Background(), 5, poll.ResponseInput{OptionIDs: []int64{1}})
	if err != nil {
		t.Fatalf("SubmitResponse: %v", err)
	}
	if !got.HasResponded {
		t.Error("HasResponded not forced true on successful submit")
	}
	cached, ok := store.Get(5)
	if !ok || !cached.HasResponded || cached.Options[0].ResponseCount != 4 {
		t.Errorf("cached poll = (%+v, %v)", cached, ok)
	}
}

func TestSubmitResponseAlreadyResponded(t *testing.T) {
	api := &stubPollAPI{
		submitErr: &jobmatch_errors.APIError{
			Message: "You have already responded to this poll",
			Status:  409,
		},
	}
	svc, store := newPollFixture(api, stubAuth{valid: true})
	store.Upsert(poll.Poll{ID: 5, Title: "Remote work", Status: poll.StatusOpen})

	_, err := svc.SubmitResponse(context.Background(), 5, poll.ResponseInput{OptionIDs: []int64{1}})
	if !errors.Is(err, jobmatch_errors.ErrAlreadyResponded) {
		t.Fatalf("err = %v, want ErrAlreadyResponded", err)
	}
	// no cache mutation beyond what was already present
	cached, _ := store.Get(5)
	if cached.HasResponded {
		t.Error("rejected submit mutated HasResponded")
	}
	if store.Len() != 1 {
		t.Errorf("store.Len() = %d, want 1", store.Len())
	}
}

func TestSubmitResponsePollClosed(t *testing.T) {
	api := &stubPollAPI{
		submitErr: &jobmatch_errors.APIError{Message: "Sorry, this POLL IS CLOSED", Status: 422},
	}
	svc, _ := newPollFixture(api, stubAuth{valid: true})

	_, err := svc.SubmitResponse(context.Background(), 5, poll.ResponseInput{})
	if !errors.Is(err, jobmatch_errors.ErrPollClosed) {
		t.Fatalf("err = %v, want ErrPollClosed", err)
	}
}

func TestSubmitResponseRequiresAuth(t *testing.T) {
	api := &stubPollAPI{}
	svc, _ := newPollFixture(api, stubAuth{valid: false})

	_, err := svc.SubmitResponse(context.Background(), 5, poll.ResponseInput{})
	if !errors.Is(err, jobmatch_errors.ErrAuthRequired) {
		t.Fatalf("err = %v, want ErrAuthRequired", err)
	}
	if len(api.submitCalls) != 0 {
		t.Error("network called despite missing auth")
	}
}

func TestCreateCompanyScopedPlacement(t *testing.T) {
	api := &stubPollAPI{
		created: poll.Poll{ID: 9, Title: "Stack", Status: poll.StatusOpen},
	}
	svc, _ := newPollFixture(api, stubAuth{valid: true})
	companyID := int64(42)

	created, err := svc.Create(context.Background(), poll.CreateInput{Title: "Stack"}, &companyID)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.CompanyID != 42 {
		t.Errorf("CompanyID = %d, want 42 stamped on the scoped poll", created.CompanyID)
	}
	if len(api.createCompanyCalls) != 1 || api.createCompanyCalls[0] != 42 {
		t.Errorf("createCompanyCalls = %v, want the scoped endpoint", api.createCompanyCalls)
	}
	if api.createCalls != 0 {
		t.Error("global endpoint used for a company-scoped create")
	}

	assertIDs := func(name string, got []poll.Poll) {
		t.Helper()
		if len(got) != 1 || got[0].ID != 9 {
			t.Errorf("%s = %+v, want poll 9 once", name, got)
		}
	}
	assertIDs("active", svc.Active())
	assertIDs("mine", svc.Mine())
	assertIDs("company", svc.ForCompany(42))

	// repeating the same id must not duplicate anywhere
	if _, err := svc.Create(context.Background(), poll.CreateInput{Title: "Stack"}, &companyID); err != nil {
		t.Fatalf("Create again: %v", err)
	}
	assertIDs("active after repeat", svc.Active())
	assertIDs("mine after repeat", svc.Mine())
	assertIDs("company after repeat", svc.ForCompany(42))
}

func TestCreateGlobalUsesGlobalEndpoint(t *testing.T) {
	api := &stubPollAPI{
		created: poll.Poll{ID: 11, Title: "Global", Status: poll.StatusClosed},
	}
	svc, _ := newPollFixture(api, stubAuth{valid: true})

	if _, err := svc.Create(context.Background(), poll.CreateInput{Title: "Global"}, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if api.createCalls != 1 || len(api.createCompanyCalls) != 0 {
		t.Errorf("calls = (%d, %v), want global endpoint only", api.createCalls, api.createCompanyCalls)
	}
	// closed polls never enter the active listing
	if len(svc.Active()) != 0 {
		t.Errorf("active = %+v, want empty for a closed poll", svc.Active())
	}
	if len(svc.Mine()) != 1 {
		t.Errorf("mine = %+v, want the created poll", svc.Mine())
	}
}

func TestCreatePrependsNewestFirst(t *testing.T) {
	api := &stubPollAPI{created: poll.Poll{ID: 1, Status: poll.StatusOpen}}
	svc, _ := newPollFixture(api, stubAuth{valid: true})

	if _, err := svc.Create(context.Background(), poll.CreateInput{}, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	api.created = poll.Poll{ID: 2, Status: poll.StatusOpen}
	if _, err := svc.Create(context.Background(), poll.CreateInput{}, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}

	active := svc.Active()
	if len(active) != 2 || active[0].ID != 2 || active[1].ID != 1 {
		t.Errorf("active = %+v, want newest first", active)
	}
}

func TestCloseRemovesFromActive(t *testing.T) {
	api := &stubPollAPI{
		active: []poll.Poll{{ID: 3, Title: "Close me", Status: poll.StatusOpen}},
		closed: poll.Poll{ID: 3, Title: "Close me", Status: poll.StatusClosed},
	}
	svc, store := newPollFixture(api, stubAuth{valid: true})
	if _, err := svc.LoadActive(context.Background()); err != nil {
		t.Fatalf("LoadActive: %v", err)
	}

	got, err := svc.Close(context.Background(), 3)
	if err != nil {
		t.Fatalf("Close: %v", err)
	}
	if got.Status != poll.StatusClosed || got.ClosedAt == nil {
		t.Errorf("closed poll = %+v, want closed with ClosedAt set", got)
	}
	if len(svc.Active()) != 0 {
		t.Errorf("active = %+v, want empty after close", svc.Active())
	}
	if cached, _ := store.Get(3); cached.Status != poll.StatusClosed {
		t.Errorf("cached status = %q, want closed", cached.Status)
	}
}

func TestLoadActiveReplacesListing(t *testing.T) {
	api := &stubPollAPI{
		active: []poll.Poll{
			{ID: 1, Title: "a", Status: poll.StatusOpen},
			{ID: 2, Title: "b", Status: poll.StatusOpen},
		},
	}
	svc, _ := newPollFixture(api, stubAuth{valid: true})

	got, err := svc.LoadActive(context.Background())
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("active = %+v", got)
	}

	api.active = []poll.Poll{{ID: 2, Title: "b", Status: poll.StatusOpen}}
	got, err = svc.LoadActive(context.Background())
	if err != nil {
		t.Fatalf("LoadActive: %v", err)
	}
	if len(got) != 1 || got[0].ID != 2 {
		t.Errorf("active after reload = %+v, want just poll 2", got)
	}
}
