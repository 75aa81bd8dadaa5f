package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobmatch-client/config"
	"jobmatch-client/internal/authtoken"
	"jobmatch-client/internal/cache"
	"jobmatch-client/internal/domain/company"
	"jobmatch-client/internal/domain/favourite"
	"jobmatch-client/internal/domain/notification"
	"jobmatch-client/internal/domain/poll"
	"jobmatch-client/internal/guard"
	"jobmatch-client/internal/notifications"
	clientredis "jobmatch-client/internal/redis"
	"jobmatch-client/internal/rest"
	"jobmatch-client/internal/services"
	"jobmatch-client/pkg/logger"
)

type cliNavigator struct {
	log *logger.Logger
}

func (n cliNavigator) NavigateToLogin() {
	n.log.Warnf("no valid session: set AUTH_TOKEN and retry")
}

func (n cliNavigator) LeaveAdmin() {
	n.log.Infof("leaving admin area")
}

func main() {
	var (
		command   = flag.String("cmd", "companies", "companies | favourites | toggle | active-polls | my-polls | company-polls | respond | create-poll | close-poll | admin | watch")
		companyID = flag.Int64("company", 0, "company id for toggle/company-polls/create-poll")
		pollID    = flag.Int64("poll", 0, "poll id for respond/close-poll")
		optionID  = flag.Int64("option", 0, "option id for respond")
		category  = flag.String("category", "", "directory category filter")
		search    = flag.String("search", "", "directory search term")
		title     = flag.String("title", "", "title for create-poll")
		code      = flag.String("code", "", "TOTP code for the admin flow")
	)
	flag.Parse()

	cfg := config.LoadConfig()
	log := logger.New(cfg.AppMode)
	defer log.Logger.Sync()

	tokens := authtoken.NewAccessor(authtoken.StaticToken(cfg.AuthToken))
	api := rest.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, tokens, log)

	companyStore := cache.NewStore(company.Merge)
	favouriteStore := cache.NewStore(favourite.Merge)
	pollStore := cache.NewStore(poll.Merge)
	notificationStore := cache.NewStore(notification.Merge)

	companies := services.NewCompanyService(api, companyStore, log)
	favourites := services.NewFavouriteService(api, favouriteStore, tokens, log)
	polls := services.NewPollService(api, pollStore, tokens, log)

	ctx := context.Background()

	switch *command {
	case "companies":
		list, err := companies.Browse(ctx, company.Filter{Category: *category, Search: *search})
		exitOn(err, log)
		for _, c := range list {
			fmt.Printf("%6d  %-30s %-15s %s\n", c.ID, c.Name, c.Category, c.Location)
		}

	case "favourites":
		exitOn(favourites.Refresh(ctx), log)
		for _, f := range favourites.List() {
			name := fmt.Sprintf("company %d", f.CompanyID)
			if f.Company != nil {
				name = f.Company.Name
			}
			fmt.Printf("%6d  %s\n", f.CompanyID, name)
		}

	case "toggle":
		requireID(*companyID, "-company", log)
		if !favourites.Toggle(ctx, *companyID) {
			log.Errorf("toggle failed for company %d", *companyID)
			os.Exit(1)
		}
		fmt.Printf("company %d favourited: %v\n", *companyID, favourites.IsFavourite(*companyID))

	case "active-polls":
		list, err := polls.LoadActive(ctx)
		exitOn(err, log)
		printPolls(list)

	case "my-polls":
		list, err := polls.LoadMine(ctx)
		exitOn(err, log)
		printPolls(list)

	case "company-polls":
		requireID(*companyID, "-company", log)
		list, err := polls.LoadCompany(ctx, *companyID)
		exitOn(err, log)
		printPolls(list)

	case "respond":
		requireID(*pollID, "-poll", log)
		requireID(*optionID, "-option", log)
		p, err := polls.SubmitResponse(ctx, *pollID, poll.ResponseInput{OptionIDs: []int64{*optionID}})
		exitOn(err, log)
		fmt.Printf("responded to %q, has_responded=%v\n", p.Title, p.HasResponded)

	case "create-poll":
		if *title == "" {
			log.Errorf("-title is required")
			os.Exit(1)
		}
		var scope *int64
		if *companyID != 0 {
			scope = companyID
		}
		p, err := polls.Create(ctx, poll.CreateInput{Title: *title, Options: flag.Args()}, scope)
		exitOn(err, log)
		fmt.Printf("created poll %d (%s)\n", p.ID, p.Status)

	case "close-poll":
		requireID(*pollID, "-poll", log)
		p, err := polls.Close(ctx, *pollID)
		exitOn(err, log)
		fmt.Printf("poll %d closed at %s\n", p.ID, p.ClosedAt.Format(time.RFC3339))

	case "admin":
		runAdmin(ctx, cfg, api, tokens, *code, log)

	case "watch":
		runWatch(cfg, tokens, notificationStore, log)

	default:
		log.Errorf("unknown command %q", *command)
		os.Exit(2)
	}
}

func runAdmin(ctx context.Context, cfg *config.Config, api *rest.Client, tokens *authtoken.Accessor, code string, log *logger.Logger) {
	var sessions guard.SessionStore = guard.NewMemorySessionStore()
	if cfg.RedisAddr != "" {
		if userID, ok := tokens.UserID(); ok {
			ttl := time.Duration(cfg.SessionTTLMin) * time.Minute
			sessions = clientredis.NewSessionStore(clientredis.NewClient(cfg.RedisAddr, cfg.RedisPassword), userID, ttl)
		}
	}

	g := guard.New(api, tokens, sessions, cliNavigator{log: log}, log)
	state, err := g.Mount(ctx)
	exitOn(err, log)

	if state == guard.StateNeedsSetup {
		setup, err := g.BeginSetup(ctx)
		exitOn(err, log)
		fmt.Printf("2FA setup required. Secret: %s\nEnrol at: %s\n", setup.Secret, setup.OTPAuthURL)
		_, err = g.CompleteSetup()
		exitOn(err, log)
		state = g.State()
	}

	if state == guard.StateNeedsVerify {
		if code == "" {
			fmt.Println("2FA verification required: rerun with -code <TOTP>")
			g.Cancel()
			os.Exit(1)
		}
		state, err = g.Verify(ctx, code)
		exitOn(err, log)
	}

	if state == guard.StateVerified {
		fmt.Println("admin area unlocked")
		return
	}
	log.Errorf("admin access denied: %s", state)
	os.Exit(1)
}

func runWatch(cfg *config.Config, tokens *authtoken.Accessor, store *cache.Store[notification.Notification], log *logger.Logger) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sub := notifications.NewSubscriber(cfg.WSURL, tokens, store, log)
	exitOn(sub.Start(ctx), log)

	<-ctx.Done()
	sub.Stop()
	for _, n := range store.All() {
		fmt.Printf("[%s] %s\n", n.Type, n.Message)
	}
	log.Infof("received %d notifications", store.Len())
}

func printPolls(list []poll.Poll) {
	for _, p := range list {
		marker := " "
		if p.HasResponded {
			marker = "*"
		}
		fmt.Printf("%6d %s %-40s %s\n", p.ID, marker, p.Title, p.Status)
	}
}

func requireID(id int64, name string, log *logger.Logger) {
	if id == 0 {
		log.Errorf("%s is required", name)
		os.Exit(2)
	}
}

func exitOn(err error, log *logger.Logger) {
	if err != nil {
		log.Errorf("%v", err)
		os.Exit(1)
	}
}
