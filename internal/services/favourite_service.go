package services

import (
	"context"

	"jobmatch-client/internal/cache"
	"jobmatch-client/internal/domain/favourite"
	"jobmatch-client/pkg/logger"
)

// FavouriteService owns the favourites cache and the optimistic toggle.
type FavouriteService struct {
	api   FavouriteAPI
	store *cache.Store[favourite.Favourite]
	auth  AuthSource
	log   *logger.Logger
}

func NewFavouriteService(api FavouriteAPI, store *cache.Store[favourite.Favourite], auth AuthSource, log *logger.Logger) *FavouriteService {
	return &FavouriteService{api: api, store: store, auth: auth, log: log}
}

func (s *FavouriteService) byCompany(companyID int64) (favourite.Favourite, bool) {
	return s.store.Find(func(f favourite.Favourite) bool {
		return f.CompanyID == companyID
	})
}

// IsFavourite reads membership from the cache only.
func (s *FavouriteService) IsFavourite(companyID int64) bool {
	_, ok := s.byCompany(companyID)
	return ok
}

// List returns every cached favourite.
func (s *FavouriteService) List() []favourite.Favourite {
	return s.store.All()
}

// Refresh replaces the cache content with the authoritative server list.
// Placeholders from earlier optimistic adds are dropped once the real rows
// have landed; a confirmed add never swaps its placeholder id in place, so
// this is where the temporary entries finally retire.
func (s *FavouriteService) Refresh(ctx context.Context) error {
	favs, err := s.api.ListFavourites(ctx)
	if err != nil {
		return err
	}
	s.store.UpsertMany(favs)
	s.store.DeleteWhere(func(f favourite.Favourite) bool {
		return f.IsPlaceholder()
	})
	return nil
}

// Toggle flips the favourite state for companyID and reports success. The
// cache is mutated before the network call so callers observe the new
// state immediately; a failed call reverts toward the pre-toggle
// membership. Two overlapping Toggle calls for the same company race: the
// second one reads whatever optimistic state the first left behind. That
// matches how the product behaves and is not guarded here.
func (s *FavouriteService) Toggle(ctx context.Context, companyID int64) bool {
	if !s.auth.Valid() {
		s.log.Warnf("favourite toggle skipped: no valid auth token (company=%d)", companyID)
		return false
	}

	existing, wasFavourite := s.byCompany(companyID)

	var err error
	if wasFavourite {
		s.store.Delete(existing.ID)
		err = s.api.RemoveFavourite(ctx, companyID)
	} else {
		s.store.Upsert(favourite.NewPlaceholder(companyID))
		err = s.api.AddFavourite(ctx, companyID)
	}
	if err == nil {
		return true
	}

	// Revert whatever the optimistic step left behind toward the
	// pre-toggle membership.
	current, nowFavourite := s.byCompany(companyID)
	if wasFavourite && !nowFavourite {
		s.store.Upsert(existing)
	} else if !wasFavourite && nowFavourite {
		s.store.Delete(current.ID)
	}
	s.log.Errorf("favourite toggle failed, rolled back: company=%d err=%v", companyID, err)
	return false
}
