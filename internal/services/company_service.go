package services

import (
	"context"
	"sort"
	"strings"

	"jobmatch-client/internal/cache"
	"jobmatch-client/internal/domain/company"
	"jobmatch-client/pkg/logger"
)

// CompanyService feeds the directory cache and answers filtered lookups
// against it without re-fetching.
type CompanyService struct {
	api   CompanyAPI
	store *cache.Store[company.Company]
	log   *logger.Logger
}

func NewCompanyService(api CompanyAPI, store *cache.Store[company.Company], log *logger.Logger) *CompanyService {
	return &CompanyService{api: api, store: store, log: log}
}

// Browse fetches the directory with the given filter and merges the
// results into the cache.
func (s *CompanyService) Browse(ctx context.Context, filter company.Filter) ([]company.Company, error) {
	companies, err := s.api.ListCompanies(ctx, filter)
	if err != nil {
		return nil, err
	}
	s.store.UpsertMany(companies)
	return companies, nil
}

// Get returns a cached company.
func (s *CompanyService) Get(companyID int64) (company.Company, bool) {
	return s.store.Get(companyID)
}

// Cached filters the already-cached directory: category matches exactly
// (case-insensitive), search matches as a substring of the name. Results
// come back name-sorted since map iteration order is useless for display.
func (s *CompanyService) Cached(filter company.Filter) []company.Company {
	category := strings.ToLower(filter.Category)
	search := strings.ToLower(filter.Search)

	var out []company.Company
	for _, c := range s.store.All() {
		if category != "" && strings.ToLower(c.Category) != category {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(c.Name), search) {
			continue
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
