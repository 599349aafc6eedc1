package countries

import (
	"context"
	"log/slog"
	"strings"
	"time"

	domaincountries "country-directory-service/internal/domain/countries"
	"country-directory-service/internal/logging"
	"country-directory-service/internal/metrics"
	"country-directory-service/internal/providers"
	"country-directory-service/internal/providers/restcountries"
	"country-directory-service/internal/transport"
)

// Operation names used in errors, logs and metrics.
const (
	OpAllCountries  = "all-countries"
	OpCountryByCode = "country-by-code"
	OpCountryByName = "country-by-name"
	OpSearch        = "search"
	OpRegions       = "regions"
)

const outcomeOK = "ok"

// Service answers country queries by fetching and normalizing upstream data.
// Every call goes to the upstream; nothing is cached.
type Service struct {
	fetcher   providers.Fetcher
	endpoints restcountries.Endpoints
	logger    *slog.Logger
	recorder  *metrics.Recorder
	now       func() time.Time
}

// NewService constructs a Service. logger and recorder may be nil.
func NewService(fetcher providers.Fetcher, endpoints restcountries.Endpoints, logger *slog.Logger, recorder *metrics.Recorder) *Service {
	return &Service{
		fetcher:   fetcher,
		endpoints: endpoints,
		logger:    logger,
		recorder:  recorder,
		now:       time.Now,
	}
}

// AllCountries returns every country, de-duplicated by name and sorted.
func (s *Service) AllCountries(ctx context.Context) (list []domaincountries.Country, err error) {
	defer s.observe(ctx, OpAllCountries, s.now(), &err)
	return s.allCountries(ctx, OpAllCountries)
}

// CountryByCode returns the country with the given alpha-2 or alpha-3 code.
func (s *Service) CountryByCode(ctx context.Context, code string) (country domaincountries.Country, err error) {
	defer s.observe(ctx, OpCountryByCode, s.now(), &err, slog.String("code", code))
	code = strings.TrimSpace(code)
	if code == "" {
		return domaincountries.Country{}, &QueryError{Op: OpCountryByCode, Reason: ReasonInvalidArgument}
	}
	return s.one(ctx, OpCountryByCode, s.endpoints.ByCode(code))
}

// CountryByName returns the first country matching name.
func (s *Service) CountryByName(ctx context.Context, name string) (country domaincountries.Country, err error) {
	defer s.observe(ctx, OpCountryByName, s.now(), &err, slog.String("name", name))
	name = strings.TrimSpace(name)
	if name == "" {
		return domaincountries.Country{}, &QueryError{Op: OpCountryByName, Reason: ReasonInvalidArgument}
	}
	return s.one(ctx, OpCountryByName, s.endpoints.ByName(name))
}

// Search returns the countries matching c.
func (s *Service) Search(ctx context.Context, c Criteria) (list []domaincountries.Country, err error) {
	defer s.observe(ctx, OpSearch, s.now(), &err)
	if _, ok := ParseSort(c.Sort); !ok {
		return nil, &QueryError{Op: OpSearch, Reason: ReasonInvalidArgument}
	}
	all, err := s.allCountries(ctx, OpSearch)
	if err != nil {
		return nil, err
	}
	return Filter(all, c), nil
}

// Regions returns the distinct regions present in the country list.
func (s *Service) Regions(ctx context.Context) (regions []string, err error) {
	defer s.observe(ctx, OpRegions, s.now(), &err)
	all, err := s.allCountries(ctx, OpRegions)
	if err != nil {
		return nil, err
	}
	return DistinctRegions(all), nil
}

func (s *Service) allCountries(ctx context.Context, op string) ([]domaincountries.Country, error) {
	body, err := s.fetch(ctx, s.endpoints.All())
	if err != nil {
		return nil, wrap(op, err)
	}
	raws, err := restcountries.DecodeList(body)
	if err != nil {
		return nil, wrap(op, err)
	}
	list, err := restcountries.Assemble(raws)
	if err != nil {
		return nil, wrap(op, err)
	}
	return list, nil
}

func (s *Service) one(ctx context.Context, op, url string) (domaincountries.Country, error) {
	body, err := s.fetch(ctx, url)
	if err != nil {
		return domaincountries.Country{}, wrap(op, err)
	}
	raw, err := restcountries.DecodeOne(body)
	if err != nil {
		return domaincountries.Country{}, wrap(op, err)
	}
	country, err := restcountries.Normalize(raw)
	if err != nil {
		return domaincountries.Country{}, wrap(op, err)
	}
	return country, nil
}

func (s *Service) fetch(ctx context.Context, url string) ([]byte, error) {
	if s.fetcher == nil {
		return nil, providers.ErrFetcherUnavailable
	}
	return s.fetcher.FetchJSON(ctx, url)
}

func wrap(op string, err error) error {
	return &QueryError{Op: op, Reason: classify(err), Cause: err}
}

// observe records the outcome of op. Not-found and invalid-argument log at
// DEBUG, other failures at ERROR.
func (s *Service) observe(ctx context.Context, op string, start time.Time, errp *error, attrs ...any) {
	outcome := outcomeOK
	if *errp != nil {
		outcome = ReasonUpstream
		if qErr, ok := AsQueryError(*errp); ok {
			outcome = qErr.Reason
		}
	}
	s.recorder.RecordQuery(op, outcome, s.now().Sub(start))

	if *errp == nil {
		return
	}
	logger := logging.FromContext(ctx, s.logger)
	args := append([]any{"operation", op, "reason", outcome}, attrs...)
	switch outcome {
	case ReasonNotFound, ReasonInvalidArgument:
		logging.Debug(logger, "country query rejected", append(args, logging.FieldError, *errp)...)
	default:
		if tErr, ok := transport.AsTransportError(*errp); ok {
			args = append(args, slog.Int("attempts", tErr.Attempts))
		}
		logging.Error(logger, "country query failed", *errp, args...)
	}
}
