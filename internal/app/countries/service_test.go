package countries

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	domaincountries "country-directory-service/internal/domain/countries"
	"country-directory-service/internal/metrics"
	"country-directory-service/internal/providers"
	"country-directory-service/internal/providers/restcountries"
	"country-directory-service/internal/testutil"
	"country-directory-service/internal/transport"
)

const base = "https://api.test/v3.1"

func listBody(records ...string) string {
	return "[" + strings.Join(records, ",") + "]"
}

func newTestService(f providers.Fetcher) (*Service, *metrics.Recorder) {
	rec := metrics.NewRecorder()
	logger, _ := testutil.NewBufferLogger()
	return NewService(f, restcountries.NewEndpoints(base, restcountries.LayoutRestCountries), logger, rec), rec
}

func TestAllCountriesAssemblesList(t *testing.T) {
	f := &testutil.StubFetcher{Bodies: map[string]string{
		base + "/all": listBody(
			testutil.NestedCountryJSON("Canada", "CAN", "Americas", 38005238, 9984670),
			testutil.NestedCountryJSON("canada", "CAN", "Americas", 1, 1),
			testutil.NestedCountryJSON("Brazil", "BRA", "Americas", 212559409, 8515767),
		),
	}}
	svc, rec := newTestService(f)

	got, err := svc.AllCountries(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if len(got) != 2 || got[0].Name != "Brazil" || got[1].Name != "canada" {
		t.Fatalf("unexpected list %+v", got)
	}
	if got[1].Population != 1 {
		t.Fatalf("expected last duplicate to win, got %+v", got[1])
	}
	if rec.Queries(OpAllCountries, outcomeOK) != 1 {
		t.Fatalf("expected ok query recorded")
	}
}

func TestAllCountriesNormalizationFailure(t *testing.T) {
	f := &testutil.StubFetcher{Bodies: map[string]string{
		base + "/all": listBody(testutil.NestedCountryJSON("Chile", "CHL", "Americas", 1, 1), `{"name":42}`),
	}}
	svc, rec := newTestService(f)

	_, err := svc.AllCountries(context.Background())
	qErr, ok := AsQueryError(err)
	if !ok || qErr.Reason != ReasonNormalization || qErr.Op != OpAllCountries {
		t.Fatalf("expected normalization query error, got %v", err)
	}
	nErr, ok := restcountries.AsNormalizationError(err)
	if !ok || nErr.Field != "name" {
		t.Fatalf("expected name normalization cause, got %v", err)
	}
	if rec.Queries(OpAllCountries, ReasonNormalization) != 1 {
		t.Fatalf("expected normalization outcome recorded")
	}
}

func TestAllCountriesUpstreamFailure(t *testing.T) {
	cause := &transport.TransportError{Reason: transport.ReasonExhaustedRetries, Attempts: 3, URL: base + "/all", LastCause: errors.New("dial tcp: refused")}
	svc, _ := newTestService(testutil.ErrFetcher{Err: cause})

	_, err := svc.AllCountries(context.Background())
	qErr, ok := AsQueryError(err)
	if !ok || qErr.Reason != ReasonUpstream {
		t.Fatalf("expected upstream query error, got %v", err)
	}
	if !errors.Is(err, transport.ErrExhaustedRetries) {
		t.Fatalf("expected transport error reachable through query error")
	}
}

func TestCountryByCode(t *testing.T) {
	f := &testutil.StubFetcher{Bodies: map[string]string{
		base + "/alpha/CAN": listBody(testutil.NestedCountryJSON("Canada", "CAN", "Americas", 38005238, 9984670)),
		base + "/alpha/xx":  `[]`,
	}}
	svc, rec := newTestService(f)

	got, err := svc.CountryByCode(context.Background(), " CAN ")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got.Name != "Canada" || got.Code != "CAN" {
		t.Fatalf("unexpected country %+v", got)
	}

	_, err = svc.CountryByCode(context.Background(), "xx")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for empty result, got %v", err)
	}
	if !errors.Is(err, restcountries.ErrEmptyResult) {
		t.Fatalf("expected empty-result cause, got %v", err)
	}
	if rec.Queries(OpCountryByCode, ReasonNotFound) != 1 {
		t.Fatalf("expected not-found outcome recorded")
	}
}

func TestFixtureMissIsNotFound(t *testing.T) {
	svc, _ := newTestService(testutil.ErrFetcher{Err: &providers.FixtureMissError{Path: "/v3.1/flags"}})

	_, err := svc.CountryByCode(context.Background(), "CAN")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected fixture miss to surface as not-found, got %v", err)
	}
}

func TestUpstreamFailureLogsAttempts(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	cause := &transport.TransportError{Reason: transport.ReasonExhaustedRetries, Attempts: 3, URL: base + "/all", LastCause: errors.New("dial tcp: refused")}
	svc := NewService(testutil.ErrFetcher{Err: cause}, restcountries.NewEndpoints(base, restcountries.LayoutRestCountries), logger, nil)

	if _, err := svc.AllCountries(context.Background()); err == nil {
		t.Fatalf("expected upstream error")
	}
	if out := buf.String(); !strings.Contains(out, "attempts=3") || !strings.Contains(out, "reason=upstream") {
		t.Fatalf("expected attempt count in failure log, got %s", out)
	}
}

func TestCountryByCodeBlankIsInvalid(t *testing.T) {
	f := &testutil.StubFetcher{}
	svc, _ := newTestService(f)

	_, err := svc.CountryByCode(context.Background(), "   ")
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	if len(f.Calls()) != 0 {
		t.Fatalf("expected no upstream call for blank code")
	}
}

func TestCountryByCodeUpstream404IsNotFound(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		http.Error(w, `{"status":404,"message":"Not Found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	client := transport.NewClient(transport.Config{
		Name:        restcountries.UpstreamName,
		HTTPClient:  srv.Client(),
		MaxAttempts: 3,
		RetryDelay:  time.Millisecond,
	})
	svc := NewService(client, restcountries.NewEndpoints(srv.URL, restcountries.LayoutRestCountries), nil, nil)

	_, err := svc.CountryByCode(context.Background(), "ZZZ")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found after upstream 404, got %v", err)
	}
	if hits.Load() != 3 {
		t.Fatalf("expected every attempt to be used, got %d", hits.Load())
	}
}

func TestCountryByNameWrappedLayout(t *testing.T) {
	wrappedBase := "https://wrapped.test"
	f := &testutil.StubFetcher{Bodies: map[string]string{
		wrappedBase + "/countries/United%20States": `{"data":{"name":"United States","code":"USA","capital":"Washington, D.C.","region":"Americas","currency":"United States dollar","flag":"https://flagcdn.com/us.svg"}}`,
		wrappedBase + "/countries/Atlantis":        `{"data":null}`,
	}}
	svc := NewService(f, restcountries.NewEndpoints(wrappedBase, restcountries.LayoutWrapped), nil, nil)

	got, err := svc.CountryByName(context.Background(), "United States")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got.Currency != "United States dollar" || got.Capital != "Washington, D.C." {
		t.Fatalf("unexpected country %+v", got)
	}

	if _, err := svc.CountryByName(context.Background(), "Atlantis"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found for null data, got %v", err)
	}
	if _, err := svc.CountryByName(context.Background(), ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument for blank name, got %v", err)
	}
}

func TestSearchFiltersAndSorts(t *testing.T) {
	f := &testutil.StubFetcher{Bodies: map[string]string{
		base + "/all": listBody(
			testutil.NestedCountryJSON("Germany", "DEU", "Europe", 83240525, 357114),
			testutil.NestedCountryJSON("France", "FRA", "Europe", 67391582, 551695),
			testutil.NestedCountryJSON("Finland", "FIN", "Europe", 5530719, 338424),
			testutil.NestedCountryJSON("Fiji", "FJI", "Oceania", 896444, 18272),
		),
	}}
	svc, _ := newTestService(f)
	ctx := context.Background()

	got, err := svc.Search(ctx, Criteria{Search: "F", Region: "europe"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if names(got) != "Finland,France" {
		t.Fatalf("unexpected search result %s", names(got))
	}

	got, err = svc.Search(ctx, Criteria{Sort: SortPopulation})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if names(got) != "Germany,France,Finland,Fiji" {
		t.Fatalf("unexpected population order %s", names(got))
	}

	got, err = svc.Search(ctx, Criteria{Sort: SortArea, Region: "Europe"})
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if names(got) != "France,Germany,Finland" {
		t.Fatalf("unexpected area order %s", names(got))
	}

	if _, err := svc.Search(ctx, Criteria{Sort: "gdp"}); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid sort to be rejected, got %v", err)
	}
}

func TestRegions(t *testing.T) {
	f := &testutil.StubFetcher{Bodies: map[string]string{
		base + "/all": listBody(
			testutil.NestedCountryJSON("Japan", "JPN", "Asia", 1, 1),
			testutil.NestedCountryJSON("Kenya", "KEN", "Africa", 1, 1),
			testutil.NestedCountryJSON("China", "CHN", "Asia", 1, 1),
			testutil.NestedCountryJSON("Nowhere", "NOW", "", 1, 1),
		),
	}}
	svc, _ := newTestService(f)

	got, err := svc.Regions(context.Background())
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if strings.Join(got, ",") != "Africa,Asia" {
		t.Fatalf("unexpected regions %v", got)
	}
}

func TestServiceLogsFailures(t *testing.T) {
	logger, buf := testutil.NewBufferLogger()
	svc := NewService(testutil.ErrFetcher{Err: errors.New("boom")}, restcountries.Endpoints{}, logger, nil)

	if _, err := svc.Regions(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	out := buf.String()
	if !strings.Contains(out, "country query failed") || !strings.Contains(out, "operation=regions") {
		t.Fatalf("expected failure log, got %s", out)
	}
}

func TestServiceLogsRejectionsAtDebug(t *testing.T) {
	logger, buf := testutil.NewLevelBufferLogger(slog.LevelDebug)
	svc := NewService(&testutil.StubFetcher{}, restcountries.Endpoints{}, logger, nil)

	if _, err := svc.CountryByCode(context.Background(), " "); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "level=DEBUG") || !strings.Contains(out, "country query rejected") {
		t.Fatalf("expected debug rejection log, got %s", out)
	}
	if strings.Contains(out, "country query failed") {
		t.Fatalf("rejection should not log as a failure: %s", out)
	}
}

func TestServiceWithoutFetcher(t *testing.T) {
	svc := NewService(nil, restcountries.Endpoints{}, nil, nil)
	_, err := svc.AllCountries(context.Background())
	if !errors.Is(err, providers.ErrFetcherUnavailable) {
		t.Fatalf("expected fetcher unavailable, got %v", err)
	}
}

func TestQueryErrorMessage(t *testing.T) {
	err := &QueryError{Op: OpCountryByCode, Reason: ReasonNotFound, Cause: restcountries.ErrEmptyResult}
	if !strings.HasPrefix(err.Error(), "country-by-code: not-found: ") {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if (&QueryError{Op: OpSearch, Reason: ReasonInvalidArgument}).Error() != "search: invalid-argument" {
		t.Fatalf("unexpected message without cause")
	}
}

func names(list []domaincountries.Country) string {
	out := make([]string, 0, len(list))
	for _, c := range list {
		out = append(out, c.Name)
	}
	return strings.Join(out, ",")
}
