package fixture

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"country-directory-service/internal/providers"
	"country-directory-service/internal/providers/restcountries"
)

func newFetcher(t *testing.T) *Fetcher {
	t.Helper()
	f, err := New()
	require.NoError(t, err)
	return f
}

func TestFetchAllNormalizes(t *testing.T) {
	f := newFetcher(t)
	body, err := f.FetchJSON(context.Background(), "https://restcountries.com/v3.1/all")
	require.NoError(t, err)

	raws, err := restcountries.DecodeList(body)
	require.NoError(t, err)
	got, err := restcountries.Assemble(raws)
	require.NoError(t, err)

	names := make([]string, 0, len(got))
	for _, c := range got {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"Åland Islands", "Antarctica", "Brazil", "Canada", "Japan"}, names)
}

func TestFetchAlphaMatchesEitherCode(t *testing.T) {
	f := newFetcher(t)
	for _, code := range []string{"CA", "can", "CAN"} {
		body, err := f.FetchJSON(context.Background(), "https://restcountries.com/v3.1/alpha/"+code)
		require.NoError(t, err, code)
		var records []json.RawMessage
		require.NoError(t, json.Unmarshal(body, &records))
		assert.Len(t, records, 1, code)
	}
}

func TestFetchAlphaUnknownReturnsEmptyArray(t *testing.T) {
	f := newFetcher(t)
	body, err := f.FetchJSON(context.Background(), "https://restcountries.com/v3.1/alpha/xx")
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(body))
}

func TestFetchNameSubstring(t *testing.T) {
	f := newFetcher(t)
	body, err := f.FetchJSON(context.Background(), "https://restcountries.com/v3.1/name/braz")
	require.NoError(t, err)
	raws, err := restcountries.DecodeList(body)
	require.NoError(t, err)
	require.Len(t, raws, 1)
	c, err := restcountries.Normalize(raws[0])
	require.NoError(t, err)
	assert.Equal(t, "Brazil", c.Name)
}

func TestFetchWrappedLayout(t *testing.T) {
	f := newFetcher(t)
	body, err := f.FetchJSON(context.Background(), "https://countries-api-abhishek.vercel.app/countries")
	require.NoError(t, err)
	raws, err := restcountries.DecodeList(body)
	require.NoError(t, err)
	assert.Len(t, raws, 3)

	body, err = f.FetchJSON(context.Background(), "https://countries-api-abhishek.vercel.app/countries/kenya")
	require.NoError(t, err)
	raw, err := restcountries.DecodeOne(body)
	require.NoError(t, err)
	c, err := restcountries.Normalize(raw)
	require.NoError(t, err)
	assert.Equal(t, "Kenya", c.Name)
	assert.Equal(t, "Nairobi", c.Capital)
}

func TestFetchWrappedMissIsNullData(t *testing.T) {
	f := newFetcher(t)
	body, err := f.FetchJSON(context.Background(), "https://countries-api-abhishek.vercel.app/countries/atlantis")
	require.NoError(t, err)
	_, err = restcountries.DecodeOne(body)
	assert.ErrorIs(t, err, restcountries.ErrEmptyResult)
}

func TestFetchUnknownPath(t *testing.T) {
	f := newFetcher(t)
	_, err := f.FetchJSON(context.Background(), "https://restcountries.com/v3.1/region/europe")
	miss, ok := providers.AsFixtureMissError(err)
	require.True(t, ok, "expected fixture miss, got %v", err)
	assert.Equal(t, "/v3.1/region/europe", miss.Path)
}

func TestFetchCanceledContext(t *testing.T) {
	f := newFetcher(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := f.FetchJSON(ctx, "https://restcountries.com/v3.1/all")
	assert.ErrorIs(t, err, context.Canceled)
}
