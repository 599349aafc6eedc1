package restcountries

const (
	// UpstreamName labels logs and metrics for this provider.
	UpstreamName = "restcountries"

	defaultRestCountriesBaseURL = "https://restcountries.com/v3.1"
	defaultWrappedBaseURL       = "https://countries-api-abhishek.vercel.app"
)
