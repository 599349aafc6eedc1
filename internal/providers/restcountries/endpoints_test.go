package restcountries

import "testing"

func TestEndpointsRestCountriesLayout(t *testing.T) {
	e := NewEndpoints("https://restcountries.com/v3.1/", LayoutRestCountries)

	cases := map[string]string{
		e.All():                   "https://restcountries.com/v3.1/all",
		e.ByCode("CA"):            "https://restcountries.com/v3.1/alpha/CA",
		e.ByName("united states"): "https://restcountries.com/v3.1/name/united%20states",
	}
	for got, want := range cases {
		if got != want {
			t.Fatalf("expected %s, got %s", want, got)
		}
	}
}

func TestEndpointsWrappedLayout(t *testing.T) {
	e := NewEndpoints("http://example.com", LayoutWrapped)
	if got := e.All(); got != "http://example.com/countries" {
		t.Fatalf("unexpected list url %s", got)
	}
	if got := e.ByName("Canada"); got != "http://example.com/countries/Canada" {
		t.Fatalf("unexpected by-name url %s", got)
	}
	if got := e.ByCode("CAN"); got != "http://example.com/countries/CAN" {
		t.Fatalf("unexpected by-code url %s", got)
	}
}

func TestEndpointsDefaultsAndFields(t *testing.T) {
	var zero Endpoints
	if got := zero.All(); got != defaultRestCountriesBaseURL+"/all" {
		t.Fatalf("expected default base url, got %s", got)
	}
	wrapped := Endpoints{Layout: LayoutWrapped}
	if got := wrapped.All(); got != defaultWrappedBaseURL+"/countries" {
		t.Fatalf("expected wrapped default base url, got %s", got)
	}

	e := NewEndpoints("", "", "name", "flags")
	if got := e.All(); got != defaultRestCountriesBaseURL+"/all?fields=name%2Cflags" {
		t.Fatalf("unexpected fields query %s", got)
	}
}

func TestParseLayout(t *testing.T) {
	if ParseLayout(" Wrapped ") != LayoutWrapped {
		t.Fatalf("expected wrapped layout")
	}
	if ParseLayout("") != LayoutRestCountries || ParseLayout("other") != LayoutRestCountries {
		t.Fatalf("expected default layout")
	}
}
