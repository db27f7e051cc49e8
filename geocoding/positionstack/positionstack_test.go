package positionstack

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"testing"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"
	"github.com/stretchr/testify/assert"
)

var data = []struct {
	lat      float64
	long     float64
	response string
	out      gps.Address
}{
	{
		lat:      50.0875,
		long:     14.4213,
		response: `{"data":[{"latitude":50.0875,"longitude":14.4213,"type":"locality","name":"Prague","number":null,"postal_code":null,"street":null,"confidence":1,"region":"Prague","region_code":"PR","county":"Hlavní město Praha","locality":"Prague","administrative_area":null,"neighbourhood":null,"country":"Czechia","country_code":"CZE","continent":"Europe","label":"Prague, PR, Czechia"}]}`,
		out:      gps.Address{City: "Prague", Region: "Prague", Country: "Czechia"},
	},
	{
		lat:      48.2082,
		long:     16.3738,
		response: `{"data":[{"name":"Vienna","region":"Vienna","county":"Wien","country":"Austria","country_code":"AUT"}]}`,
		out:      gps.Address{City: "Vienna", Region: "Vienna", Country: "Austria"},
	},
}

type RoundTripperFunc func(*http.Request) *http.Response

func (f RoundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req), nil
}

func newTestClient(roundTripFunc RoundTripperFunc) *http.Client {
	return &http.Client{
		Transport: roundTripFunc,
	}
}

func TestReverseGeocode(t *testing.T) {
	for _, d := range data {
		testClient := newTestClient(func(r *http.Request) *http.Response {
			assert.Equal(t, "1", r.URL.Query().Get("limit"))
			assert.Equal(t, "testkey", r.URL.Query().Get("access_key"))
			return &http.Response{
				StatusCode: http.StatusOK,
				Header:     make(http.Header),
				Body:       io.NopCloser(bytes.NewBufferString(d.response)),
			}
		})
		ps := NewResolverWithClient(testClient, "testkey")
		address, found, err := ps.ReverseGeocode(context.Background(), d.lat, d.long)
		if err != nil {
			t.Fatalf("Error while reverse geocoding: %s", err)
		}
		assert.True(t, found)
		assert.Equal(t, d.out, *address)
	}
}

func TestReverseGeocodeEmptyResult(t *testing.T) {
	testClient := newTestClient(func(r *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     make(http.Header),
			Body:       io.NopCloser(bytes.NewBufferString(`{"data":[]}`)),
		}
	})
	ps := NewResolverWithClient(testClient, "testkey")
	address, found, err := ps.ReverseGeocode(context.Background(), 0.1, 0.1)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.Nil(t, address)
}

func TestReverseGeocodeHTTPError(t *testing.T) {
	testClient := newTestClient(func(r *http.Request) *http.Response {
		return &http.Response{
			StatusCode: http.StatusUnauthorized,
			Status:     "401 Unauthorized",
			Header:     make(http.Header),
			Body:       io.NopCloser(bytes.NewBufferString(`{"error":{"code":"invalid_access_key"}}`)),
		}
	})
	ps := NewResolverWithClient(testClient, "badkey")
	_, found, err := ps.ReverseGeocode(context.Background(), 0.1, 0.1)
	assert.Error(t, err)
	assert.False(t, found)
}
