// Package positionstack reverse-geocodes coordinates through the
// PositionStack HTTP API.
package positionstack

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"
	"github.com/marty-cz/human-readable-geo-position-in-photo/geocoding"
	"github.com/marty-cz/human-readable-geo-position-in-photo/logging"

	"go.uber.org/zap"
)

const (
	baseURL   = "http://api.positionstack.com/v1"
	userAgent = "phototag/0.1"
)

type resolver struct {
	accessKey string
	client    *http.Client
}

type place struct {
	Name    string `json:"name"`
	Region  string `json:"region"`
	Country string `json:"country"`
}

type reverseResponse struct {
	Data []place `json:"data"`
}

func NewResolver(accessKey string) geocoding.Resolver {
	return &resolver{
		accessKey: accessKey,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func NewResolverWithClient(client *http.Client, accessKey string) geocoding.Resolver {
	return &resolver{accessKey: accessKey, client: client}
}

func (ps *resolver) ReverseGeocode(ctx context.Context, lat, long float64) (*gps.Address, bool, error) {
	logger, ctx := logging.SubFrom(ctx, "positionstack")
	url := fmt.Sprintf("%s/reverse?access_key=%s&query=%f,%f&limit=1&output=json", baseURL, ps.accessKey, lat, long)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, err
	}
	req.Header.Set("User-Agent", userAgent)
	res, err := ps.client.Do(req)
	if err != nil {
		return nil, false, err
	}
	defer res.Body.Close()
	data, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, false, err
	}
	if res.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("positionstack: HTTP %d: %s", res.StatusCode, res.Status)
	}
	logger.Debug("reverseGeocode response", zap.String("response", string(data)))
	var response reverseResponse
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, false, err
	}
	if len(response.Data) == 0 {
		return nil, false, nil
	}
	first := response.Data[0]
	return &gps.Address{
		City:    first.Name,
		Region:  first.Region,
		Country: first.Country,
	}, true, nil
}
