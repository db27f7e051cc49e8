// Package flickr talks to the Flickr REST API and builds the in-memory
// catalog index used to match local files by title and capture time.
package flickr

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/marty-cz/human-readable-geo-position-in-photo/domain/gps"

	flickrapi "gopkg.in/masci/flickr.v3"
)

const (
	pageSize       = 500
	requestTimeout = 10 * time.Second
)

type Client struct {
	apiKey    string
	apiSecret string
	userID    string
	hc        *http.Client
}

func NewClient(apiKey, apiSecret, userID string) *Client {
	return NewClientWithHTTPClient(apiKey, apiSecret, userID, &http.Client{Timeout: requestTimeout})
}

func NewClientWithHTTPClient(apiKey, apiSecret, userID string, hc *http.Client) *Client {
	return &Client{apiKey: apiKey, apiSecret: apiSecret, userID: userID, hc: hc}
}

// api returns a fresh request-state holder sharing the HTTP client. The
// underlying client keeps request arguments as mutable state, so one
// instance must never be shared between concurrent requests.
func (c *Client) api() *flickrapi.FlickrClient {
	fc := flickrapi.NewFlickrClient(c.apiKey, c.apiSecret)
	fc.HTTPClient = c.hc
	return fc
}

type catalogPhoto struct {
	ID        string  `xml:"id,attr"`
	Title     string  `xml:"title,attr"`
	DateTaken string  `xml:"datetaken,attr"`
	Latitude  float64 `xml:"latitude,attr"`
	Longitude float64 `xml:"longitude,attr"`
}

type publicPhotosResponse struct {
	flickrapi.BasicResponse
	Photos struct {
		Page  int            `xml:"page,attr"`
		Pages int            `xml:"pages,attr"`
		Total int            `xml:"total,attr"`
		Photo []catalogPhoto `xml:"photo"`
	} `xml:"photos"`
}

// publicPhotosPage fetches one page of the user's public catalog including
// capture dates and coordinates.
func (c *Client) publicPhotosPage(page int) (*publicPhotosResponse, error) {
	fc := c.api()
	fc.Init()
	fc.Args.Set("method", "flickr.people.getPublicPhotos")
	fc.Args.Set("api_key", fc.ApiKey)
	fc.Args.Set("user_id", c.userID)
	fc.Args.Set("extras", "date_taken,geo")
	fc.Args.Set("per_page", strconv.Itoa(pageSize))
	fc.Args.Set("page", strconv.Itoa(page))

	response := &publicPhotosResponse{}
	if err := flickrapi.DoGet(fc, response); err != nil {
		return nil, err
	}
	if response.HasErrors() {
		return nil, fmt.Errorf("flickr API error on catalog page %d: %s", page, response.ErrorMsg())
	}
	return response, nil
}

type photoLocationResponse struct {
	flickrapi.BasicResponse
	Photo struct {
		ID       string `xml:"id,attr"`
		Location struct {
			Latitude  string `xml:"latitude,attr"`
			Longitude string `xml:"longitude,attr"`
			Locality  string `xml:"locality"`
			County    string `xml:"county"`
			Region    string `xml:"region"`
			Country   string `xml:"country"`
		} `xml:"location"`
	} `xml:"photo"`
}

// PhotoLocation fetches the place description attached to a single photo.
// Locality is preferred as the city name, falling back to the county.
func (c *Client) PhotoLocation(id string) (*gps.Address, error) {
	fc := c.api()
	fc.Init()
	fc.Args.Set("method", "flickr.photos.geo.getLocation")
	fc.Args.Set("api_key", fc.ApiKey)
	fc.Args.Set("photo_id", id)

	response := &photoLocationResponse{}
	if err := flickrapi.DoGet(fc, response); err != nil {
		return nil, err
	}
	if response.HasErrors() {
		return nil, fmt.Errorf("flickr API error for photo %s: %s", id, response.ErrorMsg())
	}
	loc := response.Photo.Location
	city := loc.Locality
	if city == "" {
		city = loc.County
	}
	return &gps.Address{City: city, Region: loc.Region, Country: loc.Country}, nil
}
