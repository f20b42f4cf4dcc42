package yahoo

import (
    "net/http"
)

const defaultBaseURL = "https://query1.finance.yahoo.com"

// HTTPClient describes an HTTP client.
//
//go:generate mockgen -package=yahoo_test -destination=mock_http_client_test.go -source=client.go HTTPClient
type HTTPClient interface {
    Do(req *http.Request) (*http.Response, error)
}

// Client is a client for the Yahoo Finance chart API.
type Client struct {
    // baseURL is the base URL for the API.
    baseURL string
    // httpClient is the HTTP httpClient.
    httpClient HTTPClient
    // header contains additional headers to be sent with each request.
    header http.Header
}

// ClientOption is a configuration option for the chart API client.
type ClientOption func(*Client)

// WithBaseURL sets the base URL for the API.
func WithBaseURL(baseURL string) ClientOption {
    return func(c *Client) {
        c.baseURL = baseURL
    }
}

// WithHTTPClient sets the HTTP client for the API.
func WithHTTPClient(httpClient HTTPClient) ClientOption {
    return func(c *Client) {
        c.httpClient = httpClient
    }
}

// WithHeader sets additional headers to be sent with each request.
func WithHeader(header http.Header) ClientOption {
    return func(c *Client) {
        for key, values := range header {
            for _, value := range values {
                c.header.Add(key, value)
            }
        }
    }
}

// NewClient creates a new Yahoo Finance chart API client.
func NewClient(options ...ClientOption) *Client {
    var client = &Client{
        baseURL:    defaultBaseURL,
        httpClient: http.DefaultClient,
        header:     http.Header{},
    }
    for _, option := range options {
        option(client)
    }
    return client
}
