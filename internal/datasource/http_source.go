package datasource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

const httpSourceName = "http"

// apiKeyHeader carries the export API key when one is configured
const apiKeyHeader = "X-API-Key"

// HTTPSource fetches division exports from a remote base URL
type HTTPSource struct {
	client  *RateLimitedHTTPClient
	baseURL string
	apiKey  string
}

// NewHTTPSource creates a data source that downloads exports below baseURL
func NewHTTPSource(client *RateLimitedHTTPClient, baseURL, apiKey string) *HTTPSource {
	return &HTTPSource{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
	}
}

// Open downloads the named export. The caller closes the returned body.
func (s *HTTPSource) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	target := s.baseURL + "/" + url.PathEscape(name)

	var headers map[string]string
	if s.apiKey != "" {
		headers = map[string]string{apiKeyHeader: s.apiKey}
	}

	resp, err := s.client.Get(ctx, target, headers)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, NewDataSourceError(httpSourceName, ErrCodeNetworkError, "failed to download export", err)
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		return resp.Body, nil
	case resp.StatusCode == http.StatusNotFound:
		resp.Body.Close()
		return nil, NewDataSourceError(httpSourceName, ErrCodeNotFound, "export not found: "+name, nil)
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		resp.Body.Close()
		return nil, NewDataSourceError(httpSourceName, ErrCodeAuthenticationFailed, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	case resp.StatusCode == http.StatusTooManyRequests:
		resp.Body.Close()
		return nil, NewDataSourceError(httpSourceName, ErrCodeRateLimitExceeded, "rate limited by export host", nil)
	default:
		resp.Body.Close()
		return nil, NewDataSourceError(httpSourceName, ErrCodeServerError, fmt.Sprintf("unexpected status: %d", resp.StatusCode), nil)
	}
}

// Name returns the data source name
func (s *HTTPSource) Name() string {
	return httpSourceName
}
