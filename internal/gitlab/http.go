package gitlab

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-querystring/query"

	logger "gbm/internal/log"
)

// RemoteError reports an API response with a non-2xx status.
type RemoteError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("GitLab API request on %s failed with status: %s", e.URL, e.Status)
}

// fetchAllPages requests consecutive pages starting at 1 until a page comes back empty. Relying on
// the empty page rather than pagination headers costs one extra request per listing.
func fetchAllPages[T any](ctx context.Context, api *APIClient, url string, opts listOptions) ([]T, error) {
	var all []T
	opts.PerPage = PageSize
	for page := 1; ; page++ {
		opts.Page = page
		values, err := query.Values(opts)
		if err != nil {
			return nil, fmt.Errorf("failed to encode query for %s: %w", url, err)
		}
		items, err := gitlabGet[[]T](ctx, api, url+"?"+values.Encode())
		if err != nil {
			return nil, err
		}
		if len(items) == 0 {
			break
		}
		logger.Log.Debugf("Fetched page %d of %s (%d items)", page, url, len(items))
		all = append(all, items...)
	}
	return all, nil
}

func gitlabGet[T any](ctx context.Context, api *APIClient, url string) (T, error) {
	var emptyResult T
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return emptyResult, fmt.Errorf("failed to create request for %s: %w", url, err)
	}
	req.Header.Set("PRIVATE-TOKEN", api.token)

	resp, err := api.httpClient.Do(req)
	if err != nil {
		return emptyResult, fmt.Errorf("GitLab API request on %s failed: %w", url, err)
	}
	defer func(body io.ReadCloser) {
		err := body.Close()
		if err != nil {
			logger.Log.Errorf("Failed to close response body: %v", err)
		}
	}(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return emptyResult, &RemoteError{URL: url, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	var decodedResult T
	if err := json.NewDecoder(resp.Body).Decode(&decodedResult); err != nil {
		return emptyResult, fmt.Errorf("failed to decode response from %s: %w", url, err)
	}

	return decodedResult, nil
}
