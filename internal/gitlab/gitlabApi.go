package gitlab

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// PageSize is the number of items requested per page from list endpoints.
const PageSize = 100

type Group struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	FullPath string `json:"full_path"`
}

type Project struct {
	ID                int    `json:"id"`
	Name              string `json:"name"`
	SSHURLToRepo      string `json:"ssh_url_to_repo"`
	PathWithNamespace string `json:"path_with_namespace"`
	Archived          bool   `json:"archived"`
}

/* APIClient manages access to the Gitlab API.
It adheres to the Repository pattern as well - it is at the boundary to external data (Gitlab API).
All methods are synchronous and return complete, aggregated listings.
*/

type APIClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewAPIClient creates a client for the REST API rooted at baseURL, e.g. https://gitlab.example.com/api/v4.
// Requests have no timeout.
func NewAPIClient(token, baseURL string) *APIClient {
	return &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

func (api *APIClient) WithHTTPClient(client *http.Client) *APIClient {
	api.httpClient = client
	return api
}

type listOptions struct {
	PerPage          int  `url:"per_page"`
	Page             int  `url:"page"`
	IncludeSubgroups bool `url:"include_subgroups,omitempty"`
}

// ListGroups returns every group visible to the token.
func (api *APIClient) ListGroups(ctx context.Context) ([]Group, error) {
	return fetchAllPages[Group](ctx, api, api.baseURL+"/groups", listOptions{})
}

// ListGroupProjects returns every project of the group, including projects in its subgroups.
func (api *APIClient) ListGroupProjects(ctx context.Context, groupID int) ([]Project, error) {
	url := fmt.Sprintf("%s/groups/%d/projects", api.baseURL, groupID)
	return fetchAllPages[Project](ctx, api, url, listOptions{IncludeSubgroups: true})
}
