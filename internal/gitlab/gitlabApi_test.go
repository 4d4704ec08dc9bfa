package gitlab

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "glpat-test"

// fakeGitLab serves fixed pages per path and records the requests it receives.
type fakeGitLab struct {
	t        *testing.T
	mu       sync.Mutex
	pages    map[string][]any
	requests []*http.Request
	status   int
}

func newFakeGitLab(t *testing.T) *fakeGitLab {
	return &fakeGitLab{t: t, pages: map[string][]any{}}
}

func (f *fakeGitLab) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r)
	f.mu.Unlock()

	if f.status != 0 {
		w.WriteHeader(f.status)
		return
	}
	if r.Header.Get("PRIVATE-TOKEN") != testToken {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	perPage, _ := strconv.Atoi(r.URL.Query().Get("per_page"))
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if perPage != PageSize || page < 1 {
		f.t.Errorf("unexpected pagination parameters: %s", r.URL.RawQuery)
	}

	items := f.pages[r.URL.Path]
	start := (page - 1) * perPage
	end := min(start+perPage, len(items))
	result := []any{}
	if start < len(items) {
		result = items[start:end]
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(result)
}

func (f *fakeGitLab) start() (*httptest.Server, *APIClient) {
	server := httptest.NewServer(f)
	f.t.Cleanup(server.Close)
	return server, NewAPIClient(testToken, server.URL+"/api/v4/").WithHTTPClient(server.Client())
}

func TestListGroups_PaginationCompleteness(t *testing.T) {
	fake := newFakeGitLab(t)
	for i := 1; i <= 3*PageSize; i++ {
		fake.pages["/api/v4/groups"] = append(fake.pages["/api/v4/groups"], Group{ID: i, Name: fmt.Sprintf("group-%d", i)})
	}
	_, api := fake.start()

	groups, err := api.ListGroups(context.Background())
	require.NoError(t, err)

	require.Len(t, groups, 3*PageSize)
	seen := map[int]bool{}
	for i, group := range groups {
		assert.Equal(t, i+1, group.ID, "groups must keep API order")
		assert.False(t, seen[group.ID], "duplicate group %d", group.ID)
		seen[group.ID] = true
	}
	// Three full pages plus the terminating empty page.
	assert.Len(t, fake.requests, 4)
	for _, r := range fake.requests {
		assert.Empty(t, r.URL.Query().Get("include_subgroups"))
	}
}

func TestListGroups_PartialLastPage(t *testing.T) {
	fake := newFakeGitLab(t)
	for i := 1; i <= PageSize+7; i++ {
		fake.pages["/api/v4/groups"] = append(fake.pages["/api/v4/groups"], Group{ID: i, Name: fmt.Sprintf("group-%d", i)})
	}
	_, api := fake.start()

	groups, err := api.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Len(t, groups, PageSize+7)
	assert.Len(t, fake.requests, 3)
}

func TestListGroups_Empty(t *testing.T) {
	fake := newFakeGitLab(t)
	_, api := fake.start()

	groups, err := api.ListGroups(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups)
	assert.Len(t, fake.requests, 1)
}

func TestListGroupProjects_IncludesSubgroups(t *testing.T) {
	fake := newFakeGitLab(t)
	fake.pages["/api/v4/groups/42/projects"] = []any{
		Project{ID: 1, Name: "api", PathWithNamespace: "Backend/api", SSHURLToRepo: "git@gitlab.example.com:Backend/api.git"},
		Project{ID: 2, Name: "worker", PathWithNamespace: "Backend/Jobs/worker", SSHURLToRepo: "git@gitlab.example.com:Backend/Jobs/worker.git"},
	}
	_, api := fake.start()

	projects, err := api.ListGroupProjects(context.Background(), 42)
	require.NoError(t, err)

	require.Len(t, projects, 2)
	assert.Equal(t, "Backend/Jobs/worker", projects[1].PathWithNamespace)
	assert.Equal(t, "git@gitlab.example.com:Backend/Jobs/worker.git", projects[1].SSHURLToRepo)
	for _, r := range fake.requests {
		assert.Equal(t, "true", r.URL.Query().Get("include_subgroups"))
	}
}

func TestListGroups_RemoteError(t *testing.T) {
	fake := newFakeGitLab(t)
	fake.status = http.StatusForbidden
	_, api := fake.start()

	groups, err := api.ListGroups(context.Background())
	require.Error(t, err)
	assert.Nil(t, groups)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusForbidden, remoteErr.StatusCode)
	assert.Contains(t, remoteErr.URL, "/api/v4/groups")
	// No retry: the failing page is requested exactly once.
	assert.Len(t, fake.requests, 1)
}

func TestListGroupProjects_BadToken(t *testing.T) {
	fake := newFakeGitLab(t)
	server := httptest.NewServer(fake)
	defer server.Close()
	api := NewAPIClient("wrong", server.URL+"/api/v4")

	_, err := api.ListGroupProjects(context.Background(), 1)

	var remoteErr *RemoteError
	require.True(t, errors.As(err, &remoteErr))
	assert.Equal(t, http.StatusUnauthorized, remoteErr.StatusCode)
}

func TestListGroups_InvalidJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}))
	defer server.Close()

	_, err := NewAPIClient(testToken, server.URL).ListGroups(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to decode response")
}

func TestConvertProjectToRepo(t *testing.T) {
	repo := ConvertProjectToRepo(Project{ID: 7, Name: "Repo", PathWithNamespace: "Team/Sub/Repo", SSHURLToRepo: "git@host:Team/Sub/Repo.git"})

	assert.Equal(t, "Repo", repo.Name)
	assert.Equal(t, "Team/Sub/Repo", repo.PathWithNamespace)
	assert.Equal(t, "git@host:Team/Sub/Repo.git", repo.SSHURLToRepo)
}
