package backends

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Alcove/internal/backends/blueprint"
	"Alcove/internal/core/accounts"
	"Alcove/internal/schemas"
)

func nodeinfoServer(t *testing.T, name, version string, hits *atomic.Int64) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	var server *httptest.Server
	mux.HandleFunc("/.well-known/nodeinfo", func(w http.ResponseWriter, r *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		fmt.Fprintf(w, `{"links":[{"rel":"http://nodeinfo.diaspora.software/ns/schema/2.1","href":"%s/nodeinfo/2.1"}]}`, server.URL)
	})
	mux.HandleFunc("/nodeinfo/2.1", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"version":"2.1","software":{"name":%q,"version":%q}}`, name, version)
	})
	server = httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestProbeFollowsNodeinfoDiscovery(t *testing.T) {
	server := nodeinfoServer(t, "Lemmy", "0.19.8", nil)

	probe, err := Probe(context.Background(), server.URL, "test-agent", server.Client())
	require.NoError(t, err)

	assert.Equal(t, schemas.SoftwareLemmy, probe.Software)
	assert.Equal(t, "0.19.8", probe.Version)
}

func TestProbeUnreachableIsNetworkError(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close()

	_, err := Probe(context.Background(), server.URL, "test-agent", nil)
	assert.True(t, blueprint.IsNetworkError(err))
}

func TestProbeMissingNodeinfoLink(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/.well-known/nodeinfo", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"links":[]}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	_, err := Probe(context.Background(), server.URL, "test-agent", server.Client())
	assert.True(t, blueprint.IsNotFound(err))
}

func TestProviderCachesProbes(t *testing.T) {
	var hits atomic.Int64
	server := nodeinfoServer(t, "piefed", "1.0.2", &hits)

	repo := seededRepo(t, server.URL)
	provider := NewProvider(repo, "test-agent", server.Client())

	for i := 0; i < 3; i++ {
		backend, err := provider.For(context.Background(), server.URL, "")
		require.NoError(t, err)
		assert.Equal(t, FamilyPieFed, backend.Family())
	}
	assert.Equal(t, int64(1), hits.Load(), "probe result is cached per instance")
}

func TestProviderForSelectedUsesAccountToken(t *testing.T) {
	server := nodeinfoServer(t, "lemmy", "1.0.0", nil)

	repo := seededRepo(t, server.URL)
	provider := NewProvider(repo, "test-agent", server.Client())

	backend, err := provider.ForSelected(context.Background())
	require.NoError(t, err)
	assert.Equal(t, FamilyLemmyV4, backend.Family())
	assert.Equal(t, server.URL, backend.Instance())
}

// seededRepo builds an account service whose guest account points at the
// test server.
func seededRepo(t *testing.T, instance string) *accounts.Service {
	t.Helper()
	service, err := accounts.NewService(context.Background(), &staticRepo{}, instance)
	require.NoError(t, err)
	return service
}

type staticRepo struct {
	list     []accounts.Account
	selected int
}

func (r *staticRepo) Load(context.Context) ([]accounts.Account, int, error) {
	return r.list, r.selected, nil
}

func (r *staticRepo) Save(_ context.Context, list []accounts.Account, selected int) error {
	r.list = list
	r.selected = selected
	return nil
}
