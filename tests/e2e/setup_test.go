//go:build integration

package e2e

import (
	"context"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/storefront-service/internal/config"
	"github.com/light-bringer/storefront-service/internal/services"
	httptransport "github.com/light-bringer/storefront-service/internal/transport/http"
	"github.com/light-bringer/storefront-service/tests/testutil"
)

// Storefront is a fully wired service instance under test: real Spanner
// (emulator), stub catalog and payment collaborators.
type Storefront struct {
	Server *httptest.Server
	Client *http.Client
}

// SetupStorefront boots the service against the test database and the given
// collaborator URLs. The returned client carries a cookie jar, so it behaves
// like one browser session across requests.
func SetupStorefront(t *testing.T, catalogURL, paymentsURL string) *Storefront {
	t.Helper()

	// The service opens its own Spanner client; this one only cleans tables
	// before and after the test.
	_, cleanupDB := testutil.SetupSpannerTest(t)
	t.Cleanup(cleanupDB)

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	cfg := &config.Config{
		SpannerDB:       testutil.GetTestSpannerDB(),
		CatalogBaseURL:  catalogURL,
		PaymentsBaseURL: paymentsURL,
		SuccessURL:      "http://storefront.test/checkout/success",
		CancelURL:       "http://storefront.test/cart",
	}

	opts, err := services.NewServiceOptions(context.Background(), cfg, log)
	require.NoError(t, err)
	t.Cleanup(opts.Close)

	server := httptest.NewServer(httptransport.NewRouter(opts.Handlers, log))
	t.Cleanup(server.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &Storefront{
		Server: server,
		Client: &http.Client{Jar: jar},
	}
}

// SetupStorefrontClient returns a client with a fresh cookie jar: a second
// browser with its own session against the same server.
func SetupStorefrontClient(t *testing.T) *http.Client {
	t.Helper()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}
