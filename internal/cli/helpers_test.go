package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rshade/citytable/internal/cities"
	"github.com/rshade/citytable/internal/config"
)

// testDataset serves cities through the records endpoint.
type testDataset struct {
	cities []cities.City
	hits   atomic.Int32
	status int
}

func newTestDataset(n int) *testDataset {
	named := []cities.City{
		{GeonameID: 2643743, Name: "London", CountryName: "United Kingdom", Timezone: "Europe/London", Population: 8961989},
		{GeonameID: 2643736, Name: "Londonderry", CountryName: "United Kingdom", Timezone: "Europe/London", Population: 83652},
		{GeonameID: 2988507, Name: "Paris", CountryName: "France", Timezone: "Europe/Paris", Population: 2138551},
	}
	ds := &testDataset{}
	for i := range n {
		if i < len(named) {
			ds.cities = append(ds.cities, named[i])
			continue
		}
		ds.cities = append(ds.cities, cities.City{
			GeonameID:   cities.GeonameID(10000 + i),
			Name:        fmt.Sprintf("Town %03d", i),
			CountryName: "Nowhere",
			Timezone:    "Etc/UTC",
			Population:  int64(i * 100),
		})
	}
	return ds
}

func (ds *testDataset) serve(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.hits.Add(1)
		if ds.status != 0 {
			w.WriteHeader(ds.status)
			_, _ = w.Write([]byte(`{"error_code":"InvalidRESTParameterError","message":"Invalid value for offset"}`))
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		end := min(offset+limit, len(ds.cities))
		results := []cities.City{}
		if offset < end {
			results = ds.cities[offset:end]
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(cities.Page{TotalCount: len(ds.cities), Results: results})
	}))
	t.Cleanup(srv.Close)
	return srv
}

// setupTestConfig installs a global config pointing at baseURL with all
// files under a temporary home.
func setupTestConfig(t *testing.T, baseURL string) *config.Config {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)

	cfg := config.Default()
	cfg.API.BaseURL = baseURL
	cfg.Cache.Enabled = false
	cfg.Cache.Directory = filepath.Join(home, "cache")
	cfg.Logging.File = filepath.Join(home, "logs", "test.log")
	config.SetGlobalConfig(cfg)
	return cfg
}

// executeCmd runs the root command with args and returns stdout.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCmd("1.2.3")
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeCmd(t, args...)
	require.NoError(t, err)
	return out
}
