package cities

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync/atomic"
	"testing"
)

// fakeDataset serves n synthetic cities through the records endpoint shape.
type fakeDataset struct {
	cities []City
	hits   atomic.Int32
	status int
}

func newFakeDataset(n int) *fakeDataset {
	ds := &fakeDataset{}
	for i := range n {
		ds.cities = append(ds.cities, City{
			GeonameID:   GeonameID(1000 + i),
			Name:        fmt.Sprintf("City %03d", i),
			CountryName: "Testland",
			Timezone:    "Etc/UTC",
			Population:  int64(1000 * (i + 1)),
		})
	}
	return ds
}

func (ds *fakeDataset) serve(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ds.hits.Add(1)
		if ds.status != 0 {
			w.WriteHeader(ds.status)
			_, _ = w.Write([]byte(`{"error_code":"InvalidRESTParameterError","message":"Invalid value for limit"}`))
			return
		}
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

		end := min(offset+limit, len(ds.cities))
		results := []map[string]interface{}{}
		for i := offset; i < end; i++ {
			c := ds.cities[i]
			results = append(results, map[string]interface{}{
				"geoname_id":  c.GeonameID.String(),
				"name":        c.Name,
				"cou_name_en": c.CountryName,
				"timezone":    c.Timezone,
				"population":  c.Population,
			})
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"total_count": len(ds.cities),
			"results":     results,
		})
	}))
	t.Cleanup(srv.Close)
	return srv
}
