package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/babybtc/quantlab/business/sys/metrics"
)

// Success and failure markers.
const (
	success = "\u2713"
	failed  = "\u2717"
)

func Test_Metrics(t *testing.T) {
	t.Log("Given the need to expose the service metrics.")
	{
		mtr := metrics.New()
		mtr.BlocksMined.Inc()
		mtr.ChainHeight.Set(7)
		mtr.Requests.WithLabelValues(http.MethodPost, "200").Inc()

		t.Log("\tWhen gathering the registry.")
		{
			families, err := mtr.Gatherer().Gather()
			if err != nil {
				t.Fatalf("\t%s\tShould be able to gather: %v", failed, err)
			}

			found := make(map[string]bool)
			for _, mf := range families {
				found[mf.GetName()] = true
			}

			for _, name := range []string{"babybtc_chain_blocks_mined_total", "babybtc_chain_height", "babybtc_api_requests_total", "go_goroutines"} {
				if !found[name] {
					t.Fatalf("\t%s\tShould register %s.", failed, name)
				}
			}
			t.Logf("\t%s\tShould register the application and runtime collectors.", success)
		}

		t.Log("\tWhen scraping the handler.")
		{
			w := httptest.NewRecorder()
			mtr.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

			if w.Code != http.StatusOK {
				t.Fatalf("\t%s\tShould receive a 200, got %d.", failed, w.Code)
			}

			if !strings.Contains(w.Body.String(), "babybtc_chain_height 7") {
				t.Fatalf("\t%s\tShould report the chain height.", failed)
			}
			t.Logf("\t%s\tShould report the chain height.", success)
		}

		t.Log("\tWhen constructing a second set.")
		{
			if other := metrics.New(); other == mtr {
				t.Fatalf("\t%s\tShould construct an independent registry.", failed)
			}
			t.Logf("\t%s\tShould construct an independent registry.", success)
		}
	}
}
