package monitoring

import (
	"net/http"

	"github.com/brocaar/chirpstack-device-region/internal/band"
)

func healthCheckHandlerFunc(w http.ResponseWriter, r *http.Request) {
	p := band.Plan()
	if p == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte("region plan is not configured"))
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte(p.Name()))
}
