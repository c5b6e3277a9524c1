package handler

import (
	"fixmycondo/config"
	"fixmycondo/di"
	"fixmycondo/shared/logger"
	transport "fixmycondo/transport/http"
	"net/http"
	"sync"
)

var (
	service     *transport.HTTP
	serviceOnce sync.Once
)

// Handler is the serverless entrypoint. The service graph is built on the first
// invocation and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	serviceOnce.Do(func() {
		logger.Init(config.Get())

		service = di.InitializeService()
	})

	r.RequestURI = r.URL.String()

	service.ServeHTTP(w, r)
}
