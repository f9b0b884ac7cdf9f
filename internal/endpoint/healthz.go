package endpoint

import (
	"fmt"
	"net/http"
)

// HealthzEndpoint reports whether the synchronization cycles are succeeding.
// The first line is HEALTHY or FAILURE; the following lines are the most
// recent internal errors, oldest first.
func HealthzEndpoint(s Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=UTF-8")

		healthy, messages := s.Errors()

		status := "HEALTHY"
		if !healthy {
			status = "FAILURE"
			w.WriteHeader(http.StatusInternalServerError)
		}

		fmt.Fprintln(w, status)
		for _, msg := range messages {
			fmt.Fprintln(w, msg)
		}
	}
}
