package handlers

import (
	"fmt"
	"net/http"
	"strconv"
)

// userIDFromRequest reads the authenticated user id set by the upstream
// gateway. Authentication itself happens before requests reach this
// service.
func userIDFromRequest(r *http.Request) (int64, error) {
	header := r.Header.Get("X-User-ID")
	if header == "" {
		return 0, fmt.Errorf("missing X-User-ID header")
	}

	userID, err := strconv.ParseInt(header, 10, 64)
	if err != nil || userID <= 0 {
		return 0, fmt.Errorf("invalid X-User-ID header")
	}

	return userID, nil
}
