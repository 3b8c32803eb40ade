package net

import (
	perr "nutriscope/internal/platform/errors"
)

// Error builds the status and error body for err, stamped with the request id
func Error(err error, reqID string) (int, perr.Wire) {
	status, w := perr.HTTP(err)
	if err != nil {
		w.RequestID = reqID
	}
	return status, w
}
