package middleware

import (
	"fmt"
	stdhttp "net/http"
	"runtime/debug"

	perr "nutriscope/internal/platform/errors"
	"nutriscope/internal/platform/logger"
	pnet "nutriscope/internal/platform/net"
	phttp "nutriscope/internal/platform/net/http"
)

// RecoverJSON converts panics into a JSON 500 error body and logs the stack with the request id.
// http.ErrAbortHandler is re-panicked so net/http can abort the connection
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Str("panic", fmt.Sprint(v)).
				Str("path", r.URL.Path).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			status, body := pnet.Error(perr.PanicErrf("internal error"), pnet.RequestID(r.Context()))
			phttp.JSON(w, status, body)
		}()
		next.ServeHTTP(w, r)
	})
}
