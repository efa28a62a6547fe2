package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "activitycal/internal/platform/errors"
	"activitycal/internal/platform/logger"
	pnet "activitycal/internal/platform/net"
	phttp "activitycal/internal/platform/net/http"
)

// RecoverJSON turns a panic into a 500 envelope and logs the stack
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
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")

			reqID := pnet.RequestID(r.Context())
			if reqID != "" {
				w.Header().Set("X-Request-ID", reqID)
			}
			wire := perr.Wire{Code: perr.ErrorCodePanic, Message: "internal error"}
			phttp.JSON(w, stdhttp.StatusInternalServerError, phttp.Envelope{RequestID: reqID, Error: &wire})
		}()
		next.ServeHTTP(w, r)
	})
}
