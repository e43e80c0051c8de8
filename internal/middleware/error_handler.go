package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/DarkZone24/inventory-monitoring-system/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// ErrorHandler renders the last error a handler attached with c.Error.
// Classified errors (apierror kinds) go out with their status and message.
// Anything else is a 500 whose body only carries the request id, so the
// caller can quote it and the driver message stays in the logs.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		last := c.Errors.Last()
		if last == nil {
			return
		}
		err := last.Err
		reqID := c.GetString(RequestIDKey)

		if !apierror.IsClassified(err) {
			log.Error().
				Str("request_id", reqID).
				Str("route", c.FullPath()).
				Str("method", c.Request.Method).
				Err(err).
				Msg("unhandled error")
			if !c.Writer.Written() {
				c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Internal(reqID))
			}
			return
		}

		status := apierror.Status(err)
		log.Debug().
			Str("request_id", reqID).
			Int("status", status).
			Err(err).
			Msg("request rejected")
		if !c.Writer.Written() {
			c.AbortWithStatusJSON(status, apierror.New(err.Error()))
		}
	}
}

// Recovery turns a panic into the same 500 body ErrorHandler uses and logs
// the goroutine stack. http.ErrAbortHandler is re-panicked so net/http can
// drop the connection as it intends.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if err, ok := r.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(r)
			}
			reqID := c.GetString(RequestIDKey)
			log.Error().
				Str("request_id", reqID).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Interface("panic", r).
				Bytes("stack", debug.Stack()).
				Msg("panic recovered")
			if c.Writer.Written() {
				c.Abort()
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, apierror.Internal(reqID))
		}()
		c.Next()
	}
}

// Logger writes one access log line per request. The level follows the
// status: 5xx at error, 4xx at warn, the rest at info.
func Logger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		status := c.Writer.Status()
		evt := log.WithLevel(accessLevel(status))
		evt.
			Str("request_id", c.GetString(RequestIDKey)).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Str("route", c.FullPath()).
			Str("client_ip", c.ClientIP()).
			Int("status", status).
			Int("bytes", c.Writer.Size()).
			Dur("latency", time.Since(start))
		if claims := GetClaims(c); claims != nil {
			evt.Str("user", claims.Email)
		}
		evt.Msg("request")
	}
}

func accessLevel(status int) zerolog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return zerolog.ErrorLevel
	case status >= http.StatusBadRequest:
		return zerolog.WarnLevel
	default:
		return zerolog.InfoLevel
	}
}
