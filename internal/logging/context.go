package logging

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type ctxKey string

const (
	ctxRequestID ctxKey = "request_id"
	ctxStartTime ctxKey = "start_time"
)

func SetRequestID(c *gin.Context, id string)    { c.Set(string(ctxRequestID), id) }
func SetStartTime(c *gin.Context, at time.Time) { c.Set(string(ctxStartTime), at) }

// RequestID returns the id assigned by the request-id middleware, if any
func RequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(string(ctxRequestID))
}

func withGinContext(c *gin.Context, e *zerolog.Event) *zerolog.Event {
	if c == nil {
		return e
	}
	if id := RequestID(c); id != "" {
		e.Str("request_id", id)
	}
	if v, ok := c.Get(string(ctxStartTime)); ok {
		if t, ok2 := v.(time.Time); ok2 {
			e.Dur("duration", time.Since(t))
		}
	}
	return e
}

func Info(c *gin.Context) *zerolog.Event  { return withGinContext(c, log.Info()) }
func Debug(c *gin.Context) *zerolog.Event { return withGinContext(c, log.Debug()) }
func Warn(c *gin.Context) *zerolog.Event  { return withGinContext(c, log.Warn()) }
func Error(c *gin.Context) *zerolog.Event { return withGinContext(c, log.Error()) }
