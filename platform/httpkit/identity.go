package httpkit

import (
	"context"

	"phone_tools_backend/platform/logger"

	"github.com/gin-gonic/gin"
)

// Identity is the caller behind a request. When bearer auth is disabled every
// caller is anonymous.
type Identity interface {
	// Subject returns the token's "sub" claim, or "" for anonymous callers.
	Subject() string
	IsAuthenticated() bool
}

type identity struct {
	subject string
}

func (i identity) Subject() string       { return i.subject }
func (i identity) IsAuthenticated() bool { return i.subject != "" }

// GetIdentity extracts the Identity from a Gin context.
func GetIdentity(c *gin.Context) Identity {
	subject, _ := c.Get(ContextSubjectKey)
	text, _ := subject.(string)
	return identity{subject: text}
}

// RequestContext returns the request's context enriched with the request ID
// and subject, so that logger.WithContext can pick them up downstream.
func RequestContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if requestID := c.GetString(ContextRequestIDKey); requestID != "" {
		ctx = context.WithValue(ctx, logger.RequestIDKey, requestID)
	}
	if subject := GetIdentity(c).Subject(); subject != "" {
		ctx = context.WithValue(ctx, logger.SubjectKey, subject)
	}
	return ctx
}
