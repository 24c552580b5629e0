// Package tools exposes the phone lookups as plugin tools: a small Tool
// abstraction, a registry, an HTTP invocation surface and an MCP server.
package tools

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"phone_tools_backend/platform/apperr"
)

// Parameter describes one tool argument in the manifest.
type Parameter struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Required    bool   `json:"required"`
	Default     any    `json:"default,omitempty"`
}

// Tool is a named operation a plugin host can invoke with loosely typed parameters.
type Tool interface {
	Name() string
	Description() string
	Parameters() []Parameter
	Invoke(ctx context.Context, params map[string]any) (Message, error)
}

// MessageTypeJSON is the only message type the phone tools emit.
const MessageTypeJSON = "json"

// Message is the envelope handed back to the host.
type Message struct {
	Type string `json:"type"`
	JSON any    `json:"json"`
}

// JSONMessage wraps payload in a JSON message.
func JSONMessage(payload any) Message {
	return Message{Type: MessageTypeJSON, JSON: payload}
}

// stringParam reads an optional string parameter. Numbers are accepted and
// printed without exponent, since hosts often pass phone numbers as JSON numbers.
func stringParam(params map[string]any, name string) (string, error) {
	raw, ok := params[name]
	if !ok || raw == nil {
		return "", nil
	}
	switch v := raw.(type) {
	case string:
		return v, nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case fmt.Stringer:
		return v.String(), nil
	default:
		return "", apperr.Validation(fmt.Sprintf("parameter %s must be a string", name)).
			WithDetails(map[string]string{"parameter": name})
	}
}

func trimmedParam(params map[string]any, name string) (string, error) {
	value, err := stringParam(params, name)
	return strings.TrimSpace(value), err
}
