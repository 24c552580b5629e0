package tools

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"phone_tools_backend/platform/apperr"
	"phone_tools_backend/platform/logger"
)

// Registry holds the tools by name.
type Registry struct {
	mu    sync.RWMutex
	tools map[string]Tool
	log   *logger.Logger
}

func NewRegistry(log *logger.Logger) *Registry {
	return &Registry{tools: make(map[string]Tool), log: log}
}

// Register adds a tool. Names must be unique.
func (r *Registry) Register(tool Tool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.tools[tool.Name()]; exists {
		return fmt.Errorf("tool %q already registered", tool.Name())
	}
	r.tools[tool.Name()] = tool
	return nil
}

func (r *Registry) Get(name string) (Tool, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tool, ok := r.tools[name]
	return tool, ok
}

// List returns the registered tools ordered by name.
func (r *Registry) List() []Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Tool, 0, len(r.tools))
	for _, tool := range r.tools {
		out = append(out, tool)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name() < out[j].Name() })
	return out
}

// Invoke runs the named tool and logs the call.
func (r *Registry) Invoke(ctx context.Context, name string, params map[string]any) (Message, error) {
	tool, ok := r.Get(name)
	if !ok {
		return Message{}, apperr.NotFound(fmt.Sprintf("tool %q not found", name)).WithOp("tools.Invoke")
	}
	if params == nil {
		params = map[string]any{}
	}

	start := time.Now()
	msg, err := tool.Invoke(ctx, params)
	r.log.WithContext(ctx).ToolInvocation(name, time.Since(start), err)
	return msg, err
}

// NewPhoneRegistry registers the identify and extract tools.
func NewPhoneRegistry(locator Locator, extractor Extractor, log *logger.Logger) (*Registry, error) {
	return newRegistryWith(log, NewIdentifyTool(locator), NewExtractTool(extractor))
}

func newRegistryWith(log *logger.Logger, tools ...Tool) (*Registry, error) {
	reg := NewRegistry(log)
	for _, tool := range tools {
		if err := reg.Register(tool); err != nil {
			return nil, err
		}
	}
	return reg, nil
}
