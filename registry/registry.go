package registry

import (
	"context"
	"fmt"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/solrq/parser"
	"github.com/jonwraymond/solrq/query"
	"github.com/jonwraymond/solrq/translate"
)

// ToolHandler executes one tool call. It receives the arguments parsed
// from the MCP request and returns a JSON-marshalable result.
type ToolHandler func(ctx context.Context, args map[string]any) (any, error)

// ServerInfo describes this MCP server for the initialize response.
type ServerInfo struct {
	Name    string
	Version string
}

// Config configures a Registry.
type Config struct {
	// ParserOptions configure the parser behind the built-in tools.
	ParserOptions parser.Options

	// DefaultField is passed to the translator behind translate_query.
	DefaultField string

	// ServerInfo defaults to name "solrq".
	ServerInfo ServerInfo
}

type entry struct {
	tool    mcp.Tool
	handler ToolHandler
}

// Registry is an MCP tool server fronting the query normalization layer.
type Registry struct {
	mu      sync.RWMutex
	p       *parser.Parser
	tr      *translate.Translator
	cfg     Config
	entries map[string]entry
	order   []string
}

// New creates a Registry with the built-in query tools registered.
func New(cfg Config) *Registry {
	if cfg.ServerInfo.Name == "" {
		cfg.ServerInfo.Name = "solrq"
	}
	p := parser.New(cfg.ParserOptions)
	r := &Registry{
		p:       p,
		tr:      translate.New(translate.Options{Parser: p, DefaultField: cfg.DefaultField}),
		cfg:     cfg,
		entries: make(map[string]entry),
	}
	r.registerBuiltins()
	return r
}

// Register attaches a custom tool. The name must not collide with an
// existing tool.
func (r *Registry) Register(tool mcp.Tool, handler ToolHandler) error {
	if tool.Name == "" || handler == nil {
		return fmt.Errorf("%w: tool needs a name and a handler", ErrInvalidRequest)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.entries[tool.Name]; ok {
		return fmt.Errorf("%q: %w", tool.Name, ErrToolExists)
	}
	r.entries[tool.Name] = entry{tool: tool, handler: handler}
	r.order = append(r.order, tool.Name)
	return nil
}

// Tools lists the registered tool descriptors in registration order.
func (r *Registry) Tools() []mcp.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]mcp.Tool, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.entries[name].tool)
	}
	return out
}

// Execute runs the named tool.
func (r *Registry) Execute(ctx context.Context, name string, args map[string]any) (any, error) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrToolNotFound)
	}
	return e.handler(ctx, args)
}

func (r *Registry) registerBuiltins() {
	schema := map[string]any{
		"type": "object",
		"properties": map[string]any{
			"query": map[string]any{
				"type":        "string",
				"description": "Raw Solr-style query string",
			},
		},
		"required": []string{"query"},
	}

	builtins := []struct {
		tool    mcp.Tool
		handler ToolHandler
	}{
		{
			tool: mcp.Tool{
				Name:        "parse_query",
				Description: "Parse a Solr-style query into its term and operator nodes",
				InputSchema: schema,
			},
			handler: r.handleParse,
		},
		{
			tool: mcp.Tool{
				Name:        "normalize_query",
				Description: "Rewrite a Solr-style query in canonical form",
				InputSchema: schema,
			},
			handler: r.handleNormalize,
		},
		{
			tool: mcp.Tool{
				Name:        "translate_query",
				Description: "Translate a Solr-style query into a bleve query tree",
				InputSchema: schema,
			},
			handler: r.handleTranslate,
		},
	}

	for _, b := range builtins {
		r.entries[b.tool.Name] = entry{tool: b.tool, handler: b.handler}
		r.order = append(r.order, b.tool.Name)
	}
}

func queryArg(args map[string]any) (string, error) {
	raw, ok := args["query"]
	if !ok {
		return "", fmt.Errorf("%w: missing query argument", ErrInvalidRequest)
	}
	text, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: query argument must be a string", ErrInvalidRequest)
	}
	return text, nil
}

func (r *Registry) handleParse(ctx context.Context, args map[string]any) (any, error) {
	text, err := queryArg(args)
	if err != nil {
		return nil, err
	}
	nodes, err := r.p.Parse(text)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(nodes))
	for _, n := range nodes {
		out = append(out, nodeJSON(n))
	}
	return map[string]any{
		"nodes":     out,
		"canonical": query.Join(query.Optimize(nodes)),
	}, nil
}

func (r *Registry) handleNormalize(ctx context.Context, args map[string]any) (any, error) {
	text, err := queryArg(args)
	if err != nil {
		return nil, err
	}
	normalized, err := r.p.Normalize(text)
	if err != nil {
		return nil, err
	}
	return map[string]any{"query": normalized}, nil
}

func (r *Registry) handleTranslate(ctx context.Context, args map[string]any) (any, error) {
	text, err := queryArg(args)
	if err != nil {
		return nil, err
	}
	q, err := r.tr.TranslateString(text)
	if err != nil {
		return nil, err
	}
	// bleve queries marshal themselves to their JSON wire form
	return map[string]any{"query": q}, nil
}

func nodeJSON(n query.Node) map[string]any {
	switch v := n.(type) {
	case query.Operator:
		return map[string]any{"type": "operator", "value": v.String()}
	case *query.Term:
		m := map[string]any{
			"type":  "term",
			"field": v.Field(),
			"value": v.Value(),
			"solr":  v.String(),
		}
		if mod := v.Mod(); mod != "" {
			m["mod"] = mod
		}
		if open := v.Opener(); open != 0 {
			m["opener"] = string(open)
		}
		if b, ok := v.Boost(); ok {
			m["boost"] = b
		}
		if p, ok := v.Proximity(); ok {
			m["proximity"] = p
		}
		return m
	default:
		return map[string]any{"type": "unknown", "value": n.String()}
	}
}
