package registry

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/jonwraymond/solrq/parser"
)

func mustExecute(t *testing.T, r *Registry, name string, args map[string]any) any {
	t.Helper()
	result, err := r.Execute(context.Background(), name, args)
	if err != nil {
		t.Fatalf("Execute(%s) failed: %v", name, err)
	}
	return result
}

func TestBuiltinTools(t *testing.T) {
	r := New(Config{})

	var names []string
	for _, tool := range r.Tools() {
		names = append(names, tool.Name)
	}
	want := []string{"parse_query", "normalize_query", "translate_query"}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("Tools() = %v, want %v", names, want)
	}
}

func TestExecuteNormalize(t *testing.T) {
	r := New(Config{})

	result := mustExecute(t, r, "normalize_query", map[string]any{
		"query": "  a  AND AND  b ",
	})
	m, ok := result.(map[string]any)
	if !ok {
		t.Fatalf("result type %T", result)
	}
	if m["query"] != "a AND b" {
		t.Errorf("normalized = %q, want %q", m["query"], "a AND b")
	}
}

func TestExecuteParse(t *testing.T) {
	r := New(Config{})

	result := mustExecute(t, r, "parse_query", map[string]any{
		"query": "title:foo AND bar^2",
	})
	m := result.(map[string]any)
	if m["canonical"] != "title:foo AND bar^2" {
		t.Errorf("canonical = %q", m["canonical"])
	}

	nodes := m["nodes"].([]map[string]any)
	if len(nodes) != 3 {
		t.Fatalf("got %d nodes, want 3", len(nodes))
	}
	if nodes[0]["type"] != "term" || nodes[0]["field"] != "title" || nodes[0]["value"] != "foo" {
		t.Errorf("first node = %v", nodes[0])
	}
	if nodes[1]["type"] != "operator" || nodes[1]["value"] != "AND" {
		t.Errorf("second node = %v", nodes[1])
	}
	if nodes[2]["boost"] != "2" {
		t.Errorf("third node = %v", nodes[2])
	}
}

func TestExecuteTranslate(t *testing.T) {
	r := New(Config{})

	result := mustExecute(t, r, "translate_query", map[string]any{
		"query": "title:foo",
	})
	// the translated query must be JSON-marshalable for the wire
	raw, err := json.Marshal(result)
	if err != nil {
		t.Fatalf("marshal translated query: %v", err)
	}
	if !strings.Contains(string(raw), `"title"`) {
		t.Errorf("translated JSON %s does not mention the field", raw)
	}
}

func TestExecuteErrors(t *testing.T) {
	r := New(Config{ParserOptions: parser.Options{Strict: true, AllowedFields: []string{"title"}}})

	if _, err := r.Execute(context.Background(), "no_such_tool", nil); !errors.Is(err, ErrToolNotFound) {
		t.Errorf("unknown tool error = %v, want ErrToolNotFound", err)
	}
	if _, err := r.Execute(context.Background(), "parse_query", map[string]any{}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("missing argument error = %v, want ErrInvalidRequest", err)
	}
	if _, err := r.Execute(context.Background(), "parse_query", map[string]any{"query": 42}); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("non-string argument error = %v, want ErrInvalidRequest", err)
	}
	if _, err := r.Execute(context.Background(), "normalize_query", map[string]any{"query": "subject:x"}); !errors.Is(err, parser.ErrUnknownField) {
		t.Errorf("strict parse error = %v, want ErrUnknownField", err)
	}
}

func TestRegister(t *testing.T) {
	r := New(Config{})

	tool := mcp.Tool{
		Name:        "echo_query",
		Description: "Echo the query argument back",
		InputSchema: map[string]any{"type": "object"},
	}
	handler := func(ctx context.Context, args map[string]any) (any, error) {
		return args["query"], nil
	}

	if err := r.Register(tool, handler); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if got := mustExecute(t, r, "echo_query", map[string]any{"query": "x"}); got != "x" {
		t.Errorf("echo result = %v", got)
	}

	if err := r.Register(tool, handler); !errors.Is(err, ErrToolExists) {
		t.Errorf("duplicate Register = %v, want ErrToolExists", err)
	}
	if err := r.Register(mcp.Tool{}, handler); !errors.Is(err, ErrInvalidRequest) {
		t.Errorf("nameless Register = %v, want ErrInvalidRequest", err)
	}
}

func TestHandleRequest(t *testing.T) {
	r := New(Config{ServerInfo: ServerInfo{Name: "solrq-test", Version: "0.1.0"}})
	ctx := context.Background()

	resp := r.HandleRequest(ctx, MCPRequest{JSONRPC: "2.0", ID: 1, Method: "initialize"})
	if resp.Error != nil {
		t.Fatalf("initialize error: %v", resp.Error)
	}
	info := resp.Result.(map[string]any)["serverInfo"].(map[string]any)
	if info["name"] != "solrq-test" {
		t.Errorf("serverInfo = %v", info)
	}

	resp = r.HandleRequest(ctx, MCPRequest{JSONRPC: "2.0", ID: 2, Method: "tools/list"})
	if resp.Error != nil {
		t.Fatalf("tools/list error: %v", resp.Error)
	}
	tools := resp.Result.(map[string]any)["tools"].([]map[string]any)
	if len(tools) != 3 {
		t.Errorf("tools/list returned %d tools, want 3", len(tools))
	}

	params, _ := json.Marshal(map[string]any{
		"name":      "normalize_query",
		"arguments": map[string]any{"query": "a OR OR b"},
	})
	resp = r.HandleRequest(ctx, MCPRequest{JSONRPC: "2.0", ID: 3, Method: "tools/call", Params: params})
	if resp.Error != nil {
		t.Fatalf("tools/call error: %v", resp.Error)
	}
	if got := resp.Result.(map[string]any)["query"]; got != "a OR b" {
		t.Errorf("tools/call result = %v", got)
	}

	resp = r.HandleRequest(ctx, MCPRequest{JSONRPC: "2.0", ID: 4, Method: "bogus"})
	if resp.Error == nil || resp.Error.Code != ErrCodeMethodNotFound {
		t.Errorf("bogus method response = %+v", resp)
	}

	params, _ = json.Marshal(map[string]any{"name": "no_such_tool"})
	resp = r.HandleRequest(ctx, MCPRequest{JSONRPC: "2.0", ID: 5, Method: "tools/call", Params: params})
	if resp.Error == nil || resp.Error.Code != ErrCodeToolNotFound {
		t.Errorf("missing tool response = %+v", resp)
	}
}

func TestServeLoop(t *testing.T) {
	r := New(Config{})

	var in bytes.Buffer
	req := MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"}
	raw, _ := json.Marshal(req)
	in.Write(raw)
	in.WriteByte('\n')
	in.WriteString("not json\n")

	var out bytes.Buffer
	if err := serve(context.Background(), r, &in, &out); err != nil {
		t.Fatalf("serve failed: %v", err)
	}

	dec := json.NewDecoder(&out)
	var first, second MCPResponse
	if err := dec.Decode(&first); err != nil {
		t.Fatalf("decode first response: %v", err)
	}
	if first.Error != nil {
		t.Errorf("first response error: %v", first.Error)
	}
	if err := dec.Decode(&second); err != nil {
		t.Fatalf("decode second response: %v", err)
	}
	if second.Error == nil || second.Error.Code != ErrCodeParseError {
		t.Errorf("second response = %+v, want parse error", second)
	}
}

func TestServeHTTP(t *testing.T) {
	r := New(Config{})
	handler := ServeHTTP(r)

	body, _ := json.Marshal(MCPRequest{JSONRPC: "2.0", ID: 1, Method: "tools/list"})
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var resp MCPResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Error != nil {
		t.Errorf("response error: %v", resp.Error)
	}

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("GET status = %d, want 405", rec.Code)
	}
}
