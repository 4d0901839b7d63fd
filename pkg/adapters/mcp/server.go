// Package mcp exposes a validated tool catalog as an MCP server. Tool
// schemas are derived from the same extracted definitions the validator
// checks, so the advertised parameter domains always match the guards in
// the tool bodies.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"reflect"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/mitchellh/mapstructure"

	"github.com/soundmesh/toolwright/internal/logging"
	"github.com/soundmesh/toolwright/pkg/domain"
	"github.com/soundmesh/toolwright/pkg/ports"
)

// Server wraps a tool catalog and exposes it over MCP.
type Server struct {
	registry  ports.Registry
	logger    *slog.Logger
	defs      []domain.ToolDefinition
	mcpServer *server.MCPServer
}

type Option func(*Server)

// WithLogger sets the structured logger used for request logging.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates an MCP server backed by the given live registry.
func NewServer(name, version string, registry ports.Registry, opts ...Option) *Server {
	s := &Server{
		registry:  registry,
		logger:    logging.NewNop(),
		mcpServer: server.NewMCPServer(name, version),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerResources()
	return s
}

// Register advertises one tool. The schema comes from the definition; the
// callable is invoked with coerced arguments on every request.
func (s *Server) Register(def domain.ToolDefinition, fn any) error {
	if fn == nil {
		return fmt.Errorf("tool %s: nil callable", def.Name)
	}
	t := reflect.TypeOf(fn)
	if t.Kind() != reflect.Func || t.NumIn() != len(def.Parameters)+2 {
		return fmt.Errorf("tool %s: callable does not match the extracted signature", def.Name)
	}
	s.defs = append(s.defs, def)
	s.mcpServer.AddTool(toolFromDef(def), s.handler(def, fn))
	return nil
}

// RegisterAll advertises every definition, resolving callables by name.
func (s *Server) RegisterAll(defs []domain.ToolDefinition, lookup func(string) any) error {
	for _, def := range defs {
		fn := lookup(def.Name)
		if fn == nil {
			return fmt.Errorf("tool %s: no callable in catalog", def.Name)
		}
		if err := s.Register(def, fn); err != nil {
			return err
		}
	}
	return nil
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE starts the server on the given port using SSE.
func (s *Server) ServeSSE(ctx context.Context, port int) error {
	addr := fmt.Sprintf(":%d", port)
	baseURL := fmt.Sprintf("http://localhost:%d", port)

	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", corsMiddleware(sseServer.SSEHandler()))
	mux.Handle("/message", corsMiddleware(sseServer.MessageHandler()))

	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Requested-With")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func toolFromDef(def domain.ToolDefinition) mcp.Tool {
	opts := []mcp.ToolOption{mcp.WithDescription(def.Doc.Summary)}
	for _, p := range def.Parameters {
		desc := def.Doc.Args[p.Name]
		c := domain.ConstraintFor(p, desc)

		switch p.Type {
		case "string":
			popts := []mcp.PropertyOption{mcp.Description(desc)}
			if !p.Optional {
				popts = append(popts, mcp.Required())
			} else if p.Default != "" {
				popts = append(popts, mcp.DefaultString(p.Default))
			}
			if c != nil && c.Kind == domain.ConstraintEnum {
				popts = append(popts, mcp.Enum(c.Choices...))
			}
			opts = append(opts, mcp.WithString(p.Name, popts...))
		case "bool":
			popts := []mcp.PropertyOption{mcp.Description(desc)}
			if !p.Optional {
				popts = append(popts, mcp.Required())
			}
			opts = append(opts, mcp.WithBoolean(p.Name, popts...))
		default:
			popts := []mcp.PropertyOption{mcp.Description(desc)}
			if !p.Optional {
				popts = append(popts, mcp.Required())
			}
			if c != nil && c.Kind == domain.ConstraintRange {
				popts = append(popts, mcp.Min(c.Min), mcp.Max(c.Max))
			}
			opts = append(opts, mcp.WithNumber(p.Name, popts...))
		}
	}
	return mcp.NewTool(def.Name, opts...)
}

func (s *Server) handler(def domain.ToolDefinition, fn any) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args, err := coerceArgs(def, request.GetArguments())
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		out, err := invoke(ctx, s.registry, fn, args)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		s.logger.Debug("tool invoked", "tool", def.Name, "args", len(args))
		return mcp.NewToolResultText(out), nil
	}
}

// coerceArgs turns the request's argument map into a positional list matching
// the declared parameters, weakly converting JSON values to the Go types the
// signature expects.
func coerceArgs(def domain.ToolDefinition, raw map[string]any) ([]any, error) {
	args := make([]any, 0, len(def.Parameters))
	for _, p := range def.Parameters {
		v, ok := raw[p.Name]
		if !ok {
			if !p.Optional {
				return nil, fmt.Errorf("missing required argument %q", p.Name)
			}
			v = p.Default
		}

		switch p.Type {
		case "string":
			var s string
			if err := mapstructure.WeakDecode(v, &s); err != nil {
				return nil, fmt.Errorf("argument %q: %w", p.Name, err)
			}
			args = append(args, s)
		case "int":
			var n int
			if err := mapstructure.WeakDecode(v, &n); err != nil {
				return nil, fmt.Errorf("argument %q: %w", p.Name, err)
			}
			args = append(args, n)
		case "float64", "float":
			var f float64
			if err := mapstructure.WeakDecode(v, &f); err != nil {
				return nil, fmt.Errorf("argument %q: %w", p.Name, err)
			}
			args = append(args, f)
		case "bool":
			var b bool
			if err := mapstructure.WeakDecode(v, &b); err != nil {
				return nil, fmt.Errorf("argument %q: %w", p.Name, err)
			}
			args = append(args, b)
		default:
			args = append(args, v)
		}
	}
	return args, nil
}

func invoke(ctx context.Context, reg ports.Registry, fn any, args []any) (string, error) {
	v := reflect.ValueOf(fn)
	t := v.Type()

	in := make([]reflect.Value, 0, t.NumIn())
	in = append(in, reflect.ValueOf(ctx))
	if reg == nil {
		in = append(in, reflect.Zero(t.In(1)))
	} else {
		in = append(in, reflect.ValueOf(reg))
	}
	for i, a := range args {
		av := reflect.ValueOf(a)
		pt := t.In(i + 2)
		if av.Type() != pt {
			if !av.Type().ConvertibleTo(pt) {
				return "", fmt.Errorf("argument %d: cannot convert %s to %s", i, av.Type(), pt)
			}
			av = av.Convert(pt)
		}
		in = append(in, av)
	}

	out := v.Call(in)
	return out[0].String(), nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource("toolwright://catalog", "Registered Tool Definitions",
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := json.Marshal(s.defs)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal catalog: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      "toolwright://catalog",
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}
