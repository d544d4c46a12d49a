package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ephys/graphql-non-null-directive/internal/eventbus"
	"github.com/ephys/graphql-non-null-directive/internal/introspection"
	"github.com/ephys/graphql-non-null-directive/internal/logging"
	"github.com/ephys/graphql-non-null-directive/internal/otel"
	"github.com/ephys/graphql-non-null-directive/internal/schemart"
	"github.com/ephys/graphql-non-null-directive/internal/server"
)

const (
	flagAddr            = "addr"
	flagRootValue       = "root-value"
	flagIntrospection   = "introspection"
	flagPretty          = "pretty"
	flagTimeout         = "timeout"
	flagMetadataHeaders = "metadata-header"
	flagCORSOrigins     = "cors-origin"
	flagOTelEndpoint    = "otel-endpoint"
	flagOTelService     = "otel-service"
)

func (a *app) serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the schema over HTTP with null enforcement",
		Long: `Serve the schema under --schema at /graphql. Fields resolve from the JSON root
value by property name; fields whose arguments reach a tagged input field reject explicit nulls.`,
		Example: `nonnullgql serve --schema ./graphql --root-value @data.json --addr :8080`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return a.serve(ctx)
		},
	}
	cmd.Flags().String(flagSchema, "", "GraphQL schema directory")
	cmd.Flags().String(flagAddr, ":8080", "HTTP listen address")
	cmd.Flags().String(flagRootValue, "", "Root value as JSON, or @file to read it from a file")
	cmd.Flags().Bool(flagIntrospection, true, "Enable GraphQL introspection")
	cmd.Flags().Bool(flagPretty, false, "Pretty-print JSON responses")
	cmd.Flags().Duration(flagTimeout, 10*time.Second, "Per-request timeout")
	cmd.Flags().StringSlice(flagMetadataHeaders, nil, "HTTP header exposed to resolvers as incoming metadata. Repeatable")
	cmd.Flags().StringSlice(flagCORSOrigins, nil, "Allowed CORS origin. Repeatable")
	cmd.Flags().String(flagOTelEndpoint, "", "OTLP collector endpoint")
	cmd.Flags().String(flagOTelService, "nonnullgql", "OpenTelemetry service name")
	return cmd
}

func (a *app) serve(ctx context.Context) error {
	eventbus.Use(eventbus.New())
	defer logging.Register(a.logger)()

	shutdown, err := otel.Setup(ctx, a.v.GetString(flagOTelEndpoint), a.v.GetString(flagOTelService))
	if err != nil {
		return fmt.Errorf("otel setup: %w", err)
	}
	defer func() { _ = shutdown(context.Background()) }()

	h, err := a.handler(ctx)
	if err != nil {
		return err
	}
	mux := http.NewServeMux()
	mux.Handle("/graphql", h)

	srv := &http.Server{Addr: a.v.GetString(flagAddr), Handler: mux}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	a.logger.Info("graphql server listening", zap.String("addr", srv.Addr))

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}
	sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// handler builds, transforms and wraps the schema into the /graphql handler.
func (a *app) handler(ctx context.Context) (http.Handler, error) {
	d := a.directive()
	s, err := a.load(ctx, d)
	if err != nil {
		return nil, err
	}
	if s, err = d.Transform(s); err != nil {
		return nil, err
	}
	if a.v.GetBool(flagIntrospection) {
		s = introspection.Extend(s)
	}

	root, err := rootValue(a.v.GetString(flagRootValue))
	if err != nil {
		return nil, err
	}
	opts := []server.Option{server.WithRootValue(root)}
	if a.v.GetBool(flagPretty) {
		opts = append(opts, server.WithPretty())
	}
	if t := a.v.GetDuration(flagTimeout); t > 0 {
		opts = append(opts, server.WithTimeout(t))
	}
	if hs := a.v.GetStringSlice(flagMetadataHeaders); len(hs) > 0 {
		opts = append(opts, server.WithMetadataHeaders(hs...))
	}
	if origins := a.v.GetStringSlice(flagCORSOrigins); len(origins) > 0 {
		opts = append(opts, server.WithCORS(origins...))
	}
	h, err := server.New(schemart.NewRuntime(s), s, opts...)
	if err != nil {
		return nil, fmt.Errorf("server init: %w", err)
	}
	return h, nil
}

func rootValue(arg string) (any, error) {
	if arg == "" {
		return map[string]any{}, nil
	}
	data := []byte(arg)
	if file, ok := strings.CutPrefix(arg, "@"); ok {
		b, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("read root value: %w", err)
		}
		data = b
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("parse root value: %w", err)
	}
	return v, nil
}
