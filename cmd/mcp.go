package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/bigdbm/extractreg/internal/extracttype/domain"
	"github.com/bigdbm/extractreg/internal/infrastructure/layouts"
	"github.com/bigdbm/extractreg/internal/log"
	"github.com/bigdbm/extractreg/internal/mcpserver"
	"github.com/bigdbm/extractreg/internal/pubsub"
	"github.com/bigdbm/extractreg/internal/watcher"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the registry as MCP tools on stdio",
	Long: `Serve the registry over the Model Context Protocol on stdin/stdout.

Tools: create_extract_type, query_extract_types, list_vocabulary.

Logging goes to the debug log file only; stdout carries the protocol.
With the filesystem layouts backend, changes under layouts.root evict the
affected layout ids from the lookup cache.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg, err := openRegistry(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = reg.Close() }()

		ctx, cancel := context.WithCancel(cmd.Context())
		defer cancel()
		go logCreated(reg.events.Subscribe(ctx))

		if reg.fsRoot != "" && cfg.Layouts.CacheTTL > 0 {
			stop := watchLayouts(ctx, reg.fsRoot, reg.cache)
			defer stop()
		}

		srv := mcpserver.New(mcpserver.Deps{
			Registry: reg.service,
			Tracer:   reg.tracing.Tracer(),
			Version:  version,
		})
		return srv.ServeStdio()
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func logCreated(events <-chan pubsub.Event[*domain.ExtractType]) {
	for evt := range events {
		if evt.Type == pubsub.CreatedEvent {
			log.Info(log.CatMCP, "extract type created via MCP", "uid", evt.Payload.UID())
		}
	}
}

// watchLayouts evicts changed layouts from cache until the returned stop is called.
// A root that cannot be watched only disables eviction.
func watchLayouts(ctx context.Context, root string, cache *layouts.CachedChecker) func() {
	w, err := watcher.New(watcher.DefaultConfig(root, layouts.PartitionPrefix))
	if err != nil {
		log.Warn(log.CatLayout, "layout watcher disabled", "error", err)
		return func() {}
	}
	changes, err := w.Start()
	if err != nil {
		_ = w.Stop()
		log.Warn(log.CatLayout, "layout watcher disabled", "root", root, "error", err)
		return func() {}
	}

	go func() {
		for {
			select {
			case ids := <-changes:
				for _, id := range ids {
					_ = cache.Forget(ctx, id)
				}
				log.Debug(log.CatLayout, "evicted changed layouts", "ids", ids)
			case <-ctx.Done():
				return
			}
		}
	}()
	return func() { _ = w.Stop() }
}
