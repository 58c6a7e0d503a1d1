package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/citemap/internal/server"
	"github.com/matzehuels/citemap/pkg/cache"
	"github.com/matzehuels/citemap/pkg/pipeline"
)

// serveCommand creates the serve command, which runs the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		entries int
		origins []string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis over HTTP",
		Long: `Serve starts the HTTP API:

  GET  /health
  POST /v1/analyze    dataset in, layout JSON out
  POST /v1/subjects   dataset in, one layout per subject out
  POST /v1/render     dataset or layout in, image out (?format=svg|png|dot|json|coverage)

Layouts are cached in memory for the lifetime of the process.`,
		Example: `  citemap serve --addr :8080`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.Config.Server
			if cmd.Flags().Changed("addr") {
				opts.Addr = addr
			}
			if cmd.Flags().Changed("cache-entries") {
				opts.CacheEntries = entries
			}
			if cmd.Flags().Changed("allow-origin") {
				opts.AllowedOrigins = origins
			}

			var layouts cache.Cache = cache.NewMemoryCache(opts.CacheEntries)
			if c.Config.Cache.Disabled {
				layouts = cache.NewNullCache()
			}
			runner := pipeline.NewRunner(layouts, c.Logger)
			defer runner.Cache.Close()

			srv := server.New(runner, c.Config.Pipeline, opts, c.Logger)
			printInfo("Listening on %s", StyleValue.Render("http://"+opts.Addr))
			return srv.ListenAndServe(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&entries, "cache-entries", server.DefaultCacheEntries, "layouts kept in the memory cache")
	cmd.Flags().StringSliceVar(&origins, "allow-origin", nil, "allowed CORS origins")

	return cmd
}
