package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/sunburst/internal/server"
	"github.com/matzehuels/sunburst/pkg/cache"
	"github.com/matzehuels/sunburst/pkg/pipeline"
	"github.com/matzehuels/sunburst/pkg/session"
)

type serveOpts struct {
	addr      string
	redisAddr string
	mongoURI  string
	mongoDB   string
	noCache   bool
}

// newServeCmd creates the serve command.
func newServeCmd() *cobra.Command {
	opts := &serveOpts{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Run the HTTP rendering API.

Exposes POST /v1/render for one-shot rendering. With a MongoDB
connection the gallery endpoints are mounted as well: stored diagrams
under /v1/diagrams and share links under /v1/shared.

Artifacts are cached on disk by default; pass --redis to share the
cache across instances.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			applyServeConfig(cmd, opts)
			return runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&opts.redisAddr, "redis", "", "Redis address for the artifact cache (host:port)")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection URI for the diagram gallery")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "sunburst", "MongoDB database name")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable diagram and artifact caching")

	return cmd
}

// applyServeConfig fills unset flags from the config file.
func applyServeConfig(cmd *cobra.Command, opts *serveOpts) {
	fc, err := loadFileConfig()
	if err != nil {
		return
	}
	sc := fc.Serve
	if !cmd.Flags().Changed("addr") && sc.Addr != "" {
		opts.addr = sc.Addr
	}
	if !cmd.Flags().Changed("redis") && sc.RedisAddr != "" {
		opts.redisAddr = sc.RedisAddr
	}
	if !cmd.Flags().Changed("mongo-uri") && sc.MongoURI != "" {
		opts.mongoURI = sc.MongoURI
	}
	if !cmd.Flags().Changed("mongo-db") && sc.MongoDB != "" {
		opts.mongoDB = sc.MongoDB
	}
}

func runServe(ctx context.Context, opts *serveOpts) error {
	logger := loggerFromContext(ctx)

	c, err := serveCache(ctx, opts)
	if err != nil {
		return err
	}
	runner := pipeline.NewRunner(c, nil, logger)
	defer runner.Close()

	var diagrams server.DiagramStore
	if opts.mongoURI != "" {
		sp := newSpinnerWithContext(ctx, "Connecting to MongoDB")
		sp.Start()
		store, err := server.NewMongoStore(ctx, opts.mongoURI, opts.mongoDB)
		if err != nil {
			sp.StopWithError("MongoDB connection failed")
			return fmt.Errorf("connect gallery store: %w", err)
		}
		sp.StopWithSuccess("Connected to MongoDB")
		defer store.Close(context.Background())
		diagrams = store
		logger.Info("gallery enabled", "database", opts.mongoDB)
	} else {
		logger.Info("gallery disabled; pass --mongo-uri to enable")
	}

	sessions, err := serveSessions()
	if err != nil {
		logger.Warn("session store unavailable; share links will not survive restarts", "error", err)
		sessions = session.NewMemoryStore()
	}

	srv := server.New(server.Config{
		Addr:     opts.addr,
		Runner:   runner,
		Diagrams: diagrams,
		Sessions: sessions,
		Logger:   logger,
	})

	logger.Info("listening", "addr", opts.addr)
	return srv.Run(ctx)
}

// serveCache picks the cache backend: Redis when configured, the local
// file cache otherwise, and NullCache with --no-cache.
func serveCache(ctx context.Context, opts *serveOpts) (cache.Cache, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil
	}
	if opts.redisAddr != "" {
		c, err := cache.NewRedisCache(ctx, opts.redisAddr)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return c, nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	c, err := cache.NewFileCache(dir)
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return c, nil
}

// serveSessions builds a file-backed session store under the config dir
// so share links survive restarts.
func serveSessions() (session.Store, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".config")
	}
	return session.NewFileStore(filepath.Join(base, appName, "sessions"))
}
