// Package api implements app.Runner for the launchpad API server process.
package api

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/blocto/solana-go-sdk/client"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apphttp "github.com/chainsafe/token-launchpad/pkg/app/http"
	"github.com/chainsafe/token-launchpad/pkg/auth"
	"github.com/chainsafe/token-launchpad/pkg/config"
	"github.com/chainsafe/token-launchpad/pkg/issuance/orchestrator"
	"github.com/chainsafe/token-launchpad/pkg/issuance/service"
	"github.com/chainsafe/token-launchpad/pkg/issuancestore"
	"github.com/chainsafe/token-launchpad/pkg/keys"
	"github.com/chainsafe/token-launchpad/pkg/metadata"
	"github.com/chainsafe/token-launchpad/pkg/metadata/gcs"
	"github.com/chainsafe/token-launchpad/pkg/metadata/uploadcare"
	"github.com/chainsafe/token-launchpad/pkg/pgutil"
	"github.com/chainsafe/token-launchpad/pkg/solana"
)

// Issuances run in the background, so no route waits on the cluster.
const defaultRequestTimeout = 30 * time.Second

// Server holds cfg to init the api server.
type Server struct {
	cfg *config.Config
}

// NewServer initializes new api server.
func NewServer(cfg *config.Config) *Server {
	return &Server{cfg: cfg}
}

func (s *Server) Run() error {
	if s.cfg == nil {
		return fmt.Errorf("api server config is nil")
	}
	cfg := s.cfg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("setup logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting launchpad API server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("cluster", cfg.Solana.Cluster),
	)

	db, err := pgutil.ConnectDB(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	gateway, err := OpenGateway(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer gateway.Close()

	publisher, closePublisher, err := OpenPublisher(ctx, &cfg.Metadata, logger)
	if err != nil {
		return err
	}
	defer closePublisher()

	newRunner := func(observer orchestrator.Observer) service.Runner {
		return orchestrator.New(publisher, gateway,
			orchestrator.WithLogger(logger),
			orchestrator.WithPublishTimeout(cfg.Issuance.PublishTimeout),
			orchestrator.WithSubmitTimeout(cfg.Issuance.SubmitTimeout),
			orchestrator.WithObserver(observer),
		)
	}

	store := issuancestore.NewStore(db)
	svc := service.NewLog(service.NewService(store, newRunner, logger), logger)

	serveErr := apphttp.ServeAndWait(ctx, s.setupRouter(svc, logger), logger, &cfg.Server)

	// Accepted issuances finish before the gateway and database close.
	svc.Wait()
	return serveErr
}

// OpenGateway loads the payer keypair and builds a gateway backed by the
// configured JSON-RPC endpoint.
func OpenGateway(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*solana.Gateway, error) {
	payer, err := keys.LoadPayer(ctx, &keys.PayerConfig{
		Source:          cfg.Payer.Source,
		Path:            cfg.Payer.Path,
		Encrypted:       cfg.Payer.Encrypted,
		MasterKeyEnv:    cfg.Payer.MasterKeyEnv,
		CredentialsFile: cfg.Payer.CredentialsFile,
	})
	if err != nil {
		return nil, fmt.Errorf("load payer: %w", err)
	}

	gateway, err := solana.NewGateway(&solana.Config{
		Commitment:     cfg.Solana.Commitment,
		PollInterval:   cfg.Solana.PollInterval,
		ConfirmTimeout: cfg.Solana.ConfirmTimeout,
		ExplorerURL:    cfg.Solana.ExplorerURL,
		Cluster:        cfg.Solana.Cluster,
	}, client.NewClient(cfg.Solana.RPCURL), payer,
		solana.WithLogger(logger),
		solana.WithRentCacheSize(cfg.Solana.RentCacheSize),
	)
	if err != nil {
		return nil, fmt.Errorf("create solana gateway: %w", err)
	}

	logger.Info("Solana gateway ready",
		zap.String("rpc_url", cfg.Solana.RPCURL),
		zap.String("payer", payer.PublicKey.ToBase58()),
		zap.String("commitment", cfg.Solana.Commitment),
	)
	return gateway, nil
}

// OpenPublisher builds a metadata publisher for the configured backend. The
// returned func releases backend resources.
func OpenPublisher(
	ctx context.Context,
	cfg *config.MetadataConfig,
	logger *zap.Logger,
) (*metadata.Publisher, func(), error) {
	switch cfg.Backend {
	case config.BackendGCS:
		gcsCfg := &gcs.Config{
			Bucket:          cfg.GCS.Bucket,
			Prefix:          cfg.GCS.Prefix,
			PublicBaseURL:   cfg.GCS.PublicBaseURL,
			CredentialsFile: cfg.GCS.CredentialsFile,
		}
		storageClient, err := gcs.NewClient(ctx, gcsCfg)
		if err != nil {
			return nil, nil, err
		}
		uploader, err := gcs.New(storageClient, gcsCfg)
		if err != nil {
			_ = storageClient.Close()
			return nil, nil, err
		}
		logger.Info("Metadata backend: gcs", zap.String("bucket", cfg.GCS.Bucket))
		return metadata.NewPublisher(uploader, metadata.WithLogger(logger)),
			func() { _ = storageClient.Close() }, nil

	case config.BackendUploadcare, "":
		uploader, err := uploadcare.New(&uploadcare.Config{
			PublicKey: cfg.Uploadcare.PublicKey,
			SecretKey: cfg.Uploadcare.SecretKey,
			UploadURL: cfg.Uploadcare.UploadURL,
			CDNURL:    cfg.Uploadcare.CDNURL,
			Store:     cfg.Uploadcare.Store,
			Timeout:   cfg.Uploadcare.Timeout,
		}, uploadcare.WithLogger(logger))
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Metadata backend: uploadcare", zap.String("upload_url", cfg.Uploadcare.UploadURL))
		return metadata.NewPublisher(uploader, metadata.WithLogger(logger)), func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown metadata backend %q", cfg.Backend)
	}
}

func (s *Server) setupRouter(svc service.Service, logger *zap.Logger) chi.Router {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRequestTimeout))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if s.cfg.Monitoring.Enabled {
		r.Handle(s.cfg.Monitoring.MetricsPath, promhttp.Handler())
		logger.Info("Metrics enabled", zap.String("path", s.cfg.Monitoring.MetricsPath))
	}

	var authMiddleware func(http.Handler) http.Handler
	if s.cfg.Auth.Enabled {
		validator := auth.NewJWTValidator(s.cfg.Auth.JWKSURL, s.cfg.Auth.Issuer)
		authMiddleware = auth.Middleware(validator, logger)
		logger.Info("Bearer auth enabled", zap.String("jwks_url", s.cfg.Auth.JWKSURL))
	}

	r.Route("/v1", func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		service.RegisterRoutes(r, svc, logger)
	})

	return r
}
