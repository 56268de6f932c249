package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"google.golang.org/grpc/reflection"

	grpcctx "github.com/dtroode/subspace-wallet/internal/api/grpc/context"
	"github.com/dtroode/subspace-wallet/internal/api/grpc/middleware"
	"github.com/dtroode/subspace-wallet/internal/api/grpc/router"
	grpcServer "github.com/dtroode/subspace-wallet/internal/api/grpc/server"
	"github.com/dtroode/subspace-wallet/internal/config"
	"github.com/dtroode/subspace-wallet/internal/keyprovider"
	"github.com/dtroode/subspace-wallet/internal/logger"
	"github.com/dtroode/subspace-wallet/internal/metrics"
	"github.com/dtroode/subspace-wallet/internal/model"
	"github.com/dtroode/subspace-wallet/internal/ratelimit"
	"github.com/dtroode/subspace-wallet/internal/repository/postgres"
	"github.com/dtroode/subspace-wallet/internal/repository/sqlite"
	"github.com/dtroode/subspace-wallet/internal/server"
	"github.com/dtroode/subspace-wallet/internal/service"
	storage "github.com/dtroode/subspace-wallet/internal/storage/minio"
	"github.com/dtroode/subspace-wallet/internal/storage/sealed"
	"github.com/dtroode/subspace-wallet/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)

	kdf := keyprovider.KDFParams{Time: cfg.KDF.Time, MemKiB: cfg.KDF.MemKiB, Threads: cfg.KDF.Par}

	backend, closeStorage, err := openStorage(ctx, cfg)
	if err != nil {
		logger.Fatal("failed to initialize storage", "driver", cfg.Storage.Driver, "error", err)
	}
	defer closeStorage()

	var walletStorage model.Storage = backend
	if cfg.Storage.Secret != "" {
		walletStorage, err = sealed.New(backend, cfg.Storage.Secret, kdf)
		if err != nil {
			logger.Fatal("failed to initialize sealed storage", "error", err)
		}
	}

	walletMetrics := metrics.New()
	tokenManager := token.NewJWT(cfg.JWT.Secret, cfg.JWT.TTL)

	wallet := service.NewWallet(
		walletStorage,
		keyprovider.New(kdf),
		tokenManager,
		walletMetrics,
		logger.Component("wallet"),
	)

	profile, err := wallet.Init(ctx, model.ProfileOptions{
		Name:       cfg.Profile.Name,
		Email:      cfg.Profile.Email,
		Passphrase: cfg.Profile.Passphrase,
	})
	if err != nil {
		logger.Fatal("failed to initialize wallet", "error", err)
	}
	logger.Info("wallet ready", "profile_id", profile.ID)

	var limiter middleware.Limiter
	if l := ratelimit.New(cfg.GRPC.UnlockRate, cfg.GRPC.UnlockBurst, 0); l != nil {
		limiter = l
	}

	servers := []model.Server{
		registerGRPCServer(logger.Component("grpc"), wallet, limiter, grpcctx.NewManager(), fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}
	if cfg.Metrics.Addr != "" {
		servers = append(servers, metrics.NewServer(cfg.Metrics.Addr, walletMetrics.Registry()))
	}

	var sl model.SecurityLayer

	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	var wg sync.WaitGroup
	for _, srv := range servers {
		wg.Add(1)
		go func(s model.Server) {
			defer wg.Done()
			logger.Info("Starting server on", "address", s.Address())
			err := s.Start(sl)
			if err != nil {
				logger.Error("failed to start server", "error", err, "address", s.Address())
			}
		}(srv)
	}

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	for _, srv := range servers {
		if err := srv.Stop(shutdownCtx); err != nil {
			logger.Error("error during server shutdown", "error", err, "address", srv.Address())
		}
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

// openStorage connects the backend selected by STORAGE_DRIVER.
func openStorage(ctx context.Context, cfg *config.Config) (model.Storage, func() error, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewEntryRepository(db), db.Close, nil
	case config.DriverMinio:
		minioClient, err := minio.New(cfg.Minio.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(cfg.Minio.AccessKey, cfg.Minio.SecretKey, ""),
			Secure: cfg.Minio.UseSSL,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("failed to create minio client: %w", err)
		}
		client, err := storage.NewClient(ctx, minioClient, cfg.Minio.Bucket)
		if err != nil {
			return nil, nil, err
		}
		return client, func() error { return nil }, nil
	default:
		repo, err := sqlite.Open(ctx, cfg.Storage.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	}
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}

func registerGRPCServer(
	logger *logger.Logger,
	wallet *service.Wallet,
	limiter middleware.Limiter,
	ctxMgr model.ContextManager,
	addr string,
) *grpcServer.GRPCServer {
	r := router.New(wallet, limiter, ctxMgr, logger)
	s := r.Register()

	reflection.Register(s)

	return grpcServer.NewGRPCServer(s, addr)
}
