package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"careerconnect/internal/auth"
	"careerconnect/internal/config"
	apphttp "careerconnect/internal/http"
	"careerconnect/internal/repository/sqlite"
	"careerconnect/internal/service"
	"careerconnect/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("invalid config: %v", err)
	}
	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		logger.SetLevel(level)
	} else {
		logger.Warnf("unknown log level %q, using info", cfg.Log.Level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	jobRepo := sqlite.NewJobRepository(db)
	uploadRepo := sqlite.NewUploadRepository(db)
	if err := sqlite.InitAll(ctx, userRepo, jobRepo, uploadRepo); err != nil {
		logger.Fatalf("init repositories: %v", err)
	}

	issuer, err := auth.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	if err != nil {
		logger.Fatalf("setup token issuer: %v", err)
	}
	hasher := auth.NewBcryptHasher(cfg.Auth.BcryptCost)

	storageSvc, uploadDir, err := buildStorage(ctx, cfg, logger)
	if err != nil {
		logger.Fatalf("setup storage: %v", err)
	}

	claims := service.NewUploadClaims(uploadRepo, storageSvc)
	authService := service.NewAuthService(userRepo, hasher, issuer, claims, logger)
	profileService := service.NewProfileService(userRepo, claims, storageSvc, logger)
	jobService := service.NewJobService(jobRepo, logger)
	uploadService := service.NewUploadService(storageSvc, cfg.Uploads.MaxBytes)

	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	router, err := apphttp.NewRouter(cfg.Server.TrustedProxies)
	if err != nil {
		logger.Fatalf("setup router: %v", err)
	}
	router.MaxMultipartMemory = cfg.Uploads.MaxBytes
	handler := apphttp.NewHandler(
		authService,
		profileService,
		jobService,
		uploadService,
		issuer,
		apphttp.Options{
			UploadDir: uploadDir,
			RateLimit: apphttp.RateLimit{RPS: cfg.RateLimit.RPS, Burst: cfg.RateLimit.Burst},
			Logger:    logger,
		},
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

// buildStorage returns the upload backend and, for the local driver, the
// directory to serve under /uploads.
func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, string, error) {
	if cfg.Uploads.Driver == config.UploadDriverLocal {
		local, err := storage.NewLocalService(cfg.Uploads.Dir, cfg.Uploads.PublicURL)
		if err != nil {
			return nil, "", err
		}
		logger.Infof("storing uploads in %s", local.Root())
		return local, local.Root(), nil
	}

	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, "", fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})

	svc, err := storage.NewS3Service(client, storage.S3Options{
		Bucket:    cfg.Storage.Bucket,
		KeyPrefix: cfg.Storage.KeyPrefix,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		return nil, "", err
	}
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return svc, "", nil
}
