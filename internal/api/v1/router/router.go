package router

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"oneflex/docs"
	"oneflex/internal/api/v1/handler"
	"oneflex/internal/config"
	"oneflex/internal/middleware"
	"oneflex/internal/pubsub"
	"oneflex/internal/repository"
	"oneflex/internal/service"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awsmiddleware "github.com/aws/smithy-go/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// Stores bundles the two repositories of the selected backend.
type Stores struct {
	Entitlements repository.EntitlementRepository
	Accounts     repository.AccountRepository
	close        func()
}

func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// OpenStores connects the backend named by cfg.StoreBackend.
func OpenStores(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*Stores, error) {
	switch cfg.StoreBackend {
	case "redis":
		rc, err := repository.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, cfg.RedisKeyPrefix)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("addr", cfg.RedisAddr).Msg("Redis connection successful")
		return &Stores{
			Entitlements: repository.NewRedisEntitlementRepo(rc),
			Accounts:     repository.NewRedisAccountRepo(rc),
			close:        func() { _ = rc.Close() },
		}, nil
	default:
		pool, err := repository.NewPostgresPool(ctx, cfg.DBConnectionString, cfg.Environment == "development")
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("Database connection successful")
		return &Stores{
			Entitlements: repository.NewEntitlementRepo(pool),
			Accounts:     repository.NewAccountRepo(pool),
			close:        pool.Close,
		}, nil
	}
}

// New builds the HTTP handler and returns a cleanup func for its clients.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (http.Handler, func(), error) {
	logger.Info().Str("environment", cfg.Environment).Str("store_backend", cfg.StoreBackend).Msg("App environment loaded")

	loc, err := cfg.Location()
	if err != nil {
		return nil, nil, err
	}

	jwtSecret, err := service.ResolveJWTSecret(ctx, cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve JWT secret: %w", err)
	}

	// 1. Stores
	stores, err := OpenStores(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	cleanups := []func(){stores.Close}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	// 2. Entitlement event publisher
	var publisher pubsub.Publisher = pubsub.NoopPublisher{}
	if cfg.PubSubEntitlementTopic != "" {
		p, err := pubsub.NewPublisher(ctx, cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		publisher = p
		cleanups = append(cleanups, func() { _ = p.Close() })
		logger.Info().
			Str("topic", cfg.PubSubEntitlementTopic).
			Str("emulator", cfg.PubSubEmulatorHost).
			Msg("Entitlement events enabled")
	}

	// 3. Wallet exporter
	var exporter service.WalletExporter
	if cfg.WalletExportEnabled() {
		s3Client, err := newS3Client(ctx, cfg)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		exporter = service.NewS3WalletExporter(s3Client, cfg.S3Bucket)
	}

	// 4. Validator
	validate := validator.New(validator.WithRequiredStructEnabled())

	// 5. Services & handlers
	catalog := service.NewPlanCatalog(cfg.Currency)
	entitlementSvc := service.NewEntitlementService(stores.Entitlements, logger)
	checkoutSvc := service.NewCheckoutService(catalog, service.SimulatedPayment{}, stores.Entitlements, stores.Accounts, publisher, cfg.PubSubEntitlementTopic, loc, logger)
	gate := service.NewAccessGate(entitlementSvc, logger)
	accountSvc := service.NewAccountService(stores.Accounts)
	walletSvc := service.NewWalletService(stores.Entitlements, stores.Accounts, exporter, cfg.Currency, loc, logger)

	planHandler := handler.NewPlanHandler(catalog, logger)
	subscriptionHandler := handler.NewSubscriptionHandler(checkoutSvc, entitlementSvc, validate, logger)
	accessHandler := handler.NewAccessHandler(gate, logger)
	accountHandler := handler.NewAccountHandler(accountSvc, validate, logger)
	walletHandler := handler.NewWalletHandler(walletSvc, logger)

	// 6. Middleware
	authMiddleware := middleware.AuthMiddleware(jwtSecret, logger)
	optionalAuthMiddleware := middleware.OptionalAuthMiddleware(jwtSecret, logger)
	adminOnly := middleware.AdminMiddleware(cfg.AdminAccountIDs, logger)
	adminMiddleware := func(next http.Handler) http.Handler { return authMiddleware(adminOnly(next)) }

	// 7. ServeMux router
	apiV1Mux := http.NewServeMux()
	planHandler.RegisterRoutes(apiV1Mux)
	subscriptionHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	accessHandler.RegisterRoutes(apiV1Mux, optionalAuthMiddleware)
	accountHandler.RegisterRoutes(apiV1Mux, authMiddleware)
	walletHandler.RegisterRoutes(apiV1Mux, adminMiddleware)

	mux := http.NewServeMux()
	mux.Handle("/v1/", http.StripPrefix("/v1", apiV1Mux))
	mux.HandleFunc("/swagger/doc.json", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(docs.SwaggerInfo.ReadDoc()))
	})
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	// Redirect /api/* to /v1/* for clients still on the old prefix
	mux.HandleFunc("/api/", func(w http.ResponseWriter, r *http.Request) {
		rest := strings.TrimPrefix(r.URL.Path, "/api/")
		http.Redirect(w, r, "/v1/"+rest, http.StatusMovedPermanently)
	})

	// 8. CORS
	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	return middleware.LoggerMiddleware(logger)(c.Handler(mux)), cleanup, nil
}

func newS3Client(ctx context.Context, cfg *config.Config) (*s3.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithAPIOptions([]func(*awsmiddleware.Stack) error{removeDisableGzip()}),
	}
	if cfg.S3AccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.S3AccessKey, cfg.S3SecretKey, "")))
	}
	s3Config, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("load S3 config: %w", err)
	}
	return s3.NewFromConfig(s3Config, func(o *s3.Options) {
		if cfg.S3URL != "" {
			o.BaseEndpoint = aws.String(cfg.S3URL)
			o.UsePathStyle = true
		}
	}), nil
}

// removeDisableGzip works around signature errors on some S3-compatible services.
// See: https://github.com/supabase/storage/issues/577
func removeDisableGzip() func(*awsmiddleware.Stack) error {
	return func(stack *awsmiddleware.Stack) error {
		if _, ok := stack.Finalize.Get("DisableAcceptEncodingGzip"); ok {
			_, err := stack.Finalize.Remove("DisableAcceptEncodingGzip")
			return err
		}
		return nil
	}
}
