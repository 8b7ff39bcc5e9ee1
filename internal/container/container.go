package container

import (
	"context"

	"github.com/olumbah1/alx-project-nexus/internal/config"
	"github.com/olumbah1/alx-project-nexus/internal/repository"
	"github.com/olumbah1/alx-project-nexus/internal/service"
	"github.com/olumbah1/alx-project-nexus/internal/service/auth"
	"github.com/olumbah1/alx-project-nexus/pkg/database"
	"github.com/olumbah1/alx-project-nexus/pkg/logger"
	"github.com/olumbah1/alx-project-nexus/pkg/redis"
)

// Container holds all application dependencies
type Container struct {
	Config      *config.Config
	Logger      *logger.Logger
	DB          *database.PostgresDB
	RedisClient *redis.Client

	Cache         *service.CacheService
	Auth          service.AuthService
	Polls         *service.PollService
	Voting        *service.VotingService
	Taxonomy      *service.TaxonomyService
	Notifications *service.NotificationService
}

/// New creates the dependency injection container: storage, cache, and every
// service, wired bottom-up.
func New(ctx context.Context, cfg *config.Config, log *logger.Logger) (*Container, error) {
	db, err := database.NewPostgresDB(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		return nil, err
	}

	// The cache is optional; boot proceeds without it
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := redis.NewClient(cfg.RedisURL, cfg.Environment, log.Logger)
		if err != nil {
			log.WithError(err).Warn("Failed to initialize Redis client, proceeding without caching")
		} else {
			redisClient = client
			log.Info("Redis client initialized successfully")
		}
	} else {
		log.Info("Redis URL not configured, proceeding without caching")
	}

	pollRepo := repository.NewPollRepository(db)
	voteRepo := repository.NewVoteRepository(db)
	userRepo := repository.NewUserRepository(db)
	notifRepo := repository.NewNotificationRepository(db)
	taxRepo := repository.NewTaxonomyRepository(db)

	cache := service.NewCacheService(redisClient, cfg.CacheTTL, log.Logger)
	emailSender := &service.LogEmailSender{Logger: log.Logger}

	notifications := service.NewNotificationService(notifRepo, userRepo, emailSender, log.Logger)
	authService := auth.NewService(userRepo, redisClient, emailSender, cfg.JWTSecret, cfg.AccessTokenTTL, cfg.RefreshTokenTTL, log)
	polls := service.NewPollService(pollRepo, taxRepo, cache, notifications, log.Logger)
	voting := service.NewVotingService(pollRepo, voteRepo, cache, notifications, log.Logger)
	taxonomy := service.NewTaxonomyService(taxRepo, cache, log.Logger)

	return &Container{
		Config:        cfg,
		Logger:        log,
		DB:            db,
		RedisClient:   redisClient,
		Cache:         cache,
		Auth:          authService,
		Polls:         polls,
		Voting:        voting,
		Taxonomy:      taxonomy,
		Notifications: notifications,
	}, nil
}

// Close releases the container's storage connections
func (c *Container) Close() error {
	var redisErr error
	if c.RedisClient != nil {
		redisErr = c.RedisClient.Close()
	}
	if c.DB != nil {
		c.DB.Close()
	}
	return redisErr
}
