package app

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"newsboard/internal/client"
	"newsboard/internal/config"
	"newsboard/internal/database"
	"newsboard/internal/repository"
	"newsboard/internal/repository/memory"
	"newsboard/internal/service"
	"newsboard/internal/session"
	"newsboard/internal/storage"
	"newsboard/internal/web"
)

// App wires the Content API store and services. db is nil for the memory driver.
func App(cfg *config.Config, log logrus.FieldLogger) (*database.DB, *repository.Repository, *service.Service, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		log.Warn("using the in-memory store, data is lost on restart")
		repo := memory.NewRepository()
		return nil, repo, service.NewService(repo), nil

	case config.StoreDriverPostgres:
		db, err := database.ConnectDB(cfg, log)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := repository.NewRepository(db.DB)
		return db, repo, service.NewService(repo), nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.StoreDriver)
	}
}

// WebApp wires the presentation server. The returned func releases the session store.
func WebApp(cfg *config.Config, log logrus.FieldLogger) (*web.Server, func() error, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	closeFn := func() error { return nil }

	var store session.Store
	switch cfg.Web.SessionStore {
	case config.SessionStoreRedis:
		redisStore, err := session.NewRedisStore(ctx, cfg.Redis, cfg.Web.SessionTTL)
		if err != nil {
			return nil, nil, err
		}
		store = redisStore
		closeFn = redisStore.Close
	case config.SessionStoreMemory:
		store = session.NewMemoryStore(cfg.Web.SessionTTL)
	default:
		return nil, nil, fmt.Errorf("unknown SESSION_STORE %q", cfg.Web.SessionStore)
	}

	if cfg.Web.SessionSecret == "" {
		log.Warn("SESSION_SECRET is not set, sessions will not survive a restart")
	}
	signer, err := session.NewSigner(cfg.Web.SessionSecret, cfg.Web.SessionTTL)
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	apiLocation, err := time.LoadLocation(cfg.Web.APITimeZone)
	if err != nil {
		closeFn()
		return nil, nil, fmt.Errorf("invalid API_TIME_ZONE %q: %w", cfg.Web.APITimeZone, err)
	}

	var uploads storage.Storage
	uploadsDir := ""
	switch cfg.Web.UploadBackend {
	case config.UploadBackendMinIO:
		minioClient, err := storage.NewMinIOClient(ctx, cfg.MinIO)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		uploads = minioClient
	case config.UploadBackendLocal:
		local, err := storage.NewLocalStorage(cfg.Web.UploadsDir)
		if err != nil {
			closeFn()
			return nil, nil, err
		}
		uploads = local
		uploadsDir = local.Dir()
	default:
		closeFn()
		return nil, nil, fmt.Errorf("unknown UPLOAD_BACKEND %q", cfg.Web.UploadBackend)
	}

	server, err := web.NewServer(web.Options{
		API:           client.New(client.Config{BaseURL: cfg.Web.APIBaseURL, Timeout: cfg.Web.APITimeout}),
		Sessions:      session.NewManager(store, signer, cfg.Web.SessionTTL),
		Uploads:       uploads,
		UploadsDir:    uploadsDir,
		MemesDir:      cfg.Web.MemesDir,
		MaxUploadSize: cfg.MaxUploadSize,
		APILocation:   apiLocation,
		Log:           log,
	})
	if err != nil {
		closeFn()
		return nil, nil, err
	}

	return server, closeFn, nil
}
