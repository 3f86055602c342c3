package app

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"rebirth_backend/internal/config"
	"rebirth_backend/internal/controller"
	"rebirth_backend/internal/middleware"
	"rebirth_backend/internal/repository"
	"rebirth_backend/internal/service"
	"rebirth_backend/internal/worker"
	"rebirth_backend/pkg/database"
	"rebirth_backend/pkg/logger"
	"rebirth_backend/pkg/monitoring"
	"rebirth_backend/pkg/security"
	"rebirth_backend/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"
)

type App struct {
	Config          *config.Config
	Router          *gin.Engine
	Redis           *redis.Client
	Worker          *worker.Worker
	services        *services
	workerCancel    context.CancelFunc
	tracerProvider  *sdktrace.TracerProvider
	configCallbacks []func(*config.Config)
}

type repositories struct {
	kv    repository.KV
	state *repository.StateRepository
}

type services struct {
	storage      *service.StorageService
	streak       *service.StreakService
	achievement  *service.AchievementService
	checkin      *service.CheckinService
	economics    *service.EconomicsService
	goal         *service.GoalService
	user         *service.UserService
	notification *service.NotificationService
}

type controllers struct {
	streak       *controller.StreakController
	achievement  *controller.AchievementController
	checkin      *controller.CheckinController
	economics    *controller.EconomicsController
	goal         *controller.GoalController
	user         *controller.UserController
	notification *controller.NotificationController
	worker       *controller.WorkerController
	health       *controller.HealthController
}

func (a *App) RegisterConfigCallback(callback func(*config.Config)) {
	a.configCallbacks = append(a.configCallbacks, callback)
}

// ApplyConfig 热更新回调入口，按注册顺序执行
func (a *App) ApplyConfig(cfg *config.Config) {
	for _, cb := range a.configCallbacks {
		cb(cfg)
	}
}

func (a *App) initRepositories(cfg *config.Config, rdb *redis.Client) (*repositories, error) {
	kv, err := repository.NewKV(&cfg.State, rdb)
	if err != nil {
		return nil, err
	}
	return &repositories{
		kv:    kv,
		state: repository.NewStateRepository(kv),
	}, nil
}

func (a *App) initServices(repos *repositories, cfg *config.Config) *services {
	s := &services{}

	s.storage = service.NewStorageService(cfg)
	s.streak = service.NewStreakService(repos.state)
	s.achievement = service.NewAchievementService()
	s.checkin = service.NewCheckinService(repos.state)
	s.economics = service.NewEconomicsService(repos.state)
	s.goal = service.NewGoalService(repos.state, s.storage)
	s.user = service.NewUserService(repos.state)

	notifier := service.NewWebPushNotifier(repos.state, &cfg.Notifications)
	s.notification = service.NewNotificationService(repos.state, notifier, &cfg.Notifications)

	return s
}

func (a *App) initControllers(s *services, repos *repositories, w *worker.Worker) *controllers {
	return &controllers{
		streak:       controller.NewStreakController(s.streak, s.economics),
		achievement:  controller.NewAchievementController(s.achievement, s.streak),
		checkin:      controller.NewCheckinController(s.checkin, s.streak, s.achievement, s.notification),
		economics:    controller.NewEconomicsController(s.economics),
		goal:         controller.NewGoalController(s.goal),
		user:         controller.NewUserController(s.user),
		notification: controller.NewNotificationController(s.notification),
		worker:       controller.NewWorkerController(w),
		health:       controller.NewHealthController(repos.kv, w),
	}
}

// initWorker 组装离线缓存与通知调度的常驻执行体
func (a *App) initWorker(cfg *config.Config, rdb *redis.Client, repos *repositories, s *services) (*worker.Worker, error) {
	var store worker.CacheStore
	if rdb != nil {
		store = worker.NewRedisCacheStore(rdb)
	} else {
		store = worker.NewMemoryCacheStore()
	}

	fetcher, err := worker.NewOriginFetcher(cfg.Cache.OriginURL, cfg.Cache.FetchTimeout)
	if err != nil {
		return nil, err
	}

	cache := worker.NewCacheManager(
		worker.Generation{Version: cfg.Cache.Version},
		store,
		fetcher,
		cfg.Cache.StaticAssets,
		cfg.Cache.DynamicRoutes,
		logger.Log,
	)

	w := worker.New(cache, repos.state, s.notification.DisplayScheduled, logger.Log)
	s.notification.AttachWorker(w)
	return w, nil
}

func (a *App) setupMiddlewares(router *gin.Engine, cfg *config.Config) {
	router.Use(security.CORS(cfg.CORS.AllowedOrigins))
	router.Use(security.Secure())
	router.Use(security.RateLimiter(cfg.RateLimit.MaxRequests, time.Duration(cfg.RateLimit.WindowMinutes)*time.Minute))

	// 分布式追踪中间件
	if cfg.Tracing.Enabled {
		router.Use(tracing.GinMiddleware())
	}

	router.Use(monitoring.MetricsMiddleware())
}

func NewApp(cfg *config.Config) *App {
	logger.InitLogger(cfg)

	logger.Log.Info("Logger initialized successfully")

	var rdb *redis.Client
	if cfg.State.Type == "redis" {
		var err error
		rdb, err = database.InitRedis(&cfg.Redis)
		if err != nil {
			logger.Log.Fatal("Failed to initialize redis", zap.Error(err))
			log.Fatalf("Failed to initialize redis: %v", err)
		}
	}

	app := &App{
		Config: cfg,
		Redis:  rdb,
	}

	repos, err := app.initRepositories(cfg, rdb)
	if err != nil {
		logger.Log.Fatal("Failed to initialize state store", zap.Error(err))
		log.Fatalf("Failed to initialize state store: %v", err)
	}

	services := app.initServices(repos, cfg)
	app.services = services

	w, err := app.initWorker(cfg, rdb, repos, services)
	if err != nil {
		logger.Log.Fatal("Failed to initialize worker", zap.Error(err))
		log.Fatalf("Failed to initialize worker: %v", err)
	}
	app.Worker = w

	controllers := app.initControllers(services, repos, w)

	// 监控初始化
	monitoring.Init()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	app.Router = router

	app.setupMiddlewares(router, cfg)

	if cfg.Tracing.Enabled {
		tp, err := tracing.InitTracer("rebirth-backend", cfg.Tracing.CollectorEndpoint)
		if err != nil {
			logger.Log.Fatal("Failed to initialize tracing", zap.Error(err))
		}
		app.tracerProvider = tp
	}

	// worker 先启动：安装缓存、清理旧代、重排每日提醒，然后才接收请求
	workerCtx, cancel := context.WithCancel(context.Background())
	app.workerCancel = cancel
	w.Start(workerCtx)

	// 非API路径交给离线缓存层
	router.Use(middleware.CacheMiddleware(w, w.Cache))

	app.registerRoutes(router, controllers, cfg)

	if cfg.Storage.Type == "local" {
		router.Static("/uploads", cfg.Storage.LocalPath)
	}

	// 配置热更新：推送凭据可以不重启生效，提醒定时器按各设备偏好重排
	app.RegisterConfigCallback(func(next *config.Config) {
		cfg.Notifications.VAPIDPublicKey = next.Notifications.VAPIDPublicKey
		cfg.Notifications.VAPIDPrivateKey = next.Notifications.VAPIDPrivateKey
		cfg.Notifications.Subscriber = next.Notifications.Subscriber

		ctx := context.Background()
		for _, device := range repos.state.Devices(ctx) {
			settings := repos.state.NotificationSettings(ctx, device)
			if settings.DailyCheckin && repos.state.PermissionGranted(ctx, device) {
				w.RearmDailyCheckin(device, settings)
			}
		}
		logger.Log.Info("config reloaded, notification timers rearmed")
	})

	return app
}

func (a *App) Run() {
	srv := &http.Server{
		Addr:    ":" + a.Config.Server.Port,
		Handler: a.Router,
	}

	// 启动服务器
	go func() {
		log.Printf("Server running on port %s", a.Config.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// 等待中断信号优雅地关闭服务器（设置5秒的超时时间）
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// 停掉 worker 的定时器和消息循环
	if a.workerCancel != nil {
		a.workerCancel()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	if a.tracerProvider != nil {
		if err := a.tracerProvider.Shutdown(context.Background()); err != nil {
			logger.Log.Error("Failed to shutdown tracer provider", zap.Error(err))
		}
	}

	log.Println("Server exiting")
}
