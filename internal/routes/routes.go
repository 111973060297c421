package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"elkarec/internal/controllers"
	"elkarec/internal/repositories"
	"elkarec/internal/services"
	"elkarec/pkg/config"
	"elkarec/pkg/middleware"
	"elkarec/pkg/service"
)

type Loggers struct {
	Main      *zap.Logger
	Auth      *zap.Logger
	Equipment *zap.Logger
}

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, loggers *Loggers, cfg *config.Config) {
	loggers.Main.Info("InitRouter: Начало создания маршрутов")

	// --- 1. РЕПОЗИТОРИИ ---
	txManager := repositories.NewTxManager(dbConn)
	userRepo := repositories.NewUserRepository(dbConn, loggers.Auth)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn, loggers.Equipment, cfg.Search.CaseInsensitive)
	historyRepo := repositories.NewEquipmentHistoryRepository(dbConn, loggers.Equipment)
	transitionRepo := repositories.NewStatusTransitionRepository(txManager, equipmentRepo, historyRepo, loggers.Equipment)

	// --- 2. СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, loggers.Auth, &cfg.Auth)
	equipmentService := services.NewEquipmentService(equipmentRepo, historyRepo, loggers.Equipment)
	statusService := services.NewEquipmentStatusService(transitionRepo, loggers.Equipment)
	exportService := services.NewEquipmentExportService(equipmentService, loggers.Equipment)

	// --- 3. КОНТРОЛЛЕРЫ ---
	authCtrl := controllers.NewAuthController(authService, loggers.Auth)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, statusService, exportService, loggers.Equipment)
	authMW := middleware.NewAuthMiddleware(jwtSvc, loggers.Auth)

	registerRoutes(e, authCtrl, equipmentCtrl, authMW, cfg.Auth, loggers.Main)

	loggers.Main.Info("InitRouter: Создание маршрутов завершено")
}

// registerRoutes отделён от InitRouter, чтобы маршруты можно было собрать на заглушках.
func registerRoutes(
	e *echo.Echo,
	authCtrl *controllers.AuthController,
	equipmentCtrl *controllers.EquipmentController,
	authMW *middleware.AuthMiddleware,
	authCfg config.AuthConfig,
	logger *zap.Logger,
) {
	e.HTTPErrorHandler = HTTPErrorHandler(logger)
	e.GET("/health", controllers.Health)

	api := e.Group("/api")

	loginLimiter := middleware.IPRateLimiter(authCfg.LoginRate, authCfg.LoginBurst, logger)
	runAuthRouter(api, authCtrl, authMW, loginLimiter)
	runEquipmentRouter(api, equipmentCtrl, authMW)
}
