package wire

import (
	"Newsroom/internal/api"
	"Newsroom/internal/api/config"
	"Newsroom/internal/api/handler"
	"Newsroom/internal/job"
	"Newsroom/internal/pkg/cron"
	"Newsroom/internal/pkg/es"
	"Newsroom/internal/pkg/identity"
	"Newsroom/internal/pkg/kafka"
	"Newsroom/internal/pkg/minio"
	"Newsroom/internal/pkg/mongo"
	"Newsroom/internal/repository"
	"Newsroom/internal/service"

	"github.com/gin-gonic/gin"
	mongoDriver "go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router       *gin.Engine
	DB           *gorm.DB
	KafkaManager *kafka.ConsumerManager
	CronMgr      *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongoDriver.Database, cfg *config.Config) (*ApplicationContainer, error) {
	// 仓储
	userRepo := repository.NewUserRepo(db)
	newsRepo := repository.NewNewsRepo(db)
	interactionRepo := repository.NewInteractionRepo(db)
	commentRepo := repository.NewCommentRepo(db)
	reportRepo := repository.NewReportRepo(db)
	counterRepo := repository.NewCounterRepo(db)
	cascadeRepo := repository.NewCascadeRepo(db)
	newsESRepo := es.NewNewsRepo(es.Client)
	adminLogRepo := mongo.NewAdminLogRepo(mongoDB)

	// 外部身份提供方未配置时只使用 token 声明
	var provider identity.Provider
	if cfg.Identity.BaseURL != "" {
		provider = identity.NewClient(cfg.Identity)
	}

	// 服务
	identityService := service.NewIdentityService(userRepo, provider)
	counterService := service.NewCounterService(counterRepo, newsRepo)
	cascadeService := service.NewCascadeService(cascadeRepo, userRepo, minio.NewAssetStore(), newsESRepo, counterService)
	interactionService := service.NewInteractionService(interactionRepo)
	commentService := service.NewCommentService(commentRepo, newsRepo, userRepo)
	newsService := service.NewNewsService(newsRepo, userRepo, interactionRepo, commentService, cascadeService, newsESRepo)
	userService := service.NewUserService(userRepo)
	reportService := service.NewReportService(reportRepo)
	adminService := service.NewAdminService(userRepo, adminLogRepo, reportService, cascadeService, counterService)

	handlers := &api.HandlersGroup{
		UserHandler:    handler.NewUserHandler(identityService, userService, newsService, cascadeService),
		NewsHandler:    handler.NewNewsHandler(newsService, interactionService),
		CommentHandler: handler.NewCommentHandler(commentService),
		ReportHandler:  handler.NewReportHandler(reportService),
		AdminHandler:   handler.NewAdminHandler(adminService),
	}

	router := api.SetupRouter(handlers, identityService, cfg.Server.AllowOrigins)

	kafkaMgr, err := kafka.NewConsumerManager(
		cfg,
		kafka.NewUserLifecycleHandler(identityService, cascadeService),
		kafka.NewNewsIngestHandler(newsService),
	)
	if err != nil {
		return nil, err
	}

	cronMgr := cron.NewCronManager(
		cfg.Cron,
		job.NewRecountJob(counterService),
		job.NewFullRecountJob(counterService),
	)

	return &ApplicationContainer{
		Router:       router,
		DB:           db,
		KafkaManager: kafkaMgr,
		CronMgr:      cronMgr,
	}, nil
}
