package infra

import (
	"github.com/crmlite/customers/internal/cache"
	"github.com/crmlite/customers/internal/handlers"
	"github.com/crmlite/customers/internal/middleware"
	"github.com/crmlite/customers/internal/repository"
	"github.com/crmlite/customers/internal/search"
	"github.com/crmlite/customers/internal/service"
	"github.com/crmlite/customers/internal/validation"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/go-redis/redis/v9"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"
)

// Router wires the v1 (postgres) and v2 (mongo) customer APIs over the
// shared search index and cache
func Router(pgPool *pgxpool.Pool, mongoClient *mongo.Client, esClient *elasticsearch.Client, redisClient *redis.Client, logger logrus.FieldLogger) (*echo.Echo, error) {
	e := echo.New()

	validator, err := validation.New()
	if err != nil {
		return nil, err
	}
	e.Validator = validator

	e.Use(middleware.RequestLogger(logger))

	// search index + sync
	custIndex := search.NewElasticCustomerIndex(esClient)

	// cache
	custCache := cache.NewRedisCustomerCache(redisClient)

	// repositories
	pgCustRepo := repository.NewPostgresCustomerRepository(pgPool)
	mongoCustRepo := repository.NewMongoCustomerRepository(mongoClient)

	// services
	custSrvV1 := service.NewCustomerService(pgCustRepo, custCache, custIndex, logger)
	custSrvV2 := service.NewCustomerService(mongoCustRepo, custCache, custIndex, logger)

	// handlers
	custHandlerV1 := handlers.NewCustomerHandler(custSrvV1)
	custHandlerV2 := handlers.NewCustomerHandler(custSrvV2)

	api := e.Group("/api")

	v1 := api.Group("/v1/customers")
	v1.GET("", custHandlerV1.GetAll)
	v1.GET("/:id", custHandlerV1.Get)
	v1.POST("", custHandlerV1.Post)
	v1.PUT("/:id", custHandlerV1.Update)
	v1.PATCH("/:id", custHandlerV1.Update)
	v1.DELETE("/:id", custHandlerV1.DeleteByID)
	v1.POST("/reindex", custHandlerV1.Reindex)

	v2 := api.Group("/v2/customers")
	v2.GET("", custHandlerV2.GetAll)
	v2.GET("/:id", custHandlerV2.Get)
	v2.POST("", custHandlerV2.Post)
	v2.PUT("/:id", custHandlerV2.Update)
	v2.PATCH("/:id", custHandlerV2.Update)
	v2.DELETE("/:id", custHandlerV2.DeleteByID)
	v2.POST("/reindex", custHandlerV2.Reindex)

	return e, nil
}
