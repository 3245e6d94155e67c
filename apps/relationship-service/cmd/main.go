package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-gonic/gin"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"social-graph/apps/relationship-service/cache"
	"social-graph/apps/relationship-service/consumer"
	"social-graph/apps/relationship-service/dao"
	"social-graph/apps/relationship-service/handler"
	"social-graph/apps/relationship-service/model"
	"social-graph/apps/relationship-service/notify"
	"social-graph/apps/relationship-service/service"
	"social-graph/pkg/logger"
	"social-graph/pkg/middleware"
	"social-graph/pkg/server"
	"social-graph/pkg/telemetry"
)

func main() {
	serviceName := "relationship-service"

	if err := telemetry.InitGlobal(telemetry.DefaultConfig(serviceName)); err != nil {
		log.Fatalf("Failed to initialize OpenTelemetry: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := telemetry.ShutdownGlobal(ctx); err != nil {
			log.Printf("Failed to shutdown OpenTelemetry: %v", err)
		}
	}()

	app := server.NewApplication(serviceName)

	app.EnableHTTP()
	app.EnableGRPC()

	postgreSQL := app.GetPostgreSQL()

	if err := postgreSQL.AutoMigrate(
		&model.User{},
		&model.FriendshipRequest{},
		&model.Friend{},
		&model.Follow{},
		&model.Block{},
	); err != nil {
		panic("Failed to migrate database: " + err.Error())
	}

	relationshipDAO := dao.NewRelationshipDAO(postgreSQL.GetDB())
	relCache := cache.NewRelationshipCache(cache.NewRedisStore(app.GetRedisClient()))
	bus := notify.NewKafkaBus(app.GetKafkaProducer(), app.GetConfig().Kafka.Topic)

	relationshipService := service.NewService(relationshipDAO, relCache, bus, app.GetLogger())

	// Consume our own event topic for notification delivery.
	serviceLogger := app.GetLogger()
	eventConsumer := consumer.NewEventConsumer(serviceLogger)
	eventConsumer.On(model.EventRequestCreated, func(ctx context.Context, event notify.Event) {
		serviceLogger.Info(ctx, "Delivering friendship request notification",
			logger.F("requestID", event.RequestID),
			logger.F("recipientID", event.TargetID))
	})
	eventConsumer.On(model.EventRequestAccepted, func(ctx context.Context, event notify.Event) {
		serviceLogger.Info(ctx, "Delivering friendship accepted notification",
			logger.F("requestID", event.RequestID),
			logger.F("recipientID", event.TargetID))
	})
	kafkaCfg := app.GetConfig().Kafka
	go func() {
		if err := eventConsumer.Start(context.Background(), kafkaCfg.Brokers, kafkaCfg.GroupID, kafkaCfg.Topic); err != nil {
			serviceLogger.Error(context.Background(), "Event consumer failed",
				logger.F("error", err.Error()))
		}
	}()

	otelMW := middleware.NewOTelMiddleware(serviceName, app.GetLogger())

	httpHandler := handler.NewHTTPHandler(relationshipService, app.GetLogger())

	app.RegisterHTTPRoutes(func(engine *gin.Engine) {
		engine.Use(otelMW.GinMiddleware())

		httpHandler.RegisterRoutes(engine)
	})

	app.RegisterGRPCService(func(grpcSrv *grpc.Server) {
		healthpb.RegisterHealthServer(grpcSrv, health.NewServer())
	})

	if err := app.Run(); err != nil {
		panic(err)
	}
}
