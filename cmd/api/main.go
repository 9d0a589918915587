package main

import (
	"context"
	"log"
	"os"

	"Connect_Hub/internal/handler"
	"Connect_Hub/internal/pkg"
	"Connect_Hub/internal/repository/redis"
	"Connect_Hub/internal/router"
	"Connect_Hub/internal/service"
)

func main() {
	cfg := pkg.LoadConfig()

	if s := os.Getenv("JWT_ACCESS_SECRET"); s != "" {
		pkg.AccessSecret = []byte(s)
	}
	if s := os.Getenv("JWT_REFRESH_SECRET"); s != "" {
		pkg.RefreshSecret = []byte(s)
	}

	// 连接redis
	if err := redis.Init(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB); err != nil {
		panic(err)
	}
	defer redis.Close()

	// kafka 可选，没配 broker 就不发审核事件
	var events service.EventProducer
	if len(cfg.KafkaBrokers) > 0 {
		producer, err := pkg.NewKafkaProducer(pkg.KafkaConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		if err != nil {
			panic(err)
		}
		defer producer.Close()
		events = producer
	}

	emailSvc := service.NewEmailService(cfg.SMTP(), &redis.EmailRepository{})
	userSvc := service.NewUserService(&redis.UserRepository{}, emailSvc, cfg)

	// 加载集合并在首次运行播种
	contentSvc, err := service.NewContentService(context.Background(), &redis.PostRepository{}, &redis.CommunityRepository{}, events)
	if err != nil {
		panic(err)
	}

	r := router.InitRouter(router.Handlers{
		User:      handler.NewUserHandler(userSvc),
		Email:     handler.NewEmailHandler(emailSvc),
		Post:      handler.NewPostHandler(contentSvc, userSvc),
		Community: handler.NewCommunityHandler(contentSvc),
		Admin:     handler.NewAdminHandler(contentSvc),
	})

	if err := r.Run(cfg.Addr); err != nil {
		log.Fatal(err)
	}
}
