package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/joho/godotenv"

	"github.com/wtech/user-platform/config"
	"github.com/wtech/user-platform/internal/application"
	"github.com/wtech/user-platform/internal/domain/repository"
	dynamorepo "github.com/wtech/user-platform/internal/infrastructure/dynamodb"
	"github.com/wtech/user-platform/internal/infrastructure/rediscache"
	"github.com/wtech/user-platform/pkg/helpers"
)

// Seeds a demo user into the configured stores and prints a usable bearer
// token for it.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	client, err := dynamorepo.NewClient(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create dynamodb client: %v", err)
	}

	var tokens repository.TokenRepository
	switch cfg.TokenStore {
	case "redis":
		tokens = rediscache.NewTokenRepository(helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB))
	default:
		tokens = dynamorepo.NewTokenRepository(client, cfg.TokenTableName)
	}

	svc := application.NewService(
		dynamorepo.NewUserRepository(client, cfg.UserTableName),
		tokens,
		helpers.NewJWTManager(cfg.JWTSecret),
		helpers.NewBcryptEncoder(cfg.BcryptCost),
		cfg.TokenExpiryHours,
		logger,
	)

	if es, esErr := helpers.NewESClient(cfg); esErr == nil {
		svc.ES = es
		svc.ESUsersIndex = cfg.ESUsersIndex
	}
	if cfg.MailSendEnabled {
		pub, pubErr := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if pubErr != nil {
			log.Printf("rabbitmq unavailable, welcome mail skipped: %v", pubErr)
		} else {
			defer pub.Close()
			svc.Rabbit = pub
		}
	}

	req := application.RegisterRequest{
		Email:    "demo@example.com",
		Password: "DemoPass1",
		Name:     "Demo User",
	}
	user, err := svc.Register(ctx, req)
	if err != nil && !errors.Is(err, application.ErrEmailAlreadyExists) {
		log.Fatalf("failed to seed user: %v", err)
	}
	if err == nil {
		fmt.Printf("seeded user: id=%s email=%s name=%s\n", user.ID, user.Email, user.Name)
	} else {
		fmt.Printf("user %s already seeded\n", req.Email)
	}

	auth, err := svc.Login(ctx, application.LoginRequest{Email: req.Email, Password: req.Password})
	if err != nil {
		log.Fatalf("failed to log in seeded user: %v", err)
	}
	fmt.Printf("token for %s (expires %s):\n%s\n", auth.UserID, auth.ExpiresAt.Format(time.RFC3339), auth.Token)
}
