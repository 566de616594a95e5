package main

import (
	"context"

	"github.com/abhishek622/interviewdesk/internal/config"
	"github.com/abhishek622/interviewdesk/internal/handler"
	"github.com/abhishek622/interviewdesk/internal/logger"
	"github.com/abhishek622/interviewdesk/internal/repository"
	"github.com/abhishek622/interviewdesk/pkg/model"
	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"go.uber.org/zap"
)

type application struct {
	Logger     *zap.Logger
	Config     *config.Config
	Repository *repository.Repository
	Handler    *handler.Handler
}

func main() {
	ctx := context.Background()
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, _ := logger.NewLogger(cfg.Env)
	defer log.Sync()
	sugar := log.Sugar()
	sugar.Infof("config loaded, env=%s", cfg.Env)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	user := &model.Profile{ID: 1, Username: cfg.Sandbox.Username}
	repo := repository.NewRepository(nil)
	if cfg.Sandbox.Seed {
		if err := repo.Seed(ctx, user); err != nil {
			sugar.Fatal(err)
		}
	}

	h := handler.New(log, repo, handler.NewSessions(), handler.Options{})
	token := cfg.Sandbox.SessionToken
	if token == "" {
		token = h.Sessions.Issue(user)
	} else {
		h.Sessions.Add(token, user)
	}
	sugar.Infow("sandbox session issued", "username", user.Username, "sessionid", token)

	app := &application{
		Logger:     log,
		Config:     cfg,
		Repository: repo,
		Handler:    h,
	}

	if err := app.serve(); err != nil {
		sugar.Fatal(err)
	}
}
