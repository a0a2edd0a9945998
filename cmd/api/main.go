package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	_ "github.com/MrKriegler/motor-rating/docs"
	"github.com/MrKriegler/motor-rating/internal/core"
	transporthttp "github.com/MrKriegler/motor-rating/internal/http"
	"github.com/MrKriegler/motor-rating/internal/http/handlers"
	"github.com/MrKriegler/motor-rating/internal/http/health"
	"github.com/MrKriegler/motor-rating/internal/platform/config"
	"github.com/MrKriegler/motor-rating/internal/platform/logging"
	"github.com/MrKriegler/motor-rating/internal/store/dynamo"
	"github.com/MrKriegler/motor-rating/internal/store/mongo"
)

// @title Motor Rating API
// @version 1.0
// @description Premium rating service for motor insurance quotes.
// @BasePath /api/v1
func main() {
	cfg := config.MustLoad()
	log := logging.New(cfg.Env)
	slog.SetDefault(log)

	ctx := context.Background()
	opTimeout := time.Duration(cfg.MongoOpTimeoutMs) * time.Millisecond

	var (
		gateway core.ReferenceDataGateway
		odRates core.ODRateTable
		tpRates core.TPRateTable
		paRates core.PARateTable
		covers  core.CoverRateTable
		addons  core.AddonRateTable
		pinger  health.Pinger
	)

	switch cfg.DBType {
	case "dynamodb":
		log.Info("connecting to DynamoDB", "region", cfg.AWSRegion, "endpoint", cfg.DynamoDBEndpoint)
		client, err := dynamo.NewClient(ctx, dynamo.Config{
			Region:          cfg.AWSRegion,
			Endpoint:        cfg.DynamoDBEndpoint,
			AccessKeyID:     cfg.AWSAccessKeyID,
			SecretAccessKey: cfg.AWSSecretAccessKey,
		})
		if err != nil {
			log.Error("failed to connect to DynamoDB", "err", err)
			os.Exit(1)
		}
		if err := dynamo.EnsureTables(ctx, client.DB, log); err != nil {
			log.Error("failed to ensure DynamoDB tables", "err", err)
			os.Exit(1)
		}
		gateway = dynamo.NewReferenceRepo(client.DB)
		odRates = dynamo.NewODRateRepo(client.DB)
		tpRates = dynamo.NewTPRateRepo(client.DB)
		paRates = dynamo.NewPARateRepo(client.DB)
		covers = dynamo.NewCoverRuleRepo(client.DB)
		addons = dynamo.NewAddonRepo(client.DB)
		pinger = client

	default:
		log.Info("connecting to MongoDB", "db", cfg.MongoDB)
		client, err := mongo.NewClient(cfg)
		if err != nil {
			log.Error("failed to connect to MongoDB", "err", err)
			os.Exit(1)
		}
		defer client.Close(context.Background())

		gateway = mongo.NewReferenceRepo(client.DB, opTimeout)
		odRates = mongo.NewODRateRepo(client.DB, opTimeout)
		tpRates = mongo.NewTPRateRepo(client.DB, opTimeout)
		paRates = mongo.NewPARateRepo(client.DB, opTimeout)
		covers = mongo.NewCoverRuleRepo(client.DB, opTimeout)
		addons = mongo.NewAddonRepo(client.DB, opTimeout)
		pinger = client
	}

	breakin := core.NewBreakInResolver(gateway)
	od := core.NewOwnDamageEngine(gateway, odRates, covers)
	tp := core.NewThirdPartyEngine(gateway, tpRates, paRates, covers)
	addonEngine := core.NewAddonEngine(addons)
	quotes := core.NewQuoteService(gateway, breakin, od, tp, addonEngine, log)

	router := transporthttp.NewRouter(transporthttp.Deps{
		APIKey:         cfg.APIKey,
		AllowedOrigins: cfg.AllowedOrigins,
		RateLimitRPM:   cfg.RateLimitRPM,
		RequestTimeout: time.Duration(cfg.HTTPRequestTimeoutSec) * time.Second,
		Health:         health.New(log, pinger, 2*time.Second),
		Mounts: []handlers.Mountable{
			handlers.NewQuoteHandler(quotes, log),
		},
	})

	addr := fmt.Sprintf(":%s", cfg.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTPReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTPWriteTimeoutSec) * time.Second,
		IdleTimeout:  time.Duration(cfg.HTTPIdleTimeoutSec) * time.Second,
	}

	log.Info("server listening", "addr", addr, "env", cfg.Env, "db", cfg.DBType)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}
