//go:build !cli
// +build !cli

package main

import (
	"context"
	"log"
	"math/rand"
	"strconv"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"sixgo.GO/api"
	_ "sixgo.GO/api/products"
	_ "sixgo.GO/api/resources"
	_ "sixgo.GO/api/session"
	"sixgo.GO/client"
	"sixgo.GO/config"
	"sixgo.GO/core/auth"
	corecache "sixgo.GO/core/cache"
	"sixgo.GO/cron"
	_ "sixgo.GO/custom"
	"sixgo.GO/localstore"
	"sixgo.GO/products"
	"sixgo.GO/resources"
	"sixgo.GO/session"
)

func main() {
	config.LoadEnv()
	config.LoadAppConfig()

	// Initialize Redis
	config.InitRedis()
	redisStatus := "Redis not configured, slot storage falls back to SQLite."
	if config.RedisClient != nil {
		err := config.RedisClient.Ping(config.RedisCtx()).Err()
		if err == nil {
			redisStatus = "Redis connection successful."
		} else {
			config.RedisClient = nil // Fall back if not reachable
			redisStatus = "Redis configured but not reachable, falling back to SQLite."
		}
	}
	log.Println(redisStatus)

	store, err := localstore.New()
	if err != nil {
		log.Fatalf("localstore: %v", err)
	}

	sessions := session.NewManager(store)
	upstream := config.GetUpstream()
	tokens := client.WithTokenSource(sessions)
	onAuthFailure := client.WithUnauthorizedHook(sessions.Clear)

	identity := client.New(func() string { return upstream.IdentityAPI }, tokens, onAuthFailure)
	sessions.SetIdentityClient(identity)
	resourceClient := client.New(func() string { return upstream.ResourceAPI }, tokens, onAuthFailure)
	adminClient := client.New(func() string { return upstream.AdminAPI }, tokens, onAuthFailure)

	resourceCache := resources.NewCache(store, resourceClient)
	orchestrator := products.NewOrchestrator(adminClient, corecache.NewCache())
	notes := products.NewNoteService(adminClient, orchestrator)

	// The applied filter set drives the search; every apply or external
	// overwrite re-runs it in the background.
	filters := products.NewFilterState()
	filters.OnChange(func(params products.FilterParams, _ products.Origin) {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()
			if _, err := orchestrator.Search(ctx, params); err != nil {
				log.Printf("search: %v", err)
			}
		}()
	})

	deps := &api.Deps{
		Session:   sessions,
		Resources: resourceCache,
		Search:    orchestrator,
		Filters:   filters,
		Notes:     notes,
	}

	cron.RegisterResourceRefresh(resourceCache)
	scheduler := cron.StartCron()
	defer scheduler.Stop()

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.Decompress())

	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start).Milliseconds()
			c.Response().Header().Set("X-Request-Duration-ms", strconv.FormatInt(duration, 10))
			return err
		}
	})

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(200, echo.Map{"status": "ok", "env": config.AppConfig.Env})
	})

	apiGroup := e.Group("/api")
	apiGroup.Use(auth.Middleware(sessions))
	api.ApplyModules(apiGroup, deps)
	api.ApplyRoutes(e, deps)

	// ASCII banner on start (random font each run)
	fonts := []string{"banner", "big", "block", "slant", "standard", "small", "shadow", "speed", "thick", "doom", "larry3d", "puffy", "rectangles"}
	fig := figure.NewFigure("6ixgo CS ->", fonts[rand.Intn(len(fonts))], true)
	fig.Print()

	port := config.AppConfig.Port
	if port == "" {
		port = "8080"
	}
	log.Printf("Console API on :%s (upstreams: %s)", port, upstream.AdminAPI)
	e.Logger.Fatal(e.Start(":" + port))
}
