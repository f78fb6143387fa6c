package main

import (
	"flag"
	"log"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	"github.com/emandor/studybuddy_service/internal/auth"
	"github.com/emandor/studybuddy_service/internal/cache"
	"github.com/emandor/studybuddy_service/internal/config"
	"github.com/emandor/studybuddy_service/internal/db"
	"github.com/emandor/studybuddy_service/internal/middleware"
	"github.com/emandor/studybuddy_service/internal/study"
	"github.com/emandor/studybuddy_service/internal/telemetry"
	"github.com/emandor/studybuddy_service/internal/ws"
)

func main() {
	doMigrate := flag.Bool("migrate", false, "run migrations and exit")
	flag.Parse()

	cfg := config.Load()
	sqlxDB := db.MustConnect(cfg.DBDSN)
	rdb := cache.MustConnect(cfg.RedisAddr, cfg.RedisDB)

	tlog := telemetry.Init(telemetry.FromEnv(config.GetEnv))
	tlog.Info().Str("port", cfg.AppPort).Msg("booting studybuddy_service")

	if *doMigrate {
		db.MustMigrate(sqlxDB)
		log.Println("migrations done")
		return
	}

	app := fiber.New()

	app.Use(middleware.RequestID())
	app.Use(middleware.Recover())
	app.Use(middleware.CORS(cfg))
	app.Use(middleware.RequestLog())
	app.Use(middleware.SecureHeaders())

	authReg := auth.NewRegistry(cfg, sqlxDB, rdb)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	app.Get("/api/v1/auth/google/login", authReg.GoogleLogin)
	app.Get("/api/v1/auth/google/callback", authReg.GoogleCallback)

	sh := study.NewHandler(cfg, sqlxDB)

	ai := app.Group("/api/v1/ai", middleware.OptionalAuthSession(authReg))
	ai.Post("/explain", sh.Generate(study.KindExplain))
	ai.Post("/summarize", sh.Generate(study.KindSummarize))
	ai.Post("/quiz", sh.Generate(study.KindQuiz))
	ai.Post("/flashcards", sh.Generate(study.KindFlashcards))

	protected := app.Group("/api/v1", middleware.AuthSession(authReg))
	protected.Post("/auth/logout", authReg.Logout)
	protected.Get("/me", authReg.Me)
	protected.Get("/history", sh.ListHistory)

	app.Get("/ws", websocket.New(ws.HandleWS))

	log.Fatal(app.Listen(":" + cfg.AppPort))
}
