package main

import (
	"events-discovery/config"
	"events-discovery/data/repository"
	"events-discovery/discovery"
	"flag"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
)

type application struct {
	Config *config.Config
	Repo   repository.DBRepo
	Engine *discovery.Engine
}

func main() {
	configPath := flag.String("config", "config.yaml", "path to the YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath, ".env")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	setupLogging(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		log.Fatal(err)
	}

	app := &application{
		Config: cfg,
		Engine: discovery.New(discovery.SystemClock{Location: loc}),
	}

	db, err := app.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to db: %v", err)
	}
	defer db.Close()

	app.Repo = &repository.SqlRepo{DB: db}

	if err = app.Repo.RunMigrations(cfg.DBName); err != nil {
		log.Fatal(err.Error())
	}

	srv := &http.Server{
		Addr:              cfg.Listen,
		Handler:           app.routes(),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       time.Minute,
	}

	log.WithFields(log.Fields{"addr": cfg.Listen, "timezone": cfg.Timezone}).Info("starting server")
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatal(err)
	}
}

func setupLogging(level string) {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		log.WithField("level", level).Warn("unknown log level, using info")
		lvl = log.InfoLevel
	}
	log.SetLevel(lvl)
}
