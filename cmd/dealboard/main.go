package main

import (
	"database/sql"
	"os"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"DealBoard/internal/auth"
	"DealBoard/internal/catalog"
	"DealBoard/internal/mailing"
	"DealBoard/internal/review"
	"DealBoard/internal/sheets"
	"DealBoard/internal/track"
	"DealBoard/internal/web"
	"DealBoard/pkg/kit"
)

const defaultSheetID = "1FuWHFumP982YO29qJtDbdGYX8BvjtrWDB0Q0MIXWb9Q"

func main() {
	_ = godotenv.Load()

	service := "dealboard"
	log := kit.NewLogger(service)
	defer func() { _ = log.Sync() }()

	port := getenv("PORT", "5000")

	jwtSecret := os.Getenv("JWT_SECRET")
	if len(jwtSecret) < 32 {
		log.Fatal("JWT_SECRET is required and must be at least 32 chars")
	}

	fetcher := sheets.NewFetcher(
		getenv("SHEET_ID", defaultSheetID),
		getenv("SHEET_RANGE", sheets.DefaultRange),
		os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"),
		log,
	)

	cardStore := catalog.NewStore(fetcher, log)
	reviewStore := review.NewStore(review.DirProvider{Dir: getenv("REVIEWS_DIR", "content/reviews")})

	var (
		userStore auth.UserStore = auth.NewMemStore()
		mailStore mailing.Store  = mailing.NewMemStore()
	)
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		db, err := sql.Open("pgx", dsn)
		if err != nil {
			log.Fatal("open database failed", zap.Error(err))
		}
		userStore = auth.NewPostgresStore(db)
		mailStore = mailing.NewPostgresStore(db)
		log.Info("using postgres-backed user and mailing stores")
	}

	reg := prometheus.NewRegistry()

	deps := web.Deps{
		Catalog: &catalog.Server{Store: cardStore, Log: log},
		Reviews: &review.Server{Store: reviewStore, Log: log},
		Mailing: &mailing.Server{Store: mailStore, Log: log},
		Track:   &track.Server{Sink: track.NewSink(log, reg)},
		Auth: &auth.Server{
			Log:   log,
			Store: userStore,
			JWT:   auth.NewTokenMaker(jwtSecret),
		},
		SubscribeLimiter: kit.NewIPRateLimiter(
			getenvInt("RATE_LIMIT", 10),
			time.Duration(getenvInt("RATE_WINDOW_SECONDS", 60))*time.Second,
		),
	}

	h := web.NewHandler(deps, web.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: true,
		MetricsToken:   os.Getenv("METRICS_TOKEN"),
	})

	if err := kit.RunHTTPServer(":"+port, h, log); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
