package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/game"
	"trivia-quiz-service/internal/infra/memory"
	pgstore "trivia-quiz-service/internal/infra/postgres"
	redisstore "trivia-quiz-service/internal/infra/redis"
	"trivia-quiz-service/internal/seed"
	transport "trivia-quiz-service/internal/transport/http"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the trivia server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := pgstore.Seed(ctx, pool); err != nil {
			return err
		}
	}

	var players game.PlayerRepository
	var questions game.QuestionRepository
	var games game.GameRepository
	if pool != nil {
		players = pgstore.NewPlayerStore(pool)
		questionTTL := config.TTLDuration(cfg.Questions.CacheTTL, time.Minute)
		questions = memory.NewQuestionCache(pgstore.NewQuestionStore(pool), questionTTL)
		games = pgstore.NewGameStore(pool)
	} else {
		players = memory.NewPlayerStore(seed.Aliases()...)
		questions = memory.NewQuestionStore(seed.Questions()...)
		games = memory.NewGameStore()
	}

	leaderboardTTL := config.TTLDuration(cfg.Leaderboard.TTL, 10*time.Second)
	var leaderboard game.LeaderboardCache
	if cfg.Redis.Addr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer client.Close()
		leaderboard = redisstore.NewLeaderboardCache(client, leaderboardTTL)
	} else {
		leaderboard = memory.NewLeaderboardCache(leaderboardTTL)
	}

	service := game.NewGameService(players, questions, games, leaderboard)
	router := transport.NewRouter(transport.NewHandler(service))

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
