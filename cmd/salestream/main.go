package main

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"salestream/internal/clock"
	"salestream/internal/config"
	"salestream/internal/gen"
	httpx "salestream/internal/http"
	"salestream/internal/sink"
	"salestream/internal/stats"
	"salestream/internal/stream"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.New()
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Info().Int64("seed", seed).Msg("rng seeded")
	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	fake := gofakeit.New(uint64(seed))

	var sinks sink.Composite
	if cfg.ConsoleEnabled {
		sinks = append(sinks, sink.NewConsole(os.Stdout))
	}
	if cfg.EventLogPath != "" {
		fs, err := sink.NewFile(cfg.EventLogPath)
		if err != nil {
			log.Fatal().Err(err).Msg("event log")
		}
		sinks = append(sinks, fs)
	}
	if cfg.KafkaEnabled {
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaTopic).Msg("kafka sink enabled")
		sinks = append(sinks, sink.NewKafka(cfg.KafkaBrokers, cfg.KafkaTopic))
	}
	if cfg.AmqpEnabled {
		log.Info().Str("queue", cfg.AmqpQueue).Msg("amqp sink enabled")
		sinks = append(sinks, sink.NewAMQP(cfg.AmqpURL, cfg.AmqpQueue))
	}

	hub := stream.NewHub()
	var srv *http.Server
	if cfg.HTTPEnabled {
		sinks = append(sinks, hub)
		srv = &http.Server{Addr: ":" + cfg.Port, Handler: httpx.Router(cfg, hub)}
		go func() {
			log.Info().Str("addr", srv.Addr).Msg("live view listening")
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Fatal().Err(err).Msg("server")
			}
		}()
	}

	clk := clock.Real{}
	collector := stats.NewCollector(clk.Now())
	factory := gen.NewFactory(rng, fake, clk)
	life := gen.NewLifecycle(rng)
	sched := gen.NewScheduler(gen.Options{
		Duration: cfg.Duration,
		MinDelay: cfg.MinDelay,
		MaxDelay: cfg.MaxDelay,
	}, rng, clk, factory, life, sinks, collector, log.Logger)

	runErr := sched.Run(ctx)

	fmt.Print(collector.Summary(clk.Now()))

	if err := sinks.Close(); err != nil {
		log.Warn().Err(err).Msg("sink close")
	}
	if srv != nil {
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}
	if runErr != nil {
		log.Fatal().Err(runErr).Msg("generator defect")
	}
}
