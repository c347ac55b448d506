package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"cardmatch/internal/cluster"
	"cardmatch/internal/config"
	"cardmatch/internal/network"
	"cardmatch/internal/pubsub"
	"cardmatch/internal/session"

	"github.com/sirupsen/logrus"
)

func main() {
	// 1. CARREGA A CONFIGURAÇÃO
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("failed to load configuration")
	}

	logger, err := cfg.NewLogger(os.Stdout)
	if err != nil {
		logrus.WithError(err).Fatal("failed to configure logging")
	}
	log := logrus.NewEntry(logger).WithField("service", cfg.ServiceName)
	log.WithFields(logrus.Fields{
		"addr":        cfg.Addr(),
		"reset_delay": cfg.ResetDelay.String(),
		"rematch":     cfg.Rematch,
		"policy":      cfg.EmptyDeckPolicy,
	}).Info("configuration loaded")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := cluster.NewHealthAggregator()

	// 2. JOURNAL DE EVENTOS (opcional)
	var journal session.Journal
	if cfg.NATSURL != "" {
		nc, err := pubsub.BrokerConnect(cfg.NATSURL, cfg.ServiceName)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to nats")
		}
		publisher := pubsub.NewPublisher(nc, cfg.NATSSubjectPrefix, log)
		defer func() {
			if err := publisher.Close(); err != nil {
				log.WithError(err).Warn("nats drain failed")
			}
		}()
		health.AddCheck("nats", publisher.Check)
		journal = publisher
		log.WithField("subject", cfg.NATSSubjectPrefix).Info("publishing game events to nats")
	}

	// 3. SESSÃO E SERVIDOR DE REDE
	manager := session.NewManager(session.Options{
		ResetDelay:      cfg.ResetDelay,
		Rematch:         cfg.Rematch,
		EmptyDeckPolicy: cfg.Policy(),
		Journal:         journal,
		Logger:          log,
	})

	server := network.NewServer(manager, network.ServerOptions{
		SendBuffer: cfg.SendBuffer,
		StaticDir:  cfg.StaticDir,
		Health:     health.Handler(),
		Status:     func() any { return manager.Status() },
		Logger:     log,
	})

	// 4. REGISTRA O SERVIÇO NO CONSUL (opcional)
	if cfg.ConsulAddr != "" {
		client, err := cluster.NewConsulClient(cfg.ConsulAddr, log)
		if err != nil {
			log.WithError(err).Fatal("failed to connect to consul")
		}
		deregister, err := cluster.Register(client, cluster.Registration{
			ServiceName: cfg.ServiceName,
			Hostname:    cfg.Hostname(),
			Port:        cfg.Port,
		}, log)
		if err != nil {
			log.WithError(err).Fatal("failed to register in consul")
		}
		defer func() {
			if err := deregister(); err != nil {
				log.WithError(err).Warn("consul deregistration failed")
			}
		}()
		health.AddCheck("consul", cluster.LeaderCheck(client))
	}

	// 5. INICIA O SERVIDOR (bloqueia até SIGINT/SIGTERM)
	if err := server.Listen(ctx, cfg.Addr()); err != nil {
		log.WithError(err).Error("server stopped with error")
		return
	}
	log.Info("shutdown complete")
}
