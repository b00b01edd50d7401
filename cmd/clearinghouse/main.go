package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charging-platform/ochp-roaming/internal/clearinghouse"
	"github.com/charging-platform/ochp-roaming/internal/config"
	"github.com/charging-platform/ochp-roaming/internal/logger"
	"github.com/charging-platform/ochp-roaming/internal/message"
	"github.com/charging-platform/ochp-roaming/internal/metrics"
	"github.com/charging-platform/ochp-roaming/internal/server"
	"github.com/charging-platform/ochp-roaming/internal/storage"
)

func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	// 1. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// 2. 初始化日志
	log, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	log = log.With("node_id", cfg.NodeID)
	log.Info("Logger initialized")

	// 3. 初始化存储
	var stores *clearinghouse.Stores
	switch cfg.ClearingHouse.Store {
	case config.StoreRedis:
		client, err := storage.NewRedisClient(cfg.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		stores = clearinghouse.NewRedisStores(client, cfg.Redis.KeyPrefix)
		log.Infof("Redis stores initialized at %s", cfg.Redis.Addr)
	default:
		stores = clearinghouse.NewMemoryStores()
		log.Info("Memory stores initialized")
	}

	// 4. 初始化 Kafka 生产者(可选)
	var publisher clearinghouse.EventPublisher
	var producer *message.KafkaProducer
	if cfg.Kafka.Enabled {
		producer, err = message.NewKafkaProducer(cfg.Kafka, log)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka producer: %v", err)
		}
		publisher = producer
		log.Infof("Kafka producer initialized with brokers: %v, topic: %s", cfg.Kafka.Brokers, cfg.Kafka.EventTopic)
	}

	// 5. 初始化清算中心
	ch := clearinghouse.New(&clearinghouse.Config{
		Path:         cfg.ClearingHouse.ServicePath,
		Source:       cfg.NodeID,
		MaxBodyBytes: cfg.ClearingHouse.MaxBodyBytes,
	}, stores, publisher, log)

	if producer != nil {
		message.NewEventBridge(producer, false, log).Attach(ch.Lifecycle)
	}
	log.Infof("Clearing house initialized at %s", ch.Path())

	// 6. 启动服务
	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.GetMetricsAddr(), log)
		log.Infof("Metrics server starting on %s...", cfg.GetMetricsAddr())
	}

	listenerConfig := server.DefaultListenerConfig()
	listenerConfig.Host = cfg.ClearingHouse.Host
	listenerConfig.Port = cfg.ClearingHouse.Port
	listenerConfig.ReadTimeout = cfg.ClearingHouse.ReadTimeout
	listenerConfig.WriteTimeout = cfg.ClearingHouse.WriteTimeout
	listener := server.NewListener(listenerConfig, ch.SOAP().Routes(), log)
	if err := listener.Listen(); err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GetServerAddr(), err)
	}
	go func() {
		if err := listener.Serve(); err != nil {
			log.Fatalf("SOAP server failed: %v", err)
		}
	}()
	log.Infof("Clearing house serving %s", listener.URL(ch.Path()))

	// 7. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down clearing house...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := listener.Stop(ctx); err != nil {
		log.Errorf("Listener shutdown error: %v", err)
	}
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Errorf("Failed to close Kafka producer: %v", err)
		}
	}
	if err := stores.Close(); err != nil {
		log.Errorf("Failed to close stores: %v", err)
	}

	log.Info("Clearing house stopped")
	log.Close()
}

// startMetricsServer 启动 Prometheus 指标服务
func startMetricsServer(addr string, log *logger.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Errorf("Metrics server failed: %v", err)
	}
}
