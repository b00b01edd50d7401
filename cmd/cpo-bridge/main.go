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

	"github.com/charging-platform/ochp-roaming/internal/client"
	"github.com/charging-platform/ochp-roaming/internal/config"
	"github.com/charging-platform/ochp-roaming/internal/domain/ochp"
	"github.com/charging-platform/ochp-roaming/internal/logger"
	"github.com/charging-platform/ochp-roaming/internal/message"
	"github.com/charging-platform/ochp-roaming/internal/metrics"
	"github.com/charging-platform/ochp-roaming/internal/roaming"
	"github.com/charging-platform/ochp-roaming/internal/server"
)

// cpo-bridge 把 Kafka 上的EVSE状态转发到清算中心，并对服务商提供 OCHPdirect 状态查询
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

	// 3. 初始化状态表
	table := roaming.NewStatusTable(&cfg.StatusCache)
	if err := table.Start(); err != nil {
		log.Fatalf("Failed to start status table: %v", err)
	}

	// 4. 初始化漫游角色
	cpo, err := roaming.NewCPORoamingFromConfig(&roaming.Config{
		Client: clientConfig(cfg, cfg.Client.URL),
		Direct: directConfig(cfg),
		Server: &server.Config{
			Path:         cfg.ClearingHouse.DirectPath,
			Source:       cfg.NodeID,
			MaxBodyBytes: cfg.ClearingHouse.MaxBodyBytes,
		},
	}, &roaming.StatusOperator{Table: table}, log)
	if err != nil {
		log.Fatalf("Failed to initialize CPO roaming: %v", err)
	}
	log.Infof("CPO roaming initialized, clearing house: %s", cfg.Client.URL)

	// 5. 初始化 Kafka (可选)
	var producer *message.KafkaProducer
	var consumer *message.StatusConsumer
	if cfg.Kafka.Enabled {
		producer, err = message.NewKafkaProducer(cfg.Kafka, log)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka producer: %v", err)
		}
		message.NewEventBridge(producer, false, log).Attach(cpo.Lifecycle)
		log.Infof("Kafka producer initialized with brokers: %v, topic: %s", cfg.Kafka.Brokers, cfg.Kafka.EventTopic)

		consumer, err = message.NewStatusConsumer(cfg.Kafka, log)
		if err != nil {
			log.Fatalf("Failed to initialize Kafka consumer: %v", err)
		}
		log.Infof("Kafka consumer initialized with group: %s, topic: %s", cfg.Kafka.ConsumerGroup, cfg.Kafka.StatusTopic)
	}

	// 6. 定义状态处理器
	statusHandler := func(ctx context.Context, status ochp.EVSEStatus) error {
		table.Record(status)
		resp, err := cpo.ForwardStatus(ctx, []ochp.EVSEStatus{status}, nil)
		if err != nil {
			return err
		}
		if !resp.IsSuccess() {
			return fmt.Errorf("status for %s not accepted: %s", status.EVSEID, resp.Result())
		}
		return nil
	}

	// 7. 启动服务
	if cfg.Metrics.Enabled {
		go startMetricsServer(cfg.GetMetricsAddr(), log)
		log.Infof("Metrics server starting on %s...", cfg.GetMetricsAddr())
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()
	if consumer != nil {
		if err := consumer.Start(ctx, statusHandler); err != nil {
			log.Fatalf("Failed to start Kafka consumer: %v", err)
		}
		log.Info("Kafka consumer started")
	}

	listenerConfig := server.DefaultListenerConfig()
	listenerConfig.Host = cfg.Direct.Host
	listenerConfig.Port = cfg.Direct.Port
	listenerConfig.ReadTimeout = cfg.ClearingHouse.ReadTimeout
	listenerConfig.WriteTimeout = cfg.ClearingHouse.WriteTimeout
	listener := server.NewListener(listenerConfig, cpo.Server.SOAP().Routes(), log)
	if err := listener.Listen(); err != nil {
		log.Fatalf("Failed to listen on %s: %v", cfg.GetDirectAddr(), err)
	}
	go func() {
		if err := listener.Serve(); err != nil {
			log.Fatalf("OCHPdirect server failed: %v", err)
		}
	}()
	log.Infof("OCHPdirect serving %s", listener.URL(cpo.Server.Path()))

	// 8. 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutting down CPO bridge...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if consumer != nil {
		if err := consumer.Close(); err != nil {
			log.Errorf("Failed to close Kafka consumer: %v", err)
		}
	}
	stop()
	if err := listener.Stop(shutdownCtx); err != nil {
		log.Errorf("Listener shutdown error: %v", err)
	}
	cpo.Detach()
	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Errorf("Failed to close Kafka producer: %v", err)
		}
	}
	table.Stop()

	log.Info("CPO bridge stopped")
	log.Close()
}

func clientConfig(cfg *config.Config, url string) *client.Config {
	c := client.DefaultConfig(url)
	c.DefaultTimeout = cfg.Client.RequestTimeout
	c.Source = cfg.NodeID
	if cfg.Client.UserAgent != "" {
		c.UserAgent = cfg.Client.UserAgent
	}
	if cfg.Client.MaxIdleConns > 0 {
		c.MaxIdleConns = cfg.Client.MaxIdleConns
	}
	return c
}

// directConfig 未配置服务商地址时不创建 OCHPdirect 客户端
func directConfig(cfg *config.Config) *client.Config {
	if cfg.Client.DirectURL == "" {
		return nil
	}
	return clientConfig(cfg, cfg.Client.DirectURL)
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
