package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/charging-platform/ochp-roaming/internal/config"
)

// 配置调试工具
// 打印合并默认值、配置文件与环境变量之后的最终配置
func main() {
	configPath := flag.String("config", "", "path to the configuration file")
	flag.Parse()

	fmt.Println("=== OCHP Roaming Configuration Test ===")

	fmt.Println("\n--- Environment Variables ---")
	envVars := []string{
		"OCHP_NODE_ID",
		"OCHP_CLIENT_URL",
		"OCHP_CLIENT_DIRECT_URL",
		"OCHP_CLEARING_HOUSE_PORT",
		"OCHP_CLEARING_HOUSE_STORE",
		"OCHP_DIRECT_PORT",
		"OCHP_REDIS_ADDR",
		"OCHP_KAFKA_ENABLED",
		"OCHP_KAFKA_BROKERS",
		"OCHP_LOG_LEVEL",
	}
	for _, env := range envVars {
		if value := os.Getenv(env); value != "" {
			fmt.Printf("%s = %s\n", env, value)
		} else {
			fmt.Printf("%s = (not set)\n", env)
		}
	}

	fmt.Println("\n--- Loading Configuration ---")
	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Printf("Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\n--- Final Configuration ---")
	fmt.Printf("Node ID: %s\n", cfg.NodeID)
	fmt.Printf("Server Address: %s\n", cfg.GetServerAddr())
	fmt.Printf("OCHPdirect Address: %s\n", cfg.GetDirectAddr())
	fmt.Printf("Service Path: %s\n", cfg.ClearingHouse.ServicePath)
	fmt.Printf("OCHPdirect Path: %s\n", cfg.ClearingHouse.DirectPath)
	fmt.Printf("Store: %s\n", cfg.ClearingHouse.Store)
	fmt.Printf("Clearing House URL: %s\n", cfg.Client.URL)
	fmt.Printf("OCHPdirect URL: %s\n", orNotSet(cfg.Client.DirectURL))
	fmt.Printf("Request Timeout: %s\n", cfg.Client.RequestTimeout)
	fmt.Printf("Redis Address: %s (prefix %s)\n", cfg.Redis.Addr, cfg.Redis.KeyPrefix)
	fmt.Printf("Kafka Enabled: %v\n", cfg.Kafka.Enabled)
	fmt.Printf("Kafka Brokers: %v\n", cfg.Kafka.Brokers)
	fmt.Printf("Kafka Topics: events=%s status=%s\n", cfg.Kafka.EventTopic, cfg.Kafka.StatusTopic)
	fmt.Printf("Status Cache: max=%d ttl=%s\n", cfg.StatusCache.MaxSize, cfg.StatusCache.DefaultTTL)
	fmt.Printf("Log Level: %s (%s)\n", cfg.Log.Level, cfg.Log.Format)
	fmt.Printf("Metrics: enabled=%v addr=%s\n", cfg.Metrics.Enabled, cfg.GetMetricsAddr())

	fmt.Println("\n=== Configuration Test Complete ===")
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
