// @title Rebirth 后端 API
// @version 1.0
// @description Rebirth 戒烟追踪应用的后端服务器。

// @host localhost:8080
// @BasePath /api

package main

import (
	"flag"
	"log"

	"rebirth_backend/internal/app"
	"rebirth_backend/internal/config"
	"rebirth_backend/pkg/configwatcher"
	"rebirth_backend/pkg/logger"
)

func main() {
	// 命令行参数
	configPath := flag.String("config", "configs", "配置文件目录")
	watch := flag.Bool("watch-config", false, "监听配置文件变化并热更新")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application := app.NewApp(cfg)
	defer logger.Log.Sync()

	if *watch {
		go configwatcher.WatchConfig(*configPath, application.ApplyConfig)
	}

	application.Run()
}
