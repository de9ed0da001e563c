package config

import (
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func load(configPath string) {
	if !fileExist(configPath) {
		panic("config: file not found, path=" + configPath)
	}

	v := viper.New()
	v.SetConfigFile(configPath)

	// 热更新：重载失败保留当前配置继续跑，不把运行中的服务打挂。
	// 这里用 zap 全局 logger——config 在 logs 之前初始化，不能反向依赖 logs 包。
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := v.Unmarshal(&Conf); err != nil {
			zap.L().Error("config reload failed, keeping current config",
				zap.String("file", e.Name),
				zap.Error(err),
			)
			return
		}
		zap.L().Info("config reloaded",
			zap.String("file", e.Name),
			zap.String("op", e.Op.String()),
		)
	})
	v.WatchConfig()

	if err := v.ReadInConfig(); err != nil {
		panic(fmt.Errorf("config: read %s: %w", configPath, err))
	}
	if err := v.Unmarshal(&Conf); err != nil {
		panic(fmt.Errorf("config: unmarshal %s: %w", configPath, err))
	}
}

func fileExist(fileName string) bool {
	_, err := os.Stat(fileName)
	return err == nil
}
