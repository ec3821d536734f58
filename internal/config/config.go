package config

import (
	"fmt"
	"os"
	"time"

	"castsol/internal/consts"
	"castsol/internal/pkg/logger"

	"github.com/zeromicro/go-zero/core/conf"
	"gopkg.in/yaml.v3"
)

type LogConfig struct {
	Format   string `json:"format,default=console" yaml:"format"` // 日志格式，支持 "console" 或 "json"
	LogDir   string `json:"log_dir,optional" yaml:"log_dir"`      // 日志目录（可为相对路径或绝对路径），为空时不写文件
	Level    string `json:"level,default=warn" yaml:"level"`      // 日志级别：debug / info / warn / error
	Compress bool   `json:"compress,optional" yaml:"compress"`    // 是否压缩旧日志文件
}

func (c *LogConfig) ToLogOption() logger.LogOption {
	return logger.LogOption{
		Format:   c.Format,
		LogDir:   c.LogDir,
		Level:    c.Level,
		Compress: c.Compress,
	}
}

// RpcConfig 表示 Solana RPC 节点相关配置
type RpcConfig struct {
	Endpoint   string `json:"endpoint,optional" yaml:"endpoint"`              // RPC 地址，可被 --rpc-url 或 SOL_RPC_URL 覆盖
	Commitment string `json:"commitment,default=confirmed" yaml:"commitment"` // processed / confirmed / finalized
	TimeoutSec int    `json:"timeout_sec,default=30" yaml:"timeout_sec"`      // 单次 getTransaction 超时（秒）
}

func (c *RpcConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// Config 是主配置结构体
type Config struct {
	LogConf LogConfig `json:"logger,optional" yaml:"logger"` // 日志配置
	RpcConf RpcConfig `json:"rpc,optional" yaml:"rpc"`       // RPC 配置
}

// Default 返回未提供配置文件时使用的默认配置
func Default() Config {
	return Config{
		LogConf: LogConfig{
			Format: "console",
			Level:  "warn",
		},
		RpcConf: RpcConfig{
			Commitment: consts.DefaultCommitment,
			TimeoutSec: consts.DefaultTimeoutSec,
		},
	}
}

// Load 通过 go-zero conf 读取配置文件（按扩展名支持 yaml / json / toml），
// 未出现的字段使用 tag 中的默认值；path 为空时直接返回默认配置。
func Load(path string) (Config, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	if err := conf.Load(path, &c); err != nil {
		return c, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.RpcConf.Commitment {
	case "processed", "confirmed", "finalized":
	default:
		return fmt.Errorf("unsupported commitment %q", c.RpcConf.Commitment)
	}
	if c.RpcConf.TimeoutSec <= 0 {
		return fmt.Errorf("timeout_sec must be positive, got %d", c.RpcConf.TimeoutSec)
	}
	switch c.LogConf.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format %q", c.LogConf.Format)
	}
	return nil
}

// String 以 YAML 形式输出生效的配置，用于调试日志
func (c Config) String() string {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Sprintf("<invalid config: %v>", err)
	}
	return string(data)
}

// ResolveEndpoint 按优先级确定 RPC 地址：命令行参数 > 环境变量 > 配置文件
func (c *Config) ResolveEndpoint(flagValue string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}
	if env := os.Getenv(consts.RpcURLEnv); env != "" {
		return env, nil
	}
	if c.RpcConf.Endpoint != "" {
		return c.RpcConf.Endpoint, nil
	}
	return "", fmt.Errorf("rpc url is required: pass --rpc-url or set %s", consts.RpcURLEnv)
}
