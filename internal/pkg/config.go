package pkg

import (
	"os"
	"strconv"
	"strings"
)

// Config 启动时从环境变量读取，缺省值适用于本地开发
type Config struct {
	Addr          string
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// CampusDomain 校园邮箱域名，只有该域名的邮箱可以注册/登录
	CampusDomain string
	// AdminEmails 管理员邮箱白名单，登录时重新计算 isAdmin，不做持久授权
	AdminEmails []string

	// KafkaBrokers 为空则不发送审核事件
	KafkaBrokers []string
	KafkaTopic   string

	// SMTPHost 为空则注册不要求验证码（开发模式）
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string
}

func LoadConfig() *Config {
	cfg := &Config{
		Addr:          getenv("ADDR", ":8080"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		CampusDomain:  getenv("CAMPUS_DOMAIN", "igdtuw.ac.in"),
		KafkaTopic:    getenv("KAFKA_TOPIC", "moderation-events"),
		SMTPHost:      os.Getenv("SMTP_HOST"),
		SMTPPort:      587,
		SMTPUsername:  os.Getenv("SMTP_USERNAME"),
		SMTPPassword:  os.Getenv("SMTP_PASSWORD"),
		SMTPFrom:      getenv("SMTP_FROM", "NoReply <no-reply@igdtuw.ac.in>"),
	}

	if db, err := strconv.Atoi(getenv("REDIS_DB", "0")); err == nil {
		cfg.RedisDB = db
	}

	admins := getenv("ADMIN_EMAILS", "admin@igdtuw.ac.in")
	for _, e := range strings.Split(admins, ",") {
		if e = strings.TrimSpace(e); e != "" {
			cfg.AdminEmails = append(cfg.AdminEmails, e)
		}
	}

	if brokers := os.Getenv("KAFKA_BROKERS"); brokers != "" {
		cfg.KafkaBrokers = strings.Split(brokers, ",")
	}

	return cfg
}

// EmailVerificationEnabled 配置了 SMTP 才强制注册验证码
func (c *Config) EmailVerificationEnabled() bool {
	return c.SMTPHost != ""
}

func (c *Config) SMTP() SMTPConfig {
	return SMTPConfig{
		Host:     c.SMTPHost,
		Port:     c.SMTPPort,
		Username: c.SMTPUsername,
		Password: c.SMTPPassword,
		From:     c.SMTPFrom,
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
