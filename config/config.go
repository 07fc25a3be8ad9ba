package config

import (
	"fmt"
	"time"
)

type Configs struct {
	Env string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Session   SessionConfigs
	Storage   S3Configs
	File      FileConfigs
	Feed      FeedConfigs
	Redis     RedisConfigs
}

type DatabaseConfigs struct {
	Host     string
	Port     string
	Database string
	User     string
	Password string
}

func (d *DatabaseConfigs) ConnectionString() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string

	AllowedOrigins []string
}

type AuthConfigs struct {
	TokenSecret string
	AccessToken TokenConfigs
}

type TokenConfigs struct {
	Name       string
	Expiration time.Duration
}

type SessionConfigs struct {
	Secret string
	Name   string
}

type S3Configs struct {
	Region         string
	Endpoint       string
	PublicEndpoint string
	AccessKey      string
	SecretKey      string
	Bucket         string
	SSLDisabled    bool
}

type FileConfigs struct {
	MaxSize int64
}

type FeedConfigs struct {
	// PageSize is the fixed page size applied to every post listing.
	PageSize int

	// FrontPageTTL bounds how long the first page of the global feed is
	// served from cache.
	FrontPageTTL time.Duration
}

type RedisConfigs struct {
	Addr string
}
