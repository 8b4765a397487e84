package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type AppCfg struct {
	Name string
	Env  string
	Host string
	Port int
}

type LogCfg struct {
	Level string
}

// AuthCfg locates the Cognito user pool whose tokens the API accepts.
type AuthCfg struct {
	Region     string
	UserPoolID string
}

// DynamoCfg locates the single metadata table.
type DynamoCfg struct {
	Region    string
	Table     string
	Endpoint  string
	AccessKey string
	SecretKey string
}

type S3Cfg struct {
	Region       string
	RawBucket    string
	Endpoint     string
	AccessKey    string
	SecretKey    string
	UsePathStyle bool

	// PutExpireSec / GetExpireSec bound presigned URL lifetimes.
	PutExpireSec int
	GetExpireSec int
}

type Config struct {
	App    AppCfg
	Log    LogCfg
	Auth   AuthCfg
	Dynamo DynamoCfg
	S3     S3Cfg
}

func Load() (*Config, error) {
	base := viper.New()
	base.SetConfigName("config")
	base.SetConfigType("yaml")
	base.AddConfigPath("./configs")
	base.AddConfigPath(".")
	base.AutomaticEnv()
	base.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	base.SetEnvPrefix("APP") // e.g. APP_DYNAMO_TABLE -> dynamo.table

	setDefaults(base)
	bindEnvKeys(base)

	if err := base.ReadInConfig(); err == nil {
		// Expand ${ENV} references in the file before parsing.
		path := base.ConfigFileUsed()
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		expanded := os.ExpandEnv(string(raw))

		v := viper.New()
		v.SetConfigType("yaml")
		if err := v.ReadConfig(bytes.NewBufferString(expanded)); err != nil {
			return nil, err
		}
		v.AutomaticEnv()
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.SetEnvPrefix("APP")
		setDefaults(v)
		bindEnvKeys(v)

		cfg := new(Config)
		if err := v.Unmarshal(&cfg); err != nil {
			return nil, err
		}
		return cfg, cfg.validate()
	}

	// No file; env + defaults only.
	cfg := new(Config)
	if err := base.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	return cfg, cfg.validate()
}

// validate rejects a process that cannot serve a single request. Missing
// store or identity settings are a startup error, never a per-request one.
func (c *Config) validate() error {
	required := map[string]string{
		"auth.region":     c.Auth.Region,
		"auth.userPoolId": c.Auth.UserPoolID,
		"dynamo.region":   c.Dynamo.Region,
		"dynamo.table":    c.Dynamo.Table,
		"s3.region":       c.S3.Region,
		"s3.rawBucket":    c.S3.RawBucket,
	}
	for key, val := range required {
		if strings.TrimSpace(val) == "" {
			return fmt.Errorf("missing required config %s", key)
		}
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "securedoc")
	v.SetDefault("app.env", "release")
	v.SetDefault("app.host", "0.0.0.0")
	v.SetDefault("app.port", 8080)
	v.SetDefault("log.level", "info")
	v.SetDefault("dynamo.region", "ca-central-1")
	v.SetDefault("s3.region", "ca-central-1")
	v.SetDefault("s3.usePathStyle", false)
	v.SetDefault("s3.putExpireSec", 300)
	v.SetDefault("s3.getExpireSec", 60)
}

// bindEnvKeys registers every key that has no default. AutomaticEnv alone
// does not surface such keys through Unmarshal, so without the explicit bind
// an env-only deployment could never satisfy validate().
func bindEnvKeys(v *viper.Viper) {
	for _, key := range []string{
		"auth.region",
		"auth.userPoolId",
		"dynamo.table",
		"dynamo.endpoint",
		"dynamo.accessKey",
		"dynamo.secretKey",
		"s3.rawBucket",
		"s3.endpoint",
		"s3.accessKey",
		"s3.secretKey",
	} {
		_ = v.BindEnv(key)
	}
}
