package config

// Config 配置主体
type Config struct {
	Server            ServerConfig      `mapstructure:"server"`
	DB                DBConfig          `mapstructure:"database"`
	Redis             RedisConfig       `mapstructure:"redis"`
	Mongo             MongoConfig       `mapstructure:"mongo"`
	MinIO             MinIOConfig       `mapstructure:"minio"`
	Elastic           ElasticConfig     `mapstructure:"elastic"`
	Logstash          LogstashConfig    `mapstructure:"logstash"`
	Identity          IdentityConfig    `mapstructure:"identity"`
	Security          SecurityConfig    `mapstructure:"security"`
	Cron              CronConfig        `mapstructure:"cron"`
	Kafka             KafkaConfig       `mapstructure:"kafka"`
	KafkaUserConsumer KafkaUserConsumer `mapstructure:"kafka_user_consumer"`
	KafkaNewsConsumer KafkaNewsConsumer `mapstructure:"kafka_news_consumer"`
}

// ServerConfig Server配置
type ServerConfig struct {
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"` // 为空时放行所有来源
}

// DBConfig 数据库配置
type DBConfig struct {
	DSN         string `mapstructure:"dsn"`
	MaxIdle     int    `mapstructure:"max_idle"`
	MaxOpen     int    `mapstructure:"max_open"`
	MaxLifetime int    `mapstructure:"max_lifetime"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	PoolSize int    `mapstructure:"pool_size"`
}

type MongoConfig struct {
	URL      string `mapstructure:"url"`
	Database string `mapstructure:"database"`
}

// MinIOConfig MinIO配置
type MinIOConfig struct {
	InternalEndpoint string `mapstructure:"internal_endpoint"`
	ExternalEndpoint string `mapstructure:"external_endpoint"`
	AccessKey        string `mapstructure:"access_key"`
	SecretKey        string `mapstructure:"secret_key"`
	MainBucket       string `mapstructure:"main_bucket"`
	InternalUseSSL   bool   `mapstructure:"internal_use_ssl"`
}

// ElasticConfig Elastic配置
type ElasticConfig struct {
	Address  string         `mapstructure:"address"`
	Username string         `mapstructure:"username"`
	Password string         `mapstructure:"password"`
	Indices  ElasticIndices `mapstructure:"indices"`
}

// ElasticIndices Elastic索引
type ElasticIndices struct {
	NewsIndex string `mapstructure:"news_index"`
}

type LogstashConfig struct {
	Address string `mapstructure:"address"`
	Index   string `mapstructure:"index"`
	Token   string `mapstructure:"token"`
}

// IdentityConfig 外部身份提供方
type IdentityConfig struct {
	BaseURL   string `mapstructure:"base_url"`
	SecretKey string `mapstructure:"secret_key"`
	Timeout   int    `mapstructure:"timeout"`
}

type SecurityConfig struct {
	JWTSecret string `mapstructure:"jwt_secret"`
	Issuer    string `mapstructure:"issuer"`
}

// CronConfig 定时任务表达式（带秒）
type CronConfig struct {
	DirtyRecount string `mapstructure:"dirty_recount"`
	FullRecount  string `mapstructure:"full_recount"`
}

type KafkaConfig struct {
	Brokers  []string       `mapstructure:"brokers"`
	Version  string         `mapstructure:"version"`
	Sasl     SaslConfig     `mapstructure:"sasl"`
	Consumer ConsumerConfig `mapstructure:"consumer"`
}

type SaslConfig struct {
	Enable   bool   `mapstructure:"enable"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type ConsumerConfig struct {
	SessionTimeout    int `mapstructure:"session_timeout"`
	HeartbeatInterval int `mapstructure:"heartbeat_interval"`
	RebalanceTimeout  int `mapstructure:"rebalance_timeout"`
	MaxProcessingTime int `mapstructure:"max_processing_time"`
}

type KafkaUserConsumer struct {
	Topic         string `mapstructure:"topic"`
	GroupID       string `mapstructure:"group_id"`
	InitialOffset string `mapstructure:"initial_offset"` // oldest / newest
}

type KafkaNewsConsumer struct {
	Topic         string `mapstructure:"topic"`
	GroupID       string `mapstructure:"group_id"`
	InitialOffset string `mapstructure:"initial_offset"` // oldest / newest
}
