package config

type config struct {
	Server        server        `yaml:"server" mapstructure:"server"`
	Mysql         mysql         `yaml:"mysql" mapstructure:"mysql"`
	Redis         redis         `yaml:"redis" mapstructure:"redis"`
	RabbitMq      rabbitmq      `yaml:"rabbitmq" mapstructure:"rabbitmq"`
	Minio         minio         `yaml:"minio" mapstructure:"minio"`
	Elasticsearch elasticsearch `yaml:"elasticsearch" mapstructure:"elasticsearch"`
	Jaeger        jaeger        `yaml:"jaeger" mapstructure:"jaeger"`
	Jwt           jwt           `yaml:"jwt" mapstructure:"jwt"`
	Cascade       cascade       `yaml:"cascade" mapstructure:"cascade"`
	Chat          chat          `yaml:"chat" mapstructure:"chat"`
}

type server struct {
	HttpAddr     string   `yaml:"http_addr"`
	WsAddr       string   `yaml:"ws_addr"`
	AllowOrigins []string `yaml:"allow_origins"`
}

type mysql struct {
	Addr     string `yaml:"addr"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Charset  string `yaml:"charset"`
}

type redis struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type rabbitmq struct {
	Addr     string `yaml:"addr"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
}

type minio struct {
	Endpoint   string `yaml:"endpoint"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	UseSSL     bool   `yaml:"use_ssl"`
	Bucket     string `yaml:"bucket"`
	PublicHost string `yaml:"public_host"`
}

type elasticsearch struct {
	Addr string `yaml:"addr"`
}

type jaeger struct {
	AgentAddr string `yaml:"agent_addr"`
}

type jwt struct {
	AccessSecret  string `yaml:"access_secret"`
	RefreshSecret string `yaml:"refresh_secret"`
	AccessTTL     string `yaml:"access_ttl"`
	RefreshTTL    string `yaml:"refresh_ttl"`
}

type cascade struct {
	Concurrency int    `yaml:"concurrency" mapstructure:"concurrency"`
	LockTTL     string `yaml:"lock_ttl" mapstructure:"lock_ttl"`
}

type chat struct {
	Shards  uint `yaml:"shards"`
	History int  `yaml:"history"`
}
