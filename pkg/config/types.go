package config

import "time"

// ProbeConfig representa a estrutura raiz da configuração do ddbprobe.
//
// Os valores padrão (ver Default) reproduzem os literais usados na
// investigação original da busca por cidade.
type ProbeConfig struct {
	Table   TableConf   `yaml:"table"`
	Probes  ProbesConf  `yaml:"probes"`
	Logging LoggingConf `yaml:"logging"`
	Metrics MetricsConf `yaml:"metrics"`
}

// TableConf identifica a tabela e como alcançá-la.
type TableConf struct {
	Name          string `yaml:"name" env:"PROBE_TABLE_NAME" validate:"required"`
	Region        string `yaml:"region" env:"AWS_REGION" validate:"required"`
	Endpoint      string `yaml:"endpoint" env:"PROBE_DYNAMODB_ENDPOINT" validate:"omitempty,url"` // ex: DynamoDB Local
	LocationIndex string `yaml:"location_index" env:"PROBE_LOCATION_INDEX" validate:"required"`
}

// ProbesConf contém os literais usados pelas consultas.
type ProbesConf struct {
	City        string `yaml:"city" env:"PROBE_CITY" validate:"required"`
	Country     string `yaml:"country" env:"PROBE_COUNTRY" validate:"required"`
	EntityType  string `yaml:"entity_type" env:"PROBE_ENTITY_TYPE" validate:"required"`
	MetadataSK  string `yaml:"metadata_sk" env:"PROBE_METADATA_SK" validate:"required"`
	ListLimit   int32  `yaml:"list_limit" env:"PROBE_LIST_LIMIT" validate:"gte=1,lte=1000"`
	FilterLimit int32  `yaml:"filter_limit" env:"PROBE_FILTER_LIMIT" validate:"gte=1,lte=1000"`
	// Timeout por probe; zero mantém os defaults do cliente AWS.
	Timeout time.Duration `yaml:"timeout" env:"PROBE_TIMEOUT" validate:"gte=0"`
}

type LoggingConf struct {
	Enabled bool   `yaml:"enabled" env:"PROBE_LOG_ENABLED"`
	Level   string `yaml:"level" env:"PROBE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	Format  string `yaml:"format" env:"PROBE_LOG_FORMAT" validate:"oneof=json console"`
}

type MetricsConf struct {
	Datadog DatadogConf `yaml:"datadog"`
}

type DatadogConf struct {
	Enabled   bool     `yaml:"enabled" env:"DD_ENABLED"`
	Addr      string   `yaml:"addr" env:"DD_AGENT_HOST" validate:"required_if=Enabled true"`
	Namespace string   `yaml:"namespace" env:"DD_NAMESPACE"`
	Tags      []string `yaml:"tags" env:"DD_TAGS"`
}

// Default devolve a configuração com os literais históricos.
func Default() *ProbeConfig {
	return &ProbeConfig{
		Table: TableConf{
			Name:          "hotel-booking-properties-dev",
			Region:        "us-east-1",
			LocationIndex: "LocationIndex",
		},
		Probes: ProbesConf{
			City:        "Dubai",
			Country:     "UAE",
			EntityType:  "Property",
			MetadataSK:  "METADATA",
			ListLimit:   3,
			FilterLimit: 5,
		},
		Logging: LoggingConf{
			Enabled: true,
			Level:   "warn",
			Format:  "console",
		},
		Metrics: MetricsConf{
			Datadog: DatadogConf{Namespace: "ddbprobe."},
		},
	}
}
