package config

type WebIngress struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

type ServerIngress struct {
	Web WebIngress `yaml:"web"`
}

// TableSettings tunes the single game table.
type TableSettings struct {
	MinPlayers int `yaml:"minPlayers"`
	HandSize   int `yaml:"handSize"`
}

type ServerConfig struct {
	Description string        `yaml:"description"`
	Ingress     ServerIngress `yaml:"ingress"`
	Table       TableSettings `yaml:"table"`
}

type Config struct {
	Server ServerConfig `yaml:"server"`
}
