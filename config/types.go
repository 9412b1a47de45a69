package config

type AppConfig struct {
	DBPath      string            `yaml:"db_path" env:"CRIME_DB_PATH" env-default:"data/stpaul_crime.sqlite3"`
	ListenAddr  string            `yaml:"listen_addr" env:"CRIME_LISTEN_ADDR" env-default:"0.0.0.0:8000"`
	AppEnv      string            `yaml:"app_env" env:"CRIME_APP_ENV"`
	QueryLimit  int               `yaml:"query_limit" env:"CRIME_QUERY_LIMIT" env-default:"1000"`
	Maintenance MaintenanceConfig `yaml:"maintenance"`
}

type MaintenanceConfig struct {
	Enabled  bool   `yaml:"enabled" env:"CRIME_MAINTENANCE_ENABLED" env-default:"true"`
	Schedule string `yaml:"schedule" env:"CRIME_MAINTENANCE_SCHEDULE" env-default:"@every 30m"`
}

// EffectiveQueryLimit is the default cap for incident listings when the
// request does not carry an explicit limit.
func (c *AppConfig) EffectiveQueryLimit() int {
	if c != nil && c.QueryLimit > 0 {
		return c.QueryLimit
	}
	return 1000
}
