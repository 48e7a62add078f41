package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatasetPath == "" {
		cfg.Storage.DatasetPath = "./data/sample_recipes.csv"
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "./data/recipes.db"
	}
	cfg.Clustering.ApplyDefaults()
	cfg.Scoring.ApplyDefaults()
}
