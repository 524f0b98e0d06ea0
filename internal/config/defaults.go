package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/parsume/data/db/parsume.db"
	}
	if cfg.Storage.UploadDir == "" {
		cfg.Storage.UploadDir = "/usr/local/var/parsume/data/uploads"
	}
	if cfg.Storage.ResumeIndexPath == "" {
		cfg.Storage.ResumeIndexPath = "/usr/local/var/parsume/data/indices/resumes"
	}
	if cfg.Fallback.TimeoutSeconds == 0 {
		cfg.Fallback.TimeoutSeconds = 15
	}
	if cfg.Defaults.Department == "" {
		cfg.Defaults.Department = "AI & ML"
	}
	if cfg.Defaults.TenthPercentage == "" {
		cfg.Defaults.TenthPercentage = "95.00"
	}
	if cfg.Defaults.TenthYear == "" {
		cfg.Defaults.TenthYear = "2020"
	}
	if cfg.Defaults.TwelfthPercentage == "" {
		cfg.Defaults.TwelfthPercentage = "81.83"
	}
	if cfg.Defaults.TwelfthYear == "" {
		cfg.Defaults.TwelfthYear = "2022"
	}
	if cfg.Defaults.EnggPassingYear == "" {
		cfg.Defaults.EnggPassingYear = "2026"
	}
	if cfg.Watch.Extensions == nil {
		cfg.Watch.Extensions = []string{".pdf", ".docx", ".doc"}
	}
}
