package config

func loadTestConfig(cfg *Config) {
	cfg.DatabaseFilePath = ":memory:"
	cfg.FrontendURL = "http://localhost:3000"
	cfg.ServerHost = "127.0.0.1"
	// Port 0 lets the OS pick a free port during tests.
	cfg.ServerPort = 0
}
