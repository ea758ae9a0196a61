package config

import (
	"testing"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Host: "0.0.0.0", Port: 8080},
		Storage: StorageConfig{Type: "local", LocalPath: "./data"},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid local", func(*Config) {}, false},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, true},
		{"local without path", func(c *Config) { c.Storage.LocalPath = "" }, true},
		{"unknown storage type", func(c *Config) { c.Storage.Type = "ftp" }, true},
		{"s3 without bucket", func(c *Config) {
			c.Storage.Type = "s3"
			c.Storage.S3.Region = "eu-central-1"
		}, true},
		{"s3 complete", func(c *Config) {
			c.Storage.Type = "s3"
			c.Storage.S3.Bucket = "grids"
			c.Storage.S3.Region = "eu-central-1"
		}, false},
		{"azure without account", func(c *Config) {
			c.Storage.Type = "azure"
			c.Storage.Azure.Container = "grids"
		}, true},
		{"http without base url", func(c *Config) { c.Storage.Type = "http" }, true},
		{"tls without domains", func(c *Config) {
			c.TLS.Enabled = true
			c.TLS.Email = "ops@example.com"
		}, true},
		{"tls without email", func(c *Config) {
			c.TLS.Enabled = true
			c.TLS.Domains = []string{"crs.example.com"}
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDataURI(t *testing.T) {
	tests := []struct {
		name string
		cfg  StorageConfig
		want string
	}{
		{"local", StorageConfig{Type: "local", LocalPath: "/data/grids"}, "/data/grids"},
		{"s3", StorageConfig{Type: "s3", S3: S3Config{Bucket: "grids"}}, "s3://grids"},
		{"s3 with prefix", StorageConfig{Type: "s3", S3: S3Config{Bucket: "grids", Prefix: "/weekly/"}}, "s3://grids/weekly"},
		{"azure", StorageConfig{Type: "azure", Azure: AzureConfig{Container: "grids", Prefix: "sst"}}, "az://grids/sst"},
		{"http", StorageConfig{Type: "http", HTTP: HTTPConfig{BaseURL: "https://example.com/data/"}}, "https://example.com/data"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.cfg.DataURI(); got != tt.want {
				t.Errorf("DataURI() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAddress(t *testing.T) {
	s := ServerConfig{Host: "127.0.0.1", Port: 9090}
	if got := s.Address(); got != "127.0.0.1:9090" {
		t.Errorf("Address() = %q", got)
	}
}
