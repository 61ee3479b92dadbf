package config

import "testing"

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if server.Addr != ":8080" {
		t.Fatalf("unexpected default addr %q", server.Addr)
	}
}

func TestLoadServerConfigExplicitAddr(t *testing.T) {
	t.Setenv("PORT", "127.0.0.1:9000")
	server, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if server.Addr != "127.0.0.1:9000" {
		t.Fatalf("unexpected addr %q", server.Addr)
	}
}

func TestLoadServerConfigRejectsGarbage(t *testing.T) {
	t.Setenv("PORT", "80 80")
	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestSheetsConfigGates(t *testing.T) {
	cfg := SheetsConfig{}
	if cfg.Enabled() {
		t.Fatal("empty config must not be enabled")
	}

	cfg = SheetsConfig{SpreadsheetID: "id", APIKey: "key"}
	if !cfg.Enabled() || cfg.HasServiceAccount() {
		t.Fatalf("API key config gates wrong: %+v", cfg)
	}

	cfg = SheetsConfig{SpreadsheetID: "id", ServiceAccountEmail: "e", PrivateKey: "k", ProjectID: "p"}
	if !cfg.Enabled() || !cfg.HasServiceAccount() {
		t.Fatalf("service account config gates wrong: %+v", cfg)
	}
}

func TestAIConfigDefaults(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "sk-test")
	t.Setenv("DEEPSEEK_MAX_TOKENS", "")
	t.Setenv("DEEPSEEK_TEMPERATURE", "")

	cfg, err := loadAIConfig()
	if err != nil {
		t.Fatalf("loadAIConfig err: %v", err)
	}
	if !cfg.Enabled() {
		t.Fatal("expected enabled with key and default model")
	}
	if cfg.Model != "deepseek-chat" || cfg.MaxTokens != 500 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestAIConfigRejectsBadOverride(t *testing.T) {
	t.Setenv("DEEPSEEK_MAX_TOKENS", "many")
	if _, err := loadAIConfig(); err == nil {
		t.Fatal("expected error for non-numeric DEEPSEEK_MAX_TOKENS")
	}
}
