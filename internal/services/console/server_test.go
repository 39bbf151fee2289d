package console

import (
	"path/filepath"
	"testing"
)

func TestNewServerValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{name: "missing addr", cfg: Config{APIBaseURL: "http://localhost:8080"}},
		{name: "missing api url", cfg: Config{HTTPAddr: ":8090"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewServer(tt.cfg); err == nil {
				t.Fatal("expected configuration error")
			}
		})
	}
}

func TestNewServerWiresRefreshClientHook(t *testing.T) {
	server, err := NewServer(Config{
		HTTPAddr:   ":0",
		APIBaseURL: "http://localhost:8080",
		DBPath:     filepath.Join(t.TempDir(), "console.db"),
	})
	if err != nil {
		t.Fatalf("new server: %v", err)
	}
	defer server.Close()

	if server.currentRefreshClient() != nil {
		t.Fatal("no refresh client before the first load")
	}
	client := &fakeLoaderClient{}
	server.handler.afterLoad(client)
	if server.currentRefreshClient() != loaderClient(client) {
		t.Fatal("expected successful-load client to be retained")
	}
	server.rememberRefreshClient(nil)
	if server.currentRefreshClient() != nil {
		t.Fatal("expected refresh client to be dropped")
	}
}
