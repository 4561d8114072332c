package sqlite

import "testing"

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		expected string
	}{
		{name: "memory", dsn: "sqlite://:memory:", expected: ":memory:"},
		{name: "relative", dsn: "sqlite://astrolabe.db", expected: "./astrolabe.db"},
		{name: "dot relative", dsn: "sqlite://./data/astrolabe.db", expected: "./data/astrolabe.db"},
		{name: "absolute", dsn: "sqlite:///var/lib/astrolabe.db", expected: "/var/lib/astrolabe.db"},
		{name: "escaped", dsn: "sqlite://my%20charts.db", expected: "./my charts.db"},
		{name: "query", dsn: "sqlite://astrolabe.db?_txlock=immediate", expected: "./astrolabe.db?_txlock=immediate"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDSN(tt.dsn)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Fatalf("expected %q, got %q", tt.expected, got)
			}
		})
	}

	for _, bad := range []string{"postgres://localhost/db", "sqlite://", "sqlite://%zz"} {
		if _, err := parseDSN(bad); err == nil {
			t.Fatalf("expected error for %q", bad)
		}
	}
}
