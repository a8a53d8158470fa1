package config

import (
	"testing"
	"time"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", time.Second},
		{"250", 250 * time.Millisecond},
		{"2s", 2 * time.Second},
		{"1m30s", 90 * time.Second},
		{"soon", time.Second},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			t.Setenv("DESK_AUDIT_WINDOW", tt.value)
			if got := Duration("DESK_AUDIT_WINDOW", time.Second); got != tt.want {
				t.Fatalf("Duration() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIntAndString(t *testing.T) {
	t.Setenv("DB_PORT", "6543")
	if got := Int("DB_PORT", 5432); got != 6543 {
		t.Fatalf("Int() = %d", got)
	}
	t.Setenv("DB_PORT", "x")
	if got := Int("DB_PORT", 5432); got != 5432 {
		t.Fatalf("Int() with bad value = %d", got)
	}
	t.Setenv("PORT", "")
	if got := String("PORT", "8002"); got != "8002" {
		t.Fatalf("String() = %q", got)
	}
}
