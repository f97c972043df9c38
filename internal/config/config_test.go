package config

import "testing"

func TestGetEnvOrDefault(t *testing.T) {
	t.Setenv("TT_TEST_STR", "hello")

	if got := getEnvOrDefault("TT_TEST_STR", "fallback"); got != "hello" {
		t.Errorf("set variable: got %q", got)
	}
	if got := getEnvOrDefault("TT_TEST_MISSING", "fallback"); got != "fallback" {
		t.Errorf("missing variable: got %q", got)
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	t.Setenv("TT_TEST_INT", "7")
	t.Setenv("TT_TEST_BAD", "seven")

	if got := getEnvAsIntOrDefault("TT_TEST_INT", 3); got != 7 {
		t.Errorf("set variable: got %d", got)
	}
	if got := getEnvAsIntOrDefault("TT_TEST_BAD", 3); got != 3 {
		t.Errorf("unparseable variable: got %d", got)
	}
	if got := getEnvAsIntOrDefault("TT_TEST_INT_MISSING", 3); got != 3 {
		t.Errorf("missing variable: got %d", got)
	}
}
