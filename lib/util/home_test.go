package util

import "testing"

func TestUserHome(t *testing.T) {
	home := UserHome()
	if home == "" {
		t.Fatal("Expected UserHome to return a non-empty path")
	}
}

func TestUserHomeHonorsEnv(t *testing.T) {
	t.Setenv("HOME", "/tmp/sntp-test-home")
	if home := UserHome(); home != "/tmp/sntp-test-home" {
		t.Errorf("Expected /tmp/sntp-test-home, got %s", home)
	}
}
