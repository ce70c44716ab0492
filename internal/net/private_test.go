package net

import "testing"

func TestIsPrivateNetwork(t *testing.T) {
	t.Parallel()

	tests := []struct {
		host string
		want bool
	}{
		{"localhost", true},
		{"127.0.0.1", true},
		{"127.0.0.1:8828", true},
		{"http://192.168.1.20:8828", true},
		{"10.1.2.3", true},
		{"172.20.0.1", true},
		{"172.32.0.1", false},
		{"[::1]:8828", true},
		{"fd00::1", true},
		{"fe80::1", true},
		{"0.0.0.0", false},
		{"8.8.8.8", false},
	}
	for _, tt := range tests {
		if got := IsPrivateNetwork(tt.host); got != tt.want {
			t.Errorf("IsPrivateNetwork(%q) = %v, want %v", tt.host, got, tt.want)
		}
	}
}
