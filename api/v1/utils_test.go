package v1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddrVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{name: "plain ipv4", raw: "79.144.65.173", want: "79.144.65.173"},
		{name: "ipv4 with spaces", raw: " 79.144.65.173 ", want: "79.144.65.173"},
		{name: "quoted ipv4", raw: "\"79.144.65.173\"", want: "79.144.65.173"},
		{name: "ipv4 with port", raw: "79.144.65.173:443", want: "79.144.65.173"},
		{name: "ipv6 literal", raw: "2001:db8::1", want: "2001:db8::1"},
		{name: "ipv6 in brackets", raw: "[2001:db8::1]", want: "2001:db8::1"},
		{name: "ipv6 with port", raw: "[2001:db8::1]:8443", want: "2001:db8::1"},
		{name: "ipv6 with zone", raw: "fe80::1%eth0", want: "fe80::1"},
		{name: "ipv4 mapped ipv6", raw: "::ffff:203.0.113.9", want: "203.0.113.9"},
		{name: "invalid value", raw: "not-an-ip", want: ""},
		{name: "empty", raw: "   ", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			addr, ok := parseAddr(tc.raw)
			if tc.want == "" {
				assert.False(t, ok)
				return
			}
			require.True(t, ok)
			assert.Equal(t, tc.want, addr.String())
		})
	}
}

func TestFirstPublicIP(t *testing.T) {
	tests := []struct {
		name       string
		candidates []string
		want       string
	}{
		{
			name:       "first public address wins",
			candidates: []string{"203.0.113.20", "198.51.100.7"},
			want:       "203.0.113.20",
		},
		{
			name:       "skips private and loopback addresses",
			candidates: []string{"192.168.1.10", "10.0.0.5", "::1", "198.51.100.7"},
			want:       "198.51.100.7",
		},
		{
			name:       "skips link local and unspecified",
			candidates: []string{"fe80::1", "0.0.0.0", "2001:db8::2"},
			want:       "2001:db8::2",
		},
		{
			name:       "returns empty when no valid candidates",
			candidates: []string{"", "   ", "not-an-ip", "127.0.0.1"},
			want:       "",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, firstPublicIP(tc.candidates))
		})
	}
}

func TestPathFromURL(t *testing.T) {
	assert.Equal(t, "/laws/gdpr", pathFromURL("https://example.com/laws/gdpr?ref=nav"))
	assert.Equal(t, "/", pathFromURL("https://example.com"))
	assert.Equal(t, "/", pathFromURL("://broken"))
}
