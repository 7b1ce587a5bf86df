package osc7

import "testing"

func TestParseURI(t *testing.T) {
	cases := []struct {
		name string
		uri  string
		want string
		ok   bool
	}{
		{"basic path", "file://localhost/Users/user/project", "/Users/user/project", true},
		{"empty hostname", "file:///home/user", "/home/user", true},
		{"with hostname", "file://myhost.local/home/user", "/home/user", true},
		{"percent encoded space", "file://host/path%20with%20space", "/path with space", true},
		{"percent encoded japanese", "file://host/%E3%83%86%E3%82%B9%E3%83%88", "/テスト", true},
		{"no file prefix", "http://example.com/path", "", false},
		{"empty string", "", "", false},
		{"file only", "file://", "", false},
		{"root path", "file://host/", "/", true},
		{"invalid percent encoding", "file://host/path%ZZ", "/path%ZZ", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, ok := ParseURI(c.uri)
			if ok != c.ok {
				t.Fatalf("ParseURI(%q) ok = %v, want %v", c.uri, ok, c.ok)
			}
			if ok && got != c.want {
				t.Fatalf("ParseURI(%q) = %q, want %q", c.uri, got, c.want)
			}
		})
	}
}
