package urlutil

import "testing"

func TestRemoveBOM(t *testing.T) {
	withBOM := append([]byte{0xEF, 0xBB, 0xBF}, []byte("<x/>")...)
	got := RemoveBOM(withBOM)
	if string(got) != "<x/>" {
		t.Errorf("RemoveBOM(withBOM) = %q, want %q", got, "<x/>")
	}
	if got := RemoveBOM([]byte("<x/>")); string(got) != "<x/>" {
		t.Errorf("RemoveBOM(no bom) = %q, want unchanged", got)
	}
}

// Applying RemoveBOM twice gives the same result as applying it once.
func TestRemoveBOMIdempotent(t *testing.T) {
	inputs := [][]byte{
		append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello")...),
		[]byte("hello"),
		{},
		{0xEF, 0xBB, 0xBF},
	}
	for _, in := range inputs {
		once := RemoveBOM(in)
		twice := RemoveBOM(once)
		if string(once) != string(twice) {
			t.Errorf("RemoveBOM not idempotent on %v: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestResolveRelative(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"/a/b", "c/d", "/a/c/d"},
		{"http://a.b/x/", "c/d", "http://a.b/x/c/d"},
		{"http://a.b", "http://example.com/x", "http://example.com/x"},
		{"/a/b", "http://example.com/x", "http://example.com/x"},
		{"http://a.b", "c/d", "http://a.b/c/d"},
		{"http://a.b/x", "c/d", "http://a.b/c/d"},
	}
	for _, tt := range tests {
		if got := ResolveRelative(tt.base, tt.path); got != tt.want {
			t.Errorf("ResolveRelative(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}

// An absolute URL argument is returned unchanged regardless of base.
func TestResolveRelativeIdempotentOnAbsoluteURLs(t *testing.T) {
	absolute := []string{"http://a.b/x", "https://example.com/y/z?q=1"}
	bases := []string{"http://other.example/", "/local/path"}
	for _, u := range absolute {
		for _, base := range bases {
			if got := ResolveRelative(base, u); got != u {
				t.Errorf("ResolveRelative(%q, %q) = %q, want %q", base, u, got, u)
			}
		}
	}
}
