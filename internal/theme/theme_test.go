package theme

import "testing"

func TestGetKnownNames(t *testing.T) {
	t.Parallel()

	for _, name := range Names() {
		th := Get(name)
		if th.Name == "" {
			t.Fatalf("Get(%q) returned a theme without a name", name)
		}
		if th.Accent == "" || th.Error == "" {
			t.Fatalf("Get(%q) returned an incomplete palette: %#v", name, th)
		}
	}
}

func TestGetFallsBackToAzure(t *testing.T) {
	t.Parallel()

	if got := Get("no-such-theme"); got.Name != Azure.Name {
		t.Fatalf("Get fallback = %q, want %q", got.Name, Azure.Name)
	}
}
