package weburl

import "testing"

func assertNoErr(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestParseDefaultPort(t *testing.T) {
	u, err := Parse("http://example.org/index.html")
	assertNoErr(t, err)
	if u.Host != "example.org" || u.Port != 80 || u.Path != "/index.html" {
		t.Fatalf("got %+v", u)
	}
}

func TestParseExplicitPort(t *testing.T) {
	u, err := Parse("https://example.org:8080/a")
	assertNoErr(t, err)
	if u.Port != 8080 {
		t.Fatalf("got port %d", u.Port)
	}
}

func TestParseNoPath(t *testing.T) {
	u, err := Parse("http://example.org")
	assertNoErr(t, err)
	if u.Path != "/" {
		t.Fatalf("got path %q", u.Path)
	}
}

func TestParseUnsupportedScheme(t *testing.T) {
	if _, err := Parse("ftp://example.org/"); err == nil {
		t.Fatal("expected error for unsupported scheme")
	}
}

func TestOrigin(t *testing.T) {
	u, err := Parse("http://example.org/a/b")
	assertNoErr(t, err)
	if got := u.Origin(); got != "http://example.org:80" {
		t.Fatalf("got %q", got)
	}
}

func TestResolvePathRelative(t *testing.T) {
	base, _ := Parse("http://example.org/a/b.html")
	r, err := base.Resolve("c.html")
	assertNoErr(t, err)
	if r.Path != "/a/c.html" {
		t.Fatalf("got %q", r.Path)
	}
}

func TestResolveAbsolutePath(t *testing.T) {
	base, _ := Parse("http://example.org/a/b.html")
	r, err := base.Resolve("/d.html")
	assertNoErr(t, err)
	if r.Path != "/d.html" {
		t.Fatalf("got %q", r.Path)
	}
}

func TestResolveParentSegments(t *testing.T) {
	base, _ := Parse("http://example.org/a/b/c.html")
	r, err := base.Resolve("../d.html")
	assertNoErr(t, err)
	if r.Path != "/a/d.html" {
		t.Fatalf("got %q", r.Path)
	}
}

func TestResolveSchemeRelative(t *testing.T) {
	base, _ := Parse("https://example.org/a/b.html")
	r, err := base.Resolve("//other.org/x")
	assertNoErr(t, err)
	if r.Host != "other.org" || r.Scheme != "https" {
		t.Fatalf("got %+v", r)
	}
}

func TestResolveAbsoluteURL(t *testing.T) {
	base, _ := Parse("http://example.org/a/b.html")
	r, err := base.Resolve("https://other.org/y")
	assertNoErr(t, err)
	if r.Host != "other.org" || r.Scheme != "https" {
		t.Fatalf("got %+v", r)
	}
}

func TestParseDataURL(t *testing.T) {
	u, err := Parse("data:text/html,hello")
	assertNoErr(t, err)
	if u.Scheme != "data" || u.DataMediaType != "text/html" || u.DataBody != "hello" {
		t.Fatalf("got %+v", u)
	}
}

func TestParseFileURL(t *testing.T) {
	u, err := Parse("file:///tmp/test.html")
	assertNoErr(t, err)
	if u.Scheme != "file" || u.FilePath != "/tmp/test.html" {
		t.Fatalf("got %+v", u)
	}
}
