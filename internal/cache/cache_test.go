package cache_test

import (
	"os"
	"path/filepath"
	"testing"

	"ctfmt/internal/cache"
	"ctfmt/internal/diag"
	"ctfmt/internal/source"
)

func TestKeyDependsOnAllInputs(t *testing.T) {
	base := cache.Key("v1", "{}", []string{"int"})
	others := []cache.Digest{
		cache.Key("v2", "{}", []string{"int"}),
		cache.Key("v1", "{0}", []string{"int"}),
		cache.Key("v1", "{}", []string{"string"}),
		cache.Key("v1", "{}", []string{"in", "t"}),
		cache.Key("v1", "{}", nil),
	}
	for i, k := range others {
		if k == base {
			t.Errorf("key %d collides with base", i)
		}
	}
	if cache.Key("v1", "{}", []string{"int"}) != base {
		t.Errorf("key is not deterministic")
	}
}

func TestPutGetRoundTrip(t *testing.T) {
	c, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	tpl := source.MustTemplate("{0")
	d := diag.New(diag.FmtUnexpectedEnd, tpl, 0, 2, 2, "unexpected end of the format string").
		WithEdit("}", source.Point(2), "}").
		WithFixit("[0-9]")
	key := cache.Key("test", tpl.Text(), []string{"int"})

	var miss cache.Entry
	if ok, err := c.Get(key, &miss); ok || err != nil {
		t.Fatalf("Get on empty cache = %v, %v", ok, err)
	}
	if err := c.Put(key, cache.NewEntry(tpl.Text(), []string{"int"}, d)); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got cache.Entry
	ok, err := c.Get(key, &got)
	if err != nil || !ok {
		t.Fatalf("Get = %v, %v", ok, err)
	}
	if got.Valid {
		t.Fatalf("entry marked valid")
	}
	back := got.Diagnostic()
	if back.Render() != d.Render() {
		t.Errorf("rendered diagnostic differs\n got:\n%s\nwant:\n%s", back.Render(), d.Render())
	}
	if len(back.Edits()) != 1 || back.Edits()[0].NewText != "}" {
		t.Errorf("edits = %+v", back.Edits())
	}
}

func TestValidEntry(t *testing.T) {
	e := cache.NewEntry("{}", []string{"int"}, nil)
	if !e.Valid || e.Diagnostic() != nil {
		t.Fatalf("valid entry = %+v", e)
	}
}

func TestDropAll(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "ctfmt")
	c, err := cache.Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	key := cache.Key("test", "{}", nil)
	if err := c.Put(key, cache.NewEntry("{}", nil, nil)); err != nil {
		t.Fatalf("Put: %v", err)
	}
	if err := c.DropAll(); err != nil {
		t.Fatalf("DropAll: %v", err)
	}
	var e cache.Entry
	if ok, _ := c.Get(key, &e); ok {
		t.Errorf("entry survived DropAll")
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("cache dir not recreated: %v", err)
	}
}

func TestNilCache(t *testing.T) {
	var c *cache.Disk
	if err := c.Put(cache.Digest{}, &cache.Entry{}); err != nil {
		t.Errorf("nil Put: %v", err)
	}
	var e cache.Entry
	if ok, err := c.Get(cache.Digest{}, &e); ok || err != nil {
		t.Errorf("nil Get = %v, %v", ok, err)
	}
}
