package jobs

import (
	"testing"
	"testing/fstest"
)

func TestLoadBundle(t *testing.T) {
	b, err := LoadBundle()
	if err != nil {
		t.Fatalf("LoadBundle: %v", err)
	}
	if b.Identifier != "de.osca.jobs" {
		t.Fatalf("unexpected identifier %q", b.Identifier)
	}
	if b.Version == "" {
		t.Fatal("expected a version")
	}
	for _, et := range []EmploymentType{FullTime, PartTime, Contract} {
		if _, ok := b.EmploymentTypes[string(et)]; !ok {
			t.Errorf("no labels for %s", et)
		}
	}
}

func TestLoadBundleFSErrors(t *testing.T) {
	cases := map[string]fstest.MapFS{
		"missing":    {},
		"malformed":  {"module.yaml": {Data: []byte("identifier: [unterminated")}},
		"no version": {"module.yaml": {Data: []byte("identifier: de.osca.jobs\n")}},
	}
	for name, fsys := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := LoadBundleFS(fsys, "module.yaml"); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
