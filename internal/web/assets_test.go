package web

import "testing"

func TestTemplatesDefineFragments(t *testing.T) {
	tmpl, err := Templates()
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"index.html", "flash", "gate", "app", "taps", "cart", "menu", "history"} {
		if tmpl.Lookup(name) == nil {
			t.Errorf("template %q not defined", name)
		}
	}
}
