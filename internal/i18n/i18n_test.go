package i18n

import "testing"

func TestT(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		lang Lang
		path string
		want string
	}{
		{English, "nav.docs", "Documentation"},
		{Spanish, "nav.docs", "Documentación"},
		{Spanish, "common.login", "Iniciar sesión"},
		{English, "common.missing", "missing"},
		{English, "nothing.at.all", "all"},
		{English, "common", "common"},
		{English, "nav.docs.deeper", "deeper"},
		{"fr", "nav.api", "API Reference"},
	}
	for _, tt := range tests {
		if got := c.T(tt.lang, tt.path); got != tt.want {
			t.Errorf("T(%s, %q) = %q, want %q", tt.lang, tt.path, got, tt.want)
		}
	}
}

func TestCatalogsHaveSameKeys(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatal(err)
	}
	var walk func(prefix string, en, es map[string]any)
	walk = func(prefix string, en, es map[string]any) {
		for k, v := range en {
			other, ok := es[k]
			if !ok {
				t.Errorf("es catalog missing %s%s", prefix, k)
				continue
			}
			if sub, ok := v.(map[string]any); ok {
				osub, _ := other.(map[string]any)
				walk(prefix+k+".", sub, osub)
			}
		}
	}
	walk("", c.Messages(English), c.Messages(Spanish))
}

func TestParseLang(t *testing.T) {
	if l, ok := ParseLang("es"); !ok || l != Spanish {
		t.Error("es should parse")
	}
	if _, ok := ParseLang("ar"); ok {
		t.Error("ar is not supported")
	}
}
