package i18n

import (
	"context"
	"testing"

	"github.com/PauloHFS/blogicum/internal/contextkeys"
)

func TestGet(t *testing.T) {
	tests := []struct {
		name   string
		locale any
		want   string
	}{
		{"Sem idioma", nil, "ru"},
		{"Russo", "ru", "ru"},
		{"Inglês", "en", "en"},
		{"Desconhecido", "pt", "ru"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			if tt.locale != nil {
				ctx = context.WithValue(ctx, contextkeys.LocaleKey, tt.locale)
			}
			if got := Get(ctx).Locale; got != tt.want {
				t.Errorf("Get().Locale = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTranslationsComplete(t *testing.T) {
	for _, tr := range []Translation{ruRU, enUS} {
		if tr.Login == "" || tr.NotFound == "" || tr.PageOf == "" {
			t.Errorf("translation %q has empty labels", tr.Locale)
		}
	}
}
