package media_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Tienda-Funkos-api/internal/domain/media"
)

func TestImageURL_NormalizaRutas(t *testing.T) {
	r := media.NewResolver("")

	cases := []struct {
		name  string
		image string
		want  string
	}{
		{"ya con prefijo", "/multimedia/star-wars/yoda-1.webp", "/multimedia/star-wars/yoda-1.webp"},
		{"barra inicial", "/star-wars/yoda-1.webp", "/multimedia/star-wars/yoda-1.webp"},
		{"prefijo sin barra", "multimedia/yoda.webp", "/multimedia/yoda.webp"},
		{"nombre suelto", "yoda.webp", "/multimedia/yoda.webp"},
		{"espacios alrededor", "  yoda.webp ", "/multimedia/yoda.webp"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, r.ImageURL(tc.image, "Star Wars", "Yoda"))
		})
	}
}

func TestImageURL_SinImagen_DerivaDeLicenciaYNombre(t *testing.T) {
	r := media.NewResolver("/multimedia/")
	assert.Equal(t, "/multimedia/star-wars/baby-yoda-grogu-1.webp", r.ImageURL("", "Star Wars", "Baby Yoda (Grogu)"))
	assert.Equal(t, "/multimedia/pokemon/pokemon-pikachu-1.webp", r.ImageURL(" ", "Pokemon", "Pokémon Pikachu"))
}

func TestImageURL_SinDatos_UsaBanner(t *testing.T) {
	r := media.NewResolver("")
	assert.Equal(t, "/multimedia/funkos-banner.webp", r.ImageURL("", "", "Yoda"))
	assert.Equal(t, "/multimedia/funkos-banner.webp", r.ImageURL("", "Star Wars", ""))
	assert.Equal(t, "/multimedia/funkos-banner.webp", r.ImageURL("", "Star Wars", "###"))
}

func TestImageURL_PrefijoPersonalizado(t *testing.T) {
	r := media.NewResolver("static")
	assert.Equal(t, "/static/yoda.webp", r.ImageURL("yoda.webp", "", ""))
	assert.Equal(t, "/static/yoda.webp", r.ImageURL("static/yoda.webp", "", ""))
	assert.Equal(t, "/static/funkos-banner.webp", r.ImageURL("", "", ""))
}

func TestSlug_QuitaAcentosYSimbolos(t *testing.T) {
	assert.Equal(t, "pokemon-pikachu-553", media.Slug("Pokémon Pikachu #553"))
	assert.Equal(t, "nino-arana", media.Slug("  Niño  Araña! "))
	assert.Equal(t, "", media.Slug("¡¿?!"))
}
