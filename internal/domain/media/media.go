// Package media deriva la ruta pública de la imagen de un producto.
package media

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DefaultPrefix carpeta pública de imágenes.
const DefaultPrefix = "/multimedia"

// Banner nombre de la imagen por defecto dentro del prefijo.
const Banner = "funkos-banner.webp"

var (
	nonSlug    = regexp.MustCompile(`[^a-z0-9]+`)
	whitespace = regexp.MustCompile(`\s+`)
)

// Resolver construye rutas de imagen bajo un prefijo fijo.
type Resolver struct {
	prefix string
}

// NewResolver crea un Resolver. Un prefijo vacío usa DefaultPrefix.
func NewResolver(prefix string) *Resolver {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), "/")
	if prefix == "" {
		prefix = DefaultPrefix
	}
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}
	return &Resolver{prefix: prefix}
}

// ImageURL devuelve la ruta a mostrar para un producto. Nunca falla: sin imagen ni
// datos suficientes para derivarla se usa el banner.
//
//	/multimedia/x.webp → igual
//	/x.webp            → /multimedia/x.webp
//	multimedia/x.webp  → /multimedia/x.webp
//	x.webp             → /multimedia/x.webp
//	"" + licencia + nombre → /multimedia/<licencia>/<slug-nombre>-1.webp
func (r *Resolver) ImageURL(image, licence, name string) string {
	image = strings.TrimSpace(image)
	if image != "" {
		bare := strings.TrimPrefix(r.prefix, "/")
		switch {
		case strings.HasPrefix(image, r.prefix+"/"):
			return image
		case strings.HasPrefix(image, "/"):
			return r.prefix + image
		case strings.HasPrefix(image, bare+"/"):
			return "/" + image
		default:
			return r.prefix + "/" + image
		}
	}

	licence = strings.TrimSpace(licence)
	name = strings.TrimSpace(name)
	if licence != "" && name != "" {
		folder := whitespace.ReplaceAllString(strings.ToLower(licence), "-")
		if slug := Slug(name); slug != "" {
			return r.prefix + "/" + folder + "/" + slug + "-1.webp"
		}
	}
	return r.prefix + "/" + Banner
}

// Slug pasa un texto a minúsculas sin acentos, con guiones entre palabras.
// "Pokémon Pikachu #553" → "pokemon-pikachu-553".
func Slug(s string) string {
	folded, _, err := transform.String(transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC), s)
	if err != nil {
		folded = s
	}
	out := nonSlug.ReplaceAllString(strings.ToLower(folded), "-")
	return strings.Trim(out, "-")
}
