// Package importer implementa el pipeline de importación de hojas de cálculo:
// normalización de encabezados, validación por fila, parseo de montos y fechas
// europeas, detección de duplicados y reconciliación de stock.
package importer

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Campos canónicos a los que se mapean los encabezados de la hoja.
const (
	FieldDate         = "date"
	FieldClient       = "client"
	FieldProduct      = "product"
	FieldQuantity     = "quantity"
	FieldAmount       = "amount"
	FieldUnitPrice    = "unit_price"
	FieldPayment      = "payment"
	FieldSeller       = "seller"
	FieldRegister     = "register"
	FieldCategory     = "category"
	FieldSubcategory  = "subcategory"
	FieldThreshold    = "threshold"
	FieldInitialStock = "initial_stock"
	FieldNotes        = "notes"
)

// HeaderMap mapea campo canónico -> encabezado original de la hoja.
// Todas las búsquedas de valores por fila pasan por este mapa.
type HeaderMap map[string]string

// fieldVariants asocia un campo canónico con sus variantes conocidas
// (francés e inglés, ya normalizadas: sin acentos, minúsculas, sin separadores).
// El orden de declaración decide las colisiones: el primer campo que
// reclama un encabezado se lo queda.
type fieldVariants struct {
	field    string
	variants []string
}

// Diccionario para hojas de ventas (variantes en francés, inglés y español).
// Cada lista incluye el propio nombre canónico normalizado para que una hoja
// ya canónica se mapee igual (idempotencia).
var salesVariants = []fieldVariants{
	{FieldDate, []string{"date", "fecha", "jour", "dia", "day"}},
	{FieldProduct, []string{"product", "produit", "articulo", "article", "designation", "libelle", "item"}},
	{FieldQuantity, []string{"quantity", "quantite", "cantidad", "qte", "qty", "nombre"}},
	{FieldAmount, []string{"amount", "montant", "importe", "monto", "total", "prix", "price", "value", "valeur", "somme"}},
	{FieldClient, []string{"client", "customer", "acheteur"}},
	{FieldPayment, []string{"payment", "paiement", "pago", "reglement", "modepaiement", "moyen"}},
	{FieldSeller, []string{"seller", "vendeur", "vendedor", "employe", "caissier"}},
	{FieldRegister, []string{"register", "caisse", "caja", "pointdevente", "pos"}},
	{FieldCategory, []string{"category", "categorie", "categoria", "type", "famille"}},
	{FieldNotes, []string{"notes", "note", "nota", "commentaire", "remarque", "observation"}},
}

// Diccionario para hojas de stock. El orden evita que "souscategorie" caiga
// en category, que "stockinitial" caiga en quantity y que "prixunitaire"
// caiga en otro campo de precio.
var stockVariants = []fieldVariants{
	{FieldProduct, []string{"product", "nom", "produit", "articulo", "article", "designation", "libelle", "name"}},
	{FieldSubcategory, []string{"subcategory", "souscategorie", "subcategoria", "sousfamille", "soustype"}},
	{FieldCategory, []string{"category", "categorie", "categoria", "type", "famille", "rayon"}},
	{FieldInitialStock, []string{"initialstock", "stockinitial", "stockinicial", "initial", "inicial"}},
	{FieldThreshold, []string{"threshold", "seuil", "seuilalerte", "umbral", "alerte", "alert"}},
	{FieldQuantity, []string{"quantity", "quantite", "cantidad", "qte", "qty", "stock", "nombre"}},
	{FieldUnitPrice, []string{"unitprice", "prixunitaire", "preciounitario", "precio", "tarif", "pu"}},
}

// accentStripper descompone a NFD y elimina las marcas diacríticas (Mn).
var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// NormalizeHeader reduce un encabezado a su forma comparable: sin acentos,
// minúsculas y sin espacios, guiones, guiones bajos ni puntos.
func NormalizeHeader(h string) string {
	s, _, err := transform.String(accentStripper, h)
	if err != nil {
		s = h
	}
	s = strings.ToLower(s)
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case ' ', '\t', '_', '-', '.', '\u00a0', '\u202f':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// IsPlaceholderHeader detecta columnas autogeneradas por la herramienta de
// hojas de cálculo ("__EMPTY", "__EMPTY_1", "Unnamed: 0"). Se descartan
// siempre, sin intentar mapearlas.
func IsPlaceholderHeader(h string) bool {
	trimmed := strings.TrimSpace(h)
	if trimmed == "" {
		return true
	}
	if strings.HasPrefix(trimmed, "__EMPTY") {
		return true
	}
	lower := strings.ToLower(trimmed)
	return strings.HasPrefix(lower, "unnamed:")
}

// MapHeaders construye el HeaderMap para una lista de encabezados crudos.
// Coincidencia en dos pasadas: primero exacta y después contención de
// subcadena en ambos sentidos (el candidato contiene la variante O la
// variante contiene al candidato). Dentro de cada pasada gana la primera
// coincidencia por campo y, en colisión, el campo declarado primero.
// Determinista: el mismo conjunto de encabezados produce siempre el mismo mapa.
func MapHeaders(kind RecordKind, headers []string) HeaderMap {
	dict := salesVariants
	if kind == KindStock {
		dict = stockVariants
	}

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = NormalizeHeader(h)
	}

	hm := make(HeaderMap, len(dict))
	used := make(map[int]bool, len(headers))

	// Sin la pasada exacta, la variante "subcategoria" reclamaría por
	// contención una columna "categoria" que aparezca antes que la de
	// subcategoría.
	for _, match := range []func(string, []string) bool{matchesExact, matchesContained} {
		for _, fv := range dict {
			if _, claimed := hm[fv.field]; claimed {
				continue
			}
			for i, h := range headers {
				if used[i] || IsPlaceholderHeader(h) || normalized[i] == "" {
					continue
				}
				if match(normalized[i], fv.variants) {
					hm[fv.field] = h
					used[i] = true
					break
				}
			}
		}
	}
	return hm
}

func matchesExact(candidate string, variants []string) bool {
	for _, v := range variants {
		if candidate == v {
			return true
		}
	}
	return false
}

// matchesContained acepta contención en ambos sentidos para cubrir tanto
// encabezados compuestos ("Montant TTC") como abreviados ("Mont.").
func matchesContained(candidate string, variants []string) bool {
	for _, v := range variants {
		if strings.Contains(candidate, v) || strings.Contains(v, candidate) {
			return true
		}
	}
	return false
}
