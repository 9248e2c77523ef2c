package render

import (
	"bytes"
	"testing"

	"storefront-web/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolveKnownKeys(t *testing.T) {
	r := NewRegistry()

	for _, key := range []string{"StoreTemplateA", "StoreTemplateB", "StoreTemplateC", "StoreTemplateD"} {
		assert.True(t, r.Known(key))
		assert.Equal(t, key, r.Resolve(key).Key)
	}
}

func TestRegistryResolveUnknownFallsBackToDefault(t *testing.T) {
	r := NewRegistry()

	assert.Equal(t, models.DefaultTemplateKey, r.Resolve("").Key)
	assert.Equal(t, models.DefaultTemplateKey, r.Resolve("StoreTemplateZ").Key)
}

func TestEveryRegisteredKeyHasAParsedTemplate(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	assert.NoError(t, NewRegistry().Validate(tmpl))
}

func TestSkinsRenderEmptyCatalog(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var page StorePage
	page.Chrome = BuildChrome(models.DefaultBranding(), false)
	page.WithPagination(1, 1, 0)

	// Every skin must tolerate an empty product collection.
	for _, e := range NewRegistry().Entries() {
		var buf bytes.Buffer
		err := tmpl.ExecuteTemplate(&buf, e.Template, page)
		assert.NoError(t, err, "skin %s", e.Key)
		assert.Contains(t, buf.String(), "No se encontraron productos")
	}
}

func TestSkinsRenderProducts(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	page := StorePage{
		Chrome: BuildChrome(models.DefaultBranding(), false),
		Products: []ProductView{
			{ID: 1, Name: "Polera", SKU: "SKU-001", HasPrice: true, PriceDisplay: "$12.990", CategoryName: "Ropa", Available: true},
			{ID: 2, Name: "Gorro", CategoryName: UnknownCategory},
		},
	}
	page.WithPagination(1, 1, 2)

	for _, e := range NewRegistry().Entries() {
		var buf bytes.Buffer
		require.NoError(t, tmpl.ExecuteTemplate(&buf, e.Template, page))

		out := buf.String()
		assert.Contains(t, out, "Polera")
		assert.Contains(t, out, "$12.990")
		// Zero price renders the consult affordance.
		assert.Contains(t, out, "Consultar precio")
	}
}
