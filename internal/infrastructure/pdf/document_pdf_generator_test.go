package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":        "0",
		"999":      "999",
		"25000":    "25,000",
		"1000000":  "1,000,000",
		"-1234567": "-1,234,567",
		"1234.56":  "1,235",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestDocumentTitle(t *testing.T) {
	assert.Equal(t, "견 적 서", documentTitle(entity.DocumentTypeEstimate))
	assert.Equal(t, "발 주 서", documentTitle(entity.DocumentTypeOrder))
	assert.Equal(t, "의 뢰 서", documentTitle(entity.DocumentTypeRequestQuote))
}

func TestTermsRows_OmiteVacios(t *testing.T) {
	doc := &entity.Document{}
	assert.Nil(t, termsRows(doc))

	valid := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)
	doc.ValidUntil = &valid
	doc.Content.PaymentMethod = "현금"
	assert.Len(t, termsRows(doc), 3) // separador + 2 condiciones
}

func TestGenerate_SinFuentePersonalizada(t *testing.T) {
	doc := &entity.Document{
		Type:           entity.DocumentTypeEstimate,
		DocumentNumber: "EST-20250301-001",
		Date:           time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		Content: entity.DocumentContent{Items: []entity.DocumentItem{
			{Name: "Valve", Spec: "DN50", Quantity: "2", UnitPrice: decimal.NewFromInt(1500), Amount: decimal.NewFromInt(3000)},
		}},
		TotalAmount: decimal.NewFromInt(3000),
	}
	out, err := NewMarotoPDFGenerator("").Generate(doc, &entity.Company{Name: "ACME"}, &entity.User{Name: "Kim"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
