package ports

import (
	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// DocumentPDFGenerator renderiza un documento comercial a PDF.
type DocumentPDFGenerator interface {
	Generate(doc *entity.Document, company *entity.Company, owner *entity.User) ([]byte, error)
}
