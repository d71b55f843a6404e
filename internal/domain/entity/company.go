package entity

import "time"

// Company representa un cliente/proveedor (거래처) de la organización de ventas.
type Company struct {
	ID             string
	Name           string
	BusinessNumber string // número de registro comercial (사업자등록번호)
	Address        string
	Phone          string
	Fax            string
	Email          string
	Notes          string
	Parcel         string // transportista preferido para envíos
	Industry       []string
	IsOverseas     bool
	CreatedAt      time.Time
	UpdatedAt      time.Time

	Contacts []*Contact // solo se llena en el detalle
}

// CompanyFile archivo adjunto de una empresa guardado en el almacenamiento de objetos.
type CompanyFile struct {
	ID          string
	CompanyID   string
	UserID      string
	FileName    string
	StorageKey  string
	ContentType string
	Size        int64
	CreatedAt   time.Time
}
