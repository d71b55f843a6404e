// import_companies genera un script SQL con las empresas de la exportación CSV del sistema anterior.
// Las exportaciones antiguas vienen en EUC-KR; las nuevas en UTF-8 (con o sin BOM).
//
// Uso: go run ./cmd/import_companies [-encoding auto|euc-kr|utf-8] [-out companies_seed.sql] companies.csv
//
// Columnas: name, business_number, address, phone, fax, email, industry (separado por "/"),
// is_overseas (Y/N), notes. La primera fila es el encabezado.
package main

import (
	"bytes"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

type companyRow struct {
	ID             string
	Name           string
	BusinessNumber string
	Address        string
	Phone          string
	Fax            string
	Email          string
	Industry       []string
	IsOverseas     bool
	Notes          string
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func main() {
	enc := flag.String("encoding", "auto", "codificación del CSV: auto, euc-kr, utf-8")
	outPath := flag.String("out", "companies_seed.sql", "ruta del script generado")
	flag.Parse()
	if flag.NArg() < 1 {
		fmt.Fprintln(os.Stderr, "falta la ruta del CSV")
		os.Exit(1)
	}

	raw, err := os.ReadFile(flag.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Abrir CSV: %v\n", err)
		os.Exit(1)
	}
	r, err := decoder(raw, *enc)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Codificación: %v\n", err)
		os.Exit(1)
	}
	rows, skipped, err := parseCompanies(r)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
		os.Exit(1)
	}
	defer out.Close()
	if err := writeSQL(out, rows); err != nil {
		fmt.Fprintf(os.Stderr, "Escribir SQL: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Generado %s: %d empresas (%d filas omitidas)\n", *outPath, len(rows), skipped)
}

// decoder devuelve un lector UTF-8 según la codificación pedida.
// En modo auto, un contenido que no es UTF-8 válido se trata como EUC-KR.
func decoder(raw []byte, enc string) (io.Reader, error) {
	switch strings.ToLower(enc) {
	case "utf-8", "utf8":
		return bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)), nil
	case "euc-kr", "euckr", "cp949":
		return transform.NewReader(bytes.NewReader(raw), korean.EUCKR.NewDecoder()), nil
	case "auto", "":
		if utf8.Valid(raw) {
			return bytes.NewReader(bytes.TrimPrefix(raw, utf8BOM)), nil
		}
		return transform.NewReader(bytes.NewReader(raw), korean.EUCKR.NewDecoder()), nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %s", enc)
	}
}

// parseCompanies lee las filas; las que no tienen nombre se omiten.
func parseCompanies(r io.Reader) ([]companyRow, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	if _, err := cr.Read(); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	var rows []companyRow
	skipped := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		col := func(i int) string {
			if i < len(rec) {
				return strings.TrimSpace(rec[i])
			}
			return ""
		}
		if col(0) == "" {
			skipped++
			continue
		}
		rows = append(rows, companyRow{
			ID:             uuid.New().String(),
			Name:           col(0),
			BusinessNumber: col(1),
			Address:        col(2),
			Phone:          col(3),
			Fax:            col(4),
			Email:          col(5),
			Industry:       splitIndustry(col(6)),
			IsOverseas:     isYes(col(7)),
			Notes:          col(8),
		})
	}
	return rows, skipped, nil
}

func splitIndustry(s string) []string {
	out := []string{}
	for _, p := range strings.Split(s, "/") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func isYes(s string) bool {
	switch strings.ToUpper(s) {
	case "Y", "YES", "TRUE", "1", "해외":
		return true
	}
	return false
}

func writeSQL(w io.Writer, rows []companyRow) error {
	var b strings.Builder
	b.WriteString("-- Empresas importadas del sistema anterior\n")
	b.WriteString("BEGIN;\n")
	for _, c := range rows {
		fmt.Fprintf(&b, "INSERT INTO companies (id, name, business_number, address, phone, fax, email, notes, industry, is_overseas)\n")
		fmt.Fprintf(&b, "VALUES ('%s', '%s', '%s', '%s', '%s', '%s', '%s', '%s', %s, %t)\n",
			c.ID, escapeSQL(c.Name), escapeSQL(c.BusinessNumber), escapeSQL(c.Address),
			escapeSQL(c.Phone), escapeSQL(c.Fax), escapeSQL(c.Email), escapeSQL(c.Notes),
			textArray(c.Industry), c.IsOverseas)
		b.WriteString("ON CONFLICT (id) DO NOTHING;\n")
	}
	b.WriteString("COMMIT;\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func textArray(items []string) string {
	if len(items) == 0 {
		return "'{}'"
	}
	quoted := make([]string, len(items))
	for i, it := range items {
		quoted[i] = "'" + escapeSQL(it) + "'"
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]::text[]"
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
