package postgres

import "embed"

// Migrations scripts SQL del esquema, embebidos en el binario (golang-migrate, fuente iofs).
//
//go:embed migrations/*.sql
var Migrations embed.FS
