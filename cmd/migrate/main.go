// migrate aplica o revierte el esquema de la base de datos.
//
// Uso: go run ./cmd/migrate [up|down|steps N|force V|version]
package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/jhoicas/crm-api/internal/infrastructure/migration"
	"github.com/jhoicas/crm-api/pkg/config"
	"github.com/jhoicas/crm-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level})

	cmd := "up"
	if len(os.Args) > 1 {
		cmd = os.Args[1]
	}

	m, err := migration.New(cfg.DB.ConnectionString(), log)
	if err != nil {
		log.Fatal().Err(err).Msg("inicializar migraciones")
	}
	defer m.Close()

	switch cmd {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	case "steps", "force":
		if len(os.Args) < 3 {
			log.Fatal().Str("cmd", cmd).Msg("falta el argumento numérico")
		}
		n, convErr := strconv.Atoi(os.Args[2])
		if convErr != nil {
			log.Fatal().Err(convErr).Msg("argumento inválido")
		}
		if cmd == "steps" {
			err = m.Steps(n)
		} else {
			err = m.Force(n)
		}
	case "version":
		v, dirty, vErr := m.Version()
		if vErr == nil {
			fmt.Printf("version=%d dirty=%t\n", v, dirty)
		}
		err = vErr
	default:
		log.Fatal().Str("cmd", cmd).Msg("comando desconocido")
	}
	if err != nil {
		log.Fatal().Err(err).Str("cmd", cmd).Msg("migración fallida")
	}
}
