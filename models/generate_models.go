package models

import (
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"
	"gorm.io/gen"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

/*
Model tooling used by the `generate` command.

GenerateModels migrates every model with gorm, seeds the status rows, prints a
column mismatch report and writes typed query helpers (gorm/gen) to outPath.

The mismatch report lists database columns that no model field maps to:

	--- Table: projects ---
	  - legacy_flag
*/

// AutoMigrate creates or alters every table and makes sure the fixed states exist.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(All()...); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	states := DefaultStates()
	if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&states).Error; err != nil {
		return fmt.Errorf("seed states: %w", err)
	}
	return nil
}

func GenerateModels(db *gorm.DB, outPath string) error {
	migrateDB := db.Session(&gorm.Session{
		SkipDefaultTransaction: true,
		PrepareStmt:            false,
	})

	log.Info().Msg("Migrating models...")
	if err := AutoMigrate(migrateDB); err != nil {
		return err
	}

	report, err := ColumnMismatchReport(db)
	if err != nil {
		return err
	}
	logColumnMismatchReport(report)

	g := gen.NewGenerator(gen.Config{
		OutPath:           outPath,
		Mode:              gen.WithDefaultQuery | gen.WithQueryInterface,
		FieldNullable:     true,
		FieldCoverable:    true,
		FieldWithIndexTag: true,
		FieldWithTypeTag:  true,
	})
	g.UseDB(db)
	g.ApplyBasic(All()...)
	g.Execute()

	log.Info().Str("out", outPath).Msg("Model generation complete")
	return nil
}

// ColumnMismatchReport maps each table to the database columns that no model
// field accounts for. Tables without mismatches are omitted.
func ColumnMismatchReport(db *gorm.DB) (map[string][]string, error) {
	report := make(map[string][]string)

	for _, model := range All() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			return nil, fmt.Errorf("parse model %T: %w", model, err)
		}
		table := stmt.Schema.Table

		if !db.Migrator().HasTable(table) {
			log.Warn().Str("table", table).Msg("Table does not exist yet")
			continue
		}

		columnTypes, err := db.Migrator().ColumnTypes(model)
		if err != nil {
			return nil, fmt.Errorf("error querying columns for table %s: %w", table, err)
		}

		known := make(map[string]bool, len(stmt.Schema.DBNames))
		for _, name := range stmt.Schema.DBNames {
			known[name] = true
		}

		var mismatches []string
		for _, col := range columnTypes {
			if !known[col.Name()] {
				mismatches = append(mismatches, col.Name())
			}
		}
		if len(mismatches) > 0 {
			sort.Strings(mismatches)
			report[table] = mismatches
		}
	}

	return report, nil
}

func logColumnMismatchReport(report map[string][]string) {
	total := 0
	for table, columns := range report {
		log.Warn().Str("table", table).Strs("columns", columns).Msg("Columns not accounted for in model")
		total += len(columns)
	}
	log.Info().Int("total", total).Msg("Column mismatch report complete")
}
