package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"astrolabe/internal/cycle"
	"astrolabe/internal/dignity"
	"astrolabe/internal/sky"
)

// Tables are the reference tables a project may replace. A nil field means
// the built-in table is used.
type Tables struct {
	Cycles  *cycle.Table
	Dignity *dignity.Table
}

type tablesFile struct {
	Cycles  []cycle.Record          `yaml:"cycles"`
	Dignity map[string]rulershipRow `yaml:"dignity"`
}

type rulershipRow struct {
	Domicile   []sky.Sign `yaml:"domicile"`
	Exaltation []sky.Sign `yaml:"exaltation"`
	Detriment  []sky.Sign `yaml:"detriment"`
	Fall       []sky.Sign `yaml:"fall"`
}

// LoadTables reads a tables file. Sections left out of the file fall back to
// the built-in tables.
func LoadTables(path string) (*Tables, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}

	var file tablesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("loading tables: %w", err)
	}

	tables := &Tables{}
	if len(file.Cycles) > 0 {
		tables.Cycles, err = cycle.NewTable(file.Cycles)
		if err != nil {
			return nil, fmt.Errorf("loading tables: %w", err)
		}
	}
	if len(file.Dignity) > 0 {
		rows, err := rulershipRows(file.Dignity)
		if err != nil {
			return nil, fmt.Errorf("loading tables: %w", err)
		}
		tables.Dignity = dignity.NewTable(rows)
	}
	return tables, nil
}

func rulershipRows(raw map[string]rulershipRow) (map[sky.Body]dignity.Rulership, error) {
	rows := make(map[sky.Body]dignity.Rulership, len(raw))
	for name, row := range raw {
		body, ok := sky.ParseBody(name)
		if !ok {
			return nil, fmt.Errorf("dignity: unknown body %q", name)
		}
		if !body.IsClassical() {
			return nil, fmt.Errorf("dignity: %s is not a classical body", body)
		}
		if len(row.Domicile) == 0 {
			return nil, fmt.Errorf("dignity: %s has no domicile", body)
		}
		rows[body] = dignity.Rulership{
			Domicile:   row.Domicile,
			Exaltation: row.Exaltation,
			Detriment:  row.Detriment,
			Fall:       row.Fall,
		}
	}
	return rows, nil
}
