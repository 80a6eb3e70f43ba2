package norms

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/payam1698/aistudio-final/internal/mcmi"
)

// LoadDB reads the entire norms database (schema in internal/db) into a
// Static snapshot. Queries use $N placeholders, which both the pgx
// stdlib and modernc sqlite drivers accept.
func LoadDB(ctx context.Context, db *sql.DB) (*Static, error) {
	defs, index, err := loadScales(ctx, db)
	if err != nil {
		return nil, err
	}
	if err := loadItems(ctx, db, defs, index); err != nil {
		return nil, err
	}
	if err := loadBaseRates(ctx, db, defs, index); err != nil {
		return nil, err
	}
	rules, err := loadRules(ctx, db)
	if err != nil {
		return nil, err
	}
	return NewStatic(defs, rules)
}

func loadScales(ctx context.Context, db *sql.DB) ([]mcmi.ScaleDefinition, map[string]int, error) {
	rows, err := db.QueryContext(ctx, `SELECT id, code, name, disclosure, tags FROM scales ORDER BY position`)
	if err != nil {
		return nil, nil, fmt.Errorf("load scales: %w", err)
	}
	defer rows.Close()

	var defs []mcmi.ScaleDefinition
	index := map[string]int{}
	for rows.Next() {
		var (
			def        mcmi.ScaleDefinition
			disclosure int
			tags       string
		)
		if err := rows.Scan(&def.ID, &def.Code, &def.Name, &disclosure, &tags); err != nil {
			return nil, nil, fmt.Errorf("scan scale: %w", err)
		}
		def.Disclosure = disclosure != 0
		if !def.Disclosure {
			// Row presence is the classification; an empty csv is an
			// explicitly empty tag set, not a missing one.
			def.Tags = parseTags(tags)
		}
		def.BaseRates = map[mcmi.Sex]mcmi.BRTable{}
		index[def.ID] = len(defs)
		defs = append(defs, def)
	}
	return defs, index, rows.Err()
}

func loadItems(ctx context.Context, db *sql.DB, defs []mcmi.ScaleDefinition, index map[string]int) error {
	rows, err := db.QueryContext(ctx, `SELECT scale_id, item_index, scored_true FROM scale_items ORDER BY scale_id, position`)
	if err != nil {
		return fmt.Errorf("load scale items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sid    string
			idx    int
			scored int
		)
		if err := rows.Scan(&sid, &idx, &scored); err != nil {
			return fmt.Errorf("scan scale item: %w", err)
		}
		i, ok := index[sid]
		if !ok {
			return &mcmi.ConfigError{ScaleID: sid, Reason: "item row for undeclared scale"}
		}
		defs[i].Items = append(defs[i].Items, mcmi.Item{Index: idx, ScoredTrue: scored != 0})
	}
	return rows.Err()
}

func loadBaseRates(ctx context.Context, db *sql.DB, defs []mcmi.ScaleDefinition, index map[string]int) error {
	rows, err := db.QueryContext(ctx, `SELECT scale_id, sex, raw, br FROM base_rates ORDER BY scale_id, sex, raw`)
	if err != nil {
		return fmt.Errorf("load base rates: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			sid, sexName string
			raw, br      int
		)
		if err := rows.Scan(&sid, &sexName, &raw, &br); err != nil {
			return fmt.Errorf("scan base rate: %w", err)
		}
		i, ok := index[sid]
		if !ok {
			return &mcmi.ConfigError{ScaleID: sid, Reason: "base-rate row for undeclared scale"}
		}
		sex, err := mcmi.ParseSex(sexName)
		if err != nil {
			return &mcmi.ConfigError{ScaleID: sid, Reason: fmt.Sprintf("unknown sex %q in base_rates", sexName)}
		}
		t := defs[i].BaseRates[sex]
		if raw != len(t) {
			return &mcmi.ConfigError{ScaleID: sid, Reason: fmt.Sprintf("base-rate table for sex %q has a gap at raw %d", sex, raw)}
		}
		defs[i].BaseRates[sex] = append(t, br)
	}
	return rows.Err()
}

func loadRules(ctx context.Context, db *sql.DB) (mcmi.CorrectionRules, error) {
	rows, err := db.QueryContext(ctx, `SELECT name, data FROM correction_rules`)
	if err != nil {
		return mcmi.CorrectionRules{}, fmt.Errorf("load correction rules: %w", err)
	}
	defer rows.Close()

	var doc Document
	for rows.Next() {
		var name, data string
		if err := rows.Scan(&name, &data); err != nil {
			return mcmi.CorrectionRules{}, fmt.Errorf("scan correction rule: %w", err)
		}
		var dst any
		switch name {
		case "rounding":
			dst = &doc.Rounding
		case "denial":
			dst = &doc.Corrections.Denial
		case "debasement":
			dst = &doc.Corrections.Debasement
		case "defensiveness":
			dst = &doc.Corrections.Defensiveness
		case "inpatient":
			dst = &doc.Corrections.Inpatient
		default:
			return mcmi.CorrectionRules{}, &mcmi.ConfigError{Reason: fmt.Sprintf("unknown correction rule %q", name)}
		}
		if err := json.Unmarshal([]byte(data), dst); err != nil {
			return mcmi.CorrectionRules{}, &mcmi.ConfigError{Reason: fmt.Sprintf("correction rule %q: %v", name, err)}
		}
	}
	if err := rows.Err(); err != nil {
		return mcmi.CorrectionRules{}, err
	}
	return doc.rules()
}

// SaveDoc validates a norms document and replaces the database contents
// with it, atomically.
func SaveDoc(ctx context.Context, db *sql.DB, doc Document) error {
	if _, err := doc.Build(); err != nil {
		return err
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM correction_rules`,
		`DELETE FROM base_rates`,
		`DELETE FROM scale_items`,
		`DELETE FROM scales`,
	} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("clear norms: %w", err)
		}
	}

	for pos, sd := range doc.Scales {
		code := sd.Code
		if code == "" {
			code = sd.ID
		}
		tags := ""
		if sd.Corrections != nil {
			tags = strings.Join(*sd.Corrections, ",")
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO scales (id, code, name, position, disclosure, tags) VALUES ($1,$2,$3,$4,$5,$6)`,
			sd.ID, code, sd.Name, pos, boolToInt(sd.Disclosure), tags,
		); err != nil {
			return fmt.Errorf("insert scale %s: %w", sd.ID, err)
		}
		for j, it := range sd.Items {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO scale_items (scale_id, position, item_index, scored_true) VALUES ($1,$2,$3,$4)`,
				sd.ID, j, it.Item-1, boolToInt(it.Scored),
			); err != nil {
				return fmt.Errorf("insert items for scale %s: %w", sd.ID, err)
			}
		}
		for sexName, table := range sd.BaseRates {
			for raw, br := range table {
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO base_rates (scale_id, sex, raw, br) VALUES ($1,$2,$3,$4)`,
					sd.ID, sexName, raw, br,
				); err != nil {
					return fmt.Errorf("insert base rates for scale %s: %w", sd.ID, err)
				}
			}
		}
	}

	rulePayloads := map[string]any{
		"rounding":      doc.Rounding,
		"denial":        doc.Corrections.Denial,
		"debasement":    doc.Corrections.Debasement,
		"defensiveness": doc.Corrections.Defensiveness,
		"inpatient":     doc.Corrections.Inpatient,
	}
	for name, payload := range rulePayloads {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("marshal rule %s: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO correction_rules (name, data) VALUES ($1,$2)`,
			name, string(data),
		); err != nil {
			return fmt.Errorf("insert rule %s: %w", name, err)
		}
	}

	return tx.Commit()
}

func parseTags(csv string) []mcmi.CorrectionTag {
	tags := []mcmi.CorrectionTag{}
	for _, t := range strings.Split(csv, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, mcmi.CorrectionTag(t))
		}
	}
	return tags
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
