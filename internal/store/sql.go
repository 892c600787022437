package store

import (
	"context"
	"database/sql"
	"fmt"

	"roster-cli/internal/model"

	_ "github.com/jackc/pgx/v5/stdlib" // registers driver "pgx"
	_ "modernc.org/sqlite"            // registers driver "sqlite"
)

// loadSQL reads every row of table. Rows come back in id order so ties in
// the name sort stay deterministic across loads.
func loadSQL(ctx context.Context, driver, dsn, table string) ([]model.Person, error) {
	if !validIdent(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}
	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx,
		`SELECT id, name, role, COALESCE(image, ''), COALESCE(story, '') FROM `+table+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer rows.Close()

	var people []model.Person
	for rows.Next() {
		var p model.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Role, &p.Image, &p.Story); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		people = append(people, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return people, nil
}
