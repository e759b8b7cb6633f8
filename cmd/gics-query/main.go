// Command gics-query inspects a database written by "gics export".
//
//	gics-query [database.db] [version] [code]
//
// Without a version it prints the tables and per-version counts. With a
// version it lists the sectors, or the children of code when one is given.
package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

func main() {
	dbPath := filepath.Join(".gics", "gics.db")
	if len(os.Args) > 1 {
		dbPath = os.Args[1]
	}
	var version, code string
	if len(os.Args) > 2 {
		version = os.Args[2]
	}
	if len(os.Args) > 3 {
		code = os.Args[3]
	}

	if _, err := os.Stat(dbPath); err != nil {
		fmt.Printf("Error: %v\n", err)
		fmt.Println("Usage: gics-query [database.db] [version] [code]")
		os.Exit(1)
	}

	if err := queryDB(dbPath, version, code); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

func queryDB(dbPath, version, code string) error {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening DB: %w", err)
	}
	defer db.Close()

	rows, err := db.Query("SELECT name FROM sqlite_master WHERE type='table' ORDER BY name")
	if err != nil {
		return fmt.Errorf("querying tables: %w", err)
	}
	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			rows.Close()
			return err
		}
		tables = append(tables, name)
	}
	rows.Close()
	fmt.Printf("Tables: %v\n", tables)

	if version == "" {
		return printVersions(db)
	}
	return printChildren(db, version, code)
}

func printVersions(db *sql.DB) error {
	rows, err := db.Query(`
		SELECT v.version, v.is_default, v.run_id,
			SUM(CASE WHEN d.level = 1 THEN 1 ELSE 0 END),
			SUM(CASE WHEN d.level = 2 THEN 1 ELSE 0 END),
			SUM(CASE WHEN d.level = 3 THEN 1 ELSE 0 END),
			SUM(CASE WHEN d.level = 4 THEN 1 ELSE 0 END),
			COUNT(d.code)
		FROM versions v LEFT JOIN definitions d ON d.version = v.version
		GROUP BY v.version ORDER BY v.version`)
	if err != nil {
		return fmt.Errorf("querying versions: %w", err)
	}
	defer rows.Close()

	fmt.Println("\nVersions:")
	for rows.Next() {
		var version, runID string
		var isDefault bool
		var sectors, groups, industries, subs, total int
		if err := rows.Scan(&version, &isDefault, &runID, &sectors, &groups, &industries, &subs, &total); err != nil {
			return fmt.Errorf("scanning version: %w", err)
		}
		marker := " "
		if isDefault {
			marker = "*"
		}
		fmt.Printf("%s %s  %d entries (%d/%d/%d/%d)  run %s\n",
			marker, version, total, sectors, groups, industries, subs, runID)
	}
	return rows.Err()
}

func printChildren(db *sql.DB, version, code string) error {
	var name string
	if code != "" {
		err := db.QueryRow(`SELECT name FROM definitions WHERE version = ? AND code = ?`, version, code).Scan(&name)
		if err == sql.ErrNoRows {
			fmt.Printf("\n%s is not defined in %s\n", code, version)
			return nil
		}
		if err != nil {
			return fmt.Errorf("looking up %s: %w", code, err)
		}
		fmt.Printf("\n%s %s (%s)\n", code, name, version)
	} else {
		fmt.Printf("\nSectors (%s)\n", version)
	}

	rows, err := db.Query(`
		SELECT code, name, description FROM definitions
		WHERE version = ? AND parent_code = ? ORDER BY code`, version, code)
	if err != nil {
		return fmt.Errorf("querying children: %w", err)
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		var childCode, childName, description string
		if err := rows.Scan(&childCode, &childName, &description); err != nil {
			return fmt.Errorf("scanning child: %w", err)
		}
		count++
		fmt.Printf("  %-8s %s\n", childCode, childName)
		if description != "" {
			fmt.Printf("           %s\n", description)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	fmt.Printf("Total children: %d\n", count)
	return nil
}
