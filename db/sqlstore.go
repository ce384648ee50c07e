package db

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"echo/types"

	"github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// Supported SQL drivers
const (
	DriverSQLite   = "sqlite3"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type dialect struct {
	create string
	get    string
	upsert string
	all    string
}

var dialects = map[string]dialect{
	DriverSQLite: {
		create: `CREATE TABLE IF NOT EXISTS echo_objects (
			id VARCHAR(64) PRIMARY KEY,
			parent VARCHAR(64) NOT NULL,
			name TEXT NOT NULL,
			record TEXT NOT NULL)`,
		get: `SELECT record FROM echo_objects WHERE id = ?`,
		upsert: `INSERT INTO echo_objects (id, parent, name, record) VALUES (?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET parent = excluded.parent, name = excluded.name, record = excluded.record`,
		all: `SELECT record FROM echo_objects ORDER BY id`,
	},
	DriverMySQL: {
		create: `CREATE TABLE IF NOT EXISTS echo_objects (
			id VARCHAR(64) PRIMARY KEY,
			parent VARCHAR(64) NOT NULL,
			name TEXT NOT NULL,
			record MEDIUMTEXT NOT NULL)`,
		get: `SELECT record FROM echo_objects WHERE id = ?`,
		upsert: `INSERT INTO echo_objects (id, parent, name, record) VALUES (?, ?, ?, ?)
			ON DUPLICATE KEY UPDATE parent = VALUES(parent), name = VALUES(name), record = VALUES(record)`,
		all: `SELECT record FROM echo_objects ORDER BY id`,
	},
	DriverPostgres: {
		create: `CREATE TABLE IF NOT EXISTS echo_objects (
			id VARCHAR(64) PRIMARY KEY,
			parent VARCHAR(64) NOT NULL,
			name TEXT NOT NULL,
			record TEXT NOT NULL)`,
		get: `SELECT record FROM echo_objects WHERE id = $1`,
		upsert: `INSERT INTO echo_objects (id, parent, name, record) VALUES ($1, $2, $3, $4)
			ON CONFLICT (id) DO UPDATE SET parent = EXCLUDED.parent, name = EXCLUDED.name, record = EXCLUDED.record`,
		all: `SELECT record FROM echo_objects ORDER BY id`,
	},
}

// SQLStore keeps object records in a SQL table, one YAML document per row
type SQLStore struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLStore connects to the database and creates the object table if
// needed. driver is one of DriverSQLite, DriverMySQL or DriverPostgres.
func OpenSQLStore(driver, dsn string) (*SQLStore, error) {
	if _, ok := dialects[driver]; !ok {
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	if driver == DriverMySQL {
		cfg, err := mysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("mysql dsn: %w", err)
		}
		dsn = cfg.FormatDSN()
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		slog.Error("failed to open store connection", slog.String("driver", driver), slog.Any("error", err))
		return nil, fmt.Errorf("open %s store: %w", driver, err)
	}
	if driver == DriverSQLite {
		// Each sqlite connection to :memory: is a separate database
		conn.SetMaxOpenConns(1)
	}

	s, err := NewSQLStore(conn, driver)
	if err != nil {
		conn.Close()
		return nil, err
	}
	return s, nil
}

// NewSQLStore wraps an open database handle
func NewSQLStore(conn *sql.DB, driver string) (*SQLStore, error) {
	d, ok := dialects[driver]
	if !ok {
		return nil, fmt.Errorf("unsupported store driver %q", driver)
	}
	if _, err := conn.Exec(d.create); err != nil {
		return nil, fmt.Errorf("create object table: %w", err)
	}
	return &SQLStore{db: conn, dialect: d}, nil
}

// Get loads an object by ID
func (s *SQLStore) Get(id types.ObjID) (*Object, error) {
	var data string
	err := s.db.QueryRow(s.dialect.get, string(id)).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", id, err)
	}
	return UnmarshalObject([]byte(data))
}

// Put inserts or replaces an object by ID
func (s *SQLStore) Put(obj *Object) error {
	if obj == nil || obj.ID == types.ObjNothing {
		return fmt.Errorf("cannot store object without an id")
	}
	data, err := MarshalObject(obj)
	if err != nil {
		return err
	}
	if _, err := s.db.Exec(s.dialect.upsert, string(obj.ID), string(obj.Parent), obj.Name, string(data)); err != nil {
		slog.Error("failed to store object", slog.String("id", string(obj.ID)), slog.Any("error", err))
		return fmt.Errorf("store %s: %w", obj.ID, err)
	}
	slog.Debug("stored object", slog.String("id", string(obj.ID)), slog.Int("bytes", len(data)))
	return nil
}

// All loads every stored object ordered by ID
func (s *SQLStore) All() ([]*Object, error) {
	rows, err := s.db.Query(s.dialect.all)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer rows.Close()

	var result []*Object
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		obj, err := UnmarshalObject([]byte(data))
		if err != nil {
			return nil, err
		}
		result = append(result, obj)
	}
	return result, rows.Err()
}

// Close closes the underlying database
func (s *SQLStore) Close() error {
	return s.db.Close()
}
