package repos

import (
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
	"golang.org/x/crypto/bcrypt"
	_ "modernc.org/sqlite"

	"muciocar/internal/domain"
	applog "muciocar/internal/log"
)

// ErrConflict is returned when a unique constraint rejects a write.
var ErrConflict = errors.New("conflict")

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One connection: keeps ":memory:" databases shared and serialises writes.
	db.SetMaxOpenConns(1)
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed staff and a few approved testimonials when the DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}
	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

-- Professionals (staff)
CREATE TABLE IF NOT EXISTS professionals(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  specialty TEXT NOT NULL,
  photo_url TEXT NOT NULL DEFAULT '',
  active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_professionals_name ON professionals(LOWER(name));

-- Appointments
CREATE TABLE IF NOT EXISTS appointments(
  id TEXT PRIMARY KEY,
  date TEXT NOT NULL,                -- YYYY-MM-DD
  time TEXT NOT NULL,                -- HH:MM
  service_id TEXT NOT NULL,
  service_name TEXT NOT NULL,
  professional_id TEXT NOT NULL REFERENCES professionals(id) ON DELETE RESTRICT,
  client_name TEXT NOT NULL,
  phone TEXT NOT NULL,
  email TEXT NOT NULL,
  vehicle TEXT NOT NULL,
  vehicle_year TEXT NOT NULL,
  plate TEXT NOT NULL,
  marketing_opt_in INTEGER NOT NULL DEFAULT 0,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_appointments_slot ON appointments(date, time, professional_id);
CREATE INDEX IF NOT EXISTS idx_appointments_date ON appointments(date);

-- Testimonials
CREATE TABLE IF NOT EXISTS testimonials(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5),
  comment TEXT NOT NULL,
  vehicle_model TEXT NOT NULL DEFAULT '',
  service_name TEXT NOT NULL DEFAULT '',
  approved INTEGER NOT NULL DEFAULT 0,
  response TEXT NOT NULL DEFAULT '',
  response_date TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_testimonials_approved ON testimonials(approved, created_at);

-- Users & Sessions
CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL CHECK (role IN ('ADMIN')),
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  updated_at TEXT
);

CREATE TABLE IF NOT EXISTS sessions(
  id TEXT PRIMARY KEY,               -- same value as the 'sid' cookie
  user_id TEXT NULL REFERENCES users(id) ON DELETE SET NULL,
  created_at TEXT DEFAULT CURRENT_TIMESTAMP,
  last_seen  TEXT
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM professionals`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	applog.L().Info("seed.professionals")

	tx := db.MustBegin()
	defer func() { _ = tx.Rollback() }()

	tx.MustExec(`INSERT INTO professionals(id,name,specialty,photo_url,active) VALUES
	  ('bruno-mucio','Bruno Mucio','Polimento','https://images.unsplash.com/photo-1552374196-1ab2a1c593e8',1),
	  ('carlos-oliveira','Carlos Oliveira','Lavagem Completa','https://images.unsplash.com/photo-1507003211169-0a1dd7228f2d',1),
	  ('andre-santos','André Santos','Higienização','https://images.unsplash.com/photo-1500648767791-00dcc994a43e',1),
	  ('marcos-pereira','Marcos Pereira','Cristalização','https://images.unsplash.com/photo-1472099645785-5658abf4ff4e',1)`)

	tx.MustExec(`INSERT INTO testimonials(id,name,rating,comment,vehicle_model,service_name,approved,created_at) VALUES
	  ('t-seed-1','Fernanda Lima',5,'Meu carro parece que saiu da concessionária. Atendimento impecável!','Honda Civic','Polimento Especializado',1,'2026-09-20T14:00:00Z'),
	  ('t-seed-2','Rafael Costa',5,'Interior ficou como novo, sem nenhum cheiro.','Jeep Compass','Detalhamento Interior',1,'2026-09-28T10:30:00Z'),
	  ('t-seed-3','Juliana Alves',4,'Cristalização excelente, a água escorre sozinha.','Toyota Corolla','Cristalização de Pintura',1,'2026-10-02T16:15:00Z')`)

	return tx.Commit()
}

// EnsureAdmin creates the admin user or resets its password (idempotent).
func EnsureAdmin(db *sqlx.DB, id, email, name, password string) error {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	_, err = db.Exec(`
		INSERT INTO users(id,email,name,password_hash,role)
		VALUES(?,?,?,?,?)
		ON CONFLICT(email) DO UPDATE SET name=excluded.name, password_hash=excluded.password_hash, updated_at=CURRENT_TIMESTAMP
	`, id, strings.ToLower(strings.TrimSpace(email)), name, string(h), domain.RoleAdmin)
	return err
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
