package sqlstore

import "github.com/jmoiron/sqlx"

// DB exposes the underlying connection for tests.
func (s *Store) DB() *sqlx.DB {
	return s.db
}
