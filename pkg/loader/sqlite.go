package loader

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/kraitsura/groups_viewer/pkg/model"
)

const sqliteSchema = `
	CREATE TABLE IF NOT EXISTS group_records (
		position INTEGER NOT NULL,
		id INTEGER PRIMARY KEY,
		name TEXT NOT NULL,
		closed INTEGER NOT NULL DEFAULT 0,
		avatar_color TEXT DEFAULT '',
		members_count INTEGER NOT NULL DEFAULT 0
	);

	CREATE INDEX IF NOT EXISTS idx_group_records_position ON group_records(position);

	CREATE TABLE IF NOT EXISTS group_friends (
		group_id INTEGER NOT NULL REFERENCES group_records(id),
		position INTEGER NOT NULL,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_group_friends_group ON group_friends(group_id, position);
	`

// SQLiteSource reads groups from a SQLite database. Rows are returned in
// position order so the source order survives the round trip.
type SQLiteSource struct {
	path string
}

// NewSQLiteSource creates a source for the database at path
func NewSQLiteSource(path string) *SQLiteSource {
	return &SQLiteSource{path: path}
}

// LoadGroups reads the groups and friends tables
func (s *SQLiteSource) LoadGroups(ctx context.Context) ([]model.Group, error) {
	// sql.Open would silently create a missing database
	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return nil, loadErr(s.path, fmt.Errorf("no groups database found at %s", s.path))
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return nil, loadErr(s.path, fmt.Errorf("open database: %w", err))
	}
	defer db.Close()

	rows, err := db.QueryContext(ctx, `
		SELECT id, name, closed, COALESCE(avatar_color, ''), members_count
		FROM group_records
		ORDER BY position`)
	if err != nil {
		return nil, loadErr(s.path, fmt.Errorf("query groups: %w", err))
	}
	defer rows.Close()

	groups := make([]model.Group, 0)
	index := make(map[int]int)
	for rows.Next() {
		var g model.Group
		if err := rows.Scan(&g.ID, &g.Name, &g.Closed, &g.AvatarColor, &g.MembersCount); err != nil {
			return nil, loadErr(s.path, fmt.Errorf("scan group: %w", err))
		}
		index[g.ID] = len(groups)
		groups = append(groups, g)
	}
	if err := rows.Err(); err != nil {
		return nil, loadErr(s.path, fmt.Errorf("iterate groups: %w", err))
	}

	friendRows, err := db.QueryContext(ctx, `
		SELECT group_id, first_name, last_name
		FROM group_friends
		ORDER BY group_id, position`)
	if err != nil {
		return nil, loadErr(s.path, fmt.Errorf("query friends: %w", err))
	}
	defer friendRows.Close()

	for friendRows.Next() {
		var groupID int
		var f model.Friend
		if err := friendRows.Scan(&groupID, &f.FirstName, &f.LastName); err != nil {
			return nil, loadErr(s.path, fmt.Errorf("scan friend: %w", err))
		}
		i, ok := index[groupID]
		if !ok {
			continue
		}
		groups[i].Friends = append(groups[i].Friends, f)
	}
	if err := friendRows.Err(); err != nil {
		return nil, loadErr(s.path, fmt.Errorf("iterate friends: %w", err))
	}

	return groups, nil
}

// SaveSQLite writes groups into a fresh database at path, replacing any
// rows already stored there.
func SaveSQLite(ctx context.Context, path string, groups []model.Group) error {
	// Ensure directory exists
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		return fmt.Errorf("init schema: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_friends`); err != nil {
		return fmt.Errorf("clear friends: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM group_records`); err != nil {
		return fmt.Errorf("clear groups: %w", err)
	}

	for pos, g := range groups {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO group_records (position, id, name, closed, avatar_color, members_count)
			VALUES (?, ?, ?, ?, ?, ?)`,
			pos, g.ID, g.Name, g.Closed, g.AvatarColor, g.MembersCount)
		if err != nil {
			return fmt.Errorf("insert group %d: %w", g.ID, err)
		}
		for fpos, f := range g.Friends {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO group_friends (group_id, position, first_name, last_name)
				VALUES (?, ?, ?, ?)`,
				g.ID, fpos, f.FirstName, f.LastName)
			if err != nil {
				return fmt.Errorf("insert friend of group %d: %w", g.ID, err)
			}
		}
	}

	return tx.Commit()
}
