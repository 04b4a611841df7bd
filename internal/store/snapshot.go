package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/mkarslan/worktimer/internal/tracker"
)

// SaveTasks rewrites the whole task snapshot.
func (s *Store) SaveTasks(tasks []*tracker.Task) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save tasks: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM tasks`); err != nil {
		return fmt.Errorf("clear tasks: %w", err)
	}
	for _, t := range tasks {
		var startTime any
		if t.StartTime != nil {
			startTime = t.StartTime.UTC().Format(time.RFC3339)
		}
		paused := 0
		if t.Paused {
			paused = 1
		}
		_, err := tx.Exec(
			`INSERT INTO tasks (id, description, folder, total_duration, start_time, is_paused) VALUES (?, ?, ?, ?, ?, ?)`,
			t.ID, t.Description, t.Folder, t.TotalDuration, startTime, paused,
		)
		if err != nil {
			return fmt.Errorf("insert task %s: %w", t.ID, err)
		}
	}
	return tx.Commit()
}

// LoadTasks reads the task snapshot. An unparseable row is an error rather
// than silently dropped data.
func (s *Store) LoadTasks() ([]*tracker.Task, error) {
	rows, err := s.db.Query(
		`SELECT id, description, folder, total_duration, start_time, is_paused FROM tasks`,
	)
	if err != nil {
		return nil, fmt.Errorf("load tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*tracker.Task
	for rows.Next() {
		t := &tracker.Task{}
		var startTime sql.NullString
		var paused int
		if err := rows.Scan(&t.ID, &t.Description, &t.Folder, &t.TotalDuration, &startTime, &paused); err != nil {
			return nil, err
		}
		if startTime.Valid {
			parsed, err := time.Parse(time.RFC3339, startTime.String)
			if err != nil {
				return nil, fmt.Errorf("task %s start time: %w", t.ID, err)
			}
			t.StartTime = &parsed
		}
		t.Paused = paused == 1
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

// SaveFolders rewrites the ordered folder-name snapshot.
func (s *Store) SaveFolders(names []string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save folders: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM folders`); err != nil {
		return fmt.Errorf("clear folders: %w", err)
	}
	for i, name := range names {
		if _, err := tx.Exec(`INSERT INTO folders (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("insert folder %q: %w", name, err)
		}
	}
	return tx.Commit()
}

// LoadFolders reads the folder names in display order.
func (s *Store) LoadFolders() ([]string, error) {
	rows, err := s.db.Query(`SELECT name FROM folders ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("load folders: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// SaveStyles rewrites the folder-style snapshot.
func (s *Store) SaveStyles(styles map[string]tracker.FolderStyle) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save styles: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM folder_styles`); err != nil {
		return fmt.Errorf("clear folder styles: %w", err)
	}
	for name, style := range styles {
		if _, err := tx.Exec(`INSERT INTO folder_styles (name, display_name) VALUES (?, ?)`, name, style.Name); err != nil {
			return fmt.Errorf("insert folder style %q: %w", name, err)
		}
	}
	return tx.Commit()
}

// LoadStyles reads the folder-style snapshot.
func (s *Store) LoadStyles() (map[string]tracker.FolderStyle, error) {
	rows, err := s.db.Query(`SELECT name, display_name FROM folder_styles`)
	if err != nil {
		return nil, fmt.Errorf("load folder styles: %w", err)
	}
	defer rows.Close()

	styles := make(map[string]tracker.FolderStyle)
	for rows.Next() {
		var name, displayName string
		if err := rows.Scan(&name, &displayName); err != nil {
			return nil, err
		}
		styles[name] = tracker.FolderStyle{Name: displayName}
	}
	return styles, rows.Err()
}
