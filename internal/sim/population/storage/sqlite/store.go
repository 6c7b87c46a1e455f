// Package sqlite provides a SQLite-backed population storage implementation.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/louisbranch/cordon/internal/platform/storage/sqlitemigrate"
	"github.com/louisbranch/cordon/internal/sim/population"
	"github.com/louisbranch/cordon/internal/sim/population/storage"
	"github.com/louisbranch/cordon/internal/sim/population/storage/sqlite/migrations"
	msqlite "modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

// Store persists population snapshots in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

func fromMillis(value int64) time.Time {
	return time.UnixMilli(value).UTC()
}

func encodeStrings(values []string) (string, error) {
	if len(values) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(values)
	if err != nil {
		return "", fmt.Errorf("marshal strings: %w", err)
	}
	return string(encoded), nil
}

func decodeStrings(value string) ([]string, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "[]" {
		return nil, nil
	}
	var values []string
	if err := json.Unmarshal([]byte(value), &values); err != nil {
		return nil, fmt.Errorf("unmarshal strings: %w", err)
	}
	return values, nil
}

func encodeIDs(ids []int) (string, error) {
	if len(ids) == 0 {
		return "[]", nil
	}
	encoded, err := json.Marshal(ids)
	if err != nil {
		return "", fmt.Errorf("marshal ids: %w", err)
	}
	return string(encoded), nil
}

func decodeIDs(value string) ([]int, error) {
	value = strings.TrimSpace(value)
	if value == "" || value == "[]" {
		return nil, nil
	}
	var ids []int
	if err := json.Unmarshal([]byte(value), &ids); err != nil {
		return nil, fmt.Errorf("unmarshal ids: %w", err)
	}
	return ids, nil
}

// Open opens a SQLite population store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS, ""); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// SavePopulation atomically writes one population record and its snapshot.
// Counts are derived from the snapshot, not taken from the metadata record.
func (s *Store) SavePopulation(ctx context.Context, pop storage.Population, snapshot population.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	populationID := strings.TrimSpace(pop.ID)
	name := strings.TrimSpace(pop.Name)
	if populationID == "" {
		return fmt.Errorf("population id is required")
	}
	if name == "" {
		return fmt.Errorf("population name is required")
	}
	if _, err := snapshot.Registry(); err != nil {
		return fmt.Errorf("validate snapshot: %w", err)
	}
	createdAt := pop.CreatedAt.UTC()
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(
		ctx,
		`INSERT INTO populations (
		   id, name, seed, num_people, num_families, num_communities, created_at
		 ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		populationID,
		name,
		pop.Seed,
		len(snapshot.People),
		len(snapshot.Families),
		len(snapshot.Communities),
		toMillis(createdAt),
	)
	if err != nil {
		if isPopulationUniqueViolation(err) {
			return storage.ErrAlreadyExists
		}
		return fmt.Errorf("insert population: %w", err)
	}

	for _, person := range snapshot.People {
		roles, err := encodeStrings(person.Roles)
		if err != nil {
			return fmt.Errorf("person %d roles: %w", person.ID, err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO people (
			   population_id, person_id, age, gender, health_condition,
			   family_id, roles, is_quarantined
			 ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			populationID,
			person.ID,
			person.Age,
			int(person.Gender),
			person.HealthCondition,
			person.FamilyID,
			roles,
			person.IsQuarantined,
		); err != nil {
			return fmt.Errorf("insert person %d: %w", person.ID, err)
		}
	}

	for _, family := range snapshot.Families {
		peopleIDs, err := encodeIDs(family.PeopleIDs)
		if err != nil {
			return fmt.Errorf("family %d members: %w", family.ID, err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO families (population_id, family_id, people_ids)
			 VALUES (?, ?, ?)`,
			populationID,
			family.ID,
			peopleIDs,
		); err != nil {
			return fmt.Errorf("insert family %d: %w", family.ID, err)
		}
	}

	for _, community := range snapshot.Communities {
		peopleIDs, err := encodeIDs(community.PeopleIDs)
		if err != nil {
			return fmt.Errorf("community %d members: %w", community.ID, err)
		}
		if _, err := tx.ExecContext(
			ctx,
			`INSERT INTO communities (population_id, community_id, type_name, people_ids)
			 VALUES (?, ?, ?, ?)`,
			populationID,
			community.ID,
			community.TypeName,
			peopleIDs,
		); err != nil {
			return fmt.Errorf("insert community %d: %w", community.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// GetPopulation returns one population record by ID.
func (s *Store) GetPopulation(ctx context.Context, id string) (storage.Population, error) {
	if err := ctx.Err(); err != nil {
		return storage.Population{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.Population{}, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return storage.Population{}, fmt.Errorf("population id is required")
	}

	row := s.sqlDB.QueryRowContext(
		ctx,
		`SELECT id, name, seed, num_people, num_families, num_communities, created_at
		   FROM populations
		  WHERE id = ?`,
		id,
	)

	var pop storage.Population
	var createdAt int64
	err := row.Scan(
		&pop.ID,
		&pop.Name,
		&pop.Seed,
		&pop.NumPeople,
		&pop.NumFamilies,
		&pop.NumCommunities,
		&createdAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return storage.Population{}, storage.ErrNotFound
		}
		return storage.Population{}, fmt.Errorf("get population: %w", err)
	}
	pop.CreatedAt = fromMillis(createdAt)
	return pop, nil
}

// ListPopulations returns one page of population records ordered by ID.
func (s *Store) ListPopulations(ctx context.Context, pageSize int, pageToken string) (storage.PopulationPage, error) {
	if err := ctx.Err(); err != nil {
		return storage.PopulationPage{}, err
	}
	if s == nil || s.sqlDB == nil {
		return storage.PopulationPage{}, fmt.Errorf("storage is not configured")
	}
	if pageSize <= 0 {
		return storage.PopulationPage{}, fmt.Errorf("page size must be greater than zero")
	}
	pageToken = strings.TrimSpace(pageToken)

	page := storage.PopulationPage{
		Populations: make([]storage.Population, 0, pageSize),
	}

	var (
		rows *sql.Rows
		err  error
	)
	if pageToken == "" {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, name, seed, num_people, num_families, num_communities, created_at
			   FROM populations
			  ORDER BY id ASC
			  LIMIT ?`,
			pageSize+1,
		)
	} else {
		rows, err = s.sqlDB.QueryContext(
			ctx,
			`SELECT id, name, seed, num_people, num_families, num_communities, created_at
			   FROM populations
			  WHERE id > ?
			  ORDER BY id ASC
			  LIMIT ?`,
			pageToken,
			pageSize+1,
		)
	}
	if err != nil {
		return storage.PopulationPage{}, fmt.Errorf("list populations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pop storage.Population
		var createdAt int64
		if err := rows.Scan(
			&pop.ID,
			&pop.Name,
			&pop.Seed,
			&pop.NumPeople,
			&pop.NumFamilies,
			&pop.NumCommunities,
			&createdAt,
		); err != nil {
			return storage.PopulationPage{}, fmt.Errorf("list populations: %w", err)
		}
		pop.CreatedAt = fromMillis(createdAt)
		page.Populations = append(page.Populations, pop)
	}
	if err := rows.Err(); err != nil {
		return storage.PopulationPage{}, fmt.Errorf("list populations: %w", err)
	}
	if len(page.Populations) > pageSize {
		page.NextPageToken = page.Populations[pageSize-1].ID
		page.Populations = page.Populations[:pageSize]
	}

	return page, nil
}

// LoadRegistry rebuilds an indexed registry from one stored snapshot.
func (s *Store) LoadRegistry(ctx context.Context, id string) (*population.Registry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s == nil || s.sqlDB == nil {
		return nil, fmt.Errorf("storage is not configured")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("population id is required")
	}

	if _, err := s.GetPopulation(ctx, id); err != nil {
		return nil, err
	}

	people, err := s.loadPeople(ctx, id)
	if err != nil {
		return nil, err
	}
	families, err := s.loadFamilies(ctx, id)
	if err != nil {
		return nil, err
	}
	communities, err := s.loadCommunities(ctx, id)
	if err != nil {
		return nil, err
	}

	registry, err := population.NewRegistry(people, families, communities)
	if err != nil {
		return nil, fmt.Errorf("index population %s: %w", id, err)
	}
	return registry, nil
}

func (s *Store) loadPeople(ctx context.Context, populationID string) ([]population.Person, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT person_id, age, gender, health_condition, family_id, roles, is_quarantined
		   FROM people
		  WHERE population_id = ?
		  ORDER BY person_id ASC`,
		populationID,
	)
	if err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}
	defer rows.Close()

	var people []population.Person
	for rows.Next() {
		var person population.Person
		var gender int
		var roles string
		if err := rows.Scan(
			&person.ID,
			&person.Age,
			&gender,
			&person.HealthCondition,
			&person.FamilyID,
			&roles,
			&person.IsQuarantined,
		); err != nil {
			return nil, fmt.Errorf("load people: %w", err)
		}
		person.Gender = population.Gender(gender)
		person.Roles, err = decodeStrings(roles)
		if err != nil {
			return nil, fmt.Errorf("person %d roles: %w", person.ID, err)
		}
		people = append(people, person)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load people: %w", err)
	}
	return people, nil
}

func (s *Store) loadFamilies(ctx context.Context, populationID string) ([]population.Family, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT family_id, people_ids
		   FROM families
		  WHERE population_id = ?
		  ORDER BY family_id ASC`,
		populationID,
	)
	if err != nil {
		return nil, fmt.Errorf("load families: %w", err)
	}
	defer rows.Close()

	var families []population.Family
	for rows.Next() {
		var family population.Family
		var peopleIDs string
		if err := rows.Scan(&family.ID, &peopleIDs); err != nil {
			return nil, fmt.Errorf("load families: %w", err)
		}
		family.PeopleIDs, err = decodeIDs(peopleIDs)
		if err != nil {
			return nil, fmt.Errorf("family %d members: %w", family.ID, err)
		}
		families = append(families, family)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load families: %w", err)
	}
	return families, nil
}

func (s *Store) loadCommunities(ctx context.Context, populationID string) ([]population.Community, error) {
	rows, err := s.sqlDB.QueryContext(
		ctx,
		`SELECT community_id, type_name, people_ids
		   FROM communities
		  WHERE population_id = ?
		  ORDER BY community_id ASC`,
		populationID,
	)
	if err != nil {
		return nil, fmt.Errorf("load communities: %w", err)
	}
	defer rows.Close()

	var communities []population.Community
	for rows.Next() {
		var community population.Community
		var peopleIDs string
		if err := rows.Scan(&community.ID, &community.TypeName, &peopleIDs); err != nil {
			return nil, fmt.Errorf("load communities: %w", err)
		}
		community.PeopleIDs, err = decodeIDs(peopleIDs)
		if err != nil {
			return nil, fmt.Errorf("community %d members: %w", community.ID, err)
		}
		communities = append(communities, community)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load communities: %w", err)
	}
	return communities, nil
}

func isPopulationUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	var sqliteErr *msqlite.Error
	if errors.As(err, &sqliteErr) {
		switch sqliteErr.Code() {
		case sqlite3lib.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3lib.SQLITE_CONSTRAINT_UNIQUE:
			return true
		}
	}
	message := strings.ToLower(err.Error())
	return strings.Contains(message, "unique constraint failed") &&
		strings.Contains(message, "populations.")
}

var _ storage.Store = (*Store)(nil)
