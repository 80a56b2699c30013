package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"
)

// Record is one stored resource. Body holds the JSON encoding of the record
// with its id already set to RecordID.
type Record struct {
	Seq       int64     `db:"seq"`
	Kind      string    `db:"kind"`
	RecordID  string    `db:"record_id"`
	Gender    string    `db:"gender"`
	Body      string    `db:"body"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type RecordStore struct {
	db *sqlx.DB
}

const (
	listRecordsQuery         = "SELECT * FROM records WHERE kind = ? ORDER BY seq DESC"
	listRecordsByGenderQuery = "SELECT * FROM records WHERE kind = ? AND gender = ? ORDER BY seq DESC"
	getRecordQuery           = "SELECT * FROM records WHERE kind = ? AND record_id = ?"
	countRecordsQuery        = "SELECT COUNT(*) FROM records WHERE kind = ?"
	nextRecordIDQuery        = "SELECT COALESCE(MAX(CAST(record_id AS INTEGER)), 0) + 1 FROM records WHERE kind = ?"
	insertRecordQuery        = `
		INSERT INTO records (kind, record_id, gender, body) VALUES
		(:kind, :record_id, :gender, :body)
	`
	updateRecordQuery = `
		UPDATE records SET
		body = ?,
		updated_at = CURRENT_TIMESTAMP
		WHERE kind = ? AND record_id = ?
	`
	deleteRecordQuery = "DELETE FROM records WHERE kind = ? AND record_id = ?"
)

func NewRecordStore(db *sqlx.DB) *RecordStore {
	return &RecordStore{db: db}
}

// List returns the records of kind, newest first. An empty gender matches all.
func (s *RecordStore) List(ctx context.Context, kind, gender string) ([]Record, error) {
	records := []Record{}
	var err error
	if gender == "" {
		err = s.db.SelectContext(ctx, &records, listRecordsQuery, kind)
	} else {
		err = s.db.SelectContext(ctx, &records, listRecordsByGenderQuery, kind, gender)
	}
	return records, err
}

func (s *RecordStore) Get(ctx context.Context, kind, id string) (*Record, error) {
	var rec Record
	if err := s.db.GetContext(ctx, &rec, getRecordQuery, kind, id); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *RecordStore) Count(ctx context.Context, kind string) (int, error) {
	var n int
	err := s.db.GetContext(ctx, &n, countRecordsQuery, kind)
	return n, err
}

// Create assigns the next numeric id of kind, lets encode produce the body for
// that id and stores it in one transaction.
func (s *RecordStore) Create(ctx context.Context, kind, gender string, encode func(id string) ([]byte, error)) (*Record, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var next int64
	if err := tx.GetContext(ctx, &next, nextRecordIDQuery, kind); err != nil {
		return nil, fmt.Errorf("next %s id: %w", kind, err)
	}
	id := strconv.FormatInt(next, 10)

	body, err := encode(id)
	if err != nil {
		return nil, err
	}
	if err := s.insert(ctx, tx, kind, id, gender, body); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return s.Get(ctx, kind, id)
}

// Put stores a record under an id chosen by the caller. Used for seeding.
func (s *RecordStore) Put(ctx context.Context, kind, id, gender string, body []byte) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := s.insert(ctx, tx, kind, id, gender, body); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *RecordStore) insert(ctx context.Context, tx *sqlx.Tx, kind, id, gender string, body []byte) error {
	_, err := tx.NamedExecContext(ctx, insertRecordQuery, Record{
		Kind:     kind,
		RecordID: id,
		Gender:   gender,
		Body:     string(body),
	})
	if err != nil {
		return fmt.Errorf("insert %s %s: %w", kind, id, err)
	}
	return nil
}

// Update replaces the body of an existing record. It returns sql.ErrNoRows
// when the record does not exist.
func (s *RecordStore) Update(ctx context.Context, kind, id string, body []byte) (*Record, error) {
	res, err := s.db.ExecContext(ctx, updateRecordQuery, string(body), kind, id)
	if err != nil {
		return nil, err
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}
	return s.Get(ctx, kind, id)
}

func (s *RecordStore) Delete(ctx context.Context, kind, id string) error {
	res, err := s.db.ExecContext(ctx, deleteRecordQuery, kind, id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
