package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/tessera-labs/tessera-go/internal/omr"
	"github.com/tessera-labs/tessera-go/internal/repo"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// nullableTime maps the zero time to SQL NULL so absent audit stamps stay
// absent instead of being defaulted.
func nullableTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timeFromNullable(t sql.NullTime) time.Time {
	if !t.Valid {
		return time.Time{}
	}
	return t.Time.UTC()
}

func encodeProperties(props *omr.Properties) ([]byte, error) {
	if props == nil {
		return nil, nil
	}
	return json.Marshal(props)
}

func decodeProperties(raw []byte) (*omr.Properties, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	props := omr.NewProperties()
	if err := json.Unmarshal(raw, props); err != nil {
		return nil, err
	}
	return props, nil
}

func encodeClassifications(classifications []omr.Classification) ([]byte, error) {
	if len(classifications) == 0 {
		return nil, nil
	}
	return json.Marshal(classifications)
}

func decodeClassifications(raw []byte) ([]omr.Classification, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var out []omr.Classification
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func encodeProxy(proxy *omr.EntityProxy) ([]byte, error) {
	if proxy == nil {
		return nil, nil
	}
	return json.Marshal(proxy)
}

func decodeProxy(raw []byte) (*omr.EntityProxy, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var proxy omr.EntityProxy
	if err := json.Unmarshal(raw, &proxy); err != nil {
		return nil, err
	}
	return &proxy, nil
}

func encodeType(instanceType *omr.InstanceType) ([]byte, error) {
	if instanceType == nil {
		return nil, nil
	}
	return json.Marshal(instanceType)
}

func decodeType(raw []byte) (*omr.InstanceType, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	var instanceType omr.InstanceType
	if err := json.Unmarshal(raw, &instanceType); err != nil {
		return nil, err
	}
	return &instanceType, nil
}

func handleNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repo.ErrNotFound
	}
	return err
}
