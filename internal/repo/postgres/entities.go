package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tessera-labs/tessera-go/internal/omr"
)

type EntityStore struct {
	db DB
}

func NewEntityStore(db DB) *EntityStore {
	if db == nil {
		return nil
	}
	return &EntityStore{db: db}
}

func (s *EntityStore) Create(ctx context.Context, entity omr.EntityDetail) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("entity store not initialized")
	}
	guid := strings.TrimSpace(entity.GUID)
	if guid == "" {
		return fmt.Errorf("entity guid is required")
	}

	typeJSON, err := encodeType(entity.Type)
	if err != nil {
		return fmt.Errorf("encode type: %w", err)
	}
	propertiesJSON, err := encodeProperties(entity.Properties)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	classificationsJSON, err := encodeClassifications(entity.Classifications)
	if err != nil {
		return fmt.Errorf("encode classifications: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO entities (
			guid,
			type_name,
			type_descriptor,
			metadata_collection_id,
			created_by,
			create_time,
			updated_by,
			update_time,
			version,
			status,
			url,
			properties,
			classifications
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)`,
		guid,
		typeName(entity.Type),
		typeJSON,
		strings.TrimSpace(entity.MetadataCollectionID),
		strings.TrimSpace(entity.CreatedBy),
		nullableTime(entity.CreateTime),
		strings.TrimSpace(entity.UpdatedBy),
		nullableTime(entity.UpdateTime),
		entity.Version,
		entity.Status.String(),
		strings.TrimSpace(entity.URL),
		propertiesJSON,
		classificationsJSON,
	)
	if err != nil {
		return fmt.Errorf("insert entity: %w", err)
	}
	return nil
}

func (s *EntityStore) Get(ctx context.Context, guid string) (omr.EntityDetail, error) {
	if s == nil || s.db == nil {
		return omr.EntityDetail{}, fmt.Errorf("entity store not initialized")
	}
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return omr.EntityDetail{}, fmt.Errorf("entity guid is required")
	}

	row := s.db.QueryRowContext(
		ctx,
		`SELECT guid, type_descriptor, metadata_collection_id, created_by, create_time,
			updated_by, update_time, version, status, url, properties, classifications
		 FROM entities
		 WHERE guid = $1`,
		guid,
	)

	var (
		entity              omr.EntityDetail
		typeJSON            []byte
		createTime          sql.NullTime
		updateTime          sql.NullTime
		statusName          string
		propertiesJSON      []byte
		classificationsJSON []byte
	)
	if err := row.Scan(
		&entity.GUID,
		&typeJSON,
		&entity.MetadataCollectionID,
		&entity.CreatedBy,
		&createTime,
		&entity.UpdatedBy,
		&updateTime,
		&entity.Version,
		&statusName,
		&entity.URL,
		&propertiesJSON,
		&classificationsJSON,
	); err != nil {
		return omr.EntityDetail{}, handleNotFound(err)
	}

	entity.CreateTime = timeFromNullable(createTime)
	entity.UpdateTime = timeFromNullable(updateTime)
	entity.Status = omr.StatusFromName(statusName)

	instanceType, err := decodeType(typeJSON)
	if err != nil {
		return omr.EntityDetail{}, fmt.Errorf("decode type: %w", err)
	}
	entity.Type = instanceType

	props, err := decodeProperties(propertiesJSON)
	if err != nil {
		return omr.EntityDetail{}, fmt.Errorf("decode properties: %w", err)
	}
	entity.Properties = props

	classifications, err := decodeClassifications(classificationsJSON)
	if err != nil {
		return omr.EntityDetail{}, fmt.Errorf("decode classifications: %w", err)
	}
	entity.Classifications = classifications

	return entity, nil
}

func typeName(instanceType *omr.InstanceType) string {
	if instanceType == nil {
		return ""
	}
	return instanceType.Name
}
