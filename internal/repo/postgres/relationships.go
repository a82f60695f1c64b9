package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/tessera-labs/tessera-go/internal/omr"
)

type RelationshipStore struct {
	db DB
}

func NewRelationshipStore(db DB) *RelationshipStore {
	if db == nil {
		return nil
	}
	return &RelationshipStore{db: db}
}

func (s *RelationshipStore) Create(ctx context.Context, relationship omr.Relationship) error {
	if s == nil || s.db == nil {
		return fmt.Errorf("relationship store not initialized")
	}
	guid := strings.TrimSpace(relationship.GUID)
	if guid == "" {
		return fmt.Errorf("relationship guid is required")
	}

	typeJSON, err := encodeType(relationship.Type)
	if err != nil {
		return fmt.Errorf("encode type: %w", err)
	}
	propertiesJSON, err := encodeProperties(relationship.Properties)
	if err != nil {
		return fmt.Errorf("encode properties: %w", err)
	}
	entityOneJSON, err := encodeProxy(relationship.EntityOneProxy)
	if err != nil {
		return fmt.Errorf("encode entity one proxy: %w", err)
	}
	entityTwoJSON, err := encodeProxy(relationship.EntityTwoProxy)
	if err != nil {
		return fmt.Errorf("encode entity two proxy: %w", err)
	}

	_, err = s.db.ExecContext(
		ctx,
		`INSERT INTO relationships (
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
			properties,
			entity_one_guid,
			entity_one_proxy,
			entity_two_guid,
			entity_two_proxy
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)`,
		guid,
		typeName(relationship.Type),
		typeJSON,
		strings.TrimSpace(relationship.MetadataCollectionID),
		strings.TrimSpace(relationship.CreatedBy),
		nullableTime(relationship.CreateTime),
		strings.TrimSpace(relationship.UpdatedBy),
		nullableTime(relationship.UpdateTime),
		relationship.Version,
		relationship.Status.String(),
		propertiesJSON,
		proxyGUID(relationship.EntityOneProxy),
		entityOneJSON,
		proxyGUID(relationship.EntityTwoProxy),
		entityTwoJSON,
	)
	if err != nil {
		return fmt.Errorf("insert relationship: %w", err)
	}
	return nil
}

func (s *RelationshipStore) Get(ctx context.Context, guid string) (omr.Relationship, error) {
	if s == nil || s.db == nil {
		return omr.Relationship{}, fmt.Errorf("relationship store not initialized")
	}
	guid = strings.TrimSpace(guid)
	if guid == "" {
		return omr.Relationship{}, fmt.Errorf("relationship guid is required")
	}

	row := s.db.QueryRowContext(
		ctx,
		`SELECT guid, type_descriptor, metadata_collection_id, created_by, create_time,
			updated_by, update_time, version, status, properties, entity_one_proxy, entity_two_proxy
		 FROM relationships
		 WHERE guid = $1`,
		guid,
	)
	relationship, err := scanRelationship(row.Scan)
	if err != nil {
		return omr.Relationship{}, handleNotFound(err)
	}
	return relationship, nil
}

func (s *RelationshipStore) ListByEntity(ctx context.Context, entityGUID string, limit int) ([]omr.Relationship, error) {
	if s == nil || s.db == nil {
		return nil, fmt.Errorf("relationship store not initialized")
	}
	entityGUID = strings.TrimSpace(entityGUID)
	if entityGUID == "" {
		return nil, fmt.Errorf("entity guid is required")
	}

	query := `SELECT guid, type_descriptor, metadata_collection_id, created_by, create_time,
			updated_by, update_time, version, status, properties, entity_one_proxy, entity_two_proxy
		 FROM relationships
		 WHERE entity_one_guid = $1 OR entity_two_guid = $1
		 ORDER BY guid`
	args := []any{entityGUID}
	if limit > 0 {
		args = append(args, limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	defer rows.Close()

	relationships := make([]omr.Relationship, 0)
	for rows.Next() {
		relationship, err := scanRelationship(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		relationships = append(relationships, relationship)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list relationships: %w", err)
	}
	return relationships, nil
}

func scanRelationship(scan func(dest ...any) error) (omr.Relationship, error) {
	var (
		relationship   omr.Relationship
		typeJSON       []byte
		createTime     sql.NullTime
		updateTime     sql.NullTime
		statusName     string
		propertiesJSON []byte
		entityOneJSON  []byte
		entityTwoJSON  []byte
	)
	if err := scan(
		&relationship.GUID,
		&typeJSON,
		&relationship.MetadataCollectionID,
		&relationship.CreatedBy,
		&createTime,
		&relationship.UpdatedBy,
		&updateTime,
		&relationship.Version,
		&statusName,
		&propertiesJSON,
		&entityOneJSON,
		&entityTwoJSON,
	); err != nil {
		return omr.Relationship{}, err
	}

	relationship.CreateTime = timeFromNullable(createTime)
	relationship.UpdateTime = timeFromNullable(updateTime)
	relationship.Status = omr.StatusFromName(statusName)

	instanceType, err := decodeType(typeJSON)
	if err != nil {
		return omr.Relationship{}, fmt.Errorf("decode type: %w", err)
	}
	relationship.Type = instanceType

	props, err := decodeProperties(propertiesJSON)
	if err != nil {
		return omr.Relationship{}, fmt.Errorf("decode properties: %w", err)
	}
	relationship.Properties = props

	entityOne, err := decodeProxy(entityOneJSON)
	if err != nil {
		return omr.Relationship{}, fmt.Errorf("decode entity one proxy: %w", err)
	}
	relationship.EntityOneProxy = entityOne

	entityTwo, err := decodeProxy(entityTwoJSON)
	if err != nil {
		return omr.Relationship{}, fmt.Errorf("decode entity two proxy: %w", err)
	}
	relationship.EntityTwoProxy = entityTwo

	return relationship, nil
}

func proxyGUID(proxy *omr.EntityProxy) string {
	if proxy == nil {
		return ""
	}
	return proxy.GUID
}
