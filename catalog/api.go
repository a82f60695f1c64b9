package main

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tessera-labs/tessera-go/internal/beans"
	"github.com/tessera-labs/tessera-go/internal/convert"
	"github.com/tessera-labs/tessera-go/internal/omr"
	"github.com/tessera-labs/tessera-go/internal/platform/auditlog"
	"github.com/tessera-labs/tessera-go/internal/repo"
	"github.com/tessera-labs/tessera-go/internal/typereg"
)

type entityStore interface {
	Create(ctx context.Context, entity omr.EntityDetail) error
	Get(ctx context.Context, guid string) (omr.EntityDetail, error)
}

type relationshipStore interface {
	Create(ctx context.Context, relationship omr.Relationship) error
	Get(ctx context.Context, guid string) (omr.Relationship, error)
	ListByEntity(ctx context.Context, entityGUID string, limit int) ([]omr.Relationship, error)
}

type catalogAPI struct {
	logger        *slog.Logger
	entities      entityStore
	relationships relationshipStore
	registry      *typereg.Registry
	audit         auditlog.QueryRower

	governanceRules     *beans.GovernanceRuleMapper
	glossaryTerms       *beans.GlossaryTermMapper
	semanticAssignments *beans.SemanticAssignmentMapper
}

func newCatalogAPI(logger *slog.Logger, entities entityStore, relationships relationshipStore, registry *typereg.Registry) *catalogAPI {
	return &catalogAPI{
		logger:              logger,
		entities:            entities,
		relationships:       relationships,
		registry:            registry,
		governanceRules:     beans.NewGovernanceRuleMapper(logger),
		glossaryTerms:       beans.NewGlossaryTermMapper(logger),
		semanticAssignments: beans.NewSemanticAssignmentMapper(logger),
	}
}

func (api *catalogAPI) register(mux *http.ServeMux) {
	mux.HandleFunc("POST /assets", api.handleCreateAsset)
	mux.HandleFunc("POST /relationships", api.handleCreateRelationship)
	mux.HandleFunc("GET /assets/{guid}", api.handleGetAsset)
	mux.HandleFunc("GET /assets/{guid}/as/{type}", api.handleGetAssetAs)
	mux.HandleFunc("GET /assets/{guid}/relationships", api.handleListAssetRelationships)
	mux.HandleFunc("GET /assets/{guid}/context", api.handleAssetContext)
	mux.HandleFunc("GET /relationships/{guid}", api.handleGetRelationship)
	mux.HandleFunc("GET /types", api.handleListTypes)
}

func (api *catalogAPI) handleCreateAsset(w http.ResponseWriter, r *http.Request) {
	var entity omr.EntityDetail
	if err := decodeJSON(r, &entity); err != nil {
		api.writeError(w, r, http.StatusBadRequest, "invalid_json")
		return
	}
	if entity.Type == nil || strings.TrimSpace(entity.Type.Name) == "" {
		api.writeError(w, r, http.StatusBadRequest, "type_required")
		return
	}
	if strings.TrimSpace(entity.GUID) == "" {
		entity.GUID = uuid.NewString()
	}
	if entity.CreateTime.IsZero() {
		entity.CreateTime = time.Now().UTC()
	}

	if err := api.entities.Create(r.Context(), entity); err != nil {
		api.logger.Error("create entity", "error", err, "guid", entity.GUID)
		api.writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}
	api.appendAudit(r, "catalog.entity.create", typeNameOf(entity.Type), entity.GUID, entity.Version)
	api.writeJSON(w, http.StatusCreated, map[string]any{"guid": entity.GUID})
}

func (api *catalogAPI) handleCreateRelationship(w http.ResponseWriter, r *http.Request) {
	var relationship omr.Relationship
	if err := decodeJSON(r, &relationship); err != nil {
		api.writeError(w, r, http.StatusBadRequest, "invalid_json")
		return
	}
	if relationship.Type == nil || strings.TrimSpace(relationship.Type.Name) == "" {
		api.writeError(w, r, http.StatusBadRequest, "type_required")
		return
	}
	if relationship.EntityOneProxy == nil || relationship.EntityTwoProxy == nil {
		api.writeError(w, r, http.StatusBadRequest, "both_end_proxies_required")
		return
	}
	if strings.TrimSpace(relationship.GUID) == "" {
		relationship.GUID = uuid.NewString()
	}
	if relationship.CreateTime.IsZero() {
		relationship.CreateTime = time.Now().UTC()
	}

	if err := api.relationships.Create(r.Context(), relationship); err != nil {
		api.logger.Error("create relationship", "error", err, "guid", relationship.GUID)
		api.writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}
	api.appendAudit(r, "catalog.relationship.create", typeNameOf(relationship.Type), relationship.GUID, relationship.Version)
	api.writeJSON(w, http.StatusCreated, map[string]any{"guid": relationship.GUID})
}

// appendAudit is best effort: a write that succeeded is not failed for an
// audit insert error, it is logged instead.
func (api *catalogAPI) appendAudit(r *http.Request, action string, resourceType string, guid string, version int64) {
	if api.audit == nil {
		return
	}
	auditCtx, cancel := context.WithTimeout(r.Context(), 750*time.Millisecond)
	defer cancel()

	_, err := auditlog.Insert(auditCtx, api.audit, auditlog.Event{
		Actor:        "catalog",
		Action:       action,
		ResourceType: resourceType,
		ResourceGUID: guid,
		RequestID:    r.Header.Get("X-Request-Id"),
		Payload:      map[string]any{"version": version},
	})
	if err != nil {
		api.logger.Warn("audit append failed", "error", err, "action", action, "guid", guid)
	}
}

func typeNameOf(instanceType *omr.InstanceType) string {
	if instanceType == nil {
		return ""
	}
	return instanceType.Name
}

func (api *catalogAPI) handleGetAsset(w http.ResponseWriter, r *http.Request) {
	guid := strings.TrimSpace(r.PathValue("guid"))
	if guid == "" {
		api.writeError(w, r, http.StatusBadRequest, "guid_required")
		return
	}

	entity, err := api.entities.Get(r.Context(), guid)
	if err != nil {
		api.writeStoreError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, convert.ToAssetDescription(entity))
}

func (api *catalogAPI) handleGetAssetAs(w http.ResponseWriter, r *http.Request) {
	guid := strings.TrimSpace(r.PathValue("guid"))
	typeName := strings.TrimSpace(r.PathValue("type"))
	if guid == "" || typeName == "" {
		api.writeError(w, r, http.StatusBadRequest, "guid_and_type_required")
		return
	}

	entity, err := api.entities.Get(r.Context(), guid)
	if err != nil {
		api.writeStoreError(w, r, err)
		return
	}

	var bean any
	switch typeName {
	case beans.GovernanceRuleTypeName:
		bean, err = api.governanceRules.Unpack(entity)
	case beans.GlossaryTermTypeName:
		bean, err = api.glossaryTerms.Unpack(entity)
	default:
		api.writeError(w, r, http.StatusNotFound, "unknown_type")
		return
	}
	if err != nil {
		var mismatch *beans.TypeMismatchError
		if errors.As(err, &mismatch) {
			api.writeJSON(w, http.StatusConflict, map[string]any{
				"error":      "type_mismatch",
				"guid":       mismatch.GUID,
				"expected":   mismatch.Expected,
				"actual":     mismatch.Actual,
				"request_id": r.Header.Get("X-Request-Id"),
			})
			return
		}
		api.writeError(w, r, http.StatusInternalServerError, "internal_error")
		return
	}
	api.writeJSON(w, http.StatusOK, bean)
}

func (api *catalogAPI) handleListAssetRelationships(w http.ResponseWriter, r *http.Request) {
	guid := strings.TrimSpace(r.PathValue("guid"))
	if guid == "" {
		api.writeError(w, r, http.StatusBadRequest, "guid_required")
		return
	}
	limit := clampInt(parseIntQuery(r, "limit", 100), 1, 500)

	relationships, err := api.relationships.ListByEntity(r.Context(), guid, limit)
	if err != nil {
		api.writeStoreError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, map[string]any{
		"relationships": convert.ToRelationships(relationships),
	})
}

func (api *catalogAPI) handleGetRelationship(w http.ResponseWriter, r *http.Request) {
	guid := strings.TrimSpace(r.PathValue("guid"))
	if guid == "" {
		api.writeError(w, r, http.StatusBadRequest, "guid_required")
		return
	}

	relationship, err := api.relationships.Get(r.Context(), guid)
	if err != nil {
		api.writeStoreError(w, r, err)
		return
	}
	api.writeJSON(w, http.StatusOK, convert.ToRelationship(relationship))
}

// handleAssetContext serves the asset view with its provenance chain: the
// anchor entity starts the chain and each trail GUID is attached one hop
// deeper, in the order supplied.
func (api *catalogAPI) handleAssetContext(w http.ResponseWriter, r *http.Request) {
	guid := strings.TrimSpace(r.PathValue("guid"))
	if guid == "" {
		api.writeError(w, r, http.StatusBadRequest, "guid_required")
		return
	}

	entity, err := api.entities.Get(r.Context(), guid)
	if err != nil {
		api.writeStoreError(w, r, err)
		return
	}

	asset := &convert.AssetElement{AssetDescription: convert.ToAssetDescription(entity)}
	convert.AppendElement(asset, entity)

	for _, trailGUID := range splitTrail(r.URL.Query().Get("trail")) {
		trailEntity, err := api.entities.Get(r.Context(), trailGUID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				api.writeError(w, r, http.StatusNotFound, "context_entity_not_found")
				return
			}
			api.writeError(w, r, http.StatusInternalServerError, "internal_error")
			return
		}
		convert.AppendElement(asset, trailEntity)
	}
	api.writeJSON(w, http.StatusOK, asset)
}

func (api *catalogAPI) handleListTypes(w http.ResponseWriter, r *http.Request) {
	api.writeJSON(w, http.StatusOK, map[string]any{
		"types": api.registry.TypeNames(),
	})
}

func (api *catalogAPI) writeStoreError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, repo.ErrNotFound) {
		api.writeError(w, r, http.StatusNotFound, "not_found")
		return
	}
	api.logger.Error("store failure", "error", err, "path", r.URL.Path)
	api.writeError(w, r, http.StatusInternalServerError, "internal_error")
}

func (api *catalogAPI) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(body)
}

func (api *catalogAPI) writeError(w http.ResponseWriter, r *http.Request, status int, code string) {
	api.writeJSON(w, status, map[string]any{
		"error":      code,
		"request_id": r.Header.Get("X-Request-Id"),
	})
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, 1<<20))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("multiple JSON values")
	}
	return nil
}

func splitTrail(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseIntQuery(r *http.Request, key string, def int) int {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return parsed
}

func clampInt(v int, min int, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
