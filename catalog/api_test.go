package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tessera-labs/tessera-go/internal/beans"
	"github.com/tessera-labs/tessera-go/internal/omr"
	"github.com/tessera-labs/tessera-go/internal/repo"
	"github.com/tessera-labs/tessera-go/internal/typereg"
)

type stubEntityStore struct {
	entities map[string]omr.EntityDetail
}

func (s *stubEntityStore) Create(_ context.Context, entity omr.EntityDetail) error {
	if s.entities == nil {
		s.entities = make(map[string]omr.EntityDetail)
	}
	s.entities[entity.GUID] = entity
	return nil
}

func (s *stubEntityStore) Get(_ context.Context, guid string) (omr.EntityDetail, error) {
	entity, ok := s.entities[guid]
	if !ok {
		return omr.EntityDetail{}, repo.ErrNotFound
	}
	return entity, nil
}

type stubRelationshipStore struct {
	relationships map[string]omr.Relationship
}

func (s *stubRelationshipStore) Create(_ context.Context, relationship omr.Relationship) error {
	if s.relationships == nil {
		s.relationships = make(map[string]omr.Relationship)
	}
	s.relationships[relationship.GUID] = relationship
	return nil
}

func (s *stubRelationshipStore) Get(_ context.Context, guid string) (omr.Relationship, error) {
	relationship, ok := s.relationships[guid]
	if !ok {
		return omr.Relationship{}, repo.ErrNotFound
	}
	return relationship, nil
}

func (s *stubRelationshipStore) ListByEntity(_ context.Context, entityGUID string, limit int) ([]omr.Relationship, error) {
	out := make([]omr.Relationship, 0)
	for _, relationship := range s.relationships {
		if len(out) >= limit {
			break
		}
		one := relationship.EntityOneProxy
		two := relationship.EntityTwoProxy
		if (one != nil && one.GUID == entityGUID) || (two != nil && two.GUID == entityGUID) {
			out = append(out, relationship)
		}
	}
	return out, nil
}

func testMux(t *testing.T, entities map[string]omr.EntityDetail, relationships map[string]omr.Relationship) *http.ServeMux {
	t.Helper()
	registry := typereg.NewRegistry()
	beans.RegisterTypes(registry)

	api := newCatalogAPI(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		&stubEntityStore{entities: entities},
		&stubRelationshipStore{relationships: relationships},
		registry,
	)

	mux := http.NewServeMux()
	api.register(mux)
	return mux
}

func ruleEntity(guid string) omr.EntityDetail {
	props := omr.NewProperties()
	props.Set("title", omr.StringValue("Mask card numbers"))
	props.Set("qualifiedName", omr.StringValue("rule::mask-pan"))
	return omr.EntityDetail{
		SystemAttributes: omr.SystemAttributes{GUID: guid, Version: 4, Status: omr.StatusActive},
		Type:             &omr.InstanceType{Name: beans.GovernanceRuleTypeName},
		Properties:       props,
	}
}

func doGet(t *testing.T, mux *http.ServeMux, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("GET", "http://example.test"+path, nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	return rec
}

func TestGetAsset(t *testing.T) {
	mux := testMux(t, map[string]omr.EntityDetail{"asset-1": ruleEntity("asset-1")}, nil)

	rec := doGet(t, mux, "/assets/asset-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["guid"] != "asset-1" {
		t.Fatalf("guid=%v, want asset-1", body["guid"])
	}
	if body["status"] != "Active" {
		t.Fatalf("status=%v, want Active", body["status"])
	}
	classifications, ok := body["classifications"].([]any)
	if !ok || len(classifications) != 0 {
		t.Fatalf("classifications=%v, want empty list", body["classifications"])
	}
}

func TestGetAssetNotFound(t *testing.T) {
	mux := testMux(t, nil, nil)

	rec := doGet(t, mux, "/assets/missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "not_found" {
		t.Fatalf("error=%v, want not_found", body["error"])
	}
}

func TestGetAssetAsBean(t *testing.T) {
	mux := testMux(t, map[string]omr.EntityDetail{"asset-1": ruleEntity("asset-1")}, nil)

	rec := doGet(t, mux, "/assets/asset-1/as/GovernanceRule")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["title"] != "Mask card numbers" {
		t.Fatalf("title=%v, want Mask card numbers", body["title"])
	}
}

func TestGetAssetAsTypeMismatch(t *testing.T) {
	mux := testMux(t, map[string]omr.EntityDetail{"asset-1": ruleEntity("asset-1")}, nil)

	rec := doGet(t, mux, "/assets/asset-1/as/GlossaryTerm")
	if rec.Code != http.StatusConflict {
		t.Fatalf("status=%d, want 409", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "type_mismatch" {
		t.Fatalf("error=%v, want type_mismatch", body["error"])
	}
	if body["expected"] != "GlossaryTerm" || body["actual"] != "GovernanceRule" {
		t.Fatalf("expected/actual=%v/%v", body["expected"], body["actual"])
	}
}

func TestGetAssetAsUnknownType(t *testing.T) {
	mux := testMux(t, map[string]omr.EntityDetail{"asset-1": ruleEntity("asset-1")}, nil)

	rec := doGet(t, mux, "/assets/asset-1/as/Nonesuch")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
}

func TestGetRelationship(t *testing.T) {
	unique := omr.NewProperties()
	unique.Set("name", omr.StringValue("orders"))
	relationship := omr.Relationship{
		SystemAttributes: omr.SystemAttributes{GUID: "rel-1", Version: 1},
		Type:             &omr.InstanceType{Name: beans.SemanticAssignmentTypeName},
		EntityOneProxy: &omr.EntityProxy{
			SystemAttributes: omr.SystemAttributes{GUID: "entity-1"},
			UniqueProperties: unique,
		},
		EntityTwoProxy: &omr.EntityProxy{
			SystemAttributes: omr.SystemAttributes{GUID: "entity-2"},
		},
	}
	mux := testMux(t, nil, map[string]omr.Relationship{"rel-1": relationship})

	rec := doGet(t, mux, "/relationships/rel-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	var body struct {
		GUID       string `json:"guid"`
		FromEntity struct {
			GUID string `json:"guid"`
			Name string `json:"name"`
		} `json:"fromEntity"`
		ToEntity struct {
			GUID string `json:"guid"`
		} `json:"toEntity"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.GUID != "rel-1" || body.FromEntity.GUID != "entity-1" || body.ToEntity.GUID != "entity-2" {
		t.Fatalf("body=%+v, want rel-1 with both proxies", body)
	}
	if body.FromEntity.Name != "orders" {
		t.Fatalf("fromEntity.name=%q, want orders", body.FromEntity.Name)
	}
}

func TestAssetContextChain(t *testing.T) {
	entities := map[string]omr.EntityDetail{
		"asset-1": ruleEntity("asset-1"),
		"host-1":  {SystemAttributes: omr.SystemAttributes{GUID: "host-1"}, Type: &omr.InstanceType{Name: "Endpoint"}},
		"plat-1":  {SystemAttributes: omr.SystemAttributes{GUID: "plat-1"}, Type: &omr.InstanceType{Name: "SoftwareServerPlatform"}},
	}
	mux := testMux(t, entities, nil)

	rec := doGet(t, mux, "/assets/asset-1/context?trail=host-1,plat-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	var body struct {
		GUID    string `json:"guid"`
		Context []struct {
			GUID          string `json:"guid"`
			ParentElement []struct {
				GUID          string `json:"guid"`
				ParentElement []struct {
					GUID string `json:"guid"`
				} `json:"parentElement"`
			} `json:"parentElement"`
		} `json:"context"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.GUID != "asset-1" {
		t.Fatalf("guid=%q, want asset-1", body.GUID)
	}
	if len(body.Context) != 1 || body.Context[0].GUID != "asset-1" {
		t.Fatalf("context roots=%+v, want single asset-1 root", body.Context)
	}
	chain := body.Context[0].ParentElement
	if len(chain) != 1 || chain[0].GUID != "host-1" {
		t.Fatalf("first hop=%+v, want host-1", chain)
	}
	if len(chain[0].ParentElement) != 1 || chain[0].ParentElement[0].GUID != "plat-1" {
		t.Fatalf("second hop=%+v, want plat-1", chain[0].ParentElement)
	}
}

func TestAssetContextTrailEntityMissing(t *testing.T) {
	mux := testMux(t, map[string]omr.EntityDetail{"asset-1": ruleEntity("asset-1")}, nil)

	rec := doGet(t, mux, "/assets/asset-1/context?trail=missing")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d, want 404", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body["error"] != "context_entity_not_found" {
		t.Fatalf("error=%v, want context_entity_not_found", body["error"])
	}
}

func TestCreateAssetMintsGUID(t *testing.T) {
	entities := &stubEntityStore{}
	registry := typereg.NewRegistry()
	beans.RegisterTypes(registry)
	api := newCatalogAPI(
		slog.New(slog.NewTextHandler(io.Discard, nil)),
		entities,
		&stubRelationshipStore{},
		registry,
	)
	mux := http.NewServeMux()
	api.register(mux)

	payload := `{"type":{"name":"GovernanceRule"},"properties":[{"name":"title","category":"primitive","kind":"string","value":"Mask card numbers"}]}`
	req := httptest.NewRequest("POST", "http://example.test/assets", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d, want 201, body=%s", rec.Code, rec.Body.String())
	}
	var body struct {
		GUID string `json:"guid"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.GUID == "" {
		t.Fatalf("expected a minted guid")
	}
	stored, ok := entities.entities[body.GUID]
	if !ok {
		t.Fatalf("entity was not stored under %q", body.GUID)
	}
	if stored.CreateTime.IsZero() {
		t.Fatalf("create time was not stamped")
	}
}

func TestCreateAssetRejectsMissingType(t *testing.T) {
	mux := testMux(t, nil, nil)

	req := httptest.NewRequest("POST", "http://example.test/assets", strings.NewReader(`{"guid":"x"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d, want 400", rec.Code)
	}
}

func TestListTypes(t *testing.T) {
	mux := testMux(t, nil, nil)

	rec := doGet(t, mux, "/types")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d, want 200", rec.Code)
	}
	var body struct {
		Types []string `json:"types"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Types) != 3 {
		t.Fatalf("types=%v, want the three registered types", body.Types)
	}
}

func TestBuildRegistryLayersArchiveFiles(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")

	writeArchive := func(path, body string) {
		t.Helper()
		if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
			t.Fatalf("write archive: %v", err)
		}
	}
	writeArchive(first, `
schema: tessera.types.v1
types:
  - name: DataFile
    properties: [pathName]
    attributes: [pathName]
`)
	writeArchive(second, `
schema: tessera.types.v1
types:
  - name: DataFile
    properties: [pathName, fileType]
    attributes: [pathName, fileType]
`)

	t.Setenv("TESSERA_TYPE_ARCHIVE_FILES", first+", "+second)
	t.Setenv("TESSERA_TYPE_ARCHIVE_OBJECT", "")

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry, err := buildRegistry(context.Background(), logger)
	if err != nil {
		t.Fatalf("buildRegistry: %v", err)
	}

	sets, ok := registry.Lookup("DataFile")
	if !ok {
		t.Fatalf("DataFile not registered")
	}
	if sets.Classify("fileType") != typereg.KnownAttribute {
		t.Fatalf("fileType=%v, want the later archive to win", sets.Classify("fileType"))
	}
	if _, ok := registry.Lookup(beans.GovernanceRuleTypeName); !ok {
		t.Fatalf("generated registrations must survive archive layering")
	}
}
