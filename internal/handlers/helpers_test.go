package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"zenmarket/internal/catalog"
	"zenmarket/internal/middleware"
	"zenmarket/internal/services"
	"zenmarket/internal/storage"
)

const testVisitor = "9b1deb4d-3b7d-4bad-9bdd-2b0d7b3dcb6d"

var errBackendDown = errors.New("backend down")

// stubAI answers every text request with reply, or fails with err
type stubAI struct {
	reply string
	image *services.GeneratedImage
	err   error
}

func (s stubAI) CompleteText(context.Context, services.TextRequest) (string, error) {
	return s.reply, s.err
}

func (s stubAI) GenerateImage(context.Context, services.ImageRequest) (*services.GeneratedImage, error) {
	return s.image, s.err
}

// failingStore fails every operation
type failingStore struct{}

func (failingStore) Get(context.Context, string) ([]byte, error) { return nil, errBackendDown }
func (failingStore) Set(context.Context, string, []byte) error   { return errBackendDown }
func (failingStore) Delete(context.Context, string) error        { return errBackendDown }
func (failingStore) HealthCheck(context.Context) error           { return errBackendDown }

// readOnlyStore serves reads from memory and rejects every write
type readOnlyStore struct {
	*storage.MemoryStore
}

func newReadOnlyStore() readOnlyStore {
	return readOnlyStore{storage.NewMemoryStore()}
}

func (readOnlyStore) Set(context.Context, string, []byte) error { return errBackendDown }

// memoryFlash keeps the last booking in memory instead of a cookie
type memoryFlash struct {
	mu  sync.Mutex
	ids []string
}

func (f *memoryFlash) SetLastBooking(_ http.ResponseWriter, _ *http.Request, ids []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ids = ids
	return nil
}

func (f *memoryFlash) LastBooking(*http.Request) []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ids
}

var (
	testCatalogOnce sync.Once
	testCatalogVal  *catalog.Catalog
)

// testCatalog is the full 450 listing catalog generated from a fixed seed
func testCatalog() *catalog.Catalog {
	testCatalogOnce.Do(func() {
		testCatalogVal = catalog.New(catalog.Generate(450, catalog.GeneratorOptions{
			StartYear: 2026,
			Rand:      catalog.NewRand(7),
		}))
	})
	return testCatalogVal
}

func newGateway(client services.AIClient) *services.AIGateway {
	return services.NewAIGateway(client, services.AIModels{
		Text:   "text-model",
		Reason: "reason-model",
		Image:  "image-model",
	}, services.NewVisualProcessor(0), nil)
}

func newRequest(method, target string, body any) *http.Request {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			reader = bytes.NewBufferString(b)
		default:
			data, _ := json.Marshal(b)
			reader = bytes.NewReader(data)
		}
	}
	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithVisitorID(req.Context(), testVisitor))
}

func withURLParams(req *http.Request, params map[string]string) *http.Request {
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func decodeBody[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()

	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decodeBody[map[string]string](t, w)["error"]
}

func newStates(store storage.KeyValueStore) *services.StateManager {
	return services.NewStateManager(store, nil)
}

func contextWithVisitor(ctx context.Context) context.Context {
	return middleware.WithVisitorID(ctx, testVisitor)
}
