// Package apitest provides an in-memory portfolio API for tests. It serves
// every collection the real backend exposes, issues real HS256 bearer
// tokens, and records each request so tests can assert on what was (and was
// not) sent.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

// Collections are the resource collections the fake serves, matching the
// real API's router registrations.
var Collections = []string{
	"projects", "blogs", "skills", "experience", "testimonials", "resumes", "contacts",
}

// listFields are multipart fields carrying a JSON-encoded array.
var listFields = map[string]map[string]bool{
	"projects": {"technologies": true},
	"blogs":    {"tags": true},
}

var boolFields = map[string]bool{
	"featured": true, "published": true, "is_active": true,
	"current": true, "read": true, "responded": true, "approved": true,
}

var intFields = map[string]bool{
	"order": true, "proficiency": true, "rating": true,
}

// Server is the fake API. All state lives in memory behind one mutex.
type Server struct {
	httpServer *httptest.Server

	username string
	password string
	secret   []byte
	tokenTTL time.Duration

	mu       sync.Mutex
	data     map[string][]map[string]any
	files    map[string][]byte
	nextID   map[string]int
	failing  map[string]bool
	refresh  string
	requests []string
}

func New() *Server {
	s := &Server{
		username: "admin",
		password: "secret",
		secret:   []byte("apitest-signing-secret"),
		tokenTTL: 15 * time.Minute,
		data:     make(map[string][]map[string]any),
		files:    make(map[string][]byte),
		nextID:   make(map[string]int),
		failing:  make(map[string]bool),
	}

	router := chi.NewRouter()
	router.Use(s.record)

	router.Post("/auth/token/", s.obtainToken)
	router.Post("/auth/token/refresh/", s.refreshToken)

	for _, collection := range Collections {
		collection := collection
		router.Get("/"+collection+"/", s.auth(s.list(collection)))
		if collection == "contacts" {
			// The contact form is the one public write.
			router.Post("/contacts/", s.create(collection))
		} else {
			router.Post("/"+collection+"/", s.auth(s.create(collection)))
		}
		router.Put("/"+collection+"/{id}/", s.auth(s.update(collection)))
		router.Patch("/"+collection+"/{id}/", s.auth(s.patch(collection)))
		router.Delete("/"+collection+"/{id}/", s.auth(s.remove(collection)))
	}
	router.Get("/resumes/{id}/download/", s.auth(s.download))

	s.httpServer = httptest.NewServer(router)
	return s
}

func (s *Server) URL() string { return s.httpServer.URL }

func (s *Server) Close() { s.httpServer.Close() }

// Requests returns "METHOD /path" entries for every request seen.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.requests))
	copy(out, s.requests)
	return out
}

// CountRequests returns how many recorded requests match the given method
// and path prefix.
func (s *Server) CountRequests(method, pathPrefix string) int {
	count := 0
	for _, entry := range s.Requests() {
		if strings.HasPrefix(entry, method+" "+pathPrefix) {
			count++
		}
	}
	return count
}

func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// FailCollection makes every handler for one collection answer 500, to
// exercise partial-failure behavior.
func (s *Server) FailCollection(collection string, fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failing[collection] = fail
}

// Seed inserts an item directly, assigning an id and timestamps when absent.
// Returns the assigned id.
func (s *Server) Seed(collection string, item map[string]any) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(collection, item)
}

// SeedFile registers file content under a stored path, served by download.
func (s *Server) SeedFile(storedPath string, content []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[storedPath] = content
}

// Items returns a copy of one collection's records.
func (s *Server) Items(collection string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]map[string]any, len(s.data[collection]))
	copy(out, s.data[collection])
	return out
}

// IssueToken signs a bearer token with the given lifetime. Negative
// lifetimes produce an already expired token.
func (s *Server) IssueToken(ttl time.Duration) string {
	claims := jwt.RegisteredClaims{
		Subject:   s.username,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		panic(fmt.Sprintf("apitest: signing token: %v", err))
	}
	return signed
}

// Username and Password are the accepted credentials.
func (s *Server) Username() string { return s.username }
func (s *Server) Password() string { return s.password }

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, r.Method+" "+r.URL.Path)
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) auth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}

		raw := strings.TrimPrefix(header, "Bearer ")
		_, err := jwt.Parse(raw, func(token *jwt.Token) (any, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return s.secret, nil
		}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]any{"error": "unauthorized"})
			return
		}

		next.ServeHTTP(w, r)
	}
}

func (s *Server) obtainToken(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed request body"})
		return
	}

	if creds.Username != s.username || creds.Password != s.password {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "No active account found with the given credentials"})
		return
	}

	s.mu.Lock()
	s.refresh = fmt.Sprintf("refresh-%d", time.Now().UnixNano())
	refresh := s.refresh
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"access":  s.IssueToken(s.tokenTTL),
		"refresh": refresh,
	})
}

func (s *Server) refreshToken(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Refresh string `json:"refresh"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed request body"})
		return
	}

	s.mu.Lock()
	valid := payload.Refresh != "" && payload.Refresh == s.refresh
	s.mu.Unlock()

	if !valid {
		writeJSON(w, http.StatusUnauthorized, map[string]any{"detail": "Token is invalid or expired"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"access": s.IssueToken(s.tokenTTL)})
}

func (s *Server) list(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.isFailing(collection) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
			return
		}

		s.mu.Lock()
		items := s.data[collection]
		if items == nil {
			items = []map[string]any{}
		}
		out := make([]map[string]any, len(items))
		copy(out, items)
		s.mu.Unlock()

		writeJSON(w, http.StatusOK, out)
	}
}

func (s *Server) create(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.isFailing(collection) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
			return
		}

		item, err := s.decodePayload(collection, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}

		s.mu.Lock()
		s.insert(collection, item)
		s.mu.Unlock()

		writeJSON(w, http.StatusCreated, item)
	}
}

func (s *Server) update(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.isFailing(collection) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
			return
		}

		incoming, err := s.decodePayload(collection, r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		existing, index := s.find(collection, id)
		if existing == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": collection + " not found"})
			return
		}

		incoming["id"] = id
		carryOver(existing, incoming, "created_at", "submitted_at", "file")
		incoming["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		s.data[collection][index] = incoming

		writeJSON(w, http.StatusOK, incoming)
	}
}

func (s *Server) patch(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.isFailing(collection) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
			return
		}

		var fields map[string]any
		if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "malformed request body"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		existing, index := s.find(collection, id)
		if existing == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": collection + " not found"})
			return
		}

		for key, value := range fields {
			existing[key] = value
		}
		existing["updated_at"] = time.Now().UTC().Format(time.RFC3339)
		s.data[collection][index] = existing

		writeJSON(w, http.StatusOK, existing)
	}
}

func (s *Server) remove(collection string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.isFailing(collection) {
			writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
			return
		}

		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
			return
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		existing, index := s.find(collection, id)
		if existing == nil {
			writeJSON(w, http.StatusNotFound, map[string]any{"error": collection + " not found"})
			return
		}

		s.data[collection] = append(s.data[collection][:index], s.data[collection][index+1:]...)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) download(w http.ResponseWriter, r *http.Request) {
	if s.isFailing("resumes") {
		writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "internal server error"})
		return
	}

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid id"})
		return
	}

	s.mu.Lock()
	resume, _ := s.find("resumes", id)
	var storedPath string
	var content []byte
	if resume != nil {
		storedPath, _ = resume["file"].(string)
		content = s.files[storedPath]
	}
	s.mu.Unlock()

	if resume == nil || storedPath == "" {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "no file attached"})
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", path.Base(storedPath)))
	w.Write(content)
}

// decodePayload accepts either JSON or multipart bodies, normalizing
// multipart string values back into the types the JSON representation uses.
func (s *Server) decodePayload(collection string, r *http.Request) (map[string]any, error) {
	contentType := r.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "multipart/form-data") {
		var item map[string]any
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			return nil, fmt.Errorf("malformed request body")
		}
		return item, nil
	}

	if err := r.ParseMultipartForm(16 << 20); err != nil {
		return nil, fmt.Errorf("malformed multipart body")
	}

	item := make(map[string]any)
	for key, values := range r.MultipartForm.Value {
		if len(values) == 0 {
			continue
		}
		item[key] = normalizeFormValue(collection, key, values[0])
	}

	for field, headers := range r.MultipartForm.File {
		if len(headers) == 0 {
			continue
		}
		header := headers[0]
		file, err := header.Open()
		if err != nil {
			return nil, fmt.Errorf("reading uploaded file")
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return nil, fmt.Errorf("reading uploaded file")
		}

		storedPath := collection + "/" + header.Filename
		s.mu.Lock()
		s.files[storedPath] = content
		s.mu.Unlock()
		item[field] = storedPath
	}
	return item, nil
}

func normalizeFormValue(collection, key, value string) any {
	if listFields[collection][key] {
		var list []any
		if err := json.Unmarshal([]byte(value), &list); err == nil {
			return list
		}
		return value
	}
	if boolFields[key] {
		parsed, err := strconv.ParseBool(value)
		if err == nil {
			return parsed
		}
	}
	if intFields[key] {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return value
}

// insert assumes s.mu is held.
func (s *Server) insert(collection string, item map[string]any) int {
	s.nextID[collection]++
	id := s.nextID[collection]
	item["id"] = id

	now := time.Now().UTC().Format(time.RFC3339)
	if collection == "contacts" {
		if _, ok := item["read"]; !ok {
			item["read"] = false
		}
		if _, ok := item["submitted_at"]; !ok {
			item["submitted_at"] = now
		}
	} else {
		if _, ok := item["created_at"]; !ok {
			item["created_at"] = now
		}
		item["updated_at"] = now
	}

	s.data[collection] = append(s.data[collection], item)
	return id
}

// find assumes s.mu is held.
func (s *Server) find(collection string, id int) (map[string]any, int) {
	for i, item := range s.data[collection] {
		if itemID(item) == id {
			return item, i
		}
	}
	return nil, -1
}

func (s *Server) isFailing(collection string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failing[collection]
}

func itemID(item map[string]any) int {
	switch v := item["id"].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func carryOver(from, to map[string]any, keys ...string) {
	for _, key := range keys {
		if _, ok := to[key]; ok {
			continue
		}
		if value, ok := from[key]; ok {
			to[key] = value
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		// Nothing useful to do; the test will fail on the truncated body.
		_ = err
	}
}
