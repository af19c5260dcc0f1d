// Package wptest provides an in-memory WordPress posts API for tests.
package wptest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/giantswarm/mcp-wordpress/internal/wordpress"
)

// Timestamp is the date reported for every post the fake creates.
const Timestamp = "2024-01-01T10:00:00"

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Request is a request observed by the fake.
type Request struct {
	Method        string
	Path          string
	Query         string
	Authorization string
}

// Server is a fake WordPress site backed by an httptest.Server. Post IDs are
// assigned sequentially from 1; SetNextID moves the counter.
type Server struct {
	*httptest.Server

	// When set, requests must carry matching credentials.
	Username string
	Password string
	Token    string

	mu       sync.Mutex
	nextID   int64
	posts    map[int64]*wordpress.Post
	requests []Request
	failWith int
}

// NewServer starts a fake site. Callers must Close it.
func NewServer() *Server {
	s := &Server{
		nextID: 1,
		posts:  make(map[int64]*wordpress.Post),
	}

	r := chi.NewRouter()
	r.Use(s.record, s.authenticate)
	r.Route("/wp-json/wp/v2/posts", func(r chi.Router) {
		r.Get("/", s.listPosts)
		r.Post("/", s.createPost)
		r.Get("/{id}", s.getPost)
		r.Delete("/{id}", s.deletePost)
	})

	s.Server = httptest.NewServer(r)
	return s
}

// SetNextID sets the ID the next created post receives.
func (s *Server) SetNextID(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID = id
}

// FailWith makes every following request answer with status. Zero restores
// normal behaviour.
func (s *Server) FailWith(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWith = status
}

// AddPost stores p as if it had been created earlier and returns it.
func (s *Server) AddPost(p wordpress.Post) wordpress.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p.ID == 0 {
		p.ID = s.nextID
	}
	if p.ID >= s.nextID {
		s.nextID = p.ID + 1
	}
	s.fill(&p)
	s.posts[p.ID] = &p
	return p
}

// Post returns the stored post with id.
func (s *Server) Post(id int64) (wordpress.Post, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.posts[id]
	if !ok {
		return wordpress.Post{}, false
	}
	return *p, true
}

// Requests returns the requests observed so far.
func (s *Server) Requests() []Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Request(nil), s.requests...)
}

// LastRequest returns the most recent request.
func (s *Server) LastRequest() Request {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.requests) == 0 {
		return Request{}
	}
	return s.requests[len(s.requests)-1]
}

// Config returns a client configuration pointing at the fake.
func (s *Server) Config() wordpress.Config {
	return wordpress.Config{URL: s.URL, Username: s.Username, Password: s.Password, Token: s.Token}
}

func (s *Server) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests = append(s.requests, Request{
			Method:        r.Method,
			Path:          r.URL.Path,
			Query:         r.URL.RawQuery,
			Authorization: r.Header.Get("Authorization"),
		})
		status := s.failWith
		s.mu.Unlock()

		if status != 0 {
			writeError(w, status, "rest_test_failure", "Injected failure.")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case s.Username != "" || s.Password != "":
			user, pass, ok := r.BasicAuth()
			if !ok || user != s.Username || pass != s.Password {
				writeError(w, http.StatusUnauthorized, "rest_not_logged_in", "You are not currently logged in.")
				return
			}
		case s.Token != "":
			if r.Header.Get("Authorization") != "Bearer "+s.Token {
				writeError(w, http.StatusUnauthorized, "jwt_auth_invalid_token", "Token is invalid.")
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) createPost(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
		Status  string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "rest_invalid_json", "Invalid JSON body passed.")
		return
	}
	if body.Status == "" {
		body.Status = wordpress.StatusDraft
	}

	s.mu.Lock()
	p := &wordpress.Post{
		ID:      s.nextID,
		Title:   wordpress.Rendered{Rendered: body.Title, Raw: body.Title},
		Content: wordpress.Rendered{Rendered: body.Content, Raw: body.Content},
		Status:  body.Status,
	}
	s.nextID++
	s.fill(p)
	s.posts[p.ID] = p
	out := *p
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, out)
}

func (s *Server) getPost(w http.ResponseWriter, r *http.Request) {
	p, ok := s.lookup(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid post ID.")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) listPosts(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("slug")

	s.mu.Lock()
	out := []wordpress.Post{}
	for id := int64(1); id < s.nextID; id++ {
		p, ok := s.posts[id]
		if !ok || p.Status == "trash" {
			continue
		}
		if slug == "" || p.Slug == slug {
			out = append(out, *p)
		}
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) deletePost(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid post ID.")
		return
	}
	force, _ := strconv.ParseBool(r.URL.Query().Get("force"))

	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.posts[id]
	if !ok {
		writeError(w, http.StatusNotFound, "rest_post_invalid_id", "Invalid post ID.")
		return
	}

	if force {
		delete(s.posts, id)
		writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": true, "previous": p})
		return
	}
	if p.Status == "trash" {
		writeError(w, http.StatusGone, "rest_already_trashed", "The post has already been deleted.")
		return
	}
	p.Status = "trash"
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) lookup(raw string) (wordpress.Post, bool) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return wordpress.Post{}, false
	}
	return s.Post(id)
}

// fill sets the derived fields WordPress computes. Callers hold s.mu.
func (s *Server) fill(p *wordpress.Post) {
	if p.Slug == "" {
		p.Slug = strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(p.Title.Rendered), "-"), "-")
	}
	if p.Date == "" {
		p.Date = Timestamp
	}
	if p.Modified == "" {
		p.Modified = p.Date
	}
	if p.Link == "" {
		p.Link = fmt.Sprintf("%s/?p=%d", s.URL, p.ID)
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]interface{}{
		"code":    code,
		"message": message,
		"data":    map[string]int{"status": status},
	})
}
