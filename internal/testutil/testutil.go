package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Canned scores API bodies
const (
	ScoresJSON = `{"success":true,"data":[
		{"position":1,"name":"Scottie Scheffler","total_score":-7,"rounds":{
			"round1":{"status":"Finished","score":66},
			"round2":{"status":"Finished","score":72},
			"round3":{"status":"Playing","relative_to_par":-1},
			"round4":{"status":"NotStarted"}}},
		{"position":"T2","name":"Ludvig Åberg","total_score":"-6","rounds":{
			"round1":{"status":"Finished","score":67},
			"round2":{"status":"Finished","score":71},
			"round3":{"status":"NotStarted"},
			"round4":{"status":"NotStarted"}}}]}`

	TeamsJSON = `{"success":true,"data":[
		{"rank":1,"team":"Amen Corner","score":-9,"players":[
			{"name":"Scottie Scheffler","tier":"A","rounds":[66,72],"total":-6},
			{"name":"Ludvig Åberg","tier":"B","rounds":[67,71],"total":-6},
			{"name":"Tom Kim","tier":"C","rounds":[74,73],"total":3}]},
		{"rank":null,"team":"Late Entry","score":null,"players":[]}]}`

	ReportJSON = `{"success":true,"message":"Report generated","file_path":"/reports/masters.xlsx"}`
)

// ScoresServer is a fake scores API. Bodies and status codes can be swapped
// while the server runs.
type ScoresServer struct {
	*httptest.Server

	mu       sync.Mutex
	bodies   map[string]string
	statuses map[string]int
	hits     map[string]int
}

// NewScoresServer starts a fake scores API serving the canned bodies. It is
// closed when the test ends.
func NewScoresServer(t *testing.T) *ScoresServer {
	t.Helper()

	s := &ScoresServer{
		bodies: map[string]string{
			"/api/scores":          ScoresJSON,
			"/api/team-scores":     TeamsJSON,
			"/api/generate-report": ReportJSON,
		},
		statuses: map[string]int{},
		hits:     map[string]int{},
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Respond replaces the response for path
func (s *ScoresServer) Respond(path string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bodies[path] = body
	s.statuses[path] = status
}

// Hits returns how many requests path has received
func (s *ScoresServer) Hits(path string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hits[path]
}

func (s *ScoresServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	body, ok := s.bodies[r.URL.Path]
	status := s.statuses[r.URL.Path]
	s.hits[r.URL.Path]++
	s.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	if r.URL.Path == "/api/generate-report" && r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if status == 0 {
		status = http.StatusOK
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
