package tabroom

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"tabroomapi/lib/telemetry"

	"github.com/mazen160/go-random"
	"github.com/stretchr/testify/require"
)

const (
	fixtureUsername = "user"
	fixturePassword = "goodpass"
)

var fixturePages = map[string]string{
	"/index/tourn/index.mhtml?tourn_id=31822":                               "tournament_home.html",
	"/index/tourn/fields.mhtml?tourn_id=31822":                              "tournament_fields.html",
	"/index/tourn/fields.mhtml?tourn_id=31822&event_id=1001":                "fields_1001.html",
	"/index/tourn/events.mhtml?tourn_id=31822":                              "tournament_events.html",
	"/index/tourn/events.mhtml?event_id=1001&tourn_id=31822":                "event_1001.html",
	"/index/tourn/events.mhtml?event_id=1002&tourn_id=31822":                "event_1002.html",
	"/index/tourn/postings/entry_record.mhtml?tourn_id=31822&entry_id=5001": "entry_record_5001.html",
	"/index/tourn/judges.mhtml?tourn_id=31822":                              "tournament_judges.html",
	"/index/tourn/judges.mhtml?category_id=77&tourn_id=31822":               "judges_77.html",
	"/user/login/login.mhtml":                                               "login.html",
}

var fixtureAuthPages = map[string]string{
	"/user/login/profile.mhtml":                                "profile.html",
	"/user/student/index.mhtml":                                "student_home.html",
	"/user/student/history.mhtml?tourn_id=31822&student_id=42": "history.html",
	"/index/paradigm.mhtml?judge_person_id=9":                  "paradigm.html",
}

// fixtureSite stands in for tabroom.com, serving testdata/ and counting
// every request by method and request uri.
type fixtureSite struct {
	t      testing.TB
	server *httptest.Server
	token  string

	// delay holds every response, used to observe the concurrency bound
	delay time.Duration

	mutex       sync.Mutex
	hits        map[string]int
	inflight    int
	maxInflight int
}

func newFixtureSite(t testing.TB) *fixtureSite {
	token, err := random.String(24)
	require.Nil(t, err)

	site := &fixtureSite{
		t:     t,
		token: token + "/=",
		hits:  map[string]int{},
	}
	site.server = httptest.NewServer(http.HandlerFunc(site.serve))
	t.Cleanup(site.server.Close)
	return site
}

func (s *fixtureSite) client(t testing.TB) (*Client, *telemetry.TestAPI) {
	return s.clientWith(t, Options{})
}

func (s *fixtureSite) clientWith(t testing.TB, opts Options) (*Client, *telemetry.TestAPI) {
	tel := &telemetry.TestAPI{}
	opts.BaseUrl = s.server.URL
	opts.Telemetry = tel
	client, err := NewClient(opts)
	require.Nil(t, err)
	t.Cleanup(client.Close)
	return client, tel
}

func (s *fixtureSite) count(method, uri string) int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.hits[method+" "+uri]
}

func (s *fixtureSite) total() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	n := 0
	for _, hits := range s.hits {
		n += hits
	}
	return n
}

func (s *fixtureSite) peakInflight() int {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.maxInflight
}

func (s *fixtureSite) reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.hits = map[string]int{}
}

func (s *fixtureSite) writeFile(w http.ResponseWriter, name string) {
	contents, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		s.t.Errorf("read fixture %s: %v", name, err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(contents)
}

func (s *fixtureSite) authorized(r *http.Request) bool {
	cookie, err := r.Cookie(tokenCookie)
	return err == nil && cookie.Value == s.token
}

func (s *fixtureSite) serve(w http.ResponseWriter, r *http.Request) {
	uri := r.URL.RequestURI()
	s.mutex.Lock()
	s.hits[r.Method+" "+uri]++
	s.inflight++
	s.maxInflight = max(s.maxInflight, s.inflight)
	s.mutex.Unlock()
	defer func() {
		s.mutex.Lock()
		s.inflight--
		s.mutex.Unlock()
	}()
	if s.delay > 0 {
		time.Sleep(s.delay)
	}

	switch {
	case r.Method == http.MethodPost && uri == pathLoginSave:
		s.loginSave(w, r)
		return
	case r.Method == http.MethodPost && uri == pathSearch:
		if r.FormValue("search") == "nothing" {
			s.writeFile(w, "search_empty.html")
			return
		}
		s.writeFile(w, "search.html")
		return
	case uri == pathLogout:
		w.WriteHeader(http.StatusOK)
		return
	}

	if name, ok := fixturePages[uri]; ok {
		s.writeFile(w, name)
		return
	}
	if name, ok := fixtureAuthPages[uri]; ok {
		if !s.authorized(r) {
			w.WriteHeader(http.StatusForbidden)
			w.Write([]byte("login required"))
			return
		}
		s.writeFile(w, name)
		return
	}
	http.NotFound(w, r)
}

func (s *fixtureSite) loginSave(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil || r.PostForm.Get("salt") != "s4lt" || r.PostForm.Get("sha") != "5ha" {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")
	switch {
	case username == "status":
		w.WriteHeader(http.StatusOK)
		return
	case username == "empty":
		w.Header().Add("Set-Cookie", tokenCookie+"=; Path=/")
	case username == fixtureUsername && password == fixturePassword:
		http.SetCookie(w, &http.Cookie{
			Name:  tokenCookie,
			Value: url.QueryEscape(s.token),
			Path:  "/",
		})
	}
	w.Header().Set("Location", "/user/student/index.mhtml")
	w.WriteHeader(http.StatusFound)
}
