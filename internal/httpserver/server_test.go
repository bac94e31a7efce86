package httpserver

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/sessions"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/soundplus/storefront/internal/apiclient"
	"github.com/soundplus/storefront/internal/models"
	"github.com/soundplus/storefront/internal/service"
	"github.com/soundplus/storefront/internal/session"
	"github.com/soundplus/storefront/pkg/logging"
	"github.com/soundplus/storefront/pkg/middleware"
	"github.com/soundplus/storefront/pkg/middleware/csrf"
	"github.com/soundplus/storefront/pkg/middleware/ratelimit"
)

// fakeAPI is an in-memory backend that records every call it receives.
type fakeAPI struct {
	mu          sync.Mutex
	calls       []string
	requestIDs  []string
	products    []models.Product
	addStatus   int
	orderStatus int
	lastAdd     url.Values
	lastAddFile bool
}

func (f *fakeAPI) called() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

func (f *fakeAPI) reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = nil
}

func (f *fakeAPI) count(call string) int {
	n := 0
	for _, c := range f.called() {
		if c == call {
			n++
		}
	}
	return n
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)
	f.requestIDs = append(f.requestIDs, r.Header.Get("X-Request-ID"))

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/login":
		var body struct{ Email, Password string }
		_ = json.NewDecoder(r.Body).Decode(&body)
		switch body.Email {
		case "admin@example.com":
			_, _ = io.WriteString(w, `{"token":"tok-admin","user":{"_id":"a1","username":"ann","role":"admin"}}`)
		case "bob@example.com":
			_, _ = io.WriteString(w, `{"token":"tok-bob","user":{"id":"u1","username":"bob","role":"user"}}`)
		default:
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Invalid credentials"}`)
		}
	case r.Method == http.MethodPost && r.URL.Path == "/register":
		w.WriteHeader(http.StatusCreated)
	case r.Method == http.MethodGet && r.URL.Path == "/health":
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && r.URL.Path == "/products":
		_ = json.NewEncoder(w).Encode(f.products)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/products/"):
		id := strings.TrimPrefix(r.URL.Path, "/products/")
		for _, p := range f.products {
			if p.ID == id {
				_ = json.NewEncoder(w).Encode(p)
				return
			}
		}
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"message":"Product not found"}`)
	case r.Method == http.MethodPost && r.URL.Path == "/add-product":
		if f.addStatus != 0 {
			w.WriteHeader(f.addStatus)
			_, _ = io.WriteString(w, `{"message":"disk full"}`)
			return
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		f.lastAdd = r.MultipartForm.Value
		_, f.lastAddFile = r.MultipartForm.File["image"]
		p := models.Product{ID: "new", Name: r.FormValue("name"), Category: r.FormValue("category"), Price: 10}
		f.products = append(f.products, p)
		_ = json.NewEncoder(w).Encode(p)
	case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/delete-product/"):
		id := strings.TrimPrefix(r.URL.Path, "/delete-product/")
		kept := make([]models.Product, 0, len(f.products))
		for _, p := range f.products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}
		if len(kept) == len(f.products) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"message":"Product not found"}`)
			return
		}
		f.products = kept
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/orders/"):
		if f.orderStatus != 0 {
			w.WriteHeader(f.orderStatus)
			_, _ = io.WriteString(w, `{"message":"token expired"}`)
			return
		}
		_, _ = io.WriteString(w, `[{"_id":"o1","status":"shipped","totalAmount":42.5,"items":[{"name":"Aria","quantity":1,"price":42.5}]}]`)
	default:
		http.NotFound(w, r)
	}
}

type fixture struct {
	api *fakeAPI
	srv *httptest.Server
}

func newFixture(t *testing.T, limiter *ratelimit.Limiter) *fixture {
	t.Helper()
	api := &fakeAPI{products: []models.Product{
		{ID: "p1", Name: "Aria", Brand: "Sonic", Category: "headphones", Price: 99, Discount: "10%"},
	}}
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	client, err := apiclient.NewClient(apiSrv.URL, 2*time.Second)
	require.NoError(t, err)

	e := echo.New()
	e.Use(middleware.Common(logging.NewWithWriter(io.Discard, "error"))...)

	store := sessions.NewCookieStore([]byte("0123456789abcdef0123456789abcdef"))
	store.Options = SessionOptions(time.Hour, false)

	require.NoError(t, Register(e, &Deps{
		Sessions:     store,
		Auth:         &service.AuthService{API: client},
		Catalog:      &service.CatalogService{API: client},
		Orders:       &service.OrderService{API: client},
		Cart:         &service.CartService{API: client},
		API:          client,
		CSRF:         csrf.DefaultConfig(),
		LoginLimiter: limiter,
	}))

	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)
	return &fixture{api: api, srv: srv}
}

type page struct {
	status   int
	location string
	header   http.Header
	body     string
}

// browser keeps cookies between requests and does not follow redirects.
type browser struct {
	t      *testing.T
	base   string
	client *http.Client
}

func (f *fixture) browser(t *testing.T) *browser {
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &browser{t: t, base: f.srv.URL, client: &http.Client{
		Jar:           jar,
		CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	}}
}

func (b *browser) do(req *http.Request) *page {
	b.t.Helper()
	resp, err := b.client.Do(req)
	require.NoError(b.t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(b.t, err)
	return &page{status: resp.StatusCode, location: resp.Header.Get("Location"), header: resp.Header, body: string(body)}
}

func (b *browser) get(path string) *page {
	b.t.Helper()
	req, err := http.NewRequest(http.MethodGet, b.base+path, nil)
	require.NoError(b.t, err)
	return b.do(req)
}

func (b *browser) follow(p *page) *page {
	b.t.Helper()
	require.NotEmpty(b.t, p.location, "expected a redirect, got %d", p.status)
	return b.get(p.location)
}

// csrfToken returns the double-submit token, visiting the login page first
// when no token cookie is set yet.
func (b *browser) csrfToken() string {
	b.t.Helper()
	u, _ := url.Parse(b.base)
	for i := 0; i < 2; i++ {
		for _, c := range b.client.Jar.Cookies(u) {
			if c.Name == "XSRF-TOKEN" {
				return c.Value
			}
		}
		b.get("/login")
	}
	b.t.Fatal("no csrf cookie")
	return ""
}

func (b *browser) post(path string, form url.Values) *page {
	b.t.Helper()
	token := b.csrfToken()
	req, err := http.NewRequest(http.MethodPost, b.base+path, strings.NewReader(form.Encode()))
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", b.base)
	req.Header.Set("X-CSRF-Token", token)
	return b.do(req)
}

func (b *browser) postMultipart(path string, fields map[string]string, file []byte) *page {
	b.t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(b.t, mw.WriteField(k, v))
	}
	if file != nil {
		fw, err := mw.CreateFormFile("image", "aria.png")
		require.NoError(b.t, err)
		_, err = fw.Write(file)
		require.NoError(b.t, err)
	}
	require.NoError(b.t, mw.Close())

	token := b.csrfToken()
	req, err := http.NewRequest(http.MethodPost, b.base+path, &buf)
	require.NoError(b.t, err)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Origin", b.base)
	req.Header.Set("X-CSRF-Token", token)
	return b.do(req)
}

func (b *browser) login(email string) {
	b.t.Helper()
	p := b.post("/login", url.Values{"email": {email}, "password": {"secret"}})
	require.Equal(b.t, http.StatusSeeOther, p.status, p.body)
	require.Equal(b.t, "/", p.location)
}

func productForm() map[string]string {
	return map[string]string{
		"name": "Bolt", "brand": "Sonic", "model": "B2", "price": "49.99",
		"category": "earbuds", "connectivity": "bluetooth", "description": "Tiny", "available": "3",
	}
}

func TestOrdersRequireSessionWithoutFetching(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)

	p := b.get("/orders")
	assert.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/login", p.location)
	assert.Empty(t, f.api.called())
}

func TestOrdersListedForSignedInUser(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.login("bob@example.com")

	p := b.get("/orders")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "o1")
	assert.Contains(t, p.body, "shipped")
	assert.Equal(t, 1, f.api.count("GET /orders/u1"))
}

func TestNonAdminNeverSeesAdmin(t *testing.T) {
	f := newFixture(t, nil)

	anon := f.browser(t)
	p := anon.get("/admin")
	assert.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/", p.location)

	b := f.browser(t)
	b.login("bob@example.com")
	for _, path := range []string{"/admin", "/admin?form=open", "/admin/products/p1/delete"} {
		p := b.get(path)
		assert.Equal(t, http.StatusSeeOther, p.status, path)
		assert.Equal(t, "/", p.location, path)
	}

	home := b.get("/")
	require.Equal(t, http.StatusOK, home.status)
	assert.Contains(t, home.body, "Welcome back, bob!")
	assert.NotContains(t, home.body, `href="/admin"`)
	assert.Contains(t, home.body, `href="/orders"`)

	before := f.api.count("DELETE /delete-product/p1")
	p = b.post("/admin/products/p1/delete", url.Values{"confirm": {"yes"}})
	assert.Equal(t, "/", p.location)
	assert.Equal(t, before, f.api.count("DELETE /delete-product/p1"))
}

func TestAdminAddsProductWithoutImage(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.login("admin@example.com")

	open := b.get("/admin?form=open")
	require.Equal(t, http.StatusOK, open.status)
	assert.Contains(t, open.body, "Add New Product")
	assert.Contains(t, open.body, "All Products (1)")

	p := b.postMultipart("/admin/products", productForm(), nil)
	require.Equal(t, http.StatusSeeOther, p.status, p.body)
	assert.Equal(t, "/admin", p.location)

	f.api.mu.Lock()
	assert.False(t, f.api.lastAddFile)
	assert.Equal(t, []string{"Bolt"}, f.api.lastAdd["name"])
	assert.Equal(t, []string{"3"}, f.api.lastAdd["available"])
	f.api.mu.Unlock()

	f.api.reset()
	done := b.follow(p)
	require.Equal(t, http.StatusOK, done.status)
	assert.Contains(t, done.body, "Product added successfully!")
	assert.Contains(t, done.body, "All Products (2)")
	assert.NotContains(t, done.body, "Add New Product")
	assert.Equal(t, 1, f.api.count("GET /products"))
}

func TestAdminAddsProductWithImage(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.login("admin@example.com")

	p := b.postMultipart("/admin/products", productForm(), []byte("\x89PNG"))
	require.Equal(t, http.StatusSeeOther, p.status, p.body)

	f.api.mu.Lock()
	defer f.api.mu.Unlock()
	assert.True(t, f.api.lastAddFile)
}

func TestAdminAddFailureKeepsFormOpen(t *testing.T) {
	f := newFixture(t, nil)
	f.api.addStatus = http.StatusInternalServerError
	b := f.browser(t)
	b.login("admin@example.com")

	p := b.postMultipart("/admin/products", productForm(), nil)
	assert.Equal(t, http.StatusBadGateway, p.status)
	assert.Contains(t, p.body, "Failed to add product: disk full (status 500)")
	assert.Contains(t, p.body, "Add New Product")
	assert.Contains(t, p.body, `value="Bolt"`)
	assert.Contains(t, p.body, `<option value="earbuds" selected>`)
	assert.Contains(t, p.body, "All Products (1)")
}

func TestAdminAddInvalidFormSkipsBackend(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.login("admin@example.com")
	f.api.reset()

	form := productForm()
	form["price"] = "cheap"
	p := b.postMultipart("/admin/products", form, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, p.status)
	assert.Contains(t, p.body, "Price must be a number")
	assert.Contains(t, p.body, `value="cheap"`)
	assert.Zero(t, f.api.count("POST /add-product"))
}

func TestAdminDeleteNeedsConfirmation(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.login("admin@example.com")

	confirm := b.get("/admin/products/p1/delete")
	require.Equal(t, http.StatusOK, confirm.status)
	assert.Contains(t, confirm.body, "Are you sure you want to delete this product?")
	assert.Contains(t, confirm.body, "Aria")

	p := b.post("/admin/products/p1/delete", url.Values{"confirm": {"no"}})
	assert.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/admin", p.location)
	assert.Zero(t, f.api.count("DELETE /delete-product/p1"))

	list := b.follow(p)
	assert.Contains(t, list.body, "All Products (1)")
	assert.NotContains(t, list.body, "Product deleted!")
}

func TestAdminDeleteConfirmed(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.login("admin@example.com")

	p := b.post("/admin/products/p1/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, 1, f.api.count("DELETE /delete-product/p1"))

	list := b.follow(p)
	assert.Contains(t, list.body, "Product deleted!")
	assert.Contains(t, list.body, "All Products (0)")
}

func TestAdminDeleteFailureNotifies(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.login("admin@example.com")

	p := b.post("/admin/products/missing/delete", url.Values{"confirm": {"yes"}})
	require.Equal(t, http.StatusSeeOther, p.status)
	list := b.follow(p)
	assert.Contains(t, list.body, "Failed to delete product")
	assert.Contains(t, list.body, "All Products (1)")
}

func TestLogoutClearsSessionFromAnyPage(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.login("bob@example.com")
	require.Equal(t, http.StatusOK, b.get("/orders").status)

	p := b.post("/logout", nil)
	assert.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/", p.location)

	f.api.reset()
	again := b.get("/orders")
	assert.Equal(t, "/login", again.location)
	assert.Empty(t, f.api.called())

	home := b.follow(p)
	assert.Contains(t, home.body, `href="/login"`)
	assert.NotContains(t, home.body, "Hello, bob")
}

func TestRejectedTokenEndsSession(t *testing.T) {
	f := newFixture(t, nil)
	f.api.orderStatus = http.StatusUnauthorized
	b := f.browser(t)
	b.login("bob@example.com")

	p := b.get("/orders")
	assert.Equal(t, http.StatusSeeOther, p.status)
	assert.Equal(t, "/login", p.location)

	login := b.follow(p)
	assert.Contains(t, login.body, "Your session has expired. Please log in again.")
	assert.Equal(t, "/login", b.get("/orders").location)
}

func TestOrdersFailureIsVisible(t *testing.T) {
	f := newFixture(t, nil)
	f.api.orderStatus = http.StatusInternalServerError
	b := f.browser(t)
	b.login("bob@example.com")

	p := b.get("/orders")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Could not load orders: token expired (status 500)")
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)

	p := b.post("/login", url.Values{"email": {"eve@example.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusUnauthorized, p.status)
	assert.Contains(t, p.body, "Invalid email or password")
	assert.Contains(t, p.body, `value="eve@example.com"`)

	p = b.post("/login", url.Values{"email": {""}, "password": {""}})
	assert.Equal(t, http.StatusBadRequest, p.status)
}

func TestLoginIsRateLimited(t *testing.T) {
	f := newFixture(t, ratelimit.New(rate.Every(time.Hour), 1))
	b := f.browser(t)

	b.post("/login", url.Values{"email": {"eve@example.com"}, "password": {"x"}})
	p := b.post("/login", url.Values{"email": {"eve@example.com"}, "password": {"x"}})
	assert.Equal(t, http.StatusTooManyRequests, p.status)
	assert.Contains(t, p.body, "Too many requests")
}

func TestPostWithoutCSRFTokenIsRejected(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.csrfToken()

	req, err := http.NewRequest(http.MethodPost, b.base+"/login", strings.NewReader("email=bob%40example.com&password=x"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", b.base)
	p := b.do(req)
	assert.Equal(t, http.StatusForbidden, p.status)
	assert.Zero(t, f.api.count("POST /login"))
}

func TestRegisterRedirectsToLogin(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)

	p := b.post("/register", url.Values{"username": {"cid"}, "email": {"cid@example.com"}, "password": {"secret1"}})
	require.Equal(t, http.StatusSeeOther, p.status, p.body)
	assert.Equal(t, "/login", p.location)
	assert.Contains(t, b.follow(p).body, "Registration successful! Please log in.")

	p = b.post("/register", url.Values{"username": {"cid"}, "email": {"cid@example.com"}, "password": {"123"}})
	assert.Equal(t, http.StatusBadRequest, p.status)
	assert.Contains(t, p.body, "password must be at least 6 characters")
}

func TestCatalogPages(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)

	home := b.get("/?slide=1")
	require.Equal(t, http.StatusOK, home.status)
	assert.Contains(t, home.body, `href="/products/p1"`)
	assert.Contains(t, home.body, "118.80")

	list := b.get("/products?category=headphones")
	require.Equal(t, http.StatusOK, list.status)
	assert.Contains(t, list.body, "Aria")

	empty := b.get("/products?category=gaming")
	assert.Contains(t, empty.body, "No products found")

	assert.Equal(t, http.StatusBadRequest, b.get("/products?category=toasters").status)

	detail := b.get("/products/p1")
	require.Equal(t, http.StatusOK, detail.status)
	assert.Contains(t, detail.body, "Add to Cart")

	missing := b.get("/products/nope")
	assert.Equal(t, http.StatusNotFound, missing.status)
	assert.Contains(t, missing.body, "Product not found")
}

func TestCartLifecycle(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)

	p := b.post("/cart", url.Values{"product_id": {"p1"}, "quantity": {"2"}})
	require.Equal(t, http.StatusSeeOther, p.status)
	cart := b.follow(p)
	assert.Contains(t, cart.body, "Added Aria to cart")
	assert.Contains(t, cart.body, "$198")

	p = b.post("/cart/p1/remove", nil)
	require.Equal(t, "/cart", p.location)
	assert.Contains(t, b.follow(p).body, "Your cart is empty")
}

func TestCatalogPageBeyondRangeIsClamped(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)

	p := b.get("/products?page=768614336404564652")
	require.Equal(t, http.StatusOK, p.status)
	assert.Contains(t, p.body, "Aria")
}

func TestSessionCookieWorksOverPlainHTTP(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)

	p := b.post("/login", url.Values{"email": {"ann@example.com"}, "password": {"secret"}})
	require.Equal(t, http.StatusSeeOther, p.status, p.body)

	var sessionCookie string
	for _, c := range p.header.Values("Set-Cookie") {
		if strings.HasPrefix(c, DefaultSessionName+"=") {
			sessionCookie = c
		}
	}
	require.NotEmpty(t, sessionCookie)
	assert.NotContains(t, sessionCookie, "Secure")
	assert.Contains(t, sessionCookie, "SameSite=Lax")

	assert.Equal(t, http.StatusOK, b.get("/orders").status)
}

func TestCartIsFullNotice(t *testing.T) {
	f := newFixture(t, nil)
	f.api.mu.Lock()
	for i := 2; i <= session.MaxCartLines+1; i++ {
		id := "p" + strconv.Itoa(i)
		f.api.products = append(f.api.products, models.Product{ID: id, Name: "Item " + id, Category: "headphones", Price: 5})
	}
	f.api.mu.Unlock()
	b := f.browser(t)

	for i := 1; i <= session.MaxCartLines; i++ {
		p := b.post("/cart", url.Values{"product_id": {"p" + strconv.Itoa(i)}})
		require.Equal(t, http.StatusSeeOther, p.status, p.body)
	}
	p := b.post("/cart", url.Values{"product_id": {"p" + strconv.Itoa(session.MaxCartLines+1)}})
	require.Equal(t, http.StatusSeeOther, p.status)
	cart := b.follow(p)
	assert.Contains(t, cart.body, "Could not add to cart: cart is full")
	assert.Contains(t, cart.body, "Item p"+strconv.Itoa(session.MaxCartLines))
	assert.NotContains(t, cart.body, "Item p"+strconv.Itoa(session.MaxCartLines+1))
}

func TestOversizedCartKeepsPreviousCookie(t *testing.T) {
	f := newFixture(t, nil)
	f.api.mu.Lock()
	f.api.products = append(f.api.products, models.Product{ID: "huge", Name: strings.Repeat("Z", 5000), Category: "headphones", Price: 5})
	f.api.mu.Unlock()
	b := f.browser(t)

	p := b.post("/cart", url.Values{"product_id": {"p1"}})
	require.Equal(t, http.StatusSeeOther, p.status)

	p = b.post("/cart", url.Values{"product_id": {"huge"}})
	assert.Equal(t, http.StatusInternalServerError, p.status)
	assert.Contains(t, p.body, "Your session could not be saved")

	cart := b.get("/cart")
	require.Equal(t, http.StatusOK, cart.status)
	assert.Contains(t, cart.body, "Aria")
	assert.NotContains(t, cart.body, "ZZZZZZZZZZ")
}

func TestRequestIDForwarded(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	b.get("/products")

	f.api.mu.Lock()
	defer f.api.mu.Unlock()
	require.NotEmpty(t, f.api.requestIDs)
	assert.NotEmpty(t, f.api.requestIDs[0])
}

func TestHealth(t *testing.T) {
	f := newFixture(t, nil)
	b := f.browser(t)
	assert.Equal(t, http.StatusOK, b.get("/health/live").status)
	assert.Equal(t, http.StatusOK, b.get("/health/ready").status)
}
