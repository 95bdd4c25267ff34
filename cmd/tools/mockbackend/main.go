// mockbackend is a stand-in for the primini API, for developing the web
// frontend without a running backend. It serves a small in-memory catalog
// with DRF-style pagination and accepts the moderation mutations.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"primini.ma/app/internal/backend"
	"primini.ma/app/internal/shared/slug"
)

const (
	mockToken = "mock-token"
	pageSize  = 10
)

type store struct {
	mu       sync.Mutex
	products []backend.Product
	offers   []backend.PriceOffer
}

func main() {
	addr := flag.String("addr", ":8000", "Listen address")
	seed := flag.Int("seed-products", 25, "Number of fake pending products")
	flag.Parse()

	s := &store{}
	for i := 1; i <= *seed; i++ {
		name := fmt.Sprintf("Produit démo %d", i)
		s.products = append(s.products, backend.Product{
			ID:             int64(i),
			Name:           name,
			Slug:           slug.FromName(name),
			Brand:          "DémoMarque",
			ApprovalStatus: "pending",
			CreatedByEmail: "vendeur@example.com",
			CreatedAt:      "2026-08-01T10:00:00Z",
		})
	}
	for i := range s.products {
		if (i+1)%3 != 0 {
			continue
		}
		p := s.products[i]
		s.offers = append(s.offers, backend.PriceOffer{
			ID:             int64(i + 1),
			Price:          json.Number(strconv.Itoa(100 * (i + 1))),
			Currency:       "MAD",
			StockStatus:    "in_stock",
			ApprovalStatus: "pending",
			CreatedByEmail: "marchand@example.com",
			Product:        &p,
		})
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login/", handleLogin)
	mux.HandleFunc("/api/auth/logout/", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"detail": "ok"})
	})
	mux.HandleFunc("/api/auth/user/", requireToken(handleUser))
	mux.HandleFunc("/api/categories/", handleCategories)
	mux.HandleFunc("/api/products/", s.handleProducts)
	mux.HandleFunc("/api/offers/", requireToken(s.handleOffers))

	log.Printf("mock backend listening on %s (any credentials, token %q)", *addr, mockToken)
	log.Fatal(http.ListenAndServe(*addr, mux))
}

func handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"key": mockToken})
}

func handleUser(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, backend.User{
		ID:        1,
		Email:     "admin@primini.ma",
		FirstName: "Admin",
		IsStaff:   true,
	})
}

func handleCategories(w http.ResponseWriter, r *http.Request) {
	cats := []backend.Category{
		{ID: 1, Name: "Téléphones", Slug: "telephones"},
		{ID: 2, Name: "Informatique", Slug: "informatique"},
	}
	writeJSON(w, http.StatusOK, paginate(cats, 1))
}

func requireToken(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !hasToken(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
			return
		}
		next(w, r)
	}
}

func hasToken(r *http.Request) bool {
	auth := r.Header.Get("Authorization")
	return strings.HasPrefix(auth, "Token ") && strings.TrimPrefix(auth, "Token ") == mockToken
}

func (s *store) handleProducts(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/products/")

	// The public catalog (list and detail) is anonymous; the moderation
	// endpoints are not.
	staffOnly := rest == "pending/" || rest == "mine/" ||
		strings.HasSuffix(rest, "/approve/") || strings.HasSuffix(rest, "/reject/")
	if staffOnly && !hasToken(r) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Invalid token."})
		return
	}

	switch {
	case rest == "", rest == "pending/", rest == "mine/":
		status := r.URL.Query().Get("status")
		if rest == "pending/" {
			status = "pending"
		}
		s.mu.Lock()
		items := filterProducts(s.products, r.URL.Query().Get("search"), status)
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, paginate(items, pageOf(r)))
	case strings.HasSuffix(rest, "/approve/"):
		s.moderateProduct(w, strings.TrimSuffix(rest, "/approve/"), "approved", "")
	case strings.HasSuffix(rest, "/reject/"):
		var body struct {
			Reason string `json:"reason"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.moderateProduct(w, strings.TrimSuffix(rest, "/reject/"), "rejected", body.Reason)
	default:
		productSlug := strings.TrimSuffix(rest, "/")
		if productSlug == "" || strings.Contains(productSlug, "/") {
			http.NotFound(w, r)
			return
		}
		s.productDetail(w, productSlug)
	}
}

func (s *store) productDetail(w http.ResponseWriter, productSlug string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.products {
		if p.Slug != productSlug {
			continue
		}
		d := backend.ProductDetail{Product: p}
		for _, o := range s.offers {
			if o.Product != nil && o.Product.Slug == productSlug && o.ApprovalStatus == "approved" {
				d.Offers = append(d.Offers, o)
			}
		}
		writeJSON(w, http.StatusOK, d)
		return
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *store) moderateProduct(w http.ResponseWriter, productSlug, status, reason string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.products {
		if s.products[i].Slug == productSlug {
			s.products[i].ApprovalStatus = status
			s.products[i].RejectionReason = reason
			writeJSON(w, http.StatusOK, s.products[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func (s *store) handleOffers(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/offers/")

	switch {
	case rest == "pending/":
		s.mu.Lock()
		var pending []backend.PriceOffer
		for _, o := range s.offers {
			if o.ApprovalStatus == "pending" {
				pending = append(pending, o)
			}
		}
		s.mu.Unlock()
		writeJSON(w, http.StatusOK, paginate(pending, pageOf(r)))
	case strings.HasSuffix(rest, "/approve/"):
		s.moderateOffer(w, strings.TrimSuffix(rest, "/approve/"), "approved")
	case strings.HasSuffix(rest, "/reject/"):
		s.moderateOffer(w, strings.TrimSuffix(rest, "/reject/"), "rejected")
	default:
		http.NotFound(w, r)
	}
}

func (s *store) moderateOffer(w http.ResponseWriter, idStr, status string) {
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.offers {
		if s.offers[i].ID == id {
			s.offers[i].ApprovalStatus = status
			writeJSON(w, http.StatusOK, s.offers[i])
			return
		}
	}
	writeJSON(w, http.StatusNotFound, map[string]string{"detail": "Not found."})
}

func filterProducts(items []backend.Product, search, status string) []backend.Product {
	var out []backend.Product
	search = strings.ToLower(search)
	for _, p := range items {
		if status != "" && p.ApprovalStatus != status {
			continue
		}
		if search != "" && !strings.Contains(strings.ToLower(p.Name), search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

func paginate[T any](items []T, pageNum int) backend.Page[T] {
	total := (len(items) + pageSize - 1) / pageSize
	if total == 0 {
		total = 1
	}
	page := backend.Page[T]{
		Count:       len(items),
		TotalPages:  total,
		CurrentPage: pageNum,
		PageSize:    pageSize,
	}
	start := (pageNum - 1) * pageSize
	if start >= 0 && start < len(items) {
		end := start + pageSize
		if end > len(items) {
			end = len(items)
		}
		page.Results = items[start:end]
	}
	if pageNum > 1 {
		prev := pageNum - 1
		page.PreviousPage = &prev
	}
	if pageNum < total {
		next := pageNum + 1
		page.NextPage = &next
	}
	return page
}

func pageOf(r *http.Request) int {
	n, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
