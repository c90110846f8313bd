package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osokina-md/go-market-client/internal/models"
)

func TestProducts_ListWithParams(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Equal(t, "2", q.Get("page"))
		require.Equal(t, "10", q.Get("pageSize"))
		require.Equal(t, "favorite", q.Get("orderBy"))
		require.Equal(t, "mug", q.Get("keyword"))

		_ = json.NewEncoder(w).Encode(models.ProductList{
			TotalCount: 1,
			List:       []models.Product{{ID: 7, Name: "panda mug"}},
		})
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	out, err := svc.Products(context.Background(), ListProductsParams{
		Page: 2, PageSize: 10, OrderBy: "favorite", Keyword: "mug",
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), out.TotalCount)
	require.Len(t, out.List, 1)
}

func TestProductByID(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/products/7", func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(models.Product{ID: 7, Name: "panda mug", FavoriteCount: 5})
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	out, err := svc.ProductByID(context.Background(), 7)
	require.NoError(t, err)
	require.Equal(t, "panda mug", out.Name)
}

// TestToggleFavorite_On — {false,5} -> {true,6}, подтверждение POST-ом;
// при успехе оптимистичное значение остаётся.
func TestToggleFavorite_On(t *testing.T) {
	t.Parallel()

	var gotMethod string

	mux := http.NewServeMux()
	mux.HandleFunc("/products/7/favorite", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		require.NotEmpty(t, r.Header.Get("Authorization"))
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	p := models.Product{ID: 7, IsFavorite: false, FavoriteCount: 5}
	require.NoError(t, svc.ToggleFavorite(context.Background(), &p))

	require.Equal(t, http.MethodPost, gotMethod)
	require.True(t, p.IsFavorite)
	require.Equal(t, int64(6), p.FavoriteCount)
}

// TestToggleFavorite_Off — обратное переключение уходит DELETE-ом.
func TestToggleFavorite_Off(t *testing.T) {
	t.Parallel()

	var gotMethod string

	mux := http.NewServeMux()
	mux.HandleFunc("/products/7/favorite", func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		_ = json.NewEncoder(w).Encode(map[string]bool{"success": true})
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	p := models.Product{ID: 7, IsFavorite: true, FavoriteCount: 6}
	require.NoError(t, svc.ToggleFavorite(context.Background(), &p))

	require.Equal(t, http.MethodDelete, gotMethod)
	require.False(t, p.IsFavorite)
	require.Equal(t, int64(5), p.FavoriteCount)
}

// TestToggleFavorite_Failure_ExactRollback — провал подтверждения возвращает
// ровно {false,5}: пару флаг+счётчик, не только флаг.
func TestToggleFavorite_Failure_ExactRollback(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/products/7/favorite", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	p := models.Product{ID: 7, IsFavorite: false, FavoriteCount: 5}
	err := svc.ToggleFavorite(context.Background(), &p)
	require.Error(t, err)

	require.False(t, p.IsFavorite)
	require.Equal(t, int64(5), p.FavoriteCount)
}
