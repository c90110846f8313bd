package service

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/osokina-md/go-market-client/internal/models"
)

func threeComments() []models.Comment {
	return []models.Comment{
		{ID: "c1", ProductID: 7, Content: "first"},
		{ID: "c2", ProductID: 7, Content: "second"},
		{ID: "c3", ProductID: 7, Content: "third"},
	}
}

func TestComments_ListWithCursor(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/products/7/comments", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "3", r.URL.Query().Get("limit"))
		require.Equal(t, "cur-1", r.URL.Query().Get("cursor"))

		_ = json.NewEncoder(w).Encode(models.CommentList{
			List:       threeComments(),
			NextCursor: "cur-2",
		})
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	out, err := svc.Comments(context.Background(), 7, 3, "cur-1")
	require.NoError(t, err)
	require.Len(t, out.List, 3)
	require.Equal(t, "cur-2", out.NextCursor)
}

// TestAddComment_CanonicalReplacesProvisional — серверный комментарий
// (настоящий id) замещает локальную догадку с провизорным id.
func TestAddComment_CanonicalReplacesProvisional(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/products/7/comments", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)

		var req models.CreateCommentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		_ = json.NewEncoder(w).Encode(models.Comment{
			ID:        "srv-42",
			ProductID: 7,
			Content:   req.Content,
			Writer:    models.User{Nickname: "panda"},
			CreatedAt: 1700000000,
		})
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	list := threeComments()
	require.NoError(t, svc.AddComment(context.Background(), 7, &list, "fourth"))

	require.Len(t, list, 4)
	require.Equal(t, "srv-42", list[3].ID)
	require.Equal(t, "fourth", list[3].Content)
	require.False(t, strings.HasPrefix(list[3].ID, localIDPrefix))
}

func TestAddComment_Failure_ListRestored(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/products/7/comments", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	original := threeComments()
	list := threeComments()

	err := svc.AddComment(context.Background(), 7, &list, "fourth")
	require.Error(t, err)
	require.Equal(t, original, list)
}

func TestAddComment_EmptyContent(t *testing.T) {
	t.Parallel()

	svc, sess := newTestService(t, http.NewServeMux())
	loginTestUser(t, sess)

	list := threeComments()
	err := svc.AddComment(context.Background(), 7, &list, "   ")
	require.ErrorIs(t, err, ErrEmptyContent)
	require.Len(t, list, 3)
}

func TestEditComment_OK(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/comments/c2", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)

		var req models.UpdateCommentRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		_ = json.NewEncoder(w).Encode(models.Comment{
			ID:        "c2",
			ProductID: 7,
			Content:   req.Content,
			UpdatedAt: 1700000100,
		})
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	list := threeComments()
	require.NoError(t, svc.EditComment(context.Background(), &list, "c2", "edited"))

	require.Len(t, list, 3)
	require.Equal(t, "edited", list[1].Content)
	require.Equal(t, int64(1700000100), list[1].UpdatedAt)
}

func TestEditComment_Failure_ContentRestored(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/comments/c2", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	list := threeComments()
	err := svc.EditComment(context.Background(), &list, "c2", "edited")
	require.Error(t, err)
	require.Equal(t, threeComments(), list)
}

// TestDeleteComment_OK — удаление 2-го из трёх даёт двухэлементный список
// в исходном относительном порядке, видимый сразу.
func TestDeleteComment_OK(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/comments/c2", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusNoContent)
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	list := threeComments()
	require.NoError(t, svc.DeleteComment(context.Background(), &list, "c2"))

	require.Len(t, list, 2)
	require.Equal(t, "c1", list[0].ID)
	require.Equal(t, "c3", list[1].ID)
}

// TestDeleteComment_Failure_OriginalRestored — провал подтверждения
// восстанавливает исходные три элемента: тот же состав, тот же порядок.
func TestDeleteComment_Failure_OriginalRestored(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/comments/c2", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	svc, sess := newTestService(t, mux)
	loginTestUser(t, sess)

	list := threeComments()
	err := svc.DeleteComment(context.Background(), &list, "c2")
	require.Error(t, err)
	require.Equal(t, threeComments(), list)
}
