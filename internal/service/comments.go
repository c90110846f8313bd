package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/osokina-md/go-market-client/internal/models"
	"github.com/osokina-md/go-market-client/internal/optimistic"
)

// localIDPrefix — провизорные id комментариев до подтверждения сервером.
const localIDPrefix = "local-"

// Comments возвращает страницу комментариев товара (курсорная пагинация).
func (s *Service) Comments(ctx context.Context, productID int64, limit int, cursor string) (*models.CommentList, error) {
	const op = "service.comments.Comments"

	q := url.Values{}
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
	}
	if cursor != "" {
		q.Set("cursor", cursor)
	}

	endpoint := fmt.Sprintf("/products/%d/comments", productID)
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var out models.CommentList
	if err := s.api.Do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// AddComment оптимистично добавляет комментарий в конец списка.
//
// До подтверждения комментарий живёт с провизорным id и профилем из сессии;
// канонический ответ сервера (настоящий id, серверные метки времени)
// замещает локальную догадку. Провал убирает комментарий из списка.
func (s *Service) AddComment(ctx context.Context, productID int64, list *[]models.Comment, content string) error {
	const op = "service.comments.AddComment"

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyContent)
	}

	writer := models.User{}
	if u := s.sess.Current().User; u != nil {
		writer = *u
	}

	provisional := models.Comment{
		ID:        localIDPrefix + uuid.NewString(),
		ProductID: productID,
		Content:   content,
		Writer:    writer,
		CreatedAt: time.Now().UTC().Unix(),
		UpdatedAt: time.Now().UTC().Unix(),
	}

	err := optimistic.Run(ctx,
		func() []models.Comment { return slices.Clone(*list) },
		func(v []models.Comment) { *list = v },
		func(v []models.Comment) []models.Comment {
			return append(slices.Clone(v), provisional)
		},
		func(ctx context.Context, applied []models.Comment) (*[]models.Comment, error) {
			var created models.Comment
			endpoint := fmt.Sprintf("/products/%d/comments", productID)
			err := s.api.Do(ctx, http.MethodPost, endpoint,
				models.CreateCommentRequest{Content: content}, &created)
			if err != nil {
				return nil, err
			}

			canonical := slices.Clone(applied)
			for i := range canonical {
				if canonical[i].ID == provisional.ID {
					canonical[i] = created
					break
				}
			}

			return &canonical, nil
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// EditComment оптимистично заменяет текст комментария на месте.
// Канонический ответ сервера (обновлённый UpdatedAt) замещает локальную
// правку; провал возвращает исходный текст.
func (s *Service) EditComment(ctx context.Context, list *[]models.Comment, id, content string) error {
	const op = "service.comments.EditComment"

	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("%s: %w", op, ErrEmptyContent)
	}

	err := optimistic.Run(ctx,
		func() []models.Comment { return slices.Clone(*list) },
		func(v []models.Comment) { *list = v },
		func(v []models.Comment) []models.Comment {
			out := slices.Clone(v)
			for i := range out {
				if out[i].ID == id {
					out[i].Content = content
					break
				}
			}
			return out
		},
		func(ctx context.Context, applied []models.Comment) (*[]models.Comment, error) {
			var updated models.Comment
			err := s.api.Do(ctx, http.MethodPatch, "/comments/"+id,
				models.UpdateCommentRequest{Content: content}, &updated)
			if err != nil {
				return nil, err
			}

			canonical := slices.Clone(applied)
			for i := range canonical {
				if canonical[i].ID == id {
					canonical[i] = updated
					break
				}
			}

			return &canonical, nil
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// DeleteComment оптимистично убирает комментарий из списка, сохраняя
// относительный порядок остальных. Провал подтверждения восстанавливает
// исходный список — тот же состав, тот же порядок.
func (s *Service) DeleteComment(ctx context.Context, list *[]models.Comment, id string) error {
	const op = "service.comments.DeleteComment"

	err := optimistic.Run(ctx,
		func() []models.Comment { return slices.Clone(*list) },
		func(v []models.Comment) { *list = v },
		func(v []models.Comment) []models.Comment {
			out := slices.Clone(v)
			return slices.DeleteFunc(out, func(c models.Comment) bool { return c.ID == id })
		},
		func(ctx context.Context, _ []models.Comment) (*[]models.Comment, error) {
			if err := s.api.Do(ctx, http.MethodDelete, "/comments/"+id, nil, nil); err != nil {
				return nil, err
			}

			return nil, nil
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
