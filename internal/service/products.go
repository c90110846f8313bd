package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/osokina-md/go-market-client/internal/models"
	"github.com/osokina-md/go-market-client/internal/optimistic"
)

// ListProductsParams — параметры страницы списка товаров.
type ListProductsParams struct {
	Page     int
	PageSize int
	OrderBy  string // recent | favorite
	Keyword  string
}

// Products возвращает страницу списка товаров.
func (s *Service) Products(ctx context.Context, p ListProductsParams) (*models.ProductList, error) {
	const op = "service.products.Products"

	q := url.Values{}
	if p.Page > 0 {
		q.Set("page", strconv.Itoa(p.Page))
	}
	if p.PageSize > 0 {
		q.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	if p.OrderBy != "" {
		q.Set("orderBy", p.OrderBy)
	}
	if p.Keyword != "" {
		q.Set("keyword", p.Keyword)
	}

	endpoint := "/products"
	if len(q) > 0 {
		endpoint += "?" + q.Encode()
	}

	var out models.ProductList
	if err := s.api.Do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// ProductByID возвращает карточку товара.
func (s *Service) ProductByID(ctx context.Context, id int64) (*models.Product, error) {
	const op = "service.products.ProductByID"

	var out models.Product
	if err := s.api.Do(ctx, http.MethodGet, fmt.Sprintf("/products/%d", id), nil, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// ToggleFavorite оптимистично переключает лайк товара.
//
// Флаг и счётчик меняются парой (±1 — дельта от переворота флага, не сам
// переворот); значение видно сразу, подтверждающий вызов идёт следом.
// Провал возвращает оба поля в точное исходное состояние.
func (s *Service) ToggleFavorite(ctx context.Context, p *models.Product) error {
	const op = "service.products.ToggleFavorite"

	err := optimistic.Run(ctx,
		func() models.Product { return *p },
		func(v models.Product) { *p = v },
		func(v models.Product) models.Product {
			if v.IsFavorite {
				v.IsFavorite = false
				v.FavoriteCount--
			} else {
				v.IsFavorite = true
				v.FavoriteCount++
			}
			return v
		},
		func(ctx context.Context, applied models.Product) (*models.Product, error) {
			method := http.MethodDelete
			if applied.IsFavorite {
				method = http.MethodPost
			}

			endpoint := fmt.Sprintf("/products/%d/favorite", applied.ID)
			if err := s.api.Do(ctx, method, endpoint, nil, nil); err != nil {
				return nil, err
			}

			// Ответ несёт только {success} — канонического значения нет,
			// оптимистичное остаётся.
			return nil, nil
		},
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
