package models

// Product — товар маркетплейса.
//
// Инвариант оптимистичного переключения лайка: IsFavorite и FavoriteCount
// меняются только парой (±1 к счётчику вместе с переворотом флага).
type Product struct {
	ID            int64    `json:"id"`
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Price         int64    `json:"price"`
	Tags          []string `json:"tags,omitempty"`
	Images        []string `json:"images,omitempty"`
	FavoriteCount int64    `json:"favoriteCount"`
	IsFavorite    bool     `json:"isFavorite"`
	CreatedAt     string   `json:"createdAt,omitempty"` // RFC3339, как отдаёт бэкенд
}

// ProductList — страница списка товаров.
type ProductList struct {
	TotalCount int64     `json:"totalCount"`
	List       []Product `json:"list"`
}
