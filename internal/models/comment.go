package models

// Comment — комментарий к товару.
//
// ID назначает сервер. До подтверждения создания комментарий живёт в списке
// с локальным провизорным ID (uuid с префиксом "local-"); канонический ответ
// сервера замещает его целиком.
type Comment struct {
	ID        string `json:"id"`
	ProductID int64  `json:"productId"`
	Content   string `json:"content"`
	Writer    User   `json:"writer"`
	CreatedAt int64  `json:"createdAt"` // Unix UTC
	UpdatedAt int64  `json:"updatedAt"` // Unix UTC
}

// CommentList — страница комментариев с курсором.
type CommentList struct {
	List       []Comment `json:"list"`
	NextCursor string    `json:"nextCursor"`
}

type CreateCommentRequest struct {
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}
