package models

// User — профиль авторизованного пользователя.
type User struct {
	Image    string `json:"image"`
	Nickname string `json:"nickname"`
}

// Session — состояние авторизации процесса.
//
// Инвариант: все три поля заполняются и очищаются как единое целое
// (login/logout); частично заполненная сессия снаружи не наблюдается.
// Пустая строка означает «отсутствует».
type Session struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	User         *User  `json:"user,omitempty"`
}

// LoggedIn сообщает, есть ли в сессии access-токен.
func (s Session) LoggedIn() bool {
	return s.AccessToken != ""
}
