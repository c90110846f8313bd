package service

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"strings"

	"github.com/osokina-md/go-market-client/internal/models"
)

// SignIn выполняет вход и атомарно заселяет сессию тройкой
// (access, refresh, user) из ответа.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.User, error) {
	const op = "service.auth.SignIn"

	normEmail, err := validateEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if password == "" {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	var resp models.AuthResponse
	err = s.api.Do(ctx, http.MethodPost, "/auth/signIn",
		models.SignInRequest{Email: normEmail, Password: password}, &resp)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sess.Login(ctx, resp.AccessToken, resp.RefreshToken, resp.User); err != nil {
		// Зеркало не записалось; сессия в памяти уже действует.
		return resp.User, fmt.Errorf("%s: %w", op, err)
	}

	return resp.User, nil
}

// SignUp регистрирует пользователя; успешный ответ сразу авторизует сессию.
func (s *Service) SignUp(ctx context.Context, email, nickname, password, confirmation string) (models.User, error) {
	const op = "service.auth.SignUp"

	normEmail, err := validateEmail(email)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if password == "" {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrEmptyPassword)
	}

	if password != confirmation {
		return models.User{}, fmt.Errorf("%s: %w", op, ErrPasswordMismatch)
	}

	var resp models.AuthResponse
	err = s.api.Do(ctx, http.MethodPost, "/auth/signUp", models.SignUpRequest{
		Email:                normEmail,
		Nickname:             nickname,
		Password:             password,
		PasswordConfirmation: confirmation,
	}, &resp)
	if err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sess.Login(ctx, resp.AccessToken, resp.RefreshToken, resp.User); err != nil {
		return resp.User, fmt.Errorf("%s: %w", op, err)
	}

	return resp.User, nil
}

// SignOut очищает сессию и её зеркало.
func (s *Service) SignOut(ctx context.Context) error {
	const op = "service.auth.SignOut"

	if err := s.sess.Logout(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// Me запрашивает профиль и обновляет его в сессии (данные приходят
// отдельно от кредов — SetUser не трогает токены).
func (s *Service) Me(ctx context.Context) (models.User, error) {
	const op = "service.auth.Me"

	var u models.User
	if err := s.api.Do(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return models.User{}, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.sess.SetUser(ctx, u); err != nil {
		return u, fmt.Errorf("%s: %w", op, err)
	}

	return u, nil
}

func validateEmail(email string) (string, error) {
	norm := strings.ToLower(strings.TrimSpace(email))

	addr, err := mail.ParseAddress(norm)
	if err != nil || addr.Address != norm {
		return "", ErrInvalidEmail
	}

	return norm, nil
}
