// file — файловое хранилище сессии: один JSON-файл с тремя строковыми
// записями (authToken/refreshToken/user), ближайший аналог localStorage.
// Атомарность записи — через временный файл и rename в пределах каталога.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/osokina-md/go-market-client/internal/models"
	"github.com/osokina-md/go-market-client/internal/storage"
)

// Store — файловая реализация storage.Storage.
// Потокобезопасность обеспечивает вызывающая сторона (session.Store
// сериализует обращения под своим мьютексом).
type Store struct {
	path string
}

// New создаёт хранилище по пути path, создавая недостающие каталоги.
func New(path string) (*Store, error) {
	const op = "storage/file.New"

	if path == "" {
		return nil, fmt.Errorf("%s: empty path", op)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Store{path: path}, nil
}

// entries — раскладка файла: значения всех трёх записей строковые,
// профиль лежит сериализованной JSON-строкой (как в исходном localStorage).
type entries struct {
	AccessToken  string `json:"authToken"`
	RefreshToken string `json:"refreshToken"`
	User         string `json:"user,omitempty"`
}

func (s *Store) Load(_ context.Context) (*models.Session, error) {
	const op = "storage/file.Load"

	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
		}

		return nil, fmt.Errorf("%s: %w", op, err)
	}

	var e entries
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if e.AccessToken == "" && e.RefreshToken == "" {
		return nil, fmt.Errorf("%s: %w", op, storage.ErrNotFound)
	}

	sess := &models.Session{
		AccessToken:  e.AccessToken,
		RefreshToken: e.RefreshToken,
	}

	if e.User != "" {
		var u models.User
		if err := json.Unmarshal([]byte(e.User), &u); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		sess.User = &u
	}

	return sess, nil
}

func (s *Store) Save(_ context.Context, sess models.Session) error {
	const op = "storage/file.Save"

	e := entries{
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
	}

	if sess.User != nil {
		raw, err := json.Marshal(sess.User)
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		e.User = string(raw)
	}

	if err := s.write(e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) SetAccessToken(ctx context.Context, token string) error {
	const op = "storage/file.SetAccessToken"

	e, err := s.read()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	e.AccessToken = token
	if err := s.write(e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) SetUser(ctx context.Context, u models.User) error {
	const op = "storage/file.SetUser"

	e, err := s.read()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	raw, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	e.User = string(raw)
	if err := s.write(e); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Clear(_ context.Context) error {
	const op = "storage/file.Clear"

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

func (s *Store) Close() error { return nil }

// read читает текущую раскладку; отсутствующий файл — пустая раскладка.
func (s *Store) read() (entries, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return entries{}, nil
		}

		return entries{}, err
	}

	var e entries
	if err := json.Unmarshal(raw, &e); err != nil {
		return entries{}, err
	}

	return e, nil
}

// write атомарно записывает файл: tmp в том же каталоге + rename.
func (s *Store) write(e entries) error {
	raw, err := json.Marshal(e)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".session-*")
	if err != nil {
		return err
	}

	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	if err := os.Chmod(tmpName, 0o600); err != nil {
		_ = os.Remove(tmpName)
		return err
	}

	return os.Rename(tmpName, s.path)
}
