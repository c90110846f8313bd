package optimistic

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

type product struct {
	IsFavorite    bool
	FavoriteCount int64
}

func toggle(p product) product {
	if p.IsFavorite {
		return product{IsFavorite: false, FavoriteCount: p.FavoriteCount - 1}
	}

	return product{IsFavorite: true, FavoriteCount: p.FavoriteCount + 1}
}

// guarded — обёртка вокруг разделяемого значения для тестов с
// перекрывающимися мутациями: get/set потокобезопасны.
type guarded[T any] struct {
	mu sync.Mutex
	v  T
}

func (g *guarded[T]) get() T {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.v
}

func (g *guarded[T]) set(v T) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.v = v
}

func TestRun_AppliesSynchronously_BeforeConfirm(t *testing.T) {
	t.Parallel()

	st := &guarded[product]{v: product{IsFavorite: false, FavoriteCount: 5}}

	err := Run(context.Background(), st.get, st.set, toggle,
		func(_ context.Context, applied product) (*product, error) {
			// К моменту confirm значение уже видно новым.
			require.Equal(t, product{IsFavorite: true, FavoriteCount: 6}, st.get())
			require.Equal(t, product{IsFavorite: true, FavoriteCount: 6}, applied)
			return nil, nil
		})
	require.NoError(t, err)
	require.Equal(t, product{IsFavorite: true, FavoriteCount: 6}, st.get())
}

// TestRun_FailureRestoresExactSnapshot — {false,5} -> {true,6} немедленно;
// провал подтверждения возвращает ровно {false,5}.
func TestRun_FailureRestoresExactSnapshot(t *testing.T) {
	t.Parallel()

	st := &guarded[product]{v: product{IsFavorite: false, FavoriteCount: 5}}
	boom := errors.New("boom")

	err := Run(context.Background(), st.get, st.set, toggle,
		func(context.Context, product) (*product, error) { return nil, boom })
	require.ErrorIs(t, err, boom)
	require.Equal(t, product{IsFavorite: false, FavoriteCount: 5}, st.get())
}

func TestRun_CanonicalValueWins(t *testing.T) {
	t.Parallel()

	st := &guarded[product]{v: product{IsFavorite: false, FavoriteCount: 5}}

	canonical := product{IsFavorite: true, FavoriteCount: 42}
	err := Run(context.Background(), st.get, st.set, toggle,
		func(context.Context, product) (*product, error) { return &canonical, nil })
	require.NoError(t, err)
	require.Equal(t, canonical, st.get())
}

// TestRun_ListDelete_RestoresOrderAndIdentity — удаление 2-го из трёх даёт
// двухэлементный список в исходном относительном порядке; провал
// подтверждения восстанавливает исходные три элемента в том же порядке.
func TestRun_ListDelete_RestoresOrderAndIdentity(t *testing.T) {
	t.Parallel()

	original := []string{"c1", "c2", "c3"}
	st := &guarded[[]string]{v: slices.Clone(original)}

	removeSecond := func(v []string) []string {
		out := slices.Clone(v)
		return slices.Delete(out, 1, 2)
	}

	// Успех: элемент исчез, порядок остальных прежний.
	err := Run(context.Background(), st.get, st.set, removeSecond,
		func(_ context.Context, applied []string) (*[]string, error) {
			require.Equal(t, []string{"c1", "c3"}, applied)
			return nil, nil
		})
	require.NoError(t, err)
	require.Equal(t, []string{"c1", "c3"}, st.get())

	// Провал: исходный список восстановлен тем же порядком и составом.
	st.set(slices.Clone(original))
	err = Run(context.Background(), st.get, st.set, removeSecond,
		func(context.Context, []string) (*[]string, error) { return nil, errors.New("boom") })
	require.Error(t, err)
	require.Equal(t, original, st.get())
}

// TestRun_RapidDoubleToggle_LastConfirmWins — вторая мутация стартует, пока
// первая ждёт подтверждения. Каждая откатывается к собственному снимку;
// итоговое значение определяет последний завершившийся confirm.
func TestRun_RapidDoubleToggle_LastConfirmWins(t *testing.T) {
	t.Parallel()

	st := &guarded[product]{v: product{IsFavorite: false, FavoriteCount: 5}}

	firstApplied := make(chan struct{})
	firstMayFinish := make(chan struct{})
	firstDone := make(chan error, 1)

	// Первый клик: применился ({true,6}), confirm завис.
	go func() {
		firstDone <- Run(context.Background(), st.get, st.set, toggle,
			func(context.Context, product) (*product, error) {
				close(firstApplied)
				<-firstMayFinish
				return nil, errors.New("confirm failed")
			})
	}()

	<-firstApplied
	require.Equal(t, product{IsFavorite: true, FavoriteCount: 6}, st.get())

	// Второй клик поверх оптимистичного значения: {true,6} -> {false,5};
	// его confirm успевает завершиться успешно раньше первого.
	err := Run(context.Background(), st.get, st.set, toggle,
		func(context.Context, product) (*product, error) { return nil, nil })
	require.NoError(t, err)
	require.Equal(t, product{IsFavorite: false, FavoriteCount: 5}, st.get())

	// Теперь первый confirm проваливается и откатывает к СВОЕМУ снимку
	// {false,5} — точному значению до первого клика. Дрейфа счётчика нет.
	close(firstMayFinish)
	require.Error(t, <-firstDone)
	require.Equal(t, product{IsFavorite: false, FavoriteCount: 5}, st.get())
}
