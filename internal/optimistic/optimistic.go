// optimistic — единый хелпер оптимистичных мутаций.
//
// Раньше каждый экран повторял один и тот же танец «применили локально —
// отправили — при провале вернули как было» со своими флагами и копиями
// логики отката. Здесь паттерн один: apply/confirm/reconcile, откат —
// строго к снимку, снятому в момент применения.
//
// Модель конкурентности: значение V принадлежит вызывающей горутине
// (UI-состояние); Run вызывается из неё же и синхронен до момента confirm.
// Если вторая мутация той же сущности стартует, пока первая ждёт
// подтверждения, каждая откатывается к своему собственному снимку —
// побеждает последний подтвердившийся ответ.
package optimistic

import (
	"context"
	"log/slog"

	"github.com/osokina-md/go-market-client/internal/metrics"
	"github.com/osokina-md/go-market-client/internal/pkg/log"
)

// Run выполняет одну оптимистичную мутацию значения T.
//
//   - get/set — доступ к видимому значению;
//   - apply — чистая функция, вычисляющая оптимистичное V' из снимка;
//   - confirm — подтверждающий сетевой вызов; получает применённое V' и
//     может вернуть каноническое значение (правда сервера важнее локальной
//     догадки — например, серверный id комментария); nil — V' остаётся.
//
// Применение видно синхронно, до ухода confirm в сеть. Провал confirm
// восстанавливает снимок в точности: для счётчиков это возврат исходного
// числа, а не обратный инкремент — иначе быстрый двойной клик накапливает
// дрейф.
func Run[T any](
	ctx context.Context,
	get func() T,
	set func(T),
	apply func(T) T,
	confirm func(ctx context.Context, applied T) (*T, error),
) error {
	snapshot := get()

	applied := apply(snapshot)
	set(applied)

	canonical, err := confirm(ctx, applied)
	if err != nil {
		set(snapshot)
		metrics.RollbacksTotal.Inc()

		// Откат тихий: действие дешёвое и обратимое, модальное окно
		// не нужно — достаточно диагностики в логе.
		log.From(ctx).Warn("optimistic_rollback",
			slog.String("op", "optimistic.Run"),
			slog.String("err", err.Error()),
		)

		return err
	}

	if canonical != nil {
		set(*canonical)
	}

	return nil
}
