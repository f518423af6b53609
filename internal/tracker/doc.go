// Package tracker polls values once per frame.
//
// Назначение:
//   - Watch: логирует "<name> = <value>" при изменении значения между тиками
//   - Display / DisplayButton: список экранных элементов для оверлея
//   - ShowFPS: счётчик кадров, усреднённый по 20 кадрам
//
// Не делает:
//   - отрисовку (см. internal/overlay и internal/ui)
//   - фоновых горутин: Tick вызывает хост
package tracker
