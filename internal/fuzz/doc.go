// Package fuzztests houses Go fuzz harnesses that exercise the canonfmt
// formatting pipeline (split -> extract -> canonicalize -> reinject). Its goal
// is to smoke test robustness and guard against panics, lost bytes, or hangs
// on arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые прогоняют байты через
// форматтеры JSONC и YAML.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/jsonc, internal/yamldoc, internal/source.

package fuzztests
