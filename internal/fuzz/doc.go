// Package fuzztests houses Go fuzz harnesses that exercise the front end
// (source -> lexer -> parser) against every grammar preset. Its goal is to
// smoke test robustness and guard against panics, hangs and broken trees on
// arbitrary inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер/парсер, проверяя инварианты дерева.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/grammar, internal/lexer,
// internal/parser, internal/diag, internal/ast, internal/testkit.

package fuzztests
