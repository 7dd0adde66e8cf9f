// Package fuzztests houses Go fuzz harnesses for the lint pipeline
// (pattern -> character classes, host file -> literals -> diagnostics,
// fixture markers). They guard against panics, hangs and spans that leave
// their file on arbitrary input.
//
// Назначение: прогонять произвольные байты через charclass, lint и fixture.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/charclass, internal/lint, internal/fixture,
// internal/source, internal/testkit.
package fuzztests
