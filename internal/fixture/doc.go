// Package fixture checks the analyzer against annotated source files.
//
// A fixture is an ordinary PHP or Go file in which every expected finding is
// wrapped in a marker:
//
//	preg_match(<error descr="[EA] [\d\w] is 'greedy'. ...">'/[\d\w]/'</error>, '');
//
// Parse strips the markers and records each expectation in the coordinates
// of the clean source. Run lints the clean source and pairs diagnostics with
// expectations: the messages must be equal and the diagnostic's primary span
// must lie inside the marked text.
package fixture
