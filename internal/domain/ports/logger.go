package ports

// Logger é o log estruturado usado pelos services e adapters.
// args são pares chave/valor, como em log/slog.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	// With devolve um logger que inclui args em toda mensagem
	With(args ...any) Logger
}
