package logger

// Field is a single structured logging attribute.
type Field struct {
	Key   string
	Value interface{}
}

func NewField(key string, value interface{}) Field {
	return Field{
		Key:   key,
		Value: value,
	}
}

// Logger абстрагирует конкретную реализацию логгера (zap и т.п.).
// Debug и Sync остаются методами конкретного адаптера: через фасад ходят
// только уровни, нужные обработчикам.
type Logger interface {
	Info(msg string, fields ...Field)
	Warn(msg string, fields ...Field)
	Error(msg string, fields ...Field)
	With(fields ...Field) Logger
}
