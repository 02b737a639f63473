package logger

import (
	"fmt"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

type gormWriter struct {
	l *Logger
}

func (w gormWriter) Printf(format string, args ...interface{}) {
	w.l.base.Debug().Str("component", "gorm").Msg(fmt.Sprintf(format, args...))
}

// Gorm returns a GORM logger that writes through l. SQL statements are logged
// at debug level; slow queries above slowThreshold are reported by GORM as
// warnings in the same stream.
func (l *Logger) Gorm(level gormlogger.LogLevel, slowThreshold time.Duration) gormlogger.Interface {
	return gormlogger.New(gormWriter{l: l}, gormlogger.Config{
		SlowThreshold:             slowThreshold,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
