package logs

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	glogger "gorm.io/gorm/logger"
)

// GormLogger 把 gorm 的日志桥接到 zap。
type GormLogger struct {
	level         glogger.LogLevel
	slowThreshold time.Duration
}

func NewGormLogger() *GormLogger {
	return &GormLogger{
		level:         glogger.Warn,
		slowThreshold: 200 * time.Millisecond,
	}
}

func (g *GormLogger) LogMode(level glogger.LogLevel) glogger.Interface {
	ng := *g
	ng.level = level
	return &ng
}

func (g *GormLogger) Info(_ context.Context, msg string, args ...any) {
	if g.level >= glogger.Info {
		Info("gorm", zap.String("msg", msg), zap.Any("args", args))
	}
}

func (g *GormLogger) Warn(_ context.Context, msg string, args ...any) {
	if g.level >= glogger.Warn {
		Warn("gorm", zap.String("msg", msg), zap.Any("args", args))
	}
}

func (g *GormLogger) Error(_ context.Context, msg string, args ...any) {
	if g.level >= glogger.Error {
		Error("gorm", zap.String("msg", msg), zap.Any("args", args))
	}
}

func (g *GormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	if g.level <= glogger.Silent {
		return
	}
	elapsed := time.Since(begin)
	switch {
	case err != nil && g.level >= glogger.Error && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		Error("gorm trace",
			zap.Error(err),
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql))
	case g.slowThreshold > 0 && elapsed > g.slowThreshold && g.level >= glogger.Warn:
		// 慢查询
		sql, rows := fc()
		Warn("gorm slow sql",
			zap.Duration("elapsed", elapsed),
			zap.Duration("threshold", g.slowThreshold),
			zap.Int64("rows", rows),
			zap.String("sql", sql))
	case g.level >= glogger.Info:
		sql, rows := fc()
		Debug("gorm trace",
			zap.Duration("elapsed", elapsed),
			zap.Int64("rows", rows),
			zap.String("sql", sql))
	}
}
