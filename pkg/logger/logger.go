/*
	Copyright (C) CESS. All rights reserved.
	Copyright (C) Cumulus Encrypted Storage System. All rights reserved.

	SPDX-License-Identifier: Apache-2.0
*/

package logger

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/natefinch/lumberjack"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// dirMode is the permission mode used when creating log directories.
const dirMode = 0755

// Logger is the small set of subsystem-scoped log sinks the server
// writes through. Each method routes to its own rotating file so an
// operator can tail one concern (say, verification failures) without
// wading through issuance traffic.
type Logger interface {
	Log(level string, msg string)
	Pnc(msg string)
	Issue(level string, msg string)
	Dispense(level string, msg string)
	Verify(level string, msg string)
	Policy(level string, msg string)
}

type logs struct {
	logpath map[string]string
	log     map[string]*zap.Logger
}

// NewLogs builds a Logger from a name->filepath map. Recognized names
// are "log", "panic", "issue", "dispense", "verify", "policy"; unknown
// names are accepted but never written to.
func NewLogs(logfiles map[string]string) (Logger, error) {
	var (
		logpath = make(map[string]string, 0)
		logCli  = make(map[string]*zap.Logger)
	)
	for name, fpath := range logfiles {
		dir := getFilePath(fpath)
		_, err := os.Stat(dir)
		if err != nil {
			err = os.MkdirAll(dir, os.FileMode(dirMode))
			if err != nil {
				return nil, errors.Errorf("%v,%v", dir, err)
			}
		}
		encoder := getEncoder()
		newCore := zapcore.NewTee(
			zapcore.NewCore(encoder, getWriteSyncer(fpath), zap.NewAtomicLevel()),
		)
		logpath[name] = fpath
		logCli[name] = zap.New(newCore, zap.AddCaller())
		logCli[name].Sugar().Infof("%v", fpath)
	}
	return &logs{
		logpath: logpath,
		log:     logCli,
	}, nil
}

func (l *logs) Log(level string, msg string) {
	l.write("log", level, msg)
}

func (l *logs) Pnc(msg string) {
	_, file, line, _ := runtime.Caller(1)
	v, ok := l.log["panic"]
	if ok {
		v.Sugar().Errorf("[%v:%d] %s", filepath.Base(file), line, msg)
	}
}

func (l *logs) Issue(level string, msg string) {
	l.write("issue", level, msg)
}

func (l *logs) Dispense(level string, msg string) {
	l.write("dispense", level, msg)
}

func (l *logs) Verify(level string, msg string) {
	l.write("verify", level, msg)
}

func (l *logs) Policy(level string, msg string) {
	l.write("policy", level, msg)
}

func (l *logs) write(sink, level, msg string) {
	_, file, line, _ := runtime.Caller(2)
	v, ok := l.log[sink]
	if !ok {
		return
	}
	switch level {
	case "info":
		v.Sugar().Infof("[%v:%d] %s", filepath.Base(file), line, msg)
	case "err":
		v.Sugar().Errorf("[%v:%d] %s", filepath.Base(file), line, msg)
	}
}

func getFilePath(fpath string) string {
	path, _ := filepath.Abs(fpath)
	index := strings.LastIndex(path, string(os.PathSeparator))
	ret := path[:index]
	return ret
}

func getEncoder() zapcore.Encoder {
	return zapcore.NewConsoleEncoder(
		zapcore.EncoderConfig{
			TimeKey:        "ts",
			LevelKey:       "level",
			NameKey:        "logger",
			CallerKey:      "caller_line",
			FunctionKey:    zapcore.OmitKey,
			MessageKey:     "msg",
			StacktraceKey:  "stacktrace",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    cEncodeLevel,
			EncodeTime:     cEncodeTime,
			EncodeDuration: zapcore.SecondsDurationEncoder,
			EncodeCaller:   nil,
		})
}

func getWriteSyncer(fpath string) zapcore.WriteSyncer {
	lumberJackLogger := &lumberjack.Logger{
		Filename:   fpath,
		MaxSize:    10,
		MaxBackups: 99,
		MaxAge:     180,
		LocalTime:  true,
		Compress:   true,
	}
	return zapcore.AddSync(lumberJackLogger)
}

func cEncodeLevel(level zapcore.Level, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + level.CapitalString() + "]")
}

func cEncodeTime(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
}
