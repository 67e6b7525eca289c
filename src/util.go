package main

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/exp/constraints"
)

type Error string

func (e Error) Error() string {
	return string(e)
}

// ConfigError reports authoring mistakes in the character sheet or config.
// Path names the offending key, e.g. "animations.Idle.boxes[3]".
type ConfigError struct {
	Path   string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Path == "" {
		return "config: " + e.Reason
	}
	return fmt.Sprintf("config: %s: %s", e.Path, e.Reason)
}

func configErrorf(path, format string, args ...interface{}) *ConfigError {
	return &ConfigError{Path: path, Reason: fmt.Sprintf(format, args...)}
}

func Btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

func Clamp[T constraints.Integer](x, a, b T) T {
	if x < a {
		return a
	}
	if x > b {
		return b
	}
	return x
}

func Abs[T constraints.Signed](x T) T {
	if x < 0 {
		return -x
	}
	return x
}

func FileExist(filename string) string {
	if info, err := os.Stat(filename); err == nil && !info.IsDir() {
		return filename
	}
	return ""
}

// Checks if error is not null, if there is an error it logs it and crashes the program.
func chk(err error) {
	if err != nil {
		if sys.errLog != nil {
			sys.errLog.Println(err.Error())
		}
		panic(err)
	}
}

// Extended version of 'chk()'
func chkEX(err error, txt string, crash bool) bool {
	if err != nil {
		if sys.errLog != nil {
			sys.errLog.Println(txt + err.Error())
		}
		if crash {
			panic(Error(txt + err.Error()))
		}
		return true
	}
	return false
}

func joinPath(parts ...string) string {
	return strings.Join(parts, ".")
}
