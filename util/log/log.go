// Package log is the logger every package writes through. Development builds
// log to stderr with debug lines; release builds also keep a rotating file.
package log

import (
	"fmt"
	"io"
	"log"
	"os"
)

var std = log.New(os.Stderr, "", log.LstdFlags)

// SetOutput redirects all logging to w.
func SetOutput(w io.Writer) {
	std.SetOutput(w)
}

// Writer returns the current destination.
func Writer() io.Writer {
	return std.Writer()
}

// Print calls log.Print on the package logger.
func Print(v ...interface{}) {
	std.Output(2, fmt.Sprint(v...))
}

// Printf calls log.Printf on the package logger.
func Printf(format string, v ...interface{}) {
	std.Output(2, fmt.Sprintf(format, v...))
}

// Println calls log.Println on the package logger.
func Println(v ...interface{}) {
	std.Output(2, fmt.Sprintln(v...))
}

// Fatal is Print followed by os.Exit(1).
func Fatal(v ...interface{}) {
	std.Output(2, fmt.Sprint(v...))
	os.Exit(1)
}

// Fatalf is Printf followed by os.Exit(1).
func Fatalf(format string, v ...interface{}) {
	std.Output(2, fmt.Sprintf(format, v...))
	os.Exit(1)
}

// Fatalln is Println followed by os.Exit(1).
func Fatalln(v ...interface{}) {
	std.Output(2, fmt.Sprintln(v...))
	os.Exit(1)
}

// Debug logs with a [DEBUG] prefix. Release builds drop it.
func Debug(v ...interface{}) {
	if debugEnabled {
		std.Output(2, "[DEBUG] "+fmt.Sprint(v...))
	}
}

// Debugf logs with a [DEBUG] prefix. Release builds drop it.
func Debugf(format string, v ...interface{}) {
	if debugEnabled {
		std.Output(2, "[DEBUG] "+fmt.Sprintf(format, v...))
	}
}
