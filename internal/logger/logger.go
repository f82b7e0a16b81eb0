package logger

import (
	"fmt"
	"time"
)

// ANSI color codes for console output.
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorCyan   = "\033[36m"
	colorGray   = "\033[90m"
	colorBold   = "\033[1m"
)

func stamp() string {
	return time.Now().Format("15:04:05")
}

func emit(color, level, tag, msg string) {
	fmt.Printf("%s%s%s %s[%s]%s %s[%s]%s %s\n",
		colorGray, stamp(), colorReset,
		color, level, colorReset,
		colorBold, tag, colorReset,
		msg)
}

// Info logs an informational message with a component tag.
func Info(tag, msg string) {
	emit(colorCyan, "INFO", tag, msg)
}

// Success logs a success message.
func Success(tag, msg string) {
	emit(colorGreen, " OK ", tag, msg)
}

// Warn logs a warning.
func Warn(tag, msg string) {
	emit(colorYellow, "WARN", tag, msg)
}

// Error logs an error.
func Error(tag, msg string) {
	emit(colorRed, "FAIL", tag, msg)
}

// Banner prints the startup banner with the build version.
func Banner(version string) {
	if version == "" {
		version = "dev"
	}
	fmt.Printf("%s%s", colorBold, colorRed)
	fmt.Println(`   _____ _       _     __             _____                     `)
	fmt.Println(`  / ___/(_)___  (_)___/ /____  _____ / ___/____  ____ _________ `)
	fmt.Println(`  \__ \/ / __ \/ / ___/ __/ _ \/ ___/ \__ \/ __ \/ __ '/ ___/ _ \`)
	fmt.Println(` ___/ / / / / / (__  ) /_/  __/ /    ___/ / / / / /_/ / /  /  __/`)
	fmt.Println(`/____/_/_/ /_/_/____/\__/\___/_/    /____/_/ /_/\__,_/_/   \___/ `)
	fmt.Printf("%s\n", colorReset)
	fmt.Printf("%s  Trade route piracy intelligence %s%s\n\n", colorGray, version, colorReset)
}

// Section prints a visual section divider.
func Section(title string) {
	fmt.Printf("\n%s─── %s %s%s\n", colorGray, title, "───────────────────────────", colorReset)
}

// Stats prints a key/value statistic line.
func Stats(key string, value interface{}) {
	fmt.Printf("  %s%-24s%s %v\n", colorGray, key, colorReset, value)
}

// Server prints the listen address once the HTTP server is up.
func Server(addr string) {
	fmt.Printf("\n  %s➜%s  API listening on %shttp://%s%s\n\n", colorGreen, colorReset, colorBold, addr, colorReset)
}
