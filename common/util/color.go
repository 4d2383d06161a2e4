package util

import "github.com/fatih/color"

var (
	cyanColor   = color.New(color.FgCyan)
	redColor    = color.New(color.FgRed)
	yellowColor = color.New(color.FgYellow)
	greenColor  = color.New(color.FgGreen)
)

func Cyan(s string) string   { return cyanColor.Sprint(s) }
func Red(s string) string    { return redColor.Sprint(s) }
func Yellow(s string) string { return yellowColor.Sprint(s) }
func Green(s string) string  { return greenColor.Sprint(s) }
