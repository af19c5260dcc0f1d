// Package template renders prompt text with text/template and the sprig
// function library.
//
// Templates are parsed once; Variables reports which top-level context keys
// a template reads so callers can check them against declared parameters
// before anything is rendered.
package template
