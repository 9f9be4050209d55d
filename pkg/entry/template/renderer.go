// Package template defines the renderer-agnostic template seam the HTML
// entry renderer relies on, mirroring the github.com/goliatone/go-template
// engine contract so either engine can sit behind it.
package template

import "io"

// TemplateRenderer is the engine contract: named-template rendering with
// optional writers, inline template strings, custom filters, and global
// context data.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
	RegisterFilter(name string, fn func(input any, param any) (any, error)) error
	GlobalContext(data any) error
}
