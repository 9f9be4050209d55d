package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/AdityaMittal31/FirstWork/pkg/entry"
	entryhtml "github.com/AdityaMittal31/FirstWork/pkg/entry/html"
	entrytui "github.com/AdityaMittal31/FirstWork/pkg/entry/tui"
	"github.com/AdityaMittal31/FirstWork/pkg/formfile"
	"github.com/AdityaMittal31/FirstWork/pkg/forms"
	openapiimport "github.com/AdityaMittal31/FirstWork/pkg/importer/openapi"
)

func main() {
	source := flag.String("source", "form.yaml", "form definition path (.yaml/.yml/.json)")
	renderer := flag.String("renderer", "html", "renderer to use (html, tui)")
	output := flag.String("output", "", "output file (stdout if empty)")
	action := flag.String("action", "/submit", "form action emitted by the html renderer")
	importSpec := flag.String("import", "", "OpenAPI document to import a form from")
	operation := flag.String("operation", "", "operation ID to import (with -import)")
	flag.Parse()

	ctx := context.Background()

	form, err := loadForm(ctx, *source, *importSpec, *operation)
	if err != nil {
		log.Fatalf("load form: %v", err)
	}

	registry := entry.NewRegistry()
	htmlRenderer, err := entryhtml.New()
	if err != nil {
		log.Fatalf("configure html renderer: %v", err)
	}
	registry.MustRegister(htmlRenderer)
	registry.MustRegister(entrytui.New())

	selected, err := registry.Get(strings.TrimSpace(*renderer))
	if err != nil {
		log.Fatalf("select renderer (available: %v): %v", registry.List(), err)
	}

	rendered, err := selected.Render(ctx, form, entry.RenderOptions{Action: *action})
	if err != nil {
		log.Fatalf("render form: %v", err)
	}

	if *output != "" {
		if err := os.WriteFile(*output, rendered, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Form written to %s\n", *output)
		return
	}
	fmt.Println(string(rendered))
}

func loadForm(ctx context.Context, source, importSpec, operation string) (forms.Form, error) {
	if importSpec != "" {
		if operation == "" {
			return forms.Form{}, fmt.Errorf("-operation is required with -import")
		}
		doc, err := openapiimport.LoadDocument(ctx, importSpec)
		if err != nil {
			return forms.Form{}, err
		}
		return openapiimport.Import(doc, operation)
	}
	return formfile.Load(formfile.SourceFromFile(source))
}
