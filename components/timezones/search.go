package timezones

import (
	"sort"
	"strings"

	"github.com/AdityaMittal31/FirstWork/pkg/forms"
)

// Search filters zones by case-insensitive substring match, ranking prefix
// matches first. An empty query follows opts.EmptySearchMode.
func Search(zones []string, query string, limit int, opts Options) []string {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(zones) <= limit {
				return append([]string{}, zones...)
			}
			return append([]string{}, zones[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedZone, 0, 32)
	for _, zone := range zones {
		lowerZone := strings.ToLower(zone)
		if !strings.Contains(lowerZone, q) {
			continue
		}
		matches = append(matches, matchedZone{
			name:     zone,
			isPrefix: strings.HasPrefix(lowerZone, q),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].name < matches[j].name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]string, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.name)
	}
	return out
}

// SearchOptions runs Search and shapes the results as select options.
func SearchOptions(zones []string, query string, limit int, opts Options) []forms.Option {
	results := Search(zones, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]forms.Option, 0, len(results))
	for _, zone := range results {
		out = append(out, forms.Option{Value: zone, Label: zone})
	}
	return out
}

// QuestionOptions returns every zone as a select option, for forms that
// embed the full list instead of a typeahead endpoint.
func QuestionOptions(opts Options) ([]forms.Option, error) {
	zones := opts.Zones
	if zones == nil {
		loaded, err := DefaultZones()
		if err != nil {
			return nil, err
		}
		zones = loaded
	}

	out := make([]forms.Option, 0, len(zones))
	for _, zone := range zones {
		out = append(out, forms.Option{Value: zone, Label: zone})
	}
	return out, nil
}

// Question builds a ready-to-add select question carrying the full zone
// list, labeled "Timezone" unless overridden by the caller afterward.
func Question(fns ...OptionFn) (forms.Question, error) {
	options, err := QuestionOptions(NewOptions(fns...))
	if err != nil {
		return forms.Question{}, err
	}

	q := forms.NewQuestion()
	q.Type = forms.QuestionTypeSelect
	q.Label = "Timezone"
	q.Options = options
	return q, nil
}

type matchedZone struct {
	name     string
	isPrefix bool
}
