package queries

import (
	"context"

	gocommand "github.com/goliatone/go-command"
	dataset "github.com/goliatone/go-mockboard/components/dataset"
	suggest "github.com/goliatone/go-mockboard/components/suggest"
)

// SuggestionsInput carries raw CSV text plus optional role mappings. When
// AutoMap is set and no mappings are provided, roles are inferred from the
// column profile before generating suggestions.
type SuggestionsInput struct {
	CSV      string                  `json:"csv"`
	Mappings []dataset.ColumnMapping `json:"mappings,omitempty"`
	AutoMap  bool                    `json:"autoMap,omitempty"`
}

// SuggestionsOutput bundles the column profile with the ranked suggestions.
type SuggestionsOutput struct {
	Profile     dataset.DatasetProfile  `json:"profile"`
	Mappings    []dataset.ColumnMapping `json:"mappings,omitempty"`
	Suggestions []suggest.Suggestion    `json:"suggestions"`
}

// SuggestionsQuery profiles a dataset and produces chart recommendations.
type SuggestionsQuery struct{}

// NewSuggestionsQuery builds the query.
func NewSuggestionsQuery() *SuggestionsQuery {
	return &SuggestionsQuery{}
}

var _ gocommand.Querier[SuggestionsInput, SuggestionsOutput] = (*SuggestionsQuery)(nil)

// Query parses, profiles, and ranks chart suggestions for the dataset.
func (q *SuggestionsQuery) Query(ctx context.Context, input SuggestionsInput) (SuggestionsOutput, error) {
	table, err := dataset.ParseCSV(input.CSV)
	if err != nil {
		return SuggestionsOutput{}, err
	}
	profile := dataset.Profile(table)

	mappings := input.Mappings
	if len(mappings) == 0 && input.AutoMap {
		mappings = dataset.AutoMap(profile)
	}

	return SuggestionsOutput{
		Profile:     profile,
		Mappings:    mappings,
		Suggestions: suggest.Generate(profile, table.Rows, mappings),
	}, nil
}
