package elastictea

import (
	"context"
	"testing"

	"github.com/DjordjeVuckovic/elastictea/pkg/brew"
	"github.com/DjordjeVuckovic/elastictea/pkg/es"
	estesting "github.com/DjordjeVuckovic/elastictea/pkg/testing"
	"github.com/DjordjeVuckovic/elastictea/pkg/tea"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type book struct {
	ISBN  string `json:"isbn"`
	Title string `json:"title"`
	Year  int    `json:"year"`
}

func (b *book) DocumentID() string {
	return b.ISBN
}

func TestIntegration_PourThenFill(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping elasticsearch integration test in short mode")
	}

	ctx := context.Background()
	client := estesting.StartCluster(ctx, t).Client(ctx, t)

	mappings := &types.TypeMapping{
		Properties: map[string]types.Property{
			"isbn":  types.NewKeywordProperty(),
			"title": types.NewTextProperty(),
			"year":  types.NewIntegerNumberProperty(),
		},
	}
	require.NoError(t, client.EnsureIndex(ctx, "books", mappings))
	require.NoError(t, client.EnsureIndex(ctx, "books", mappings))

	books := []*book{
		{ISBN: "978-0", Title: "Dune", Year: 1965},
		{ISBN: "978-1", Title: "Solaris", Year: 1961},
		{ISBN: "978-2", Title: "Hyperion", Year: 1989},
		{ISBN: "978-3", Title: "Neuromancer", Year: 1984},
		{ISBN: "978-4", Title: "Foundation", Year: 1951},
	}
	batch := make(tea.Batch, 0, len(books))
	for _, b := range books {
		batch = append(batch, tea.Wrap(b))
	}

	pourArg, err := NewPourEsArg("books", client)
	require.NoError(t, err)
	_, err = NewLoader[book]("books-sink", pourArg).Load(ctx, batch)
	require.NoError(t, err)
	require.NoError(t, client.Refresh(ctx, "books"))

	n, err := client.Count(ctx, "books", es.MatchAll())
	require.NoError(t, err)
	assert.Equal(t, int64(len(books)), n)

	fillArg, err := NewFillEsArg("books", 2, es.MatchAll(), client)
	require.NoError(t, err)

	got := make(map[string]*book)
	collect := brew.DefineStage(brew.KindPour, "collect", func(ctx context.Context, batch tea.Batch, _ brew.Argument) (tea.Batch, error) {
		docs, err := tea.Collect[book](batch)
		if err != nil {
			return batch, err
		}
		for i, d := range docs {
			got[batch[i].ID()] = d
		}
		return batch, nil
	}, nil)

	stats, err := brew.NewPot().
		AddSource(NewFill[book]("books-source", "elasticsearch", fillArg)).
		AddIngredient(collect).
		Brew(ctx, brew.NewBrewery(1))
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.Batches)

	require.Len(t, got, len(books))
	for _, b := range books {
		assert.Equal(t, b, got[b.ISBN])
	}
}
