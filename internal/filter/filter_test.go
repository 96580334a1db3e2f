package filter_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/litoralhub/backend/internal/domain"
	"github.com/litoralhub/backend/internal/filter"
)

// ---- fixtures --------------------------------------------------------------

func guideFixtures() []domain.Guide {
	return []domain.Guide{
		{
			ID:           uuid.New(),
			Title:        "Praia do Rosa guide",
			Description:  "Best surf spots on the south coast",
			Tags:         []string{"praia", "surf"},
			LocationType: domain.LocationBeach,
			LocationID:   "b1",
			Category:     "passeios",
			IsVerified:   true,
		},
		{
			ID:           uuid.New(),
			Title:        "Onde comer em Garopaba",
			Description:  "Restaurantes e quiosques",
			Tags:         []string{"gastronomia", "frutos-do-mar"},
			LocationType: domain.LocationCity,
			LocationID:   "c1",
			Category:     "gastronomia",
			IsVerified:   false,
		},
		{
			ID:           uuid.New(),
			Title:        "Serra do Tabuleiro",
			Description:  "Trilhas no parque estadual",
			Tags:         []string{"trilha", "natureza"},
			LocationType: domain.LocationRegion,
			Category:     "passeios",
			IsVerified:   true,
		},
	}
}

func titles(guides []domain.Guide) []string {
	out := make([]string, len(guides))
	for i, g := range guides {
		out[i] = g.Title
	}
	return out
}

// ---- search ----------------------------------------------------------------

func TestGuides_Search_MatchesTag(t *testing.T) {
	got := filter.Guides(guideFixtures(), filter.Criteria{Search: "surf"})

	require.Len(t, got, 1)
	assert.Equal(t, "Praia do Rosa guide", got[0].Title)
}

func TestGuides_Search_NoMatch(t *testing.T) {
	got := filter.Guides(guideFixtures(), filter.Criteria{Search: "hiking"})

	assert.Empty(t, got)
}

func TestGuides_Search_CaseInsensitive(t *testing.T) {
	got := filter.Guides(guideFixtures(), filter.Criteria{Search: "GAROPABA"})

	require.Len(t, got, 1)
	assert.Equal(t, "Onde comer em Garopaba", got[0].Title)
}

func TestGuides_Search_MatchesDescription(t *testing.T) {
	got := filter.Guides(guideFixtures(), filter.Criteria{Search: "trilhas no parque"})

	require.Len(t, got, 1)
	assert.Equal(t, "Serra do Tabuleiro", got[0].Title)
}

// ---- location --------------------------------------------------------------

func TestGuides_Location_Composite(t *testing.T) {
	items := guideFixtures()

	got := filter.Guides(items, filter.Criteria{Location: "beach_b1"})
	require.Len(t, got, 1)
	assert.Equal(t, "b1", got[0].LocationID)

	got = filter.Guides(items, filter.Criteria{Location: "beach_b2"})
	assert.Empty(t, got)
}

func TestGuides_Location_Plural(t *testing.T) {
	items := guideFixtures()

	assert.Len(t, filter.Guides(items, filter.Criteria{Location: "beaches"}), 1)
	assert.Len(t, filter.Guides(items, filter.Criteria{Location: "cities"}), 1)
	assert.Len(t, filter.Guides(items, filter.Criteria{Location: "regions"}), 1)
}

func TestGuides_Location_All(t *testing.T) {
	items := guideFixtures()

	assert.Len(t, filter.Guides(items, filter.Criteria{Location: "all"}), len(items))
	assert.Len(t, filter.Guides(items, filter.Criteria{}), len(items))
}

// Unknown location values must match nothing, not everything.
func TestGuides_Location_UnknownFailsClosed(t *testing.T) {
	items := guideFixtures()

	assert.Empty(t, filter.Guides(items, filter.Criteria{Location: "mountains"}))
	assert.Empty(t, filter.Guides(items, filter.Criteria{Location: "region_r1"}))
	assert.Empty(t, filter.Guides(items, filter.Criteria{Location: "city_"}))
}

// ---- category / verified ---------------------------------------------------

func TestGuides_Category(t *testing.T) {
	items := guideFixtures()

	got := filter.Guides(items, filter.Criteria{Category: "passeios"})
	assert.Len(t, got, 2)

	assert.Empty(t, filter.Guides(items, filter.Criteria{Category: "hospedagem"}))
	assert.Len(t, filter.Guides(items, filter.Criteria{Category: "all"}), len(items))
}

func TestGuides_VerifiedOnly(t *testing.T) {
	got := filter.Guides(guideFixtures(), filter.Criteria{VerifiedOnly: true})

	require.Len(t, got, 2)
	for _, g := range got {
		assert.True(t, g.IsVerified)
	}
}

// Adding a criterion can only narrow the result, never widen it.
func TestGuides_VerifiedOnlyNarrows(t *testing.T) {
	items := guideFixtures()
	base := filter.Criteria{Category: "passeios"}
	strict := base
	strict.VerifiedOnly = true

	assert.LessOrEqual(t, len(filter.Guides(items, strict)), len(filter.Guides(items, base)))
}

// ---- combination, order, idempotence ---------------------------------------

func TestGuides_CriteriaAreANDed(t *testing.T) {
	items := guideFixtures()
	c := filter.Criteria{
		Search:       "surf",
		Location:     "beach_b1",
		Category:     "passeios",
		VerifiedOnly: true,
	}

	got := filter.Guides(items, c)
	require.Len(t, got, 1)

	// Flip one criterion to a non-matching value and the item drops out.
	c.Category = "gastronomia"
	assert.Empty(t, filter.Guides(items, c))
}

func TestGuides_PreservesInputOrder(t *testing.T) {
	items := guideFixtures()

	got := filter.Guides(items, filter.Criteria{Category: "passeios"})

	assert.Equal(t, []string{"Praia do Rosa guide", "Serra do Tabuleiro"}, titles(got))
}

func TestGuides_Idempotent(t *testing.T) {
	items := guideFixtures()
	c := filter.Criteria{Category: "passeios", VerifiedOnly: true}

	once := filter.Guides(items, c)
	twice := filter.Guides(once, c)

	assert.Equal(t, once, twice)
}

func TestGuides_EmptyInput(t *testing.T) {
	got := filter.Guides(nil, filter.Criteria{Search: "surf"})

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGuides_DoesNotMutateInput(t *testing.T) {
	items := guideFixtures()
	want := titles(items)

	filter.Guides(items, filter.Criteria{Search: "surf"})

	assert.Equal(t, want, titles(items))
}

// ---- banners ---------------------------------------------------------------

func TestBanners_FilterByStatus(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	items := []domain.Banner{
		{Title: "live", Active: true},
		{Title: "upcoming", Active: true, StartDate: &future},
		{Title: "over", Active: true, EndDate: &past},
		{Title: "off", Active: false},
	}

	assert.Equal(t, "live", filter.Banners(items, domain.StatusActive, now)[0].Title)
	assert.Equal(t, "upcoming", filter.Banners(items, domain.StatusScheduled, now)[0].Title)
	assert.Equal(t, "over", filter.Banners(items, domain.StatusExpired, now)[0].Title)
	assert.Equal(t, "off", filter.Banners(items, domain.StatusInactive, now)[0].Title)
}

func TestDisplayable(t *testing.T) {
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	future := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	items := []domain.Banner{
		{Title: "live", Active: true},
		{Title: "upcoming", Active: true, StartDate: &future},
	}

	got := filter.Displayable(items, now)

	require.Len(t, got, 1)
	assert.Equal(t, "live", got[0].Title)
}
