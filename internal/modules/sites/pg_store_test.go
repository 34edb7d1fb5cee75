package sites

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nusavarta/internal/types"
)

var siteColumns = []string{"id", "name", "aliases", "category", "description", "location", "latitude", "longitude", "image_url"}

func TestPGStore_List(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name, aliases, category").
		WillReturnRows(pgxmock.NewRows(siteColumns).
			AddRow("braga", "Jalan Braga", []string{"Braga"}, "landmark", "Jalan art deco", "Bandung", -6.9173, 107.6098, "").
			AddRow("batik", "Batik Indonesia", []string{}, "culture", "Kain batik", "Jawa", 0.0, 0.0, "https://img"))

	got, err := NewPGStore(mock).List(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, types.ID("braga"), got[0].ID)
	assert.Equal(t, CategoryLandmark, got[0].Category)
	assert.Equal(t, types.Point{Lat: -6.9173, Lng: 107.6098}, got[0].Coordinates)
	assert.Equal(t, []string{"Braga"}, got[0].Aliases)
	assert.False(t, got[1].Located())
	assert.Equal(t, CategoryCulture, got[1].Category)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStore_ListError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery("SELECT id, name").WillReturnError(errors.New("connection refused"))

	_, err = NewPGStore(mock).List(context.Background())
	assert.ErrorContains(t, err, "connection refused")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPGStore_Upsert(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	site := Site{
		ID:          "gs",
		Name:        "Gedung Sate",
		Category:    CategoryLandmark,
		Description: "Ikon Bandung",
		Location:    "Bandung",
		Coordinates: types.Point{Lat: -6.9022, Lng: 107.6186},
	}
	mock.ExpectExec("INSERT INTO cultural_sites").
		WithArgs("gs", "Gedung Sate", []string{}, "landmark", "Ikon Bandung", "Bandung", -6.9022, 107.6186, "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, NewPGStore(mock).Upsert(context.Background(), []Site{site}))
	assert.NoError(t, mock.ExpectationsWereMet())
}
