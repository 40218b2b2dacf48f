package storelinks

import (
	"testing"

	"github.com/stretchr/testify/require"

	"instrumatch-affiliate/internal/catalog"
)

func TestCollect_LowercasesKeys(t *testing.T) {
	t.Parallel()

	set := Collect(catalog.Product{
		ContentStoreLinks: map[string]string{
			"Gear4Music": "https://www.gear4music.com/p/1",
			"SWEETWATER": "https://www.sweetwater.com/p/2",
		},
	})

	require.Equal(t, Set{
		"gear4music": {RawURL: "https://www.gear4music.com/p/1"},
		"sweetwater": {RawURL: "https://www.sweetwater.com/p/2"},
	}, set)
}

func TestCollect_SkipsEmptyURLs(t *testing.T) {
	t.Parallel()

	set := Collect(catalog.Product{
		ContentStoreLinks: map[string]string{
			"Acme":  "",
			"Other": "   ",
			"Kept":  "https://example.com/p",
		},
	})

	require.Equal(t, Set{"kept": {RawURL: "https://example.com/p"}}, set)
}

func TestCollect_DedicatedThomannURLWins(t *testing.T) {
	t.Parallel()

	set := Collect(catalog.Product{
		ContentStoreLinks: map[string]string{
			"Thomann": "https://www.thomann.de/old.htm",
		},
		ThomannURL: "https://www.thomann.de/dedicated.htm",
	})

	require.Equal(t, StoreLink{RawURL: "https://www.thomann.de/dedicated.htm"}, set[ThomannStore])
}

func TestCollect_NoThomannEntryWithoutURL(t *testing.T) {
	t.Parallel()

	set := Collect(catalog.Product{
		ContentStoreLinks: map[string]string{"Acme": "https://acme.example/p"},
	})

	_, ok := set[ThomannStore]
	require.False(t, ok)
}

func TestCollect_NilMapIsEmptySet(t *testing.T) {
	t.Parallel()

	set := Collect(catalog.Product{})
	require.Empty(t, set)
}
