package web_test

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/adness/starburst/web"
)

func TestEmbedded(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"index", "sbindex", "rules", "history", "registration", "payment"} {
		_, err := fs.Stat(web.Content(), name+".md")
		require.NoError(t, err, name)
	}

	_, err := fs.Stat(web.Public(), "robots.txt")
	require.NoError(t, err)

	_, err = fs.Stat(web.Assets(), "manifest.json")
	require.NoError(t, err)
}
