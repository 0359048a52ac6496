package preprocessor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgcreation/pkg/creation"
)

func TestPipeline_Process_StripsThenTokenizes(t *testing.T) {
	p := NewPipeline()

	sql := `-- schema header
/* users
   table */
CREATE TABLE users (
  id INT -- primary key
);

CREATE TABLE posts (id INT, user_id INT REFERENCES users(id));
`
	got, err := p.Process(sql)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "CREATE TABLE users (\n  id INT \n);", got[0])
	assert.Equal(t, "CREATE TABLE posts (id INT, user_id INT REFERENCES users(id));", got[1])
}

func TestPipeline_Process_BlockCommentWithLineMarker(t *testing.T) {
	got, err := NewPipeline().Process("/* -- not a line comment */\nSELECT 1;")
	require.NoError(t, err)
	assert.Equal(t, []string{"SELECT 1;"}, got)
}

func TestPipeline_Process_UnopenedClosingComment(t *testing.T) {
	got, err := NewPipeline().Process("SELECT 1;\n/* ok */ SELECT 2; */")
	require.Error(t, err)
	assert.Nil(t, got)
	assert.True(t, errors.Is(err, creation.ErrMalformedComment))
}

// A "--" inside a literal is cut by the strip pass before tokenizing.
func TestPipeline_Process_StripperCutsStringLiterals(t *testing.T) {
	got, err := NewPipeline().Process("INSERT INTO t VALUES ('a--b');\nSELECT 1;")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "INSERT INTO t VALUES ('a\nSELECT 1;", got[0])
}
