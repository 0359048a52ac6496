package objects

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vvka-141/pgcreation/pkg/creation"
)

func TestClassify_Kinds(t *testing.T) {
	tests := []struct {
		name     string
		sql      string
		expected creation.Kind
	}{
		{"table", "CREATE TABLE users (id INT);", creation.KindTable},
		{"lower-case table", "create table users (id int);", creation.KindTable},
		{"view", "CREATE VIEW v AS SELECT 1;", creation.KindView},
		{"or replace view", "CREATE OR REPLACE VIEW v AS SELECT 1;", creation.KindView},
		{"function", "CREATE FUNCTION f() RETURNS int AS $$ SELECT 1 $$ LANGUAGE sql;", creation.KindFunction},
		{"or replace function", "CREATE OR REPLACE FUNCTION f() RETURNS int AS $$ SELECT 1 $$ LANGUAGE sql;", creation.KindFunction},
		{"trigger", "CREATE TRIGGER trg AFTER INSERT ON t FOR EACH ROW EXECUTE PROCEDURE f();", creation.KindTrigger},
		{"index", "CREATE INDEX idx ON t (a);", creation.KindIndex},
		{"unique index", "CREATE UNIQUE INDEX idx ON t (a);", creation.KindIndex},
		{"type", "CREATE TYPE mood AS ENUM ('sad', 'ok');", creation.KindType},
		{"procedure", "CREATE PROCEDURE p() BEGIN SELECT 1; END;", creation.KindProcedure},
		{"aggregate", "CREATE AGGREGATE agg (int) (SFUNC = f, STYPE = int);", creation.KindAggregate},
		{"insert", "INSERT INTO t VALUES (1);", creation.KindInsert},
		{"select", "SELECT f();", creation.KindSelect},
		{"alter", "ALTER TABLE t ADD COLUMN c INT;", creation.KindAlter},
		{"create wins over insert", "CREATE FUNCTION f() RETURNS void AS $$ INSERT INTO t VALUES (1) $$ LANGUAGE sql;", creation.KindFunction},
		{"insert wins over select", "INSERT INTO t SELECT * FROM u;", creation.KindInsert},
		{"select wins over alter", "SELECT 'alter table';", creation.KindSelect},
		{"first create kind wins", "CREATE FUNCTION mk() RETURNS void AS $$ CREATE TABLE x (); $$ LANGUAGE sql;", creation.KindFunction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			obj, err := Classify(tt.sql)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, obj.Kind)
			assert.Equal(t, tt.sql, obj.SQL)
		})
	}
}

func TestClassify_Unclassifiable(t *testing.T) {
	inputs := []string{
		"DROP TABLE users;",
		"VACUUM users;",
		"SELECT",
		"select\n* from t;",
		"CREATE SEQUENCE s;",
	}

	for _, sql := range inputs {
		t.Run(sql, func(t *testing.T) {
			obj, err := Classify(sql)
			require.Error(t, err)
			assert.Nil(t, obj)
			assert.True(t, errors.Is(err, creation.ErrUnclassifiableStatement))

			var ue *creation.UnclassifiableStatementError
			require.True(t, errors.As(err, &ue))
			assert.Equal(t, sql, ue.Statement)
		})
	}
}

func TestClassify_ObjectIDIsDeterministic(t *testing.T) {
	a, err := Classify("CREATE TABLE users (id INT);")
	require.NoError(t, err)
	b, err := Classify("CREATE TABLE users (id BIGINT);")
	require.NoError(t, err)

	assert.Equal(t, a.ID, b.ID)
	assert.Equal(t, creation.ObjectID(creation.KindTable, "users"), a.ID)
}

func TestBuild_PanicsOnUnknownKind(t *testing.T) {
	assert.Panics(t, func() { Build(creation.Kind(99), "SELECT 1;") })
}
