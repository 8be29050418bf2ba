package builder

import (
	"testing"

	"github.com/Konsultn-Engineering/enquery/dialect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	my := dialect.NewMySQLDialect()
	pg := dialect.NewPostgresDialect()

	tests := []struct {
		name    string
		dialect dialect.Dialect
		opts    Options
		want    string
		named   map[string]any
	}{
		{
			name:    "select defaults",
			dialect: my,
			opts:    Options{Table: "posts"},
			want:    "SELECT * FROM posts",
		},
		{
			name:    "select everything",
			dialect: my,
			opts: Options{
				Action:     " select ",
				Columns:    []string{"title", "description"},
				Table:      "posts",
				Where:      "title = :title",
				OrderBy:    "created_at",
				Sort:       "desc",
				LimitStart: 10,
				LimitEnd:   5,
			},
			want: "SELECT title, description FROM posts WHERE title = :title ORDER BY created_at DESC LIMIT 10, 5",
		},
		{
			name:    "select postgres window",
			dialect: pg,
			opts:    Options{Table: "posts", LimitEnd: 20},
			want:    "SELECT * FROM posts LIMIT 20 OFFSET 0",
		},
		{
			name:    "insert",
			dialect: my,
			opts: Options{
				Action:  "insert",
				Columns: []string{"title", "views", "author"},
				Table:   "posts",
				Values:  []any{"BlogPad", 3, ":author"},
			},
			want:  "INSERT INTO posts (title, views, author) VALUES (:_v1, :_v2, :author)",
			named: map[string]any{"_v1": "BlogPad", "_v2": 3},
		},
		{
			name:    "update sorted columns",
			dialect: my,
			opts: Options{
				Action: "update",
				Table:  "posts",
				Update: map[string]any{"title": "New", "body": ":body"},
				Where:  "id = :value",
				Placeholders: map[string]any{
					":body": "Hello",
					"value": 7,
				},
			},
			want:  "UPDATE posts SET body = :body, title = :_v1 WHERE id = :value",
			named: map[string]any{":body": "Hello", "value": 7, "_v1": "New"},
		},
		{
			name:    "describe mysql",
			dialect: my,
			opts:    Options{Action: "describe", Table: "posts"},
			want:    "DESCRIBE `posts`",
		},
		{
			name:    "explain",
			dialect: my,
			opts:    Options{Action: "explain", Custom: "SELECT * FROM posts"},
			want:    "EXPLAIN SELECT * FROM posts",
		},
		{
			name:    "custom",
			dialect: my,
			opts:    Options{Action: "custom", Custom: "SHOW TABLES LIKE 'posts'"},
			want:    "SHOW TABLES LIKE 'posts'",
		},
		{
			name:    "delete",
			dialect: my,
			opts:    Options{Action: "delete", Table: "posts", Where: "id = 1"},
			want:    "DELETE FROM posts WHERE id = 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, named, err := Build(tt.dialect, tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			if tt.named != nil {
				assert.Equal(t, tt.named, named)
			}
		})
	}
}

func TestBuild_Errors(t *testing.T) {
	d := dialect.NewMySQLDialect()

	tests := []struct {
		name string
		opts Options
		err  error
	}{
		{"missing table", Options{}, ErrMissingTable},
		{"delete without where", Options{Action: "delete", Table: "posts"}, ErrMissingWhere},
		{"explain without statement", Options{Action: "explain"}, ErrMissingCustom},
		{"custom without statement", Options{Action: "custom"}, ErrMissingCustom},
		{"insert without values", Options{Action: "insert", Table: "posts"}, ErrNoValues},
		{"update without columns", Options{Action: "update", Table: "posts"}, ErrNoUpdates},
		{"unknown action", Options{Action: "truncate", Table: "posts"}, ErrUnsupportedAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := Build(d, tt.opts)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBuild_ValuesAreBound(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"quote", "O'Brien"},
		{"backslash quote", `x\' OR 1=1 -- `},
		{"trailing backslash", `C:\`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, named, err := Build(dialect.NewMySQLDialect(), Options{
				Action:  "insert",
				Columns: []string{"title"},
				Table:   "posts",
				Values:  []any{tt.value},
			})
			require.NoError(t, err)
			assert.Equal(t, "INSERT INTO posts (title) VALUES (:_v1)", query)
			assert.NotContains(t, query, tt.value)
			assert.Equal(t, tt.value, named["_v1"])
		})
	}
}

func TestBuild_GeneratedNamesSkipTaken(t *testing.T) {
	query, named, err := Build(dialect.NewPostgresDialect(), Options{
		Action:       "update",
		Table:        "posts",
		Update:       map[string]any{"title": "New"},
		Where:        "id = :_v1",
		Placeholders: map[string]any{":_v1": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE posts SET title = :_v2 WHERE id = :_v1", query)
	assert.Equal(t, map[string]any{":_v1": 3, "_v2": "New"}, named)
}

func TestSelectBuilder(t *testing.T) {
	query := NewSelect(dialect.NewSQLiteDialect(), "posts", []string{"title", "views"}).
		Where("author = :author").
		Order("views").
		Sort(" desc ").
		Offset(20).
		Limit(10).
		Build()

	assert.Equal(t, "SELECT title, views FROM posts WHERE author = :author ORDER BY views DESC LIMIT 10 OFFSET 20", query)
}

func TestIsPlaceholder(t *testing.T) {
	assert.True(t, IsPlaceholder(":title"))
	assert.True(t, IsPlaceholder(":arg1"))
	assert.False(t, IsPlaceholder(":"))
	assert.False(t, IsPlaceholder(":1"))
	assert.False(t, IsPlaceholder("title"))
	assert.False(t, IsPlaceholder(":two words"))
}
