package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiroute/schema"
)

type createUser struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Age   int    `json:"age,omitempty"`
}

func TestSchema_Coerce(t *testing.T) {
	t.Parallel()

	s := schema.New("ListQuery",
		schema.Integer("page").WithDefault(1),
		schema.Number("ratio"),
		schema.Boolean("active"),
		schema.Array("tags", schema.TypeString),
		schema.Array("ids", schema.TypeInteger),
		schema.String("q"),
	)

	tests := map[string]struct {
		raw  map[string]any
		want map[string]any
	}{
		"defaults applied": {
			raw:  map[string]any{},
			want: map[string]any{"page": int64(1)},
		},
		"strings converted to declared types": {
			raw: map[string]any{
				"page":   "2",
				"ratio":  "0.5",
				"active": "true",
				"q":      "alice",
			},
			want: map[string]any{
				"page":   int64(2),
				"ratio":  0.5,
				"active": true,
				"q":      "alice",
			},
		},
		"scalar wrapped into array": {
			raw:  map[string]any{"tags": "a"},
			want: map[string]any{"page": int64(1), "tags": []any{"a"}},
		},
		"array items coerced": {
			raw:  map[string]any{"ids": []string{"1", "2"}},
			want: map[string]any{"page": int64(1), "ids": []any{int64(1), int64(2)}},
		},
		"unknown fields dropped": {
			raw:  map[string]any{"page": float64(3), "extra": "x"},
			want: map[string]any{"page": int64(3)},
		},
		"unconvertible value kept": {
			raw:  map[string]any{"page": "two"},
			want: map[string]any{"page": "two"},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, s.Coerce(tc.raw))
		})
	}
}

func TestSchema_Validate(t *testing.T) {
	t.Parallel()

	s := schema.New("CreateUserDto",
		schema.String("email").Require().WithFormat(schema.FormatEmail),
		schema.String("name").Require().MinLen(3).MaxLen(10),
		schema.Integer("age").Min(18).Max(120),
		schema.String("role").OneOf("admin", "member"),
		schema.String("code").Match(`^[A-Z]{3}$`),
		schema.Array("tags", schema.TypeString),
	)

	tests := map[string]struct {
		obj        map[string]any
		wantFields []string
		wantMsgs   []string
	}{
		"valid": {
			obj: map[string]any{"email": "a@b.com", "name": "Alice", "age": int64(30)},
		},
		"missing required": {
			obj:        map[string]any{},
			wantFields: []string{"email", "name"},
			wantMsgs:   []string{"email is required", "name is required"},
		},
		"every violation collected": {
			obj: map[string]any{
				"email": "not-an-email",
				"name":  "Al",
				"age":   int64(12),
				"role":  "owner",
				"code":  "abc",
			},
			wantFields: []string{"email", "name", "age", "role", "code"},
			wantMsgs: []string{
				"email must be a valid email",
				"name must be at least 3 characters",
				"age must be at least 18",
				"role must be one of [admin, member]",
				"code must match pattern ^[A-Z]{3}$",
			},
		},
		"wrong types": {
			obj:        map[string]any{"email": 5, "name": "Alice", "age": "old", "tags": []any{"a", 1}},
			wantFields: []string{"email", "age", "tags"},
			wantMsgs: []string{
				"email must be a string",
				"age must be an integer",
				"each value in tags must be a string",
			},
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			vs := s.Validate(tc.obj)
			if len(tc.wantFields) == 0 {
				assert.Empty(t, vs)
				return
			}

			require.Len(t, vs, len(tc.wantFields))
			for i, f := range tc.wantFields {
				assert.Equal(t, f, vs[i].Field)
			}
			assert.Equal(t, tc.wantMsgs, vs.Strings())
		})
	}
}

func TestViolation_joins_messages(t *testing.T) {
	t.Parallel()

	s := schema.New("Name", schema.String("name").MinLen(5).Match(`^[0-9]+$`))
	vs := s.Validate(map[string]any{"name": "ab"})

	require.Len(t, vs, 1)
	assert.Equal(t, "name must be at least 5 characters, name must match pattern ^[0-9]+$", vs[0].String())
	assert.True(t, vs.Has("name"))
	assert.Contains(t, vs.Error(), "validation failed")
}

func TestSchema_Validate_uncompilable_pattern_rejects(t *testing.T) {
	t.Parallel()

	s := schema.New("Code", schema.String("code").Match(`(`))
	require.ErrorIs(t, s.Check(), schema.ErrInvalidSchema)

	vs := s.Validate(map[string]any{"code": "anything"})
	require.Len(t, vs, 1)
	assert.Equal(t, "code must match pattern (", vs[0].String())
}

func TestSchema_Materialize(t *testing.T) {
	t.Parallel()

	t.Run("bound type", func(t *testing.T) {
		t.Parallel()

		s := schema.Of[createUser]("CreateUserDto", schema.String("email"), schema.String("name"), schema.Integer("age"))
		v, err := s.Materialize(map[string]any{"email": "a@b.com", "name": "Alice", "age": int64(42)})
		require.NoError(t, err)

		u, ok := v.(*createUser)
		require.True(t, ok)
		assert.Equal(t, &createUser{Email: "a@b.com", Name: "Alice", Age: 42}, u)
	})

	t.Run("unbound returns map", func(t *testing.T) {
		t.Parallel()

		s := schema.New("Anything", schema.String("name"))
		obj := map[string]any{"name": "x"}
		v, err := s.Materialize(obj)
		require.NoError(t, err)
		assert.Equal(t, obj, v)
	})
}

func TestSchema_Check(t *testing.T) {
	t.Parallel()

	tests := map[string]*schema.Schema{
		"missing name":    schema.New(""),
		"duplicate field": schema.New("X", schema.String("a"), schema.String("a")),
		"unknown type":    schema.New("X", schema.Field{Name: "a", Type: "date"}),
		"bad pattern":     schema.New("X", schema.String("a").Match("(")),
	}

	for name, s := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			require.ErrorIs(t, s.Check(), schema.ErrInvalidSchema)
		})
	}
}

func TestSchema_Required(t *testing.T) {
	t.Parallel()

	s := schema.New("X", schema.String("a").Require(), schema.String("b"), schema.Integer("c").Require())
	assert.Equal(t, []string{"a", "c"}, s.Required())

	f, ok := s.Field("b")
	require.True(t, ok)
	assert.Equal(t, schema.TypeString, f.Type)

	_, ok = s.Field("missing")
	assert.False(t, ok)
}
