package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bjaus/apiroute/schema"
)

type signup struct {
	Email string   `json:"email" jsonschema:"required,format=email"`
	Name  string   `json:"name" jsonschema:"required,minLength=3,maxLength=40"`
	Age   int      `json:"age,omitempty" jsonschema:"minimum=18"`
	Plan  string   `json:"plan,omitempty" jsonschema:"enum=free,enum=pro"`
	Tags  []string `json:"tags,omitempty"`
}

func TestReflect(t *testing.T) {
	t.Parallel()

	s, err := schema.Reflect[signup]("SignupDto")
	require.NoError(t, err)

	assert.Equal(t, "SignupDto", s.Name)
	assert.Equal(t, []string{"email", "name"}, s.Required())

	email, ok := s.Field("email")
	require.True(t, ok)
	assert.Equal(t, schema.TypeString, email.Type)
	assert.Equal(t, schema.FormatEmail, email.Format)

	name, ok := s.Field("name")
	require.True(t, ok)
	require.NotNil(t, name.MinLength)
	assert.Equal(t, 3, *name.MinLength)
	require.NotNil(t, name.MaxLength)
	assert.Equal(t, 40, *name.MaxLength)

	age, ok := s.Field("age")
	require.True(t, ok)
	assert.Equal(t, schema.TypeInteger, age.Type)
	require.NotNil(t, age.Minimum)
	assert.InDelta(t, 18.0, *age.Minimum, 0)

	plan, ok := s.Field("plan")
	require.True(t, ok)
	assert.Equal(t, []string{"free", "pro"}, plan.Enum)

	tags, ok := s.Field("tags")
	require.True(t, ok)
	assert.Equal(t, schema.TypeArray, tags.Type)
	assert.Equal(t, schema.TypeString, tags.Items)
}

func TestReflect_materializes_bound_type(t *testing.T) {
	t.Parallel()

	s, err := schema.Reflect[signup]("SignupDto")
	require.NoError(t, err)

	obj := s.Coerce(map[string]any{"email": "a@b.com", "name": "Alice", "age": "21"})
	require.Empty(t, s.Validate(obj))

	v, err := s.Materialize(obj)
	require.NoError(t, err)
	assert.Equal(t, &signup{Email: "a@b.com", Name: "Alice", Age: 21}, v)
}
