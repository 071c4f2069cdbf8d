package match

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type animal interface {
	sound() string
}

type dog struct{ name string }

func (d *dog) sound() string { return "woof" }

type cat struct{}

func (c *cat) sound() string { return "meow" }

type stone struct{}

func (s *stone) sound() string { return "" }

func TestApplyUsesRegistrationOrder(t *testing.T) {
	// the supertype registered first shadows the subtype rule
	m := Of[animal, string]()
	When(m, func(a animal) string { return "animal" })
	When(m, func(d *dog) string { return "dog" })

	r := m.Apply(&dog{})
	assert.True(t, r.IsSuccess())
	assert.Equal(t, "animal", r.Value())

	m = Of[animal, string]()
	When(m, func(d *dog) string { return "dog" })
	When(m, func(a animal) string { return "animal" })

	assert.Equal(t, "dog", m.Apply(&dog{}).Value())
	assert.Equal(t, "animal", m.Apply(&cat{}).Value())
	assert.Len(t, m.Rules(), 2)
	assert.True(t, strings.HasSuffix(m.Rules()[0], "match.dog"))
}

func TestApplyNull(t *testing.T) {
	m := Of[animal, string]()
	When(m, func(a animal) string { return "animal" })
	m.OrElse(func(a animal) string { return "fallback" })

	r := m.Apply(nil)
	assert.True(t, r.IsFailure())
	assert.Equal(t, "Null", r.Reason())

	var d *dog
	r = m.Apply(d)
	assert.True(t, r.IsFailure())
	assert.Equal(t, "Null", r.Reason())
}

func TestMissing(t *testing.T) {
	m := Of[animal, string]()
	When(m, func(d *dog) string { return "dog" })
	Missing[*cat](m)

	r := m.Apply(&cat{})
	assert.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "github.com/vine-io/bpmnconv/match.cat")
	assert.True(t, strings.HasPrefix(r.Reason(), "Not yet implemented: "))
}

func TestIgnore(t *testing.T) {
	m := Of[animal, string]()
	Ignore[*stone](m)
	When(m, func(a animal) string { return "animal" })

	r := m.Apply(&stone{})
	assert.True(t, r.IsIgnored())
	assert.Contains(t, r.Reason(), "match.stone")

	assert.Equal(t, "animal", m.Apply(&dog{}).Value())
}

func TestUnmatchedNamesType(t *testing.T) {
	m := Of[animal, string]()
	When(m, func(d *dog) string { return "dog" })

	r := m.Apply(&cat{})
	assert.True(t, r.IsFailure())
	assert.Equal(t, "github.com/vine-io/bpmnconv/match.cat", r.Reason())
}

func TestOrElse(t *testing.T) {
	m := Of[animal, string]()
	Missing[*cat](m)
	m.OrElse(func(a animal) string { return a.sound() })

	r := m.Apply(&cat{})
	assert.True(t, r.IsSuccess())
	assert.Equal(t, "meow", r.Value())

	// an empty value from the default is still a Success
	r = m.Apply(&stone{})
	assert.True(t, r.IsSuccess())
	assert.Equal(t, "", r.Value())
}

func TestFailingRuleFallsThrough(t *testing.T) {
	m := Of[animal, string]()
	Missing[animal](m)
	When(m, func(d *dog) string { return d.name })

	assert.Equal(t, "rex", m.Apply(&dog{name: "rex"}).Value())

	// with no later success the first failure is kept
	r := m.Apply(&cat{})
	assert.True(t, r.IsFailure())
	assert.Contains(t, r.Reason(), "Not yet implemented")
}
