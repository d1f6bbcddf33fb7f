package router

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	cases := map[string]Route{
		"/":               Home,
		"":                Home,
		"/gallery":        Gallery,
		"/blender":        Gallery,
		"/Blender/":       Gallery,
		"/contact?x=1":    Contact,
		"/does-not-exist": Home,
	}
	for in, want := range cases {
		assert.Equal(t, want, Resolve(in), in)
	}
}

func TestNavigateAndBack(t *testing.T) {
	r := New("/")
	var changes []string
	r.OnChange(func(from, to Route) { changes = append(changes, from.String()+">"+to.String()) })

	assert.Equal(t, Gallery, r.Navigate("/blender"))
	assert.Equal(t, Gallery, r.Navigate("/gallery"))
	assert.Equal(t, 2, r.Depth())

	r.Go(Contact)
	assert.True(t, r.Back())
	assert.Equal(t, Gallery, r.Current())
	assert.True(t, r.Back())
	assert.False(t, r.Back())
	assert.Equal(t, Home, r.Current())

	assert.Equal(t, []string{"home>gallery", "gallery>contact", "contact>gallery", "gallery>home"}, changes)
	assert.Equal(t, "/gallery", Gallery.Path())
}
