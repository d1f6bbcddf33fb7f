package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildTree() *Element {
	root := NewRoot(800, 600)
	section := root.Add(&Element{ID: "about", Role: RoleSection, Bounds: Rect{X: 0, Y: 100, W: 800, H: 400}})
	section.Add(&Element{ID: "heading", Role: RoleText, Bounds: Rect{X: 40, Y: 120, W: 300, H: 40}})
	card := section.Add(&Element{ID: "card", Role: RoleNone, Classes: []string{"cursor-pointer"}, Bounds: Rect{X: 40, Y: 200, W: 300, H: 200}})
	card.Add(&Element{ID: "card-title", Role: RoleText, Bounds: Rect{X: 50, Y: 210, W: 200, H: 30}})
	return root
}

func TestHitTestReturnsDeepest(t *testing.T) {
	root := buildTree()

	hit := root.HitTest(60, 220)
	require.NotNil(t, hit)
	assert.Equal(t, "card-title", hit.ID)

	hit = root.HitTest(600, 300)
	require.NotNil(t, hit)
	assert.Equal(t, "about", hit.ID)

	assert.Nil(t, root.HitTest(900, 10))
}

func TestAncestorsOrder(t *testing.T) {
	root := buildTree()
	title := root.Find("card-title")
	require.NotNil(t, title)

	var ids []string
	for _, el := range title.Ancestors() {
		ids = append(ids, el.ID)
	}
	assert.Equal(t, []string{"card-title", "card", "about", "root"}, ids)
	assert.Equal(t, "about", title.Closest(RoleSection).ID)
	assert.True(t, root.Find("card").HasClass("cursor-pointer"))
}

func TestWalkVisitsAll(t *testing.T) {
	count := 0
	buildTree().Walk(func(*Element) { count++ })
	assert.Equal(t, 5, count)
}
