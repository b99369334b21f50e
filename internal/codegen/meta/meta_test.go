package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstants(t *testing.T) {
	c := NewConstants()
	c.Add("Widget_MODE_B", `"B"`, 20)
	c.Add("Widget_MODE_A", `"A"`, 10)
	c.Add("Widget_SIZE_S", `"S"`, 15)
	c.Add("Widget_MODE_A", `"other"`, 30)

	assert.Equal(t, 3, c.Len())

	v, ok := c.Lookup("Widget_MODE_A")
	assert.True(t, ok)
	assert.Equal(t, `"A"`, v, "first definition wins")

	_, ok = c.Lookup("Widget_MODE_C")
	assert.False(t, ok)

	var names []string
	for _, k := range c.All() {
		names = append(names, k.Name)
	}
	assert.Equal(t, []string{"Widget_MODE_A", "Widget_SIZE_S", "Widget_MODE_B"}, names)

	mode := c.WithPrefix("Widget_MODE_")
	assert.Len(t, mode, 2)
	assert.Equal(t, "Widget_MODE_A", mode[0].Name)
	assert.Empty(t, c.WithPrefix("Gadget_"))
}

func TestAttributes(t *testing.T) {
	shared := []*Attribute{{Name: "Action", Type: "string"}}
	md := New("Widget")
	md.Attrs = []*Attribute{
		{Name: "Name", Type: "string"},
		{Name: "Rules", Type: "Rule", ObjectType: "Rule", IsList: true, Children: shared},
		{Name: "Primary", Type: "Rule", ObjectType: "Rule", Children: shared},
	}

	var names []string
	for _, a := range md.Attributes() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"Name", "Rules", "Action", "Primary"}, names)
}

func TestAttributeKinds(t *testing.T) {
	assert.True(t, IsScalar("int64"))
	assert.False(t, IsScalar("Rule"))

	list := &Attribute{Type: "string", IsList: true}
	assert.True(t, list.IsScalarList())
	assert.False(t, list.IsObject())

	objects := &Attribute{Type: "Rule", ObjectType: "Rule", IsList: true}
	assert.False(t, objects.IsScalarList())
	assert.True(t, objects.IsObject())
}
