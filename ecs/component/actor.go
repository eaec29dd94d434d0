package component

import "image/color"

// Actor names an entity so scripts can address it.
type Actor struct {
	Name  string
	Color color.Color
}

var ActorComponent = NewComponent[Actor]()
